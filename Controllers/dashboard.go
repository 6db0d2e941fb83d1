package Controllers

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"HomeSked/Models"
	"HomeSked/Scheduler"
)

// DashboardController aggregates the household-wide overview
type DashboardController struct {
	DB     *gorm.DB
	Engine *Scheduler.Engine
}

func NewDashboardController(db *gorm.DB, engine *Scheduler.Engine) *DashboardController {
	return &DashboardController{DB: db, Engine: engine}
}

// DashboardTask is a task enriched with the names of its location chain
// for display on the overview lists.
type DashboardTask struct {
	Models.Task
	EquipmentName string `json:"equipment_name,omitempty"`
	RoomName      string `json:"room_name,omitempty"`
	HomeName      string `json:"home_name,omitempty"`
}

type locationIndex struct {
	equipment map[uint]Models.Equipment
	rooms     map[uint]Models.Room
	homes     map[uint]Models.Home
}

// GetDashboard returns the overdue and upcoming task lists plus the
// household stats block. Statuses are classified on the fly; nothing on
// this page reads a stored status.
// GET /api/dashboard
func (c *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	var tasks []Models.Task
	if result := c.DB.Find(&tasks); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": result.Error.Error(),
		})
	}
	if err := c.Engine.Annotate(tasks); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	index, err := c.loadLocations()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	now := c.Engine.Now()
	horizon := now.Add(Scheduler.UpcomingWindow)

	overdue := []DashboardTask{}
	upcoming := []DashboardTask{}
	var dueSoonCount int64
	for _, task := range tasks {
		entry := index.enrich(task)
		switch task.Status {
		case Scheduler.StatusOverdue:
			overdue = append(overdue, entry)
		case Scheduler.StatusDueSoon:
			dueSoonCount++
		}
		if task.Status == Scheduler.StatusOverdue {
			continue
		}
		switch task.TriggerType {
		case Models.TriggerTime:
			if task.NextDueAt != nil && !task.NextDueAt.Before(now) && !task.NextDueAt.After(horizon) {
				upcoming = append(upcoming, entry)
			}
		case Models.TriggerUsage:
			// Usage tasks have no date; surface them once the classifier
			// puts them inside the due-soon margin.
			if task.Status == Scheduler.StatusDueSoon {
				upcoming = append(upcoming, entry)
			}
		}
	}

	sort.Slice(overdue, func(i, j int) bool { return dueBefore(&overdue[i].Task, &overdue[j].Task) })
	sort.Slice(upcoming, func(i, j int) bool { return dueBefore(&upcoming[i].Task, &upcoming[j].Task) })
	if len(upcoming) > 50 {
		upcoming = upcoming[:50]
	}

	stats, err := c.loadStats(len(tasks), int64(len(overdue)), dueSoonCount, now)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	activity, err := c.recentActivity(index)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"overdue":         overdue,
		"upcoming":        upcoming,
		"stats":           stats,
		"recent_activity": activity,
	})
}

func (c *DashboardController) loadLocations() (*locationIndex, error) {
	index := &locationIndex{
		equipment: map[uint]Models.Equipment{},
		rooms:     map[uint]Models.Room{},
		homes:     map[uint]Models.Home{},
	}

	var equipment []Models.Equipment
	if err := c.DB.Find(&equipment).Error; err != nil {
		return nil, err
	}
	for _, eq := range equipment {
		index.equipment[eq.ID] = eq
	}

	var rooms []Models.Room
	if err := c.DB.Find(&rooms).Error; err != nil {
		return nil, err
	}
	for _, room := range rooms {
		index.rooms[room.ID] = room
	}

	var homes []Models.Home
	if err := c.DB.Find(&homes).Error; err != nil {
		return nil, err
	}
	for _, home := range homes {
		index.homes[home.ID] = home
	}

	return index, nil
}

func (index *locationIndex) enrich(task Models.Task) DashboardTask {
	entry := DashboardTask{Task: task}

	roomID := task.RoomID
	if task.EquipmentID != nil {
		if eq, ok := index.equipment[*task.EquipmentID]; ok {
			entry.EquipmentName = eq.Name
			roomID = &eq.RoomID
		}
	}
	if roomID != nil {
		if room, ok := index.rooms[*roomID]; ok {
			entry.RoomName = room.Name
			if home, ok := index.homes[room.HomeID]; ok {
				entry.HomeName = home.Name
			}
		}
	}
	return entry
}

// dueBefore orders tasks by urgency. Dated tasks sort by date; usage
// tasks have no date, so they sort after dated ones, closest interval
// remainder first.
func dueBefore(a, b *Models.Task) bool {
	aTime := a.TriggerType == Models.TriggerTime && a.NextDueAt != nil
	bTime := b.TriggerType == Models.TriggerTime && b.NextDueAt != nil
	switch {
	case aTime && bTime:
		return a.NextDueAt.Before(*b.NextDueAt)
	case aTime:
		return true
	case bTime:
		return false
	}
	if a.NextDueUsage != nil && b.NextDueUsage != nil {
		return *a.NextDueUsage < *b.NextDueUsage
	}
	return a.NextDueUsage != nil
}

func (c *DashboardController) loadStats(taskCount int, overdue, dueSoon int64, now time.Time) (fiber.Map, error) {
	var homeCount, roomCount, equipmentCount, completions30d int64
	if err := c.DB.Model(&Models.Home{}).Count(&homeCount).Error; err != nil {
		return nil, err
	}
	if err := c.DB.Model(&Models.Room{}).Count(&roomCount).Error; err != nil {
		return nil, err
	}
	if err := c.DB.Model(&Models.Equipment{}).Count(&equipmentCount).Error; err != nil {
		return nil, err
	}
	since := now.AddDate(0, 0, -30)
	if err := c.DB.Model(&Models.TaskCompletion{}).Where("completed_at >= ?", since).Count(&completions30d).Error; err != nil {
		return nil, err
	}

	return fiber.Map{
		"homes":           homeCount,
		"rooms":           roomCount,
		"equipment":       equipmentCount,
		"tasks":           taskCount,
		"overdue":         overdue,
		"due_soon":        dueSoon,
		"completions_30d": completions30d,
	}, nil
}

// DashboardActivity is one row of the recent completions feed.
type DashboardActivity struct {
	Models.TaskCompletion
	TaskName      string `json:"task_name"`
	EquipmentName string `json:"equipment_name,omitempty"`
	RoomName      string `json:"room_name,omitempty"`
}

func (c *DashboardController) recentActivity(index *locationIndex) ([]DashboardActivity, error) {
	var completions []Models.TaskCompletion
	err := c.DB.Order("completed_at DESC").Limit(10).Find(&completions).Error
	if err != nil {
		return nil, err
	}

	usernames, err := usernameLookup(c.DB)
	if err != nil {
		return nil, err
	}

	activity := make([]DashboardActivity, 0, len(completions))
	for _, entry := range completions {
		entry.CompletedByName = usernames[entry.CompletedBy]
		row := DashboardActivity{TaskCompletion: entry}

		var task Models.Task
		if err := c.DB.Unscoped().First(&task, entry.TaskID).Error; err == nil {
			row.TaskName = task.Name
			enriched := index.enrich(task)
			row.EquipmentName = enriched.EquipmentName
			row.RoomName = enriched.RoomName
		}
		activity = append(activity, row)
	}
	return activity, nil
}
