package Scheduler

import (
	"time"

	"HomeSked/Models"
)

// Task status values. Always derived, never stored.
const (
	StatusOverdue = "overdue"
	StatusDueSoon = "due_soon"
	StatusOK      = "ok"
)

// Lookahead horizons. Task lists and equipment badges flag tasks inside
// DueSoonWindow; the dashboard's upcoming feed uses the wider
// UpcomingWindow.
const (
	DueSoonWindow  = 7 * 24 * time.Hour
	UpcomingWindow = 14 * 24 * time.Hour
)

// Classify derives the current status of a task at instant now.
// currentUsage is the owning equipment's reading and is only consulted
// for usage-triggered tasks; nil reads as zero. Classify never writes.
func Classify(task *Models.Task, currentUsage *int64, now time.Time) string {
	if task.TriggerType == Models.TriggerUsage {
		if task.NextDueUsage == nil {
			return StatusOK
		}
		var usage int64
		if currentUsage != nil {
			usage = *currentUsage
		}
		if usage >= *task.NextDueUsage {
			return StatusOverdue
		}
		// Due soon inside the last 10% of the interval, rounded up.
		margin := (task.UsageInterval + 9) / 10
		if usage >= *task.NextDueUsage-margin {
			return StatusDueSoon
		}
		return StatusOK
	}

	if task.NextDueAt == nil {
		return StatusOK
	}
	if task.NextDueAt.Before(now) {
		return StatusOverdue
	}
	if !task.NextDueAt.After(now.Add(DueSoonWindow)) {
		return StatusDueSoon
	}
	return StatusOK
}

// Annotate stamps the derived status on each task, resolving equipment
// readings for usage-triggered tasks in a single query.
func (e *Engine) Annotate(tasks []Models.Task) error {
	var ids []uint
	for _, t := range tasks {
		if t.TriggerType == Models.TriggerUsage && t.EquipmentID != nil {
			ids = append(ids, *t.EquipmentID)
		}
	}

	readings := make(map[uint]*int64)
	if len(ids) > 0 {
		var equipment []Models.Equipment
		if err := e.DB.Where("id IN ?", ids).Find(&equipment).Error; err != nil {
			return err
		}
		for _, eq := range equipment {
			readings[eq.ID] = eq.CurrentUsage
		}
	}

	now := e.Now()
	for i := range tasks {
		var reading *int64
		if tasks[i].EquipmentID != nil {
			reading = readings[*tasks[i].EquipmentID]
		}
		tasks[i].Status = Classify(&tasks[i], reading, now)
	}
	return nil
}
