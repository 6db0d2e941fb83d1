package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"HomeSked/Models"
	"HomeSked/Scheduler"
	"HomeSked/middleware"
)

// TaskController handles task CRUD, completion and history endpoints.
// All scheduling decisions are delegated to the engine; the controller
// only parses, validates and maps errors.
type TaskController struct {
	DB     *gorm.DB
	Engine *Scheduler.Engine
}

func NewTaskController(db *gorm.DB, engine *Scheduler.Engine) *TaskController {
	return &TaskController{DB: db, Engine: engine}
}

// GetTasks lists the tasks of an equipment or a room, soonest due first,
// each annotated with its derived status.
// GET /api/tasks?equipment_id=N or GET /api/tasks?room_id=N
func (c *TaskController) GetTasks(ctx *fiber.Ctx) error {
	query := c.DB.Order("next_due_at ASC, next_due_usage ASC")
	if raw := ctx.Query("equipment_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid equipment ID"})
		}
		query = query.Where("equipment_id = ?", id)
	} else if raw := ctx.Query("room_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room ID"})
		}
		query = query.Where("room_id = ?", id)
	} else {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "equipment_id or room_id query parameter is required",
		})
	}

	var tasks []Models.Task
	if result := query.Find(&tasks); result.Error != nil {
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

	usernames, err := usernameLookup(c.DB)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}
	for i := range tasks {
		tasks[i].CreatedByName = usernames[tasks[i].CreatedBy]
	}

	return ctx.JSON(tasks)
}

// GetTask retrieves a single task with its derived status
// GET /api/tasks/:id
func (c *TaskController) GetTask(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var task Models.Task
	if result := c.DB.First(&task, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	tasks := []Models.Task{task}
	if err := c.Engine.Annotate(tasks); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}
	return ctx.JSON(tasks[0])
}

// CreateTask creates a task with its initial computed due state
// POST /api/tasks
func (c *TaskController) CreateTask(ctx *fiber.Ctx) error {
	var req Models.TaskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "name is required and trigger_type must be time or usage",
		})
	}

	user, _ := middleware.CurrentUser(ctx)
	task, err := c.Engine.CreateTask(taskConfig(&req), user.ID)
	if err != nil {
		return respondEngineError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(task)
}

// UpdateTask updates a task's name and schedule configuration, rebasing
// the due state on the last known completion
// PUT /api/tasks/:id
func (c *TaskController) UpdateTask(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var req Models.TaskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	task, err := c.Engine.UpdateTask(uint(id), taskConfig(&req))
	if err != nil {
		return respondEngineError(ctx, err)
	}
	return ctx.JSON(task)
}

// DeleteTask deletes a task and its completion history
// DELETE /api/tasks/:id
func (c *TaskController) DeleteTask(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	if err := c.Engine.DeleteTask(uint(id)); err != nil {
		return respondEngineError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Task deleted successfully"})
}

// CompleteTask records a completion and returns the resynced task
// POST /api/tasks/:id/complete
func (c *TaskController) CompleteTask(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var req Models.CompleteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, _ := middleware.CurrentUser(ctx)
	task, entry, err := c.Engine.Complete(uint(id), user.ID, Scheduler.CompleteInput{
		CompletedAt: req.CompletedAt,
		UsageValue:  req.UsageValue,
		Notes:       req.Notes,
	})
	if err != nil {
		return respondEngineError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"task":       task,
		"completion": entry,
	})
}

// GetHistory lists a task's completion ledger, most recent first
// GET /api/tasks/:id/history
func (c *TaskController) GetHistory(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var task Models.Task
	if result := c.DB.First(&task, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	history, err := c.loadHistory(task.ID, 50)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}
	return ctx.JSON(history)
}

// EditCompletion patches a ledger entry and returns the resynced task
// PUT /api/tasks/:id/completions/:completionId
func (c *TaskController) EditCompletion(ctx *fiber.Ctx) error {
	taskID, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}
	completionID, err := strconv.Atoi(ctx.Params("completionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid completion ID"})
	}

	var req Models.CompletionEditRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	task, err := c.Engine.EditCompletion(uint(taskID), uint(completionID), Scheduler.CompletionEdit{
		CompletedAt: req.CompletedAt,
		UsageValue:  req.UsageValue,
		Notes:       req.Notes,
	})
	if err != nil {
		return respondEngineError(ctx, err)
	}
	return ctx.JSON(task)
}

// DeleteCompletion removes a ledger entry and returns the resynced task
// DELETE /api/tasks/:id/completions/:completionId
func (c *TaskController) DeleteCompletion(ctx *fiber.Ctx) error {
	taskID, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}
	completionID, err := strconv.Atoi(ctx.Params("completionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid completion ID"})
	}

	task, err := c.Engine.DeleteCompletion(uint(taskID), uint(completionID))
	if err != nil {
		return respondEngineError(ctx, err)
	}
	return ctx.JSON(task)
}

func (c *TaskController) loadHistory(taskID uint, limit int) ([]Models.TaskCompletion, error) {
	var history []Models.TaskCompletion
	err := c.DB.Where("task_id = ?", taskID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&history).Error
	if err != nil {
		return nil, err
	}

	usernames, err := usernameLookup(c.DB)
	if err != nil {
		return nil, err
	}
	for i := range history {
		history[i].CompletedByName = usernames[history[i].CompletedBy]
	}
	return history, nil
}

func taskConfig(req *Models.TaskRequest) Scheduler.TaskConfig {
	return Scheduler.TaskConfig{
		EquipmentID:    req.EquipmentID,
		RoomID:         req.RoomID,
		Name:           req.Name,
		Description:    req.Description,
		TriggerType:    req.TriggerType,
		FrequencyValue: req.FrequencyValue,
		FrequencyUnit:  req.FrequencyUnit,
		UsageUnit:      req.UsageUnit,
		UsageInterval:  req.UsageInterval,
	}
}
