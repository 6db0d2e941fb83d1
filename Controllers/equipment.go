package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"HomeSked/Models"
	"HomeSked/Scheduler"
)

// EquipmentController handles equipment CRUD and usage readings
type EquipmentController struct {
	DB     *gorm.DB
	Engine *Scheduler.Engine
}

func NewEquipmentController(db *gorm.DB, engine *Scheduler.Engine) *EquipmentController {
	return &EquipmentController{DB: db, Engine: engine}
}

// GetEquipment lists the equipment of a room with task badge counts.
// Overdue and due-soon counts run through the same classifier the task
// lists use, so the badge windows stay consistent with the list views.
// GET /api/equipment?room_id=N
func (c *EquipmentController) GetEquipment(ctx *fiber.Ctx) error {
	roomID, err := strconv.Atoi(ctx.Query("room_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "room_id query parameter is required",
		})
	}

	var equipment []Models.Equipment
	if result := c.DB.Where("room_id = ?", roomID).Order("name").Find(&equipment); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": result.Error.Error(),
		})
	}

	for i := range equipment {
		var tasks []Models.Task
		if err := c.DB.Where("equipment_id = ?", equipment[i].ID).Find(&tasks).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Database error",
				"message": err.Error(),
			})
		}
		if err := c.Engine.Annotate(tasks); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Database error",
				"message": err.Error(),
			})
		}
		equipment[i].TaskCount = int64(len(tasks))
		for _, task := range tasks {
			switch task.Status {
			case Scheduler.StatusOverdue:
				equipment[i].OverdueCount++
			case Scheduler.StatusDueSoon:
				equipment[i].DueSoonCount++
			}
		}
	}

	return ctx.JSON(equipment)
}

// GetEquipmentByID retrieves a single piece of equipment
// GET /api/equipment/:id
func (c *EquipmentController) GetEquipmentByID(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid equipment ID"})
	}

	var equipment Models.Equipment
	if result := c.DB.First(&equipment, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Equipment not found"})
	}
	return ctx.JSON(equipment)
}

// CreateEquipment creates a new piece of equipment in a room
// POST /api/equipment
func (c *EquipmentController) CreateEquipment(ctx *fiber.Ctx) error {
	var req Models.EquipmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "room_id and name are required",
		})
	}

	var room Models.Room
	if result := c.DB.First(&room, req.RoomID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Room not found"})
	}

	equipment := Models.Equipment{
		RoomID:       req.RoomID,
		Name:         req.Name,
		Description:  req.Description,
		Make:         req.Make,
		ModelName:    req.ModelName,
		SerialNumber: req.SerialNumber,
		Notes:        req.Notes,
		PresetType:   req.PresetType,
		CurrentUsage: req.CurrentUsage,
		UsageUnit:    req.UsageUnit,
	}
	if result := c.DB.Create(&equipment); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to create equipment",
			"message": result.Error.Error(),
		})
	}
	return ctx.Status(fiber.StatusCreated).JSON(equipment)
}

// UpdateEquipment updates an existing piece of equipment
// PUT /api/equipment/:id
func (c *EquipmentController) UpdateEquipment(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid equipment ID"})
	}

	var equipment Models.Equipment
	if result := c.DB.First(&equipment, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Equipment not found"})
	}

	var req Models.EquipmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "name is required",
		})
	}

	equipment.Name = req.Name
	equipment.Description = req.Description
	equipment.Make = req.Make
	equipment.ModelName = req.ModelName
	equipment.SerialNumber = req.SerialNumber
	equipment.Notes = req.Notes
	equipment.PresetType = req.PresetType
	equipment.CurrentUsage = req.CurrentUsage
	equipment.UsageUnit = req.UsageUnit

	if result := c.DB.Save(&equipment); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to update equipment",
			"message": result.Error.Error(),
		})
	}
	return ctx.JSON(equipment)
}

// UpdateUsage overwrites just the usage reading. Unlike the completion
// ratchet this path is unconditional, so corrections downward are
// possible here and only here.
// PATCH /api/equipment/:id/usage
func (c *EquipmentController) UpdateUsage(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid equipment ID"})
	}

	var equipment Models.Equipment
	if result := c.DB.First(&equipment, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Equipment not found"})
	}

	var req Models.UsageUpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "current_usage is required",
		})
	}

	if result := c.DB.Model(&equipment).Update("current_usage", *req.CurrentUsage); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to update usage",
			"message": result.Error.Error(),
		})
	}
	return ctx.JSON(equipment)
}

// DeleteEquipment deletes equipment; its tasks and ledgers cascade
// DELETE /api/equipment/:id
func (c *EquipmentController) DeleteEquipment(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid equipment ID"})
	}

	var equipment Models.Equipment
	if result := c.DB.First(&equipment, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Equipment not found"})
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		return deleteEquipmentTree(tx, &equipment)
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to delete equipment",
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{"message": "Equipment deleted successfully"})
}
