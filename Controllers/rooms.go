package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"HomeSked/Models"
)

// RoomController handles room CRUD endpoints
type RoomController struct {
	DB *gorm.DB
}

func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{DB: db}
}

// GetRooms lists the rooms of a home with equipment counts.
// GET /api/rooms?home_id=N
func (c *RoomController) GetRooms(ctx *fiber.Ctx) error {
	homeID, err := strconv.Atoi(ctx.Query("home_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "home_id query parameter is required",
		})
	}

	var rooms []Models.Room
	if result := c.DB.Where("home_id = ?", homeID).Order("name").Find(&rooms); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": result.Error.Error(),
		})
	}
	for i := range rooms {
		c.DB.Model(&Models.Equipment{}).Where("room_id = ?", rooms[i].ID).Count(&rooms[i].EquipmentCount)
	}
	return ctx.JSON(rooms)
}

// GetRoom retrieves a single room by ID
// GET /api/rooms/:id
func (c *RoomController) GetRoom(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room ID"})
	}

	var room Models.Room
	if result := c.DB.First(&room, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Room not found"})
	}
	return ctx.JSON(room)
}

// CreateRoom creates a new room inside a home
// POST /api/rooms
func (c *RoomController) CreateRoom(ctx *fiber.Ctx) error {
	var req Models.RoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "home_id and name are required",
		})
	}

	var home Models.Home
	if result := c.DB.First(&home, req.HomeID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Home not found"})
	}

	room := Models.Room{
		HomeID:      req.HomeID,
		Name:        req.Name,
		Description: req.Description,
	}
	if result := c.DB.Create(&room); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to create room",
			"message": result.Error.Error(),
		})
	}
	return ctx.Status(fiber.StatusCreated).JSON(room)
}

// UpdateRoom updates an existing room
// PUT /api/rooms/:id
func (c *RoomController) UpdateRoom(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room ID"})
	}

	var room Models.Room
	if result := c.DB.First(&room, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Room not found"})
	}

	var req Models.RoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "name is required",
		})
	}

	room.Name = req.Name
	room.Description = req.Description
	if result := c.DB.Save(&room); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to update room",
			"message": result.Error.Error(),
		})
	}
	return ctx.JSON(room)
}

// DeleteRoom deletes a room; its equipment and tasks cascade with it
// DELETE /api/rooms/:id
func (c *RoomController) DeleteRoom(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room ID"})
	}

	var room Models.Room
	if result := c.DB.First(&room, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Room not found"})
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		return deleteRoomTree(tx, &room)
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to delete room",
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{"message": "Room deleted successfully"})
}
