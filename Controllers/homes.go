package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"HomeSked/Models"
	"HomeSked/middleware"
)

// HomeController handles home CRUD endpoints
type HomeController struct {
	DB *gorm.DB
}

func NewHomeController(db *gorm.DB) *HomeController {
	return &HomeController{DB: db}
}

// GetHomes lists all homes with creator name and room count, newest first.
// GET /api/homes
func (c *HomeController) GetHomes(ctx *fiber.Ctx) error {
	var homes []Models.Home
	if result := c.DB.Order("created_at DESC").Find(&homes); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": result.Error.Error(),
		})
	}

	usernames, err := usernameLookup(c.DB)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}
	for i := range homes {
		homes[i].CreatedByName = usernames[homes[i].CreatedBy]
		c.DB.Model(&Models.Room{}).Where("home_id = ?", homes[i].ID).Count(&homes[i].RoomCount)
	}

	return ctx.JSON(homes)
}

// GetHome retrieves a single home by ID
// GET /api/homes/:id
func (c *HomeController) GetHome(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid home ID"})
	}

	var home Models.Home
	if result := c.DB.First(&home, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Home not found"})
	}
	return ctx.JSON(home)
}

// CreateHome creates a new home owned by the authenticated user
// POST /api/homes
func (c *HomeController) CreateHome(ctx *fiber.Ctx) error {
	var req Models.HomeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "name is required",
		})
	}

	user, _ := middleware.CurrentUser(ctx)
	home := Models.Home{
		Name:      req.Name,
		Address:   req.Address,
		CreatedBy: user.ID,
	}
	if result := c.DB.Create(&home); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to create home",
			"message": result.Error.Error(),
		})
	}
	return ctx.Status(fiber.StatusCreated).JSON(home)
}

// UpdateHome updates an existing home
// PUT /api/homes/:id
func (c *HomeController) UpdateHome(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid home ID"})
	}

	var home Models.Home
	if result := c.DB.First(&home, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Home not found"})
	}

	var req Models.HomeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "name is required",
		})
	}

	home.Name = req.Name
	home.Address = req.Address
	if result := c.DB.Save(&home); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to update home",
			"message": result.Error.Error(),
		})
	}
	return ctx.JSON(home)
}

// DeleteHome deletes a home; rooms, equipment and tasks cascade with it
// DELETE /api/homes/:id
func (c *HomeController) DeleteHome(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid home ID"})
	}

	var home Models.Home
	if result := c.DB.First(&home, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Home not found"})
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		var rooms []Models.Room
		if err := tx.Where("home_id = ?", home.ID).Find(&rooms).Error; err != nil {
			return err
		}
		for _, room := range rooms {
			if err := deleteRoomTree(tx, &room); err != nil {
				return err
			}
		}
		return tx.Delete(&home).Error
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to delete home",
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{"message": "Home deleted successfully"})
}

// usernameLookup maps user ids to usernames for created_by joins.
func usernameLookup(db *gorm.DB) (map[uint]string, error) {
	var users []Models.User
	if err := db.Find(&users).Error; err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}
	return names, nil
}

// deleteRoomTree removes a room with its equipment, tasks and ledgers.
func deleteRoomTree(tx *gorm.DB, room *Models.Room) error {
	var equipment []Models.Equipment
	if err := tx.Where("room_id = ?", room.ID).Find(&equipment).Error; err != nil {
		return err
	}
	for _, eq := range equipment {
		if err := deleteEquipmentTree(tx, &eq); err != nil {
			return err
		}
	}
	if err := deleteTasksWithLedger(tx, tx.Where("room_id = ?", room.ID)); err != nil {
		return err
	}
	return tx.Delete(room).Error
}

// deleteEquipmentTree removes equipment with its tasks and ledgers.
func deleteEquipmentTree(tx *gorm.DB, eq *Models.Equipment) error {
	if err := deleteTasksWithLedger(tx, tx.Where("equipment_id = ?", eq.ID)); err != nil {
		return err
	}
	return tx.Delete(eq).Error
}

func deleteTasksWithLedger(tx *gorm.DB, scope *gorm.DB) error {
	var tasks []Models.Task
	if err := scope.Find(&tasks).Error; err != nil {
		return err
	}
	for _, task := range tasks {
		if err := tx.Unscoped().Where("task_id = ?", task.ID).Delete(&Models.TaskCompletion{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Models.Task{}, task.ID).Error; err != nil {
			return err
		}
	}
	return nil
}
