package Controllers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"HomeSked/Scheduler"
)

var validate = validator.New()

// respondEngineError maps the scheduling engine's error taxonomy onto
// HTTP statuses. Unrecognized errors pass through as 500 untranslated.
func respondEngineError(c *fiber.Ctx, err error) error {
	var validationErr *Scheduler.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": validationErr.Message,
		})
	}

	var invariantErr *Scheduler.InvariantError
	if errors.As(err, &invariantErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "Invalid schedule configuration",
			"message": invariantErr.Message,
		})
	}

	switch {
	case errors.Is(err, Scheduler.ErrTaskNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Task not found",
			"message": "The specified task does not exist",
		})
	case errors.Is(err, Scheduler.ErrCompletionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Completion not found",
			"message": "The specified completion does not exist",
		})
	case errors.Is(err, Scheduler.ErrEquipmentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Equipment not found",
			"message": "The specified equipment does not exist",
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Database error",
		"message": err.Error(),
	})
}
