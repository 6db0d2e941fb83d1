package Controllers

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"HomeSked/Models"
)

// ExportHistory writes a task's full completion ledger as an XLSX
// workbook. Unlike the JSON history endpoint this is not capped at 50
// entries.
// GET /api/tasks/:id/history/export
func (c *TaskController) ExportHistory(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var task Models.Task
	if result := c.DB.First(&task, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	var history []Models.TaskCompletion
	err = c.DB.Where("task_id = ?", task.ID).
		Order("completed_at DESC").
		Find(&history).Error
	if err != nil {
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

	buf, err := historyWorkbook(&task, history, usernames)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to generate export",
			"message": err.Error(),
		})
	}

	filename := fmt.Sprintf("history-task-%d.xlsx", task.ID)
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return ctx.Send(buf.Bytes())
}

func historyWorkbook(task *Models.Task, history []Models.TaskCompletion, usernames map[uint]string) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	sheetName := "History"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"Completed At", "Completed By", "Usage Value", "Usage Unit", "Notes"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for rowIndex, entry := range history {
		row := rowIndex + 2

		var usageValue interface{}
		var usageUnit string
		if entry.UsageValue != nil {
			usageValue = *entry.UsageValue
			usageUnit = task.UsageTrigger.UsageUnit
		}

		values := []interface{}{
			entry.CompletedAt.Format("2006-01-02 15:04:05"),
			usernames[entry.CompletedBy],
			usageValue,
			usageUnit,
			entry.Notes,
		}
		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := 0; i < len(headers); i++ {
		f.SetColWidth(sheetName, string('A'+rune(i)), string('A'+rune(i)), 20)
	}

	if f.GetSheetName(0) != sheetName {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing workbook to buffer: %v", err)
	}
	return &buf, nil
}
