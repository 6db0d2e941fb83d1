package Scheduler

import (
	"errors"

	"gorm.io/gorm"

	"HomeSked/Models"
)

// TaskConfig is the schedule configuration accepted at create and update
// time.
type TaskConfig struct {
	EquipmentID    *uint
	RoomID         *uint
	Name           string
	Description    string
	TriggerType    string
	FrequencyValue int
	FrequencyUnit  string
	UsageUnit      string
	UsageInterval  int64
}

// CreateTask validates the configuration, computes the initial due state
// and persists the task. Time tasks fall due one frequency from now;
// usage tasks fall due one interval past the equipment's current reading
// (or past zero when no reading exists yet).
func (e *Engine) CreateTask(cfg TaskConfig, actorID uint) (*Models.Task, error) {
	if err := normalizeConfig(&cfg); err != nil {
		return nil, err
	}

	task := Models.Task{
		EquipmentID: cfg.EquipmentID,
		RoomID:      cfg.RoomID,
		Name:        cfg.Name,
		Description: cfg.Description,
		TriggerType: cfg.TriggerType,
		CreatedBy:   actorID,
	}

	if cfg.TriggerType == Models.TriggerUsage {
		task.UsageUnit = cfg.UsageUnit
		task.UsageInterval = cfg.UsageInterval

		var base int64
		var equipment Models.Equipment
		if err := e.DB.First(&equipment, *cfg.EquipmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEquipmentNotFound
			}
			return nil, err
		}
		if equipment.CurrentUsage != nil {
			base = *equipment.CurrentUsage
		}
		next := base + cfg.UsageInterval
		task.NextDueUsage = &next
	} else {
		task.FrequencyValue = cfg.FrequencyValue
		task.FrequencyUnit = cfg.FrequencyUnit
		due := NextDue(e.Now(), cfg.FrequencyValue, cfg.FrequencyUnit)
		task.NextDueAt = &due
	}

	if err := e.DB.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a new name/description/schedule configuration and
// recomputes the due state from the last known completion baseline.
// Switching the trigger type clears the opposing schedule fields. The
// parent reference is fixed at creation and ignored here.
func (e *Engine) UpdateTask(taskID uint, cfg TaskConfig) (*Models.Task, error) {
	var task Models.Task
	if err := e.DB.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	cfg.EquipmentID = task.EquipmentID
	cfg.RoomID = task.RoomID
	if cfg.TriggerType == "" {
		cfg.TriggerType = task.TriggerType
	}
	if err := normalizeConfig(&cfg); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":         cfg.Name,
		"description":  cfg.Description,
		"trigger_type": cfg.TriggerType,
	}

	if cfg.TriggerType == Models.TriggerUsage {
		// Baseline: last recorded completion reading, else the owning
		// equipment's current reading, else zero.
		var base int64
		if task.TriggerType == Models.TriggerUsage && task.LastUsageValue != nil {
			base = *task.LastUsageValue
		} else if task.EquipmentID != nil {
			var equipment Models.Equipment
			if err := e.DB.First(&equipment, *task.EquipmentID).Error; err == nil && equipment.CurrentUsage != nil {
				base = *equipment.CurrentUsage
			}
		}
		next := base + cfg.UsageInterval

		updates["usage_unit"] = cfg.UsageUnit
		updates["usage_interval"] = cfg.UsageInterval
		updates["next_due_usage"] = next
		updates["frequency_value"] = 0
		updates["frequency_unit"] = ""
		updates["next_due_at"] = nil
	} else {
		// Baseline: last completion timestamp, else creation time.
		base := task.CreatedAt
		if task.LastCompletedAt != nil {
			base = *task.LastCompletedAt
		}
		due := NextDue(base, cfg.FrequencyValue, cfg.FrequencyUnit)

		updates["frequency_value"] = cfg.FrequencyValue
		updates["frequency_unit"] = cfg.FrequencyUnit
		updates["next_due_at"] = due
		updates["usage_unit"] = ""
		updates["usage_interval"] = 0
		updates["next_due_usage"] = nil
		updates["last_usage_value"] = nil
	}

	if err := e.DB.Model(&Models.Task{}).Where("id = ?", task.ID).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := e.DB.First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task and its completion ledger.
func (e *Engine) DeleteTask(taskID uint) error {
	var task Models.Task
	if err := e.DB.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return e.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("task_id = ?", task.ID).Delete(&Models.TaskCompletion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
}

// normalizeConfig validates parentage and trigger fields and applies the
// documented lenient defaults (frequency value 1, unit month).
func normalizeConfig(cfg *TaskConfig) error {
	if cfg.Name == "" {
		return invalid("name is required")
	}
	if cfg.EquipmentID == nil && cfg.RoomID == nil {
		return invalid("equipment_id or room_id is required")
	}
	if cfg.EquipmentID != nil && cfg.RoomID != nil {
		return invalid("equipment_id and room_id are mutually exclusive")
	}

	if cfg.TriggerType == "" {
		cfg.TriggerType = Models.TriggerTime
	}

	switch cfg.TriggerType {
	case Models.TriggerUsage:
		if cfg.FrequencyValue != 0 || cfg.FrequencyUnit != "" {
			return &InvariantError{Message: "frequency fields are not valid for usage-triggered tasks"}
		}
		if cfg.EquipmentID == nil {
			return invalid("usage-triggered tasks require an equipment parent")
		}
		if cfg.UsageInterval <= 0 {
			return invalid("usage_interval must be a positive integer")
		}
	case Models.TriggerTime:
		if cfg.UsageInterval != 0 || cfg.UsageUnit != "" {
			return &InvariantError{Message: "usage fields are not valid for time-triggered tasks"}
		}
		if cfg.FrequencyValue <= 0 {
			cfg.FrequencyValue = 1
		}
		if cfg.FrequencyUnit == "" {
			cfg.FrequencyUnit = UnitMonth
		}
	default:
		return invalid("trigger_type must be time or usage")
	}
	return nil
}
