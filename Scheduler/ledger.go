package Scheduler

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"HomeSked/Models"
)

// CompleteInput carries the optional fields of a completion request.
type CompleteInput struct {
	CompletedAt *time.Time
	UsageValue  *int64
	Notes       string
}

// CompletionEdit patches an existing ledger entry. CompletedAt is
// required; UsageValue and Notes keep their prior values when nil.
type CompletionEdit struct {
	CompletedAt *time.Time
	UsageValue  *int64
	Notes       *string
}

// Complete appends a ledger entry for the task and resyncs it. A supplied
// CompletedAt back-dates the entry; otherwise the clock time is used. For
// usage-triggered tasks a reported reading ratchets the owning
// equipment's current_usage upward; a reading lower than the stored one
// never overwrites it, modelling odometer-style monotonic counters.
// The insert, the ratchet, and the resync commit as one transaction, so
// a reader immediately after the call observes consistent derived state.
func (e *Engine) Complete(taskID, actorID uint, in CompleteInput) (*Models.Task, *Models.TaskCompletion, error) {
	var task Models.Task
	if err := e.DB.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTaskNotFound
		}
		return nil, nil, err
	}

	if task.TriggerType != Models.TriggerUsage && in.UsageValue != nil {
		return nil, nil, &InvariantError{Message: "usage_value is only valid for usage-triggered tasks"}
	}

	completedAt := e.Now()
	if in.CompletedAt != nil {
		completedAt = *in.CompletedAt
	}

	entry := Models.TaskCompletion{
		TaskID:      task.ID,
		CompletedBy: actorID,
		CompletedAt: completedAt,
		UsageValue:  in.UsageValue,
		Notes:       in.Notes,
	}

	var refreshed *Models.Task
	err := e.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		if task.TriggerType == Models.TriggerUsage && in.UsageValue != nil && task.EquipmentID != nil {
			if err := ratchetUsage(tx, *task.EquipmentID, *in.UsageValue); err != nil {
				return err
			}
		}
		var err error
		refreshed, err = e.resync(tx, task.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return refreshed, &entry, nil
}

// EditCompletion patches a ledger entry in place and resyncs the task.
// The equipment usage ratchet is not re-applied for edited readings: an
// edit changes the ledger and the task's derived state only, never the
// equipment's stored reading.
func (e *Engine) EditCompletion(taskID, completionID uint, in CompletionEdit) (*Models.Task, error) {
	if in.CompletedAt == nil {
		return nil, invalid("completed_at is required")
	}

	var entry Models.TaskCompletion
	err := e.DB.Where("task_id = ?", taskID).First(&entry, completionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompletionNotFound
		}
		return nil, err
	}

	entry.CompletedAt = *in.CompletedAt
	if in.UsageValue != nil {
		entry.UsageValue = in.UsageValue
	}
	if in.Notes != nil {
		entry.Notes = *in.Notes
	}

	var refreshed *Models.Task
	err = e.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&entry).Error; err != nil {
			return err
		}
		var err error
		refreshed, err = e.resync(tx, taskID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return refreshed, nil
}

// DeleteCompletion removes a ledger entry and resyncs the task; its due
// state reverts to whatever the remaining history implies, or to the
// never-completed baseline if the ledger is now empty.
func (e *Engine) DeleteCompletion(taskID, completionID uint) (*Models.Task, error) {
	var entry Models.TaskCompletion
	err := e.DB.Where("task_id = ?", taskID).First(&entry, completionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompletionNotFound
		}
		return nil, err
	}

	var refreshed *Models.Task
	err = e.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&entry).Error; err != nil {
			return err
		}
		var err error
		refreshed, err = e.resync(tx, taskID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return refreshed, nil
}

// ratchetUsage lifts equipment.current_usage to reading, never lowering
// it. The dedicated usage PATCH endpoint is the unconditional-overwrite
// path; this is the monotonic one.
func ratchetUsage(tx *gorm.DB, equipmentID uint, reading int64) error {
	var equipment Models.Equipment
	if err := tx.First(&equipment, equipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEquipmentNotFound
		}
		return err
	}
	if equipment.CurrentUsage != nil && *equipment.CurrentUsage >= reading {
		return nil
	}
	return tx.Model(&equipment).Update("current_usage", reading).Error
}
