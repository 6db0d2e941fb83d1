package Scheduler

import (
	"errors"

	"gorm.io/gorm"

	"HomeSked/Models"
)

// Resync recomputes and persists a task's derived due fields from its
// completion ledger. Only the most recent ledger entry (by completed_at)
// and the task's current frequency/interval configuration feed the
// result, so inserting, editing, or deleting any history entry lands on
// a consistent due state, including retroactively when a back-dated
// entry or a deletion changes which entry is most recent.
func (e *Engine) Resync(taskID uint) (*Models.Task, error) {
	return e.resync(e.DB, taskID)
}

func (e *Engine) resync(db *gorm.DB, taskID uint) (*Models.Task, error) {
	var task Models.Task
	if err := db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	var latest Models.TaskCompletion
	err := db.Where("task_id = ?", taskID).
		Order("completed_at DESC").
		First(&latest).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hasEntry := err == nil

	if task.TriggerType == Models.TriggerUsage {
		task.NextDueAt = nil
		if hasEntry {
			completedAt := latest.CompletedAt
			task.LastCompletedAt = &completedAt
			var last int64
			if latest.UsageValue != nil {
				last = *latest.UsageValue
			}
			next := last + task.UsageInterval
			task.LastUsageValue = &last
			task.NextDueUsage = &next
		} else {
			// Never completed: due one full interval from usage zero.
			task.LastCompletedAt = nil
			task.LastUsageValue = nil
			next := task.UsageInterval
			task.NextDueUsage = &next
		}
	} else {
		task.NextDueUsage = nil
		task.LastUsageValue = nil
		if hasEntry {
			completedAt := latest.CompletedAt
			task.LastCompletedAt = &completedAt
			due := NextDue(completedAt, task.FrequencyValue, task.FrequencyUnit)
			task.NextDueAt = &due
		} else {
			task.LastCompletedAt = nil
			due := NextDue(task.CreatedAt, task.FrequencyValue, task.FrequencyUnit)
			task.NextDueAt = &due
		}
	}

	// Exactly one persisted update; the map form writes NULL for cleared
	// fields.
	err = db.Model(&Models.Task{}).Where("id = ?", task.ID).Updates(map[string]interface{}{
		"last_completed_at": task.LastCompletedAt,
		"last_usage_value":  task.LastUsageValue,
		"next_due_at":       task.NextDueAt,
		"next_due_usage":    task.NextDueUsage,
	}).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}
