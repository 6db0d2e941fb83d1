package Scheduler

import (
	"errors"
	"testing"
	"time"

	"HomeSked/Models"
)

func TestUsageCompletionFlow(t *testing.T) {
	e := newTestEngine(t)
	equipment := seedEquipment(t, e, nil)

	task, err := e.CreateTask(TaskConfig{
		EquipmentID:   &equipment.ID,
		Name:          "Oil change",
		TriggerType:   Models.TriggerUsage,
		UsageUnit:     "miles",
		UsageInterval: 5000,
	}, 1)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	// No reading on the equipment yet, so the first threshold is one
	// interval past zero.
	if task.NextDueUsage == nil || *task.NextDueUsage != 5000 {
		t.Fatalf("initial next_due_usage = %v, want 5000", task.NextDueUsage)
	}
	if task.LastUsageValue != nil {
		t.Fatalf("initial last_usage_value = %v, want nil", *task.LastUsageValue)
	}

	refreshed, entry, err := e.Complete(task.ID, 1, CompleteInput{UsageValue: int64Ptr(5200)})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if refreshed.LastUsageValue == nil || *refreshed.LastUsageValue != 5200 {
		t.Errorf("last_usage_value = %v, want 5200", refreshed.LastUsageValue)
	}
	if refreshed.NextDueUsage == nil || *refreshed.NextDueUsage != 10200 {
		t.Errorf("next_due_usage = %v, want 10200", refreshed.NextDueUsage)
	}
	if !entry.CompletedAt.Equal(testClock) {
		t.Errorf("completed_at = %v, want clock default %v", entry.CompletedAt, testClock)
	}

	// The reported reading lifted the equipment counter.
	var reloaded Models.Equipment
	if err := e.DB.First(&reloaded, equipment.ID).Error; err != nil {
		t.Fatalf("reload equipment: %v", err)
	}
	if reloaded.CurrentUsage == nil || *reloaded.CurrentUsage != 5200 {
		t.Errorf("equipment current_usage = %v, want 5200", reloaded.CurrentUsage)
	}
}

func TestUsageRatchetIsMonotonic(t *testing.T) {
	e := newTestEngine(t)
	equipment := seedEquipment(t, e, nil)

	task, err := e.CreateTask(TaskConfig{
		EquipmentID:   &equipment.ID,
		Name:          "Tire rotation",
		TriggerType:   Models.TriggerUsage,
		UsageUnit:     "miles",
		UsageInterval: 7500,
	}, 1)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	first := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	if _, _, err := e.Complete(task.ID, 1, CompleteInput{CompletedAt: &first, UsageValue: int64Ptr(6000)}); err != nil {
		t.Fatalf("first Complete: %v", err)
	}

	// A later completion with a lower reading still enters the ledger and
	// drives the task's derived state, but never lowers the equipment
	// counter.
	second := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	refreshed, _, err := e.Complete(task.ID, 1, CompleteInput{CompletedAt: &second, UsageValue: int64Ptr(5500)})
	if err != nil {
		t.Fatalf("second Complete: %v", err)
	}

	var reloaded Models.Equipment
	if err := e.DB.First(&reloaded, equipment.ID).Error; err != nil {
		t.Fatalf("reload equipment: %v", err)
	}
	if reloaded.CurrentUsage == nil || *reloaded.CurrentUsage != 6000 {
		t.Errorf("equipment current_usage = %v, want ratcheted 6000", reloaded.CurrentUsage)
	}

	if refreshed.LastUsageValue == nil || *refreshed.LastUsageValue != 5500 {
		t.Errorf("last_usage_value = %v, want 5500 from latest entry", refreshed.LastUsageValue)
	}
	if refreshed.NextDueUsage == nil || *refreshed.NextDueUsage != 13000 {
		t.Errorf("next_due_usage = %v, want 13000", refreshed.NextDueUsage)
	}
}

func TestCompleteRejectsUsageValueOnTimeTask(t *testing.T) {
	e := newTestEngine(t)
	equipment := seedEquipment(t, e, nil)

	task, err := e.CreateTask(TaskConfig{
		EquipmentID:    &equipment.ID,
		Name:           "Test alarm",
		FrequencyValue: 1,
		FrequencyUnit:  UnitMonth,
	}, 1)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	var invariantErr *InvariantError
	_, _, err = e.Complete(task.ID, 1, CompleteInput{UsageValue: int64Ptr(100)})
	if !errors.As(err, &invariantErr) {
		t.Errorf("error = %v, want InvariantError", err)
	}

	// The rejected completion must not have entered the ledger.
	var count int64
	e.DB.Model(&Models.TaskCompletion{}).Where("task_id = ?", task.ID).Count(&count)
	if count != 0 {
		t.Errorf("ledger entries = %d, want 0", count)
	}
}

func TestCompleteUnknownTask(t *testing.T) {
	e := newTestEngine(t)
	if _, _, err := e.Complete(424242, 1, CompleteInput{}); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("error = %v, want ErrTaskNotFound", err)
	}
}

func TestEditCompletionRequiresTimestamp(t *testing.T) {
	e := newTestEngine(t)
	equipment := seedEquipment(t, e, nil)

	task, err := e.CreateTask(TaskConfig{
		EquipmentID:    &equipment.ID,
		Name:           "Clean drum",
		FrequencyValue: 1,
		FrequencyUnit:  UnitMonth,
	}, 1)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	_, entry, err := e.Complete(task.ID, 1, CompleteInput{})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	var validationErr *ValidationError
	_, err = e.EditCompletion(task.ID, entry.ID, CompletionEdit{})
	if !errors.As(err, &validationErr) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func TestEditCompletionResyncsButKeepsEquipmentReading(t *testing.T) {
	e := newTestEngine(t)
	equipment := seedEquipment(t, e, nil)

	task, err := e.CreateTask(TaskConfig{
		EquipmentID:   &equipment.ID,
		Name:          "Oil change",
		TriggerType:   Models.TriggerUsage,
		UsageUnit:     "hours",
		UsageInterval: 100,
	}, 1)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	completedAt := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	_, entry, err := e.Complete(task.ID, 1, CompleteInput{CompletedAt: &completedAt, UsageValue: int64Ptr(110)})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	edited := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	refreshed, err := e.EditCompletion(task.ID, entry.ID, CompletionEdit{
		CompletedAt: &edited,
		UsageValue:  int64Ptr(250),
	})
	if err != nil {
		t.Fatalf("EditCompletion: %v", err)
	}

	if refreshed.LastUsageValue == nil || *refreshed.LastUsageValue != 250 {
		t.Errorf("last_usage_value = %v, want 250", refreshed.LastUsageValue)
	}
	if refreshed.NextDueUsage == nil || *refreshed.NextDueUsage != 350 {
		t.Errorf("next_due_usage = %v, want 350", refreshed.NextDueUsage)
	}
	if refreshed.LastCompletedAt == nil || !refreshed.LastCompletedAt.Equal(edited) {
		t.Errorf("last_completed_at = %v, want %v", refreshed.LastCompletedAt, edited)
	}

	// The ratchet only runs on the original completion; edits never touch
	// the equipment counter.
	var reloaded Models.Equipment
	if err := e.DB.First(&reloaded, equipment.ID).Error; err != nil {
		t.Fatalf("reload equipment: %v", err)
	}
	if reloaded.CurrentUsage == nil || *reloaded.CurrentUsage != 110 {
		t.Errorf("equipment current_usage = %v, want untouched 110", reloaded.CurrentUsage)
	}
}

func TestEditCompletionWrongTask(t *testing.T) {
	e := newTestEngine(t)
	equipment := seedEquipment(t, e, nil)

	task, err := e.CreateTask(TaskConfig{
		EquipmentID:    &equipment.ID,
		Name:           "Clean filter",
		FrequencyValue: 1,
		FrequencyUnit:  UnitMonth,
	}, 1)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	_, entry, err := e.Complete(task.ID, 1, CompleteInput{})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	// The completion id is scoped to its task; a mismatched pair is not
	// found.
	edited := testClock
	_, err = e.EditCompletion(task.ID+1, entry.ID, CompletionEdit{CompletedAt: &edited})
	if !errors.Is(err, ErrCompletionNotFound) {
		t.Errorf("error = %v, want ErrCompletionNotFound", err)
	}
}

func TestDeleteCompletionUnknown(t *testing.T) {
	e := newTestEngine(t)
	equipment := seedEquipment(t, e, nil)

	task, err := e.CreateTask(TaskConfig{
		EquipmentID:    &equipment.ID,
		Name:           "Skim surface",
		FrequencyValue: 2,
		FrequencyUnit:  UnitWeek,
	}, 1)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if _, err := e.DeleteCompletion(task.ID, 777); !errors.Is(err, ErrCompletionNotFound) {
		t.Errorf("error = %v, want ErrCompletionNotFound", err)
	}
}
