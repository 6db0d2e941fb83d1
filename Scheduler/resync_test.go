package Scheduler

import (
	"errors"
	"testing"
	"time"

	"HomeSked/Models"
)

func TestResyncTimeTaskFollowsLatestCompletion(t *testing.T) {
	e := newTestEngine(t)
	equipment := seedEquipment(t, e, nil)

	task, err := e.CreateTask(TaskConfig{
		EquipmentID:    &equipment.ID,
		Name:           "Replace air filter",
		TriggerType:    Models.TriggerTime,
		FrequencyValue: 3,
		FrequencyUnit:  UnitMonth,
	}, 1)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	completedAt := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	refreshed, _, err := e.Complete(task.ID, 1, CompleteInput{CompletedAt: &completedAt})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if refreshed.LastCompletedAt == nil || !refreshed.LastCompletedAt.Equal(completedAt) {
		t.Errorf("last_completed_at = %v, want %v", refreshed.LastCompletedAt, completedAt)
	}
	wantDue := completedAt.AddDate(0, 3, 0)
	if refreshed.NextDueAt == nil || !refreshed.NextDueAt.Equal(wantDue) {
		t.Errorf("next_due_at = %v, want %v", refreshed.NextDueAt, wantDue)
	}
}

func TestResyncIsIdempotent(t *testing.T) {
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

	completedAt := time.Date(2024, 4, 20, 8, 0, 0, 0, time.UTC)
	if _, _, err := e.Complete(task.ID, 1, CompleteInput{CompletedAt: &completedAt}); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	first, err := e.Resync(task.ID)
	if err != nil {
		t.Fatalf("first Resync: %v", err)
	}
	second, err := e.Resync(task.ID)
	if err != nil {
		t.Fatalf("second Resync: %v", err)
	}

	if !first.NextDueAt.Equal(*second.NextDueAt) {
		t.Errorf("resync not idempotent: %v vs %v", first.NextDueAt, second.NextDueAt)
	}
	if !first.LastCompletedAt.Equal(*second.LastCompletedAt) {
		t.Errorf("resync not idempotent: %v vs %v", first.LastCompletedAt, second.LastCompletedAt)
	}
}

func TestResyncUsesLatestByCompletionTime(t *testing.T) {
	e := newTestEngine(t)
	equipment := seedEquipment(t, e, nil)

	task, err := e.CreateTask(TaskConfig{
		EquipmentID:    &equipment.ID,
		Name:           "Flush sediment",
		FrequencyValue: 1,
		FrequencyUnit:  UnitYear,
	}, 1)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	recent := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	if _, _, err := e.Complete(task.ID, 1, CompleteInput{CompletedAt: &recent}); err != nil {
		t.Fatalf("Complete recent: %v", err)
	}

	// A back-dated entry recorded later must not displace the newer one.
	backdated := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	refreshed, _, err := e.Complete(task.ID, 1, CompleteInput{CompletedAt: &backdated})
	if err != nil {
		t.Fatalf("Complete backdated: %v", err)
	}

	if refreshed.LastCompletedAt == nil || !refreshed.LastCompletedAt.Equal(recent) {
		t.Errorf("last_completed_at = %v, want %v", refreshed.LastCompletedAt, recent)
	}
	wantDue := recent.AddDate(1, 0, 0)
	if refreshed.NextDueAt == nil || !refreshed.NextDueAt.Equal(wantDue) {
		t.Errorf("next_due_at = %v, want %v", refreshed.NextDueAt, wantDue)
	}
}

func TestDeleteCompletionRevertsToCreationBaseline(t *testing.T) {
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

	completedAt := time.Date(2024, 5, 5, 9, 0, 0, 0, time.UTC)
	_, entry, err := e.Complete(task.ID, 1, CompleteInput{CompletedAt: &completedAt})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	refreshed, err := e.DeleteCompletion(task.ID, entry.ID)
	if err != nil {
		t.Fatalf("DeleteCompletion: %v", err)
	}

	if refreshed.LastCompletedAt != nil {
		t.Errorf("last_completed_at = %v, want nil after ledger emptied", refreshed.LastCompletedAt)
	}
	wantDue := NextDue(refreshed.CreatedAt, 1, UnitMonth)
	if refreshed.NextDueAt == nil || !refreshed.NextDueAt.Equal(wantDue) {
		t.Errorf("next_due_at = %v, want creation baseline %v", refreshed.NextDueAt, wantDue)
	}
}

func TestResyncUsageTaskNeverCompleted(t *testing.T) {
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

	refreshed, err := e.Resync(task.ID)
	if err != nil {
		t.Fatalf("Resync: %v", err)
	}
	if refreshed.LastUsageValue != nil {
		t.Errorf("last_usage_value = %v, want nil", *refreshed.LastUsageValue)
	}
	if refreshed.NextDueUsage == nil || *refreshed.NextDueUsage != 5000 {
		t.Errorf("next_due_usage = %v, want 5000", refreshed.NextDueUsage)
	}
	if refreshed.NextDueAt != nil {
		t.Errorf("next_due_at = %v, want nil for usage task", refreshed.NextDueAt)
	}
}

func TestResyncUnknownTask(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.Resync(9999); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Resync(9999) error = %v, want ErrTaskNotFound", err)
	}
}

func TestCreateTaskParentValidation(t *testing.T) {
	e := newTestEngine(t)
	equipment := seedEquipment(t, e, nil)
	roomID := uint(1)

	var validationErr *ValidationError

	_, err := e.CreateTask(TaskConfig{Name: "Orphan"}, 1)
	if !errors.As(err, &validationErr) {
		t.Errorf("no parent: error = %v, want ValidationError", err)
	}

	_, err = e.CreateTask(TaskConfig{
		Name:        "Two parents",
		EquipmentID: &equipment.ID,
		RoomID:      &roomID,
	}, 1)
	if !errors.As(err, &validationErr) {
		t.Errorf("dual parent: error = %v, want ValidationError", err)
	}

	_, err = e.CreateTask(TaskConfig{
		Name:          "Usage on room",
		RoomID:        &roomID,
		TriggerType:   Models.TriggerUsage,
		UsageInterval: 100,
	}, 1)
	if !errors.As(err, &validationErr) {
		t.Errorf("usage task on room: error = %v, want ValidationError", err)
	}
}

func TestCreateTaskTriggerFieldMismatch(t *testing.T) {
	e := newTestEngine(t)
	equipment := seedEquipment(t, e, nil)

	var invariantErr *InvariantError

	_, err := e.CreateTask(TaskConfig{
		Name:           "Usage with frequency",
		EquipmentID:    &equipment.ID,
		TriggerType:    Models.TriggerUsage,
		UsageInterval:  100,
		FrequencyValue: 2,
	}, 1)
	if !errors.As(err, &invariantErr) {
		t.Errorf("usage task with frequency fields: error = %v, want InvariantError", err)
	}

	_, err = e.CreateTask(TaskConfig{
		Name:          "Time with interval",
		EquipmentID:   &equipment.ID,
		TriggerType:   Models.TriggerTime,
		UsageInterval: 100,
	}, 1)
	if !errors.As(err, &invariantErr) {
		t.Errorf("time task with usage fields: error = %v, want InvariantError", err)
	}
}

func TestUpdateTaskRebasesOnLastCompletion(t *testing.T) {
	e := newTestEngine(t)
	equipment := seedEquipment(t, e, nil)

	task, err := e.CreateTask(TaskConfig{
		EquipmentID:    &equipment.ID,
		Name:           "Deep clean",
		FrequencyValue: 1,
		FrequencyUnit:  UnitMonth,
	}, 1)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	completedAt := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	if _, _, err := e.Complete(task.ID, 1, CompleteInput{CompletedAt: &completedAt}); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	// Stretching the frequency reprojects from the last completion, not
	// from now.
	updated, err := e.UpdateTask(task.ID, TaskConfig{
		Name:           "Deep clean",
		FrequencyValue: 6,
		FrequencyUnit:  UnitMonth,
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	wantDue := completedAt.AddDate(0, 6, 0)
	if updated.NextDueAt == nil || !updated.NextDueAt.Equal(wantDue) {
		t.Errorf("next_due_at = %v, want %v", updated.NextDueAt, wantDue)
	}
}

func TestUpdateTaskSwitchesTriggerType(t *testing.T) {
	e := newTestEngine(t)
	equipment := seedEquipment(t, e, int64Ptr(12000))

	task, err := e.CreateTask(TaskConfig{
		EquipmentID:    &equipment.ID,
		Name:           "Service",
		FrequencyValue: 1,
		FrequencyUnit:  UnitYear,
	}, 1)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	updated, err := e.UpdateTask(task.ID, TaskConfig{
		Name:          "Service",
		TriggerType:   Models.TriggerUsage,
		UsageUnit:     "miles",
		UsageInterval: 5000,
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	// Time-side fields must clear; the usage threshold rebases on the
	// equipment's reading.
	if updated.NextDueAt != nil {
		t.Errorf("next_due_at = %v, want nil after switch to usage", updated.NextDueAt)
	}
	if updated.NextDueUsage == nil || *updated.NextDueUsage != 17000 {
		t.Errorf("next_due_usage = %v, want 17000", updated.NextDueUsage)
	}
	if updated.FrequencyValue != 0 || updated.FrequencyUnit != "" {
		t.Errorf("frequency fields not cleared: %d %q", updated.FrequencyValue, updated.FrequencyUnit)
	}
}
