package Scheduler

import (
	"testing"
	"time"

	"HomeSked/Models"
)

func timeTask(nextDue *time.Time) *Models.Task {
	return &Models.Task{
		TriggerType: Models.TriggerTime,
		TimeTrigger: Models.TimeTrigger{NextDueAt: nextDue},
	}
}

func usageTask(interval int64, nextDue *int64) *Models.Task {
	return &Models.Task{
		TriggerType:  Models.TriggerUsage,
		UsageTrigger: Models.UsageTrigger{UsageInterval: interval, NextDueUsage: nextDue},
	}
}

func TestClassifyTimeTask(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		nextDue *time.Time
		want    string
	}{
		{"no due date", nil, StatusOK},
		{"one second past due", timePtr(now.Add(-time.Second)), StatusOverdue},
		{"long overdue", timePtr(now.AddDate(0, -2, 0)), StatusOverdue},
		{"due exactly now", timePtr(now), StatusDueSoon},
		{"due within the window", timePtr(now.Add(3 * 24 * time.Hour)), StatusDueSoon},
		{"due one second inside the window", timePtr(now.Add(DueSoonWindow - time.Second)), StatusDueSoon},
		{"due exactly at the window edge", timePtr(now.Add(DueSoonWindow)), StatusDueSoon},
		{"due one second past the window", timePtr(now.Add(DueSoonWindow + time.Second)), StatusOK},
		{"due far in the future", timePtr(now.AddDate(1, 0, 0)), StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(timeTask(tc.nextDue), nil, now)
			if got != tc.want {
				t.Errorf("Classify = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClassifyUsageTask(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	// Interval 5000 and next due at 10000 gives a due-soon margin of 500,
	// so the due-soon band starts at 9500.
	tests := []struct {
		name     string
		interval int64
		nextDue  *int64
		reading  *int64
		want     string
	}{
		{"no due threshold", 5000, nil, int64Ptr(9999), StatusOK},
		{"no reading yet", 5000, int64Ptr(10000), nil, StatusOK},
		{"reading well below band", 5000, int64Ptr(10000), int64Ptr(9400), StatusOK},
		{"reading at band start", 5000, int64Ptr(10000), int64Ptr(9500), StatusDueSoon},
		{"reading inside band", 5000, int64Ptr(10000), int64Ptr(9600), StatusDueSoon},
		{"reading at threshold", 5000, int64Ptr(10000), int64Ptr(10000), StatusOverdue},
		{"reading past threshold", 5000, int64Ptr(10000), int64Ptr(12000), StatusOverdue},
		{"margin rounds up", 101, int64Ptr(101), int64Ptr(90), StatusDueSoon}, // margin 11, band starts at 90
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(usageTask(tc.interval, tc.nextDue), tc.reading, now)
			if got != tc.want {
				t.Errorf("Classify = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAnnotateResolvesEquipmentReadings(t *testing.T) {
	e := newTestEngine(t)
	equipment := seedEquipment(t, e, int64Ptr(9600))

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

	// Next due is 9600 + 5000 = 14600; reading 14200 is inside the
	// 500-wide due-soon band.
	if err := e.DB.Model(&Models.Equipment{}).Where("id = ?", equipment.ID).
		Update("current_usage", 14200).Error; err != nil {
		t.Fatalf("failed to update reading: %v", err)
	}

	tasks := []Models.Task{*task}
	if err := e.Annotate(tasks); err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if tasks[0].Status != StatusDueSoon {
		t.Errorf("annotated status = %q, want %q", tasks[0].Status, StatusDueSoon)
	}
}
