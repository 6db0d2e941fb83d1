package Models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TriggerTime  = "time"
	TriggerUsage = "usage"
)

// TimeTrigger holds the schedule fields of calendar-driven tasks.
// NextDueAt and LastCompletedAt are derived projections of the completion
// ledger, recomputed on every ledger change.
type TimeTrigger struct {
	FrequencyValue  int        `json:"frequency_value"`
	FrequencyUnit   string     `json:"frequency_unit"`
	NextDueAt       *time.Time `json:"next_due_at"`
	LastCompletedAt *time.Time `json:"last_completed_at"`
}

// UsageTrigger holds the schedule fields of usage-counter tasks.
// NextDueUsage is the absolute reading at which the task falls due.
type UsageTrigger struct {
	UsageUnit      string `json:"usage_unit"`
	UsageInterval  int64  `json:"usage_interval"`
	NextDueUsage   *int64 `json:"next_due_usage"`
	LastUsageValue *int64 `json:"last_usage_value"`
}

// Task is a recurring maintenance item. It belongs to exactly one of an
// equipment or a room. The TriggerType selects which embedded trigger
// block is live; the opposing block's fields stay NULL.
type Task struct {
	gorm.Model
	EquipmentID *uint  `json:"equipment_id" gorm:"index"`
	RoomID      *uint  `json:"room_id" gorm:"index"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	TriggerType string `json:"trigger_type" gorm:"not null;default:time"`

	TimeTrigger  `gorm:"embedded"`
	UsageTrigger `gorm:"embedded"`

	CreatedBy uint `json:"created_by" gorm:"index"`

	// Relationships
	Completions []TaskCompletion `json:"completions,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`

	// Calculated fields, derived on every read, never stored
	Status        string `json:"status,omitempty" gorm:"-"`
	CreatedByName string `json:"created_by_name,omitempty" gorm:"-"`
}

// TaskCompletion is one entry of the append-only completion ledger. The
// ledger, not the task's cached due fields, is the source of truth for a
// task's due state.
type TaskCompletion struct {
	gorm.Model
	TaskID      uint      `json:"task_id" gorm:"not null;index"`
	CompletedBy uint      `json:"completed_by" gorm:"index"`
	CompletedAt time.Time `json:"completed_at" gorm:"not null;index"`
	UsageValue  *int64    `json:"usage_value"`
	Notes       string    `json:"notes" gorm:"type:text"`

	// Calculated fields
	CompletedByName string `json:"completed_by_name,omitempty" gorm:"-"`
}

type TaskRequest struct {
	EquipmentID    *uint  `json:"equipment_id"`
	RoomID         *uint  `json:"room_id"`
	Name           string `json:"name" validate:"required"`
	Description    string `json:"description"`
	TriggerType    string `json:"trigger_type" validate:"omitempty,oneof=time usage"`
	FrequencyValue int    `json:"frequency_value"`
	FrequencyUnit  string `json:"frequency_unit"`
	UsageUnit      string `json:"usage_unit"`
	UsageInterval  int64  `json:"usage_interval"`
}

type CompleteRequest struct {
	CompletedAt *time.Time `json:"completed_at"`
	UsageValue  *int64     `json:"usage_value"`
	Notes       string     `json:"notes"`
}

type CompletionEditRequest struct {
	CompletedAt *time.Time `json:"completed_at"`
	UsageValue  *int64     `json:"usage_value"`
	Notes       *string    `json:"notes"`
}
