package Models

import "gorm.io/gorm"

// Equipment is a serviceable item inside a room. CurrentUsage is the
// cumulative counter reading (odometer, hour meter) that usage-triggered
// tasks are measured against; nil means no reading has been recorded yet.
type Equipment struct {
	gorm.Model
	RoomID       uint   `json:"room_id" gorm:"not null;index"`
	Name         string `json:"name" gorm:"not null"`
	Description  string `json:"description"`
	Make         string `json:"make"`
	ModelName    string `json:"model" gorm:"column:model"`
	SerialNumber string `json:"serial_number"`
	Notes        string `json:"notes" gorm:"type:text"`
	PresetType   string `json:"preset_type"`
	CurrentUsage *int64 `json:"current_usage"`
	UsageUnit    string `json:"usage_unit"`

	// Relationships
	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:EquipmentID;constraint:OnDelete:CASCADE"`

	// Calculated fields for list badges
	TaskCount    int64 `json:"task_count" gorm:"-"`
	OverdueCount int64 `json:"overdue_count" gorm:"-"`
	DueSoonCount int64 `json:"due_soon_count" gorm:"-"`
}

type EquipmentRequest struct {
	RoomID       uint   `json:"room_id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	Make         string `json:"make"`
	ModelName    string `json:"model"`
	SerialNumber string `json:"serial_number"`
	Notes        string `json:"notes"`
	PresetType   string `json:"preset_type"`
	CurrentUsage *int64 `json:"current_usage"`
	UsageUnit    string `json:"usage_unit"`
}

// UsageUpdateRequest is the lightweight PATCH body for overwriting the
// usage reading directly, independent of the completion ratchet.
type UsageUpdateRequest struct {
	CurrentUsage *int64 `json:"current_usage" validate:"required"`
}
