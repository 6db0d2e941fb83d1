package Models

import "gorm.io/gorm"

type Home struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	Address   string `json:"address"`
	CreatedBy uint   `json:"created_by" gorm:"index"`

	// Relationships
	Rooms []Room `json:"rooms,omitempty" gorm:"foreignKey:HomeID;constraint:OnDelete:CASCADE"`

	// Calculated fields
	CreatedByName string `json:"created_by_name,omitempty" gorm:"-"`
	RoomCount     int64  `json:"room_count" gorm:"-"`
}

type Room struct {
	gorm.Model
	HomeID      uint   `json:"home_id" gorm:"not null;index"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`

	// Relationships
	Equipment []Equipment `json:"equipment,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	Tasks     []Task      `json:"tasks,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`

	// Calculated fields
	EquipmentCount int64 `json:"equipment_count" gorm:"-"`
}

type HomeRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
}

type RoomRequest struct {
	HomeID      uint   `json:"home_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}
