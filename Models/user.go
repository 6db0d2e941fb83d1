package Models

import "gorm.io/gorm"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	Email        string `json:"email"`
	PasswordHash []byte `json:"-" gorm:"not null"`
	Role         string `json:"role" gorm:"not null;default:member"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
