package model

import (
	"time"

	"github.com/google/uuid"
)

// Роль пользователя в системе.
type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleAdmin    UserRole = "admin"
)

// users
type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Username     string `gorm:"type:varchar(150);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`

	Role UserRole `gorm:"type:varchar(32);not null;default:'customer';index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигационные поля (опционально)
	Bookings []Booking `gorm:"foreignKey:UserID"`
}
