package model

import (
	"time"

	"github.com/google/uuid"
)

// Имя локации по умолчанию: используется, когда клиент не выбрал
// место получения или возврата.
const DefaultLocationName = "Main Office"

// locations — пункты выдачи и возврата автомобилей.
type Location struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name    string `gorm:"type:varchar(100);not null"`
	Address string `gorm:"type:varchar(255);not null"`
	City    string `gorm:"type:varchar(100);not null;index"`
	Phone   string `gorm:"type:varchar(20)"`

	Latitude  *float64 `gorm:"type:double precision"`
	Longitude *float64 `gorm:"type:double precision"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}
