package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// bookings
//
// Инварианты:
//   - StartAt < EndAt, длительность не меньше часа;
//   - интервалы [StartAt, EndAt) бронирований одного автомобиля не пересекаются
//     (в Postgres дополнительно закреплено EXCLUDE-ограничением, см. internal/db);
//   - TotalPrice считается один раз при создании и больше не пересчитывается.
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	CarID  uuid.UUID `gorm:"type:uuid;not null;index"`

	PickupLocationID uuid.UUID `gorm:"type:uuid;not null"`
	ReturnLocationID uuid.UUID `gorm:"type:uuid;not null"`

	StartAt time.Time `gorm:"type:timestamp with time zone;not null;index"`
	EndAt   time.Time `gorm:"type:timestamp with time zone;not null"`

	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	IsReturned     bool       `gorm:"not null;default:false;index"`
	ActualReturnAt *time.Time `gorm:"type:timestamp with time zone"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигационные поля для Preload.
	User           *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Car            *Car      `gorm:"foreignKey:CarID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	PickupLocation *Location `gorm:"foreignKey:PickupLocationID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	ReturnLocation *Location `gorm:"foreignKey:ReturnLocationID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// IsActive: бронирование идёт прямо сейчас и машина ещё не возвращена.
func (b *Booking) IsActive(now time.Time) bool {
	return !b.IsReturned && !now.Before(b.StartAt) && !now.After(b.EndAt)
}

// IsOverdue: срок аренды вышел, а машина не возвращена.
// Производный статус, в БД не хранится.
func (b *Booking) IsOverdue(now time.Time) bool {
	return !b.IsReturned && now.After(b.EndAt)
}
