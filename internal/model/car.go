package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Тип коробки передач.
type Transmission string

const (
	TransmissionAutomatic Transmission = "automatic"
	TransmissionManual    Transmission = "manual"
)

// Категория автомобиля.
type CarCategory string

const (
	CarCategoryEconomy CarCategory = "economy"
	CarCategoryCompact CarCategory = "compact"
	CarCategoryLuxury  CarCategory = "luxury"
	CarCategorySUV     CarCategory = "suv"
	CarCategoryVan     CarCategory = "van"
)

// cars — справочник автомобилей, управляется администратором.
type Car struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Brand string `gorm:"type:varchar(50);not null;index"`
	Name  string `gorm:"type:varchar(100);not null"`

	// Стоимость аренды за сутки. Всегда > 0, храним как NUMERIC(10,2).
	PricePerDay decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	IsAvailable bool `gorm:"not null;default:true;index"`

	Description  string       `gorm:"type:text"`
	Year         *int         `gorm:"type:int"`
	Mileage      *int         `gorm:"type:int"`
	FuelType     string       `gorm:"type:varchar(50)"`
	Transmission Transmission `gorm:"type:varchar(50)"`
	Seats        int          `gorm:"not null;default:5"`
	Category     CarCategory  `gorm:"type:varchar(50);index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}
