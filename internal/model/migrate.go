package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей сервиса аренды.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Location{},
		&Car{},
		&Booking{},
		&Event{},
	)
}
