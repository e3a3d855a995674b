package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mkravtsov/rental-platform/internal/model"
	"github.com/mkravtsov/rental-platform/internal/rental"
)

// CarFilter — предикаты поиска по каталогу. Нулевые значения не применяются.
type CarFilter struct {
	Brand        string
	Category     model.CarCategory
	Transmission model.Transmission
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	MinSeats     *int

	// Окно доступности: исключить автомобили, у которых есть бронирование,
	// пересекающееся с [AvailableFrom, AvailableTo).
	AvailableFrom *time.Time
	AvailableTo   *time.Time
}

type CarRepository interface {
	// Создать автомобиль.
	Create(ctx context.Context, car *model.Car) error
	// Найти автомобиль по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Car, error)
	// Обновить карточку автомобиля.
	Update(ctx context.Context, car *model.Car) error
	// Удалить автомобиль.
	Delete(ctx context.Context, id uuid.UUID) error
	// Поиск по фильтрам с пагинацией.
	List(ctx context.Context, filter CarFilter, limit, offset int) ([]model.Car, int64, error)
	// Случайные доступные автомобили для витрины.
	Featured(ctx context.Context, n int) ([]model.Car, error)
}

type GormCarRepository struct {
	db *gorm.DB
}

func NewGormCarRepository(db *gorm.DB) *GormCarRepository {
	return &GormCarRepository{db: db}
}

func (r *GormCarRepository) Create(ctx context.Context, car *model.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

func (r *GormCarRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	var car model.Car
	if err := r.db.WithContext(ctx).First(&car, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rental.ErrCarNotFound
		}
		return nil, err
	}
	return &car, nil
}

func (r *GormCarRepository) Update(ctx context.Context, car *model.Car) error {
	return r.db.WithContext(ctx).
		Model(&model.Car{}).
		Where("id = ?", car.ID).
		Updates(car).
		Error
}

func (r *GormCarRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Car{}, "id = ?", id).Error
}

func (r *GormCarRepository) List(
	ctx context.Context,
	filter CarFilter,
	limit, offset int,
) ([]model.Car, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Car{})

	if filter.Brand != "" {
		q = q.Where("LOWER(brand) LIKE LOWER(?)", "%"+filter.Brand+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Transmission != "" {
		q = q.Where("transmission = ?", filter.Transmission)
	}
	if filter.MinPrice != nil {
		q = q.Where("price_per_day >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price_per_day <= ?", filter.MaxPrice)
	}
	if filter.MinSeats != nil {
		q = q.Where("seats >= ?", *filter.MinSeats)
	}

	if filter.AvailableFrom != nil && filter.AvailableTo != nil {
		// Полуоткрытое пересечение: start_at < to AND end_at > from.
		sub := r.db.Model(&model.Booking{}).
			Select("car_id").
			Where("start_at < ? AND end_at > ?", filter.AvailableTo, filter.AvailableFrom)
		q = q.Where("is_available = ?", true).Where("id NOT IN (?)", sub)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var cars []model.Car
	if err := q.Order("brand ASC, name ASC").Find(&cars).Error; err != nil {
		return nil, 0, err
	}

	return cars, total, nil
}

func (r *GormCarRepository) Featured(ctx context.Context, n int) ([]model.Car, error) {
	var cars []model.Car
	err := r.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("RANDOM()").
		Limit(n).
		Find(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}
