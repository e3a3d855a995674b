package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkravtsov/rental-platform/internal/model"
	"github.com/mkravtsov/rental-platform/internal/rental"
)

type LocationRepository interface {
	// Создать локацию.
	Create(ctx context.Context, loc *model.Location) error
	// Найти локацию по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Location, error)
	// Обновить локацию.
	Update(ctx context.Context, loc *model.Location) error
	// Удалить локацию.
	Delete(ctx context.Context, id uuid.UUID) error
	// Все локации.
	List(ctx context.Context) ([]model.Location, error)
	// Локация по умолчанию; создаётся при первом обращении.
	GetOrCreateDefault(ctx context.Context) (*model.Location, error)
}

type GormLocationRepository struct {
	db *gorm.DB
}

func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

func (r *GormLocationRepository) Create(ctx context.Context, loc *model.Location) error {
	return r.db.WithContext(ctx).Create(loc).Error
}

func (r *GormLocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	var loc model.Location
	if err := r.db.WithContext(ctx).First(&loc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rental.ErrLocationNotFound
		}
		return nil, err
	}
	return &loc, nil
}

func (r *GormLocationRepository) Update(ctx context.Context, loc *model.Location) error {
	return r.db.WithContext(ctx).
		Model(&model.Location{}).
		Where("id = ?", loc.ID).
		Updates(loc).
		Error
}

func (r *GormLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Location{}, "id = ?", id).Error
}

func (r *GormLocationRepository) List(ctx context.Context) ([]model.Location, error) {
	var locs []model.Location
	if err := r.db.WithContext(ctx).Order("city ASC, name ASC").Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

func (r *GormLocationRepository) GetOrCreateDefault(ctx context.Context) (*model.Location, error) {
	loc := model.Location{
		ID:      uuid.New(),
		Address: "123 Main Street",
		City:    "Cityville",
		Phone:   "555-1234",
	}
	err := r.db.WithContext(ctx).
		Where(model.Location{Name: model.DefaultLocationName}).
		Attrs(loc).
		FirstOrCreate(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}
