package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/mkravtsov/rental-platform/internal/model"
	"github.com/mkravtsov/rental-platform/internal/rental"
)

// Код exclusion_violation в Postgres: сработало EXCLUDE-ограничение
// на пересечение интервалов бронирований одного автомобиля.
const pgExclusionViolation = "23P01"

type BookingRepository interface {
	// Создать новое бронирование.
	Create(ctx context.Context, booking *model.Booking) error
	// Получить бронирование по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	// Все бронирования автомобиля — снимок для проверки пересечений.
	ListByCar(ctx context.Context, carID uuid.UUID) ([]model.Booking, error)
	// Бронирования пользователя, свежие сверху.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Booking, error)
	// Удалить бронирование (отмена).
	Delete(ctx context.Context, id uuid.UUID) error
	// Пометить бронирования возвращёнными. Уже возвращённые не трогает.
	MarkReturned(ctx context.Context, ids []uuid.UUID, returnedAt time.Time) (int64, error)
}

// Реализация на GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	err := r.db.WithContext(ctx).Create(booking).Error
	if err == nil {
		return nil
	}

	// Гонка двух заявок на один автомобиль: оптимистичная проверка прошла
	// у обоих, но ограничение хранилища пропустило только первого.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
		return rental.ErrCarUnavailable
	}

	return err
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	err := r.db.WithContext(ctx).
		Preload("Car").
		Preload("PickupLocation").
		Preload("ReturnLocation").
		First(&b, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rental.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) ListByCar(ctx context.Context, carID uuid.UUID) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Where("car_id = ?", carID).
		Order("start_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Car").
		Preload("PickupLocation").
		Preload("ReturnLocation").
		Where("user_id = ?", userID).
		Order("start_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Booking{}, "id = ?", id).Error
}

func (r *GormBookingRepository) MarkReturned(
	ctx context.Context,
	ids []uuid.UUID,
	returnedAt time.Time,
) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id IN ? AND is_returned = ?", ids, false).
		Updates(map[string]any{
			"is_returned":      true,
			"actual_return_at": returnedAt,
		})
	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}
