package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mkravtsov/rental-platform/internal/model"
	"github.com/mkravtsov/rental-platform/internal/rental"
	"github.com/mkravtsov/rental-platform/internal/repository"
)

// Количество автомобилей на витрине главной страницы.
const featuredCount = 3

// CarService — каталог автомобилей: поиск, витрина, административный CRUD.
type CarService struct {
	carRepo repository.CarRepository
	log     *logrus.Logger
}

func NewCarService(carRepo repository.CarRepository, log *logrus.Logger) *CarService {
	return &CarService{carRepo: carRepo, log: log}
}

// List выполняет поиск по фильтрам с пагинацией.
func (s *CarService) List(
	ctx context.Context,
	filter repository.CarFilter,
	page, pageSize int,
) (rental.Page[model.Car], error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	cars, total, err := s.carRepo.List(ctx, filter, pageSize, offset)
	if err != nil {
		return rental.Page[model.Car]{}, fmt.Errorf("list cars: %w", err)
	}

	return rental.Page[model.Car]{
		Items:    cars,
		Page:     page,
		PageSize: pageSize,
		HasNext:  offset+len(cars) < int(total),
		HasPrev:  page > 1,
		Total:    int(total),
	}, nil
}

// Get возвращает карточку автомобиля.
func (s *CarService) Get(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	return s.carRepo.GetByID(ctx, id)
}

// Featured — случайные доступные автомобили для главной страницы.
func (s *CarService) Featured(ctx context.Context) ([]model.Car, error) {
	return s.carRepo.Featured(ctx, featuredCount)
}

// Create добавляет автомобиль в каталог (административная операция).
func (s *CarService) Create(ctx context.Context, car *model.Car) error {
	if !car.PricePerDay.IsPositive() {
		return rental.ErrInvalidPrice
	}
	if car.Brand == "" || car.Name == "" {
		return fmt.Errorf("%w: brand and name are required", rental.ErrInvalidInput)
	}
	if car.Seats <= 0 {
		car.Seats = 5
	}
	if car.ID == uuid.Nil {
		car.ID = uuid.New()
	}

	if err := s.carRepo.Create(ctx, car); err != nil {
		return fmt.Errorf("create car: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"car_id": car.ID,
		"brand":  car.Brand,
		"name":   car.Name,
	}).Info("car created")

	return nil
}

// Update обновляет карточку автомобиля.
func (s *CarService) Update(ctx context.Context, car *model.Car) error {
	if !car.PricePerDay.IsPositive() {
		return rental.ErrInvalidPrice
	}
	if _, err := s.carRepo.GetByID(ctx, car.ID); err != nil {
		return err
	}

	if err := s.carRepo.Update(ctx, car); err != nil {
		return fmt.Errorf("update car: %w", err)
	}
	return nil
}

// Delete убирает автомобиль из каталога.
func (s *CarService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.carRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.carRepo.Delete(ctx, id)
}
