package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkravtsov/rental-platform/internal/model"
	"github.com/mkravtsov/rental-platform/internal/rental"
	"github.com/mkravtsov/rental-platform/internal/repository"
)

// LocationService — справочник пунктов выдачи и возврата.
type LocationService struct {
	locationRepo repository.LocationRepository
}

func NewLocationService(locationRepo repository.LocationRepository) *LocationService {
	return &LocationService{locationRepo: locationRepo}
}

func (s *LocationService) List(ctx context.Context) ([]model.Location, error) {
	return s.locationRepo.List(ctx)
}

func (s *LocationService) Create(ctx context.Context, loc *model.Location) error {
	if loc.Name == "" || loc.Address == "" || loc.City == "" {
		return fmt.Errorf("%w: name, address and city are required", rental.ErrInvalidInput)
	}
	if loc.ID == uuid.Nil {
		loc.ID = uuid.New()
	}
	return s.locationRepo.Create(ctx, loc)
}

func (s *LocationService) Update(ctx context.Context, loc *model.Location) error {
	if _, err := s.locationRepo.GetByID(ctx, loc.ID); err != nil {
		return err
	}
	return s.locationRepo.Update(ctx, loc)
}

func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.locationRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.locationRepo.Delete(ctx, id)
}
