package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mkravtsov/rental-platform/internal/model"
	"github.com/mkravtsov/rental-platform/internal/rental"
	"github.com/mkravtsov/rental-platform/internal/repository"
)

// BookingService — жизненный цикл бронирования: создание, отмена, возврат,
// дашборд пользователя. Текущее время всегда приходит параметром now,
// чтобы логика оставалась детерминированной в тестах.
type BookingService struct {
	bookingRepo  repository.BookingRepository
	carRepo      repository.CarRepository
	locationRepo repository.LocationRepository
	eventRepo    repository.EventRepository
	log          *logrus.Logger
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	carRepo repository.CarRepository,
	locationRepo repository.LocationRepository,
	eventRepo repository.EventRepository,
	log *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		carRepo:      carRepo,
		locationRepo: locationRepo,
		eventRepo:    eventRepo,
		log:          log,
	}
}

// CreateBookingInput — заявка на бронирование. Локации опциональны:
// незаполненные заменяются локацией по умолчанию.
type CreateBookingInput struct {
	UserID           uuid.UUID
	CarID            uuid.UUID
	PickupLocationID *uuid.UUID
	ReturnLocationID *uuid.UUID
	Start            time.Time
	End              time.Time
}

// Create проводит заявку через валидацию, считает цену и сохраняет бронирование.
// При отказе валидации заявка не сохраняется, причина возвращается вызывающему.
func (s *BookingService) Create(
	ctx context.Context,
	now time.Time,
	in CreateBookingInput,
) (*model.Booking, error) {
	car, err := s.carRepo.GetByID(ctx, in.CarID)
	if err != nil {
		return nil, fmt.Errorf("get car: %w", err)
	}
	if !car.IsAvailable {
		return nil, rental.ErrCarUnavailable
	}

	pickupID, returnID, err := s.resolveLocations(ctx, in.PickupLocationID, in.ReturnLocationID)
	if err != nil {
		return nil, err
	}

	// Оптимистичная проверка пересечений по снимку существующих бронирований.
	existing, err := s.bookingRepo.ListByCar(ctx, in.CarID)
	if err != nil {
		return nil, fmt.Errorf("list car bookings: %w", err)
	}
	ranges := make([]rental.TimeRange, 0, len(existing))
	for _, b := range existing {
		ranges = append(ranges, rental.TimeRange{Start: b.StartAt, End: b.EndAt})
	}
	if err := rental.Validate(rental.Candidate{Start: in.Start, End: in.End}, ranges); err != nil {
		return nil, err
	}

	// Цена считается ровно один раз: после сохранения она не пересчитывается,
	// даже если тариф автомобиля поменяется.
	total := rental.Price(in.Start, in.End, car.PricePerDay, pickupID != returnID)

	booking := &model.Booking{
		ID:               uuid.New(),
		UserID:           in.UserID,
		CarID:            in.CarID,
		PickupLocationID: pickupID,
		ReturnLocationID: returnID,
		StartAt:          in.Start.UTC(),
		EndAt:            in.End.UTC(),
		TotalPrice:       total,
		CreatedAt:        now.UTC(),
		UpdatedAt:        now.UTC(),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		// Вторая конкурентная заявка на тот же интервал: ограничение
		// хранилища вернуло отказ — отдаём его как обычную ошибку валидации.
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"car_id":      in.CarID,
		"user_id":     in.UserID,
		"total_price": total.String(),
	}).Info("booking created")

	s.audit(ctx, now, model.EventTypeBookingCreated, &in.UserID, &booking.ID, map[string]any{
		"car_id":      in.CarID.String(),
		"start_at":    booking.StartAt.Format(time.RFC3339),
		"end_at":      booking.EndAt.Format(time.RFC3339),
		"total_price": total.String(),
	})

	return booking, nil
}

// Cancel удаляет бронирование. Разрешено только владельцу и только до начала аренды.
func (s *BookingService) Cancel(
	ctx context.Context,
	now time.Time,
	bookingID, actorID uuid.UUID,
) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.UserID != actorID {
		return fmt.Errorf("%w: booking belongs to another user", rental.ErrPermission)
	}
	if !now.Before(booking.StartAt) {
		return fmt.Errorf("%w: booking has already started", rental.ErrPermission)
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"user_id":    actorID,
	}).Info("booking cancelled")

	// Запись уже удалена, поэтому ссылку на бронирование кладём в детали,
	// а не во внешний ключ.
	s.audit(ctx, now, model.EventTypeBookingCancelled, &actorID, nil, map[string]any{
		"booking_id": bookingID.String(),
		"car_id":     booking.CarID.String(),
	})

	return nil
}

// MarkReturned — массовый возврат автомобилей администратором.
// Идемпотентна: уже возвращённые бронирования просто пропускаются.
func (s *BookingService) MarkReturned(
	ctx context.Context,
	now time.Time,
	ids []uuid.UUID,
) (int64, error) {
	updated, err := s.bookingRepo.MarkReturned(ctx, ids, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("mark returned: %w", err)
	}

	if updated > 0 {
		s.log.WithFields(logrus.Fields{
			"requested": len(ids),
			"updated":   updated,
		}).Info("bookings marked as returned")

		s.audit(ctx, now, model.EventTypeBookingReturned, nil, nil, map[string]any{
			"requested": len(ids),
			"updated":   updated,
		})
	}

	return updated, nil
}

// Dashboard — бронирования пользователя, разложенные по категориям.
// Overdue — производный статус: срок вышел, машина не возвращена.
type Dashboard struct {
	Active   []model.Booking
	DueToday []model.Booking
	Overdue  []model.Booking
	Upcoming []model.Booking
	Past     []model.Booking
}

// ListForUser раскладывает бронирования пользователя по категориям дашборда
// относительно момента now.
func (s *BookingService) ListForUser(
	ctx context.Context,
	now time.Time,
	userID uuid.UUID,
) (*Dashboard, error) {
	bookings, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user bookings: %w", err)
	}

	d := &Dashboard{}
	for _, b := range bookings {
		switch {
		case b.IsActive(now):
			d.Active = append(d.Active, b)
		case b.IsOverdue(now):
			d.Overdue = append(d.Overdue, b)
		}

		if !b.IsReturned && sameDay(b.EndAt, now) {
			d.DueToday = append(d.DueToday, b)
		}
		if b.StartAt.After(now) {
			d.Upcoming = append(d.Upcoming, b)
		}
		if b.IsReturned && b.EndAt.Before(now) {
			d.Past = append(d.Past, b)
		}
	}

	return d, nil
}

// RecentEvents — последние события аудита для административной панели.
func (s *BookingService) RecentEvents(ctx context.Context, limit int) ([]model.Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	events, err := s.eventRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *BookingService) resolveLocations(
	ctx context.Context,
	pickupID, returnID *uuid.UUID,
) (uuid.UUID, uuid.UUID, error) {
	var def *model.Location
	defaultLocation := func() (uuid.UUID, error) {
		if def != nil {
			return def.ID, nil
		}
		loc, err := s.locationRepo.GetOrCreateDefault(ctx)
		if err != nil {
			return uuid.Nil, fmt.Errorf("default location: %w", err)
		}
		def = loc
		return loc.ID, nil
	}

	resolve := func(id *uuid.UUID) (uuid.UUID, error) {
		if id == nil || *id == uuid.Nil {
			return defaultLocation()
		}
		if _, err := s.locationRepo.GetByID(ctx, *id); err != nil {
			return uuid.Nil, err
		}
		return *id, nil
	}

	pickup, err := resolve(pickupID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	ret, err := resolve(returnID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return pickup, ret, nil
}

// audit пишет событие аудита. Ошибка записи логируется и не прерывает операцию.
func (s *BookingService) audit(
	ctx context.Context,
	now time.Time,
	eventType model.EventType,
	userID, bookingID *uuid.UUID,
	details map[string]any,
) {
	payload, err := json.Marshal(details)
	if err != nil {
		s.log.WithError(err).Warn("marshal audit details")
		payload = []byte("{}")
	}

	event := &model.Event{
		ID:        uuid.New(),
		EventType: eventType,
		CreatedAt: now.UTC(),
		UserID:    userID,
		BookingID: bookingID,
		Details:   payload,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.log.WithError(err).WithField("event_type", eventType).Warn("write audit event")
	}
}

// sameDay сравнивает календарные дни в UTC.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
