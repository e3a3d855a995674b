package rental

import (
	"errors"
	"testing"
	"time"
)

func TestValidateRange(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	if err := ValidateRange(start, start.Add(24*time.Hour)); err != nil {
		t.Fatalf("expected valid range, got %v", err)
	}
	if err := ValidateRange(start, start); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for equal bounds, got %v", err)
	}
	if err := ValidateRange(start.Add(time.Hour), start); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for reversed bounds, got %v", err)
	}
	if err := ValidateRange(start, start.Add(30*time.Minute)); !errors.Is(err, ErrBelowMinimumPeriod) {
		t.Fatalf("expected ErrBelowMinimumPeriod, got %v", err)
	}
	// Ровно минимальный срок — допустимо.
	if err := ValidateRange(start, start.Add(MinRentalPeriod)); err != nil {
		t.Fatalf("expected exactly minimum period to pass, got %v", err)
	}
}

func TestValidate_OverlapConflict(t *testing.T) {
	day := func(d, h int) time.Time {
		return time.Date(2025, 6, d, h, 0, 0, 0, time.UTC)
	}

	existing := []TimeRange{
		{Start: day(1, 9), End: day(2, 9)},
	}

	// Заявка залезает на час в существующее бронирование.
	err := Validate(Candidate{Start: day(2, 8), End: day(3, 8)}, existing)
	if !errors.Is(err, ErrCarAlreadyBooked) {
		t.Fatalf("expected ErrCarAlreadyBooked, got %v", err)
	}

	// Заявка начинается ровно в момент окончания существующего — конфликта нет.
	if err := Validate(Candidate{Start: day(2, 9), End: day(3, 9)}, existing); err != nil {
		t.Fatalf("expected back-to-back booking to pass, got %v", err)
	}

	// Заявка заканчивается ровно в момент начала существующего — конфликта нет.
	if err := Validate(Candidate{Start: day(1, 0), End: day(1, 9)}, existing); err != nil {
		t.Fatalf("expected back-to-back booking to pass, got %v", err)
	}
}

func TestValidate_RangeCheckedBeforeOverlap(t *testing.T) {
	day := func(d, h int) time.Time {
		return time.Date(2025, 6, d, h, 0, 0, 0, time.UTC)
	}

	existing := []TimeRange{
		{Start: day(1, 0), End: day(10, 0)},
	}

	// Перевёрнутый интервал отбрасывается до проверки пересечений.
	err := Validate(Candidate{Start: day(5, 0), End: day(4, 0)}, existing)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestValidate_NoExisting(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	if err := Validate(Candidate{Start: start, End: start.Add(48 * time.Hour)}, nil); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}
