package rental

import "time"

// Минимальный срок аренды.
const MinRentalPeriod = time.Hour

// Candidate — предлагаемое бронирование до сохранения.
type Candidate struct {
	Start time.Time
	End   time.Time
}

// ValidateRange проверяет границы интервала аренды:
//   - начало строго раньше конца;
//   - длительность не меньше MinRentalPeriod.
func ValidateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return ErrInvalidRange
	}
	if end.Sub(start) < MinRentalPeriod {
		return ErrBelowMinimumPeriod
	}
	return nil
}

// Validate решает, допустимо ли бронирование-кандидат на фоне существующих
// бронирований того же автомобиля. Чистая функция над снимком данных,
// без побочных эффектов; существующие интервалы подаёт вызывающий.
//
// Проверка оптимистичная: гонку двух конкурентных заявок на один автомобиль
// окончательно закрывает ограничение хранилища (см. internal/db).
func Validate(c Candidate, existing []TimeRange) error {
	if err := ValidateRange(c.Start, c.End); err != nil {
		return err
	}

	candidate := TimeRange{Start: c.Start, End: c.End}
	if ok, _ := HasOverlap(candidate, existing); ok {
		return ErrCarAlreadyBooked
	}

	return nil
}
