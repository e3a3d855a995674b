package rental

import "errors"

// Ошибки "не найдено" — маппятся на 404.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCarNotFound      = errors.New("car not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrBookingNotFound  = errors.New("booking not found")
)

// Ошибки валидации бронирования. Пользователь может исправить запрос
// и повторить, процесс они не роняют.
var (
	ErrInvalidRange       = errors.New("invalid range")
	ErrBelowMinimumPeriod = errors.New("below minimum rental period")
	ErrCarAlreadyBooked   = errors.New("car is already booked for this period")
	// ErrCarUnavailable: оптимистичная проверка прошла, но ограничение
	// хранилища сработало, либо машина снята с аренды.
	ErrCarUnavailable = errors.New("car is no longer available")

	ErrInvalidPrice = errors.New("price per day must be positive")
	ErrInvalidInput = errors.New("invalid input")
)

var (
	ErrPermission         = errors.New("operation not permitted")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IsValidation сообщает, относится ли ошибка к классу пользовательских
// ошибок валидации.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrBelowMinimumPeriod) ||
		errors.Is(err, ErrCarAlreadyBooked) ||
		errors.Is(err, ErrCarUnavailable) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidInput)
}
