package dto

import (
	"time"

	"github.com/mkravtsov/rental-platform/internal/model"
	"github.com/mkravtsov/rental-platform/internal/rental"
	"github.com/mkravtsov/rental-platform/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type CarResponse struct {
	ID           string `json:"id"`
	Brand        string `json:"brand"`
	Name         string `json:"name"`
	PricePerDay  string `json:"price_per_day"`
	IsAvailable  bool   `json:"is_available"`
	Description  string `json:"description,omitempty"`
	Year         *int   `json:"year,omitempty"`
	Mileage      *int   `json:"mileage,omitempty"`
	FuelType     string `json:"fuel_type,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	Seats        int    `json:"seats"`
	Category     string `json:"category,omitempty"`
}

type CarPageResponse struct {
	Items    []CarResponse `json:"items"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Total    int           `json:"total"`
	HasNext  bool          `json:"has_next"`
	HasPrev  bool          `json:"has_prev"`
}

type LocationResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Phone     string   `json:"phone,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type BookingResponse struct {
	ID               string       `json:"id"`
	CarID            string       `json:"car_id"`
	Car              *CarResponse `json:"car,omitempty"`
	PickupLocationID string       `json:"pickup_location_id"`
	ReturnLocationID string       `json:"return_location_id"`
	StartAt          string       `json:"start_at"`
	EndAt            string       `json:"end_at"`
	TotalPrice       string       `json:"total_price"`
	IsReturned       bool         `json:"is_returned"`
	ActualReturnAt   *string      `json:"actual_return_at,omitempty"`
}

type DashboardResponse struct {
	Active   []BookingResponse `json:"active"`
	DueToday []BookingResponse `json:"due_today"`
	Overdue  []BookingResponse `json:"overdue"`
	Upcoming []BookingResponse `json:"upcoming"`
	Past     []BookingResponse `json:"past"`
}

type MarkReturnedResponse struct {
	Updated int64 `json:"updated"`
}

type EventResponse struct {
	ID        string `json:"id"`
	EventType string `json:"event_type"`
	CreatedAt string `json:"created_at"`
	UserID    *string `json:"user_id,omitempty"`
	BookingID *string `json:"booking_id,omitempty"`
	Details   string `json:"details,omitempty"`
}

func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Role:     string(u.Role),
	}
}

func ToCarResponse(c *model.Car) CarResponse {
	return CarResponse{
		ID:           c.ID.String(),
		Brand:        c.Brand,
		Name:         c.Name,
		PricePerDay:  c.PricePerDay.StringFixed(2),
		IsAvailable:  c.IsAvailable,
		Description:  c.Description,
		Year:         c.Year,
		Mileage:      c.Mileage,
		FuelType:     c.FuelType,
		Transmission: string(c.Transmission),
		Seats:        c.Seats,
		Category:     string(c.Category),
	}
}

func ToCarPageResponse(page rental.Page[model.Car]) CarPageResponse {
	items := make([]CarResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToCarResponse(&page.Items[i]))
	}
	return CarPageResponse{
		Items:    items,
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
		HasNext:  page.HasNext,
		HasPrev:  page.HasPrev,
	}
}

func ToLocationResponse(l *model.Location) LocationResponse {
	return LocationResponse{
		ID:        l.ID.String(),
		Name:      l.Name,
		Address:   l.Address,
		City:      l.City,
		Phone:     l.Phone,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
	}
}

func ToBookingResponse(b *model.Booking) BookingResponse {
	resp := BookingResponse{
		ID:               b.ID.String(),
		CarID:            b.CarID.String(),
		PickupLocationID: b.PickupLocationID.String(),
		ReturnLocationID: b.ReturnLocationID.String(),
		StartAt:          b.StartAt.Format(time.RFC3339),
		EndAt:            b.EndAt.Format(time.RFC3339),
		TotalPrice:       b.TotalPrice.StringFixed(2),
		IsReturned:       b.IsReturned,
	}
	if b.Car != nil {
		car := ToCarResponse(b.Car)
		resp.Car = &car
	}
	if b.ActualReturnAt != nil {
		s := b.ActualReturnAt.Format(time.RFC3339)
		resp.ActualReturnAt = &s
	}
	return resp
}

func toBookingResponses(bookings []model.Booking) []BookingResponse {
	res := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		res = append(res, ToBookingResponse(&bookings[i]))
	}
	return res
}

func ToDashboardResponse(d *service.Dashboard) DashboardResponse {
	return DashboardResponse{
		Active:   toBookingResponses(d.Active),
		DueToday: toBookingResponses(d.DueToday),
		Overdue:  toBookingResponses(d.Overdue),
		Upcoming: toBookingResponses(d.Upcoming),
		Past:     toBookingResponses(d.Past),
	}
}

func ToEventResponse(e *model.Event) EventResponse {
	resp := EventResponse{
		ID:        e.ID.String(),
		EventType: string(e.EventType),
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
		Details:   string(e.Details),
	}
	if e.UserID != nil {
		s := e.UserID.String()
		resp.UserID = &s
	}
	if e.BookingID != nil {
		s := e.BookingID.String()
		resp.BookingID = &s
	}
	return resp
}
