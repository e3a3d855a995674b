package dto

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateBookingRequest struct {
	PickupLocationID *string `json:"pickup_location_id" binding:"omitempty,uuid"`
	ReturnLocationID *string `json:"return_location_id" binding:"omitempty,uuid"`
	StartAt          string  `json:"start_at" binding:"required"`
	EndAt            string  `json:"end_at" binding:"required"`
}

type MarkReturnedRequest struct {
	BookingIDs []string `json:"booking_ids" binding:"required,min=1,dive,uuid"`
}

type CarRequest struct {
	Brand        string   `json:"brand" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	PricePerDay  string   `json:"price_per_day" binding:"required"`
	IsAvailable  *bool    `json:"is_available"`
	Description  string   `json:"description"`
	Year         *int     `json:"year"`
	Mileage      *int     `json:"mileage"`
	FuelType     string   `json:"fuel_type"`
	Transmission string   `json:"transmission" binding:"omitempty,oneof=automatic manual"`
	Seats        int      `json:"seats"`
	Category     string   `json:"category" binding:"omitempty,oneof=economy compact luxury suv van"`
}

type LocationRequest struct {
	Name      string   `json:"name" binding:"required"`
	Address   string   `json:"address" binding:"required"`
	City      string   `json:"city" binding:"required"`
	Phone     string   `json:"phone"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}
