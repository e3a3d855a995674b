package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mkravtsov/rental-platform/internal/handler/dto"
	"github.com/mkravtsov/rental-platform/internal/middleware"
	"github.com/mkravtsov/rental-platform/internal/model"
	"github.com/mkravtsov/rental-platform/internal/rental"
	"github.com/mkravtsov/rental-platform/internal/repository"
	"github.com/mkravtsov/rental-platform/internal/service"
)

type CarSvc interface {
	List(ctx context.Context, filter repository.CarFilter, page, pageSize int) (rental.Page[model.Car], error)
	Get(ctx context.Context, id uuid.UUID) (*model.Car, error)
	Featured(ctx context.Context) ([]model.Car, error)
	Create(ctx context.Context, car *model.Car) error
	Update(ctx context.Context, car *model.Car) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BookingSvc interface {
	Create(ctx context.Context, now time.Time, in service.CreateBookingInput) (*model.Booking, error)
	Cancel(ctx context.Context, now time.Time, bookingID, actorID uuid.UUID) error
	MarkReturned(ctx context.Context, now time.Time, ids []uuid.UUID) (int64, error)
	ListForUser(ctx context.Context, now time.Time, userID uuid.UUID) (*service.Dashboard, error)
	RecentEvents(ctx context.Context, limit int) ([]model.Event, error)
}

type LocationSvc interface {
	List(ctx context.Context) ([]model.Location, error)
	Create(ctx context.Context, loc *model.Location) error
	Update(ctx context.Context, loc *model.Location) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type IdentitySvc interface {
	Register(ctx context.Context, username, password string) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
}

type Handler struct {
	carService      CarSvc
	bookingService  BookingSvc
	locationService LocationSvc
	identityService IdentitySvc
}

func NewHandler(
	carService CarSvc,
	bookingService BookingSvc,
	locationService LocationSvc,
	identityService IdentitySvc,
) *Handler {
	return &Handler{
		carService:      carService,
		bookingService:  bookingService,
		locationService: locationService,
		identityService: identityService,
	}
}

// Identity

func (h *Handler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	user, token, err := h.identityService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{Token: token, User: dto.ToUserResponse(user)})
}

func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	user, token, err := h.identityService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Token: token, User: dto.ToUserResponse(user)})
}

// Cars

func (h *Handler) ListCars(c *gin.Context) {
	filter, err := carFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.carService.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCarPageResponse(result))
}

func (h *Handler) GetCar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid car id"})
		return
	}

	car, err := h.carService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCarResponse(car))
}

func (h *Handler) FeaturedCars(c *gin.Context) {
	cars, err := h.carService.Featured(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.CarResponse, 0, len(cars))
	for i := range cars {
		resp = append(resp, dto.ToCarResponse(&cars[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateCar(c *gin.Context) {
	car, ok := h.bindCar(c, uuid.Nil)
	if !ok {
		return
	}

	if err := h.carService.Create(c.Request.Context(), car); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCarResponse(car))
}

func (h *Handler) UpdateCar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid car id"})
		return
	}

	car, ok := h.bindCar(c, id)
	if !ok {
		return
	}

	if err := h.carService.Update(c.Request.Context(), car); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCarResponse(car))
}

func (h *Handler) DeleteCar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid car id"})
		return
	}

	if err := h.carService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Locations

func (h *Handler) ListLocations(c *gin.Context) {
	locs, err := h.locationService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.LocationResponse, 0, len(locs))
	for i := range locs {
		resp = append(resp, dto.ToLocationResponse(&locs[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateLocation(c *gin.Context) {
	loc, ok := bindLocation(c, uuid.Nil)
	if !ok {
		return
	}

	if err := h.locationService.Create(c.Request.Context(), loc); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLocationResponse(loc))
}

func (h *Handler) UpdateLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid location id"})
		return
	}

	loc, ok := bindLocation(c, id)
	if !ok {
		return
	}

	if err := h.locationService.Update(c.Request.Context(), loc); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLocationResponse(loc))
}

func (h *Handler) DeleteLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid location id"})
		return
	}

	if err := h.locationService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Bookings

func (h *Handler) CreateBooking(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}

	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid car id"})
		return
	}

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid start_at, expected RFC3339"})
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid end_at, expected RFC3339"})
		return
	}

	input := service.CreateBookingInput{
		UserID:           claims.UserID,
		CarID:            carID,
		PickupLocationID: parseOptionalUUID(req.PickupLocationID),
		ReturnLocationID: parseOptionalUUID(req.ReturnLocationID),
		Start:            start,
		End:              end,
	}

	booking, err := h.bookingService.Create(c.Request.Context(), time.Now().UTC(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *Handler) CancelBooking(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid booking id"})
		return
	}

	if err := h.bookingService.Cancel(c.Request.Context(), time.Now().UTC(), bookingID, claims.UserID); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Dashboard(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}

	dashboard, err := h.bookingService.ListForUser(c.Request.Context(), time.Now().UTC(), claims.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(dashboard))
}

func (h *Handler) MarkReturned(c *gin.Context) {
	var req dto.MarkReturnedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	ids := make([]uuid.UUID, 0, len(req.BookingIDs))
	for _, raw := range req.BookingIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid booking id: " + raw})
			return
		}
		ids = append(ids, id)
	}

	updated, err := h.bookingService.MarkReturned(c.Request.Context(), time.Now().UTC(), ids)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MarkReturnedResponse{Updated: updated})
}

func (h *Handler) RecentEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	events, err := h.bookingService.RecentEvents(c.Request.Context(), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, dto.ToEventResponse(&events[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// helpers

func (h *Handler) bindCar(c *gin.Context, id uuid.UUID) (*model.Car, bool) {
	var req dto.CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return nil, false
	}

	price, err := decimal.NewFromString(req.PricePerDay)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid price_per_day"})
		return nil, false
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	return &model.Car{
		ID:           id,
		Brand:        req.Brand,
		Name:         req.Name,
		PricePerDay:  price,
		IsAvailable:  available,
		Description:  req.Description,
		Year:         req.Year,
		Mileage:      req.Mileage,
		FuelType:     req.FuelType,
		Transmission: model.Transmission(req.Transmission),
		Seats:        req.Seats,
		Category:     model.CarCategory(req.Category),
	}, true
}

func bindLocation(c *gin.Context, id uuid.UUID) (*model.Location, bool) {
	var req dto.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return nil, false
	}

	return &model.Location{
		ID:        id,
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		Phone:     req.Phone,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}, true
}

func carFilterFromQuery(c *gin.Context) (repository.CarFilter, error) {
	filter := repository.CarFilter{
		Brand:        c.Query("brand"),
		Category:     model.CarCategory(c.Query("category")),
		Transmission: model.Transmission(c.Query("transmission")),
	}

	if raw := c.Query("min_price"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, errors.New("invalid min_price")
		}
		filter.MinPrice = &v
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, errors.New("invalid max_price")
		}
		filter.MaxPrice = &v
	}
	if raw := c.Query("min_seats"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("invalid min_seats")
		}
		filter.MinSeats = &v
	}
	if raw := c.Query("available_from"); raw != "" {
		v, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.New("invalid available_from, expected RFC3339")
		}
		filter.AvailableFrom = &v
	}
	if raw := c.Query("available_to"); raw != "" {
		v, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.New("invalid available_to, expected RFC3339")
		}
		filter.AvailableTo = &v
	}
	if (filter.AvailableFrom == nil) != (filter.AvailableTo == nil) {
		return filter, errors.New("available_from and available_to must be set together")
	}

	return filter, nil
}

func parseOptionalUUID(raw *string) *uuid.UUID {
	if raw == nil || *raw == "" {
		return nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil
	}
	return &id
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, rental.ErrCarNotFound),
		errors.Is(err, rental.ErrBookingNotFound),
		errors.Is(err, rental.ErrLocationNotFound),
		errors.Is(err, rental.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, rental.ErrCarAlreadyBooked),
		errors.Is(err, rental.ErrCarUnavailable):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})

	case rental.IsValidation(err),
		errors.Is(err, rental.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, rental.ErrPermission):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, rental.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
