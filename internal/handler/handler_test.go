package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravtsov/rental-platform/internal/auth"
	"github.com/mkravtsov/rental-platform/internal/handler"
	"github.com/mkravtsov/rental-platform/internal/model"
	"github.com/mkravtsov/rental-platform/internal/rental"
	"github.com/mkravtsov/rental-platform/internal/repository"
	"github.com/mkravtsov/rental-platform/internal/router"
	"github.com/mkravtsov/rental-platform/internal/service"
)

// Стабы сервисов: каждый возвращает заготовленный результат либо ошибку.

type stubCarSvc struct {
	cars []model.Car
	err  error
}

func (s *stubCarSvc) List(context.Context, repository.CarFilter, int, int) (rental.Page[model.Car], error) {
	if s.err != nil {
		return rental.Page[model.Car]{}, s.err
	}
	return rental.Paginate(s.cars, 1, 20), nil
}

func (s *stubCarSvc) Get(context.Context, uuid.UUID) (*model.Car, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.cars) == 0 {
		return nil, rental.ErrCarNotFound
	}
	return &s.cars[0], nil
}

func (s *stubCarSvc) Featured(context.Context) ([]model.Car, error) {
	return s.cars, s.err
}

func (s *stubCarSvc) Create(_ context.Context, car *model.Car) error {
	if s.err != nil {
		return s.err
	}
	car.ID = uuid.New()
	return nil
}

func (s *stubCarSvc) Update(context.Context, *model.Car) error { return s.err }
func (s *stubCarSvc) Delete(context.Context, uuid.UUID) error  { return s.err }

type stubBookingSvc struct {
	booking *model.Booking
	err     error
}

func (s *stubBookingSvc) Create(context.Context, time.Time, service.CreateBookingInput) (*model.Booking, error) {
	return s.booking, s.err
}

func (s *stubBookingSvc) Cancel(context.Context, time.Time, uuid.UUID, uuid.UUID) error {
	return s.err
}

func (s *stubBookingSvc) MarkReturned(_ context.Context, _ time.Time, ids []uuid.UUID) (int64, error) {
	return int64(len(ids)), s.err
}

func (s *stubBookingSvc) ListForUser(context.Context, time.Time, uuid.UUID) (*service.Dashboard, error) {
	if s.err != nil {
		return nil, s.err
	}
	d := &service.Dashboard{}
	if s.booking != nil {
		d.Upcoming = []model.Booking{*s.booking}
	}
	return d, nil
}

func (s *stubBookingSvc) RecentEvents(context.Context, int) ([]model.Event, error) {
	return nil, s.err
}

type stubLocationSvc struct {
	locations []model.Location
	err       error
}

func (s *stubLocationSvc) List(context.Context) ([]model.Location, error) {
	return s.locations, s.err
}
func (s *stubLocationSvc) Create(context.Context, *model.Location) error { return s.err }
func (s *stubLocationSvc) Update(context.Context, *model.Location) error { return s.err }
func (s *stubLocationSvc) Delete(context.Context, uuid.UUID) error       { return s.err }

type stubIdentitySvc struct {
	user  *model.User
	token string
	err   error
}

func (s *stubIdentitySvc) Register(context.Context, string, string) (*model.User, string, error) {
	return s.user, s.token, s.err
}

func (s *stubIdentitySvc) Login(context.Context, string, string) (*model.User, string, error) {
	return s.user, s.token, s.err
}

type testEnv struct {
	engine   *gin.Engine
	authSvc  *auth.Service
	cars     *stubCarSvc
	bookings *stubBookingSvc
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	authSvc := auth.NewService("test-secret", time.Hour)

	cars := &stubCarSvc{}
	bookings := &stubBookingSvc{}
	locations := &stubLocationSvc{}
	identity := &stubIdentitySvc{
		user:  &model.User{ID: uuid.New(), Username: "alice", Role: model.UserRoleCustomer},
		token: "stub-token",
	}

	h := handler.NewHandler(cars, bookings, locations, identity)
	engine := router.New(h, authSvc, log)

	return &testEnv{engine: engine, authSvc: authSvc, cars: cars, bookings: bookings}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) tokenFor(t *testing.T, role model.UserRole) string {
	t.Helper()
	token, err := e.authSvc.GenerateToken(&model.User{
		ID:       uuid.New(),
		Username: "someone",
		Role:     role,
	})
	require.NoError(t, err)
	return token
}

func sampleBooking() *model.Booking {
	return &model.Booking{
		ID:               uuid.New(),
		CarID:            uuid.New(),
		PickupLocationID: uuid.New(),
		ReturnLocationID: uuid.New(),
		StartAt:          time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		EndAt:            time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC),
		TotalPrice:       decimal.RequireFromString("110.00"),
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "stub-token", resp.Token)
	assert.Equal(t, "alice", resp.User.Username)

	// Пустое тело отклоняется валидацией запроса.
	rec = env.request(t, http.MethodPost, "/api/auth/register", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListCars_Public(t *testing.T) {
	env := newTestEnv(t)
	env.cars.cars = []model.Car{{
		ID:          uuid.New(),
		Brand:       "Toyota",
		Name:        "Corolla",
		PricePerDay: decimal.RequireFromString("45.00"),
		IsAvailable: true,
		Seats:       5,
	}}

	rec := env.request(t, http.MethodGet, "/api/cars", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []struct {
			PricePerDay string `json:"price_per_day"`
		} `json:"items"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "45.00", resp.Items[0].PricePerDay)
	assert.Equal(t, 1, resp.Total)
}

func TestListCars_BadFilter(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/cars?min_price=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Окно доступности без второй границы — ошибка.
	rec = env.request(t, http.MethodGet, "/api/cars?available_from=2025-06-01T00:00:00Z", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBooking(t *testing.T) {
	env := newTestEnv(t)
	env.bookings.booking = sampleBooking()
	carID := uuid.New()

	body := gin.H{
		"start_at": "2025-06-02T09:00:00Z",
		"end_at":   "2025-06-03T09:00:00Z",
	}

	// Без токена — 401.
	rec := env.request(t, http.MethodPost, "/api/cars/"+carID.String()+"/bookings", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := env.tokenFor(t, model.UserRoleCustomer)
	rec = env.request(t, http.MethodPost, "/api/cars/"+carID.String()+"/bookings", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		TotalPrice string `json:"total_price"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "110.00", resp.TotalPrice)

	// Кривое время — 400.
	rec = env.request(t, http.MethodPost, "/api/cars/"+carID.String()+"/bookings", token, gin.H{
		"start_at": "yesterday",
		"end_at":   "2025-06-03T09:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBooking_ErrorMapping(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, model.UserRoleCustomer)
	carID := uuid.New()
	body := gin.H{
		"start_at": "2025-06-02T09:00:00Z",
		"end_at":   "2025-06-03T09:00:00Z",
	}

	cases := []struct {
		err  error
		code int
	}{
		{rental.ErrCarAlreadyBooked, http.StatusConflict},
		{rental.ErrCarUnavailable, http.StatusConflict},
		{rental.ErrBelowMinimumPeriod, http.StatusBadRequest},
		{rental.ErrInvalidRange, http.StatusBadRequest},
		{rental.ErrCarNotFound, http.StatusNotFound},
		{rental.ErrLocationNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		env.bookings.err = tc.err
		rec := env.request(t, http.MethodPost, "/api/cars/"+carID.String()+"/bookings", token, body)
		assert.Equalf(t, tc.code, rec.Code, "error %v", tc.err)
	}
}

func TestCancelBooking(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, model.UserRoleCustomer)
	id := uuid.New()

	rec := env.request(t, http.MethodDelete, "/api/bookings/"+id.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	env.bookings.err = rental.ErrPermission
	rec = env.request(t, http.MethodDelete, "/api/bookings/"+id.String(), token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	env.bookings.err = rental.ErrBookingNotFound
	rec = env.request(t, http.MethodDelete, "/api/bookings/"+id.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	env.bookings.booking = sampleBooking()
	token := env.tokenFor(t, model.UserRoleCustomer)

	rec := env.request(t, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Upcoming []json.RawMessage `json:"upcoming"`
		Active   []json.RawMessage `json:"active"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Upcoming, 1)
	assert.Len(t, resp.Active, 0)
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	env := newTestEnv(t)

	body := gin.H{"booking_ids": []string{uuid.New().String()}}

	// Без токена — 401.
	rec := env.request(t, http.MethodPost, "/api/admin/bookings/return", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Клиентский токен — 403.
	customer := env.tokenFor(t, model.UserRoleCustomer)
	rec = env.request(t, http.MethodPost, "/api/admin/bookings/return", customer, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Администратор — 200 со счётчиком обновлений.
	admin := env.tokenFor(t, model.UserRoleAdmin)
	rec = env.request(t, http.MethodPost, "/api/admin/bookings/return", admin, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Updated int64 `json:"updated"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Updated)
}

func TestAdminCreateCar(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, model.UserRoleAdmin)

	rec := env.request(t, http.MethodPost, "/api/admin/cars", admin, gin.H{
		"brand":         "Toyota",
		"name":          "Corolla",
		"price_per_day": "45.00",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Нечисловой тариф отклоняется до обращения к сервису.
	rec = env.request(t, http.MethodPost, "/api/admin/cars", admin, gin.H{
		"brand":         "Toyota",
		"name":          "Corolla",
		"price_per_day": "cheap",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
