package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mkravtsov/rental-platform/internal/auth"
	"github.com/mkravtsov/rental-platform/internal/handler"
	"github.com/mkravtsov/rental-platform/internal/middleware"
)

// New собирает маршруты API. Публичная часть — каталог и аутентификация,
// остальное требует JWT, административная часть — роль admin.
func New(h *handler.Handler, authSvc *auth.Service, log *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)

		api.GET("/cars", h.ListCars)
		api.GET("/cars/featured", h.FeaturedCars)
		api.GET("/cars/:id", h.GetCar)
		api.GET("/locations", h.ListLocations)
	}

	authed := api.Group("")
	authed.Use(middleware.Authenticate(authSvc))
	{
		authed.POST("/cars/:id/bookings", h.CreateBooking)
		authed.GET("/dashboard", h.Dashboard)
		authed.DELETE("/bookings/:id", h.CancelBooking)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.Authenticate(authSvc), middleware.RequireAdmin())
	{
		admin.POST("/bookings/return", h.MarkReturned)
		admin.GET("/events", h.RecentEvents)

		admin.POST("/cars", h.CreateCar)
		admin.PUT("/cars/:id", h.UpdateCar)
		admin.DELETE("/cars/:id", h.DeleteCar)

		admin.POST("/locations", h.CreateLocation)
		admin.PUT("/locations/:id", h.UpdateLocation)
		admin.DELETE("/locations/:id", h.DeleteLocation)
	}

	return r
}
