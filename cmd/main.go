package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/mkravtsov/rental-platform/internal/auth"
	"github.com/mkravtsov/rental-platform/internal/config"
	"github.com/mkravtsov/rental-platform/internal/db"
	"github.com/mkravtsov/rental-platform/internal/handler"
	"github.com/mkravtsov/rental-platform/internal/repository"
	"github.com/mkravtsov/rental-platform/internal/router"
	"github.com/mkravtsov/rental-platform/internal/service"
)

func main() {
	// .env опционален: в проде переменные приходят из окружения.
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// 1. Конфигурация из env.
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("load db config: %v", err)
	}
	srvCfg := config.LoadServerConfig()
	authCfg := config.LoadAuthConfig()

	gin.SetMode(srvCfg.GinMode)

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Миграции моделей и ограничение на пересечение бронирований.
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}
	defer sqlDB.Close()

	// 4. Репозитории (реализации на GORM).
	userRepo := repository.NewGormUserRepository(gormDB)
	carRepo := repository.NewGormCarRepository(gormDB)
	locationRepo := repository.NewGormLocationRepository(gormDB)
	bookingRepo := repository.NewGormBookingRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)

	// 5. Сервисы.
	authSvc := auth.NewService(authCfg.JWTSecret, authCfg.TokenTTL)
	identitySvc := service.NewIdentityService(userRepo, eventRepo, authSvc, log)
	carSvc := service.NewCarService(carRepo, log)
	locationSvc := service.NewLocationService(locationRepo)
	bookingSvc := service.NewBookingService(bookingRepo, carRepo, locationRepo, eventRepo, log)

	// 6. HTTP-слой.
	h := handler.NewHandler(carSvc, bookingSvc, locationSvc, identitySvc)
	engine := router.New(h, authSvc, log)

	srv := &http.Server{
		Addr:         srvCfg.Addr,
		Handler:      engine,
		ReadTimeout:  srvCfg.ReadTimeout,
		WriteTimeout: srvCfg.WriteTimeout,
		IdleTimeout:  srvCfg.IdleTimeout,
	}

	// 7. Запускаем сервер в горутине.
	go func() {
		log.Infof("http server listening on %s", srvCfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http serve: %v", err)
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down http server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
