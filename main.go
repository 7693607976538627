package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/shaadibazaarhub/marketplace-api/config"
	"github.com/shaadibazaarhub/marketplace-api/internal/auth"
	"github.com/shaadibazaarhub/marketplace-api/internal/handler"
	"github.com/shaadibazaarhub/marketplace-api/internal/middleware"
	"github.com/shaadibazaarhub/marketplace-api/internal/notification"
	"github.com/shaadibazaarhub/marketplace-api/internal/repository"
	"github.com/shaadibazaarhub/marketplace-api/internal/service"
	"github.com/shaadibazaarhub/marketplace-api/pkg/database"
	"github.com/shaadibazaarhub/marketplace-api/pkg/logger"
	"github.com/shaadibazaarhub/marketplace-api/pkg/obs"
	"github.com/shaadibazaarhub/marketplace-api/pkg/rabbitmq"
)

const serviceName = "marketplace-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl := logger.New(logger.Options{Production: cfg.IsProduction(), Level: cfg.LogLevel, File: cfg.LogFile})
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, serviceName, cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		zl.Fatal("init tracer", zap.Error(err))
	}

	// Store
	dsn := cfg.DSN()
	if cfg.DBDriver == database.DriverSQLite {
		dsn = cfg.SQLitePath
	}
	db, err := database.Open(database.Options{Driver: cfg.DBDriver, DSN: dsn})
	if err != nil {
		zl.Fatal("open database", zap.Error(err))
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		zl.Fatal("migrate database", zap.Error(err))
	}

	// RabbitMQ publisher is optional: booking.created events are skipped without it
	var publisher service.EventPublisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange, zl)
		if err != nil {
			zl.Warn("rabbitmq unavailable, integration events disabled", zap.Error(err))
		} else {
			defer p.Close()
			publisher = p
		}
	}

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret:     cfg.JWTSecret,
		Algorithm:  cfg.JWTAlgorithm,
		TTLMinutes: cfg.JWTExpiresMinutes,
	})
	if err != nil {
		zl.Fatal("token service", zap.Error(err))
	}
	guard := auth.NewGuard(tokens)

	gateway := notification.NewTwilioGateway(notification.TwilioConfig{
		BaseURL:    cfg.TwilioAPIBaseURL,
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		Timeout:    cfg.NotifyTimeout(),
	})
	dispatcher := notification.NewDispatcher(notification.Config{
		Enabled:            cfg.TwilioEnabled,
		AccountSID:         cfg.TwilioAccountSID,
		AuthToken:          cfg.TwilioAuthToken,
		From:               cfg.TwilioWhatsAppFrom,
		AdminTo:            cfg.TwilioAdminWhatsApp,
		DefaultCountryCode: cfg.DefaultCountryCode,
	}, gateway, zl)

	// Repositories
	accountRepo := repository.NewAccountRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Services
	svcs := handler.Services{
		Auth:     service.NewAuthService(accountRepo, tokens, zl),
		Listings: service.NewListingService(serviceRepo, zl),
		Bookings: service.NewBookingService(accountRepo, serviceRepo, bookingRepo, dispatcher, publisher, zl),
		Payments: service.NewPaymentService(service.PaymentConfig{
			KeyID:     cfg.RazorpayKeyID,
			KeySecret: cfg.RazorpayKeySecret,
			BaseURL:   cfg.RazorpayAPIBaseURL,
		}, zl),
		StoreCheck: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
	}

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = middleware.NewValidator()
	e.HTTPErrorHandler = middleware.NewErrorHandler(zl)
	e.Use(echoMw.RequestIDWithConfig(echoMw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(zl))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORSWithConfig(echoMw.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType},
		AllowCredentials: true,
	}))

	handler.RegisterRoutes(e, guard, svcs)

	go func() {
		zl.Info("marketplace api starting", zap.String("port", cfg.ServerPort), zap.String("db_driver", cfg.DBDriver))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("http shutdown", zap.Error(err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		zl.Error("tracer shutdown", zap.Error(err))
	}
}
