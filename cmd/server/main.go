package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/rentredi/adapters/event"
	httpAdapter "github.com/khoahotran/rentredi/adapters/http"
	"github.com/khoahotran/rentredi/adapters/persistence"
	"github.com/khoahotran/rentredi/adapters/weather"
	userUC "github.com/khoahotran/rentredi/internal/application/usecase/user"
	"github.com/khoahotran/rentredi/internal/config"
	"github.com/khoahotran/rentredi/pkg/logger"
	"github.com/khoahotran/rentredi/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start RentRedi API Server...", zap.String("env", cfg.App.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Store
	userRepo, closeStore, err := persistence.NewUserRepository(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect user store", err)
	}
	defer closeStore()

	// Events
	publisher, closePublisher, err := event.NewPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer closePublisher()

	// Tracing
	tracingService := ""
	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg.Tracing.OTLPEndpoint, cfg.Tracing.ServiceName, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init tracing", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(shutdownCtx)
		}()
		tracingService = cfg.Tracing.ServiceName
	}

	// Services
	lookup := weather.NewOpenWeatherAdapter(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.Timeout, appLogger)

	// Use Cases
	createUserUseCase := userUC.NewCreateUserUseCase(userRepo, lookup, publisher, appLogger)
	listUsersUseCase := userUC.NewListUsersUseCase(userRepo)
	getUserUseCase := userUC.NewGetUserUseCase(userRepo)
	updateUserUseCase := userUC.NewUpdateUserUseCase(userRepo, lookup, publisher, appLogger)
	deleteUserUseCase := userUC.NewDeleteUserUseCase(userRepo, publisher, appLogger)

	// HTTP Handlers
	userHandler := httpAdapter.NewUserHandler(
		createUserUseCase,
		listUsersUseCase,
		getUserUseCase,
		updateUserUseCase,
		deleteUserUseCase,
		appLogger,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		UserHandler:    userHandler,
		Logger:         appLogger,
		IncludeStack:   !cfg.IsProduction(),
		TracingService: tracingService,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		appLogger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Server forced to shutdown", err)
		}
	case err := <-errCh:
		appLogger.Error("Cannot run server", err)
	}
}
