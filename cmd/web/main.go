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

	"github.com/khoahotran/rentredi/adapters/web"
	"github.com/khoahotran/rentredi/internal/config"
	"github.com/khoahotran/rentredi/internal/frontend/usercache"
	"github.com/khoahotran/rentredi/pkg/client"
	"github.com/khoahotran/rentredi/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start RentRedi Web...", zap.String("api", cfg.Web.APIBaseURL))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	apiClient := client.New(cfg.Web.APIBaseURL, client.DefaultTimeout)
	cache := usercache.New(apiClient, appLogger)

	// The page shows "Loading…" until the first fetch resolves.
	go func() { _ = cache.Load(ctx) }()
	go cache.Watch(ctx, cfg.Web.ReconnectInterval)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := web.NewRouter(web.NewHandler(cache, appLogger), appLogger)

	server := &http.Server{
		Addr:              ":" + cfg.Web.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("Web UI running", zap.String("port", cfg.Web.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Web UI forced to shutdown", err)
		}
	case err := <-errCh:
		appLogger.Error("Cannot run web UI", err)
	}
}
