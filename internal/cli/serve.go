package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eshaffer321/delivery-fee-report/internal/api"
	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/config"
	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/logging"
)

// RunServe runs the API server until SIGINT or SIGTERM.
func RunServe(app *App, flags *ServeFlags) error {
	if app.Store == nil {
		return ErrNoStorage
	}

	logger := logging.NewLoggerWithSystem(app.Config.Observability.Logging, "api")
	server := api.NewServer(apiConfig(app.Config, flags), app.Store, app.Orchestrator, logger)

	// Handle graceful shutdown
	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
		close(done)
	}()

	if err := server.Start(); err != nil {
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}

// apiConfig starts from the server defaults and applies the configured
// origins, report directory and -port.
func apiConfig(cfg *config.Config, flags *ServeFlags) api.Config {
	apiCfg := api.DefaultConfig()
	if flags.Port != 0 {
		apiCfg.Port = flags.Port
	}
	if len(cfg.API.AllowedOrigins) > 0 {
		apiCfg.AllowedOrigins = cfg.API.AllowedOrigins
	}
	apiCfg.OutputDir = cfg.Report.OutputDir
	return apiCfg
}
