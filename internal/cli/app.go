package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/eshaffer321/delivery-fee-report/internal/adapters/stripeapi"
	"github.com/eshaffer321/delivery-fee-report/internal/application/reporting"
	"github.com/eshaffer321/delivery-fee-report/internal/domain/report"
	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/config"
	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/logging"
	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/storage"
	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/upload"
)

// ErrNoStorage is returned by commands that need run history when none is configured
var ErrNoStorage = errors.New("run history requires storage.database_path (REPORT_DB_PATH)")

// App holds the components shared by all commands
type App struct {
	Config       *config.Config
	Logger       *slog.Logger
	Store        storage.Repository // nil when run history is disabled
	Orchestrator *reporting.Orchestrator
}

// OpenStorage opens the run history database, or returns nil when none is configured
func OpenStorage(cfg *config.Config) (storage.Repository, error) {
	if cfg.Storage.DatabasePath == "" {
		return nil, nil
	}
	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	return store, nil
}

// NewApp wires the payment platform client, run history and uploader into an orchestrator
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = logging.NewLogger(cfg.Observability.Logging)
	}

	platform, err := stripeapi.NewClient(cfg.Stripe.SecretKey, logger)
	if err != nil {
		return nil, err
	}

	var location *time.Location
	if cfg.Report.Timezone != "" {
		location, err = time.LoadLocation(cfg.Report.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid report timezone %q: %w", cfg.Report.Timezone, err)
		}
	}

	store, err := OpenStorage(cfg)
	if err != nil {
		return nil, err
	}

	var uploader reporting.Uploader
	if cfg.Upload.S3Bucket != "" {
		s3, err := upload.NewS3Uploader(ctx, cfg.Upload, logger)
		if err != nil {
			if store != nil {
				_ = store.Close()
			}
			return nil, err
		}
		uploader = s3
	}

	classifier := report.ShippingClassifier{
		EastieRateID:  cfg.Shipping.EastieRateID,
		OutsideRateID: cfg.Shipping.OutsideRateID,
	}
	if classifier.EastieRateID == "" && classifier.OutsideRateID == "" {
		logger.Warn("no shipping rate ids configured; every row will be labelled Other Shipping")
	}

	orch := reporting.NewOrchestrator(platform, classifier, cfg.Stripe.DashboardURL, store, uploader, logger)
	orch.SetLocation(location)

	return &App{
		Config:       cfg,
		Logger:       logger,
		Store:        store,
		Orchestrator: orch,
	}, nil
}

// Close releases the run history database
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	return a.Store.Close()
}
