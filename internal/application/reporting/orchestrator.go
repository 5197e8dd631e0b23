package reporting

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/eshaffer321/delivery-fee-report/internal/domain/daterange"
	"github.com/eshaffer321/delivery-fee-report/internal/domain/report"
	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/csvexport"
	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/storage"
)

// NewOrchestrator creates a new report orchestrator. store and uploader may be nil.
func NewOrchestrator(
	platform Platform,
	classifier report.ShippingClassifier,
	dashboardURL string,
	store storage.Repository,
	uploader Uploader,
	logger *slog.Logger,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		platform:   platform,
		normalizer: report.NewNormalizer(classifier, platform, dashboardURL),
		storage:    store,
		uploader:   uploader,
		location:   time.Local,
		logger:     logger.With("system", "report"),
		newRunID:   uuid.NewString,
	}
}

// SetLocation sets the zone used to interpret input dates
func (o *Orchestrator) SetLocation(loc *time.Location) {
	if loc != nil {
		o.location = loc
	}
}

// Run executes one run in the requested mode
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Mode == ModeInspect {
		return o.inspect(ctx, opts.SessionID)
	}
	return o.runReport(ctx, opts)
}

func (o *Orchestrator) runReport(ctx context.Context, opts Options) (*Result, error) {
	started := time.Now()

	r, err := o.resolveRange(opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID: o.newRunID(),
		Range: r,
	}
	o.startRun(result, opts)

	if err := o.collect(ctx, r, result); err != nil {
		o.failRun(result.RunID, err)
		return nil, err
	}

	path := filepath.Join(opts.OutputDir, daterange.Filename(opts.StartDate, opts.EndDate))
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			err = fmt.Errorf("failed to create output directory: %w", err)
			o.failRun(result.RunID, err)
			return nil, err
		}
	}
	if err := csvexport.WriteFile(path, result.Rows); err != nil {
		o.failRun(result.RunID, err)
		return nil, err
	}
	result.Filename = path

	if result.Empty() {
		o.logger.Warn("no transactions qualified; wrote header-only report", "file", path)
	}

	if opts.Upload && o.uploader != nil {
		url, err := o.uploader.Upload(ctx, path)
		if err != nil {
			o.failRun(result.RunID, err)
			return nil, err
		}
		result.UploadURL = url
	}

	result.Total = report.Total(result.Rows)
	result.Duration = time.Since(started)
	o.completeRun(result)

	o.logger.Info("report written",
		"file", path,
		"rows", len(result.Rows),
		"sessions", result.SessionsSeen,
		"invoices", result.InvoicesSeen,
		"dropped", result.Dropped,
		"total", result.Total.String(),
	)

	return result, nil
}

// resolveRange returns nil for an unbounded report
func (o *Orchestrator) resolveRange(opts Options) (*daterange.Range, error) {
	if opts.StartDate == "" && opts.EndDate == "" {
		o.logger.Warn("no report dates given; reporting over all time")
		return nil, nil
	}

	r, ok := daterange.Resolve(opts.StartDate, opts.EndDate, o.location)
	if !ok {
		if !daterange.IsValidDate(opts.StartDate) {
			return nil, fmt.Errorf("%w: start date %q", ErrInvalidDateRange, opts.StartDate)
		}
		return nil, fmt.Errorf("%w: end date %q", ErrInvalidDateRange, opts.EndDate)
	}
	if !r.Valid() {
		return nil, fmt.Errorf("%w: start=%q end=%q", ErrInvertedRange, opts.StartDate, opts.EndDate)
	}
	if opts.EndOfDay {
		r = r.ExtendToEndOfDay(o.location)
	}

	o.logger.Debug("resolved date range", "gte", r.Gte, "lte", r.Lte)
	return &r, nil
}

// collect normalizes sessions then invoices into result.Rows
func (o *Orchestrator) collect(ctx context.Context, r *daterange.Range, result *Result) error {
	add := func(src report.Source) error {
		row, ok, err := o.normalizer.Normalize(ctx, src)
		if err != nil {
			return err
		}
		if !ok {
			result.Dropped++
			o.logger.Debug("dropped transaction", "kind", src.Kind(), "id", src.SourceID())
			return nil
		}
		result.Rows = append(result.Rows, row)
		return nil
	}

	err := o.platform.ListSessions(ctx, r, func(s *report.Session) error {
		result.SessionsSeen++
		return add(s)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch sessions: %w", err)
	}

	err = o.platform.ListInvoices(ctx, r, func(inv *report.Invoice) error {
		result.InvoicesSeen++
		return add(inv)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch invoices: %w", err)
	}

	return nil
}

func (o *Orchestrator) inspect(ctx context.Context, sessionID string) (*Result, error) {
	if sessionID == "" {
		return nil, ErrMissingSessionID
	}

	session, err := o.platform.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := &Result{RunID: o.newRunID(), SessionsSeen: 1}
	row, ok, err := o.normalizer.Normalize(ctx, session)
	if err != nil {
		return nil, err
	}
	if !ok {
		result.Dropped = 1
		o.logger.Info("session does not qualify for the report",
			"session_id", session.ID,
			"payment_status", session.PaymentStatus,
			"shipping_options", len(session.ShippingOptions),
		)
		return result, nil
	}

	result.Rows = []report.Row{row}
	result.Total = report.Total(result.Rows)
	o.logger.Info("session row",
		"session_id", row.ID,
		"name", row.Name,
		"date", row.Date,
		"shipping", row.Shipping,
		"amount", row.Amount.String(),
		"tip", row.Tip.String(),
	)
	return result, nil
}
