package reporting

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/eshaffer321/delivery-fee-report/internal/domain/daterange"
	"github.com/eshaffer321/delivery-fee-report/internal/domain/report"
	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/storage"
)

// Mode selects what a run does
type Mode int

const (
	// ModeReport builds and writes the CSV report
	ModeReport Mode = iota
	// ModeInspect retrieves a single session and logs its normalized row
	ModeInspect
)

var (
	// ErrInvalidDateRange is returned when a supplied date is not MM/DD/YYYY
	ErrInvalidDateRange = errors.New("invalid date range: dates must be MM/DD/YYYY")
	// ErrInvertedRange is returned when the start date is after the end date
	ErrInvertedRange = errors.New("invalid date range: start date is after end date")
	// ErrMissingSessionID is returned by inspect mode without a session id
	ErrMissingSessionID = errors.New("inspect mode requires a session id")
)

// Platform is the payment platform the report reads from
type Platform interface {
	report.LineItemLister
	ListSessions(ctx context.Context, r *daterange.Range, fn func(*report.Session) error) error
	ListInvoices(ctx context.Context, r *daterange.Range, fn func(*report.Invoice) error) error
	GetSession(ctx context.Context, sessionID string) (*report.Session, error)
}

// Uploader publishes a written report file and returns where it went
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// Options holds run configuration
type Options struct {
	Mode      Mode
	StartDate string // MM/DD/YYYY; empty with EndDate empty = all time
	EndDate   string
	EndOfDay  bool   // move the end bound to 23:59:59 of the end date
	OutputDir string // directory for the CSV; empty = working directory
	SessionID string // ModeInspect only
	Upload    bool   // upload the CSV when an uploader is configured
}

// Result holds run results
type Result struct {
	RunID        string           `json:"run_id"`
	Filename     string           `json:"filename,omitempty"`
	Range        *daterange.Range `json:"range,omitempty"`
	Rows         []report.Row     `json:"rows"`
	SessionsSeen int              `json:"sessions_seen"`
	InvoicesSeen int              `json:"invoices_seen"`
	Dropped      int              `json:"dropped"`
	Total        report.Cents     `json:"total"`
	UploadURL    string           `json:"upload_url,omitempty"`
	Duration     time.Duration    `json:"duration"`
}

// Empty reports whether no transaction qualified
func (r *Result) Empty() bool {
	return len(r.Rows) == 0
}

// Orchestrator runs the report process
type Orchestrator struct {
	platform   Platform
	normalizer *report.Normalizer
	storage    storage.Repository
	uploader   Uploader
	location   *time.Location
	logger     *slog.Logger
	newRunID   func() string
}
