package storage

import (
	"time"

	"github.com/eshaffer321/delivery-fee-report/internal/domain/report"
)

// Run statuses
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Run is one execution of the report
type Run struct {
	ID           string       `json:"id"`
	StartDate    string       `json:"start_date"`
	EndDate      string       `json:"end_date"`
	RangeGte     *int64       `json:"range_gte,omitempty"` // nil = unbounded
	RangeLte     *int64       `json:"range_lte,omitempty"`
	Filename     string       `json:"filename,omitempty"`
	Status       string       `json:"status"`
	SessionsSeen int          `json:"sessions_seen"`
	InvoicesSeen int          `json:"invoices_seen"`
	RowCount     int          `json:"row_count"`
	Dropped      int          `json:"dropped"`
	Total        report.Cents `json:"total"`
	UploadURL    string       `json:"upload_url,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
	StartedAt    time.Time    `json:"started_at"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
}

// RunCompletion carries the counters recorded when a run finishes
type RunCompletion struct {
	Filename     string
	SessionsSeen int
	InvoicesSeen int
	RowCount     int
	Dropped      int
	Total        report.Cents
	UploadURL    string
}
