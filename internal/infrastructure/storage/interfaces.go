package storage

import (
	"errors"

	"github.com/eshaffer321/delivery-fee-report/internal/domain/report"
)

// ErrRunNotFound is returned when a run id is unknown
var ErrRunNotFound = errors.New("report run not found")

// Repository defines the complete storage interface.
// This interface allows swapping implementations and makes testing with
// mocks straightforward.
type Repository interface {
	RunRepository
	RowRepository
	Close() error
}

// RunRepository handles report run tracking
type RunRepository interface {
	// StartRun records the start of a run. run.ID must be set.
	StartRun(run *Run) error

	// CompleteRun marks a run successful and stores its counters
	CompleteRun(runID string, completion RunCompletion) error

	// FailRun marks a run failed with the given message
	FailRun(runID string, message string) error

	// ListRuns returns the most recent runs first
	ListRuns(limit int) ([]Run, error)

	// GetRun retrieves a run by ID
	GetRun(runID string) (*Run, error)
}

// RowRepository stores the rows a run exported
type RowRepository interface {
	// SaveRows replaces the rows stored for a run, keeping their order
	SaveRows(runID string, rows []report.Row) error

	// GetRows returns a run's rows in report order
	GetRows(runID string) ([]report.Row, error)
}
