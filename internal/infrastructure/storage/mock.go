package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/eshaffer321/delivery-fee-report/internal/domain/report"
)

// MockRepository is an in-memory implementation of Repository for testing.
type MockRepository struct {
	mu   sync.Mutex
	runs map[string]*Run
	rows map[string][]report.Row

	// Hooks for test assertions
	StartRunCalled    bool
	CompleteRunCalled bool
	FailRunCalled     bool
	SaveRowsCalled    bool

	// Error injection for testing error paths
	StartRunErr    error
	CompleteRunErr error
	FailRunErr     error
	SaveRowsErr    error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		runs: make(map[string]*Run),
		rows: make(map[string][]report.Row),
	}
}

func (m *MockRepository) StartRun(run *Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartRunCalled = true
	if m.StartRunErr != nil {
		return m.StartRunErr
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.Status = StatusRunning
	stored := *run
	m.runs[run.ID] = &stored
	return nil
}

func (m *MockRepository) CompleteRun(runID string, c RunCompletion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteRunCalled = true
	if m.CompleteRunErr != nil {
		return m.CompleteRunErr
	}
	run, ok := m.runs[runID]
	if !ok {
		return ErrRunNotFound
	}
	now := time.Now()
	run.Status = StatusSuccess
	run.Filename = c.Filename
	run.SessionsSeen = c.SessionsSeen
	run.InvoicesSeen = c.InvoicesSeen
	run.RowCount = c.RowCount
	run.Dropped = c.Dropped
	run.Total = c.Total
	run.UploadURL = c.UploadURL
	run.CompletedAt = &now
	return nil
}

func (m *MockRepository) FailRun(runID string, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailRunCalled = true
	if m.FailRunErr != nil {
		return m.FailRunErr
	}
	run, ok := m.runs[runID]
	if !ok {
		return ErrRunNotFound
	}
	now := time.Now()
	run.Status = StatusFailed
	run.ErrorMessage = message
	run.CompletedAt = &now
	return nil
}

func (m *MockRepository) ListRuns(limit int) ([]Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	runs := make([]Run, 0, len(m.runs))
	for _, r := range m.runs {
		runs = append(runs, *r)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].StartedAt.After(runs[j].StartedAt) })
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (m *MockRepository) GetRun(runID string) (*Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[runID]
	if !ok {
		return nil, ErrRunNotFound
	}
	out := *run
	return &out, nil
}

func (m *MockRepository) SaveRows(runID string, rows []report.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveRowsCalled = true
	if m.SaveRowsErr != nil {
		return m.SaveRowsErr
	}
	m.rows[runID] = append([]report.Row(nil), rows...)
	return nil
}

func (m *MockRepository) GetRows(runID string) ([]report.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]report.Row(nil), m.rows[runID]...), nil
}

func (m *MockRepository) Close() error { return nil }
