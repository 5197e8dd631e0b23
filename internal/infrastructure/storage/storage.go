package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/eshaffer321/delivery-fee-report/internal/domain/report"
)

const timeLayout = time.RFC3339

// Storage provides SQLite database access for report runs.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	// Run all pending migrations
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// StartRun inserts a run in the running state
func (s *Storage) StartRun(run *Run) error {
	if run.ID == "" {
		return errors.New("run id is required")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.Status = StatusRunning

	_, err := s.db.Exec(`
		INSERT INTO report_runs (id, start_date, end_date, range_gte, range_lte, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartDate,
		run.EndDate,
		nullInt64(run.RangeGte),
		nullInt64(run.RangeLte),
		run.Status,
		run.StartedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to start run: %w", err)
	}
	return nil
}

// CompleteRun marks a run successful
func (s *Storage) CompleteRun(runID string, c RunCompletion) error {
	res, err := s.db.Exec(`
		UPDATE report_runs
		SET status = ?, filename = ?, sessions_seen = ?, invoices_seen = ?, row_count = ?,
		    dropped = ?, total_cents = ?, upload_url = ?, completed_at = ?
		WHERE id = ?`,
		StatusSuccess,
		c.Filename,
		c.SessionsSeen,
		c.InvoicesSeen,
		c.RowCount,
		c.Dropped,
		int64(c.Total),
		c.UploadURL,
		time.Now().UTC().Format(timeLayout),
		runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return expectOneRow(res)
}

// FailRun marks a run failed
func (s *Storage) FailRun(runID string, message string) error {
	res, err := s.db.Exec(`
		UPDATE report_runs SET status = ?, error_message = ?, completed_at = ? WHERE id = ?`,
		StatusFailed,
		message,
		time.Now().UTC().Format(timeLayout),
		runID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark run failed: %w", err)
	}
	return expectOneRow(res)
}

const runColumns = `id, start_date, end_date, range_gte, range_lte, filename, status,
	sessions_seen, invoices_seen, row_count, dropped, total_cents, upload_url,
	error_message, started_at, completed_at`

// ListRuns returns recent runs, newest first
func (s *Storage) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`SELECT `+runColumns+` FROM report_runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRun retrieves a run by ID
func (s *Storage) GetRun(runID string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM report_runs WHERE id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	return run, err
}

// SaveRows replaces the stored rows of a run
func (s *Storage) SaveRows(runID string, rows []report.Row) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM report_rows WHERE run_id = ?`, runID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to clear rows: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO report_rows
		(run_id, position, name, date, shipping, amount_cents, tip_cents, payment_intent, stripe_link, source_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare row insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range rows {
		if _, err := stmt.Exec(runID, i, r.Name, r.Date, r.Shipping, int64(r.Amount), int64(r.Tip), r.PaymentIntent, r.StripeLink, r.ID); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert row %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// GetRows returns the rows of a run in report order
func (s *Storage) GetRows(runID string) ([]report.Row, error) {
	rows, err := s.db.Query(`
		SELECT name, date, shipping, amount_cents, tip_cents, payment_intent, stripe_link, source_id
		FROM report_rows WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []report.Row
	for rows.Next() {
		var r report.Row
		var amount, tip int64
		if err := rows.Scan(&r.Name, &r.Date, &r.Shipping, &amount, &tip, &r.PaymentIntent, &r.StripeLink, &r.ID); err != nil {
			return nil, err
		}
		r.Amount = report.Cents(amount)
		r.Tip = report.Cents(tip)
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		run                    Run
		gte, lte               sql.NullInt64
		filename, uploadURL    sql.NullString
		errorMessage           sql.NullString
		total                  int64
		startedAt, completedAt sql.NullString
	)

	err := sc.Scan(
		&run.ID,
		&run.StartDate,
		&run.EndDate,
		&gte,
		&lte,
		&filename,
		&run.Status,
		&run.SessionsSeen,
		&run.InvoicesSeen,
		&run.RowCount,
		&run.Dropped,
		&total,
		&uploadURL,
		&errorMessage,
		&startedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if gte.Valid {
		run.RangeGte = &gte.Int64
	}
	if lte.Valid {
		run.RangeLte = &lte.Int64
	}
	run.Filename = filename.String
	run.UploadURL = uploadURL.String
	run.ErrorMessage = errorMessage.String
	run.Total = report.Cents(total)

	if startedAt.Valid {
		run.StartedAt, _ = time.Parse(timeLayout, startedAt.String)
	}
	if completedAt.Valid && completedAt.String != "" {
		if t, err := time.Parse(timeLayout, completedAt.String); err == nil {
			run.CompletedAt = &t
		}
	}

	return &run, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRunNotFound
	}
	return nil
}
