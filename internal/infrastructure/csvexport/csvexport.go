// Package csvexport writes report rows as CSV.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/eshaffer321/delivery-fee-report/internal/domain/report"
)

// Write writes the header followed by one record per row. An empty row list
// produces a header-only report.
func Write(w io.Writer, rows []report.Row) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(report.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row.Record()); err != nil {
			return fmt.Errorf("failed to write row %s: %w", row.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile creates (or truncates) path and writes rows into it.
func WriteFile(path string, rows []report.Row) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return Write(f, rows)
}
