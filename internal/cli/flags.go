package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/eshaffer321/delivery-fee-report/internal/application/reporting"
	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/config"
)

// ReportFlags are the flags of the report command
type ReportFlags struct {
	StartDate string
	EndDate   string
	OutputDir string
	EndOfDay  bool
	Upload    bool
}

// ParseReportFlags parses report flags, defaulting to the configured window
func ParseReportFlags(args []string, cfg *config.Config, output io.Writer) (*ReportFlags, error) {
	flags := &ReportFlags{}
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&flags.StartDate, "start", cfg.Report.StartDate, "Start date (MM/DD/YYYY); empty with -end empty = all time")
	fs.StringVar(&flags.EndDate, "end", cfg.Report.EndDate, "End date (MM/DD/YYYY)")
	fs.StringVar(&flags.OutputDir, "out", cfg.Report.OutputDir, "Directory for the CSV file")
	fs.BoolVar(&flags.EndOfDay, "end-of-day", cfg.Report.EndOfDay, "Include the whole end date instead of stopping at midnight")
	fs.BoolVar(&flags.Upload, "upload", cfg.Upload.S3Bucket != "", "Upload the CSV to the configured S3 bucket")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return flags, nil
}

// ToOptions converts ReportFlags to reporting.Options
func (f ReportFlags) ToOptions() reporting.Options {
	return reporting.Options{
		Mode:      reporting.ModeReport,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		EndOfDay:  f.EndOfDay,
		OutputDir: f.OutputDir,
		Upload:    f.Upload,
	}
}

// ParseInspectFlags returns the session id given by -session or as the first argument
func ParseInspectFlags(args []string, output io.Writer) (string, error) {
	var sessionID string
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&sessionID, "session", "", "Checkout session id to inspect")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if sessionID == "" && fs.NArg() > 0 {
		sessionID = fs.Arg(0)
	}
	if sessionID == "" {
		return "", reporting.ErrMissingSessionID
	}
	return sessionID, nil
}

// ParseRunsFlags returns the number of runs to list
func ParseRunsFlags(args []string, output io.Writer) (int, error) {
	var limit int
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&limit, "limit", 10, "Number of recent runs to show")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}
	if limit < 1 {
		return 0, fmt.Errorf("limit must be positive, got %d", limit)
	}
	return limit, nil
}

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port int
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags(args []string, cfg *config.Config, output io.Writer) (*ServeFlags, error) {
	flags := &ServeFlags{}
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&flags.Port, "port", cfg.API.Port, "Port to listen on")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return flags, nil
}
