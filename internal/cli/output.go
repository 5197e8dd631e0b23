package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/eshaffer321/delivery-fee-report/internal/application/reporting"
	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/storage"
)

// PrintHeader prints the report window
func PrintHeader(w io.Writer, opts reporting.Options) {
	window := "all time"
	if opts.StartDate != "" || opts.EndDate != "" {
		window = fmt.Sprintf("%s to %s", opts.StartDate, opts.EndDate)
		if opts.EndOfDay {
			window += " (end of day)"
		}
	}
	fmt.Fprintf(w, "delivery-report: %s\n\n", window)
}

// PrintSummary prints the report result and the delivery fee total line
func PrintSummary(w io.Writer, result *reporting.Result) {
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "Summary: Sessions=%d Invoices=%d Rows=%d Dropped=%d\n",
		result.SessionsSeen,
		result.InvoicesSeen,
		len(result.Rows),
		result.Dropped)
	fmt.Fprintf(w, "Report: %s\n", result.Filename)
	if result.UploadURL != "" {
		fmt.Fprintf(w, "Uploaded: %s\n", result.UploadURL)
	}
	fmt.Fprintf(w, "Total Delivery Fee Revenue: %s\n", result.Total)
}

// PrintRow prints a single inspected row
func PrintRow(w io.Writer, result *reporting.Result) {
	if result.Empty() {
		fmt.Fprintln(w, "Session does not qualify for the report.")
		return
	}
	r := result.Rows[0]
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", r.Name)
	fmt.Fprintf(tw, "Date:\t%s\n", r.Date)
	fmt.Fprintf(tw, "Shipping:\t%s\n", r.Shipping)
	fmt.Fprintf(tw, "Amount:\t%s\n", r.Amount)
	fmt.Fprintf(tw, "Tip:\t%s\n", r.Tip)
	fmt.Fprintf(tw, "Payment:\t%s\n", r.StripeLink)
	_ = tw.Flush()
}

// PrintRuns prints recent report runs as a table
func PrintRuns(w io.Writer, runs []storage.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No report runs recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tSTATUS\tWINDOW\tROWS\tDROPPED\tTOTAL\tID")
	for _, run := range runs {
		window := "all time"
		if run.StartDate != "" || run.EndDate != "" {
			window = run.StartDate + "-" + run.EndDate
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Status,
			window,
			run.RowCount,
			run.Dropped,
			run.Total,
			run.ID)
	}
	_ = tw.Flush()
}
