package reporting

import (
	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/storage"
)

// Run history helpers. Storage failures are logged and never fail a report.

func (o *Orchestrator) startRun(result *Result, opts Options) {
	if o.storage == nil {
		return
	}

	run := &storage.Run{
		ID:        result.RunID,
		StartDate: opts.StartDate,
		EndDate:   opts.EndDate,
	}
	if result.Range != nil {
		gte, lte := result.Range.Gte, result.Range.Lte
		run.RangeGte = &gte
		run.RangeLte = &lte
	}

	if err := o.storage.StartRun(run); err != nil {
		o.logger.Warn("failed to record run start", "run_id", result.RunID, "error", err)
	}
}

func (o *Orchestrator) completeRun(result *Result) {
	if o.storage == nil {
		return
	}

	if err := o.storage.SaveRows(result.RunID, result.Rows); err != nil {
		o.logger.Warn("failed to record rows", "run_id", result.RunID, "error", err)
	}

	err := o.storage.CompleteRun(result.RunID, storage.RunCompletion{
		Filename:     result.Filename,
		SessionsSeen: result.SessionsSeen,
		InvoicesSeen: result.InvoicesSeen,
		RowCount:     len(result.Rows),
		Dropped:      result.Dropped,
		Total:        result.Total,
		UploadURL:    result.UploadURL,
	})
	if err != nil {
		o.logger.Warn("failed to record run completion", "run_id", result.RunID, "error", err)
	}
}

func (o *Orchestrator) failRun(runID string, cause error) {
	if o.storage == nil {
		return
	}
	if err := o.storage.FailRun(runID, cause.Error()); err != nil {
		o.logger.Warn("failed to record run failure", "run_id", runID, "error", err)
	}
}
