package dto

import (
	"time"

	"github.com/eshaffer321/delivery-fee-report/internal/domain/report"
	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/storage"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// RowResponse is one report row with amounts in major units.
type RowResponse struct {
	Name          string `json:"name"`
	Date          string `json:"date"`
	Shipping      string `json:"shipping"`
	Amount        string `json:"amount"`
	Tip           string `json:"tip"`
	PaymentIntent string `json:"payment_intent"`
	StripeLink    string `json:"stripe_link"`
	ID            string `json:"id"`
}

// RunResponse represents a report run in API responses.
type RunResponse struct {
	ID           string `json:"id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Filename     string `json:"filename,omitempty"`
	Status       string `json:"status"`
	SessionsSeen int    `json:"sessions_seen"`
	InvoicesSeen int    `json:"invoices_seen"`
	RowCount     int    `json:"row_count"`
	Dropped      int    `json:"dropped"`
	Total        string `json:"total"`
	UploadURL    string `json:"upload_url,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	StartedAt    string `json:"started_at"`
	CompletedAt  string `json:"completed_at,omitempty"`
}

// RunListResponse is returned when listing runs.
type RunListResponse struct {
	Runs  []RunResponse `json:"runs"`
	Count int           `json:"count"`
}

// RunDetailResponse is a run with its rows.
type RunDetailResponse struct {
	RunResponse
	Rows []RowResponse `json:"rows"`
}

// ReportResponse is returned after generating a report.
type ReportResponse struct {
	RunID        string        `json:"run_id"`
	Filename     string        `json:"filename"`
	SessionsSeen int           `json:"sessions_seen"`
	InvoicesSeen int           `json:"invoices_seen"`
	Dropped      int           `json:"dropped"`
	Total        string        `json:"total"`
	UploadURL    string        `json:"upload_url,omitempty"`
	Rows         []RowResponse `json:"rows"`
}

// ToRowResponses converts domain rows.
func ToRowResponses(rows []report.Row) []RowResponse {
	out := make([]RowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, RowResponse{
			Name:          r.Name,
			Date:          r.Date,
			Shipping:      r.Shipping,
			Amount:        r.Amount.String(),
			Tip:           r.Tip.String(),
			PaymentIntent: r.PaymentIntent,
			StripeLink:    r.StripeLink,
			ID:            r.ID,
		})
	}
	return out
}

// ToRunResponse converts a stored run.
func ToRunResponse(run storage.Run) RunResponse {
	resp := RunResponse{
		ID:           run.ID,
		StartDate:    run.StartDate,
		EndDate:      run.EndDate,
		Filename:     run.Filename,
		Status:       run.Status,
		SessionsSeen: run.SessionsSeen,
		InvoicesSeen: run.InvoicesSeen,
		RowCount:     run.RowCount,
		Dropped:      run.Dropped,
		Total:        run.Total.String(),
		UploadURL:    run.UploadURL,
		ErrorMessage: run.ErrorMessage,
		StartedAt:    run.StartedAt.UTC().Format(time.RFC3339),
	}
	if run.CompletedAt != nil {
		resp.CompletedAt = run.CompletedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
