package dto

// ReportRequest is the body of POST /api/reports.
type ReportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	EndOfDay  bool   `json:"end_of_day"`
	Upload    bool   `json:"upload"`
}
