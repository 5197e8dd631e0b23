package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/delivery-fee-report/internal/api/dto"
	"github.com/eshaffer321/delivery-fee-report/internal/application/reporting"
)

// ReportRunner generates a report.
type ReportRunner interface {
	Run(ctx context.Context, opts reporting.Options) (*reporting.Result, error)
}

// ReportsHandler triggers report generation. Only one report runs at a time.
type ReportsHandler struct {
	runner    ReportRunner
	outputDir string
	logger    *slog.Logger
	mu        sync.Mutex
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(runner ReportRunner, outputDir string, logger *slog.Logger) *ReportsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportsHandler{runner: runner, outputDir: outputDir, logger: logger}
}

// Create handles POST /api/reports.
func (h *ReportsHandler) Create(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.BadRequestError("invalid JSON body"))
		return
	}

	if !h.mu.TryLock() {
		c.AbortWithStatusJSON(http.StatusConflict, dto.BusyError())
		return
	}
	defer h.mu.Unlock()

	result, err := h.runner.Run(c.Request.Context(), reporting.Options{
		Mode:      reporting.ModeReport,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		EndOfDay:  req.EndOfDay,
		OutputDir: h.outputDir,
		Upload:    req.Upload,
	})
	switch {
	case errors.Is(err, reporting.ErrInvalidDateRange), errors.Is(err, reporting.ErrInvertedRange):
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	case err != nil:
		h.logger.Error("report failed", "error", err)
		c.AbortWithStatusJSON(http.StatusBadGateway, dto.InternalError())
		return
	}

	c.JSON(http.StatusCreated, dto.ReportResponse{
		RunID:        result.RunID,
		Filename:     result.Filename,
		SessionsSeen: result.SessionsSeen,
		InvoicesSeen: result.InvoicesSeen,
		Dropped:      result.Dropped,
		Total:        result.Total.String(),
		UploadURL:    result.UploadURL,
		Rows:         dto.ToRowResponses(result.Rows),
	})
}
