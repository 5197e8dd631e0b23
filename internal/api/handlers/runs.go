package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/delivery-fee-report/internal/api/dto"
	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/storage"
)

// RunsHandler handles report run history requests.
type RunsHandler struct {
	*Base
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(repo storage.Repository) *RunsHandler {
	return &RunsHandler{Base: NewBase(repo)}
}

// List handles GET /api/runs.
func (h *RunsHandler) List(c *gin.Context) {
	limit := ParseIntParam(c, "limit", 20)

	runs, err := h.repo.ListRuns(limit)
	if err != nil {
		h.WriteError(c, http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.RunListResponse{
		Runs:  make([]dto.RunResponse, 0, len(runs)),
		Count: len(runs),
	}
	for _, run := range runs {
		response.Runs = append(response.Runs, dto.ToRunResponse(run))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/runs/:id.
func (h *RunsHandler) Get(c *gin.Context) {
	id := c.Param("id")

	run, err := h.repo.GetRun(id)
	if errors.Is(err, storage.ErrRunNotFound) {
		h.WriteError(c, http.StatusNotFound, dto.NotFoundError("report run"))
		return
	}
	if err != nil {
		h.WriteError(c, http.StatusInternalServerError, dto.InternalError())
		return
	}

	rows, err := h.repo.GetRows(id)
	if err != nil {
		h.WriteError(c, http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.RunDetailResponse{
		RunResponse: dto.ToRunResponse(*run),
		Rows:        dto.ToRowResponses(rows),
	})
}
