package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weekplan/weekplan-backend/internal/response"
	"github.com/weekplan/weekplan-backend/internal/service"
	"github.com/weekplan/weekplan-backend/internal/validator"
)

// LayoutHandler serves derived layout snapshots and accepts content-height
// observations from the rendering surface.
type LayoutHandler struct {
	layoutService *service.LayoutService
}

func NewLayoutHandler(layoutService *service.LayoutService) *LayoutHandler {
	return &LayoutHandler{layoutService: layoutService}
}

// GetLayout godoc
// GET /api/v1/layout
// Recomputes and returns the full layout snapshot for the current schedule
// and settings.
func (h *LayoutHandler) GetLayout(c *gin.Context) {
	snapshot := h.layoutService.Snapshot(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{"layout": snapshot})
}

// ObserveRequest carries measured content heights, keyed by event id.
type ObserveRequest struct {
	Measurements map[string]float64 `json:"measurements" binding:"required"`
}

// ObserveMeasurements godoc
// POST /api/v1/layout/measurements
// Merges the observations and returns the recomputed snapshot.
func (h *LayoutHandler) ObserveMeasurements(c *gin.Context) {
	var req ObserveRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	h.layoutService.Observe(c.Request.Context(), req.Measurements)
	snapshot := h.layoutService.Snapshot(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{"layout": snapshot})
}
