package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weekplan/weekplan-backend/internal/model"
	"github.com/weekplan/weekplan-backend/internal/response"
	"github.com/weekplan/weekplan-backend/internal/service"
	"github.com/weekplan/weekplan-backend/internal/validator"
)

// SettingsHandler exposes the display settings document.
type SettingsHandler struct {
	sched *service.ScheduleService
}

func NewSettingsHandler(sched *service.ScheduleService) *SettingsHandler {
	return &SettingsHandler{sched: sched}
}

// GetSettings godoc
// GET /api/v1/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings := h.sched.Settings(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings godoc
// PUT /api/v1/settings
// Replaces all four display options at once.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var settings model.ScheduleSettings
	if fields := validator.Bind(c, &settings); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.sched.UpdateSettings(c.Request.Context(), settings); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}
