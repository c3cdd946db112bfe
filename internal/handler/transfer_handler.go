package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/weekplan/weekplan-backend/internal/render"
	"github.com/weekplan/weekplan-backend/internal/response"
	"github.com/weekplan/weekplan-backend/internal/service"
)

// maxImportBytes bounds import payloads; schedules are small documents.
const maxImportBytes = 4 << 20

// TransferHandler handles JSON import/export and PNG export of the schedule.
type TransferHandler struct {
	transfer      *service.TransferService
	layoutService *service.LayoutService
	sched         *service.ScheduleService
	renderer      *render.GridRenderer
	log           zerolog.Logger
}

func NewTransferHandler(
	transfer *service.TransferService,
	layoutService *service.LayoutService,
	sched *service.ScheduleService,
	renderer *render.GridRenderer,
	log zerolog.Logger,
) *TransferHandler {
	return &TransferHandler{
		transfer:      transfer,
		layoutService: layoutService,
		sched:         sched,
		renderer:      renderer,
		log:           log.With().Str("component", "transfer_handler").Logger(),
	}
}

// Import godoc
// POST /api/v1/transfer/import
// Body is the raw schedule JSON document. Malformed input leaves the current
// state untouched.
func (h *TransferHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	if err := h.transfer.Import(c.Request.Context(), raw); err != nil {
		if errors.Is(err, service.ErrMalformedImport) {
			response.Fail(c, http.StatusBadRequest, response.ErrMalformedImport)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	data := h.sched.Data(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{"scheduleData": data})
}

// ExportJSON godoc
// GET /api/v1/transfer/export
// Streams the pretty-printed schedule as a download.
func (h *TransferHandler) ExportJSON(c *gin.Context) {
	raw, filename, err := h.transfer.ExportJSON(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", raw)
}

// ExportImage godoc
// GET /api/v1/transfer/export/image
// Renders the current grid to PNG and streams it as a download. Render
// failures abort the export without touching any state.
func (h *TransferHandler) ExportImage(c *gin.Context) {
	snapshot := h.layoutService.Snapshot(c.Request.Context())
	settings := h.sched.Settings(c.Request.Context())
	title := h.sched.Data(c.Request.Context()).Schedule.Title

	png, err := h.renderer.WeeklyGrid(snapshot.Snapshot, settings, title)
	if err != nil {
		switch {
		case errors.Is(err, render.ErrMissingRenderTarget):
			h.log.Error().Err(err).Msg("Image export aborted: no render target")
			response.Fail(c, http.StatusConflict, response.ErrMissingRenderTarget)
		case errors.Is(err, render.ErrUnresolvedColorFormat):
			h.log.Error().Err(err).Msg("Image export aborted: bad color")
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrUnresolvedColorFormat)
		default:
			h.log.Error().Err(err).Msg("Image export failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.ImageFilename(title)))
	c.Data(http.StatusOK, "image/png", png)
}
