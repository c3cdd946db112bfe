package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/weekplan/weekplan-backend/internal/service"
	ws "github.com/weekplan/weekplan-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams layout snapshots over WebSocket. The rendering surface
// reports measured content heights through the same connection; each
// observation batch triggers one recompute and push.
type WSHandler struct {
	layoutService *service.LayoutService
	log           zerolog.Logger
	upgrader      websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(layoutService *service.LayoutService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		layoutService: layoutService,
		log:           log.With().Str("component", "ws_handler").Logger(),
		upgrader:      buildUpgrader(allowedOrigins),
	}
}

// LayoutStream godoc
// WS /ws/v1/layout/stream
// Pushes the current snapshot on connect, then one recomputed snapshot per
// observe/refresh message.
func (h *WSHandler) LayoutStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("remote", conn.RemoteAddr().String()).Logger()
	wsLog.Info().Msg("Layout stream connected")

	ctx := c.Request.Context()

	// Initial snapshot so the surface can paint at the baseline height
	// before any measurements exist.
	if err := ws.WriteTyped(conn, ws.SnapshotResponse{
		Event:    ws.EventSnapshot,
		Snapshot: h.layoutService.Snapshot(ctx),
	}); err != nil {
		wsLog.Debug().Err(err).Msg("Initial snapshot write failed")
		return
	}

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionObserve:
			h.layoutService.Observe(ctx, msg.Measurements)
			fallthrough
		case ws.ActionRefresh:
			if err := ws.WriteTyped(conn, ws.SnapshotResponse{
				Event:    ws.EventSnapshot,
				Snapshot: h.layoutService.Snapshot(ctx),
			}); err != nil {
				wsLog.Debug().Err(err).Msg("Snapshot write failed")
				return
			}
		case ws.ActionPing:
			if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
				return
			}
		default:
			ws.WriteError(conn, "unknown action")
		}
	}
}
