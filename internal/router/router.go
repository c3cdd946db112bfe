package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/weekplan/weekplan-backend/internal/config"
	"github.com/weekplan/weekplan-backend/internal/handler"
	"github.com/weekplan/weekplan-backend/internal/middleware"
	"github.com/weekplan/weekplan-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Schedule *handler.ScheduleHandler
	Settings *handler.SettingsHandler
	Editor   *handler.EditorHandler
	Layout   *handler.LayoutHandler
	Transfer *handler.TransferHandler
	WS       *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for import (30 requests per minute per IP); a runaway
	// client re-importing in a loop would otherwise rewrite the blob store
	// continuously.
	importLimiter := middleware.NewRateLimiter(30, time.Minute)

	api := router.Group("/api/v1")
	{
		// Schedule store
		api.GET("/schedule", handlers.Schedule.GetSchedule)
		api.PUT("/schedule/title", handlers.Schedule.UpdateTitle)
		api.POST("/schedule/courses", handlers.Schedule.CreateCourse)
		api.PUT("/schedule/courses/:uid", handlers.Schedule.UpdateCourse)
		api.DELETE("/schedule/courses/:uid", handlers.Schedule.DeleteCourse)

		// Display settings
		api.GET("/settings", handlers.Settings.GetSettings)
		api.PUT("/settings", handlers.Settings.UpdateSettings)

		// Editor drafts
		api.POST("/editor/drafts", handlers.Editor.OpenDraft)
		api.GET("/editor/drafts/:id", handlers.Editor.GetDraft)
		api.PUT("/editor/drafts/:id", handlers.Editor.UpdateDraft)
		api.POST("/editor/drafts/:id/save", handlers.Editor.SaveDraft)
		api.DELETE("/editor/drafts/:id", handlers.Editor.CancelDraft)
		api.POST("/editor/drafts/:id/delete", handlers.Editor.DeleteCourse)

		// Layout pipeline
		api.GET("/layout", handlers.Layout.GetLayout)
		api.POST("/layout/measurements", handlers.Layout.ObserveMeasurements)

		// Import / export
		api.POST("/transfer/import", importLimiter.Middleware(), handlers.Transfer.Import)
		api.GET("/transfer/export", handlers.Transfer.ExportJSON)
		api.GET("/transfer/export/image",
			middleware.CacheControl(0), // exports reflect live state, never cache
			handlers.Transfer.ExportImage,
		)
	}

	// ─── WebSocket Group ───────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/layout/stream", handlers.WS.LayoutStream)
	}

	return router
}
