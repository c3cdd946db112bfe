package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/weekplan/weekplan-backend/internal/config"
	"github.com/weekplan/weekplan-backend/internal/database"
	"github.com/weekplan/weekplan-backend/internal/handler"
	"github.com/weekplan/weekplan-backend/internal/logger"
	"github.com/weekplan/weekplan-backend/internal/render"
	"github.com/weekplan/weekplan-backend/internal/repository"
	"github.com/weekplan/weekplan-backend/internal/router"
	"github.com/weekplan/weekplan-backend/internal/service"
	"github.com/weekplan/weekplan-backend/internal/validator"
	"github.com/weekplan/weekplan-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Weekplan Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Open Blob Store ───────────────────────────────────────────────
	db, err := database.NewSQLite(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open blob store")
	}
	defer db.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	blobRepo := repository.NewBlobRepository(db)

	// ─── Initialize Services ──────────────────────────────────────────
	scheduleService := service.NewScheduleService(blobRepo, log)
	if err := scheduleService.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load schedule store")
	}
	editorService := service.NewEditorService(scheduleService, log)
	layoutService := service.NewLayoutService(scheduleService, log)
	transferService := service.NewTransferService(scheduleService, log)

	gridRenderer := render.NewGridRenderer(cfg.FontPath, cfg.ExportScale, log)

	// ─── Start Backup Worker ──────────────────────────────────────────
	if cfg.BackupDir != "" {
		backupWorker := worker.NewBackupWorker(
			transferService,
			scheduleService,
			cfg.BackupDir,
			time.Duration(cfg.BackupIntervalMinutes)*time.Minute,
			cfg.BackupKeep,
			log,
		)
		go backupWorker.Start(ctx)
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Schedule: handler.NewScheduleHandler(scheduleService),
		Settings: handler.NewSettingsHandler(scheduleService),
		Editor:   handler.NewEditorHandler(editorService),
		Layout:   handler.NewLayoutHandler(layoutService),
		Transfer: handler.NewTransferHandler(transferService, layoutService, scheduleService, gridRenderer, log),
		WS:       handler.NewWSHandler(layoutService, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
