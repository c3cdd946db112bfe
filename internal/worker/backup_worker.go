package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/weekplan/weekplan-backend/internal/service"
)

// BackupWorker periodically writes a JSON export of the schedule to a backup
// directory. It only writes when the store generation moved since the last
// sweep, so an idle schedule produces no churn.
type BackupWorker struct {
	transfer *service.TransferService
	sched    *service.ScheduleService
	log      zerolog.Logger

	dir      string
	interval time.Duration
	keep     int

	lastGeneration uint64
	wrote          bool
}

// NewBackupWorker creates a new BackupWorker.
func NewBackupWorker(transfer *service.TransferService, sched *service.ScheduleService, dir string, interval time.Duration, keep int, log zerolog.Logger) *BackupWorker {
	if keep < 1 {
		keep = 1
	}
	return &BackupWorker{
		transfer: transfer,
		sched:    sched,
		log:      log.With().Str("component", "backup_worker").Logger(),
		dir:      dir,
		interval: interval,
		keep:     keep,
	}
}

// Start begins the worker loop. Call in a goroutine; it exits when ctx is
// cancelled, taking one final backup of any unsaved generation on the way
// out.
func (w *BackupWorker) Start(ctx context.Context) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		w.log.Error().Err(err).Str("dir", w.dir).Msg("Backup dir unavailable, worker disabled")
		return
	}

	w.log.Info().
		Str("dir", w.dir).
		Dur("interval", w.interval).
		Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.sweep(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep writes one backup file if the schedule changed, then prunes old
// files.
func (w *BackupWorker) sweep(ctx context.Context) {
	generation := w.sched.Generation()
	if w.wrote && generation == w.lastGeneration {
		return
	}

	raw, _, err := w.transfer.ExportJSON(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Backup export failed")
		return
	}

	name := fmt.Sprintf("weekplan_%s.json", time.Now().UTC().Format("20060102T150405"))
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		w.log.Error().Err(err).Str("path", path).Msg("Backup write failed")
		return
	}

	w.lastGeneration = generation
	w.wrote = true
	w.log.Debug().Str("path", path).Uint64("generation", generation).Msg("Backup written")

	w.prune()
}

// prune deletes the oldest backups beyond the retention count.
func (w *BackupWorker) prune() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), "weekplan_") && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= w.keep {
		return
	}

	// Timestamped names sort chronologically.
	sort.Strings(names)
	for _, name := range names[:len(names)-w.keep] {
		if err := os.Remove(filepath.Join(w.dir, name)); err != nil {
			w.log.Warn().Err(err).Str("file", name).Msg("Backup prune failed")
		}
	}
}
