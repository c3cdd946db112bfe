package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/weekplan/weekplan-backend/internal/layout"
)

// LayoutSnapshot tags a derived layout with the store generation it was
// computed from, so clients can correlate measurements with layouts.
type LayoutSnapshot struct {
	Generation uint64 `json:"generation"`
	layout.Snapshot
}

// LayoutService derives layout snapshots from the store and owns the
// content-height measurement registry. Measurements arrive after the
// rendering surface has painted the baseline layout; observing them again
// recomputes the slot height once, never iteratively. The registry is keyed
// to the store generation: any schedule or settings change rebuilds the
// event set, so stale measurements are discarded wholesale.
type LayoutService struct {
	sched *ScheduleService
	log   zerolog.Logger

	mu         sync.Mutex
	heights    map[string]float64
	generation uint64
}

func NewLayoutService(sched *ScheduleService, log zerolog.Logger) *LayoutService {
	return &LayoutService{
		sched:   sched,
		log:     log.With().Str("component", "layout_service").Logger(),
		heights: make(map[string]float64),
	}
}

// Snapshot recomputes the full layout from current store state and any
// measurements observed for this generation.
func (s *LayoutService) Snapshot(ctx context.Context) LayoutSnapshot {
	data := s.sched.Data(ctx)
	settings := s.sched.Settings(ctx)
	generation := s.sched.Generation()

	heights := s.heightsFor(generation)

	return LayoutSnapshot{
		Generation: generation,
		Snapshot:   layout.BuildSnapshot(data.Schedule.Items, settings, heights),
	}
}

// Observe merges content-height measurements into the registry. Late or
// duplicate observations are safe: merging a superset can only keep the
// resolved slot height equal or grow it. Zero heights are ignored.
func (s *LayoutService) Observe(ctx context.Context, measurements map[string]float64) {
	generation := s.sched.Generation()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation {
		s.heights = make(map[string]float64)
		s.generation = generation
	}

	for id, h := range measurements {
		if h <= 0 {
			continue
		}
		s.heights[id] = h
	}

	s.log.Debug().
		Int("observed", len(measurements)).
		Uint64("generation", generation).
		Msg("Measurements merged")
}

// heightsFor returns a copy of the registry if it matches the given
// generation, or nil when the measurements are stale.
func (s *LayoutService) heightsFor(generation uint64) map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation || len(s.heights) == 0 {
		return nil
	}

	heights := make(map[string]float64, len(s.heights))
	for id, h := range s.heights {
		heights[id] = h
	}
	return heights
}
