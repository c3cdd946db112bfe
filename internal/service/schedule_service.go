package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/weekplan/weekplan-backend/internal/model"
	"github.com/weekplan/weekplan-backend/internal/repository"
)

// ErrCourseNotFound is returned when a course uid does not exist in the store.
var ErrCourseNotFound = errors.New("course not found")

// BlobStore is the persistence surface the schedule store writes through.
// Satisfied by repository.BlobRepository.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Upsert(ctx context.Context, key string, value []byte) error
}

// ScheduleService is the canonical schedule store: it exclusively owns the
// course list and the display settings, mutates them only through explicit
// operations and persists both blobs synchronously on every change.
// Downstream derivations (events, axis, geometry) only ever read copies.
type ScheduleService struct {
	blobs BlobStore
	log   zerolog.Logger

	mu         sync.RWMutex
	data       model.ScheduleData
	settings   model.ScheduleSettings
	generation uint64
}

func NewScheduleService(blobs BlobStore, log zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		blobs:    blobs,
		log:      log.With().Str("component", "schedule_service").Logger(),
		data:     model.DefaultScheduleData(),
		settings: model.DefaultSettings(),
	}
}

// Load restores both blobs from the repository. A missing blob falls back to
// defaults; an unparseable one is logged and replaced by defaults rather than
// aborting startup.
func (s *ScheduleService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, err := s.blobs.Get(ctx, repository.BlobKeyScheduleData); err == nil {
		var data model.ScheduleData
		if jsonErr := json.Unmarshal(raw, &data); jsonErr != nil {
			s.log.Error().Err(jsonErr).Msg("Failed to parse saved schedule, starting empty")
		} else {
			s.data = data
		}
	} else if !errors.Is(err, repository.ErrBlobNotFound) {
		return fmt.Errorf("load schedule blob: %w", err)
	}

	if raw, err := s.blobs.Get(ctx, repository.BlobKeyScheduleSettings); err == nil {
		var settings model.ScheduleSettings
		if jsonErr := json.Unmarshal(raw, &settings); jsonErr != nil {
			s.log.Error().Err(jsonErr).Msg("Failed to parse saved settings, using defaults")
		} else {
			s.settings = settings
		}
	} else if !errors.Is(err, repository.ErrBlobNotFound) {
		return fmt.Errorf("load settings blob: %w", err)
	}

	s.log.Info().
		Int("courses", len(s.data.Schedule.Items)).
		Msg("Schedule store loaded")
	return nil
}

// Data returns a deep copy of the current schedule data. Callers never hold
// references into store state.
func (s *ScheduleService) Data(ctx context.Context) model.ScheduleData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.DeepCopy()
}

// Settings returns the current display settings.
func (s *ScheduleService) Settings(ctx context.Context) model.ScheduleSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Generation increments on every mutation that invalidates derived layout
// state (schedule or settings). The layout measurement registry keys off it.
func (s *ScheduleService) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// CourseByUID returns a copy of the course with the given uid.
func (s *ScheduleService) CourseByUID(ctx context.Context, uid string) (model.CourseItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.data.Schedule.Items {
		if item.UID == uid {
			return item.DeepCopy(), nil
		}
	}
	return model.CourseItem{}, ErrCourseNotFound
}

// ReplaceAll swaps in an entirely new schedule (import path), stamping
// lastSaved at load time.
func (s *ScheduleService) ReplaceAll(ctx context.Context, data model.ScheduleData) error {
	return s.mutate(ctx, func(d *model.ScheduleData) error {
		*d = data.DeepCopy()
		return nil
	})
}

// SetTitle renames the schedule.
func (s *ScheduleService) SetTitle(ctx context.Context, title string) error {
	return s.mutate(ctx, func(d *model.ScheduleData) error {
		d.Schedule.Title = title
		return nil
	})
}

// AddCourse appends a course to the list.
func (s *ScheduleService) AddCourse(ctx context.Context, course model.CourseItem) error {
	return s.mutate(ctx, func(d *model.ScheduleData) error {
		d.Schedule.Items = append(d.Schedule.Items, course.DeepCopy())
		return nil
	})
}

// UpdateCourse replaces the course with the same uid.
func (s *ScheduleService) UpdateCourse(ctx context.Context, course model.CourseItem) error {
	return s.mutate(ctx, func(d *model.ScheduleData) error {
		for i, item := range d.Schedule.Items {
			if item.UID == course.UID {
				d.Schedule.Items[i] = course.DeepCopy()
				return nil
			}
		}
		return ErrCourseNotFound
	})
}

// UpsertCourse replaces the course with the same uid, or appends it when the
// uid is new. This is the editor save path: one atomic replace-or-add.
func (s *ScheduleService) UpsertCourse(ctx context.Context, course model.CourseItem) error {
	return s.mutate(ctx, func(d *model.ScheduleData) error {
		for i, item := range d.Schedule.Items {
			if item.UID == course.UID {
				d.Schedule.Items[i] = course.DeepCopy()
				return nil
			}
		}
		d.Schedule.Items = append(d.Schedule.Items, course.DeepCopy())
		return nil
	})
}

// DeleteCourse removes the course with the given uid.
func (s *ScheduleService) DeleteCourse(ctx context.Context, uid string) error {
	return s.mutate(ctx, func(d *model.ScheduleData) error {
		for i, item := range d.Schedule.Items {
			if item.UID == uid {
				d.Schedule.Items = append(d.Schedule.Items[:i], d.Schedule.Items[i+1:]...)
				return nil
			}
		}
		return ErrCourseNotFound
	})
}

// UpdateSettings replaces the display settings and persists their blob.
// Settings are a separate document; they do not touch lastSaved but do bump
// the layout generation since the grid depends on them.
func (s *ScheduleService) UpdateSettings(ctx context.Context, settings model.ScheduleSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.blobs.Upsert(ctx, repository.BlobKeyScheduleSettings, raw); err != nil {
		s.log.Error().Err(err).Msg("Failed to persist settings")
		return fmt.Errorf("persist settings: %w", err)
	}

	s.settings = settings
	s.generation++
	return nil
}

// mutate applies fn to a working copy of the schedule data, stamps lastSaved,
// persists the blob and only then commits the copy to memory. A failed
// persist leaves the in-memory state untouched.
func (s *ScheduleService) mutate(ctx context.Context, fn func(*model.ScheduleData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.data.DeepCopy()
	if err := fn(&working); err != nil {
		return err
	}

	now := time.Now().UTC()
	working.LastSaved = &now

	raw, err := json.Marshal(working)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}
	if err := s.blobs.Upsert(ctx, repository.BlobKeyScheduleData, raw); err != nil {
		s.log.Error().Err(err).Msg("Failed to persist schedule")
		return fmt.Errorf("persist schedule: %w", err)
	}

	s.data = working
	s.generation++
	return nil
}
