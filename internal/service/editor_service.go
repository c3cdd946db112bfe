package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/weekplan/weekplan-backend/internal/model"
)

// ErrDraftNotFound is returned for draft ids that are unknown or already
// closed.
var ErrDraftNotFound = errors.New("draft not found")

// Draft is one open editor session. The course inside is a working copy;
// nothing touches the store until an explicit, validated save.
type Draft struct {
	ID        string           `json:"id"`
	IsNew     bool             `json:"isNew"`
	Course    model.CourseItem `json:"course"`
	OpenedAt  time.Time        `json:"openedAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// EditorService implements the course editor lifecycle:
// closed -> editing(draft) -> saved | cancelled | deleted.
// Drafts live in memory only; an abandoned draft simply never reaches the
// store.
type EditorService struct {
	sched *ScheduleService
	log   zerolog.Logger

	mu     sync.Mutex
	drafts map[string]*Draft
}

func NewEditorService(sched *ScheduleService, log zerolog.Logger) *EditorService {
	return &EditorService{
		sched:  sched,
		log:    log.With().Str("component", "editor_service").Logger(),
		drafts: make(map[string]*Draft),
	}
}

// OpenNew starts a draft for a brand new course: fresh uid, random palette
// color, one default meeting time with no days selected.
func (s *EditorService) OpenNew() Draft {
	now := time.Now().UTC()
	draft := &Draft{
		ID:        uuid.New().String(),
		IsNew:     true,
		Course:    model.NewCourseItem(),
		OpenedAt:  now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.drafts[draft.ID] = draft
	s.mu.Unlock()

	return *draft
}

// OpenEdit starts a draft editing an existing course. The draft holds a deep
// copy; the store's course is untouched until save.
func (s *EditorService) OpenEdit(ctx context.Context, courseUID string) (Draft, error) {
	course, err := s.sched.CourseByUID(ctx, courseUID)
	if err != nil {
		return Draft{}, err
	}

	now := time.Now().UTC()
	draft := &Draft{
		ID:        uuid.New().String(),
		Course:    course,
		OpenedAt:  now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.drafts[draft.ID] = draft
	s.mu.Unlock()

	return *draft, nil
}

// Update replaces the draft's working copy. No validation runs here — the
// draft may transiently hold invalid states while the user types.
func (s *EditorService) Update(draftID string, course model.CourseItem) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[draftID]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}

	// uid is stable across edits, whatever the payload claims
	course.UID = draft.Course.UID
	draft.Course = course.DeepCopy()
	draft.UpdatedAt = time.Now().UTC()
	return *draft, nil
}

// Save validates the draft and, if every rule passes, commits it to the
// store as a single atomic replace-or-add and closes the draft. On failure
// the draft stays open and the store is unchanged.
func (s *EditorService) Save(ctx context.Context, draftID string) (model.CourseItem, model.CourseValidation, error) {
	s.mu.Lock()
	draft, ok := s.drafts[draftID]
	if !ok {
		s.mu.Unlock()
		return model.CourseItem{}, model.CourseValidation{}, ErrDraftNotFound
	}
	course := draft.Course.DeepCopy()
	s.mu.Unlock()

	validation := model.ValidateCourse(course)
	if !validation.OK() {
		return model.CourseItem{}, validation, nil
	}

	if err := s.sched.UpsertCourse(ctx, course); err != nil {
		return model.CourseItem{}, validation, err
	}

	s.closeDraft(draftID)
	s.log.Debug().Str("course_uid", course.UID).Msg("Draft saved")
	return course, validation, nil
}

// Cancel discards the draft.
func (s *EditorService) Cancel(draftID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[draftID]; !ok {
		return ErrDraftNotFound
	}
	delete(s.drafts, draftID)
	return nil
}

// DeleteCourse removes the draft's course from the store, bypassing
// validation, and closes the draft. For a draft that never reached the store
// it is equivalent to cancelling.
func (s *EditorService) DeleteCourse(ctx context.Context, draftID string) error {
	s.mu.Lock()
	draft, ok := s.drafts[draftID]
	if !ok {
		s.mu.Unlock()
		return ErrDraftNotFound
	}
	courseUID := draft.Course.UID
	isNew := draft.IsNew
	s.mu.Unlock()

	if !isNew {
		if err := s.sched.DeleteCourse(ctx, courseUID); err != nil && !errors.Is(err, ErrCourseNotFound) {
			return err
		}
	}

	s.closeDraft(draftID)
	return nil
}

// Draft returns the current state of an open draft.
func (s *EditorService) Draft(draftID string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[draftID]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	return *draft, nil
}

func (s *EditorService) closeDraft(draftID string) {
	s.mu.Lock()
	delete(s.drafts, draftID)
	s.mu.Unlock()
}
