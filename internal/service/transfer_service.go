package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"github.com/weekplan/weekplan-backend/internal/model"
)

// ErrMalformedImport is returned when an import payload is not valid JSON or
// lacks the required schedule shape. The existing state stays untouched.
var ErrMalformedImport = errors.New("malformed schedule import")

var whitespaceRe = regexp.MustCompile(`\s+`)

// TransferService handles JSON import and export of the full schedule
// document.
type TransferService struct {
	sched *ScheduleService
	log   zerolog.Logger
}

func NewTransferService(sched *ScheduleService, log zerolog.Logger) *TransferService {
	return &TransferService{
		sched: sched,
		log:   log.With().Str("component", "transfer_service").Logger(),
	}
}

// importPayload distinguishes "schedule key absent" from "schedule empty" so
// shape errors are reported as malformed rather than silently imported.
type importPayload struct {
	LastSaved *time.Time      `json:"lastSaved"`
	Schedule  *model.Schedule `json:"schedule"`
}

// Import parses a user-supplied JSON document and replaces the entire
// schedule. lastSaved is stamped at load time regardless of what the file
// carried.
func (s *TransferService) Import(ctx context.Context, raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	var payload importPayload
	if err := dec.Decode(&payload); err != nil {
		s.log.Warn().Err(err).Msg("Rejected malformed import")
		return ErrMalformedImport
	}
	if payload.Schedule == nil {
		s.log.Warn().Msg("Rejected import without schedule document")
		return ErrMalformedImport
	}

	data := model.ScheduleData{Schedule: *payload.Schedule}
	if data.Schedule.Items == nil {
		data.Schedule.Items = []model.CourseItem{}
	}

	if err := s.sched.ReplaceAll(ctx, data); err != nil {
		return err
	}

	s.log.Info().
		Int("courses", len(data.Schedule.Items)).
		Msg("Schedule imported")
	return nil
}

// ExportJSON serializes the current schedule pretty-printed and returns the
// download filename: the title with whitespace collapsed to underscores plus
// the current date.
func (s *TransferService) ExportJSON(ctx context.Context) ([]byte, string, error) {
	data := s.sched.Data(ctx)

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("marshal schedule: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.json",
		sanitizeTitle(data.Schedule.Title),
		time.Now().UTC().Format("2006-01-02"))
	return raw, filename, nil
}

// ImageFilename is the download name for a PNG export of the given title.
func ImageFilename(title string) string {
	return sanitizeTitle(title) + "_schedule.png"
}

func sanitizeTitle(title string) string {
	return whitespaceRe.ReplaceAllString(title, "_")
}
