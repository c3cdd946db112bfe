// Package layout is the schedule layout engine: it expands course data into
// flat calendar events, derives the visible time axis, reconciles measured
// content heights into a uniform slot height and maps events to grid
// coordinates. Everything in this package is a pure function of its inputs;
// no rendering surface is involved, so the whole pipeline runs headless.
package layout

import (
	"fmt"

	"github.com/weekplan/weekplan-backend/internal/model"
)

// ExpandEvents flattens the course list into single-day schedule events: one
// event per (course, meeting time, active weekday) triple. Output order is
// stable: course list order, then meeting-time order, then weekday order
// Sunday..Saturday. Inactive weekdays emit nothing.
func ExpandEvents(items []model.CourseItem) []model.ScheduleEvent {
	var events []model.ScheduleEvent

	for _, course := range items {
		for _, meeting := range course.MeetingTimes {
			start := float64(meeting.StartHour) + float64(meeting.StartMinute)/60
			end := float64(meeting.EndHour) + float64(meeting.EndMinute)/60

			for day, active := range meeting.Days.Flags() {
				if !active {
					continue
				}
				events = append(events, model.ScheduleEvent{
					ID:              EventID(course.UID, meeting.UID, day),
					Title:           course.Title,
					Location:        meeting.Location,
					CourseType:      meeting.CourseType,
					Instructor:      meeting.Instructor,
					Day:             day,
					StartTime:       start,
					EndTime:         end,
					BackgroundColor: course.BackgroundColor,
				})
			}
		}
	}

	return events
}

// EventID builds the composite event identifier from its course uid, meeting
// uid and weekday index.
func EventID(courseUID, meetingUID string, day int) string {
	return fmt.Sprintf("%s-%s-%d", courseUID, meetingUID, day)
}
