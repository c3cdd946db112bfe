package model

import "strings"

// MeetingTimeErrors flags the save-time rule failures of one meeting time.
type MeetingTimeErrors struct {
	NoDaySelected    bool `json:"noDaySelected"`
	TimeOrderInvalid bool `json:"timeOrderInvalid"`
}

// Any reports whether the meeting time failed any rule.
func (e MeetingTimeErrors) Any() bool {
	return e.NoDaySelected || e.TimeOrderInvalid
}

// CourseValidation is the structured result of save-time validation, indexed
// so errors can surface inline per field and per meeting time.
type CourseValidation struct {
	EmptyTitle   bool                `json:"emptyTitle"`
	MeetingTimes []MeetingTimeErrors `json:"meetingTimes"`
}

// OK reports whether the course passed every rule.
func (v CourseValidation) OK() bool {
	if v.EmptyTitle {
		return false
	}
	for _, m := range v.MeetingTimes {
		if m.Any() {
			return false
		}
	}
	return true
}

// ValidateCourse checks the save-time rules: non-blank title, and for each
// meeting time at least one selected day and start strictly before end.
// Hour/minute ranges are the binding layer's concern and are not re-checked
// here.
func ValidateCourse(c CourseItem) CourseValidation {
	v := CourseValidation{
		EmptyTitle:   strings.TrimSpace(c.Title) == "",
		MeetingTimes: make([]MeetingTimeErrors, len(c.MeetingTimes)),
	}

	for i, m := range c.MeetingTimes {
		v.MeetingTimes[i] = MeetingTimeErrors{
			NoDaySelected:    !m.Days.Any(),
			TimeOrderInvalid: m.StartMinutes() >= m.EndMinutes(),
		}
	}

	return v
}
