package model

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Weekday indices are fixed Sunday=0 .. Saturday=6 everywhere in the layout
// engine, regardless of the user's start-day setting. Column remapping for
// monday-start weeks happens only in the geometry mapper.

// WeekdaySet holds the seven independent weekday flags of a meeting time.
type WeekdaySet struct {
	Sunday    bool `json:"sunday"`
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
}

// Flags returns the flags in fixed Sunday=0..Saturday=6 order.
func (w WeekdaySet) Flags() [7]bool {
	return [7]bool{w.Sunday, w.Monday, w.Tuesday, w.Wednesday, w.Thursday, w.Friday, w.Saturday}
}

// Any reports whether at least one weekday is selected.
func (w WeekdaySet) Any() bool {
	for _, f := range w.Flags() {
		if f {
			return true
		}
	}
	return false
}

// MeetingTime is one time-range + weekday-set + logistics combination
// belonging to a course item. Hours and minutes are stored separately; the
// start-before-end invariant is enforced at save time, not structurally, so
// the store can hold transiently invalid states while a draft is being edited.
type MeetingTime struct {
	UID         string     `json:"uid"`
	CourseType  string     `json:"courseType"`
	Instructor  string     `json:"instructor"`
	Location    string     `json:"location"`
	StartHour   int        `json:"startHour" binding:"min=0,max=23"`
	EndHour     int        `json:"endHour" binding:"min=0,max=23"`
	StartMinute int        `json:"startMinute" binding:"min=0,max=59"`
	EndMinute   int        `json:"endMinute" binding:"min=0,max=59"`
	Days        WeekdaySet `json:"days"`
}

// StartMinutes returns the start encoded as minutes since midnight.
func (m MeetingTime) StartMinutes() int {
	return m.StartHour*60 + m.StartMinute
}

// EndMinutes returns the end encoded as minutes since midnight.
func (m MeetingTime) EndMinutes() int {
	return m.EndHour*60 + m.EndMinute
}

// CourseItem is a recurring weekly entry with one or more meeting times.
type CourseItem struct {
	UID             string        `json:"uid"`
	Type            string        `json:"type"`
	Title           string        `json:"title"`
	MeetingTimes    []MeetingTime `json:"meetingTimes" binding:"dive"`
	BackgroundColor string        `json:"backgroundColor" binding:"omitempty,hexcolor"`
}

// DeepCopy returns an independent copy of the course. Draft editing operates
// on copies only; the store's slice is never shared with a caller.
func (c CourseItem) DeepCopy() CourseItem {
	cp := c
	cp.MeetingTimes = make([]MeetingTime, len(c.MeetingTimes))
	copy(cp.MeetingTimes, c.MeetingTimes)
	return cp
}

// Schedule is the titled course list.
type Schedule struct {
	Title string       `json:"title"`
	Items []CourseItem `json:"items"`
}

// ScheduleData wraps a schedule with its last-saved timestamp. LastSaved is
// stamped on every mutating store operation and on import.
type ScheduleData struct {
	LastSaved *time.Time `json:"lastSaved,omitempty"`
	Schedule  Schedule   `json:"schedule"`
}

// DeepCopy returns a fully independent copy of the schedule data.
func (d ScheduleData) DeepCopy() ScheduleData {
	cp := d
	if d.LastSaved != nil {
		t := *d.LastSaved
		cp.LastSaved = &t
	}
	cp.Schedule.Items = make([]CourseItem, len(d.Schedule.Items))
	for i, item := range d.Schedule.Items {
		cp.Schedule.Items[i] = item.DeepCopy()
	}
	return cp
}

// DefaultScheduleData is the empty schedule a fresh installation starts with.
func DefaultScheduleData() ScheduleData {
	return ScheduleData{
		Schedule: Schedule{
			Title: "My Schedule",
			Items: []CourseItem{},
		},
	}
}

// ScheduleEvent is a single-day occurrence derived by expanding a meeting
// time's active weekdays. Events are ephemeral: never persisted, rebuilt from
// the course list on every schedule change. Start and end are fractional
// hours (hour + minute/60) to support sub-hour granularity.
type ScheduleEvent struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Location        string  `json:"location"`
	CourseType      string  `json:"courseType"`
	Instructor      string  `json:"instructor"`
	Day             int     `json:"day"`
	StartTime       float64 `json:"startTime"`
	EndTime         float64 `json:"endTime"`
	BackgroundColor string  `json:"backgroundColor"`
}

// CoursePalette is the fixed set of background colors new courses pick from.
var CoursePalette = []string{
	"#FFE37D", // yellow
	"#C8F7C5", // green
	"#E08283", // red
	"#99CCCC", // blue
	"#CC99CC", // purple
	"#FFCC99", // orange
	"#99CCFF", // light blue
}

// RandomCourseColor picks a palette color for a newly created course.
func RandomCourseColor() string {
	return CoursePalette[rand.Intn(len(CoursePalette))]
}

// NewDefaultMeetingTime returns the meeting time a new course starts with:
// 09:00-10:00 with no days selected yet.
func NewDefaultMeetingTime() MeetingTime {
	return MeetingTime{
		UID:         uuid.New().String(),
		StartHour:   9,
		StartMinute: 0,
		EndHour:     10,
		EndMinute:   0,
	}
}

// NewCourseItem creates a fresh course draft: new uid, random palette color
// and a single default meeting time.
func NewCourseItem() CourseItem {
	return CourseItem{
		UID:             uuid.New().String(),
		Type:            "Course",
		BackgroundColor: RandomCourseColor(),
		MeetingTimes:    []MeetingTime{NewDefaultMeetingTime()},
	}
}
