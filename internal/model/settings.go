package model

// StartDay selects which weekday occupies the first grid column.
type StartDay string

const (
	StartDaySunday StartDay = "sunday"
	StartDayMonday StartDay = "monday"
)

// ClockType selects 12-hour or 24-hour time labels.
type ClockType string

const (
	Clock12Hour ClockType = "12h"
	Clock24Hour ClockType = "24h"
)

// TimeIncrement is the grid row granularity.
type TimeIncrement string

const (
	Increment30Min TimeIncrement = "30m"
	Increment1Hour TimeIncrement = "1h"
)

// Theme is the UI color theme. The PNG exporter treats "system" as light.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ScheduleSettings holds the four independent display options. Pure
// configuration; there are no cross-field invariants.
type ScheduleSettings struct {
	StartDay      StartDay      `json:"startDay" binding:"required,oneof=sunday monday"`
	ClockType     ClockType     `json:"clockType" binding:"required,oneof=12h 24h"`
	TimeIncrement TimeIncrement `json:"timeIncrement" binding:"required,oneof=30m 1h"`
	Theme         Theme         `json:"theme" binding:"required,oneof=light dark system"`
}

// DefaultSettings matches a fresh installation.
func DefaultSettings() ScheduleSettings {
	return ScheduleSettings{
		StartDay:      StartDaySunday,
		ClockType:     Clock24Hour,
		TimeIncrement: Increment30Min,
		Theme:         ThemeLight,
	}
}
