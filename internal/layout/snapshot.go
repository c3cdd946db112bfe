package layout

import (
	"github.com/weekplan/weekplan-backend/internal/model"
)

// EventLayout pairs an expanded event with its resolved grid box and
// preformatted time label.
type EventLayout struct {
	model.ScheduleEvent
	Box       EventBox `json:"box"`
	TimeLabel string   `json:"timeLabel"`
}

// Snapshot is the fully derived layout of the current schedule: everything a
// rendering surface needs to paint the grid. It is recomputed from scratch on
// every relevant input change; nothing in here is cached or patched
// incrementally.
type Snapshot struct {
	Days       []string      `json:"days"`
	Axis       TimeAxis      `json:"axis"`
	SlotHeight float64       `json:"slotHeight"`
	GridHeight float64       `json:"gridHeight"`
	SlotLabels []string      `json:"slotLabels"`
	Events     []EventLayout `json:"events"`
}

// BuildSnapshot runs the full pipeline: expansion, time axis, slot-height
// resolution against the supplied content-height observations, and geometry
// mapping. Pure function of its inputs.
func BuildSnapshot(items []model.CourseItem, settings model.ScheduleSettings, heights map[string]float64) Snapshot {
	events := ExpandEvents(items)
	axis := BuildTimeAxis(events, settings.TimeIncrement)
	slotHeight := ResolveSlotHeight(events, heights, settings.TimeIncrement)

	labels := make([]string, len(axis.Slots))
	for i, slot := range axis.Slots {
		labels[i] = FormatClock(slot, settings.ClockType)
	}

	layouts := make([]EventLayout, len(events))
	for i, ev := range events {
		layouts[i] = EventLayout{
			ScheduleEvent: ev,
			Box:           MapGeometry(ev, axis, slotHeight, settings.TimeIncrement, settings.StartDay),
			TimeLabel:     FormatTimeRange(ev.StartTime, ev.EndTime, settings.ClockType),
		}
	}

	return Snapshot{
		Days:       OrderedDayNames(settings.StartDay),
		Axis:       axis,
		SlotHeight: slotHeight,
		GridHeight: GridHeight(axis, slotHeight),
		SlotLabels: labels,
		Events:     layouts,
	}
}
