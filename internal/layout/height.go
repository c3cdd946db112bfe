package layout

import (
	"math"

	"github.com/weekplan/weekplan-backend/internal/model"
)

// BaselineSlotHeight is the slot height used for the initial layout, before
// any content measurements have been observed.
const BaselineSlotHeight = 60.0

// DurationInSlots returns how many grid rows an event spans.
func DurationInSlots(ev model.ScheduleEvent, increment model.TimeIncrement) float64 {
	slotsPerHour := 1.0
	if increment == model.Increment30Min {
		slotsPerHour = 2.0
	}
	return (ev.EndTime - ev.StartTime) * slotsPerHour
}

// ResolveSlotHeight reconciles measured content heights against the uniform
// grid: the resolved height is the maximum per-slot height required by any
// measured event, floored at the baseline. Events without a measurement, or
// with a zero one, do not participate. One tall outlier therefore heightens
// every row; that is deliberate, the grid has a single global timeline.
//
// Re-running with a superset of measurements never yields a smaller height, so
// late or duplicate observations are safe.
func ResolveSlotHeight(events []model.ScheduleEvent, heights map[string]float64, increment model.TimeIncrement) float64 {
	resolved := BaselineSlotHeight

	for _, ev := range events {
		contentHeight := heights[ev.ID]
		if contentHeight <= 0 {
			continue
		}
		slots := DurationInSlots(ev, increment)
		if slots <= 0 {
			continue
		}
		required := math.Ceil(contentHeight / slots)
		if required > resolved {
			resolved = required
		}
	}

	return resolved
}
