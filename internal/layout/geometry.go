package layout

import (
	"math"

	"github.com/weekplan/weekplan-backend/internal/model"
)

// The grid has eight columns: one time-label column plus seven day columns.
const GridColumns = 8

// ColumnWidthPercent is the width of one grid column as a percentage of the
// grid width.
const ColumnWidthPercent = 100.0 / GridColumns

// EventGutterPx is the horizontal inset of an event box inside its day
// column, in pixels on either side.
const EventGutterPx = 2.0

// EventBox is the absolute position of one event within the grid. Vertical
// coordinates are pixels; horizontal ones are a percentage of the grid width
// with a fixed pixel gutter (left edge shifts right by GutterPx, width
// shrinks by twice that), mirroring a CSS calc(percent + px) pair.
type EventBox struct {
	Top          float64 `json:"top"`
	Height       float64 `json:"height"`
	LeftPercent  float64 `json:"leftPercent"`
	WidthPercent float64 `json:"widthPercent"`
	GutterPx     float64 `json:"gutterPx"`
}

// AdjustedDayIndex remaps a Sunday-based day index into its display column
// for the given week start. Monday-start weeks shift Sunday to the last
// column.
func AdjustedDayIndex(day int, startDay model.StartDay) int {
	if startDay == model.StartDayMonday {
		return (day + 6) % 7
	}
	return day
}

// MapGeometry converts one event plus the resolved slot height and time axis
// into absolute grid coordinates. Pure: identical inputs always produce the
// identical box.
//
// For the 30m increment the vertical position is computed via explicit slot
// index + intra-slot offset rather than the algebraically equal
// startOffset*2*slotHeight, keeping the snap-to-grid step explicit should a
// sub-half-hour start ever reach the mapper. Validated data never contains
// one, but the formula tolerates it.
func MapGeometry(ev model.ScheduleEvent, axis TimeAxis, slotHeight float64, increment model.TimeIncrement, startDay model.StartDay) EventBox {
	startOffset := ev.StartTime - float64(axis.MinTime)

	var top, height float64
	if increment == model.Increment30Min {
		slotIndex := math.Floor(startOffset * 2)
		slotOffset := startOffset*2 - slotIndex
		top = slotIndex*slotHeight + slotOffset*slotHeight
		height = (ev.EndTime - ev.StartTime) * slotHeight * 2
	} else {
		top = startOffset * slotHeight
		height = (ev.EndTime - ev.StartTime) * slotHeight
	}

	col := AdjustedDayIndex(ev.Day, startDay)

	return EventBox{
		Top:          top,
		Height:       height,
		LeftPercent:  float64(col+1) * ColumnWidthPercent,
		WidthPercent: ColumnWidthPercent,
		GutterPx:     EventGutterPx,
	}
}

// GridHeight is the total pixel height of the grid body.
func GridHeight(axis TimeAxis, slotHeight float64) float64 {
	return float64(len(axis.Slots)) * slotHeight
}

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// OrderedDayNames returns the seven day-column headers in display order for
// the given week start.
func OrderedDayNames(startDay model.StartDay) []string {
	names := make([]string, 7)
	for day, name := range weekdayNames {
		names[AdjustedDayIndex(day, startDay)] = name
	}
	return names
}
