package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weekplan/weekplan-backend/internal/model"
)

func TestMapGeometry_Vertical30Min(t *testing.T) {
	axis := TimeAxis{MinTime: 9, MaxTime: 17}
	ev := model.ScheduleEvent{Day: 1, StartTime: 10.5, EndTime: 12}

	box := MapGeometry(ev, axis, 60, model.Increment30Min, model.StartDaySunday)

	// 1.5h past the window start = 3 half-hour slots down.
	assert.Equal(t, 180.0, box.Top)
	assert.Equal(t, 180.0, box.Height)
}

func TestMapGeometry_Vertical1Hour(t *testing.T) {
	axis := TimeAxis{MinTime: 8, MaxTime: 16}
	ev := model.ScheduleEvent{Day: 2, StartTime: 9.5, EndTime: 11}

	box := MapGeometry(ev, axis, 60, model.Increment1Hour, model.StartDaySunday)

	assert.Equal(t, 90.0, box.Top)
	assert.Equal(t, 90.0, box.Height)
}

func TestMapGeometry_SubHalfHourStart(t *testing.T) {
	// 09:15 is not on a half-hour boundary; the slot index + offset split must
	// still land on the same pixel.
	axis := TimeAxis{MinTime: 9, MaxTime: 17}
	ev := model.ScheduleEvent{Day: 4, StartTime: 9.25, EndTime: 10.25}

	box := MapGeometry(ev, axis, 60, model.Increment30Min, model.StartDaySunday)

	assert.InDelta(t, 30.0, box.Top, 1e-9)
	assert.InDelta(t, 120.0, box.Height, 1e-9)
}

func TestMapGeometry_HorizontalColumns(t *testing.T) {
	axis := TimeAxis{MinTime: 8, MaxTime: 16}
	ev := model.ScheduleEvent{Day: 0, StartTime: 9, EndTime: 10}

	box := MapGeometry(ev, axis, 60, model.Increment1Hour, model.StartDaySunday)

	// Column 0 holds the time labels; Sunday lands in column 1 of 8.
	assert.Equal(t, 12.5, box.LeftPercent)
	assert.Equal(t, 12.5, box.WidthPercent)
	assert.Equal(t, EventGutterPx, box.GutterPx)
}

func TestMapGeometry_MondayStartRemapsSundayToLastColumn(t *testing.T) {
	axis := TimeAxis{MinTime: 8, MaxTime: 16}
	ev := model.ScheduleEvent{Day: 0, StartTime: 9, EndTime: 10}

	box := MapGeometry(ev, axis, 60, model.Increment1Hour, model.StartDayMonday)

	// Sunday moves to display column 6, i.e. grid column 7 of 8.
	assert.Equal(t, 7*12.5, box.LeftPercent)
}

func TestMapGeometry_Pure(t *testing.T) {
	axis := TimeAxis{MinTime: 9, MaxTime: 17}
	ev := model.ScheduleEvent{Day: 3, StartTime: 13, EndTime: 14.5}

	first := MapGeometry(ev, axis, 72, model.Increment30Min, model.StartDayMonday)
	second := MapGeometry(ev, axis, 72, model.Increment30Min, model.StartDayMonday)

	assert.Equal(t, first, second)
}

func TestAdjustedDayIndex(t *testing.T) {
	for day := 0; day < 7; day++ {
		assert.Equal(t, day, AdjustedDayIndex(day, model.StartDaySunday))
	}

	assert.Equal(t, 6, AdjustedDayIndex(0, model.StartDayMonday)) // Sunday
	assert.Equal(t, 0, AdjustedDayIndex(1, model.StartDayMonday)) // Monday
	assert.Equal(t, 5, AdjustedDayIndex(6, model.StartDayMonday)) // Saturday
}

func TestOrderedDayNames(t *testing.T) {
	assert.Equal(t,
		[]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		OrderedDayNames(model.StartDaySunday))
	assert.Equal(t,
		[]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
		OrderedDayNames(model.StartDayMonday))
}

func TestGridHeight(t *testing.T) {
	axis := TimeAxis{Slots: []float64{9, 9.5, 10, 10.5, 11}}
	assert.Equal(t, 300.0, GridHeight(axis, 60))
}
