package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weekplan/weekplan-backend/internal/model"
)

func TestBuildSnapshot_FullPipeline(t *testing.T) {
	items := []model.CourseItem{
		course("c1", "Algorithms", "#99CCFF",
			meeting("m1", 9, 0, 10, 30, model.WeekdaySet{Monday: true, Wednesday: true})),
	}
	settings := model.ScheduleSettings{
		StartDay:      model.StartDaySunday,
		ClockType:     model.Clock24Hour,
		TimeIncrement: model.Increment30Min,
		Theme:         model.ThemeLight,
	}

	snap := BuildSnapshot(items, settings, nil)

	require.Len(t, snap.Events, 2)
	assert.Equal(t, 9, snap.Axis.MinTime)
	assert.Equal(t, 17, snap.Axis.MaxTime)
	assert.Equal(t, BaselineSlotHeight, snap.SlotHeight)
	assert.Equal(t, float64(len(snap.Axis.Slots))*BaselineSlotHeight, snap.GridHeight)

	require.Len(t, snap.SlotLabels, len(snap.Axis.Slots))
	assert.Equal(t, "09:00", snap.SlotLabels[0])
	assert.Equal(t, "09:30", snap.SlotLabels[1])

	monday := snap.Events[0]
	assert.Equal(t, "c1-m1-1", monday.ID)
	assert.Equal(t, "09:00 - 10:30", monday.TimeLabel)
	assert.Equal(t, 0.0, monday.Box.Top)
	assert.Equal(t, 180.0, monday.Box.Height)
	assert.Equal(t, 2*12.5, monday.Box.LeftPercent)
}

func TestBuildSnapshot_MeasurementsRaiseSlotHeight(t *testing.T) {
	items := []model.CourseItem{
		course("c1", "Algorithms", "#99CCFF",
			meeting("m1", 9, 0, 10, 30, model.WeekdaySet{Monday: true})),
	}
	settings := model.ScheduleSettings{
		StartDay:      model.StartDaySunday,
		ClockType:     model.Clock24Hour,
		TimeIncrement: model.Increment30Min,
	}

	base := BuildSnapshot(items, settings, nil)
	measured := BuildSnapshot(items, settings, map[string]float64{"c1-m1-1": 300})

	assert.Equal(t, 100.0, measured.SlotHeight)
	assert.Greater(t, measured.GridHeight, base.GridHeight)
	assert.Greater(t, measured.Events[0].Box.Height, base.Events[0].Box.Height)
}

func TestBuildSnapshot_EmptySchedule(t *testing.T) {
	settings := model.DefaultSettings()

	snap := BuildSnapshot(nil, settings, nil)

	assert.Empty(t, snap.Events)
	assert.Equal(t, 8, snap.Axis.MinTime)
	assert.Equal(t, 17, snap.Axis.MaxTime)
	assert.Equal(t, []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}, snap.Days)
}

func TestBuildSnapshot_MondayStartOrdersDays(t *testing.T) {
	settings := model.DefaultSettings()
	settings.StartDay = model.StartDayMonday
	settings.ClockType = model.Clock12Hour

	snap := BuildSnapshot(nil, settings, nil)

	assert.Equal(t, "Monday", snap.Days[0])
	assert.Equal(t, "Sunday", snap.Days[6])
	assert.Equal(t, "8:00AM", snap.SlotLabels[0])
}
