package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weekplan/weekplan-backend/internal/model"
)

func TestFormatClock_24Hour(t *testing.T) {
	assert.Equal(t, "09:00", FormatClock(9, model.Clock24Hour))
	assert.Equal(t, "09:30", FormatClock(9.5, model.Clock24Hour))
	assert.Equal(t, "14:45", FormatClock(14.75, model.Clock24Hour))
	assert.Equal(t, "00:00", FormatClock(0, model.Clock24Hour))
}

func TestFormatClock_12Hour(t *testing.T) {
	assert.Equal(t, "9:00AM", FormatClock(9, model.Clock12Hour))
	assert.Equal(t, "12:00AM", FormatClock(0, model.Clock12Hour))
	assert.Equal(t, "12:30PM", FormatClock(12.5, model.Clock12Hour))
	assert.Equal(t, "1:15PM", FormatClock(13.25, model.Clock12Hour))
	assert.Equal(t, "11:00PM", FormatClock(23, model.Clock12Hour))
}

func TestFormatTimeRange(t *testing.T) {
	assert.Equal(t, "09:00 - 10:30", FormatTimeRange(9, 10.5, model.Clock24Hour))
	assert.Equal(t, "9:00AM - 10:30AM", FormatTimeRange(9, 10.5, model.Clock12Hour))
}
