package layout

import (
	"fmt"
	"math"

	"github.com/weekplan/weekplan-backend/internal/model"
)

// FormatClock renders a fractional hour as a time label in the configured
// clock style: "09:30" for 24h, "9:30AM" for 12h.
func FormatClock(t float64, clock model.ClockType) string {
	hour := int(math.Floor(t))
	minute := int(math.Round((t - math.Floor(t)) * 60))

	if clock == model.Clock12Hour {
		period := "AM"
		if hour >= 12 {
			period = "PM"
		}
		hour12 := hour
		switch {
		case hour == 0:
			hour12 = 12
		case hour > 12:
			hour12 = hour - 12
		}
		return fmt.Sprintf("%d:%02d%s", hour12, minute, period)
	}

	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// FormatTimeRange renders "start - end" in the configured clock style.
func FormatTimeRange(start, end float64, clock model.ClockType) string {
	return FormatClock(start, clock) + " - " + FormatClock(end, clock)
}
