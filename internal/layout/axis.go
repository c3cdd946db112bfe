package layout

import (
	"math"

	"github.com/weekplan/weekplan-backend/internal/model"
)

const (
	// Default visible window when the schedule has no events.
	defaultMinTime = 8
	defaultMaxTime = 17

	// The grid always shows at least this many hours.
	minVisibleSpanHours = 8
)

// TimeAxis is the visible time range and the ordered slot boundaries of the
// grid. Slots are fractional hours: whole and half hours for the 30m
// increment, whole hours for 1h.
type TimeAxis struct {
	MinTime int       `json:"minTime"`
	MaxTime int       `json:"maxTime"`
	Slots   []float64 `json:"slots"`
}

// BuildTimeAxis derives the axis from the expanded events and the increment
// setting. With no events the window defaults to 08:00-17:00; otherwise it is
// the floor of the earliest start to the ceiling of the latest end, extended
// so that at least eight hours are visible.
func BuildTimeAxis(events []model.ScheduleEvent, increment model.TimeIncrement) TimeAxis {
	minTime := defaultMinTime
	maxTime := defaultMaxTime

	if len(events) > 0 {
		minTime = 24
		maxTime = 0
		for _, ev := range events {
			if s := int(math.Floor(ev.StartTime)); s < minTime {
				minTime = s
			}
			if e := int(math.Ceil(ev.EndTime)); e > maxTime {
				maxTime = e
			}
		}
	}

	if maxTime-minTime < minVisibleSpanHours {
		maxTime = minTime + minVisibleSpanHours
	}

	var slots []float64
	if increment == model.Increment30Min {
		for hour := minTime; hour <= maxTime; hour++ {
			slots = append(slots, float64(hour))
			if hour < maxTime {
				slots = append(slots, float64(hour)+0.5)
			}
		}
	} else {
		for hour := minTime; hour <= maxTime; hour++ {
			slots = append(slots, float64(hour))
		}
	}

	return TimeAxis{MinTime: minTime, MaxTime: maxTime, Slots: slots}
}
