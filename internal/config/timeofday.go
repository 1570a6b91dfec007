package config

import (
	"fmt"
	"time"

	"filesentry/internal/errorwrapper"
)

const timeOfDayLayout = "15:04"

// TimeOfDay is a wall-clock time within a day, minute resolution.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an "HH:mm" value.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	t, err := time.Parse(timeOfDayLayout, value)
	if err != nil {
		return TimeOfDay{}, errorwrapper.NewValidationError("time_of_day", value, "expected HH:mm")
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// TimeOfDayOf extracts the time-of-day of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// MinuteOfDay returns the minute index within the day, 0..1439.
func (t TimeOfDay) MinuteOfDay() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
