package runner

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// ParseDate accepts RFC 3339 timestamps or plain days in loc.
// A plain day is the start of that day, or its last second when endOfDay is set.
func ParseDate(value string, endOfDay bool, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	day, err := time.ParseInLocation(dayLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is neither YYYY-MM-DD nor RFC 3339", ErrInvalidRequest, value)
	}
	if endOfDay {
		return day.Add(24*time.Hour - time.Second), nil
	}
	return day, nil
}

// Window returns the span of the last days days ending at now, in loc
func Window(now time.Time, days int, loc *time.Location) (time.Time, time.Time) {
	end := now.In(loc)
	return end.AddDate(0, 0, -days), end
}
