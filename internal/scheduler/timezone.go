package scheduler

import (
	"fmt"
	"time"
)

// DefaultTimezone is used when no timezone is configured
const DefaultTimezone = "UTC"

// loadLocation returns the named timezone or UTC
func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}

	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", name, err)
	}

	return location, nil
}
