package utils

import (
	"fmt"
	"time"
)

// ParseDurationString parses config values like "30s" or "720h" into a duration.
func ParseDurationString(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return time.Duration(0), fmt.Errorf("cannot parse duration '%s': %s", value, err.Error())
	}
	return d, nil
}
