package expr

import (
	"fmt"
	"strings"

	"github.com/tracelab/workspaces-go/filters"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
)

// ToSeconds converts an amount of minutes, hours or days to whole seconds.
// Units are matched case-insensitively, singular or plural.
func ToSeconds(amount float64, unit string) (int64, error) {
	switch strings.ToLower(unit) {
	case "minute", "minutes":
		return int64(amount * secondsPerMinute), nil
	case "hour", "hours":
		return int64(amount * secondsPerHour), nil
	case "day", "days":
		return int64(amount * secondsPerDay), nil
	default:
		return 0, fmt.Errorf("invalid time unit '%s', must be 'minutes', 'hours', or 'days'", unit)
	}
}

// ToHuman converts seconds to the most natural (amount, unit) pair: the
// largest unit that divides evenly, or a fractional amount in the unit that
// fits the magnitude. amount * unit always reconstructs the input exactly.
func ToHuman(seconds int64) (float64, string) {
	switch {
	case seconds%secondsPerDay == 0:
		return float64(seconds / secondsPerDay), "days"
	case seconds%secondsPerHour == 0:
		return float64(seconds / secondsPerHour), "hours"
	case seconds%secondsPerMinute == 0:
		return float64(seconds / secondsPerMinute), "minutes"
	case seconds < secondsPerHour:
		return float64(seconds) / secondsPerMinute, "minutes"
	case seconds < secondsPerDay:
		return float64(seconds) / secondsPerHour, "hours"
	default:
		return float64(seconds) / secondsPerDay, "days"
	}
}

// validateWithinLastField enforces that relative-time filters only apply to
// the run creation timestamp, by backend or frontend name.
func validateWithinLastField(key filters.Key) error {
	if key.Name == "createdAt" || ToFrontendName(key.Name) == "CreatedTimestamp" {
		return nil
	}
	return fmt.Errorf(
		"the 'within_last' operator is only available for CreatedTimestamp, cannot use with '%s'",
		ToFrontendName(key.Name))
}
