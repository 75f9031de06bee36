package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// NormalizeDay strips the time-of-day from a timestamp, returning midnight UTC
// of the same calendar day. This is the grouping key for attendance cells:
// marks at 01:00 and 23:00 of the same day must collide.
func NormalizeDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfToday returns midnight UTC of the current day.
func StartOfToday() time.Time {
	return NormalizeDay(time.Now())
}

// ParseDuration parses a duration string, returning the default on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}
