package ui

import (
	"fmt"
	"strings"
	"time"

	internalage "github.com/amonks/solidtodo/internal/age"
)

// FormatTimeAgo returns a compact age string like "2m ago".
func FormatTimeAgo(then time.Time, now time.Time) string {
	duration, ok := internalage.AgeData(then, now)
	if !ok {
		return "-"
	}
	return FormatDurationShort(duration) + " ago"
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	duration = duration.Truncate(time.Second)
	seconds := int64(duration.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	return fmt.Sprintf("%dd", days)
}

// FormatDurationLong spells a duration out in days, hours, minutes and
// seconds, skipping zero units: "1 day 3 minutes".
func FormatDurationLong(duration time.Duration) string {
	if duration < time.Second {
		return "0 seconds"
	}

	seconds := int64(duration.Truncate(time.Second).Seconds())
	units := []struct {
		name string
		size int64
	}{
		{"day", 24 * 60 * 60},
		{"hour", 60 * 60},
		{"minute", 60},
		{"second", 1},
	}

	parts := make([]string, 0, len(units))
	for _, unit := range units {
		count := seconds / unit.size
		seconds %= unit.size
		if count == 0 {
			continue
		}
		name := unit.name
		if count != 1 {
			name += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", count, name))
	}
	return strings.Join(parts, " ")
}
