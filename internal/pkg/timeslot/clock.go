package timeslot

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NormalizeClock reduces a wall-clock string to canonical "HH:MM" form.
// Accepts "9:05", "09:05" and "09:05:30" (seconds are dropped, not rounded),
// so comparisons never trip over seconds-precision mismatches between
// configured hours and computed times.
func NormalizeClock(s string) (string, error) {
	hour, minute, err := parseClock(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// parseClock parses "H:MM", "HH:MM" or "HH:MM:SS" into hour and minute.
func parseClock(s string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	return hour, minute, nil
}

// parseDate parses a "YYYY-MM-DD" string into its calendar components.
func parseDate(s string) (int, time.Month, int, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	year, month, day := t.Date()
	return year, month, day, nil
}
