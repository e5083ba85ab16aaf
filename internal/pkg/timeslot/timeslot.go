// Package timeslot holds the time interval and timezone primitives shared by
// the availability and table assignment engines. All conversions between a
// business's local wall-clock and absolute instants go through this package;
// nothing else in the codebase is allowed to construct a local-looking
// timestamp without an explicit IANA timezone.
package timeslot

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimezone     = errors.New("invalid IANA timezone")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime         = errors.New("invalid time, expected HH:MM")
	ErrNonexistentTime     = errors.New("time does not exist in this timezone on this date")
	ErrNonPositiveDuration = errors.New("duration must be greater than zero")
)

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
	// ClockLayout is the wire format for wall-clock times.
	ClockLayout = "15:04"
)

// Interval is a half-open time range [Start, End) over absolute instants.
type Interval struct {
	Start time.Time
	End   time.Time
}

// FromStartDuration builds the interval [start, start+minutes).
func FromStartDuration(start time.Time, minutes int) (Interval, error) {
	if minutes <= 0 {
		return Interval{}, ErrNonPositiveDuration
	}
	return Interval{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)}, nil
}

// Overlaps reports whether two half-open intervals intersect.
// Touching endpoints do not count: a booking that ends exactly when another
// starts is not a conflict. This is the single overlap predicate behind
// every conflict check in the system.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && iv.End.After(other.Start)
}

// Duration returns the interval length.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Clip returns the portion of iv that lies within bounds. The second return
// value is false when the two do not overlap at all.
func (iv Interval) Clip(bounds Interval) (Interval, bool) {
	if !iv.Overlaps(bounds) {
		return Interval{}, false
	}
	out := iv
	if out.Start.Before(bounds.Start) {
		out.Start = bounds.Start
	}
	if out.End.After(bounds.End) {
		out.End = bounds.End
	}
	return out, true
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// LoadZone resolves an IANA timezone name. There is deliberately no default:
// an empty or unknown name is an error, callers that want a fallback must
// apply it upstream.
func LoadZone(tz string) (*time.Location, error) {
	if tz == "" {
		return nil, ErrInvalidTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	return loc, nil
}

// LocalToInstant interprets dateStr + clockStr as a wall-clock time in the
// given timezone and returns the corresponding absolute instant in UTC.
//
// Wall-clock times skipped by a DST spring-forward transition (e.g. 02:30 on
// the night Europe/Madrid jumps from 02:00 to 03:00) are rejected with
// ErrNonexistentTime rather than silently normalized. Ambiguous times during
// a fall-back transition resolve to the side the Go runtime picks, which is
// deterministic for a given zone database.
func LocalToInstant(dateStr, clockStr, tz string) (time.Time, error) {
	loc, err := LoadZone(tz)
	if err != nil {
		return time.Time{}, err
	}

	year, month, day, err := parseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := parseClock(clockStr)
	if err != nil {
		return time.Time{}, err
	}

	t := time.Date(year, month, day, hour, minute, 0, 0, loc)

	// time.Date normalizes nonexistent wall-clock values; a round-trip
	// mismatch means the requested time fell into a DST gap.
	local := t.In(loc)
	if local.Hour() != hour || local.Minute() != minute ||
		local.Day() != day || local.Month() != month || local.Year() != year {
		return time.Time{}, fmt.Errorf("%w: %s %s in %s", ErrNonexistentTime, dateStr, clockStr, tz)
	}

	return t.UTC(), nil
}

// LocalClock projects an absolute instant back onto the wall clock of the
// given timezone, formatted as "HH:MM".
func LocalClock(instant time.Time, tz string) (string, error) {
	loc, err := LoadZone(tz)
	if err != nil {
		return "", err
	}
	return instant.In(loc).Format(ClockLayout), nil
}

// LocalDate projects an absolute instant onto the calendar date of the given
// timezone, formatted as "YYYY-MM-DD".
func LocalDate(instant time.Time, tz string) (string, error) {
	loc, err := LoadZone(tz)
	if err != nil {
		return "", err
	}
	return instant.In(loc).Format(DateLayout), nil
}

// Weekday returns the day of week of a calendar date as observed in the
// given timezone.
func Weekday(dateStr, tz string) (time.Weekday, error) {
	loc, err := LoadZone(tz)
	if err != nil {
		return 0, err
	}
	year, month, day, err := parseDate(dateStr)
	if err != nil {
		return 0, err
	}
	return time.Date(year, month, day, 12, 0, 0, 0, loc).Weekday(), nil
}

// DayBounds returns the local midnight-to-midnight window of the given date
// as a pair of absolute instants. Queries scoped to "that business day" must
// use these bounds so the window stays correct across the UTC date line.
func DayBounds(dateStr, tz string) (time.Time, time.Time, error) {
	loc, err := LoadZone(tz)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	year, month, day, err := parseDate(dateStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start.UTC(), end.UTC(), nil
}
