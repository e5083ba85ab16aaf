package timeslot

import (
	"errors"
	"testing"
	"time"
)

func mustInterval(t *testing.T, start string, minutes int) Interval {
	t.Helper()
	st, err := time.Parse(time.RFC3339, start)
	if err != nil {
		t.Fatalf("bad test time %q: %v", start, err)
	}
	iv, err := FromStartDuration(st, minutes)
	if err != nil {
		t.Fatalf("FromStartDuration: %v", err)
	}
	return iv
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "Identical intervals overlap",
			a:    mustInterval(t, "2026-05-01T14:00:00Z", 60),
			b:    mustInterval(t, "2026-05-01T14:00:00Z", 60),
			want: true,
		},
		{
			name: "Partial overlap",
			a:    mustInterval(t, "2026-05-01T14:00:00Z", 60),
			b:    mustInterval(t, "2026-05-01T14:30:00Z", 60),
			want: true,
		},
		{
			name: "Contained interval overlaps",
			a:    mustInterval(t, "2026-05-01T14:00:00Z", 120),
			b:    mustInterval(t, "2026-05-01T14:30:00Z", 30),
			want: true,
		},
		{
			name: "Touching intervals do not conflict",
			a:    mustInterval(t, "2026-05-01T10:00:00Z", 60),
			b:    mustInterval(t, "2026-05-01T11:00:00Z", 60),
			want: false,
		},
		{
			name: "Disjoint intervals",
			a:    mustInterval(t, "2026-05-01T10:00:00Z", 30),
			b:    mustInterval(t, "2026-05-01T12:00:00Z", 30),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps(a, b) = %v, want %v", got, tt.want)
			}
			// Symmetry must hold for every pair.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps(b, a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromStartDurationRejectsNonPositive(t *testing.T) {
	start := time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC)

	for _, minutes := range []int{0, -30} {
		if _, err := FromStartDuration(start, minutes); !errors.Is(err, ErrNonPositiveDuration) {
			t.Errorf("FromStartDuration(%d) error = %v, want ErrNonPositiveDuration", minutes, err)
		}
	}
}

func TestLocalToInstant(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		clock   string
		tz      string
		want    string // RFC3339 UTC
		wantErr error
	}{
		{
			name:  "Madrid winter time is UTC+1",
			date:  "2025-01-15",
			clock: "14:00",
			tz:    "Europe/Madrid",
			want:  "2025-01-15T13:00:00Z",
		},
		{
			name:  "Madrid summer time is UTC+2",
			date:  "2025-07-15",
			clock: "14:00",
			tz:    "Europe/Madrid",
			want:  "2025-07-15T12:00:00Z",
		},
		{
			name:  "UTC passthrough",
			date:  "2025-03-01",
			clock: "09:30",
			tz:    "UTC",
			want:  "2025-03-01T09:30:00Z",
		},
		{
			name:    "Spring-forward gap is rejected",
			date:    "2025-03-30",
			clock:   "02:30",
			tz:      "Europe/Madrid",
			wantErr: ErrNonexistentTime,
		},
		{
			name:    "Unknown timezone",
			date:    "2025-01-15",
			clock:   "14:00",
			tz:      "Mars/Olympus_Mons",
			wantErr: ErrInvalidTimezone,
		},
		{
			name:    "Empty timezone has no default",
			date:    "2025-01-15",
			clock:   "14:00",
			tz:      "",
			wantErr: ErrInvalidTimezone,
		},
		{
			name:    "Garbage date",
			date:    "15/01/2025",
			clock:   "14:00",
			tz:      "UTC",
			wantErr: ErrInvalidDate,
		},
		{
			name:    "Garbage time",
			date:    "2025-01-15",
			clock:   "25:99",
			tz:      "UTC",
			wantErr: ErrInvalidTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LocalToInstant(tt.date, tt.clock, tt.tz)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LocalToInstant() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LocalToInstant() unexpected error: %v", err)
			}
			want, _ := time.Parse(time.RFC3339, tt.want)
			if !got.Equal(want) {
				t.Errorf("LocalToInstant() = %s, want %s", got.Format(time.RFC3339), tt.want)
			}
		})
	}
}

func TestLocalClockRoundTrip(t *testing.T) {
	instant, err := LocalToInstant("2025-07-15", "14:00", "Europe/Madrid")
	if err != nil {
		t.Fatalf("LocalToInstant: %v", err)
	}

	clock, err := LocalClock(instant, "Europe/Madrid")
	if err != nil {
		t.Fatalf("LocalClock: %v", err)
	}
	if clock != "14:00" {
		t.Errorf("round trip clock = %q, want %q", clock, "14:00")
	}

	// The same instant reads differently from another zone.
	clockNY, err := LocalClock(instant, "America/New_York")
	if err != nil {
		t.Fatalf("LocalClock: %v", err)
	}
	if clockNY != "08:00" {
		t.Errorf("New York clock = %q, want %q", clockNY, "08:00")
	}
}

func TestDayBounds(t *testing.T) {
	// Local midnight in Madrid (winter, UTC+1) is 23:00 UTC the previous day.
	start, end, err := DayBounds("2025-01-15", "Europe/Madrid")
	if err != nil {
		t.Fatalf("DayBounds: %v", err)
	}

	wantStart, _ := time.Parse(time.RFC3339, "2025-01-14T23:00:00Z")
	wantEnd, _ := time.Parse(time.RFC3339, "2025-01-15T23:00:00Z")

	if !start.Equal(wantStart) {
		t.Errorf("day start = %s, want %s", start.Format(time.RFC3339), wantStart.Format(time.RFC3339))
	}
	if !end.Equal(wantEnd) {
		t.Errorf("day end = %s, want %s", end.Format(time.RFC3339), wantEnd.Format(time.RFC3339))
	}

	// A DST transition day is 23 hours long, the bounds must reflect that.
	start, end, err = DayBounds("2025-03-30", "Europe/Madrid")
	if err != nil {
		t.Fatalf("DayBounds: %v", err)
	}
	if got := end.Sub(start); got != 23*time.Hour {
		t.Errorf("spring-forward day length = %s, want 23h", got)
	}
}

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "9:05", want: "09:05"},
		{in: "09:05", want: "09:05"},
		{in: "09:05:30", want: "09:05"},
		{in: " 18:00 ", want: "18:00"},
		{in: "24:00", wantErr: true},
		{in: "12", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := NormalizeClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("NormalizeClock(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClipToBounds(t *testing.T) {
	bounds := mustInterval(t, "2026-05-01T14:00:00Z", 60)

	inside, ok := mustInterval(t, "2026-05-01T13:30:00Z", 120).Clip(bounds)
	if !ok {
		t.Fatal("expected overlap")
	}
	if !inside.Start.Equal(bounds.Start) || !inside.End.Equal(bounds.End) {
		t.Errorf("clip = %s, want %s", inside, bounds)
	}

	if _, ok := mustInterval(t, "2026-05-01T15:00:00Z", 30).Clip(bounds); ok {
		t.Error("touching interval must not clip to anything")
	}
}
