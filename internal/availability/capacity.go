package availability

import (
	"sort"
	"time"

	"github.com/mesaflow/booking-backend/internal/booking"
	"github.com/mesaflow/booking-backend/internal/pkg/timeslot"
)

// CapacityResult is the outcome of a capacity check over one interval.
type CapacityResult struct {
	Available bool
	// PeakConcurrency is the highest number of existing active bookings
	// that overlap each other anywhere inside the requested interval.
	PeakConcurrency int
	// Conflicting is the first booking contributing to the peak, used for
	// conflict messaging. Nil when Available.
	Conflicting *booking.Booking
}

// CheckCapacity decides whether one more booking fits into the requested
// interval given a business-wide concurrent capacity. Cancelled and no-show
// bookings never consume capacity, regardless of how the caller built the
// list.
//
// The check is a sweep line over the endpoints of the existing active
// bookings, clipped to the requested interval: walking +1/-1 events in time
// order yields the peak concurrency inside the request. The request fits iff
// peak + 1 <= maxCapacity. Because intervals are half-open, an end event at
// instant t is processed before a start event at t, so back-to-back bookings
// never count as concurrent.
func CheckCapacity(req timeslot.Interval, maxCapacity int, active []*booking.Booking) CapacityResult {
	if maxCapacity < 1 {
		maxCapacity = 1
	}

	type event struct {
		at    time.Time
		delta int
		b     *booking.Booking
	}

	var events []event
	for _, b := range active {
		if !b.IsActive() {
			continue
		}
		clipped, ok := b.Interval().Clip(req)
		if !ok {
			continue
		}
		events = append(events, event{at: clipped.Start, delta: +1, b: b})
		events = append(events, event{at: clipped.End, delta: -1, b: b})
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].at.Equal(events[j].at) {
			return events[i].at.Before(events[j].at)
		}
		// Ends before starts at the same instant: half-open semantics.
		return events[i].delta < events[j].delta
	})

	current, peak := 0, 0
	var first *booking.Booking
	for _, ev := range events {
		current += ev.delta
		if current > peak {
			peak = current
			if first == nil {
				first = ev.b
			}
		}
	}

	res := CapacityResult{PeakConcurrency: peak}
	if peak+1 > maxCapacity {
		res.Conflicting = first
		return res
	}
	res.Available = true
	return res
}
