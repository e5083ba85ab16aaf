package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesaflow/booking-backend/internal/booking"
	"github.com/mesaflow/booking-backend/internal/pkg/timeslot"
)

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	instant, err := timeslot.LocalToInstant("2025-01-16", clock, "UTC")
	require.NoError(t, err)
	return instant
}

func bookingAt(t *testing.T, id, clock string, minutes int) *booking.Booking {
	t.Helper()
	return &booking.Booking{
		ID:              id,
		StartTime:       at(t, clock),
		DurationMinutes: minutes,
		Status:          booking.StatusConfirmed,
	}
}

func reqInterval(t *testing.T, clock string, minutes int) timeslot.Interval {
	t.Helper()
	iv, err := timeslot.FromStartDuration(at(t, clock), minutes)
	require.NoError(t, err)
	return iv
}

func TestCheckCapacityEmptyDay(t *testing.T) {
	res := CheckCapacity(reqInterval(t, "13:00", 60), 1, nil)
	require.True(t, res.Available)
	require.Zero(t, res.PeakConcurrency)
}

func TestCheckCapacityFullSlot(t *testing.T) {
	active := []*booking.Booking{
		bookingAt(t, "b1", "13:00", 60),
		bookingAt(t, "b2", "13:30", 60),
	}

	res := CheckCapacity(reqInterval(t, "13:30", 60), 2, active)
	require.False(t, res.Available)
	require.Equal(t, 2, res.PeakConcurrency)
	require.NotNil(t, res.Conflicting)
}

func TestCheckCapacityStaggeredBookingsFit(t *testing.T) {
	// Two existing bookings overlap the request but never each other, so
	// peak concurrency inside the request stays at 1.
	active := []*booking.Booking{
		bookingAt(t, "b1", "13:00", 60),
		bookingAt(t, "b2", "14:00", 60),
	}

	res := CheckCapacity(reqInterval(t, "13:30", 60), 2, active)
	require.True(t, res.Available)
	require.Equal(t, 1, res.PeakConcurrency)
}

func TestCheckCapacityTouchingBookingsDoNotConflict(t *testing.T) {
	active := []*booking.Booking{
		bookingAt(t, "b1", "12:00", 60),
		bookingAt(t, "b2", "14:00", 60),
	}

	// The request sits exactly between the two.
	res := CheckCapacity(reqInterval(t, "13:00", 60), 1, active)
	require.True(t, res.Available)
}

func TestCheckCapacityBoundary(t *testing.T) {
	active := []*booking.Booking{
		bookingAt(t, "b1", "13:00", 60),
	}

	// Capacity 1: the single existing booking fills the slot.
	res := CheckCapacity(reqInterval(t, "13:00", 60), 1, active)
	require.False(t, res.Available)

	// Capacity 2: one more fits exactly.
	res = CheckCapacity(reqInterval(t, "13:00", 60), 2, active)
	require.True(t, res.Available)
}

func TestCheckCapacityCancelledBookingFreesSlot(t *testing.T) {
	taken := bookingAt(t, "b1", "13:00", 60)
	req := reqInterval(t, "13:00", 60)

	// Capacity 1: the confirmed booking blocks the slot.
	res := CheckCapacity(req, 1, []*booking.Booking{taken})
	require.False(t, res.Available)

	// Cancelling it frees the same slot.
	taken.Status = booking.StatusCancelled
	res = CheckCapacity(req, 1, []*booking.Booking{taken})
	require.True(t, res.Available)
	require.Zero(t, res.PeakConcurrency)

	// No-shows release capacity too.
	taken.Status = booking.StatusNoShow
	res = CheckCapacity(req, 1, []*booking.Booking{taken})
	require.True(t, res.Available)
}

func TestCheckCapacityOutsideBookingsIgnored(t *testing.T) {
	active := []*booking.Booking{
		bookingAt(t, "b1", "09:00", 60),
		bookingAt(t, "b2", "18:00", 60),
	}

	res := CheckCapacity(reqInterval(t, "13:00", 60), 1, active)
	require.True(t, res.Available)
}

func TestCheckCapacityZeroCapacityTreatedAsOne(t *testing.T) {
	res := CheckCapacity(reqInterval(t, "13:00", 60), 0, nil)
	require.True(t, res.Available)
}
