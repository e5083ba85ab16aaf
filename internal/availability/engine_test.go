package availability

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mesaflow/booking-backend/internal/booking"
	"github.com/mesaflow/booking-backend/internal/business"
	"github.com/mesaflow/booking-backend/internal/pkg/apperror"
	"github.com/mesaflow/booking-backend/internal/pkg/timeslot"
	"github.com/mesaflow/booking-backend/internal/schedule"
)

type fakeDir struct {
	biz *business.Business
}

func (f *fakeDir) GetByID(_ context.Context, id string) (*business.Business, error) {
	if f.biz == nil || f.biz.ID != id {
		return nil, business.ErrNotFound
	}
	return f.biz, nil
}

// fakeHours opens every day between opensAt and closesAt.
type fakeHours struct {
	opensAt  string
	closesAt string
}

func (f *fakeHours) ValidateInterval(_ context.Context, biz *business.Business, _ string, iv timeslot.Interval) (schedule.HoursCheck, error) {
	startClock, err := timeslot.LocalClock(iv.Start, biz.Timezone)
	if err != nil {
		return schedule.HoursCheck{}, err
	}
	endClock, err := timeslot.LocalClock(iv.End, biz.Timezone)
	if err != nil {
		return schedule.HoursCheck{}, err
	}
	startDate, err := timeslot.LocalDate(iv.Start, biz.Timezone)
	if err != nil {
		return schedule.HoursCheck{}, err
	}
	endDate, err := timeslot.LocalDate(iv.End, biz.Timezone)
	if err != nil {
		return schedule.HoursCheck{}, err
	}
	if endDate != startDate {
		if endClock != "00:00" {
			return schedule.HoursCheck{Reason: schedule.ReasonAfterClose, Message: "closes at " + f.closesAt}, nil
		}
		endClock = "24:00"
	}

	if startClock < f.opensAt {
		return schedule.HoursCheck{Reason: schedule.ReasonBeforeOpen, Message: "opens at " + f.opensAt}, nil
	}
	if endClock > f.closesAt {
		return schedule.HoursCheck{Reason: schedule.ReasonAfterClose, Message: "closes at " + f.closesAt}, nil
	}
	return schedule.HoursCheck{WithinHours: true}, nil
}

type fakeBookings struct {
	active []*booking.Booking
	err    error
	calls  int
}

func (f *fakeBookings) ListActiveForDay(_ context.Context, _ string, _, _ time.Time) ([]*booking.Booking, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.active, nil
}

func testBusiness(capacity int) *business.Business {
	return &business.Business{
		ID:          "biz-1",
		Name:        "La Terraza",
		Timezone:    "Europe/Madrid",
		Locale:      business.LocaleEnglish,
		MaxCapacity: capacity,
		IsActive:    true,
	}
}

func madridBooking(t *testing.T, id, clock string, minutes int) *booking.Booking {
	t.Helper()
	start, err := timeslot.LocalToInstant("2025-01-16", clock, "Europe/Madrid")
	require.NoError(t, err)
	return &booking.Booking{
		ID:              id,
		BusinessID:      "biz-1",
		StartTime:       start,
		DurationMinutes: minutes,
		Status:          booking.StatusConfirmed,
	}
}

func newTestEngine(biz *business.Business, bookings *fakeBookings) *Engine {
	return NewEngine(
		&fakeDir{biz: biz},
		&fakeHours{opensAt: "09:00", closesAt: "22:00"},
		bookings,
		zerolog.Nop(),
	)
}

func TestCheckAvailableSlot(t *testing.T) {
	engine := newTestEngine(testBusiness(2), &fakeBookings{})

	res, err := engine.Check(context.Background(), CheckRequest{
		BusinessID: "biz-1", Date: "2025-01-16", Time: "13:00", DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.True(t, res.Available)
	require.True(t, res.WithinBusinessHours)
	require.False(t, res.HasConflict)
	require.Empty(t, res.SuggestedTimes)
}

func TestCheckFullSlotSuggestsAlternatives(t *testing.T) {
	bookings := &fakeBookings{active: []*booking.Booking{
		madridBooking(t, "b1", "13:00", 60),
		madridBooking(t, "b2", "13:30", 60),
	}}
	engine := newTestEngine(testBusiness(2), bookings)

	res, err := engine.Check(context.Background(), CheckRequest{
		BusinessID: "biz-1", Date: "2025-01-16", Time: "13:30", DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.False(t, res.Available)
	require.True(t, res.HasConflict)
	require.True(t, res.WithinBusinessHours)
	require.NotEmpty(t, res.ConflictingBookingID)
	require.Contains(t, res.Message, "capacity 2")

	require.NotEmpty(t, res.SuggestedTimes)
	require.LessOrEqual(t, len(res.SuggestedTimes), 3)
	require.True(t, sort.StringsAreSorted(res.SuggestedTimes))
	// The earliest suggestion starts once the conflicting pair has ended.
	require.Equal(t, "14:30", res.SuggestedTimes[0])
}

func TestCheckOutsideHours(t *testing.T) {
	engine := newTestEngine(testBusiness(2), &fakeBookings{})

	res, err := engine.Check(context.Background(), CheckRequest{
		BusinessID: "biz-1", Date: "2025-01-16", Time: "22:00", DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.False(t, res.Available)
	require.False(t, res.WithinBusinessHours)
	require.False(t, res.HasConflict)
	require.NotEmpty(t, res.Message)
}

func TestCheckValidatesBeforeIO(t *testing.T) {
	bookings := &fakeBookings{}
	engine := newTestEngine(testBusiness(2), bookings)

	for _, req := range []CheckRequest{
		{BusinessID: "biz-1", Date: "16-01-2025", Time: "13:00", DurationMinutes: 60},
		{BusinessID: "biz-1", Date: "2025-01-16", Time: "1pm", DurationMinutes: 60},
		{BusinessID: "biz-1", Date: "2025-01-16", Time: "13:00", DurationMinutes: 0},
	} {
		_, err := engine.Check(context.Background(), req)
		require.Error(t, err)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, 400, appErr.Code)
	}
	require.Zero(t, bookings.calls)
}

func TestCheckRejectsNonexistentLocalTime(t *testing.T) {
	// Europe/Madrid skips 02:00-03:00 on 2025-03-30.
	engine := newTestEngine(testBusiness(2), &fakeBookings{})

	_, err := engine.Check(context.Background(), CheckRequest{
		BusinessID: "biz-1", Date: "2025-03-30", Time: "02:30", DurationMinutes: 60,
	})
	require.ErrorIs(t, errors.Unwrap(err), timeslot.ErrNonexistentTime)
}

func TestCheckStoreFailureSurfacesDependencyError(t *testing.T) {
	bookings := &fakeBookings{err: errors.New("connection refused")}
	engine := newTestEngine(testBusiness(2), bookings)

	_, err := engine.Check(context.Background(), CheckRequest{
		BusinessID: "biz-1", Date: "2025-01-16", Time: "13:00", DurationMinutes: 60,
	})
	require.ErrorIs(t, err, ErrDependency)
}

func TestCheckIsIdempotent(t *testing.T) {
	bookings := &fakeBookings{active: []*booking.Booking{
		madridBooking(t, "b1", "13:00", 60),
	}}
	engine := newTestEngine(testBusiness(1), bookings)

	req := CheckRequest{BusinessID: "biz-1", Date: "2025-01-16", Time: "13:00", DurationMinutes: 60}

	first, err := engine.Check(context.Background(), req)
	require.NoError(t, err)
	second, err := engine.Check(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestFindNextSlotsSkipsBusyAndStopsAtClose(t *testing.T) {
	bookings := &fakeBookings{active: []*booking.Booking{
		madridBooking(t, "b1", "14:30", 60),
	}}
	engine := newTestEngine(testBusiness(1), bookings)

	after, err := timeslot.LocalToInstant("2025-01-16", "14:00", "Europe/Madrid")
	require.NoError(t, err)

	slots, err := engine.FindNextSlots(context.Background(), "biz-1", after, 60, 3)
	require.NoError(t, err)

	// 14:00 overlaps the 14:30 booking, 14:30 and 15:00 do too; the first
	// free starts are 15:30 onward.
	require.Equal(t, []string{"15:30", "16:00", "16:30"}, slots)
}

func TestFindNextSlotsAlignToLocalClock(t *testing.T) {
	// Kathmandu is UTC+05:45: aligning candidates in UTC would put every
	// suggestion on local :15/:45.
	biz := testBusiness(1)
	biz.Timezone = "Asia/Kathmandu"
	engine := newTestEngine(biz, &fakeBookings{})

	after, err := timeslot.LocalToInstant("2025-01-16", "13:10", "Asia/Kathmandu")
	require.NoError(t, err)

	slots, err := engine.FindNextSlots(context.Background(), "biz-1", after, 60, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"13:30", "14:00"}, slots)
}

func TestFindNextSlotsNeverCrossesMidnight(t *testing.T) {
	engine := NewEngine(
		&fakeDir{biz: testBusiness(1)},
		&fakeHours{opensAt: "09:00", closesAt: "24:00"},
		&fakeBookings{},
		zerolog.Nop(),
	)

	after, err := timeslot.LocalToInstant("2025-01-16", "23:00", "Europe/Madrid")
	require.NoError(t, err)

	slots, err := engine.FindNextSlots(context.Background(), "biz-1", after, 60, 5)
	require.NoError(t, err)

	// Only 23:00 fits before local midnight.
	require.Equal(t, []string{"23:00"}, slots)
}
