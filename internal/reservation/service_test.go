package reservation

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mesaflow/booking-backend/internal/assignment"
	"github.com/mesaflow/booking-backend/internal/availability"
	"github.com/mesaflow/booking-backend/internal/booking"
	"github.com/mesaflow/booking-backend/internal/business"
	"github.com/mesaflow/booking-backend/internal/customer"
)

type fakeBusinesses struct{ biz *business.Business }

func (f *fakeBusinesses) GetByID(_ context.Context, _ string) (*business.Business, error) {
	return f.biz, nil
}

type fakeCustomers struct{ cust *customer.Customer }

func (f *fakeCustomers) GetByID(_ context.Context, _ string) (*customer.Customer, error) {
	return f.cust, nil
}

type fakeChecker struct {
	result *availability.Result
	calls  int
}

func (f *fakeChecker) Check(_ context.Context, _ availability.CheckRequest) (*availability.Result, error) {
	f.calls++
	return f.result, nil
}

type fakeAssigner struct {
	result assignment.Result
}

func (f *fakeAssigner) FindBestTable(_ context.Context, _ assignment.Request) assignment.Result {
	return f.result
}

type fakeStore struct {
	created     []*booking.Booking
	failWith    error
	failures    int // fail the first N attempts with failWith
	maxCapacity int
}

func (f *fakeStore) CreateGuarded(_ context.Context, b *booking.Booking, maxCapacity int, _ string) error {
	f.maxCapacity = maxCapacity
	if f.failures > 0 {
		f.failures--
		return f.failWith
	}
	b.ID = "bk-1"
	f.created = append(f.created, b)
	return nil
}

func (f *fakeStore) GetByCode(_ context.Context, code string) (*booking.Booking, error) {
	for _, b := range f.created {
		if b.ConfirmationCode == code {
			return b, nil
		}
	}
	return nil, booking.ErrNotFound
}

func (f *fakeStore) UpdateStatus(_ context.Context, id, status string) error {
	for _, b := range f.created {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return booking.ErrNotFound
}

type fakeNotifier struct {
	confirmed []*booking.Booking
	cancelled []*booking.Booking
}

func (f *fakeNotifier) BookingConfirmed(_ context.Context, _ *business.Business, _ *customer.Customer, b *booking.Booking) {
	f.confirmed = append(f.confirmed, b)
}

func (f *fakeNotifier) BookingCancelled(_ context.Context, _ *business.Business, _ *customer.Customer, b *booking.Booking) {
	f.cancelled = append(f.cancelled, b)
}

func strPtr(s string) *string { return &s }

func fixtures() (*fakeBusinesses, *fakeCustomers) {
	biz := &business.Business{
		ID: "biz-1", Name: "La Terraza", Timezone: "Europe/Madrid",
		Locale: business.LocaleEnglish, MaxCapacity: 2, IsActive: true,
	}
	cust := &customer.Customer{
		ID: "cust-1", BusinessID: "biz-1", Name: "Ana", Email: strPtr("ana@example.com"),
	}
	return &fakeBusinesses{biz: biz}, &fakeCustomers{cust: cust}
}

func availableResult() *availability.Result {
	return &availability.Result{Available: true, WithinBusinessHours: true, Message: "Slot available"}
}

func assignedTo(tableID string) assignment.Result {
	return assignment.Result{Success: true, TableID: &tableID, Reason: "Table assigned"}
}

func createReq() CreateRequest {
	return CreateRequest{
		BusinessID: "biz-1", CustomerID: "cust-1",
		Date: "2025-01-16", Time: "13:00",
		PartySize: 4, DurationMinutes: 90,
	}
}

func TestCreateHappyPath(t *testing.T) {
	businesses, customers := fixtures()
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	svc := NewService(businesses, customers,
		&fakeChecker{result: availableResult()},
		&fakeAssigner{result: assignedTo("t1")},
		store, notifier, zerolog.Nop())

	outcome, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	require.True(t, outcome.Created)
	require.NotNil(t, outcome.Booking)

	b := outcome.Booking
	require.Equal(t, booking.StatusConfirmed, b.Status)
	require.Equal(t, "t1", *b.TableID)
	require.True(t, strings.HasPrefix(b.ConfirmationCode, "RES-"))
	require.Equal(t, 2, store.maxCapacity)

	// Notification fired once for the created booking.
	require.Len(t, notifier.confirmed, 1)
	require.Equal(t, b.ID, notifier.confirmed[0].ID)

	// The booking is retrievable by its code.
	got, err := svc.GetByCode(context.Background(), b.ConfirmationCode)
	require.NoError(t, err)
	require.Equal(t, b.ID, got.ID)
}

func TestCreateRejectsUnavailableSlot(t *testing.T) {
	businesses, customers := fixtures()
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	svc := NewService(businesses, customers,
		&fakeChecker{result: &availability.Result{
			Available: false, HasConflict: true, WithinBusinessHours: true,
			Message: "Slot full", SuggestedTimes: []string{"15:00", "15:30"},
		}},
		&fakeAssigner{}, store, notifier, zerolog.Nop())

	outcome, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	require.False(t, outcome.Created)
	require.Equal(t, "Slot full", outcome.Message)
	require.Equal(t, []string{"15:00", "15:30"}, outcome.SuggestedTimes)
	require.Empty(t, store.created)
	require.Empty(t, notifier.confirmed)
}

func TestCreateProceedsWhenAssignmentFails(t *testing.T) {
	businesses, customers := fixtures()
	store := &fakeStore{}
	svc := NewService(businesses, customers,
		&fakeChecker{result: availableResult()},
		&fakeAssigner{result: assignment.Result{Success: false, Reason: "No tables available"}},
		store, &fakeNotifier{}, zerolog.Nop())

	outcome, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	require.True(t, outcome.Created)
	require.Nil(t, outcome.Booking.TableID)
	require.Nil(t, outcome.Booking.CombinationID)
}

func TestCreateMapsSlotFullRaceToConflictOutcome(t *testing.T) {
	businesses, customers := fixtures()
	// Read path says available, write path loses the race.
	store := &fakeStore{failWith: booking.ErrSlotFull, failures: 1}
	notifier := &fakeNotifier{}
	svc := NewService(businesses, customers,
		&fakeChecker{result: availableResult()},
		&fakeAssigner{result: assignedTo("t1")},
		store, notifier, zerolog.Nop())

	outcome, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	require.False(t, outcome.Created)
	require.NotEmpty(t, outcome.Message)
	require.Empty(t, notifier.confirmed)
}

func TestCreateRetriesCodeCollision(t *testing.T) {
	businesses, customers := fixtures()
	store := &fakeStore{failWith: booking.ErrCodeConflict, failures: 2}
	svc := NewService(businesses, customers,
		&fakeChecker{result: availableResult()},
		&fakeAssigner{result: assignedTo("t1")},
		store, &fakeNotifier{}, zerolog.Nop())

	outcome, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	require.True(t, outcome.Created)
	require.Len(t, store.created, 1)
}

func TestCancelByCode(t *testing.T) {
	businesses, customers := fixtures()
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	svc := NewService(businesses, customers,
		&fakeChecker{result: availableResult()},
		&fakeAssigner{result: assignedTo("t1")},
		store, notifier, zerolog.Nop())

	outcome, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	code := outcome.Booking.ConfirmationCode

	b, err := svc.CancelByCode(context.Background(), code)
	require.NoError(t, err)
	require.Equal(t, booking.StatusCancelled, b.Status)
	require.Len(t, notifier.cancelled, 1)

	// A cancelled booking cannot be cancelled again.
	_, err = svc.CancelByCode(context.Background(), code)
	require.ErrorIs(t, err, booking.ErrIllegalTransition)

	// Unknown codes surface not-found.
	_, err = svc.CancelByCode(context.Background(), "RES-000000")
	require.ErrorIs(t, err, booking.ErrNotFound)
}

func TestCreateValidatesPartySize(t *testing.T) {
	businesses, customers := fixtures()
	checker := &fakeChecker{result: availableResult()}
	svc := NewService(businesses, customers, checker, &fakeAssigner{}, &fakeStore{}, &fakeNotifier{}, zerolog.Nop())

	req := createReq()
	req.PartySize = 0

	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidPartySize)
	require.Zero(t, checker.calls)
}
