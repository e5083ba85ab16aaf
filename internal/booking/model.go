package booking

import (
	"net/http"
	"time"

	"github.com/mesaflow/booking-backend/internal/pkg/apperror"
	"github.com/mesaflow/booking-backend/internal/pkg/timeslot"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrIllegalTransition = apperror.New(http.StatusConflict, "illegal booking status transition")
	ErrInvalidPartySize  = apperror.New(http.StatusBadRequest, "party size must be at least 1")

	// ErrSlotFull and ErrTableTaken are returned by the guarded insert
	// when the in-transaction recheck finds the slot no longer available.
	ErrSlotFull   = apperror.New(http.StatusConflict, "the requested time slot is fully booked")
	ErrTableTaken = apperror.New(http.StatusConflict, "the assigned table was taken by a concurrent booking")

	// ErrCodeConflict signals a confirmation code collision; callers
	// regenerate the code and retry.
	ErrCodeConflict = apperror.New(http.StatusConflict, "confirmation code already in use")
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// legalTransitions maps a status to the statuses it may move to.
// Completed, cancelled and no_show are terminal.
var legalTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	for _, s := range legalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Booking is a reservation of capacity at a business for a time interval.
// StartTime is stored in UTC; the local wall-clock view is derived through
// the business timezone.
type Booking struct {
	ID               string
	BusinessID       string
	CustomerID       string
	TableID          *string
	CombinationID    *string
	ConfirmationCode string
	StartTime        time.Time
	DurationMinutes  int
	PartySize        int
	Status           string
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsActive reports whether the booking still occupies capacity.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Interval returns the half-open occupied interval.
func (b *Booking) Interval() timeslot.Interval {
	return timeslot.Interval{
		Start: b.StartTime,
		End:   b.StartTime.Add(time.Duration(b.DurationMinutes) * time.Minute),
	}
}

// Filter defines parameters for listing bookings.
type Filter struct {
	BusinessID string
	CustomerID string
	Status     string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}
