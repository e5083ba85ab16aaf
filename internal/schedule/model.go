package schedule

import (
	"net/http"
	"time"

	"github.com/mesaflow/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "operating hours rule not found")
	ErrRuleTarget       = apperror.New(http.StatusBadRequest, "rule must target either a day of week or a specific date")
	ErrInvalidDayOfWeek = apperror.New(http.StatusBadRequest, "day of week must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidHours     = apperror.New(http.StatusBadRequest, "open time must be before close time")
	ErrMissingHours     = apperror.New(http.StatusBadRequest, "open and close times are required unless the day is closed")
)

// Rule describes operating hours for either a recurring day of week or a
// specific calendar date. A specific-date rule overrides the day-of-week
// rule for the same business on that date.
type Rule struct {
	ID           string
	BusinessID   string
	DayOfWeek    *int    // 0=Sunday .. 6=Saturday; nil for specific-date rules
	SpecificDate *string // "YYYY-MM-DD"; nil for day-of-week rules
	OpensAt      string  // "HH:MM", empty when Closed
	ClosesAt     string  // "HH:MM", empty when Closed
	Closed       bool
	CreatedAt    time.Time
}

// Reason classifies why an interval failed the hours check. The next-slot
// finder uses it to decide between skipping forward and stopping.
type Reason string

const (
	ReasonClosedDay  Reason = "closed_day"
	ReasonBeforeOpen Reason = "before_open"
	ReasonAfterClose Reason = "after_close"
)

// HoursCheck is the outcome of validating an interval against operating
// hours. It is data, never an error: being outside opening hours is an
// expected business outcome.
type HoursCheck struct {
	WithinHours bool
	Reason      Reason // empty when WithinHours
	Message     string // human-readable, localized, shown to end users
}
