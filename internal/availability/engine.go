package availability

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mesaflow/booking-backend/internal/booking"
	"github.com/mesaflow/booking-backend/internal/business"
	"github.com/mesaflow/booking-backend/internal/pkg/apperror"
	"github.com/mesaflow/booking-backend/internal/pkg/timeslot"
	"github.com/mesaflow/booking-backend/internal/schedule"
)

// ErrDependency is returned when a store read fails and the availability
// answer cannot be computed. Callers must not treat it as "unavailable".
var ErrDependency = apperror.New(http.StatusServiceUnavailable, "availability check temporarily unavailable")

// BusinessDirectory resolves the tenant whose availability is being checked.
type BusinessDirectory interface {
	GetByID(ctx context.Context, id string) (*business.Business, error)
}

// HoursValidator decides whether an interval falls within operating hours.
type HoursValidator interface {
	ValidateInterval(ctx context.Context, biz *business.Business, dateStr string, iv timeslot.Interval) (schedule.HoursCheck, error)
}

// BookingSource supplies the active bookings the capacity sweep runs over.
type BookingSource interface {
	ListActiveForDay(ctx context.Context, businessID string, dayStart, dayEnd time.Time) ([]*booking.Booking, error)
}

// CheckRequest asks whether a booking could start at Date+Time local to the
// business and run for DurationMinutes.
type CheckRequest struct {
	BusinessID      string
	Date            string // "YYYY-MM-DD"
	Time            string // "HH:MM"
	DurationMinutes int
}

// Result is the availability answer. It is pure data: an unavailable slot is
// a normal outcome, not an error.
type Result struct {
	Available            bool
	HasConflict          bool
	WithinBusinessHours  bool
	Message              string
	ConflictingBookingID string
	// SuggestedTimes holds up to three alternative "HH:MM" start times on
	// the same day, populated only when the slot is unavailable.
	SuggestedTimes []string
}

// Engine answers availability questions. All operations are idempotent
// reads; the write-path recheck lives in the booking repository.
type Engine struct {
	dir      BusinessDirectory
	hours    HoursValidator
	bookings BookingSource
	log      zerolog.Logger
}

func NewEngine(dir BusinessDirectory, hours HoursValidator, bookings BookingSource, log zerolog.Logger) *Engine {
	return &Engine{dir: dir, hours: hours, bookings: bookings, log: log}
}

const (
	slotIncrement  = 30 * time.Minute
	maxSuggestions = 3
	// maxSlotScans bounds the next-slot walk: 48 half-hour steps cover a
	// full day.
	maxSlotScans = 48
)

// Check validates the request, converts the local wall-clock to an absolute
// interval, applies the operating-hours rules and runs the capacity sweep
// over the day's active bookings. When the slot is unavailable the result
// carries alternative start times for the same day.
func (e *Engine) Check(ctx context.Context, req CheckRequest) (*Result, error) {
	// Validate the shape of the inputs before touching any store.
	if _, err := time.Parse(timeslot.DateLayout, req.Date); err != nil {
		return nil, apperror.New(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	if _, err := timeslot.NormalizeClock(req.Time); err != nil {
		return nil, apperror.New(http.StatusBadRequest, "invalid time, expected HH:MM")
	}
	if req.DurationMinutes <= 0 {
		return nil, apperror.New(http.StatusBadRequest, "duration must be greater than zero")
	}

	biz, err := e.dir.GetByID(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	start, err := timeslot.LocalToInstant(req.Date, req.Time, biz.Timezone)
	if err != nil {
		return nil, apperror.Wrap(err, http.StatusBadRequest, err.Error())
	}
	iv, err := timeslot.FromStartDuration(start, req.DurationMinutes)
	if err != nil {
		return nil, apperror.Wrap(err, http.StatusBadRequest, err.Error())
	}

	hoursCheck, err := e.hours.ValidateInterval(ctx, biz, req.Date, iv)
	if err != nil {
		return nil, err
	}
	if !hoursCheck.WithinHours {
		return &Result{
			Available:           false,
			WithinBusinessHours: false,
			Message:             hoursCheck.Message,
		}, nil
	}

	active, err := e.activeForDay(ctx, biz, req.Date)
	if err != nil {
		return nil, err
	}

	capRes := CheckCapacity(iv, biz.EffectiveCapacity(), active)
	if capRes.Available {
		return &Result{
			Available:           true,
			WithinBusinessHours: true,
			Message:             msgAvailable(biz.Locale),
		}, nil
	}

	res := &Result{
		Available:           false,
		HasConflict:         true,
		WithinBusinessHours: true,
		Message:             msgSlotFull(biz.Locale, biz.EffectiveCapacity(), capRes.PeakConcurrency),
	}
	if capRes.Conflicting != nil {
		res.ConflictingBookingID = capRes.Conflicting.ID
	}

	suggestions, err := e.nextSlots(ctx, biz, req.Date, iv.End, req.DurationMinutes, active)
	if err != nil {
		// Suggestions are best-effort; the availability verdict stands.
		e.log.Warn().Err(err).Str("business_id", biz.ID).Msg("next-slot search failed")
	} else {
		res.SuggestedTimes = suggestions
	}

	return res, nil
}

// FindNextSlots walks forward from the given instant in 30-minute increments
// and returns up to maxSuggestions start times ("HH:MM") on the same local
// day that are within hours and have free capacity. The returned times are
// non-decreasing; the walk never crosses into the next day.
func (e *Engine) FindNextSlots(ctx context.Context, businessID string, after time.Time, durationMinutes, maxSuggestions int) ([]string, error) {
	biz, err := e.dir.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	dateStr, err := timeslot.LocalDate(after, biz.Timezone)
	if err != nil {
		return nil, err
	}

	active, err := e.activeForDay(ctx, biz, dateStr)
	if err != nil {
		return nil, err
	}

	slots, err := e.walkSlots(ctx, biz, dateStr, after, durationMinutes, maxSuggestions, active)
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (e *Engine) nextSlots(ctx context.Context, biz *business.Business, dateStr string, after time.Time, durationMinutes int, active []*booking.Booking) ([]string, error) {
	return e.walkSlots(ctx, biz, dateStr, after, durationMinutes, maxSuggestions, active)
}

func (e *Engine) walkSlots(ctx context.Context, biz *business.Business, dateStr string, after time.Time, durationMinutes, limit int, active []*booking.Booking) ([]string, error) {
	if limit <= 0 {
		limit = maxSuggestions
	}

	_, dayEnd, err := timeslot.DayBounds(dateStr, biz.Timezone)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(biz.Timezone)
	if err != nil {
		return nil, err
	}
	candidate := alignToSlot(after, loc)

	var out []string
	for i := 0; i < maxSlotScans && len(out) < limit; i++ {
		if !candidate.Before(dayEnd) {
			break
		}

		iv, err := timeslot.FromStartDuration(candidate, durationMinutes)
		if err != nil {
			return nil, err
		}

		hoursCheck, err := e.hours.ValidateInterval(ctx, biz, dateStr, iv)
		if err != nil {
			return nil, err
		}
		if !hoursCheck.WithinHours {
			switch hoursCheck.Reason {
			case schedule.ReasonBeforeOpen:
				// Not open yet; keep scanning forward.
				candidate = candidate.Add(slotIncrement)
				continue
			default:
				// Closed day or past closing: nothing later today.
				return out, nil
			}
		}

		if CheckCapacity(iv, biz.EffectiveCapacity(), active).Available {
			clock, err := timeslot.LocalClock(candidate, biz.Timezone)
			if err != nil {
				return nil, err
			}
			out = append(out, clock)
		}

		candidate = candidate.Add(slotIncrement)
	}

	return out, nil
}

// alignToSlot rounds up to the next instant sitting on a local wall-clock
// slot boundary. Truncating the instant directly would align to UTC, which
// drifts in zones whose offset is not a whole multiple of the increment
// (Asia/Kathmandu is UTC+05:45).
func alignToSlot(after time.Time, loc *time.Location) time.Time {
	local := after.In(loc)
	past := time.Duration(local.Minute())*time.Minute +
		time.Duration(local.Second())*time.Second +
		time.Duration(local.Nanosecond())

	aligned := after.Add(-(past % slotIncrement))
	if aligned.Before(after) {
		aligned = aligned.Add(slotIncrement)
	}
	return aligned
}

func (e *Engine) activeForDay(ctx context.Context, biz *business.Business, dateStr string) ([]*booking.Booking, error) {
	dayStart, dayEnd, err := timeslot.DayBounds(dateStr, biz.Timezone)
	if err != nil {
		return nil, err
	}

	active, err := e.bookings.ListActiveForDay(ctx, biz.ID, dayStart, dayEnd)
	if err != nil {
		e.log.Error().Err(err).Str("business_id", biz.ID).Str("date", dateStr).Msg("loading active bookings failed")
		return nil, ErrDependency
	}
	return active, nil
}
