package reservation

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mesaflow/booking-backend/internal/assignment"
	"github.com/mesaflow/booking-backend/internal/availability"
	"github.com/mesaflow/booking-backend/internal/booking"
	"github.com/mesaflow/booking-backend/internal/business"
	"github.com/mesaflow/booking-backend/internal/customer"
	"github.com/mesaflow/booking-backend/internal/pkg/apperror"
	"github.com/mesaflow/booking-backend/internal/pkg/timeslot"
)

var ErrInvalidPartySize = apperror.New(http.StatusBadRequest, "party size must be at least 1")

// BusinessDirectory resolves the tenant being booked.
type BusinessDirectory interface {
	GetByID(ctx context.Context, id string) (*business.Business, error)
}

// CustomerDirectory resolves the customer making the reservation.
type CustomerDirectory interface {
	GetByID(ctx context.Context, id string) (*customer.Customer, error)
}

// BookingStore is the write side of the reservation flow.
type BookingStore interface {
	CreateGuarded(ctx context.Context, b *booking.Booking, maxCapacity int, dayKey string) error
	GetByCode(ctx context.Context, code string) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// Assigner picks a table for the party; failure is data, not an error.
type Assigner interface {
	FindBestTable(ctx context.Context, req assignment.Request) assignment.Result
}

// AvailabilityChecker answers whether the requested slot is open.
type AvailabilityChecker interface {
	Check(ctx context.Context, req availability.CheckRequest) (*availability.Result, error)
}

// Notifier sends the customer-facing messages around a booking.
type Notifier interface {
	BookingConfirmed(ctx context.Context, biz *business.Business, cust *customer.Customer, b *booking.Booking)
	BookingCancelled(ctx context.Context, biz *business.Business, cust *customer.Customer, b *booking.Booking)
}

// CreateRequest is a public reservation attempt.
type CreateRequest struct {
	BusinessID      string
	CustomerID      string
	Date            string // "YYYY-MM-DD"
	Time            string // "HH:MM"
	PartySize       int
	DurationMinutes int
	PreferredZone   string
	Notes           *string
}

// Outcome is the result of a reservation attempt. A full slot is a normal
// outcome carrying a reason and alternative times, not an error.
type Outcome struct {
	Created        bool
	Booking        *booking.Booking
	Message        string
	SuggestedTimes []string
}

// Service runs the public booking flow: availability, table assignment,
// guarded insert, notification.
type Service interface {
	CheckAvailability(ctx context.Context, req availability.CheckRequest) (*availability.Result, error)
	Create(ctx context.Context, req CreateRequest) (*Outcome, error)
	GetByCode(ctx context.Context, code string) (*booking.Booking, error)
	CancelByCode(ctx context.Context, code string) (*booking.Booking, error)
}

type service struct {
	businesses BusinessDirectory
	customers  CustomerDirectory
	checker    AvailabilityChecker
	assigner   Assigner
	store      BookingStore
	notifier   Notifier
	log        zerolog.Logger
}

func NewService(
	businesses BusinessDirectory,
	customers CustomerDirectory,
	checker AvailabilityChecker,
	assigner Assigner,
	store BookingStore,
	notifier Notifier,
	log zerolog.Logger,
) Service {
	return &service{
		businesses: businesses,
		customers:  customers,
		checker:    checker,
		assigner:   assigner,
		store:      store,
		notifier:   notifier,
		log:        log,
	}
}

func (s *service) CheckAvailability(ctx context.Context, req availability.CheckRequest) (*availability.Result, error) {
	return s.checker.Check(ctx, req)
}

func (s *service) GetByCode(ctx context.Context, code string) (*booking.Booking, error) {
	return s.store.GetByCode(ctx, code)
}

// CancelByCode lets a customer cancel their own reservation with the
// confirmation code, no account needed.
func (s *service) CancelByCode(ctx context.Context, code string) (*booking.Booking, error) {
	b, err := s.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if !booking.CanTransition(b.Status, booking.StatusCancelled) {
		return nil, booking.ErrIllegalTransition
	}

	if err := s.store.UpdateStatus(ctx, b.ID, booking.StatusCancelled); err != nil {
		return nil, err
	}
	b.Status = booking.StatusCancelled

	biz, bizErr := s.businesses.GetByID(ctx, b.BusinessID)
	cust, custErr := s.customers.GetByID(ctx, b.CustomerID)
	if bizErr != nil || custErr != nil {
		// The cancellation stands; only the notification is lost.
		s.log.Warn().
			Str("booking_id", b.ID).
			AnErr("business_err", bizErr).
			AnErr("customer_err", custErr).
			Msg("cancellation notification skipped")
		return b, nil
	}
	s.notifier.BookingCancelled(ctx, biz, cust, b)

	return b, nil
}

// codeRetries bounds regeneration when a confirmation code collides.
const codeRetries = 3

func (s *service) Create(ctx context.Context, req CreateRequest) (*Outcome, error) {
	if req.PartySize < 1 {
		return nil, ErrInvalidPartySize
	}

	biz, err := s.businesses.GetByID(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}
	cust, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	avail, err := s.checker.Check(ctx, availability.CheckRequest{
		BusinessID:      req.BusinessID,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return nil, err
	}
	if !avail.Available {
		return &Outcome{
			Message:        avail.Message,
			SuggestedTimes: avail.SuggestedTimes,
		}, nil
	}

	// Assignment is advisory: when no table can be picked, the booking
	// proceeds unassigned and staff seat the party on arrival.
	assigned := s.assigner.FindBestTable(ctx, assignment.Request{
		BusinessID:      req.BusinessID,
		Date:            req.Date,
		Time:            req.Time,
		PartySize:       req.PartySize,
		DurationMinutes: req.DurationMinutes,
		PreferredZone:   req.PreferredZone,
	})
	if !assigned.Success {
		s.log.Info().
			Str("business_id", req.BusinessID).
			Str("reason", assigned.Reason).
			Msg("booking proceeds without table assignment")
	}

	start, err := timeslot.LocalToInstant(req.Date, req.Time, biz.Timezone)
	if err != nil {
		return nil, apperror.Wrap(err, http.StatusBadRequest, err.Error())
	}

	b := &booking.Booking{
		BusinessID:      req.BusinessID,
		CustomerID:      cust.ID,
		TableID:         assigned.TableID,
		CombinationID:   assigned.CombinationID,
		StartTime:       start,
		DurationMinutes: req.DurationMinutes,
		PartySize:       req.PartySize,
		Status:          booking.StatusConfirmed,
		Notes:           req.Notes,
	}

	if err := s.insertWithFreshCode(ctx, b, biz, req.Date); err != nil {
		switch err {
		case booking.ErrSlotFull, booking.ErrTableTaken:
			// Lost the race to a concurrent booking after the read-path
			// check passed.
			return &Outcome{Message: err.Error()}, nil
		default:
			return nil, err
		}
	}

	s.notifier.BookingConfirmed(ctx, biz, cust, b)

	return &Outcome{
		Created: true,
		Booking: b,
		Message: assigned.Reason,
	}, nil
}

func (s *service) insertWithFreshCode(ctx context.Context, b *booking.Booking, biz *business.Business, dayKey string) error {
	var err error
	for i := 0; i < codeRetries; i++ {
		b.ConfirmationCode = newConfirmationCode()
		err = s.store.CreateGuarded(ctx, b, biz.EffectiveCapacity(), dayKey)
		if err != booking.ErrCodeConflict {
			return err
		}
	}
	return err
}

// newConfirmationCode returns a short human-readable code like "RES-3F9A2C".
func newConfirmationCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "RES-" + strings.ToUpper(raw[:6])
}
