package schedule

import (
	"context"
	"fmt"

	"github.com/mesaflow/booking-backend/internal/business"
	"github.com/mesaflow/booking-backend/internal/pkg/timeslot"
)

// CreateRequest defines fields for creating an operating hours rule.
type CreateRequest struct {
	BusinessID   string
	DayOfWeek    *int
	SpecificDate *string
	OpensAt      string
	ClosesAt     string
	Closed       bool
}

// UpdateRequest defines the fields that can be updated on a rule.
type UpdateRequest struct {
	OpensAt  *string
	ClosesAt *string
	Closed   *bool
}

// Service defines business logic for operating hours.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Rule, error)
	GetByID(ctx context.Context, id string) (*Rule, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*Rule, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Rule, error)
	Delete(ctx context.Context, id string) error

	// ValidateInterval checks whether the interval falls fully within the
	// business's open hours on the given local date. A specific-date rule
	// wins over the day-of-week rule; a day with no rule at all is closed.
	ValidateInterval(ctx context.Context, biz *business.Business, dateStr string, iv timeslot.Interval) (HoursCheck, error)
}

type service struct {
	repo Repository
}

// NewService creates a new schedule service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Rule, error) {
	if (req.DayOfWeek == nil) == (req.SpecificDate == nil) {
		return nil, ErrRuleTarget
	}
	if req.DayOfWeek != nil && (*req.DayOfWeek < 0 || *req.DayOfWeek > 6) {
		return nil, ErrInvalidDayOfWeek
	}
	if req.SpecificDate != nil {
		// Weekday validates the date format as a side effect.
		if _, err := timeslot.Weekday(*req.SpecificDate, "UTC"); err != nil {
			return nil, err
		}
	}

	rule := &Rule{
		BusinessID:   req.BusinessID,
		DayOfWeek:    req.DayOfWeek,
		SpecificDate: req.SpecificDate,
		Closed:       req.Closed,
	}

	if !req.Closed {
		opensAt, closesAt, err := normalizeHours(req.OpensAt, req.ClosesAt)
		if err != nil {
			return nil, err
		}
		rule.OpensAt = opensAt
		rule.ClosesAt = closesAt
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Rule, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByBusiness(ctx context.Context, businessID string) ([]*Rule, error) {
	return s.repo.ListByBusiness(ctx, businessID)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Rule, error) {
	rule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Closed != nil {
		rule.Closed = *req.Closed
	}
	if req.OpensAt != nil {
		rule.OpensAt = *req.OpensAt
	}
	if req.ClosesAt != nil {
		rule.ClosesAt = *req.ClosesAt
	}

	if rule.Closed {
		rule.OpensAt = ""
		rule.ClosesAt = ""
	} else {
		opensAt, closesAt, err := normalizeHours(rule.OpensAt, rule.ClosesAt)
		if err != nil {
			return nil, err
		}
		rule.OpensAt = opensAt
		rule.ClosesAt = closesAt
	}

	if err := s.repo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) ValidateInterval(ctx context.Context, biz *business.Business, dateStr string, iv timeslot.Interval) (HoursCheck, error) {
	weekday, err := timeslot.Weekday(dateStr, biz.Timezone)
	if err != nil {
		return HoursCheck{}, err
	}

	rule, err := s.repo.FindForDate(ctx, biz.ID, dateStr, int(weekday))
	if err != nil {
		return HoursCheck{}, fmt.Errorf("failed to resolve hours rule: %w", err)
	}

	// No rule, an explicit closed flag, or missing times: the day is
	// closed. Missing configuration fails closed, never open.
	if rule == nil || rule.Closed || rule.OpensAt == "" || rule.ClosesAt == "" {
		msg := msgClosedDay(biz.Locale, weekday)
		if rule != nil && rule.SpecificDate != nil {
			msg = msgClosedDate(biz.Locale, dateStr)
		}
		return HoursCheck{Reason: ReasonClosedDay, Message: msg}, nil
	}

	opensAt, err := timeslot.NormalizeClock(rule.OpensAt)
	if err != nil {
		return HoursCheck{}, fmt.Errorf("rule %s has malformed open time: %w", rule.ID, err)
	}
	closesAt, err := timeslot.NormalizeClock(rule.ClosesAt)
	if err != nil {
		return HoursCheck{}, fmt.Errorf("rule %s has malformed close time: %w", rule.ID, err)
	}

	startClock, err := timeslot.LocalClock(iv.Start, biz.Timezone)
	if err != nil {
		return HoursCheck{}, err
	}
	endClock, err := timeslot.LocalClock(iv.End, biz.Timezone)
	if err != nil {
		return HoursCheck{}, err
	}

	// An interval that spills into the next local day can never fit within
	// a same-day close time. Midnight reads as "24:00" so the comparison
	// and the message stay meaningful.
	endDate, err := timeslot.LocalDate(iv.End, biz.Timezone)
	if err != nil {
		return HoursCheck{}, err
	}
	if endDate != dateStr {
		if endClock == "00:00" {
			endClock = "24:00"
		}
		return HoursCheck{Reason: ReasonAfterClose, Message: msgAfterClose(biz.Locale, endClock, closesAt)}, nil
	}

	// Normalized "HH:MM" strings compare correctly as strings.
	if startClock < opensAt {
		return HoursCheck{Reason: ReasonBeforeOpen, Message: msgBeforeOpen(biz.Locale, opensAt)}, nil
	}
	if endClock > closesAt {
		return HoursCheck{Reason: ReasonAfterClose, Message: msgAfterClose(biz.Locale, endClock, closesAt)}, nil
	}

	return HoursCheck{WithinHours: true}, nil
}

// normalizeHours validates and canonicalizes an open/close pair.
func normalizeHours(opensAt, closesAt string) (string, string, error) {
	if opensAt == "" || closesAt == "" {
		return "", "", ErrMissingHours
	}
	open, err := timeslot.NormalizeClock(opensAt)
	if err != nil {
		return "", "", ErrMissingHours
	}
	closed, err := timeslot.NormalizeClock(closesAt)
	if err != nil {
		return "", "", ErrMissingHours
	}
	if open >= closed {
		return "", "", ErrInvalidHours
	}
	return open, closed, nil
}
