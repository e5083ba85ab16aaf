package booking

import (
	"context"

	"github.com/rs/zerolog"
)

// Service defines staff-facing booking operations. Creation goes through
// the reservation flow, which owns availability and assignment.
type Service interface {
	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByCode(ctx context.Context, code string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	Confirm(ctx context.Context, id string) (*Booking, error)
	Complete(ctx context.Context, id string) (*Booking, error)
	Cancel(ctx context.Context, id string) (*Booking, error)
	MarkNoShow(ctx context.Context, id string) (*Booking, error)
}

type service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByCode(ctx context.Context, code string) (*Booking, error) {
	return s.repo.GetByCode(ctx, code)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Confirm(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, StatusConfirmed)
}

func (s *service) Complete(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, StatusCompleted)
}

func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, StatusCancelled)
}

func (s *service) MarkNoShow(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, StatusNoShow)
}

func (s *service) transition(ctx context.Context, id, to string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(b.Status, to) {
		return nil, ErrIllegalTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("booking_id", id).
		Str("from", b.Status).
		Str("to", to).
		Msg("booking status changed")

	b.Status = to
	return b, nil
}
