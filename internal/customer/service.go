package customer

import (
	"context"
	"strings"
)

type CreateRequest struct {
	BusinessID string
	Name       string
	Email      *string
	Phone      *string
	Notes      *string
}

type UpdateRequest struct {
	Name  *string
	Email *string
	Phone *string
	Notes *string
}

// Service defines business logic for customers.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Customer, error)
	GetByID(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context, filter Filter) ([]*Customer, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Customer, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if emptyPtr(req.Email) && emptyPtr(req.Phone) {
		return nil, ErrNoContact
	}

	c := &Customer{
		BusinessID: req.BusinessID,
		Name:       strings.TrimSpace(req.Name),
		Email:      req.Email,
		Phone:      req.Phone,
		Notes:      req.Notes,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Customer, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Notes != nil {
		c.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func emptyPtr(p *string) bool {
	return p == nil || strings.TrimSpace(*p) == ""
}
