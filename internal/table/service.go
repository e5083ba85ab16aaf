package table

import (
	"context"
	"strings"
)

type CreateRequest struct {
	BusinessID  string
	Name        string
	Capacity    int
	MinCapacity int
	Zone        string
	Priority    int
	AutoAssign  *bool
}

type UpdateRequest struct {
	Name        *string
	Capacity    *int
	MinCapacity *int
	Zone        *string
	Priority    *int
	AutoAssign  *bool
	IsActive    *bool
}

type CreateCombinationRequest struct {
	BusinessID  string
	Name        string
	TableIDs    []string
	MinCapacity int
}

// Service defines business logic for tables and table combinations.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Table, error)
	GetByID(ctx context.Context, id string) (*Table, error)
	List(ctx context.Context, filter Filter) ([]*Table, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Table, error)
	Delete(ctx context.Context, id string) error

	CreateCombination(ctx context.Context, req CreateCombinationRequest) (*Combination, error)
	GetCombination(ctx context.Context, id string) (*Combination, error)
	ListCombinations(ctx context.Context, businessID string) ([]*Combination, error)
	DeleteCombination(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Table, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if req.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	minCapacity := req.MinCapacity
	if minCapacity == 0 {
		minCapacity = 1
	}
	if minCapacity < 1 || minCapacity > req.Capacity {
		return nil, ErrInvalidMinCapacity
	}

	autoAssign := true
	if req.AutoAssign != nil {
		autoAssign = *req.AutoAssign
	}

	t := &Table{
		BusinessID:  req.BusinessID,
		Name:        name,
		Capacity:    req.Capacity,
		MinCapacity: minCapacity,
		Zone:        strings.TrimSpace(req.Zone),
		Priority:    req.Priority,
		AutoAssign:  autoAssign,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Table, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Table, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Table, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		t.Name = name
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, ErrInvalidCapacity
		}
		t.Capacity = *req.Capacity
	}
	if req.MinCapacity != nil {
		t.MinCapacity = *req.MinCapacity
	}
	if t.MinCapacity < 1 || t.MinCapacity > t.Capacity {
		return nil, ErrInvalidMinCapacity
	}
	if req.Zone != nil {
		t.Zone = strings.TrimSpace(*req.Zone)
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.AutoAssign != nil {
		t.AutoAssign = *req.AutoAssign
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete deactivates the table. Historical bookings keep referencing it.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) CreateCombination(ctx context.Context, req CreateCombinationRequest) (*Combination, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(req.TableIDs) < 2 {
		return nil, ErrNoMemberTables
	}

	total := 0
	for _, tableID := range req.TableIDs {
		t, err := s.repo.GetByID(ctx, tableID)
		if err != nil {
			return nil, err
		}
		if t.BusinessID != req.BusinessID {
			return nil, ErrMixedBusinessTables
		}
		total += t.Capacity
	}

	minCapacity := req.MinCapacity
	if minCapacity == 0 {
		minCapacity = 1
	}
	if minCapacity < 1 || minCapacity > total {
		return nil, ErrInvalidMinCapacity
	}

	combo := &Combination{
		BusinessID:    req.BusinessID,
		Name:          name,
		TableIDs:      req.TableIDs,
		TotalCapacity: total,
		MinCapacity:   minCapacity,
	}

	if err := s.repo.CreateCombination(ctx, combo); err != nil {
		return nil, err
	}
	return combo, nil
}

func (s *service) GetCombination(ctx context.Context, id string) (*Combination, error) {
	return s.repo.GetCombination(ctx, id)
}

func (s *service) ListCombinations(ctx context.Context, businessID string) ([]*Combination, error) {
	return s.repo.ListCombinations(ctx, businessID)
}

func (s *service) DeleteCombination(ctx context.Context, id string) error {
	if _, err := s.repo.GetCombination(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteCombination(ctx, id)
}
