package business

import (
	"context"
	"strings"

	"github.com/mesaflow/booking-backend/internal/pkg/timeslot"
)

// CreateRequest defines fields for creating a business.
type CreateRequest struct {
	Name        string
	Timezone    string
	Locale      string
	MaxCapacity int
	OwnerUserID string
}

// UpdateRequest defines the fields that can be updated.
type UpdateRequest struct {
	Name          *string
	Timezone      *string
	Locale        *string
	MaxCapacity   *int
	ZoneFillOrder []string
	IsActive      *bool
}

// Service defines business logic for tenants and their staff members.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Business, error)
	GetByID(ctx context.Context, id string) (*Business, error)
	List(ctx context.Context, filter Filter) ([]*Business, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Business, error)
	Delete(ctx context.Context, id string) error

	GetMember(ctx context.Context, businessID, userID string) (*Member, error)
	AddMember(ctx context.Context, businessID, userID, role string) error
	RemoveMember(ctx context.Context, businessID, userID string) error
	ListMembers(ctx context.Context, businessID string) ([]*Member, error)

	// IsManagerOrAbove reports whether the user holds the owner or admin
	// role in the business.
	IsManagerOrAbove(ctx context.Context, businessID, userID string) (bool, error)

	// IsMember reports whether the user belongs to the business in any role.
	IsMember(ctx context.Context, businessID, userID string) (bool, error)
}

type service struct {
	repo Repository
}

// NewService creates a new business service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Business, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if _, err := timeslot.LoadZone(req.Timezone); err != nil {
		return nil, ErrInvalidTimezone
	}

	capacity := req.MaxCapacity
	if capacity == 0 {
		capacity = 1
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	locale := req.Locale
	if locale == "" {
		locale = LocaleEnglish
	}

	biz := &Business{
		Name:        name,
		Timezone:    req.Timezone,
		Locale:      locale,
		MaxCapacity: capacity,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, biz); err != nil {
		return nil, err
	}

	// The creator becomes the owner.
	if req.OwnerUserID != "" {
		if err := s.repo.AddMember(ctx, biz.ID, req.OwnerUserID, RoleOwner); err != nil {
			return nil, err
		}
	}

	return biz, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Business, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Business, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Business, error) {
	biz, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		biz.Name = name
	}
	if req.Timezone != nil {
		if _, err := timeslot.LoadZone(*req.Timezone); err != nil {
			return nil, ErrInvalidTimezone
		}
		biz.Timezone = *req.Timezone
	}
	if req.Locale != nil {
		biz.Locale = *req.Locale
	}
	if req.MaxCapacity != nil {
		if *req.MaxCapacity < 1 {
			return nil, ErrInvalidCapacity
		}
		biz.MaxCapacity = *req.MaxCapacity
	}
	if req.ZoneFillOrder != nil {
		biz.ZoneFillOrder = req.ZoneFillOrder
	}
	if req.IsActive != nil {
		biz.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, biz); err != nil {
		return nil, err
	}
	return biz, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) GetMember(ctx context.Context, businessID, userID string) (*Member, error) {
	return s.repo.GetMember(ctx, businessID, userID)
}

func (s *service) AddMember(ctx context.Context, businessID, userID, role string) error {
	if role != RoleOwner && role != RoleAdmin && role != RoleMember {
		role = RoleMember
	}
	return s.repo.AddMember(ctx, businessID, userID, role)
}

func (s *service) RemoveMember(ctx context.Context, businessID, userID string) error {
	return s.repo.RemoveMember(ctx, businessID, userID)
}

func (s *service) ListMembers(ctx context.Context, businessID string) ([]*Member, error) {
	return s.repo.ListMembers(ctx, businessID)
}

func (s *service) IsManagerOrAbove(ctx context.Context, businessID, userID string) (bool, error) {
	member, err := s.repo.GetMember(ctx, businessID, userID)
	if err != nil {
		if err == ErrMemberNotFound {
			return false, nil
		}
		return false, err
	}
	return member.Role == RoleOwner || member.Role == RoleAdmin, nil
}

func (s *service) IsMember(ctx context.Context, businessID, userID string) (bool, error) {
	_, err := s.repo.GetMember(ctx, businessID, userID)
	if err != nil {
		if err == ErrMemberNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
