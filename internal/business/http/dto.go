package http

import (
	"time"

	"github.com/mesaflow/booking-backend/internal/business"
)

type BusinessResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Timezone      string    `json:"timezone"`
	Locale        string    `json:"locale"`
	MaxCapacity   int       `json:"max_capacity"`
	ZoneFillOrder []string  `json:"zone_fill_order"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewResponse(b *business.Business) BusinessResponse {
	zones := b.ZoneFillOrder
	if zones == nil {
		zones = []string{}
	}
	return BusinessResponse{
		ID:            b.ID,
		Name:          b.Name,
		Timezone:      b.Timezone,
		Locale:        b.Locale,
		MaxCapacity:   b.MaxCapacity,
		ZoneFillOrder: zones,
		IsActive:      b.IsActive,
		CreatedAt:     b.CreatedAt,
	}
}

type CreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Timezone    string `json:"timezone" binding:"required"`
	Locale      string `json:"locale" binding:"omitempty,oneof=en es"`
	MaxCapacity int    `json:"max_capacity" binding:"omitempty,min=1"`
}

type UpdateRequest struct {
	Name          *string  `json:"name" binding:"omitempty"`
	Timezone      *string  `json:"timezone" binding:"omitempty"`
	Locale        *string  `json:"locale" binding:"omitempty,oneof=en es"`
	MaxCapacity   *int     `json:"max_capacity" binding:"omitempty,min=1"`
	ZoneFillOrder []string `json:"zone_fill_order" binding:"omitempty"`
	IsActive      *bool    `json:"is_active" binding:"omitempty"`
}

type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Role   string `json:"role" binding:"required,oneof=owner admin member"`
}

type MemberResponse struct {
	UserID      string  `json:"user_id"`
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name,omitempty"`
	Role        string  `json:"role"`
}

func NewMemberResponse(m *business.Member) MemberResponse {
	return MemberResponse{
		UserID:      m.UserID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Role:        m.Role,
	}
}
