package http

import (
	"time"

	"github.com/mesaflow/booking-backend/internal/schedule"
)

type RuleResponse struct {
	ID           string    `json:"id"`
	BusinessID   string    `json:"business_id"`
	DayOfWeek    *int      `json:"day_of_week,omitempty"`
	SpecificDate *string   `json:"specific_date,omitempty"`
	OpensAt      string    `json:"opens_at,omitempty"`
	ClosesAt     string    `json:"closes_at,omitempty"`
	Closed       bool      `json:"closed"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewResponse(r *schedule.Rule) RuleResponse {
	return RuleResponse{
		ID:           r.ID,
		BusinessID:   r.BusinessID,
		DayOfWeek:    r.DayOfWeek,
		SpecificDate: r.SpecificDate,
		OpensAt:      r.OpensAt,
		ClosesAt:     r.ClosesAt,
		Closed:       r.Closed,
		CreatedAt:    r.CreatedAt,
	}
}

type CreateRequest struct {
	BusinessID   string  `json:"business_id" binding:"required,uuid"`
	DayOfWeek    *int    `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	SpecificDate *string `json:"specific_date" binding:"omitempty"`
	OpensAt      string  `json:"opens_at" binding:"omitempty"`
	ClosesAt     string  `json:"closes_at" binding:"omitempty"`
	Closed       bool    `json:"closed"`
}

type UpdateRequest struct {
	OpensAt  *string `json:"opens_at" binding:"omitempty"`
	ClosesAt *string `json:"closes_at" binding:"omitempty"`
	Closed   *bool   `json:"closed" binding:"omitempty"`
}

type ListRequest struct {
	BusinessID string `form:"business_id" binding:"required,uuid"`
}
