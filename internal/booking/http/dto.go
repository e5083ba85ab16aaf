package http

import (
	"time"

	"github.com/mesaflow/booking-backend/internal/booking"
)

type BookingResponse struct {
	ID               string    `json:"id"`
	BusinessID       string    `json:"business_id"`
	CustomerID       string    `json:"customer_id"`
	TableID          *string   `json:"table_id,omitempty"`
	CombinationID    *string   `json:"combination_id,omitempty"`
	ConfirmationCode string    `json:"confirmation_code"`
	StartTime        time.Time `json:"start_time"`
	DurationMinutes  int       `json:"duration_minutes"`
	PartySize        int       `json:"party_size"`
	Status           string    `json:"status"`
	Notes            *string   `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:               b.ID,
		BusinessID:       b.BusinessID,
		CustomerID:       b.CustomerID,
		TableID:          b.TableID,
		CombinationID:    b.CombinationID,
		ConfirmationCode: b.ConfirmationCode,
		StartTime:        b.StartTime,
		DurationMinutes:  b.DurationMinutes,
		PartySize:        b.PartySize,
		Status:           b.Status,
		Notes:            b.Notes,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

type ListRequest struct {
	BusinessID string `form:"business_id" binding:"required,uuid"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled no_show"`
	From       string `form:"from" binding:"omitempty"`
	To         string `form:"to" binding:"omitempty"`
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed completed cancelled no_show"`
}
