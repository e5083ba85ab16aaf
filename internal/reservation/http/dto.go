package http

import (
	"time"

	"github.com/mesaflow/booking-backend/internal/availability"
	"github.com/mesaflow/booking-backend/internal/booking"
	"github.com/mesaflow/booking-backend/internal/reservation"
)

type AvailabilityRequest struct {
	Date            string `form:"date" binding:"required"`
	Time            string `form:"time" binding:"required"`
	DurationMinutes int    `form:"duration_minutes,default=90" binding:"omitempty,min=1"`
}

type AvailabilityResponse struct {
	Available           bool     `json:"available"`
	HasConflict         bool     `json:"has_conflict"`
	WithinBusinessHours bool     `json:"within_business_hours"`
	Message             string   `json:"message"`
	SuggestedTimes      []string `json:"suggested_times,omitempty"`
}

func NewAvailabilityResponse(r *availability.Result) AvailabilityResponse {
	return AvailabilityResponse{
		Available:           r.Available,
		HasConflict:         r.HasConflict,
		WithinBusinessHours: r.WithinBusinessHours,
		Message:             r.Message,
		SuggestedTimes:      r.SuggestedTimes,
	}
}

type CreateRequest struct {
	BusinessID      string  `json:"business_id" binding:"required,uuid"`
	CustomerID      string  `json:"customer_id" binding:"required,uuid"`
	Date            string  `json:"date" binding:"required"`
	Time            string  `json:"time" binding:"required"`
	PartySize       int     `json:"party_size" binding:"required,min=1"`
	DurationMinutes int     `json:"duration_minutes,default=90" binding:"omitempty,min=1"`
	PreferredZone   string  `json:"preferred_zone" binding:"omitempty"`
	Notes           *string `json:"notes" binding:"omitempty"`
}

type ReservationResponse struct {
	ConfirmationCode string    `json:"confirmation_code"`
	BusinessID       string    `json:"business_id"`
	TableID          *string   `json:"table_id,omitempty"`
	CombinationID    *string   `json:"combination_id,omitempty"`
	StartTime        time.Time `json:"start_time"`
	DurationMinutes  int       `json:"duration_minutes"`
	PartySize        int       `json:"party_size"`
	Status           string    `json:"status"`
}

func NewReservationResponse(b *booking.Booking) ReservationResponse {
	return ReservationResponse{
		ConfirmationCode: b.ConfirmationCode,
		BusinessID:       b.BusinessID,
		TableID:          b.TableID,
		CombinationID:    b.CombinationID,
		StartTime:        b.StartTime,
		DurationMinutes:  b.DurationMinutes,
		PartySize:        b.PartySize,
		Status:           b.Status,
	}
}

type CreateResponse struct {
	Created        bool                 `json:"created"`
	Reservation    *ReservationResponse `json:"reservation,omitempty"`
	Message        string               `json:"message"`
	SuggestedTimes []string             `json:"suggested_times,omitempty"`
}

func NewCreateResponse(o *reservation.Outcome) CreateResponse {
	resp := CreateResponse{
		Created:        o.Created,
		Message:        o.Message,
		SuggestedTimes: o.SuggestedTimes,
	}
	if o.Booking != nil {
		r := NewReservationResponse(o.Booking)
		resp.Reservation = &r
	}
	return resp
}
