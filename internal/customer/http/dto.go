package http

import (
	"time"

	"github.com/mesaflow/booking-backend/internal/customer"
)

type CustomerResponse struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"business_id"`
	Name       string    `json:"name"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:         c.ID,
		BusinessID: c.BusinessID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Notes:      c.Notes,
		CreatedAt:  c.CreatedAt,
	}
}

type CreateRequest struct {
	BusinessID string  `json:"business_id" binding:"required,uuid"`
	Name       string  `json:"name" binding:"required"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"phone" binding:"omitempty,e164"`
	Notes      *string `json:"notes" binding:"omitempty"`
}

type UpdateRequest struct {
	Name  *string `json:"name" binding:"omitempty"`
	Email *string `json:"email" binding:"omitempty"`
	Phone *string `json:"phone" binding:"omitempty"`
	Notes *string `json:"notes" binding:"omitempty"`
}

type ListRequest struct {
	BusinessID string `form:"business_id" binding:"required,uuid"`
	Search     string `form:"search" binding:"omitempty"`
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}
