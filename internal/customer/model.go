package customer

import (
	"net/http"
	"time"

	"github.com/mesaflow/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "customer not found")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "name is required")
	ErrNoContact    = apperror.New(http.StatusBadRequest, "at least one of email or phone is required")
)

// Customer is a person who books with a business. Customers belong to a
// business (multi-tenant), they are not global accounts.
type Customer struct {
	ID         string
	BusinessID string
	Name       string
	Email      *string
	Phone      *string // E.164, used for WhatsApp notifications
	Notes      *string
	CreatedAt  time.Time
}

// Filter defines parameters for listing customers of a business.
type Filter struct {
	BusinessID string
	Search     string // matches name or email
	Page       int
	PageSize   int
}
