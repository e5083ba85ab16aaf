package business

import (
	"net/http"
	"time"

	"github.com/mesaflow/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "business not found")
	ErrNameRequired      = apperror.New(http.StatusBadRequest, "name is required")
	ErrInvalidTimezone   = apperror.New(http.StatusBadRequest, "timezone must be a valid IANA zone")
	ErrInvalidCapacity   = apperror.New(http.StatusBadRequest, "max capacity must be at least 1")
	ErrUserAlreadyMember = apperror.New(http.StatusConflict, "user is already a member of this business")
	ErrMemberNotFound    = apperror.New(http.StatusNotFound, "member not found")
)

// Roles a staff account can hold within a business.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Supported message locales. Availability and hours messages are shown to
// end customers verbatim, so each business picks the language.
const (
	LocaleEnglish = "en"
	LocaleSpanish = "es"
)

// Business is a tenant: a salon, restaurant or clinic taking bookings.
type Business struct {
	ID       string // UUID
	Name     string
	Timezone string // IANA zone, e.g. "Europe/Madrid"
	Locale   string // "en" or "es"

	// MaxCapacity is the per-slot capacity: how many active bookings may
	// overlap at any instant. Minimum 1.
	MaxCapacity int

	// ZoneFillOrder ranks table zones by fill preference, earliest first
	// (e.g. ["salon", "terrace"]). Used by the assignment engine.
	ZoneFillOrder []string

	IsActive  bool
	CreatedAt time.Time
}

// EffectiveCapacity returns MaxCapacity, defaulting to 1 when the record
// predates the capacity column or was stored with a zero value.
func (b *Business) EffectiveCapacity() int {
	if b.MaxCapacity < 1 {
		return 1
	}
	return b.MaxCapacity
}

// Member is a staff account with a role within a business.
type Member struct {
	UserID      string
	Email       string
	DisplayName *string
	Role        string
}

// Filter defines parameters for listing businesses.
type Filter struct {
	Page     int
	PageSize int
}
