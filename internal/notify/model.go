package notify

import (
	"net/http"
	"time"

	"github.com/mesaflow/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "notification not found")
	ErrInvalidChannel = apperror.New(http.StatusBadRequest, "invalid notification channel")
)

const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
)

const (
	StatusQueued = "queued"
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Notification is one outbound message tied to a booking. The row doubles
// as the delivery log: status moves queued -> sent|failed.
type Notification struct {
	ID         string
	BusinessID string
	BookingID  string
	Channel    string
	Recipient  string
	Body       string
	Status     string
	CreatedAt  time.Time
}
