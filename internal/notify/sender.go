package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Sender delivers one notification over its channel. Implementations wrap
// external providers (SMTP relay, WhatsApp Business API); they are injected
// into the Dispatcher so the booking flow never knows which provider runs.
type Sender interface {
	Send(ctx context.Context, n *Notification) error
}

// LogSender is the default Sender: it writes the notification to the
// structured log instead of delivering it. Useful for development and for
// deployments that have not wired a real provider yet.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, n *Notification) error {
	s.log.Info().
		Str("channel", n.Channel).
		Str("recipient", n.Recipient).
		Str("booking_id", n.BookingID).
		Str("body", n.Body).
		Msg("notification dispatched")
	return nil
}
