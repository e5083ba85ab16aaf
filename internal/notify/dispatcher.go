package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mesaflow/booking-backend/internal/booking"
	"github.com/mesaflow/booking-backend/internal/business"
	"github.com/mesaflow/booking-backend/internal/customer"
)

// Dispatcher records and delivers booking notifications. Delivery is
// best-effort: a failed send is logged and marked failed, it never bubbles
// into the booking flow.
type Dispatcher struct {
	repo    Repository
	senders map[string]Sender
	log     zerolog.Logger
}

// NewDispatcher wires a dispatcher with per-channel senders. Channels
// without a sender fall back to the first one provided for logging
// deployments; pass the same LogSender for both in development.
func NewDispatcher(repo Repository, email, whatsapp Sender, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		repo: repo,
		senders: map[string]Sender{
			ChannelEmail:    email,
			ChannelWhatsApp: whatsapp,
		},
		log: log,
	}
}

// BookingConfirmed sends the confirmation message for a new booking on
// every channel the customer has contact details for.
func (d *Dispatcher) BookingConfirmed(ctx context.Context, biz *business.Business, cust *customer.Customer, b *booking.Booking) {
	body := confirmationBody(biz, b)

	if cust.Email != nil && *cust.Email != "" {
		d.dispatch(ctx, biz, b, ChannelEmail, *cust.Email, body)
	}
	if cust.Phone != nil && *cust.Phone != "" {
		d.dispatch(ctx, biz, b, ChannelWhatsApp, *cust.Phone, body)
	}
}

// BookingCancelled notifies the customer their booking was cancelled.
func (d *Dispatcher) BookingCancelled(ctx context.Context, biz *business.Business, cust *customer.Customer, b *booking.Booking) {
	body := cancellationBody(biz, b)

	if cust.Email != nil && *cust.Email != "" {
		d.dispatch(ctx, biz, b, ChannelEmail, *cust.Email, body)
	}
	if cust.Phone != nil && *cust.Phone != "" {
		d.dispatch(ctx, biz, b, ChannelWhatsApp, *cust.Phone, body)
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, biz *business.Business, b *booking.Booking, channel, recipient, body string) {
	n := &Notification{
		BusinessID: biz.ID,
		BookingID:  b.ID,
		Channel:    channel,
		Recipient:  recipient,
		Body:       body,
		Status:     StatusQueued,
	}

	if err := d.repo.Create(ctx, n); err != nil {
		d.log.Error().Err(err).Str("booking_id", b.ID).Str("channel", channel).
			Msg("recording notification failed")
		return
	}

	sender, ok := d.senders[channel]
	if !ok || sender == nil {
		d.markStatus(ctx, n, StatusFailed)
		d.log.Warn().Str("channel", channel).Msg("no sender configured for channel")
		return
	}

	if err := sender.Send(ctx, n); err != nil {
		d.markStatus(ctx, n, StatusFailed)
		d.log.Error().Err(err).Str("booking_id", b.ID).Str("channel", channel).
			Msg("sending notification failed")
		return
	}

	d.markStatus(ctx, n, StatusSent)
}

func (d *Dispatcher) markStatus(ctx context.Context, n *Notification, status string) {
	if err := d.repo.UpdateStatus(ctx, n.ID, status); err != nil {
		d.log.Error().Err(err).Str("notification_id", n.ID).Msg("updating notification status failed")
		return
	}
	n.Status = status
}

func confirmationBody(biz *business.Business, b *booking.Booking) string {
	switch biz.Locale {
	case business.LocaleSpanish:
		return fmt.Sprintf("Tu reserva en %s está confirmada. Código: %s", biz.Name, b.ConfirmationCode)
	default:
		return fmt.Sprintf("Your booking at %s is confirmed. Code: %s", biz.Name, b.ConfirmationCode)
	}
}

func cancellationBody(biz *business.Business, b *booking.Booking) string {
	switch biz.Locale {
	case business.LocaleSpanish:
		return fmt.Sprintf("Tu reserva en %s ha sido cancelada. Código: %s", biz.Name, b.ConfirmationCode)
	default:
		return fmt.Sprintf("Your booking at %s has been cancelled. Code: %s", biz.Name, b.ConfirmationCode)
	}
}
