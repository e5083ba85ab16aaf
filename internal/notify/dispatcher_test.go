package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mesaflow/booking-backend/internal/booking"
	"github.com/mesaflow/booking-backend/internal/business"
	"github.com/mesaflow/booking-backend/internal/customer"
)

type fakeRepo struct {
	created []*Notification
	nextID  int
}

func (f *fakeRepo) Create(_ context.Context, n *Notification) error {
	f.nextID++
	n.ID = string(rune('a' + f.nextID))
	f.created = append(f.created, n)
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id, status string) error {
	for _, n := range f.created {
		if n.ID == id {
			n.Status = status
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeRepo) ListByBooking(_ context.Context, bookingID string) ([]*Notification, error) {
	var out []*Notification
	for _, n := range f.created {
		if n.BookingID == bookingID {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeSender struct {
	sent []*Notification
	err  error
}

func (f *fakeSender) Send(_ context.Context, n *Notification) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

func strPtr(s string) *string { return &s }

func fixtures() (*business.Business, *customer.Customer, *booking.Booking) {
	biz := &business.Business{ID: "biz-1", Name: "La Terraza", Locale: business.LocaleEnglish}
	cust := &customer.Customer{
		ID: "cust-1", BusinessID: "biz-1", Name: "Ana",
		Email: strPtr("ana@example.com"), Phone: strPtr("+34600111222"),
	}
	b := &booking.Booking{ID: "bk-1", BusinessID: "biz-1", ConfirmationCode: "RES-1234"}
	return biz, cust, b
}

func TestBookingConfirmedSendsOnAllChannels(t *testing.T) {
	repo := &fakeRepo{}
	email := &fakeSender{}
	whatsapp := &fakeSender{}
	d := NewDispatcher(repo, email, whatsapp, zerolog.Nop())

	biz, cust, b := fixtures()
	d.BookingConfirmed(context.Background(), biz, cust, b)

	require.Len(t, email.sent, 1)
	require.Len(t, whatsapp.sent, 1)
	require.Equal(t, "ana@example.com", email.sent[0].Recipient)
	require.Equal(t, "+34600111222", whatsapp.sent[0].Recipient)
	require.Contains(t, email.sent[0].Body, "RES-1234")

	for _, n := range repo.created {
		require.Equal(t, StatusSent, n.Status)
	}
}

func TestBookingConfirmedSkipsMissingContacts(t *testing.T) {
	repo := &fakeRepo{}
	email := &fakeSender{}
	whatsapp := &fakeSender{}
	d := NewDispatcher(repo, email, whatsapp, zerolog.Nop())

	biz, cust, b := fixtures()
	cust.Phone = nil
	d.BookingConfirmed(context.Background(), biz, cust, b)

	require.Len(t, email.sent, 1)
	require.Empty(t, whatsapp.sent)
}

func TestSendFailureRecordedNotPropagated(t *testing.T) {
	repo := &fakeRepo{}
	email := &fakeSender{err: errors.New("smtp unreachable")}
	whatsapp := &fakeSender{}
	d := NewDispatcher(repo, email, whatsapp, zerolog.Nop())

	biz, cust, b := fixtures()
	// Must not panic or return an error; the failure lands in the log row.
	d.BookingConfirmed(context.Background(), biz, cust, b)

	var emailStatus, whatsappStatus string
	for _, n := range repo.created {
		switch n.Channel {
		case ChannelEmail:
			emailStatus = n.Status
		case ChannelWhatsApp:
			whatsappStatus = n.Status
		}
	}
	require.Equal(t, StatusFailed, emailStatus)
	require.Equal(t, StatusSent, whatsappStatus)
}

func TestSpanishBody(t *testing.T) {
	repo := &fakeRepo{}
	email := &fakeSender{}
	d := NewDispatcher(repo, email, &fakeSender{}, zerolog.Nop())

	biz, cust, b := fixtures()
	biz.Locale = business.LocaleSpanish
	d.BookingConfirmed(context.Background(), biz, cust, b)

	require.Contains(t, email.sent[0].Body, "Tu reserva en La Terraza")
}
