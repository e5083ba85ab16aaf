package availability

import (
	"fmt"

	"github.com/mesaflow/booking-backend/internal/business"
)

func msgSlotFull(locale string, capacity, overlapping int) string {
	switch locale {
	case business.LocaleSpanish:
		return fmt.Sprintf("Horario completo: capacidad %d, reservas existentes %d", capacity, overlapping)
	default:
		return fmt.Sprintf("Slot full: capacity %d, existing bookings %d", capacity, overlapping)
	}
}

func msgAvailable(locale string) string {
	switch locale {
	case business.LocaleSpanish:
		return "Horario disponible"
	default:
		return "Slot available"
	}
}
