package schedule

import (
	"fmt"
	"time"

	"github.com/mesaflow/booking-backend/internal/business"
)

// Day names per locale, indexed by time.Weekday (0=Sunday). The validation
// logic itself only ever compares weekday indices; names are display-only.
var dayNames = map[string][7]string{
	business.LocaleEnglish: {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	business.LocaleSpanish: {"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
}

func dayName(locale string, day time.Weekday) string {
	names, ok := dayNames[locale]
	if !ok {
		names = dayNames[business.LocaleEnglish]
	}
	return names[int(day)]
}

func msgClosedDay(locale string, day time.Weekday) string {
	switch locale {
	case business.LocaleSpanish:
		return fmt.Sprintf("El negocio está cerrado los %s", dayName(locale, day))
	default:
		return fmt.Sprintf("The business is closed on %ss", dayName(locale, day))
	}
}

func msgClosedDate(locale string, date string) string {
	switch locale {
	case business.LocaleSpanish:
		return fmt.Sprintf("El negocio está cerrado el %s", date)
	default:
		return fmt.Sprintf("The business is closed on %s", date)
	}
}

func msgBeforeOpen(locale string, opensAt string) string {
	switch locale {
	case business.LocaleSpanish:
		return fmt.Sprintf("El negocio abre a las %s", opensAt)
	default:
		return fmt.Sprintf("The business opens at %s", opensAt)
	}
}

func msgAfterClose(locale string, endsAt, closesAt string) string {
	switch locale {
	case business.LocaleSpanish:
		return fmt.Sprintf("La reserva terminaría a las %s, después del cierre a las %s", endsAt, closesAt)
	default:
		return fmt.Sprintf("The booking would end at %s, after closing time %s", endsAt, closesAt)
	}
}
