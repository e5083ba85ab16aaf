package assignment

import (
	"fmt"

	"github.com/mesaflow/booking-backend/internal/business"
)

func msgAssigned(locale, tableName string, partySize int) string {
	switch locale {
	case business.LocaleSpanish:
		return fmt.Sprintf("Mesa %s asignada para %d personas", tableName, partySize)
	default:
		return fmt.Sprintf("Table %s assigned for a party of %d", tableName, partySize)
	}
}

func msgCombinationAssigned(locale, comboName string, partySize int) string {
	switch locale {
	case business.LocaleSpanish:
		return fmt.Sprintf("Combinación de mesas %s asignada para %d personas", comboName, partySize)
	default:
		return fmt.Sprintf("Table combination %s assigned for a party of %d", comboName, partySize)
	}
}

func msgNoTableAvailable(locale string, partySize int) string {
	switch locale {
	case business.LocaleSpanish:
		return fmt.Sprintf("No hay mesas disponibles para %d personas en ese horario", partySize)
	default:
		return fmt.Sprintf("No tables available for a party of %d at that time", partySize)
	}
}

func msgNoTableFits(locale string, partySize int) string {
	switch locale {
	case business.LocaleSpanish:
		return fmt.Sprintf("Ninguna mesa puede acomodar %d personas", partySize)
	default:
		return fmt.Sprintf("No table can seat a party of %d", partySize)
	}
}

func msgInternal(locale string) string {
	switch locale {
	case business.LocaleSpanish:
		return "No se pudo asignar una mesa en este momento"
	default:
		return "Table assignment is temporarily unavailable"
	}
}
