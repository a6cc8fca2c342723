package shared

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR renders an amount as Indonesian rupiah without fraction digits,
// e.g. "Rp 1.250.000".
func FormatIDR(amount float64) string {
	return idPrinter.Sprintf("Rp %.0f", amount)
}

// FormatDate renders dates the way the backoffice displays them (dd/mm/yyyy).
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// FormatDateTime adds the wall-clock time to FormatDate.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}
