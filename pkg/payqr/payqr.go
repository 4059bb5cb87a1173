// Package payqr genera cargas útiles de códigos QR de pago por
// transferencia bancaria: EPC/SCT (formato "BCD", EUR) y SPAYD (CZK).
package payqr

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Formatos soportados.
const (
	FormatEPC   = "epc"   // EPC QR / SEPA Credit Transfer (EUR)
	FormatSPAYD = "spayd" // Short Payment Descriptor checo (CZK)
)

// Params agrupa los datos bancarios y de la factura que entran en la carga.
type Params struct {
	IBAN        string // puede venir con espacios; se limpian siempre
	BIC         string // opcional
	CompanyName string
	Currency    string
	Amount      decimal.Decimal
	Reference   string // número de factura (remesa / mensaje)
}

// FormatFor devuelve el formato de QR para la divisa, o cadena vacía si la
// divisa no está soportada.
func FormatFor(currency string) string {
	switch currency {
	case "EUR":
		return FormatEPC
	case "CZK":
		return FormatSPAYD
	default:
		return ""
	}
}

// Build genera la carga útil según la divisa de Params. Cadena vacía si la
// divisa no está soportada.
func Build(p Params) string {
	switch FormatFor(p.Currency) {
	case FormatEPC:
		return BuildEPC(p)
	case FormatSPAYD:
		return BuildSPAYD(p)
	default:
		return ""
	}
}

// cleanIBAN elimina todo espacio en blanco del IBAN antes de usarlo.
func cleanIBAN(iban string) string {
	return strings.Join(strings.Fields(iban), "")
}

// digitsOnly conserva solo los dígitos (símbolo variable checo).
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
