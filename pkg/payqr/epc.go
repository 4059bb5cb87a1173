package payqr

import "strings"

// Longitud fija de la línea del nombre del beneficiario en EPC.
const epcNameLength = 70

// BuildEPC genera la carga EPC QR (SEPA Credit Transfer, formato "BCD",
// versión 002, charset UTF-8). Campos fijos unidos por salto de línea:
//
//	BCD / 002 / 1 / SCT / BIC / nombre (70 chars) / IBAN / {CCY}{importe} / referencia
//
// Un BIC ausente deja su línea vacía; la carga sigue siendo válida. El nombre
// se trunca o rellena con espacios hasta exactamente 70 caracteres y el IBAN
// va sin espacios.
func BuildEPC(p Params) string {
	fields := []string{
		"BCD",
		"002",
		"1",
		"SCT",
		p.BIC,
		padName(p.CompanyName),
		cleanIBAN(p.IBAN),
		p.Currency + p.Amount.StringFixed(2),
		p.Reference,
	}
	return strings.Join(fields, "\n")
}

// padName ajusta el nombre a exactamente epcNameLength caracteres
// (por runas, no por bytes).
func padName(name string) string {
	runes := []rune(name)
	if len(runes) > epcNameLength {
		return string(runes[:epcNameLength])
	}
	return name + strings.Repeat(" ", epcNameLength-len(runes))
}
