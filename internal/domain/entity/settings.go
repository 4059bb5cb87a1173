package entity

import "github.com/shopspring/decimal"

// SettingsID es el id fijo de la única fila de configuración.
const SettingsID = "default"

// Settings agrupa la identidad de la empresa y los valores por defecto del
// libro. Es una fila única creada explícitamente por el bootstrap
// (cmd/migrate); ningún getter la crea de forma implícita.
type Settings struct {
	ID             string
	CompanyName    string
	MainCurrency   string // moneda de reporte del libro (ISO 4217)
	DefaultVATRate decimal.Decimal
	IBAN           string // cuenta por defecto para los códigos QR de pago
	BIC            string
}
