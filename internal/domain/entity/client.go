package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client representa un cliente del freelancer o la agencia.
//
// PaymentTermsDays es el plazo de pago en días (campo estructurado; el texto
// libre tipo "Net 30" del sistema anterior ya no se interpreta). Nil significa
// sin plazo: la fecha de vencimiento por defecto es la fecha de emisión.
type Client struct {
	ID              string
	Name            string
	Currency        *string          // moneda de facturación (ISO 4217); nil = sin definir
	HourlyRate      *decimal.Decimal // tarifa por hora por defecto para sus proyectos
	PaymentTermsDays *int
	DefaultVATRate  decimal.Decimal // IVA por defecto de las líneas (porcentaje, ej. 21)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
