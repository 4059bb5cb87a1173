package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate representa la cotización de una divisa en una fecha concreta,
// única por (Currency, Date).
//
// Rate se expresa como "Rate unidades de la moneda principal por Amount
// unidades de Currency". Amount admite cotización por lotes: JPY suele
// cotizarse por 100 (Amount=100).
type ExchangeRate struct {
	ID       string
	Currency string
	Date     time.Time
	Rate     decimal.Decimal
	Amount   decimal.Decimal
}
