package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción bancaria.
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// MoneyTransaction representa un movimiento bancario ingerido desde fuera
// (sincronización bancaria). InvoiceID solo se fija tras una conciliación
// exitosa y es inmutable: reintentar la conciliación se rechaza.
type MoneyTransaction struct {
	ID              string
	TransactionType string
	Reference       string // referencia libre del pago; se compara exacta con Invoice.Number
	Amount          decimal.Decimal
	TransactedOn    time.Time // fecha valor
	InvoiceID       *string
	CreatedAt       time.Time
}
