package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura. La transición es monótona: draft → final → paid.
// Solo un borrador es editable o eliminable; solo una factura final puede
// marcarse como pagada.
const (
	InvoiceStatusDraft = "draft"
	InvoiceStatusFinal = "final"
	InvoiceStatusPaid  = "paid"
)

// Invoice representa la cabecera de una factura.
//
// Number sigue el formato "{año}-{secuencia}" (ej. "2024-001") y es único.
// TotalHours y TotalAmount se calculan desde los registros de trabajo al crear
// el borrador (no desde las líneas, que pueden editarse después).
type Invoice struct {
	ID          string
	ClientID    string
	Number      string
	Status      string
	Currency    *string // heredada del cliente al crear; nil = sin definir
	IssueDate   time.Time
	DueDate     time.Time
	PeriodStart time.Time
	PeriodEnd   time.Time
	Notes       string
	PaidAt      *time.Time // fecha valor de la transacción que la saldó
	TotalHours  decimal.Decimal
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsDraft indica si la factura sigue siendo editable.
func (i *Invoice) IsDraft() bool { return i.Status == InvoiceStatusDraft }

// Tipos de línea de factura.
const (
	LineTypeTimeAggregate = "time_aggregate" // horas de un proyecto agregadas en una línea
	LineTypeFixed         = "fixed"          // una línea por registro de importe fijo
)

// InvoiceLineItem representa una línea de factura, ordenada por Position
// (base cero, única por factura).
type InvoiceLineItem struct {
	ID          string
	InvoiceID   string
	LineType    string
	Description string
	Quantity    *decimal.Decimal // horas agregadas; nil en líneas fixed
	Amount      decimal.Decimal
	VATRate     decimal.Decimal // porcentaje (21 = 21%)
	Position    int
}

// Pos y SetPos implementan billing.Positioned para el gestor de orden.
func (li *InvoiceLineItem) Pos() int       { return li.Position }
func (li *InvoiceLineItem) SetPos(pos int) { li.Position = pos }

// VATAmount devuelve el IVA de la línea: importe × tasa / 100.
func (li *InvoiceLineItem) VATAmount() decimal.Decimal {
	return li.Amount.Mul(li.VATRate).Div(decimal.NewFromInt(100))
}
