package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de registro de trabajo.
const (
	EntryTypeTime  = "time"  // horas trabajadas (se factura por tarifa)
	EntryTypeFixed = "fixed" // importe fijo acordado
)

// Estados de un registro de trabajo.
const (
	EntryStatusUnbilled = "unbilled"
	EntryStatusInvoiced = "invoiced"
)

// WorkEntry representa trabajo facturable: horas de un proyecto o un importe fijo.
// Invariante: al menos uno de Hours/Amount debe estar presente.
type WorkEntry struct {
	ID          string
	ProjectID   string
	Date        time.Time
	Description string
	Hours       *decimal.Decimal
	Amount      *decimal.Decimal // importe explícito; tiene prioridad sobre horas × tarifa
	HourlyRate  *decimal.Decimal // tarifa propia del registro; nil = tarifa efectiva del proyecto
	EntryType   string           // time | fixed (derivado antes de validar)
	Status      string           // unbilled | invoiced
	InvoiceID   *string          // factura que lo consumió; nil mientras esté sin facturar
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DeriveEntryType fija EntryType a partir de los campos presentes: time si hay
// horas, fixed si solo hay importe. Con ambos presentes gana time (precio a
// medida sobre horas registradas). Debe ejecutarse antes de validar campos.
func (e *WorkEntry) DeriveEntryType() {
	if e.Hours != nil {
		e.EntryType = EntryTypeTime
		return
	}
	if e.Amount != nil {
		e.EntryType = EntryTypeFixed
	}
}

// EffectiveRate resuelve la tarifa aplicable: la del registro, si no la del
// proyecto, si no la del cliente. Nil si ninguna está definida.
func (e *WorkEntry) EffectiveRate(p *Project, c *Client) *decimal.Decimal {
	if e.HourlyRate != nil {
		return e.HourlyRate
	}
	return p.EffectiveHourlyRate(c)
}

// CalculatedAmount devuelve el importe facturable del registro: el importe
// explícito si existe, si no horas × tarifa efectiva. Nil cuando no hay
// importe ni tarifa con la que calcular (el caller decide cómo degradar).
func (e *WorkEntry) CalculatedAmount(p *Project, c *Client) *decimal.Decimal {
	if e.Amount != nil {
		return e.Amount
	}
	if e.Hours == nil {
		return nil
	}
	rate := e.EffectiveRate(p, c)
	if rate == nil {
		return nil
	}
	v := e.Hours.Mul(*rate)
	return &v
}
