package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project representa un proyecto de un cliente.
type Project struct {
	ID         string
	ClientID   string
	Name       string
	HourlyRate *decimal.Decimal // nil = usar la tarifa del cliente
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EffectiveHourlyRate devuelve la tarifa del proyecto o, si no tiene,
// la del cliente. Nil si ninguno define tarifa.
func (p *Project) EffectiveHourlyRate(c *Client) *decimal.Decimal {
	if p != nil && p.HourlyRate != nil {
		return p.HourlyRate
	}
	if c != nil && c.HourlyRate != nil {
		return c.HourlyRate
	}
	return nil
}
