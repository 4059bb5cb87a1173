package billing

import (
	"sort"

	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Subtotal suma los importes de todas las líneas (sin IVA).
func Subtotal(items []*entity.InvoiceLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Amount)
	}
	return total
}

// TotalVAT suma el IVA de todas las líneas: Σ importe × tasa / 100.
func TotalVAT(items []*entity.InvoiceLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.VATAmount())
	}
	return total
}

// GrandTotal devuelve subtotal + IVA.
func GrandTotal(items []*entity.InvoiceLineItem) decimal.Decimal {
	return Subtotal(items).Add(TotalVAT(items))
}

// VATGroup es el desglose de IVA de una tasa concreta.
type VATGroup struct {
	Rate decimal.Decimal // tasa en porcentaje (21 = 21%)
	Base decimal.Decimal // suma de importes de las líneas con esa tasa
	VAT  decimal.Decimal // IVA adeudado a esa tasa
}

// VATTotalsByRate agrupa las líneas por tasa de IVA, en orden ascendente de
// tasa. Una tasa del 0% aparece en el desglose (con IVA cero) si alguna línea
// la lleva. La suma de los grupos coincide exactamente con TotalVAT.
func VATTotalsByRate(items []*entity.InvoiceLineItem) []VATGroup {
	byRate := make(map[string]*VATGroup)
	for _, li := range items {
		key := li.VATRate.String()
		g, ok := byRate[key]
		if !ok {
			g = &VATGroup{Rate: li.VATRate, Base: decimal.Zero, VAT: decimal.Zero}
			byRate[key] = g
		}
		g.Base = g.Base.Add(li.Amount)
		g.VAT = g.VAT.Add(li.VATAmount())
	}
	groups := make([]VATGroup, 0, len(byRate))
	for _, g := range byRate {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Rate.LessThan(groups[j].Rate)
	})
	return groups
}
