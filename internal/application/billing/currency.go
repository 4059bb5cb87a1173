package billing

import (
	"fmt"

	"github.com/jhoicas/Facturas-api/internal/application/dto"
	domainbilling "github.com/jhoicas/Facturas-api/internal/domain/billing"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Precisión de redondeo del importe convertido (unidad menor de la divisa).
const conversionScale = 2

// CurrencyConverter convierte el total de una factura a la moneda principal
// del libro usando cotizaciones con fecha exacta.
type CurrencyConverter struct {
	rateRepo     repository.ExchangeRateRepository
	settingsRepo repository.SettingsRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewCurrencyConverter construye el conversor.
func NewCurrencyConverter(
	rateRepo repository.ExchangeRateRepository,
	settingsRepo repository.SettingsRepository,
	invoiceRepo repository.InvoiceRepository,
) *CurrencyConverter {
	return &CurrencyConverter{
		rateRepo:     rateRepo,
		settingsRepo: settingsRepo,
		invoiceRepo:  invoiceRepo,
	}
}

func (c *CurrencyConverter) mainCurrency() (string, error) {
	settings, err := c.settingsRepo.Get()
	if err != nil {
		return "", err
	}
	if settings == nil {
		return "", fmt.Errorf("configuración no inicializada: falta el bootstrap")
	}
	return settings.MainCurrency, nil
}

// MainCurrencyAmount devuelve el gran total de la factura en la moneda
// principal. Nil (sin error) cuando no se puede convertir: divisa sin definir
// o sin cotización para la fecha de emisión exacta (nunca se usa la fecha más
// cercana). El caller debe tratar nil como "no convertible", no como cero.
// Con la divisa igual a la principal se devuelve el total sin consultar nada.
func (c *CurrencyConverter) MainCurrencyAmount(inv *entity.Invoice, items []*entity.InvoiceLineItem) (*decimal.Decimal, error) {
	if inv.Currency == nil {
		return nil, nil
	}
	main, err := c.mainCurrency()
	if err != nil {
		return nil, err
	}
	grand := domainbilling.GrandTotal(items)
	if *inv.Currency == main {
		return &grand, nil
	}
	rate, err := c.rateRepo.GetByCurrencyAndDate(*inv.Currency, inv.IssueDate)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, nil
	}
	// rate/amount admite cotización por lotes (ej. JPY por 100).
	converted := grand.Mul(rate.Rate).Div(rate.Amount).Round(conversionScale)
	return &converted, nil
}

// DashboardTotals suma todas las facturas convertidas a la moneda principal.
// Una factura sin cotización queda fuera de la suma y enciende
// MissingExchangeRates; una factura sin divisa queda fuera sin encender nada.
func (c *CurrencyConverter) DashboardTotals() (*dto.DashboardTotalsDTO, error) {
	main, err := c.mainCurrency()
	if err != nil {
		return nil, err
	}
	invoices, err := c.invoiceRepo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.DashboardTotalsDTO{MainCurrency: main, Total: decimal.Zero}
	for _, inv := range invoices {
		if inv.Currency == nil {
			continue
		}
		items, err := c.invoiceRepo.ListLineItems(inv.ID)
		if err != nil {
			return nil, err
		}
		amount, err := c.MainCurrencyAmount(inv, items)
		if err != nil {
			return nil, err
		}
		if amount == nil {
			out.MissingExchangeRates = true
			continue
		}
		out.Total = out.Total.Add(*amount)
		out.InvoiceCount++
	}
	return out, nil
}
