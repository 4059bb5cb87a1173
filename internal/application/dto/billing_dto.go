// Package dto define las estructuras de respuesta/resultado de los casos de uso.
package dto

import (
	"time"

	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LineItemPreviewDTO es una línea proyectada de la previsualización de factura.
type LineItemPreviewDTO struct {
	LineType     string
	Description  string
	Quantity     *decimal.Decimal // horas agregadas; nil en líneas fixed
	Amount       decimal.Decimal
	VATRate      decimal.Decimal
	WorkEntryIDs []string
}

// InvoicePreviewDTO es la proyección de solo lectura de un borrador:
// qué líneas saldrían de facturar el trabajo pendiente del período.
type InvoicePreviewDTO struct {
	ClientID     string
	ClientName   string
	Currency     *string
	PeriodStart  time.Time
	PeriodEnd    time.Time
	TotalHours   decimal.Decimal
	TotalAmount  decimal.Decimal
	LineItems    []LineItemPreviewDTO
	WorkEntryIDs []string
}

// CreateDraftResultDTO es el resultado estructurado de crear un borrador.
type CreateDraftResultDTO struct {
	Success bool
	Invoice *entity.Invoice
	Errors  []string
}

// MatchResultDTO es el resultado de conciliar una transacción: éxito con la
// factura vinculada, o el motivo tipificado del fallo.
type MatchResultDTO struct {
	TransactionID string
	Success       bool
	InvoiceID     string
	Reason        string
}

// DashboardTotalsDTO agrega facturas convertidas a la moneda principal.
// Las facturas sin cotización quedan fuera de la suma y encienden
// MissingExchangeRates para que el caller lo muestre.
type DashboardTotalsDTO struct {
	MainCurrency         string
	Total                decimal.Decimal
	InvoiceCount         int
	MissingExchangeRates bool
}

// PaymentQRDTO es la salida del generador de QR de pago.
type PaymentQRDTO struct {
	Available bool
	Format    string // payqr.FormatEPC | payqr.FormatSPAYD; vacío si no disponible
	Payload   string
	DataURL   string
}
