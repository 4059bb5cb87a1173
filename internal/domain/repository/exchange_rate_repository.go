package repository

import (
	"time"

	"github.com/jhoicas/Facturas-api/internal/domain/entity"
)

// ExchangeRateRepository define el puerto de persistencia para cotizaciones.
type ExchangeRateRepository interface {
	// Upsert inserta o reemplaza la cotización (única por divisa y fecha).
	Upsert(rate *entity.ExchangeRate) error
	// GetByCurrencyAndDate busca la cotización exacta de esa fecha.
	// Sin fila devuelve (nil, nil): no hay fallback a la fecha más cercana.
	GetByCurrencyAndDate(currency string, date time.Time) (*entity.ExchangeRate, error)
}
