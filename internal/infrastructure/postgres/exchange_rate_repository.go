package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
)

var _ repository.ExchangeRateRepository = (*ExchangeRateRepo)(nil)

// ExchangeRateRepo implementación de ExchangeRateRepository.
type ExchangeRateRepo struct {
	q Querier
}

// NewExchangeRateRepository construye el adaptador.
func NewExchangeRateRepository(q Querier) *ExchangeRateRepo {
	return &ExchangeRateRepo{q: q}
}

// Upsert inserta o reemplaza la cotización (única por divisa y fecha).
func (r *ExchangeRateRepo) Upsert(rate *entity.ExchangeRate) error {
	if rate.ID == "" {
		rate.ID = uuid.New().String()
	}
	query := `
		INSERT INTO exchange_rates (id, currency, date, rate, amount)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (currency, date) DO UPDATE SET rate = EXCLUDED.rate, amount = EXCLUDED.amount`
	_, err := r.q.Exec(context.Background(), query,
		rate.ID, rate.Currency, rate.Date, rate.Rate, rate.Amount)
	if err != nil {
		return fmt.Errorf("upsert exchange rate: %w", err)
	}
	return nil
}

// GetByCurrencyAndDate busca la cotización exacta de esa fecha. (nil, nil)
// sin fila: no hay fallback a la fecha más cercana.
func (r *ExchangeRateRepo) GetByCurrencyAndDate(currency string, date time.Time) (*entity.ExchangeRate, error) {
	query := `
		SELECT id, currency, date, rate, amount
		FROM exchange_rates WHERE currency = $1 AND date = $2`
	var rate entity.ExchangeRate
	err := r.q.QueryRow(context.Background(), query, currency, date).Scan(
		&rate.ID, &rate.Currency, &rate.Date, &rate.Rate, &rate.Amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exchange rate: %w", err)
	}
	return &rate, nil
}
