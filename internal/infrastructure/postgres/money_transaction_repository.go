package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
)

var _ repository.MoneyTransactionRepository = (*MoneyTransactionRepo)(nil)

// MoneyTransactionRepo implementación de MoneyTransactionRepository.
type MoneyTransactionRepo struct {
	q Querier
}

// NewMoneyTransactionRepository construye el adaptador.
func NewMoneyTransactionRepository(q Querier) *MoneyTransactionRepo {
	return &MoneyTransactionRepo{q: q}
}

// Create persiste una transacción ingerida desde la sincronización bancaria.
func (r *MoneyTransactionRepo) Create(t *entity.MoneyTransaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO money_transactions (id, transaction_type, reference, amount, transacted_on, invoice_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.TransactionType, t.Reference, t.Amount, t.TransactedOn,
		t.InvoiceID, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID. (nil, nil) si no existe.
func (r *MoneyTransactionRepo) GetByID(id string) (*entity.MoneyTransaction, error) {
	query := `
		SELECT id, transaction_type, reference, amount, transacted_on, invoice_id, created_at
		FROM money_transactions WHERE id = $1`
	var t entity.MoneyTransaction
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.TransactionType, &t.Reference, &t.Amount, &t.TransactedOn,
		&t.InvoiceID, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// ListUnmatchedIncome devuelve los ingresos sin factura vinculada, en orden
// de inserción.
func (r *MoneyTransactionRepo) ListUnmatchedIncome() ([]*entity.MoneyTransaction, error) {
	query := `
		SELECT id, transaction_type, reference, amount, transacted_on, invoice_id, created_at
		FROM money_transactions
		WHERE transaction_type = $1 AND invoice_id IS NULL
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, entity.TransactionTypeIncome)
	if err != nil {
		return nil, fmt.Errorf("list unmatched income: %w", err)
	}
	defer rows.Close()
	var out []*entity.MoneyTransaction
	for rows.Next() {
		var t entity.MoneyTransaction
		if err := rows.Scan(
			&t.ID, &t.TransactionType, &t.Reference, &t.Amount, &t.TransactedOn,
			&t.InvoiceID, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// LinkInvoice fija invoice_id en la transacción, solo si sigue sin vincular.
// Una transacción ya vinculada devuelve ErrConflict: el vínculo es inmutable.
func (r *MoneyTransactionRepo) LinkInvoice(transactionID, invoiceID string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE money_transactions SET invoice_id = $2 WHERE id = $1 AND invoice_id IS NULL`,
		transactionID, invoiceID)
	if err != nil {
		return fmt.Errorf("link invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}
