package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Facturas-api/internal/application/billing"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
)

var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, pasando
// repos atados a la tx. Commit solo si fn devuelve nil; cualquier error hace
// Rollback completo.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(tx Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunInvoice abre una transacción con los repos de facturas y registros de
// trabajo (crear borradores, editarlos, eliminarlos).
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	entryRepo repository.WorkEntryRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(NewInvoiceRepository(tx), NewWorkEntryRepository(tx))
	})
}

// RunMatching abre una transacción con los repos de facturas y transacciones
// bancarias (conciliación: todo o nada por transacción).
func (r *TxRunner) RunMatching(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	txnRepo repository.MoneyTransactionRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(NewInvoiceRepository(tx), NewMoneyTransactionRepository(tx))
	})
}

// RunBankAccounts abre una transacción con el repo de cuentas bancarias
// (rotación de la cuenta predeterminada).
func (r *TxRunner) RunBankAccounts(ctx context.Context, fn func(
	accountRepo repository.BankAccountRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(NewBankAccountRepository(tx))
	})
}
