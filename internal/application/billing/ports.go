// Package billing contiene los casos de uso del ciclo de vida de facturas:
// construcción de borradores, totales en moneda principal, QR de pago y
// conciliación bancaria.
package billing

import (
	"context"

	"github.com/jhoicas/Facturas-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción, entregando
// repositorios atados a la tx. Cada callback confirma o revierte completo:
// un lector concurrente nunca observa una factura a medio construir.
type TxRunner interface {
	// RunInvoice abre una transacción con los repos de facturas y registros
	// de trabajo (crear borrador, eliminar, quitar líneas, reordenar).
	RunInvoice(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		entryRepo repository.WorkEntryRepository,
	) error) error

	// RunMatching abre una transacción con los repos de facturas y
	// transacciones bancarias (conciliación, una tx por transacción).
	RunMatching(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		txnRepo repository.MoneyTransactionRepository,
	) error) error

	// RunBankAccounts abre una transacción con el repo de cuentas bancarias
	// (cambio de cuenta predeterminada).
	RunBankAccounts(ctx context.Context, fn func(
		accountRepo repository.BankAccountRepository,
	) error) error
}
