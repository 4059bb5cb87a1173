package repository

import "github.com/jhoicas/Facturas-api/internal/domain/entity"

// MoneyTransactionRepository define el puerto de persistencia para
// transacciones bancarias ingeridas desde fuera.
type MoneyTransactionRepository interface {
	Create(t *entity.MoneyTransaction) error
	GetByID(id string) (*entity.MoneyTransaction, error)
	// ListUnmatchedIncome devuelve los ingresos sin factura vinculada, en
	// orden de inserción.
	ListUnmatchedIncome() ([]*entity.MoneyTransaction, error)
	// LinkInvoice fija invoice_id en la transacción. El campo es inmutable
	// una vez fijado; el caso de uso rechaza reconciliar dos veces.
	LinkInvoice(transactionID, invoiceID string) error
}
