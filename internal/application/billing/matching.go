package billing

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/Facturas-api/internal/application/dto"
	"github.com/jhoicas/Facturas-api/internal/domain"
	domainbilling "github.com/jhoicas/Facturas-api/internal/domain/billing"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
)

// InvoiceMatchingService concilia transacciones bancarias entrantes contra
// facturas finales abiertas y cierra el ciclo marcándolas como pagadas.
type InvoiceMatchingService struct {
	txRunner TxRunner
	txnRepo  repository.MoneyTransactionRepository
}

// NewInvoiceMatchingService construye el servicio.
func NewInvoiceMatchingService(txRunner TxRunner, txnRepo repository.MoneyTransactionRepository) *InvoiceMatchingService {
	return &InvoiceMatchingService{txRunner: txRunner, txnRepo: txnRepo}
}

// Match concilia una transacción en su propia transacción de base de datos.
// Precondiciones, en orden y con corte: debe ser un ingreso, no estar ya
// conciliada, y existir una factura candidata (status=final, número igual a
// la referencia, gran total exactamente igual al importe — sin tolerancia).
// En éxito la factura pasa a paid con paid_at = fecha valor de la transacción
// y la transacción queda vinculada. Todo o nada por transacción; el fallo de
// negocio va en el resultado, no como error.
func (s *InvoiceMatchingService) Match(ctx context.Context, transactionID string) (*dto.MatchResultDTO, error) {
	result := &dto.MatchResultDTO{TransactionID: transactionID}
	err := s.txRunner.RunMatching(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		txnRepo repository.MoneyTransactionRepository,
	) error {
		txn, err := txnRepo.GetByID(transactionID)
		if err != nil {
			return err
		}
		if txn == nil {
			return domain.ErrNotFound
		}
		if txn.TransactionType != entity.TransactionTypeIncome {
			return domain.ErrNotIncome
		}
		if txn.InvoiceID != nil {
			return domain.ErrAlreadyMatched
		}
		inv, err := invoiceRepo.GetByNumber(txn.Reference)
		if err != nil {
			return err
		}
		// Un borrador nunca es candidato, aunque coincidan número e importe;
		// una factura ya pagada tampoco (su vínculo es único).
		if inv == nil || inv.Status != entity.InvoiceStatusFinal {
			return domain.ErrNoMatchingInvoice
		}
		items, err := invoiceRepo.ListLineItems(inv.ID)
		if err != nil {
			return err
		}
		if !domainbilling.GrandTotal(items).Equal(txn.Amount) {
			return domain.ErrNoMatchingInvoice
		}

		inv.Status = entity.InvoiceStatusPaid
		paidAt := txn.TransactedOn
		inv.PaidAt = &paidAt
		inv.UpdatedAt = time.Now()
		if err := invoiceRepo.Update(inv); err != nil {
			return err
		}
		if err := txnRepo.LinkInvoice(txn.ID, inv.ID); err != nil {
			return err
		}
		result.Success = true
		result.InvoiceID = inv.ID
		return nil
	})
	if err != nil {
		if isBusinessMiss(err) {
			result.Reason = err.Error()
			return result, nil
		}
		return nil, err
	}
	return result, nil
}

// MatchAll recorre todos los ingresos sin conciliar (en orden de inserción),
// cada uno en su propia transacción: el fallo de uno no revierte el resto.
func (s *InvoiceMatchingService) MatchAll(ctx context.Context) ([]dto.MatchResultDTO, error) {
	pending, err := s.txnRepo.ListUnmatchedIncome()
	if err != nil {
		return nil, err
	}
	results := make([]dto.MatchResultDTO, 0, len(pending))
	for _, txn := range pending {
		r, err := s.Match(ctx, txn.ID)
		if err != nil {
			return results, err
		}
		results = append(results, *r)
	}
	return results, nil
}

// isBusinessMiss distingue los fallos de regla de negocio (van en el
// resultado) de los errores de infraestructura (se propagan).
func isBusinessMiss(err error) bool {
	return errors.Is(err, domain.ErrNotIncome) ||
		errors.Is(err, domain.ErrAlreadyMatched) ||
		errors.Is(err, domain.ErrNoMatchingInvoice)
}
