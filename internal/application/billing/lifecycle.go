package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Facturas-api/internal/domain"
	domainbilling "github.com/jhoicas/Facturas-api/internal/domain/billing"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
)

// InvoiceLifecycle gobierna las transiciones de estado de la factura
// (draft → final → paid, sin vuelta atrás) y la edición de borradores.
type InvoiceLifecycle struct {
	txRunner    TxRunner
	invoiceRepo repository.InvoiceRepository
	entryRepo   repository.WorkEntryRepository
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
}

// NewInvoiceLifecycle construye el caso de uso.
func NewInvoiceLifecycle(
	txRunner TxRunner,
	invoiceRepo repository.InvoiceRepository,
	entryRepo repository.WorkEntryRepository,
	clientRepo repository.ClientRepository,
	projectRepo repository.ProjectRepository,
) *InvoiceLifecycle {
	return &InvoiceLifecycle{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		entryRepo:   entryRepo,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
	}
}

func (l *InvoiceLifecycle) get(id string) (*entity.Invoice, error) {
	inv, err := l.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// Finalize pasa un borrador a final. Una factura ya finalizada (o pagada)
// devuelve ErrAlreadyFinalized sin mutación.
func (l *InvoiceLifecycle) Finalize(ctx context.Context, invoiceID string) error {
	inv, err := l.get(invoiceID)
	if err != nil {
		return err
	}
	if !inv.IsDraft() {
		return domain.ErrAlreadyFinalized
	}
	inv.Status = entity.InvoiceStatusFinal
	inv.UpdatedAt = time.Now()
	return l.invoiceRepo.Update(inv)
}

// MarkAsPaid pasa una factura final a pagada con la fecha valor dada (la de
// la transacción que la salda, no "ahora"). Solo final puede pagarse.
func (l *InvoiceLifecycle) MarkAsPaid(ctx context.Context, invoiceID string, paidAt time.Time) error {
	inv, err := l.get(invoiceID)
	if err != nil {
		return err
	}
	if inv.Status != entity.InvoiceStatusFinal {
		return domain.ErrInvoiceNotFinal
	}
	inv.Status = entity.InvoiceStatusPaid
	inv.PaidAt = &paidAt
	inv.UpdatedAt = time.Now()
	return l.invoiceRepo.Update(inv)
}

// DeleteDraft elimina un borrador con sus líneas y vínculos, devolviendo cada
// registro de trabajo a unbilled con invoice_id nulo. Los registros no se
// eliminan. Facturas finales o pagadas no son eliminables.
func (l *InvoiceLifecycle) DeleteDraft(ctx context.Context, invoiceID string) error {
	inv, err := l.get(invoiceID)
	if err != nil {
		return err
	}
	if !inv.IsDraft() {
		return domain.ErrInvoiceNotEditable
	}
	return l.txRunner.RunInvoice(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		entryRepo repository.WorkEntryRepository,
	) error {
		entries, err := entryRepo.ListByInvoice(invoiceID)
		if err != nil {
			return err
		}
		entryIDs := make([]string, 0, len(entries))
		for _, e := range entries {
			entryIDs = append(entryIDs, e.ID)
		}
		items, err := invoiceRepo.ListLineItems(invoiceID)
		if err != nil {
			return err
		}
		if err := invoiceRepo.DeleteLinksByInvoice(invoiceID); err != nil {
			return err
		}
		for _, li := range items {
			if err := invoiceRepo.DeleteLineItem(li.ID); err != nil {
				return err
			}
		}
		if err := invoiceRepo.Delete(invoiceID); err != nil {
			return err
		}
		return entryRepo.ResetToUnbilled(entryIDs)
	})
}

// RemoveLineItem quita una línea de un borrador y devuelve a unbilled los
// registros que solo estaban vinculados a través de esa línea. Los totales de
// la factura se recalculan desde los registros que quedan.
func (l *InvoiceLifecycle) RemoveLineItem(ctx context.Context, invoiceID, lineItemID string) error {
	inv, err := l.get(invoiceID)
	if err != nil {
		return err
	}
	if !inv.IsDraft() {
		return domain.ErrInvoiceNotEditable
	}
	client, err := l.clientRepo.GetByID(inv.ClientID)
	if err != nil {
		return err
	}
	projects, err := l.projectRepo.ListByClient(inv.ClientID)
	if err != nil {
		return err
	}
	byID := make(map[string]*entity.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}
	return l.txRunner.RunInvoice(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		entryRepo repository.WorkEntryRepository,
	) error {
		li, err := invoiceRepo.GetLineItem(lineItemID)
		if err != nil {
			return err
		}
		if li == nil || li.InvoiceID != invoiceID {
			return domain.ErrNotFound
		}
		entryIDs, err := invoiceRepo.ListLinkedEntryIDs(lineItemID)
		if err != nil {
			return err
		}
		if err := invoiceRepo.DeleteLinksByLineItem(lineItemID); err != nil {
			return err
		}
		if err := invoiceRepo.DeleteLineItem(lineItemID); err != nil {
			return err
		}
		if err := entryRepo.ResetToUnbilled(entryIDs); err != nil {
			return err
		}
		remaining, err := entryRepo.ListByInvoice(invoiceID)
		if err != nil {
			return err
		}
		inv.TotalHours, inv.TotalAmount = entryTotals(remaining, byID, client)
		inv.UpdatedAt = time.Now()
		return invoiceRepo.Update(inv)
	})
}

// AddLineItem añade una línea manual al final de un borrador, con la
// siguiente posición libre.
func (l *InvoiceLifecycle) AddLineItem(ctx context.Context, invoiceID string, li *entity.InvoiceLineItem) error {
	inv, err := l.get(invoiceID)
	if err != nil {
		return err
	}
	if !inv.IsDraft() {
		return domain.ErrInvoiceNotEditable
	}
	return l.txRunner.RunInvoice(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.WorkEntryRepository,
	) error {
		items, err := invoiceRepo.ListLineItems(invoiceID)
		if err != nil {
			return err
		}
		if li.ID == "" {
			li.ID = uuid.New().String()
		}
		li.InvoiceID = invoiceID
		li.Position = domainbilling.NextPosition(items)
		return invoiceRepo.CreateLineItem(li)
	})
}

// UpdateLineItem edita una línea de un borrador (descripción, importe, IVA).
// La posición se cambia solo vía ReorderLineItem.
func (l *InvoiceLifecycle) UpdateLineItem(ctx context.Context, invoiceID string, li *entity.InvoiceLineItem) error {
	inv, err := l.get(invoiceID)
	if err != nil {
		return err
	}
	if !inv.IsDraft() {
		return domain.ErrInvoiceNotEditable
	}
	if li.InvoiceID != invoiceID {
		return domain.ErrInvalidInput
	}
	return l.invoiceRepo.UpdateLineItem(li)
}

// ReorderLineItem mueve una línea una posición hacia arriba o abajo
// ("up"/"down"). Devuelve false sin mutación si el movimiento no procede
// (primera línea hacia arriba, última hacia abajo, dirección desconocida).
func (l *InvoiceLifecycle) ReorderLineItem(ctx context.Context, invoiceID, lineItemID, direction string) (bool, error) {
	inv, err := l.get(invoiceID)
	if err != nil {
		return false, err
	}
	if !inv.IsDraft() {
		return false, domain.ErrInvoiceNotEditable
	}
	moved := false
	err = l.txRunner.RunInvoice(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.WorkEntryRepository,
	) error {
		items, err := invoiceRepo.ListLineItems(invoiceID)
		if err != nil {
			return err
		}
		var target *entity.InvoiceLineItem
		for _, li := range items {
			if li.ID == lineItemID {
				target = li
				break
			}
		}
		if target == nil {
			return domain.ErrNotFound
		}
		if !domainbilling.Reorder(items, target, direction) {
			return nil
		}
		moved = true
		return invoiceRepo.UpdateLineItemPositions(items)
	})
	return moved, err
}
