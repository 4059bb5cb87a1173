package repository

import (
	"time"

	"github.com/jhoicas/Facturas-api/internal/domain/entity"
)

// WorkEntryRepository define el puerto de persistencia para registros de trabajo.
type WorkEntryRepository interface {
	Create(e *entity.WorkEntry) error
	GetByID(id string) (*entity.WorkEntry, error)
	// ListUnbilledByClientPeriod devuelve los registros sin facturar de los
	// proyectos del cliente con fecha dentro de [from, to], ordenados por
	// fecha ascendente.
	ListUnbilledByClientPeriod(clientID string, from, to time.Time) ([]*entity.WorkEntry, error)
	ListByInvoice(invoiceID string) ([]*entity.WorkEntry, error)
	// MarkInvoiced fija status=invoiced e invoice_id para los registros dados.
	MarkInvoiced(ids []string, invoiceID string) error
	// ResetToUnbilled devuelve los registros a status=unbilled con invoice_id nulo.
	ResetToUnbilled(ids []string) error
}
