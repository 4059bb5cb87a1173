package repository

import "github.com/jhoicas/Facturas-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para facturas, sus
// líneas y los vínculos línea↔registro de trabajo.
type InvoiceRepository interface {
	// Create persiste la cabecera. Devuelve domain.ErrDuplicate (envuelto)
	// si el número ya existe: la columna number lleva constraint único y el
	// caller reintenta con un número fresco.
	Create(inv *entity.Invoice) error
	Update(inv *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	GetByNumber(number string) (*entity.Invoice, error)
	List() ([]*entity.Invoice, error)
	ListByClient(clientID string) ([]*entity.Invoice, error)
	CountByClient(clientID string) (int, error)
	// ListNumbersByYear devuelve los números existentes con prefijo "{año}-".
	ListNumbersByYear(year int) ([]string, error)
	Delete(id string) error

	CreateLineItem(li *entity.InvoiceLineItem) error
	UpdateLineItem(li *entity.InvoiceLineItem) error
	// UpdateLineItemPositions persiste las posiciones de las líneas dadas.
	// El índice único (invoice_id, position) es DEFERRABLE, así el
	// intercambio dentro de una transacción no colisiona.
	UpdateLineItemPositions(items []*entity.InvoiceLineItem) error
	DeleteLineItem(id string) error
	GetLineItem(id string) (*entity.InvoiceLineItem, error)
	// ListLineItems devuelve las líneas de la factura ordenadas por posición.
	ListLineItems(invoiceID string) ([]*entity.InvoiceLineItem, error)

	// LinkWorkEntry crea la fila de unión línea↔registro (par único).
	LinkWorkEntry(lineItemID, workEntryID string) error
	ListLinkedEntryIDs(lineItemID string) ([]string, error)
	DeleteLinksByLineItem(lineItemID string) error
	DeleteLinksByInvoice(invoiceID string) error
}
