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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, client_id, number, status, currency, issue_date, due_date,
	       period_start, period_end, notes, paid_at, total_hours, total_amount,
	       created_at, updated_at`

// Create persiste la cabecera. El constraint único sobre number se traduce a
// domain.ErrDuplicate para que el caller reintente con un número fresco.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, client_id, number, status, currency, issue_date, due_date, period_start, period_end, notes, paid_at, total_hours, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.ClientID, inv.Number, inv.Status, inv.Currency,
		inv.IssueDate, inv.DueDate, inv.PeriodStart, inv.PeriodEnd,
		inv.Notes, inv.PaidAt, inv.TotalHours, inv.TotalAmount,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de factura %q ya existe: %w", inv.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update actualiza la cabecera completa (estado, fechas, totales, notas).
func (r *InvoiceRepo) Update(inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET status       = $2,
		    currency     = $3,
		    issue_date   = $4,
		    due_date     = $5,
		    notes        = $6,
		    paid_at      = $7,
		    total_hours  = $8,
		    total_amount = $9,
		    updated_at   = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Status, inv.Currency, inv.IssueDate, inv.DueDate,
		inv.Notes, inv.PaidAt, inv.TotalHours, inv.TotalAmount, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepo) scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.ClientID, &inv.Number, &inv.Status, &inv.Currency,
		&inv.IssueDate, &inv.DueDate, &inv.PeriodStart, &inv.PeriodEnd,
		&inv.Notes, &inv.PaidAt, &inv.TotalHours, &inv.TotalAmount,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	return &inv, nil
}

// GetByID obtiene una factura por ID. (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.scanInvoice(r.q.QueryRow(context.Background(), query, id))
}

// GetByNumber obtiene una factura por su número único. (nil, nil) si no existe.
func (r *InvoiceRepo) GetByNumber(number string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE number = $1`
	return r.scanInvoice(r.q.QueryRow(context.Background(), query, number))
}

func (r *InvoiceRepo) list(query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var out []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.ClientID, &inv.Number, &inv.Status, &inv.Currency,
			&inv.IssueDate, &inv.DueDate, &inv.PeriodStart, &inv.PeriodEnd,
			&inv.Notes, &inv.PaidAt, &inv.TotalHours, &inv.TotalAmount,
			&inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}

// List devuelve todas las facturas, las más recientes primero.
func (r *InvoiceRepo) List() ([]*entity.Invoice, error) {
	return r.list(`SELECT ` + invoiceColumns + ` FROM invoices ORDER BY issue_date DESC, number DESC`)
}

// ListByClient devuelve las facturas del cliente, las más recientes primero.
func (r *InvoiceRepo) ListByClient(clientID string) ([]*entity.Invoice, error) {
	return r.list(`SELECT `+invoiceColumns+` FROM invoices WHERE client_id = $1 ORDER BY issue_date DESC, number DESC`, clientID)
}

// CountByClient cuenta las facturas del cliente (guarda de borrado).
func (r *InvoiceRepo) CountByClient(clientID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM invoices WHERE client_id = $1`, clientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return count, nil
}

// ListNumbersByYear devuelve los números existentes con prefijo "{año}-".
func (r *InvoiceRepo) ListNumbersByYear(year int) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT number FROM invoices WHERE number LIKE $1`, fmt.Sprintf("%d-%%", year))
	if err != nil {
		return nil, fmt.Errorf("list invoice numbers: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan number: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Delete elimina la cabecera. Las líneas y vínculos se eliminan antes, en la
// misma transacción.
func (r *InvoiceRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── líneas ────────────────────────────────────────────────────────────────────

// CreateLineItem persiste una línea.
func (r *InvoiceRepo) CreateLineItem(li *entity.InvoiceLineItem) error {
	if li.ID == "" {
		li.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_line_items (id, invoice_id, line_type, description, quantity, amount, vat_rate, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		li.ID, li.InvoiceID, li.LineType, li.Description, li.Quantity,
		li.Amount, li.VATRate, li.Position,
	)
	if err != nil {
		return fmt.Errorf("insert line item: %w", err)
	}
	return nil
}

// UpdateLineItem actualiza descripción, cantidad, importe e IVA de una línea.
func (r *InvoiceRepo) UpdateLineItem(li *entity.InvoiceLineItem) error {
	query := `
		UPDATE invoice_line_items
		SET description = $2,
		    quantity    = $3,
		    amount      = $4,
		    vat_rate    = $5,
		    position    = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		li.ID, li.Description, li.Quantity, li.Amount, li.VATRate, li.Position,
	)
	if err != nil {
		return fmt.Errorf("update line item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLineItemPositions persiste las posiciones de las líneas dadas. El
// índice único (invoice_id, position) es DEFERRABLE INITIALLY DEFERRED, así
// el intercambio no colisiona mientras la transacción siga abierta.
func (r *InvoiceRepo) UpdateLineItemPositions(items []*entity.InvoiceLineItem) error {
	for _, li := range items {
		tag, err := r.q.Exec(context.Background(),
			`UPDATE invoice_line_items SET position = $2 WHERE id = $1`, li.ID, li.Position)
		if err != nil {
			return fmt.Errorf("update position: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
	}
	return nil
}

// DeleteLineItem elimina una línea.
func (r *InvoiceRepo) DeleteLineItem(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM invoice_line_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete line item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetLineItem obtiene una línea por ID. (nil, nil) si no existe.
func (r *InvoiceRepo) GetLineItem(id string) (*entity.InvoiceLineItem, error) {
	query := `
		SELECT id, invoice_id, line_type, description, quantity, amount, vat_rate, position
		FROM invoice_line_items WHERE id = $1`
	var li entity.InvoiceLineItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&li.ID, &li.InvoiceID, &li.LineType, &li.Description, &li.Quantity,
		&li.Amount, &li.VATRate, &li.Position,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get line item: %w", err)
	}
	return &li, nil
}

// ListLineItems devuelve las líneas de la factura ordenadas por posición.
func (r *InvoiceRepo) ListLineItems(invoiceID string) ([]*entity.InvoiceLineItem, error) {
	query := `
		SELECT id, invoice_id, line_type, description, quantity, amount, vat_rate, position
		FROM invoice_line_items WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()
	var out []*entity.InvoiceLineItem
	for rows.Next() {
		var li entity.InvoiceLineItem
		if err := rows.Scan(
			&li.ID, &li.InvoiceID, &li.LineType, &li.Description, &li.Quantity,
			&li.Amount, &li.VATRate, &li.Position,
		); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		out = append(out, &li)
	}
	return out, rows.Err()
}

// ── vínculos línea ↔ registro de trabajo ──────────────────────────────────────

// LinkWorkEntry crea la fila de unión (par único).
func (r *InvoiceRepo) LinkWorkEntry(lineItemID, workEntryID string) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO line_item_work_entries (line_item_id, work_entry_id) VALUES ($1, $2)`,
		lineItemID, workEntryID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("vínculo repetido: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("link work entry: %w", err)
	}
	return nil
}

// ListLinkedEntryIDs devuelve los IDs de registros vinculados a la línea.
func (r *InvoiceRepo) ListLinkedEntryIDs(lineItemID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT work_entry_id FROM line_item_work_entries WHERE line_item_id = $1`, lineItemID)
	if err != nil {
		return nil, fmt.Errorf("list linked entries: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan linked entry: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// DeleteLinksByLineItem elimina los vínculos de una línea.
func (r *InvoiceRepo) DeleteLinksByLineItem(lineItemID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM line_item_work_entries WHERE line_item_id = $1`, lineItemID)
	if err != nil {
		return fmt.Errorf("delete links: %w", err)
	}
	return nil
}

// DeleteLinksByInvoice elimina los vínculos de todas las líneas de la factura.
func (r *InvoiceRepo) DeleteLinksByInvoice(invoiceID string) error {
	_, err := r.q.Exec(context.Background(), `
		DELETE FROM line_item_work_entries
		WHERE line_item_id IN (SELECT id FROM invoice_line_items WHERE invoice_id = $1)`,
		invoiceID)
	if err != nil {
		return fmt.Errorf("delete invoice links: %w", err)
	}
	return nil
}
