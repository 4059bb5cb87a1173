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

var _ repository.WorkEntryRepository = (*WorkEntryRepo)(nil)

// WorkEntryRepo implementación de WorkEntryRepository (usable con pool o tx).
type WorkEntryRepo struct {
	q Querier
}

// NewWorkEntryRepository construye el adaptador.
func NewWorkEntryRepository(q Querier) *WorkEntryRepo {
	return &WorkEntryRepo{q: q}
}

const workEntryColumns = `id, project_id, date, description, hours, amount, hourly_rate,
	       entry_type, status, invoice_id, created_at, updated_at`

// Create persiste un registro de trabajo.
func (r *WorkEntryRepo) Create(e *entity.WorkEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO work_entries (id, project_id, date, description, hours, amount, hourly_rate, entry_type, status, invoice_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.ProjectID, e.Date, e.Description, e.Hours, e.Amount,
		e.HourlyRate, e.EntryType, e.Status, e.InvoiceID, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert work entry: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID. (nil, nil) si no existe.
func (r *WorkEntryRepo) GetByID(id string) (*entity.WorkEntry, error) {
	query := `SELECT ` + workEntryColumns + ` FROM work_entries WHERE id = $1`
	var e entity.WorkEntry
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.ProjectID, &e.Date, &e.Description, &e.Hours, &e.Amount,
		&e.HourlyRate, &e.EntryType, &e.Status, &e.InvoiceID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work entry: %w", err)
	}
	return &e, nil
}

func (r *WorkEntryRepo) list(query string, args ...any) ([]*entity.WorkEntry, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list work entries: %w", err)
	}
	defer rows.Close()
	var out []*entity.WorkEntry
	for rows.Next() {
		var e entity.WorkEntry
		if err := rows.Scan(
			&e.ID, &e.ProjectID, &e.Date, &e.Description, &e.Hours, &e.Amount,
			&e.HourlyRate, &e.EntryType, &e.Status, &e.InvoiceID, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan work entry: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// ListUnbilledByClientPeriod devuelve los registros sin facturar de los
// proyectos del cliente con fecha dentro de [from, to], por fecha ascendente.
func (r *WorkEntryRepo) ListUnbilledByClientPeriod(clientID string, from, to time.Time) ([]*entity.WorkEntry, error) {
	query := `
		SELECT ` + workEntryColumns + `
		FROM work_entries
		WHERE project_id IN (SELECT id FROM projects WHERE client_id = $1)
		  AND status = $2
		  AND date BETWEEN $3 AND $4
		ORDER BY date, created_at`
	return r.list(query, clientID, entity.EntryStatusUnbilled, from, to)
}

// ListByInvoice devuelve los registros consumidos por la factura.
func (r *WorkEntryRepo) ListByInvoice(invoiceID string) ([]*entity.WorkEntry, error) {
	query := `SELECT ` + workEntryColumns + ` FROM work_entries WHERE invoice_id = $1 ORDER BY date, created_at`
	return r.list(query, invoiceID)
}

// MarkInvoiced fija status=invoiced e invoice_id para los registros dados.
func (r *WorkEntryRepo) MarkInvoiced(ids []string, invoiceID string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(context.Background(),
		`UPDATE work_entries SET status = $1, invoice_id = $2, updated_at = now() WHERE id = ANY($3)`,
		entity.EntryStatusInvoiced, invoiceID, ids)
	if err != nil {
		return fmt.Errorf("mark invoiced: %w", err)
	}
	return nil
}

// ResetToUnbilled devuelve los registros a status=unbilled con invoice_id nulo.
func (r *WorkEntryRepo) ResetToUnbilled(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(context.Background(),
		`UPDATE work_entries SET status = $1, invoice_id = NULL, updated_at = now() WHERE id = ANY($2)`,
		entity.EntryStatusUnbilled, ids)
	if err != nil {
		return fmt.Errorf("reset to unbilled: %w", err)
	}
	return nil
}
