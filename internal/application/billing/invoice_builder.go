package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Facturas-api/internal/application/dto"
	"github.com/jhoicas/Facturas-api/internal/domain"
	domainbilling "github.com/jhoicas/Facturas-api/internal/domain/billing"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Intentos de creación ante colisión del número de factura: dos peticiones
// concurrentes pueden calcular el mismo "siguiente número"; el constraint
// único hace fallar a una y aquí se reintenta con un número fresco.
const maxNumberAttempts = 3

// InvoiceBuilder agrega el trabajo sin facturar de un cliente en un período y
// lo convierte en un borrador de factura con sus líneas.
type InvoiceBuilder struct {
	txRunner    TxRunner
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
	entryRepo   repository.WorkEntryRepository
}

// NewInvoiceBuilder construye el caso de uso.
func NewInvoiceBuilder(
	txRunner TxRunner,
	clientRepo repository.ClientRepository,
	projectRepo repository.ProjectRepository,
	entryRepo repository.WorkEntryRepository,
) *InvoiceBuilder {
	return &InvoiceBuilder{
		txRunner:    txRunner,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		entryRepo:   entryRepo,
	}
}

// DraftParams son los parámetros de previsualización y creación de borrador.
// IssueDate nulo es hoy; DueDate nulo es emisión + plazo del cliente (sin
// plazo definido, la fecha de vencimiento queda igual a la de emisión).
type DraftParams struct {
	ClientID    string
	PeriodStart time.Time
	PeriodEnd   time.Time
	IssueDate   *time.Time
	DueDate     *time.Time
	Notes       string
}

// draftData es el material de trabajo cargado una sola vez: cliente,
// proyectos indexados y registros sin facturar del período.
type draftData struct {
	client   *entity.Client
	projects map[string]*entity.Project
	entries  []*entity.WorkEntry
}

func (b *InvoiceBuilder) load(p DraftParams) (*draftData, error) {
	if p.ClientID == "" || p.PeriodStart.IsZero() || p.PeriodEnd.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if p.PeriodEnd.Before(p.PeriodStart) {
		return nil, fmt.Errorf("el período termina antes de empezar: %w", domain.ErrInvalidInput)
	}
	client, err := b.clientRepo.GetByID(p.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	projects, err := b.projectRepo.ListByClient(p.ClientID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Project, len(projects))
	for _, pr := range projects {
		byID[pr.ID] = pr
	}
	entries, err := b.entryRepo.ListUnbilledByClientPeriod(p.ClientID, p.PeriodStart, p.PeriodEnd)
	if err != nil {
		return nil, err
	}
	return &draftData{client: client, projects: byID, entries: entries}, nil
}

// UnbilledEntries devuelve los registros sin facturar del cliente dentro del
// período, ordenados por fecha ascendente.
func (b *InvoiceBuilder) UnbilledEntries(p DraftParams) ([]*entity.WorkEntry, error) {
	data, err := b.load(p)
	if err != nil {
		return nil, err
	}
	return data.entries, nil
}

// TotalHours suma las horas sin facturar del período (solo registros time).
func (b *InvoiceBuilder) TotalHours(p DraftParams) (decimal.Decimal, error) {
	data, err := b.load(p)
	if err != nil {
		return decimal.Zero, err
	}
	hours, _ := entryTotals(data.entries, data.projects, data.client)
	return hours, nil
}

// TotalAmount suma el importe facturable sin facturar del período.
func (b *InvoiceBuilder) TotalAmount(p DraftParams) (decimal.Decimal, error) {
	data, err := b.load(p)
	if err != nil {
		return decimal.Zero, err
	}
	_, amount := entryTotals(data.entries, data.projects, data.client)
	return amount, nil
}

// entryTotals suma horas (solo registros time) e importe facturable (todos
// los registros; un importe incalculable por falta de tarifa contribuye 0).
func entryTotals(entries []*entity.WorkEntry, projects map[string]*entity.Project, client *entity.Client) (hours, amount decimal.Decimal) {
	hours, amount = decimal.Zero, decimal.Zero
	for _, e := range entries {
		if e.EntryType == entity.EntryTypeTime && e.Hours != nil {
			hours = hours.Add(*e.Hours)
		}
		if calc := e.CalculatedAmount(projects[e.ProjectID], client); calc != nil {
			amount = amount.Add(*calc)
		}
	}
	return hours, amount
}

// buildLines proyecta las líneas: una línea time_aggregate por proyecto con
// registros de tiempo (horas e importes sumados, descripción = nombre del
// proyecto) seguida de una línea fixed por cada registro de importe fijo.
// El IVA por defecto es el del cliente.
func buildLines(data *draftData) []dto.LineItemPreviewDTO {
	type group struct {
		projectID string
		hours     decimal.Decimal
		amount    decimal.Decimal
		entryIDs  []string
	}
	var order []string
	groups := make(map[string]*group)
	var fixed []dto.LineItemPreviewDTO

	for _, e := range data.entries {
		project := data.projects[e.ProjectID]
		calc := e.CalculatedAmount(project, data.client)
		amount := decimal.Zero
		if calc != nil {
			amount = *calc
		}
		if e.EntryType == entity.EntryTypeTime {
			g, ok := groups[e.ProjectID]
			if !ok {
				g = &group{projectID: e.ProjectID}
				groups[e.ProjectID] = g
				order = append(order, e.ProjectID)
			}
			if e.Hours != nil {
				g.hours = g.hours.Add(*e.Hours)
			}
			g.amount = g.amount.Add(amount)
			g.entryIDs = append(g.entryIDs, e.ID)
			continue
		}
		fixed = append(fixed, dto.LineItemPreviewDTO{
			LineType:     entity.LineTypeFixed,
			Description:  e.Description,
			Amount:       amount,
			VATRate:      data.client.DefaultVATRate,
			WorkEntryIDs: []string{e.ID},
		})
	}

	lines := make([]dto.LineItemPreviewDTO, 0, len(order)+len(fixed))
	for _, projectID := range order {
		g := groups[projectID]
		description := projectID
		if project, ok := data.projects[projectID]; ok {
			description = project.Name
		}
		quantity := g.hours
		lines = append(lines, dto.LineItemPreviewDTO{
			LineType:     entity.LineTypeTimeAggregate,
			Description:  description,
			Quantity:     &quantity,
			Amount:       g.amount,
			VATRate:      data.client.DefaultVATRate,
			WorkEntryIDs: g.entryIDs,
		})
	}
	return append(lines, fixed...)
}

// Preview es la proyección de solo lectura del borrador: líneas agregadas,
// totales, divisa del cliente y registros contribuyentes. No muta nada.
func (b *InvoiceBuilder) Preview(p DraftParams) (*dto.InvoicePreviewDTO, error) {
	data, err := b.load(p)
	if err != nil {
		return nil, err
	}
	hours, amount := entryTotals(data.entries, data.projects, data.client)
	lines := buildLines(data)
	entryIDs := make([]string, 0, len(data.entries))
	for _, e := range data.entries {
		entryIDs = append(entryIDs, e.ID)
	}
	return &dto.InvoicePreviewDTO{
		ClientID:     data.client.ID,
		ClientName:   data.client.Name,
		Currency:     data.client.Currency,
		PeriodStart:  p.PeriodStart,
		PeriodEnd:    p.PeriodEnd,
		TotalHours:   hours,
		TotalAmount:  amount,
		LineItems:    lines,
		WorkEntryIDs: entryIDs,
	}, nil
}

// CreateDraft crea el borrador en una sola transacción: factura numerada,
// líneas con sus vínculos a registros, registros marcados como facturados y
// totales persistidos desde los registros (no desde las líneas, que pueden
// editarse después). Sin trabajo pendiente no se crea nada y el resultado
// lleva success=false.
func (b *InvoiceBuilder) CreateDraft(ctx context.Context, p DraftParams) (*dto.CreateDraftResultDTO, error) {
	data, err := b.load(p)
	if err != nil {
		return nil, err
	}
	if len(data.entries) == 0 {
		return &dto.CreateDraftResultDTO{
			Success: false,
			Errors:  []string{domain.ErrNoUnbilledEntries.Error()},
		}, nil
	}

	issueDate := time.Now().Truncate(24 * time.Hour)
	if p.IssueDate != nil {
		issueDate = *p.IssueDate
	}
	dueDate := issueDate
	if p.DueDate != nil {
		dueDate = *p.DueDate
	} else if data.client.PaymentTermsDays != nil {
		dueDate = issueDate.AddDate(0, 0, *data.client.PaymentTermsDays)
	}

	hours, amount := entryTotals(data.entries, data.projects, data.client)
	lines := buildLines(data)
	entryIDs := make([]string, 0, len(data.entries))
	for _, e := range data.entries {
		entryIDs = append(entryIDs, e.ID)
	}

	var created *entity.Invoice
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		err = b.txRunner.RunInvoice(ctx, func(
			invoiceRepo repository.InvoiceRepository,
			entryRepo repository.WorkEntryRepository,
		) error {
			numbers, err := invoiceRepo.ListNumbersByYear(issueDate.Year())
			if err != nil {
				return err
			}
			now := time.Now()
			inv := &entity.Invoice{
				ID:          uuid.New().String(),
				ClientID:    data.client.ID,
				Number:      domainbilling.NextNumber(issueDate.Year(), numbers),
				Status:      entity.InvoiceStatusDraft,
				Currency:    data.client.Currency,
				IssueDate:   issueDate,
				DueDate:     dueDate,
				PeriodStart: p.PeriodStart,
				PeriodEnd:   p.PeriodEnd,
				Notes:       p.Notes,
				TotalHours:  hours,
				TotalAmount: amount,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := invoiceRepo.Create(inv); err != nil {
				return err
			}
			for position, line := range lines {
				li := &entity.InvoiceLineItem{
					ID:          uuid.New().String(),
					InvoiceID:   inv.ID,
					LineType:    line.LineType,
					Description: line.Description,
					Quantity:    line.Quantity,
					Amount:      line.Amount,
					VATRate:     line.VATRate,
					Position:    position,
				}
				if err := invoiceRepo.CreateLineItem(li); err != nil {
					return err
				}
				for _, entryID := range line.WorkEntryIDs {
					if err := invoiceRepo.LinkWorkEntry(li.ID, entryID); err != nil {
						return err
					}
				}
			}
			if err := entryRepo.MarkInvoiced(entryIDs, inv.ID); err != nil {
				return err
			}
			created = inv
			return nil
		})
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
	}
	if err != nil {
		return nil, fmt.Errorf("crear borrador tras %d intentos: %w", maxNumberAttempts, err)
	}
	return &dto.CreateDraftResultDTO{Success: true, Invoice: created}, nil
}
