package billing_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
)

// fakeStore es el almacén en memoria compartido por los repos falsos de los
// tests. Usa slices para que el orden de inserción sea determinista.
type fakeStore struct {
	clients  []*entity.Client
	projects []*entity.Project
	entries  []*entity.WorkEntry
	invoices []*entity.Invoice
	items    []*entity.InvoiceLineItem
	links    map[string][]string // lineItemID → workEntryIDs
	rates    []*entity.ExchangeRate
	txns     []*entity.MoneyTransaction
	accounts []*entity.BankAccount
	settings *entity.Settings
}

func newFakeStore() *fakeStore {
	return &fakeStore{links: map[string][]string{}}
}

// fakeTxRunner ejecuta el callback directamente sobre el almacén compartido
// (sin transacción real; los tests de atomicidad validan el comportamiento
// observable, no el rollback del driver).
type fakeTxRunner struct{ s *fakeStore }

func (r fakeTxRunner) RunInvoice(ctx context.Context, fn func(repository.InvoiceRepository, repository.WorkEntryRepository) error) error {
	return fn(&fakeInvoiceRepo{r.s}, &fakeEntryRepo{r.s})
}

func (r fakeTxRunner) RunMatching(ctx context.Context, fn func(repository.InvoiceRepository, repository.MoneyTransactionRepository) error) error {
	return fn(&fakeInvoiceRepo{r.s}, &fakeTxnRepo{r.s})
}

func (r fakeTxRunner) RunBankAccounts(ctx context.Context, fn func(repository.BankAccountRepository) error) error {
	return fn(&fakeAccountRepo{r.s})
}

// ── clientes y proyectos ──────────────────────────────────────────────────────

type fakeClientRepo struct{ s *fakeStore }

func (r *fakeClientRepo) Create(c *entity.Client) error {
	r.s.clients = append(r.s.clients, c)
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	for _, c := range r.s.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) Update(c *entity.Client) error { return nil }

func (r *fakeClientRepo) Delete(id string) error {
	for i, c := range r.s.clients {
		if c.ID == id {
			r.s.clients = append(r.s.clients[:i], r.s.clients[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeProjectRepo struct{ s *fakeStore }

func (r *fakeProjectRepo) Create(p *entity.Project) error {
	r.s.projects = append(r.s.projects, p)
	return nil
}

func (r *fakeProjectRepo) GetByID(id string) (*entity.Project, error) {
	for _, p := range r.s.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProjectRepo) ListByClient(clientID string) ([]*entity.Project, error) {
	var out []*entity.Project
	for _, p := range r.s.projects {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) CountByClient(clientID string) (int, error) {
	list, _ := r.ListByClient(clientID)
	return len(list), nil
}

// ── registros de trabajo ──────────────────────────────────────────────────────

type fakeEntryRepo struct{ s *fakeStore }

func (r *fakeEntryRepo) Create(e *entity.WorkEntry) error {
	r.s.entries = append(r.s.entries, e)
	return nil
}

func (r *fakeEntryRepo) GetByID(id string) (*entity.WorkEntry, error) {
	for _, e := range r.s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeEntryRepo) ListUnbilledByClientPeriod(clientID string, from, to time.Time) ([]*entity.WorkEntry, error) {
	projectIDs := map[string]bool{}
	for _, p := range r.s.projects {
		if p.ClientID == clientID {
			projectIDs[p.ID] = true
		}
	}
	var out []*entity.WorkEntry
	for _, e := range r.s.entries {
		if !projectIDs[e.ProjectID] || e.Status != entity.EntryStatusUnbilled {
			continue
		}
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeEntryRepo) ListByInvoice(invoiceID string) ([]*entity.WorkEntry, error) {
	var out []*entity.WorkEntry
	for _, e := range r.s.entries {
		if e.InvoiceID != nil && *e.InvoiceID == invoiceID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) MarkInvoiced(ids []string, invoiceID string) error {
	for _, id := range ids {
		e, _ := r.GetByID(id)
		if e == nil {
			return domain.ErrNotFound
		}
		e.Status = entity.EntryStatusInvoiced
		inv := invoiceID
		e.InvoiceID = &inv
	}
	return nil
}

func (r *fakeEntryRepo) ResetToUnbilled(ids []string) error {
	for _, id := range ids {
		e, _ := r.GetByID(id)
		if e == nil {
			return domain.ErrNotFound
		}
		e.Status = entity.EntryStatusUnbilled
		e.InvoiceID = nil
	}
	return nil
}

// ── facturas ──────────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct{ s *fakeStore }

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	for _, existing := range r.s.invoices {
		if existing.Number == inv.Number {
			return fmt.Errorf("número %q: %w", inv.Number, domain.ErrDuplicate)
		}
	}
	r.s.invoices = append(r.s.invoices, inv)
	return nil
}

func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	for i, existing := range r.s.invoices {
		if existing.ID == inv.ID {
			r.s.invoices[i] = inv
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	for _, inv := range r.s.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) GetByNumber(number string) (*entity.Invoice, error) {
	for _, inv := range r.s.invoices {
		if inv.Number == number {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) List() ([]*entity.Invoice, error) { return r.s.invoices, nil }

func (r *fakeInvoiceRepo) ListByClient(clientID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) CountByClient(clientID string) (int, error) {
	list, _ := r.ListByClient(clientID)
	return len(list), nil
}

func (r *fakeInvoiceRepo) ListNumbersByYear(year int) ([]string, error) {
	prefix := fmt.Sprintf("%d-", year)
	var out []string
	for _, inv := range r.s.invoices {
		if strings.HasPrefix(inv.Number, prefix) {
			out = append(out, inv.Number)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Delete(id string) error {
	for i, inv := range r.s.invoices {
		if inv.ID == id {
			r.s.invoices = append(r.s.invoices[:i], r.s.invoices[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeInvoiceRepo) CreateLineItem(li *entity.InvoiceLineItem) error {
	r.s.items = append(r.s.items, li)
	return nil
}

func (r *fakeInvoiceRepo) UpdateLineItem(li *entity.InvoiceLineItem) error {
	for i, existing := range r.s.items {
		if existing.ID == li.ID {
			r.s.items[i] = li
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeInvoiceRepo) UpdateLineItemPositions(items []*entity.InvoiceLineItem) error {
	for _, li := range items {
		if err := r.UpdateLineItem(li); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeInvoiceRepo) DeleteLineItem(id string) error {
	for i, li := range r.s.items {
		if li.ID == id {
			r.s.items = append(r.s.items[:i], r.s.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeInvoiceRepo) GetLineItem(id string) (*entity.InvoiceLineItem, error) {
	for _, li := range r.s.items {
		if li.ID == id {
			return li, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) ListLineItems(invoiceID string) ([]*entity.InvoiceLineItem, error) {
	var out []*entity.InvoiceLineItem
	for _, li := range r.s.items {
		if li.InvoiceID == invoiceID {
			out = append(out, li)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeInvoiceRepo) LinkWorkEntry(lineItemID, workEntryID string) error {
	for _, id := range r.s.links[lineItemID] {
		if id == workEntryID {
			return fmt.Errorf("vínculo repetido: %w", domain.ErrDuplicate)
		}
	}
	r.s.links[lineItemID] = append(r.s.links[lineItemID], workEntryID)
	return nil
}

func (r *fakeInvoiceRepo) ListLinkedEntryIDs(lineItemID string) ([]string, error) {
	return r.s.links[lineItemID], nil
}

func (r *fakeInvoiceRepo) DeleteLinksByLineItem(lineItemID string) error {
	delete(r.s.links, lineItemID)
	return nil
}

func (r *fakeInvoiceRepo) DeleteLinksByInvoice(invoiceID string) error {
	items, _ := r.ListLineItems(invoiceID)
	for _, li := range items {
		delete(r.s.links, li.ID)
	}
	return nil
}

// ── cotizaciones ──────────────────────────────────────────────────────────────

type fakeRateRepo struct{ s *fakeStore }

func (r *fakeRateRepo) Upsert(rate *entity.ExchangeRate) error {
	r.s.rates = append(r.s.rates, rate)
	return nil
}

func (r *fakeRateRepo) GetByCurrencyAndDate(currency string, date time.Time) (*entity.ExchangeRate, error) {
	for _, rate := range r.s.rates {
		if rate.Currency == currency && rate.Date.Equal(date) {
			return rate, nil
		}
	}
	return nil, nil
}

// ── transacciones bancarias ───────────────────────────────────────────────────

type fakeTxnRepo struct{ s *fakeStore }

func (r *fakeTxnRepo) Create(t *entity.MoneyTransaction) error {
	r.s.txns = append(r.s.txns, t)
	return nil
}

func (r *fakeTxnRepo) GetByID(id string) (*entity.MoneyTransaction, error) {
	for _, t := range r.s.txns {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTxnRepo) ListUnmatchedIncome() ([]*entity.MoneyTransaction, error) {
	var out []*entity.MoneyTransaction
	for _, t := range r.s.txns {
		if t.TransactionType == entity.TransactionTypeIncome && t.InvoiceID == nil {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTxnRepo) LinkInvoice(transactionID, invoiceID string) error {
	t, _ := r.GetByID(transactionID)
	if t == nil {
		return domain.ErrNotFound
	}
	if t.InvoiceID != nil {
		return domain.ErrConflict
	}
	inv := invoiceID
	t.InvoiceID = &inv
	return nil
}

// ── cuentas bancarias y configuración ─────────────────────────────────────────

type fakeAccountRepo struct{ s *fakeStore }

func (r *fakeAccountRepo) Create(a *entity.BankAccount) error {
	r.s.accounts = append(r.s.accounts, a)
	return nil
}

func (r *fakeAccountRepo) GetByID(id string) (*entity.BankAccount, error) {
	for _, a := range r.s.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) GetDefault() (*entity.BankAccount, error) {
	for _, a := range r.s.accounts {
		if a.IsDefault {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) List() ([]*entity.BankAccount, error) { return r.s.accounts, nil }

func (r *fakeAccountRepo) Count() (int, error) { return len(r.s.accounts), nil }

func (r *fakeAccountRepo) Update(a *entity.BankAccount) error {
	for i, existing := range r.s.accounts {
		if existing.ID == a.ID {
			r.s.accounts[i] = a
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeAccountRepo) UnsetDefaultExcept(id string) error {
	for _, a := range r.s.accounts {
		if a.ID != id {
			a.IsDefault = false
		}
	}
	return nil
}

type fakeSettingsRepo struct{ s *fakeStore }

func (r *fakeSettingsRepo) Get() (*entity.Settings, error) { return r.s.settings, nil }

func (r *fakeSettingsRepo) Save(s *entity.Settings) error {
	r.s.settings = s
	return nil
}
