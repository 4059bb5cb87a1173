package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Facturas-api/internal/application/billing"
	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatcher(s *fakeStore) *billing.InvoiceMatchingService {
	return billing.NewInvoiceMatchingService(fakeTxRunner{s}, &fakeTxnRepo{s})
}

// seedFinal crea vía builder una factura final; el gran total lo leemos con
// grandOf en vez de fijarlo a mano.
func seedFinal(t *testing.T, s *fakeStore) *entity.Invoice {
	t.Helper()
	inv := seedDraft(t, s)
	require.NoError(t, newLifecycle(s).Finalize(context.Background(), inv.ID))
	return inv
}

func incomeTxn(id, reference string, amount decimal.Decimal) *entity.MoneyTransaction {
	return &entity.MoneyTransaction{
		ID:              id,
		TransactionType: entity.TransactionTypeIncome,
		Reference:       reference,
		Amount:          amount,
		TransactedOn:    date(2024, time.May, 6),
	}
}

// Gran total del borrador de seedDraft: (1200 + 500) × 1.21.
func grandOf(t *testing.T, s *fakeStore, inv *entity.Invoice) decimal.Decimal {
	t.Helper()
	items, err := (&fakeInvoiceRepo{s}).ListLineItems(inv.ID)
	require.NoError(t, err)
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Amount).Add(li.VATAmount())
	}
	return total
}

func TestMatch_ExitoCierraElCiclo(t *testing.T) {
	s := newFakeStore()
	inv := seedFinal(t, s)
	txn := incomeTxn("t1", inv.Number, grandOf(t, s, inv))
	s.txns = append(s.txns, txn)

	result, err := newMatcher(s).Match(context.Background(), "t1")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, inv.ID, result.InvoiceID)
	assert.Empty(t, result.Reason)

	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	require.NotNil(t, inv.PaidAt)
	assert.Equal(t, txn.TransactedOn, *inv.PaidAt, "paid_at es la fecha valor, no ahora")
	require.NotNil(t, txn.InvoiceID)
	assert.Equal(t, inv.ID, *txn.InvoiceID)
}

func TestMatch_RechazaEgresos(t *testing.T) {
	s := newFakeStore()
	inv := seedFinal(t, s)
	txn := incomeTxn("t1", inv.Number, grandOf(t, s, inv))
	txn.TransactionType = entity.TransactionTypeExpense
	s.txns = append(s.txns, txn)

	result, err := newMatcher(s).Match(context.Background(), "t1")
	require.NoError(t, err, "un fallo de negocio no es un error")
	assert.False(t, result.Success)
	assert.Equal(t, domain.ErrNotIncome.Error(), result.Reason)
	assert.Equal(t, entity.InvoiceStatusFinal, inv.Status)
}

func TestMatch_RechazaYaConciliadas(t *testing.T) {
	s := newFakeStore()
	inv := seedFinal(t, s)
	txn := incomeTxn("t1", inv.Number, grandOf(t, s, inv))
	prev := "otra-factura"
	txn.InvoiceID = &prev
	s.txns = append(s.txns, txn)

	result, err := newMatcher(s).Match(context.Background(), "t1")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, domain.ErrAlreadyMatched.Error(), result.Reason)
	assert.Equal(t, "otra-factura", *txn.InvoiceID, "el vínculo existente es inmutable")
}

func TestMatch_SinFacturaCandidata(t *testing.T) {
	s := newFakeStore()
	inv := seedFinal(t, s)
	grand := grandOf(t, s, inv)

	cases := []struct {
		name string
		txn  *entity.MoneyTransaction
		prep func()
	}{
		{
			name: "referencia sin factura",
			txn:  incomeTxn("t1", "2099-999", grand),
		},
		{
			name: "importe distinto sin tolerancia",
			txn:  incomeTxn("t2", inv.Number, grand.Add(decimal.NewFromFloat(0.01))),
		},
		{
			name: "la factura sigue en borrador",
			txn:  incomeTxn("t3", inv.Number, grand),
			prep: func() { inv.Status = entity.InvoiceStatusDraft },
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.prep != nil {
				tc.prep()
			}
			s.txns = append(s.txns, tc.txn)
			result, err := newMatcher(s).Match(context.Background(), tc.txn.ID)
			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.Equal(t, domain.ErrNoMatchingInvoice.Error(), result.Reason)
			assert.Nil(t, tc.txn.InvoiceID)
		})
	}
}

func TestMatch_TransaccionInexistente(t *testing.T) {
	s := newFakeStore()
	_, err := newMatcher(s).Match(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound, "la infraestructura sí es un error")
}

func TestMatchAll_CadaUnaPorSeparado(t *testing.T) {
	s := newFakeStore()
	inv := seedFinal(t, s)
	grand := grandOf(t, s, inv)
	s.txns = append(s.txns,
		incomeTxn("t1", "2099-999", grand),         // sin candidata
		incomeTxn("t2", inv.Number, grand),         // concilia
		incomeTxn("t3", inv.Number, grand),         // la factura ya quedó pagada
		&entity.MoneyTransaction{ID: "t4", TransactionType: entity.TransactionTypeExpense},
	)

	results, err := newMatcher(s).MatchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3, "los egresos ni se consideran")

	assert.False(t, results[0].Success)
	assert.True(t, results[1].Success)
	assert.False(t, results[2].Success, "una factura pagada deja de ser candidata")
	assert.Equal(t, domain.ErrNoMatchingInvoice.Error(), results[2].Reason)
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
}
