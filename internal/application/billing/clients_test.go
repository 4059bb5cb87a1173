package billing_test

import (
	"testing"

	"github.com/jhoicas/Facturas-api/internal/application/billing"
	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientUseCase(s *fakeStore) *billing.ClientUseCase {
	return billing.NewClientUseCase(&fakeClientRepo{s}, &fakeProjectRepo{s}, &fakeInvoiceRepo{s})
}

func TestClientDelete_BloqueadoConProyectos(t *testing.T) {
	s := newFakeStore()
	seedClient(s) // crea c1 con el proyecto p1

	err := newClientUseCase(s).Delete("c1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, s.clients, 1)
}

func TestClientDelete_BloqueadoConFacturas(t *testing.T) {
	s := newFakeStore()
	seedClient(s)
	// Sin proyectos pero con una factura.
	s.projects = nil
	s.invoices = append(s.invoices, &entity.Invoice{ID: "i1", Number: "2024-001", ClientID: "c1"})

	err := newClientUseCase(s).Delete("c1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestClientDelete_SinDependencias(t *testing.T) {
	s := newFakeStore()
	uc := newClientUseCase(s)
	require.NoError(t, uc.Create(&entity.Client{ID: "c1", Name: "Acme SL"}))

	require.NoError(t, uc.Delete("c1"))
	assert.Empty(t, s.clients)

	assert.ErrorIs(t, uc.Delete("c1"), domain.ErrNotFound)
}

func TestClientCreate_NombreObligatorio(t *testing.T) {
	s := newFakeStore()
	err := newClientUseCase(s).Create(&entity.Client{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
