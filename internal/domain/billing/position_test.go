package billing_test

import (
	"testing"

	"github.com/jhoicas/Facturas-api/internal/domain/billing"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildItems crea líneas con posiciones 0..n-1 (esquema base cero).
func buildItems(n int) []*entity.InvoiceLineItem {
	items := make([]*entity.InvoiceLineItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, &entity.InvoiceLineItem{Position: i})
	}
	return items
}

func TestNextPosition(t *testing.T) {
	assert.Equal(t, 0, billing.NextPosition([]*entity.InvoiceLineItem{}),
		"colección vacía: la primera posición es 0")
	assert.Equal(t, 3, billing.NextPosition(buildItems(3)), "máximo + 1")
}

func TestSwap(t *testing.T) {
	items := buildItems(2)
	billing.Swap(items[0], items[1])
	assert.Equal(t, 1, items[0].Position)
	assert.Equal(t, 0, items[1].Position)
}

func TestMoveUp_PrimerElementoEsNoOp(t *testing.T) {
	items := buildItems(3)
	ok := billing.MoveUp(items, items[0])
	assert.False(t, ok, "subir el primer elemento debe ser no-op y devolver false")
	assert.Equal(t, 0, items[0].Position, "no debe haber mutación")
}

func TestMoveUp_IntercambiaConElAnterior(t *testing.T) {
	items := buildItems(3)
	ok := billing.MoveUp(items, items[2])
	require.True(t, ok)
	assert.Equal(t, 1, items[2].Position)
	assert.Equal(t, 2, items[1].Position)
	assert.Equal(t, 0, items[0].Position, "el resto no se toca")
}

func TestMoveDown_UltimoElementoEsNoOp(t *testing.T) {
	items := buildItems(3)
	ok := billing.MoveDown(items, items[2])
	assert.False(t, ok)
	assert.Equal(t, 2, items[2].Position)
}

func TestMoveDown_IntercambiaConElSiguiente(t *testing.T) {
	items := buildItems(2)
	ok := billing.MoveDown(items, items[0])
	require.True(t, ok)
	assert.Equal(t, 1, items[0].Position)
	assert.Equal(t, 0, items[1].Position)
}

func TestMoveUp_SinPredecesorExacto(t *testing.T) {
	// Hueco en las posiciones: el predecesor inmediato (pos-1) no existe.
	items := []*entity.InvoiceLineItem{
		{Position: 0},
		{Position: 5},
	}
	ok := billing.MoveUp(items, items[1])
	assert.False(t, ok, "sin predecesor en la posición exacta no hay intercambio")
	assert.Equal(t, 5, items[1].Position)
}

func TestReorder_Direcciones(t *testing.T) {
	items := buildItems(2)
	assert.True(t, billing.Reorder(items, items[1], billing.DirectionUp))
	assert.True(t, billing.Reorder(items, items[1], billing.DirectionDown))

	// Una dirección desconocida devuelve false y no muta nada.
	before := []int{items[0].Position, items[1].Position}
	assert.False(t, billing.Reorder(items, items[1], "sideways"))
	assert.Equal(t, before, []int{items[0].Position, items[1].Position})
}
