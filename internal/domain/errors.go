package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores de transición de estado de facturas. Se reportan como un único
// mensaje al usuario; la operación no muta nada.
var (
	ErrInvoiceNotEditable = errors.New("no se puede modificar una factura finalizada")
	ErrAlreadyFinalized   = errors.New("la factura ya está finalizada")
	ErrInvoiceNotFinal    = errors.New("solo las facturas finalizadas pueden marcarse como pagadas")
)

// Fallos de regla de negocio. Se devuelven dentro de un resultado estructurado
// (no se propagan como pánico) para que los procesos por lotes continúen.
var (
	ErrNoUnbilledEntries  = errors.New("no hay registros de trabajo sin facturar")
	ErrNotIncome          = errors.New("la transacción no es un ingreso")
	ErrAlreadyMatched     = errors.New("la transacción ya está conciliada")
	ErrNoMatchingInvoice  = errors.New("no existe una factura que coincida")
	ErrLastDefaultAccount = errors.New("la única cuenta bancaria debe permanecer como predeterminada")
)
