package entity

import "time"

// BankAccount representa una cuenta bancaria propia para cobrar facturas.
// A lo sumo una cuenta tiene IsDefault=true (índice parcial en la tabla);
// al marcar una nueva predeterminada se desmarca la anterior en la misma
// transacción, y la única cuenta existente no puede dejar de serlo.
type BankAccount struct {
	ID        string
	Label     string
	IBAN      string
	BIC       string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
