package repository

import "github.com/jhoicas/Facturas-api/internal/domain/entity"

// BankAccountRepository define el puerto de persistencia para cuentas bancarias.
type BankAccountRepository interface {
	Create(a *entity.BankAccount) error
	GetByID(id string) (*entity.BankAccount, error)
	GetDefault() (*entity.BankAccount, error)
	List() ([]*entity.BankAccount, error)
	Count() (int, error)
	Update(a *entity.BankAccount) error
	// UnsetDefaultExcept desmarca is_default en todas las cuentas salvo la dada.
	UnsetDefaultExcept(id string) error
}

// SettingsRepository define el puerto de persistencia para la fila única de
// configuración. Get devuelve (nil, nil) si el bootstrap aún no la creó.
type SettingsRepository interface {
	Get() (*entity.Settings, error)
	Save(s *entity.Settings) error
}
