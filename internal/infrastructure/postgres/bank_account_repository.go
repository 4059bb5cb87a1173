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

var _ repository.BankAccountRepository = (*BankAccountRepo)(nil)

// BankAccountRepo implementación de BankAccountRepository. El índice parcial
// único sobre is_default garantiza a lo sumo una predeterminada; la rotación
// corre dentro del TxRunner.
type BankAccountRepo struct {
	q Querier
}

// NewBankAccountRepository construye el adaptador.
func NewBankAccountRepository(q Querier) *BankAccountRepo {
	return &BankAccountRepo{q: q}
}

const bankAccountColumns = `id, label, iban, bic, is_default, created_at, updated_at`

// Create persiste una cuenta bancaria.
func (r *BankAccountRepo) Create(a *entity.BankAccount) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO bank_accounts (id, label, iban, bic, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Label, a.IBAN, a.BIC, a.IsDefault, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ya hay una cuenta predeterminada: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert bank account: %w", err)
	}
	return nil
}

func (r *BankAccountRepo) scan(row pgx.Row) (*entity.BankAccount, error) {
	var a entity.BankAccount
	err := row.Scan(&a.ID, &a.Label, &a.IBAN, &a.BIC, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan bank account: %w", err)
	}
	return &a, nil
}

// GetByID obtiene una cuenta por ID. (nil, nil) si no existe.
func (r *BankAccountRepo) GetByID(id string) (*entity.BankAccount, error) {
	return r.scan(r.q.QueryRow(context.Background(),
		`SELECT `+bankAccountColumns+` FROM bank_accounts WHERE id = $1`, id))
}

// GetDefault obtiene la cuenta predeterminada. (nil, nil) si no hay ninguna.
func (r *BankAccountRepo) GetDefault() (*entity.BankAccount, error) {
	return r.scan(r.q.QueryRow(context.Background(),
		`SELECT `+bankAccountColumns+` FROM bank_accounts WHERE is_default`))
}

// List devuelve todas las cuentas en orden de creación.
func (r *BankAccountRepo) List() ([]*entity.BankAccount, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+bankAccountColumns+` FROM bank_accounts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	defer rows.Close()
	var out []*entity.BankAccount
	for rows.Next() {
		var a entity.BankAccount
		if err := rows.Scan(&a.ID, &a.Label, &a.IBAN, &a.BIC, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bank account: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// Count cuenta las cuentas del libro.
func (r *BankAccountRepo) Count() (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM bank_accounts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bank accounts: %w", err)
	}
	return count, nil
}

// Update actualiza una cuenta.
func (r *BankAccountRepo) Update(a *entity.BankAccount) error {
	query := `
		UPDATE bank_accounts
		SET label      = $2,
		    iban       = $3,
		    bic        = $4,
		    is_default = $5,
		    updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		a.ID, a.Label, a.IBAN, a.BIC, a.IsDefault, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update bank account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UnsetDefaultExcept desmarca is_default en todas las cuentas salvo la dada.
func (r *BankAccountRepo) UnsetDefaultExcept(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE bank_accounts SET is_default = FALSE WHERE id <> $1 AND is_default`, id)
	if err != nil {
		return fmt.Errorf("unset default: %w", err)
	}
	return nil
}

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación de SettingsRepository sobre la fila única de
// configuración. Get devuelve (nil, nil) mientras el bootstrap no la cree.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get obtiene la fila de configuración. (nil, nil) si aún no existe.
func (r *SettingsRepo) Get() (*entity.Settings, error) {
	query := `
		SELECT id, company_name, main_currency, default_vat_rate, iban, bic
		FROM settings WHERE id = $1`
	var s entity.Settings
	err := r.q.QueryRow(context.Background(), query, entity.SettingsID).Scan(
		&s.ID, &s.CompanyName, &s.MainCurrency, &s.DefaultVATRate, &s.IBAN, &s.BIC)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Save inserta o reemplaza la fila de configuración.
func (r *SettingsRepo) Save(s *entity.Settings) error {
	if s.ID == "" {
		s.ID = entity.SettingsID
	}
	query := `
		INSERT INTO settings (id, company_name, main_currency, default_vat_rate, iban, bic)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			company_name     = EXCLUDED.company_name,
			main_currency    = EXCLUDED.main_currency,
			default_vat_rate = EXCLUDED.default_vat_rate,
			iban             = EXCLUDED.iban,
			bic              = EXCLUDED.bic`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.CompanyName, s.MainCurrency, s.DefaultVATRate, s.IBAN, s.BIC)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
