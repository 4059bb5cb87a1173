package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
)

// BankAccountUseCase administra las cuentas bancarias propias y la invariante
// de cuenta predeterminada: a lo sumo una con is_default=true (marcar una
// nueva desmarca la anterior en la misma transacción) y la única cuenta
// existente no puede dejar de serlo.
type BankAccountUseCase struct {
	txRunner    TxRunner
	accountRepo repository.BankAccountRepository
}

// NewBankAccountUseCase construye el caso de uso.
func NewBankAccountUseCase(txRunner TxRunner, accountRepo repository.BankAccountRepository) *BankAccountUseCase {
	return &BankAccountUseCase{txRunner: txRunner, accountRepo: accountRepo}
}

// Create da de alta una cuenta. La primera cuenta del libro queda
// predeterminada automáticamente; si la nueva viene marcada como
// predeterminada, desmarca la anterior.
func (uc *BankAccountUseCase) Create(ctx context.Context, a *entity.BankAccount) error {
	if a.IBAN == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunBankAccounts(ctx, func(accountRepo repository.BankAccountRepository) error {
		count, err := accountRepo.Count()
		if err != nil {
			return err
		}
		if count == 0 {
			a.IsDefault = true
		}
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		now := time.Now()
		a.CreatedAt = now
		a.UpdatedAt = now
		if a.IsDefault {
			if err := accountRepo.UnsetDefaultExcept(a.ID); err != nil {
				return err
			}
		}
		return accountRepo.Create(a)
	})
}

// Save persiste cambios de una cuenta existente preservando la invariante:
// marcarla predeterminada desmarca la anterior; desmarcar la única cuenta
// predeterminada existente se rechaza (no puede quedar el libro sin
// predeterminada).
func (uc *BankAccountUseCase) Save(ctx context.Context, a *entity.BankAccount) error {
	return uc.txRunner.RunBankAccounts(ctx, func(accountRepo repository.BankAccountRepository) error {
		current, err := accountRepo.GetByID(a.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if current.IsDefault && !a.IsDefault {
			count, err := accountRepo.Count()
			if err != nil {
				return err
			}
			if count == 1 {
				return domain.ErrLastDefaultAccount
			}
		}
		if a.IsDefault {
			if err := accountRepo.UnsetDefaultExcept(a.ID); err != nil {
				return err
			}
		}
		a.UpdatedAt = time.Now()
		return accountRepo.Update(a)
	})
}

// SetDefault marca la cuenta como predeterminada, desmarcando la anterior en
// la misma transacción.
func (uc *BankAccountUseCase) SetDefault(ctx context.Context, accountID string) error {
	return uc.txRunner.RunBankAccounts(ctx, func(accountRepo repository.BankAccountRepository) error {
		a, err := accountRepo.GetByID(accountID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if err := accountRepo.UnsetDefaultExcept(a.ID); err != nil {
			return err
		}
		a.IsDefault = true
		a.UpdatedAt = time.Now()
		return accountRepo.Update(a)
	})
}
