package billing

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Facturas-api/internal/application/dto"
	domainbilling "github.com/jhoicas/Facturas-api/internal/domain/billing"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
	"github.com/jhoicas/Facturas-api/pkg/payqr"
)

// PaymentQRUseCase genera el código QR de pago de una factura cobrable:
// EPC para EUR, SPAYD para CZK. El IBAN/BIC sale de la cuenta bancaria
// indicada o, en su defecto, de la configuración.
type PaymentQRUseCase struct {
	settingsRepo repository.SettingsRepository
	accountRepo  repository.BankAccountRepository
}

// NewPaymentQRUseCase construye el caso de uso.
func NewPaymentQRUseCase(settingsRepo repository.SettingsRepository, accountRepo repository.BankAccountRepository) *PaymentQRUseCase {
	return &PaymentQRUseCase{settingsRepo: settingsRepo, accountRepo: accountRepo}
}

// Build genera el QR de la factura. Un account no nulo tiene prioridad sobre
// la configuración para IBAN/BIC. Cuando el QR no está disponible (sin IBAN,
// divisa no soportada o total no positivo) el resultado lleva
// Available=false y el resto de campos vacíos — es un hueco de datos, no un
// error.
func (uc *PaymentQRUseCase) Build(inv *entity.Invoice, items []*entity.InvoiceLineItem, account *entity.BankAccount) (*dto.PaymentQRDTO, error) {
	settings, err := uc.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, fmt.Errorf("configuración no inicializada: falta el bootstrap")
	}

	iban, bic := settings.IBAN, settings.BIC
	if account != nil {
		iban, bic = account.IBAN, account.BIC
	}

	out := &dto.PaymentQRDTO{}
	currency := ""
	if inv.Currency != nil {
		currency = *inv.Currency
	}
	grand := domainbilling.GrandTotal(items)
	format := payqr.FormatFor(currency)
	if strings.TrimSpace(iban) == "" || format == "" || !grand.IsPositive() {
		return out, nil
	}

	payload := payqr.Build(payqr.Params{
		IBAN:        iban,
		BIC:         bic,
		CompanyName: settings.CompanyName,
		Currency:    currency,
		Amount:      grand,
		Reference:   inv.Number,
	})
	dataURL, err := payqr.DataURL(payload)
	if err != nil {
		return nil, fmt.Errorf("renderizar QR de pago: %w", err)
	}
	out.Available = true
	out.Format = format
	out.Payload = payload
	out.DataURL = dataURL
	return out, nil
}

// BuildDefault genera el QR usando la cuenta bancaria predeterminada si
// existe; sin cuenta predeterminada se usan los datos de la configuración.
func (uc *PaymentQRUseCase) BuildDefault(inv *entity.Invoice, items []*entity.InvoiceLineItem) (*dto.PaymentQRDTO, error) {
	account, err := uc.accountRepo.GetDefault()
	if err != nil {
		return nil, err
	}
	return uc.Build(inv, items, account)
}
