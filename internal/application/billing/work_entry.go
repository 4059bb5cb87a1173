package billing

import (
	"time"

	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
)

// WorkEntryUseCase registra trabajo facturable con el pipeline explícito de
// pre-persistencia: primero se deriva el tipo de registro, después se validan
// los campos (el orden importa: la regla "horas o importe" corre sobre el
// tipo ya derivado). Nada muta de forma implícita.
type WorkEntryUseCase struct {
	entryRepo   repository.WorkEntryRepository
	projectRepo repository.ProjectRepository
}

// NewWorkEntryUseCase construye el caso de uso.
func NewWorkEntryUseCase(entryRepo repository.WorkEntryRepository, projectRepo repository.ProjectRepository) *WorkEntryUseCase {
	return &WorkEntryUseCase{entryRepo: entryRepo, projectRepo: projectRepo}
}

// Register valida y persiste un registro de trabajo. Devuelve errores por
// campo; con errores no se persiste nada. Un error de infraestructura se
// propaga aparte.
func (uc *WorkEntryUseCase) Register(e *entity.WorkEntry) (map[string]string, error) {
	project, err := uc.projectRepo.GetByID(e.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	// Paso 1: derivar el tipo antes de cualquier validación.
	e.DeriveEntryType()

	// Paso 2: validaciones estructurales, reportadas por campo.
	fields := map[string]string{}
	if e.Hours == nil && e.Amount == nil {
		fields["base"] = "se requieren horas o un importe"
	}
	if e.Hours != nil && e.Hours.IsNegative() {
		fields["hours"] = "las horas no pueden ser negativas"
	}
	if e.Amount != nil && e.Amount.IsNegative() {
		fields["amount"] = "el importe no puede ser negativo"
	}
	if e.HourlyRate != nil && e.HourlyRate.IsNegative() {
		fields["hourly_rate"] = "la tarifa no puede ser negativa"
	}
	if e.Date.IsZero() {
		fields["date"] = "la fecha es obligatoria"
	}
	if len(fields) > 0 {
		return fields, nil
	}

	now := time.Now()
	e.Status = entity.EntryStatusUnbilled
	e.InvoiceID = nil
	e.CreatedAt = now
	e.UpdatedAt = now
	if err := uc.entryRepo.Create(e); err != nil {
		return nil, err
	}
	return nil, nil
}
