package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
)

// ClientUseCase administra clientes. El cliente es dueño de sus proyectos y
// facturas: no se puede eliminar mientras exista cualquiera de los dos.
type ClientUseCase struct {
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
	invoiceRepo repository.InvoiceRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(
	clientRepo repository.ClientRepository,
	projectRepo repository.ProjectRepository,
	invoiceRepo repository.InvoiceRepository,
) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo, projectRepo: projectRepo, invoiceRepo: invoiceRepo}
}

// Create da de alta un cliente.
func (uc *ClientUseCase) Create(c *entity.Client) error {
	if c.Name == "" {
		return domain.ErrInvalidInput
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	return uc.clientRepo.Create(c)
}

// Delete elimina un cliente. Bloqueado mientras tenga proyectos o facturas.
func (uc *ClientUseCase) Delete(id string) error {
	c, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	projects, err := uc.projectRepo.CountByClient(id)
	if err != nil {
		return err
	}
	if projects > 0 {
		return fmt.Errorf("el cliente tiene %d proyectos: %w", projects, domain.ErrConflict)
	}
	invoices, err := uc.invoiceRepo.CountByClient(id)
	if err != nil {
		return err
	}
	if invoices > 0 {
		return fmt.Errorf("el cliente tiene %d facturas: %w", invoices, domain.ErrConflict)
	}
	return uc.clientRepo.Delete(id)
}
