// Package repository define los puertos de persistencia del dominio.
package repository

import "github.com/jhoicas/Facturas-api/internal/domain/entity"

// ClientRepository define el puerto de persistencia para clientes.
type ClientRepository interface {
	Create(c *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	Update(c *entity.Client) error
	// Delete elimina el cliente. El caso de uso debe bloquearlo mientras
	// existan proyectos o facturas del cliente.
	Delete(id string) error
}

// ProjectRepository define el puerto de persistencia para proyectos.
type ProjectRepository interface {
	Create(p *entity.Project) error
	GetByID(id string) (*entity.Project, error)
	ListByClient(clientID string) ([]*entity.Project, error)
	CountByClient(clientID string) (int, error)
}
