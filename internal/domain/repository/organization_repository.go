package repository

import (
	"context"

	"github.com/jhoicas/seraphine/internal/domain/entity"
)

// OrganizationRepository define el puerto de persistencia para Organization y sus módulos.
// La implementación vive en infrastructure.
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	GetByICE(ctx context.Context, ice string) (*entity.Organization, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Organization, error)
	// IsModuleEnabled devuelve true si no hay fila para el módulo o si la fila está activa.
	IsModuleEnabled(ctx context.Context, organizationID, module string) (bool, error)
	ListModules(ctx context.Context, organizationID string) ([]*entity.OrganizationModule, error)
	SetModule(ctx context.Context, m *entity.OrganizationModule) error
}
