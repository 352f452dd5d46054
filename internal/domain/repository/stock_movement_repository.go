package repository

import (
	"context"

	"github.com/jhoicas/seraphine/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	ListByProduct(ctx context.Context, organizationID, productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByOrganization(ctx context.Context, organizationID string, limit, offset int) ([]*entity.StockMovement, error)
}
