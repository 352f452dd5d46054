package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seraphine/internal/domain/entity"
)

// ProductStats agregados del catálogo de una organización.
type ProductStats struct {
	ProductCount   int
	LowStockCount  int
	StockValueCost decimal.Decimal
	StockValueSale decimal.Decimal
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE); solo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, organizationID, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, organizationID, barcode string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, productID string, stock int64, purchasePrice decimal.Decimal) error
	ListByOrganization(ctx context.Context, organizationID, search string, limit, offset int) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, organizationID string, limit int) ([]*entity.Product, error)
	Stats(ctx context.Context, organizationID string) (*ProductStats, error)
	Delete(ctx context.Context, organizationID, id string) error
}
