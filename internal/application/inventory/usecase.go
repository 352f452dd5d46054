// Package inventory orquesta los movimientos de stock: ventas, compras y ajustes.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/seraphine/internal/application/dto"
	"github.com/jhoicas/seraphine/internal/application/ports"
	"github.com/jhoicas/seraphine/internal/domain"
	"github.com/jhoicas/seraphine/internal/domain/catalog"
	"github.com/jhoicas/seraphine/internal/domain/entity"
	"github.com/jhoicas/seraphine/internal/domain/inventory"
	"github.com/jhoicas/seraphine/internal/domain/repository"
	"github.com/jhoicas/seraphine/pkg/metrics"
)

// StockUseCase registra movimientos de stock de forma transaccional con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback.
type StockUseCase struct {
	txRunner     ports.TxRunner
	movementRepo repository.StockMovementRepository
	now          func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner ports.TxRunner, movementRepo repository.StockMovementRepository) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, movementRepo: movementRepo, now: time.Now}
}

// movementInput entrada común a los tres tipos de movimiento.
type movementInput struct {
	organizationID string
	userID         string
	productID      string
	typ            string
	delta          int64
	unitPrice      *decimal.Decimal
	reference      string
}

// RegisterSale descuenta stock. Sin precio explícito se usa el precio de venta del producto.
func (uc *StockUseCase) RegisterSale(ctx context.Context, organizationID, userID string, in dto.SaleRequest) (*dto.StockMovementResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice != nil {
		price, ok := catalog.NormalizeAmount(*in.UnitPrice)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		in.UnitPrice = &price
	}
	return uc.register(ctx, movementInput{
		organizationID: organizationID,
		userID:         userID,
		productID:      in.ProductID,
		typ:            entity.MovementTypeSale,
		delta:          -in.Quantity,
		unitPrice:      in.UnitPrice,
		reference:      in.Reference,
	})
}

// RegisterPurchase suma stock y recalcula el precio de compra promedio ponderado.
func (uc *StockUseCase) RegisterPurchase(ctx context.Context, organizationID, userID string, in dto.PurchaseRequest) (*dto.StockMovementResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	cost, ok := catalog.NormalizeAmount(in.UnitCost)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	return uc.register(ctx, movementInput{
		organizationID: organizationID,
		userID:         userID,
		productID:      in.ProductID,
		typ:            entity.MovementTypePurchase,
		delta:          in.Quantity,
		unitPrice:      &cost,
		reference:      in.Reference,
	})
}

// RegisterAdjustment aplica un delta con signo (inventario físico, caducados, roturas).
func (uc *StockUseCase) RegisterAdjustment(ctx context.Context, organizationID, userID string, in dto.AdjustmentRequest) (*dto.StockMovementResponse, error) {
	if in.ProductID == "" || in.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.register(ctx, movementInput{
		organizationID: organizationID,
		userID:         userID,
		productID:      in.ProductID,
		typ:            entity.MovementTypeAdjustment,
		delta:          in.Delta,
		reference:      in.Reason,
	})
}

func (uc *StockUseCase) register(ctx context.Context, in movementInput) (*dto.StockMovementResponse, error) {
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, in.organizationID, in.productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		stock, ok := inventory.ApplyDelta(product.Stock, in.delta)
		if !ok {
			return domain.ErrInsufficientStock
		}

		cost := product.PurchasePrice
		var unit decimal.Decimal
		switch in.typ {
		case entity.MovementTypePurchase:
			unit = *in.unitPrice
			cost = inventory.WeightedAverageCost(product.Stock, product.PurchasePrice, in.delta, unit)
		case entity.MovementTypeSale:
			unit = product.SellingPrice
			if in.unitPrice != nil {
				unit = *in.unitPrice
			}
		case entity.MovementTypeAdjustment:
			unit = product.PurchasePrice
		}

		if err := productRepo.UpdateStock(ctx, product.ID, stock, cost); err != nil {
			return err
		}

		qty := in.delta
		if qty < 0 {
			qty = -qty
		}
		mov = &entity.StockMovement{
			ID:             uuid.New().String(),
			OrganizationID: in.organizationID,
			ProductID:      product.ID,
			Type:           in.typ,
			Quantity:       in.delta,
			UnitPrice:      unit,
			Total:          unit.Mul(decimal.NewFromInt(qty)),
			StockAfter:     stock,
			Reference:      in.reference,
			CreatedBy:      in.userID,
			CreatedAt:      uc.now(),
		}
		return movementRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	metrics.StockMovements.WithLabelValues(in.typ).Inc()
	return ToMovementResponse(mov), nil
}

// ListMovements lista movimientos de la organización; filtrados por producto si productID no está vacío.
func (uc *StockUseCase) ListMovements(ctx context.Context, organizationID, productID string, limit, offset int) (*dto.StockMovementListResponse, error) {
	var (
		list []*entity.StockMovement
		err  error
	)
	if productID != "" {
		list, err = uc.movementRepo.ListByProduct(ctx, organizationID, productID, limit, offset)
	} else {
		list, err = uc.movementRepo.ListByOrganization(ctx, organizationID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.StockMovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ToMovementResponse convierte la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	if m == nil {
		return nil
	}
	return &dto.StockMovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		Total:      m.Total,
		StockAfter: m.StockAfter,
		Reference:  m.Reference,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
	}
}
