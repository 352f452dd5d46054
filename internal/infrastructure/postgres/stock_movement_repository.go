package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/seraphine/internal/domain/entity"
	"github.com/jhoicas/seraphine/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, organization_id, product_id, type, quantity, unit_price, total, stock_after,
	reference, COALESCE(created_by::text, ''), created_at`

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, organization_id, product_id, type, quantity, unit_price, total,
			stock_after, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.OrganizationID, m.ProductID, m.Type, m.Quantity, m.UnitPrice, m.Total,
		m.StockAfter, m.Reference, nullableString(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.OrganizationID, &m.ProductID, &m.Type, &m.Quantity, &m.UnitPrice,
			&m.Total, &m.StockAfter, &m.Reference, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListByProduct movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, organizationID, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(ctx,
		`SELECT `+movementColumns+` FROM stock_movements
		 WHERE organization_id = $1 AND product_id = $2
		 ORDER BY created_at DESC, id LIMIT $3 OFFSET $4`,
		organizationID, productID, limit, offset)
}

// ListByOrganization movimientos de la organización, más recientes primero.
func (r *StockMovementRepo) ListByOrganization(ctx context.Context, organizationID string, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(ctx,
		`SELECT `+movementColumns+` FROM stock_movements
		 WHERE organization_id = $1
		 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		organizationID, limit, offset)
}
