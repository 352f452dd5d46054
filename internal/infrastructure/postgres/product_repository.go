package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/seraphine/internal/domain"
	"github.com/jhoicas/seraphine/internal/domain/entity"
	"github.com/jhoicas/seraphine/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, organization_id, name, COALESCE(barcode, ''), category, dosage_form,
	purchase_price, selling_price, vat_rate, stock, threshold, notes, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.Name, &p.Barcode, &p.Category, &p.DosageForm,
		&p.PurchasePrice, &p.SellingPrice, &p.VATRate, &p.Stock, &p.Threshold, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. Código de barras vacío se guarda como NULL.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, organization_id, name, barcode, category, dosage_form,
			purchase_price, selling_price, vat_rate, stock, threshold, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.OrganizationID, p.Name, nullableString(p.Barcode), p.Category, p.DosageForm,
		p.PurchasePrice, p.SellingPrice, p.VATRate, p.Stock, p.Threshold, p.Notes,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// GetByID obtiene un producto de la organización por ID.
func (r *ProductRepo) GetByID(ctx context.Context, organizationID, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product",
		`SELECT `+productColumns+` FROM products WHERE organization_id = $1 AND id = $2`,
		organizationID, id)
}

// GetForUpdate como GetByID pero bloqueando la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, organizationID, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product for update",
		`SELECT `+productColumns+` FROM products WHERE organization_id = $1 AND id = $2 FOR UPDATE`,
		organizationID, id)
}

// GetByBarcode obtiene un producto por organización y código de barras.
func (r *ProductRepo) GetByBarcode(ctx context.Context, organizationID, barcode string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by barcode",
		`SELECT `+productColumns+` FROM products WHERE organization_id = $1 AND barcode = $2`,
		organizationID, barcode)
}

// Update actualiza los campos descriptivos. No modifica stock ni precio de compra (se manejan vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $3, barcode = $4, category = $5, dosage_form = $6,
			selling_price = $7, vat_rate = $8, threshold = $9, notes = $10, updated_at = $11
		WHERE organization_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.OrganizationID, p.ID, p.Name, nullableString(p.Barcode), p.Category, p.DosageForm,
		p.SellingPrice, p.VATRate, p.Threshold, p.Notes, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija stock y costo promedio (usado por el motor de inventario dentro de la tx).
func (r *ProductRepo) UpdateStock(ctx context.Context, productID string, stock int64, purchasePrice decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET stock = $2, purchase_price = $3, updated_at = now() WHERE id = $1`,
		productID, stock, purchasePrice,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

func (r *ProductRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListByOrganization lista productos por nombre con paginación. search filtra por nombre (ILIKE) o código exacto.
func (r *ProductRepo) ListByOrganization(ctx context.Context, organizationID, search string, limit, offset int) ([]*entity.Product, error) {
	if search == "" {
		return r.list(ctx, "list products",
			`SELECT `+productColumns+` FROM products WHERE organization_id = $1
			 ORDER BY name, id LIMIT $2 OFFSET $3`,
			organizationID, limit, offset)
	}
	return r.list(ctx, "search products",
		`SELECT `+productColumns+` FROM products WHERE organization_id = $1
		   AND (name ILIKE $2 OR barcode = $3)
		 ORDER BY name, id LIMIT $4 OFFSET $5`,
		organizationID, likePattern(search), search, limit, offset)
}

// ListLowStock productos con stock <= umbral, los más críticos primero.
func (r *ProductRepo) ListLowStock(ctx context.Context, organizationID string, limit int) ([]*entity.Product, error) {
	return r.list(ctx, "list low stock",
		`SELECT `+productColumns+` FROM products WHERE organization_id = $1 AND stock <= threshold
		 ORDER BY stock - threshold, name LIMIT $2`,
		organizationID, limit)
}

// Stats agregados del catálogo en una sola consulta.
func (r *ProductRepo) Stats(ctx context.Context, organizationID string) (*repository.ProductStats, error) {
	const query = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE stock <= threshold),
		       COALESCE(SUM(stock * purchase_price), 0),
		       COALESCE(SUM(stock * selling_price), 0)
		  FROM products
		 WHERE organization_id = $1`
	var s repository.ProductStats
	if err := r.q.QueryRow(ctx, query, organizationID).Scan(
		&s.ProductCount, &s.LowStockCount, &s.StockValueCost, &s.StockValueSale,
	); err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}
	return &s, nil
}

// Delete elimina un producto de la organización. domain.ErrNotFound si no existía.
func (r *ProductRepo) Delete(ctx context.Context, organizationID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE organization_id = $1 AND id = $2`, organizationID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
