package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seraphine/internal/domain/catalog"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Barcode       string          `json:"barcode"`
	Category      string          `json:"category"`
	DosageForm    string          `json:"dosage_form"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	VATRate       decimal.Decimal `json:"vat_rate"`
	Stock         int64           `json:"stock"`
	Threshold     int64           `json:"threshold"`
	Notes         string          `json:"notes"`
}

// UpdateProductRequest entrada para actualizar un producto. Stock y precio de compra
// se mueven con compras, ventas y ajustes.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Barcode      *string          `json:"barcode"`
	Category     *string          `json:"category"`
	DosageForm   *string          `json:"dosage_form"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	VATRate      *decimal.Decimal `json:"vat_rate"`
	Threshold    *int64           `json:"threshold"`
	Notes        *string          `json:"notes"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	Name           string          `json:"name"`
	Barcode        string          `json:"barcode"`
	Category       string          `json:"category"`
	DosageForm     string          `json:"dosage_form"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	VATRate        decimal.Decimal `json:"vat_rate"`
	Stock          int64           `json:"stock"`
	Threshold      int64           `json:"threshold"`
	LowStock       bool            `json:"low_stock"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ImportOptions opciones de POST /api/products/import.
type ImportOptions struct {
	DryRun     bool
	SkipHeader bool // descarta la primera línea no vacía sin alterar la numeración
}

// ImportResponse resultado de una importación por lotes.
// En dry_run Drafts trae los borradores aceptados; si no, Items trae los productos creados.
type ImportResponse struct {
	DryRun  bool                   `json:"dry_run"`
	Created int                    `json:"created"`
	Drafts  []catalog.ProductDraft `json:"drafts,omitempty"`
	Items   []ProductResponse      `json:"items"`
	Errors  []catalog.LineError    `json:"errors"`
}
