package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRequest body para POST /api/sales.
type SaleRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"` // vacío = precio de venta del producto
	Reference string           `json:"reference"`
}

// PurchaseRequest body para POST /api/purchases.
type PurchaseRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Reference string          `json:"reference"`
}

// AdjustmentRequest body para POST /api/inventory/adjustments. Delta con signo.
type AdjustmentRequest struct {
	ProductID string `json:"product_id"`
	Delta     int64  `json:"delta"`
	Reason    string `json:"reason"`
}

// StockMovementResponse salida de un movimiento.
type StockMovementResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Type       string          `json:"type"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Total      decimal.Decimal `json:"total"`
	StockAfter int64           `json:"stock_after"`
	Reference  string          `json:"reference"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

// StockMovementListResponse lista paginada de movimientos.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
