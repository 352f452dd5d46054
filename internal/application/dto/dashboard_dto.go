package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	ProductCount    int             `json:"product_count"`
	LowStockCount   int             `json:"low_stock_count"`  // stock <= umbral
	StockValueCost  decimal.Decimal `json:"stock_value_cost"` // valorizado a precio de compra
	StockValueSale  decimal.Decimal `json:"stock_value_sale"` // valorizado a precio de venta
	PotentialMargin decimal.Decimal `json:"potential_margin"`
	LowStock        []LowStockDTO   `json:"low_stock"`
}

// LowStockDTO producto en alerta para el widget del dashboard.
type LowStockDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Barcode   string `json:"barcode"`
	Stock     int64  `json:"stock"`
	Threshold int64  `json:"threshold"`
}
