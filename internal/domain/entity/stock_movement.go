package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeSale       = "SALE"       // salida por venta
	MovementTypePurchase   = "PURCHASE"   // entrada por compra
	MovementTypeAdjustment = "ADJUSTMENT" // ajuste de inventario (delta con signo)
)

// StockMovement movimiento de stock de un producto.
type StockMovement struct {
	ID             string
	OrganizationID string
	ProductID      string
	Type           string
	Quantity       int64           // positivo entrada, negativo salida
	UnitPrice      decimal.Decimal // costo unitario en compras, precio de venta en ventas
	Total          decimal.Decimal
	StockAfter     int64
	Reference      string // nº de ticket, factura de proveedor, motivo del ajuste
	CreatedBy      string
	CreatedAt      time.Time
}
