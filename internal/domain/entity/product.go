package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo de una farmacia (organización).
// PurchasePrice es costo promedio ponderado actualizado por las compras; Stock se mueve vía StockMovement.
type Product struct {
	ID             string
	OrganizationID string
	Name           string
	Barcode        string // único por organización cuando no está vacío
	Category       string
	DosageForm     string
	PurchasePrice  decimal.Decimal
	SellingPrice   decimal.Decimal
	VATRate        decimal.Decimal // TVA en %, p.ej. 7 o 20
	Stock          int64
	Threshold      int64 // alerta de reposición cuando Stock <= Threshold
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsLowStock informa si el producto está en o por debajo de su umbral.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.Threshold
}

// StockValue valor del stock a precio de compra y a precio de venta.
func (p *Product) StockValue() (atCost, atPrice decimal.Decimal) {
	qty := decimal.NewFromInt(p.Stock)
	return qty.Mul(p.PurchasePrice), qty.Mul(p.SellingPrice)
}
