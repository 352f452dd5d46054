// Package report contiene los casos de uso de los informes descargables (módulo rapports).
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seraphine/internal/domain/entity"
)

// StockReport datos ya calculados del informe de stock.
type StockReport struct {
	Organization   *entity.Organization
	GeneratedAt    time.Time
	Products       []*entity.Product
	LowStockCount  int
	StockValueCost decimal.Decimal
	StockValueSale decimal.Decimal
}

// StockReportGenerator puerto de salida para renderizar el informe de stock.
// La implementación (Maroto) vive en infrastructure/pdf.
type StockReportGenerator interface {
	GenerateStockReportPDF(ctx context.Context, r *StockReport) ([]byte, error)
}
