// Package analytics contiene los casos de uso de lectura para el dashboard de la farmacia.
package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/seraphine/internal/application/dto"
	"github.com/jhoicas/seraphine/internal/domain/entity"
	"github.com/jhoicas/seraphine/internal/domain/repository"
)

const dashboardLowStockItems = 10 // productos en el widget de alertas

// DashboardUseCase genera el resumen del catálogo de la organización.
//
// Fuente de datos: ProductRepository (consultas read-only).
type DashboardUseCase struct {
	productRepo repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(productRepo repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo}
}

// GetSummary construye el DashboardSummaryDTO para la organización indicada.
//
// Dos consultas en paralelo:
//  1. Stats           → conteos y valorización del stock
//  2. ListLowStock    → productos con stock <= umbral
func (uc *DashboardUseCase) GetSummary(ctx context.Context, organizationID string) (*dto.DashboardSummaryDTO, error) {
	var (
		stats *repository.ProductStats
		low   []*entity.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := uc.productRepo.Stats(gctx, organizationID)
		if err != nil {
			return fmt.Errorf("dashboard: estadísticas: %w", err)
		}
		stats = s
		return nil
	})
	g.Go(func() error {
		l, err := uc.productRepo.ListLowStock(gctx, organizationID, dashboardLowStockItems)
		if err != nil {
			return fmt.Errorf("dashboard: stock bajo: %w", err)
		}
		low = l
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &repository.ProductStats{}
	}

	lowStock := make([]dto.LowStockDTO, 0, len(low))
	for _, p := range low {
		lowStock = append(lowStock, dto.LowStockDTO{
			ProductID: p.ID,
			Name:      p.Name,
			Barcode:   p.Barcode,
			Stock:     p.Stock,
			Threshold: p.Threshold,
		})
	}

	return &dto.DashboardSummaryDTO{
		ProductCount:    stats.ProductCount,
		LowStockCount:   stats.LowStockCount,
		StockValueCost:  stats.StockValueCost.Round(2),
		StockValueSale:  stats.StockValueSale.Round(2),
		PotentialMargin: stats.StockValueSale.Sub(stats.StockValueCost).Round(2),
		LowStock:        lowStock,
	}, nil
}
