package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seraphine/internal/domain"
	"github.com/jhoicas/seraphine/internal/domain/entity"
	"github.com/jhoicas/seraphine/internal/domain/repository"
)

const pageSize = 500

// ReportUseCase arma el informe de stock de una organización.
type ReportUseCase struct {
	orgRepo     repository.OrganizationRepository
	productRepo repository.ProductRepository
	generator   StockReportGenerator
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso inyectando sus dependencias.
func NewReportUseCase(orgRepo repository.OrganizationRepository, productRepo repository.ProductRepository, generator StockReportGenerator) *ReportUseCase {
	return &ReportUseCase{orgRepo: orgRepo, productRepo: productRepo, generator: generator, now: time.Now}
}

// BuildStockReport recorre el catálogo completo y calcula totales.
func (uc *ReportUseCase) BuildStockReport(ctx context.Context, organizationID string) (*StockReport, error) {
	org, err := uc.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("informe: obtener organización: %w", err)
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}

	r := &StockReport{
		Organization:   org,
		GeneratedAt:    uc.now(),
		Products:       []*entity.Product{},
		StockValueCost: decimal.Zero,
		StockValueSale: decimal.Zero,
	}
	for offset := 0; ; offset += pageSize {
		page, err := uc.productRepo.ListByOrganization(ctx, organizationID, "", pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("informe: listar productos: %w", err)
		}
		for _, p := range page {
			cost, sale := p.StockValue()
			r.StockValueCost = r.StockValueCost.Add(cost)
			r.StockValueSale = r.StockValueSale.Add(sale)
			if p.IsLowStock() {
				r.LowStockCount++
			}
		}
		r.Products = append(r.Products, page...)
		if len(page) < pageSize {
			break
		}
	}
	return r, nil
}

// DownloadStockPDF genera el PDF del informe de stock.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la organización no existe.
func (uc *ReportUseCase) DownloadStockPDF(ctx context.Context, organizationID string) ([]byte, string, error) {
	r, err := uc.BuildStockReport(ctx, organizationID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateStockReportPDF(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("informe: generación fallida: %w", err)
	}
	filename := fmt.Sprintf("stock_%s.pdf", r.GeneratedAt.Format("20060102"))
	return pdfBytes, filename, nil
}
