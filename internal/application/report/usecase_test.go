package report_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seraphine/internal/application/report"
	"github.com/jhoicas/seraphine/internal/domain"
	"github.com/jhoicas/seraphine/internal/domain/entity"
	"github.com/jhoicas/seraphine/internal/domain/repository"
)

type orgRepo struct {
	repository.OrganizationRepository
}

func (orgRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	if id != "org-1" {
		return nil, nil
	}
	return &entity.Organization{ID: id, Name: "Pharmacie Atlas"}, nil
}

type productRepo struct {
	repository.ProductRepository
	items []*entity.Product
	calls int
}

func (r *productRepo) ListByOrganization(_ context.Context, _, _ string, limit, offset int) ([]*entity.Product, error) {
	r.calls++
	if offset >= len(r.items) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.items) {
		end = len(r.items)
	}
	return r.items[offset:end], nil
}

type captureGen struct{ got *report.StockReport }

func (g *captureGen) GenerateStockReportPDF(_ context.Context, r *report.StockReport) ([]byte, error) {
	g.got = r
	return []byte("%PDF-fake"), nil
}

func TestDownloadStockPDF_RecorreTodasLasPaginas(t *testing.T) {
	products := &productRepo{}
	for i := 0; i < 501; i++ {
		products.items = append(products.items, &entity.Product{
			ID:            fmt.Sprintf("p%d", i),
			Stock:         2,
			Threshold:     1,
			PurchasePrice: decimal.NewFromInt(1),
			SellingPrice:  decimal.NewFromInt(2),
		})
	}
	products.items[0].Stock = 0

	gen := &captureGen{}
	uc := report.NewReportUseCase(orgRepo{}, products, gen)

	out, name, err := uc.DownloadStockPDF(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(out))
	assert.Regexp(t, `^stock_\d{8}\.pdf$`, name)
	assert.Equal(t, 2, products.calls)

	require.NotNil(t, gen.got)
	assert.Len(t, gen.got.Products, 501)
	assert.Equal(t, 1, gen.got.LowStockCount)
	assert.Equal(t, "1000", gen.got.StockValueCost.String())
	assert.Equal(t, "2000", gen.got.StockValueSale.String())
}

func TestDownloadStockPDF_OrganizacionInexistente(t *testing.T) {
	uc := report.NewReportUseCase(orgRepo{}, &productRepo{}, &captureGen{})
	_, _, err := uc.DownloadStockPDF(context.Background(), "org-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
