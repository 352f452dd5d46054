package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seraphine/internal/application/report"
	"github.com/jhoicas/seraphine/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00 DH",
		"12.5":      "12,50 DH",
		"1234":      "1 234,00 DH",
		"1234567.5": "1 234 567,50 DH",
		"-950.255":  "-950,26 DH",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateStockReportPDF(t *testing.T) {
	r := &report.StockReport{
		Organization: &entity.Organization{Name: "Pharmacie Atlas", ICE: "001234567000089"},
		GeneratedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Products: []*entity.Product{
			{Name: "Doliprane", Barcode: "611", Stock: 20, Threshold: 5, PurchasePrice: decimal.NewFromInt(8), SellingPrice: decimal.NewFromInt(12)},
			{Name: "Smecta", Stock: 1, Threshold: 3},
		},
		LowStockCount:  1,
		StockValueCost: decimal.NewFromInt(160),
		StockValueSale: decimal.NewFromInt(240),
	}

	out, err := NewMarotoReportGenerator().GenerateStockReportPDF(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = NewMarotoReportGenerator().GenerateStockReportPDF(context.Background(), &report.StockReport{})
	assert.Error(t, err)
}
