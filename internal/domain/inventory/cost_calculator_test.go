package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/seraphine/internal/domain/inventory"
)

func TestWeightedAverageCost(t *testing.T) {
	// 10 uds a 8.00 + 30 uds a 12.00 = 440 / 40 = 11.00
	got := inventory.WeightedAverageCost(10, decimal.NewFromInt(8), 30, decimal.NewFromInt(12))
	assert.True(t, got.Equal(decimal.NewFromInt(11)), "got %s", got)
}

func TestWeightedAverageCost_SinStockPrevio(t *testing.T) {
	got := inventory.WeightedAverageCost(0, decimal.NewFromInt(99), 5, decimal.RequireFromString("10.5"))
	assert.True(t, got.Equal(decimal.RequireFromString("10.5")))
}

func TestWeightedAverageCost_SinEntrada(t *testing.T) {
	got := inventory.WeightedAverageCost(5, decimal.NewFromInt(7), 0, decimal.NewFromInt(100))
	assert.True(t, got.Equal(decimal.NewFromInt(7)))
}

func TestWeightedAverageCost_Redondeo(t *testing.T) {
	// (1*1 + 2*2) / 3 = 1.6666... -> 1.6667
	got := inventory.WeightedAverageCost(1, decimal.NewFromInt(1), 2, decimal.NewFromInt(2))
	assert.Equal(t, "1.6667", got.String())
}

func TestApplyDelta(t *testing.T) {
	next, ok := inventory.ApplyDelta(5, -5)
	assert.True(t, ok)
	assert.Equal(t, int64(0), next)

	next, ok = inventory.ApplyDelta(5, -6)
	assert.False(t, ok)
	assert.Equal(t, int64(5), next)

	next, ok = inventory.ApplyDelta(5, 3)
	assert.True(t, ok)
	assert.Equal(t, int64(8), next)
}
