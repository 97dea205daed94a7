package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWeightedCost(t *testing.T) {
	got := WeightedCost(10, decimal.NewFromInt(100), 10, decimal.NewFromInt(200))
	assert.Equal(t, "150.00", got.StringFixed(2))

	// sin stock previo el costo es el de la entrada
	got = WeightedCost(0, decimal.NewFromInt(999), 5, decimal.RequireFromString("12.5"))
	assert.Equal(t, "12.50", got.StringFixed(2))

	// stock negativo no pondera
	got = WeightedCost(-4, decimal.NewFromInt(50), 2, decimal.NewFromInt(10))
	assert.Equal(t, "10.00", got.StringFixed(2))

	assert.True(t, WeightedCost(0, decimal.Zero, 0, decimal.Zero).IsZero())
}
