package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-admin/internal/domain/entity"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		qty  int
		want entity.ItemStatus
	}{
		{-3, entity.StatusOutOfStock},
		{0, entity.StatusOutOfStock},
		{1, entity.StatusLowStock},
		{9, entity.StatusLowStock},
		{10, entity.StatusReadyStock},
		{250, entity.StatusReadyStock},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveStatus(tt.qty), "qty=%d", tt.qty)
	}
}

func TestApplyQuantity(t *testing.T) {
	item := &entity.Item{Quantity: 20, Status: entity.StatusReadyStock}
	ApplyQuantity(item, 4)
	assert.Equal(t, 4, item.Quantity)
	assert.Equal(t, entity.StatusLowStock, item.Status)
}
