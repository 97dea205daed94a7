package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-admin/internal/domain/repository"
)

func TestWhere_Placeholders(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var w where
	w.add("m.item_id = ?", "it-1")
	w.add("(a ILIKE ? OR b ILIKE ?)", "%x%", "%x%")
	w.dateRange("m.created_at", repository.DateRange{From: &from})

	assert.Equal(t, " WHERE m.item_id = $1 AND (a ILIKE $2 OR b ILIKE $3) AND m.created_at >= $4", w.sql())
	assert.Equal(t, " LIMIT $5 OFFSET $6", w.page(repository.Page{Limit: 20, Offset: 40}))
	assert.Len(t, w.args, 6)
}

func TestWhere_Vacio(t *testing.T) {
	var w where
	assert.Equal(t, "", w.sql())
	assert.Equal(t, "", w.page(repository.Page{}))
	assert.Empty(t, w.args)
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "x", nullable("x"))
}
