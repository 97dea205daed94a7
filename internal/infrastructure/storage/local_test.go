package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-admin/internal/domain"
)

func TestLocalStore_SaveOpenRemove(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	n, err := s.Save(ctx, "items/a.jpg", strings.NewReader("hola"))
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)

	rc, err := s.Open(ctx, "items/a.jpg")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "hola", string(b))

	require.NoError(t, s.Remove(ctx, "items/a.jpg"))
	require.NoError(t, s.Remove(ctx, "items/a.jpg"), "borrar dos veces no falla")

	_, err = s.Open(ctx, "items/a.jpg")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLocalStore_RechazaRutasFuera(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "../x.txt", strings.NewReader("x"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
