package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-admin/internal/application/usecase"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/memory"
)

func TestSeedAdmin_Idempotente(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, seedAdmin(ctx, s.Users(), "Admin@Example.com", "clave-segura", "Admin"))
	require.NoError(t, seedAdmin(ctx, s.Users(), "admin@example.com", "otra-clave", "Otro"))

	u, err := s.Users().GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.Equal(t, "Admin", u.FirstName)

	assert.Error(t, seedAdmin(ctx, s.Users(), "nuevo@example.com", "corta", "X"))
}

func TestSeedCatalog(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	catalog := usecase.NewCatalogUseCase(s, s.Catalog(), s.Items(), s.Activity())

	path := filepath.Join(t.TempDir(), "catalogo.csv")
	require.NoError(t, os.WriteFile(path, []byte("brand,model,color\nSamsung,A55,Negro\nSamsung,A55,Azul\n"), 0o644))

	n, err := seedCatalog(ctx, catalog, path, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	brands, err := catalog.ListBrands(ctx)
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, "Samsung", brands[0].Name)

	bad := filepath.Join(t.TempDir(), "malo.csv")
	require.NoError(t, os.WriteFile(bad, []byte("marca,modelo\nX,Y\n"), 0o644))
	_, err = seedCatalog(ctx, catalog, bad, false)
	assert.Error(t, err)
}
