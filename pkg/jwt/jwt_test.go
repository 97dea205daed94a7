package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/inventory-admin/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "user-1", "staff", "inventory-admin-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "staff", role)
}

func TestGenerate_TokensDistintos(t *testing.T) {
	a, err := pkgjwt.Generate(testSecret, "user-1", "staff", "x", 60)
	require.NoError(t, err)
	b, err := pkgjwt.Generate(testSecret, "user-1", "staff", "x", 60)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "cada token lleva su propio jti")
}

func TestParse_TokenExpirado(t *testing.T) {
	// -5 minutos queda fuera de la tolerancia de reloj
	tok, err := pkgjwt.Generate(testSecret, "user-1", "admin", "x", -5)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrExpired)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "user-1", "admin", "x", 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret", tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}

func TestParse_Basura(t *testing.T) {
	_, _, err := pkgjwt.Parse(testSecret, "no.es.jwt")
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "user-1", "admin", "x", 60)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}
