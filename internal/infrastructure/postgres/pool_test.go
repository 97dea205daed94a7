package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWithIPv4Host(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "postgres://u:p@127.0.0.1:5432/inv?sslmode=disable",
		withIPv4Host(ctx, "postgres://u:p@127.0.0.1/inv?sslmode=disable"), "agrega el puerto por defecto")
	assert.Equal(t, "postgres://u:p@10.0.0.5:6543/inv",
		withIPv4Host(ctx, "postgres://u:p@10.0.0.5:6543/inv"))

	kv := "host=localhost user=postgres dbname=inv"
	assert.Equal(t, kv, withIPv4Host(ctx, kv), "DSN key=value no se toca")

	v6 := "postgres://u:p@[::1]:5432/inv"
	assert.Equal(t, v6, withIPv4Host(ctx, v6), "host IPv6 sin equivalente IPv4")
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(fmt.Errorf("stock: %w", &pgconn.PgError{Code: "40P01"})))
	assert.True(t, retryable(&pgconn.PgError{Code: "40001"}))
	assert.False(t, retryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, retryable(errors.New("otro")))
}
