//go:build integration

package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestRedisQueue(t *testing.T) {
	ctx := context.Background()
	container, err := tcredis.RunContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := NewRedis(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	q := NewRedisQueue(rdb, "test:jobs")
	require.NoError(t, q.Enqueue(ctx, []byte("uno")))
	require.NoError(t, q.Enqueue(ctx, []byte("dos")))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	p, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "uno", string(p))
	p, err = q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dos", string(p))

	short, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err = q.Dequeue(short)
	assert.Error(t, err)
}
