// Package queue implementa ports.JobQueue sobre Redis (LPUSH/BRPOP) o en memoria.
package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKey lista de Redis de los trabajos de exportación.
const DefaultKey = "jobs:export"

// pollTimeout tiempo máximo de cada BRPOP antes de volver a mirar ctx.
const pollTimeout = 5 * time.Second

// NewRedis crea el cliente y valida la conexión.
func NewRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return rdb, nil
}

// RedisQueue cola FIFO: LPUSH al encolar, BRPOP al consumir.
type RedisQueue struct {
	rdb *redis.Client
	key string
}

// NewRedisQueue usa DefaultKey si key está vacío.
func NewRedisQueue(rdb *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = DefaultKey
	}
	return &RedisQueue{rdb: rdb, key: key}
}

func (q *RedisQueue) Enqueue(ctx context.Context, payload []byte) error {
	return q.rdb.LPush(ctx, q.key, payload).Err()
}

// Dequeue bloquea en BRPOP con timeouts cortos hasta recibir un trabajo o cancelarse ctx.
func (q *RedisQueue) Dequeue(ctx context.Context) ([]byte, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := q.rdb.BRPop(ctx, pollTimeout, q.key).Result()
		switch {
		case errors.Is(err, redis.Nil):
			continue
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		case len(res) < 2:
			continue
		}
		return []byte(res[1]), nil
	}
}

// Len trabajos pendientes.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, q.key).Result()
}
