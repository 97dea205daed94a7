package queue

import (
	"context"
	"sync"

	"github.com/jhoicas/inventory-admin/internal/application/ports"
)

// MemoryQueue cola en proceso para desarrollo y tests (sin Redis).
// Los trabajos pendientes se pierden al reiniciar.
type MemoryQueue struct {
	ch        chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryQueue crea una cola con el buffer indicado.
func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 100
	}
	return &MemoryQueue{ch: make(chan []byte, size), done: make(chan struct{})}
}

// Enqueue bloquea si el buffer está lleno.
func (q *MemoryQueue) Enqueue(ctx context.Context, payload []byte) error {
	select {
	case <-q.done:
		return ports.ErrQueueClosed
	default:
	}
	select {
	case q.ch <- append([]byte(nil), payload...):
		return nil
	case <-q.done:
		return ports.ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) ([]byte, error) {
	select {
	case p := <-q.ch:
		return p, nil
	case <-q.done:
		return nil, ports.ErrQueueClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close despierta a los consumidores bloqueados; Enqueue posteriores fallan.
func (q *MemoryQueue) Close() {
	q.closeOnce.Do(func() { close(q.done) })
}

// Len trabajos pendientes.
func (q *MemoryQueue) Len() int { return len(q.ch) }
