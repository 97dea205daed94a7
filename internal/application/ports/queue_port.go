package ports

import (
	"context"
	"errors"
)

// ErrQueueClosed lo devuelve Dequeue cuando la cola se cerró.
var ErrQueueClosed = errors.New("cola cerrada")

// JobQueue cola de trabajos en segundo plano (exportaciones).
type JobQueue interface {
	Enqueue(ctx context.Context, payload []byte) error
	// Dequeue bloquea hasta que haya un trabajo, se cancele ctx o se cierre la cola.
	Dequeue(ctx context.Context) ([]byte, error)
}

// Mailer envía correos (aviso de exportación lista).
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string, attachments ...string) error
}
