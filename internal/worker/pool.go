// Package worker consume la cola de trabajos en segundo plano con N goroutines.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/inventory-admin/internal/application/ports"
	"github.com/jhoicas/inventory-admin/pkg/logger"
)

// Handler procesa un mensaje de la cola.
type Handler interface {
	Handle(ctx context.Context, payload []byte) error
}

// HandlerFunc adapta una función a Handler.
type HandlerFunc func(ctx context.Context, payload []byte) error

func (f HandlerFunc) Handle(ctx context.Context, payload []byte) error { return f(ctx, payload) }

// errorBackoff pausa tras un error de la cola para no girar en vacío si Redis cae.
const errorBackoff = 2 * time.Second

// Pool grupo de workers sobre una JobQueue.
type Pool struct {
	queue   ports.JobQueue
	handler Handler
	size    int
	log     *logger.Logger
	wg      sync.WaitGroup
}

// NewPool crea el pool; size <= 0 usa un worker.
func NewPool(queue ports.JobQueue, handler Handler, size int, log *logger.Logger) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{queue: queue, handler: handler, size: size, log: log.Named("worker")}
}

// Start lanza los workers; terminan cuando ctx se cancela o la cola se cierra.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	p.log.Info().Int("workers", p.size).Msg("worker pool iniciado")
}

// Wait bloquea hasta que todos los workers terminen.
func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		payload, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, ports.ErrQueueClosed) {
				p.log.Debug().Int("worker", id).Msg("worker detenido")
				return
			}
			p.log.Error().Err(err).Int("worker", id).Msg("error leyendo la cola")
			select {
			case <-ctx.Done():
				return
			case <-time.After(errorBackoff):
			}
			continue
		}
		p.process(ctx, id, payload)
	}
}

// process aísla los panics de un trabajo para que no tumben al worker.
func (p *Pool) process(ctx context.Context, id int, payload []byte) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Int("worker", id).Msg("panic procesando trabajo")
		}
	}()
	if err := p.handler.Handle(ctx, payload); err != nil {
		p.log.Error().Err(err).Int("worker", id).Msg("trabajo fallido")
	}
}
