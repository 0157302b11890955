// Package workpool runs conversions on a fixed set of workers with a bounded
// wait queue, backed by ants.
package workpool

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/html2md/internal/metrics"
)

// ErrOverloaded is returned by Submit when the wait queue is full.
var ErrOverloaded = errors.New("worker pool overloaded")

// Pool is a fixed-size worker pool.
type Pool struct {
	pool    *ants.Pool
	log     *zap.Logger
	metrics *metrics.Metrics
}

// New creates a pool with size workers. At most queueSize submissions wait
// for a worker; 0 means the queue is unbounded.
func New(size, queueSize int, log *zap.Logger, m *metrics.Metrics) (*Pool, error) {
	if log == nil {
		log = zap.NewNop()
	}

	p, err := ants.NewPool(size,
		ants.WithMaxBlockingTasks(queueSize),
		ants.WithPanicHandler(func(v any) {
			log.Error("worker panic escaped task", zap.Any("panic", v))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}
	return &Pool{pool: p, log: log, metrics: m}, nil
}

// Running returns the number of busy workers.
func (p *Pool) Running() int { return p.pool.Running() }

// Waiting returns the number of submissions waiting for a worker.
func (p *Pool) Waiting() int { return p.pool.Waiting() }

// Release stops the workers. Tasks already running finish.
func (p *Pool) Release() { p.pool.Release() }

// Future is the pending result of a submitted task.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Wait blocks until the task finishes or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Submit queues fn on p. fn receives ctx; a panic inside fn resolves the
// future with an error instead of killing the worker.
func Submit[T any](ctx context.Context, p *Pool, fn func(context.Context) (T, error)) (*Future[T], error) {
	f := &Future[T]{done: make(chan struct{})}

	task := func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				p.log.Error("task panicked", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				f.err = fmt.Errorf("task panicked: %v", r)
			}
		}()
		p.metrics.QueueDepth(p.pool.Waiting())

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.value, f.err = fn(ctx)
	}

	if err := p.pool.Submit(task); err != nil {
		if errors.Is(err, ants.ErrPoolOverload) {
			return nil, ErrOverloaded
		}
		return nil, fmt.Errorf("submitting task: %w", err)
	}
	p.metrics.QueueDepth(p.pool.Waiting())
	return f, nil
}
