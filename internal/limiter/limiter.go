// Package limiter caps how many outbound calls run at the same time.
//
// Admission is FIFO: a caller that starts waiting first is admitted first.
// A slot taken through Acquire must be given back exactly once through the
// returned release func; Do does that on every exit path.
package limiter

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/semaphore"
)

// Limiter is a bounded admission gate.
type Limiter struct {
	name string
	size int64
	sem  *semaphore.Weighted

	inFlight atomic.Int64
	peak     atomic.Int64

	gauge prometheus.Gauge
	waits prometheus.Counter
}

type Option func(*Limiter)

// WithGauge mirrors the number of admitted operations into g.
func WithGauge(g prometheus.Gauge) Option {
	return func(l *Limiter) { l.gauge = g }
}

// WithWaitCounter increments c whenever a caller has to queue.
func WithWaitCounter(c prometheus.Counter) Option {
	return func(l *Limiter) { l.waits = c }
}

// New returns a limiter admitting at most n operations at once.
func New(name string, n int, opts ...Option) *Limiter {
	if n <= 0 {
		panic(fmt.Sprintf("limiter %s: size must be positive, got %d", name, n))
	}
	l := &Limiter{
		name: name,
		size: int64(n),
		sem:  semaphore.NewWeighted(int64(n)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Acquire blocks until a slot is free or ctx is done.
func (l *Limiter) Acquire(ctx context.Context) (release func(), err error) {
	if !l.sem.TryAcquire(1) {
		if l.waits != nil {
			l.waits.Inc()
		}
		if err := l.sem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("limiter %s: %w", l.name, err)
		}
	}

	l.admitted()

	var once sync.Once
	return func() {
		once.Do(l.released)
	}, nil
}

// Do runs fn while holding a slot.
func Do[T any](ctx context.Context, l *Limiter, fn func(context.Context) (T, error)) (T, error) {
	release, err := l.Acquire(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	defer release()

	return fn(ctx)
}

func (l *Limiter) admitted() {
	n := l.inFlight.Add(1)
	for {
		p := l.peak.Load()
		if n <= p || l.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if l.gauge != nil {
		l.gauge.Inc()
	}
}

func (l *Limiter) released() {
	l.inFlight.Add(-1)
	if l.gauge != nil {
		l.gauge.Dec()
	}
	l.sem.Release(1)
}

// Name returns the label the limiter was created with.
func (l *Limiter) Name() string { return l.name }

// Cap returns the configured number of slots.
func (l *Limiter) Cap() int { return int(l.size) }

// InFlight returns the number of operations currently admitted.
func (l *Limiter) InFlight() int { return int(l.inFlight.Load()) }

// Peak returns the highest InFlight value observed since creation.
func (l *Limiter) Peak() int { return int(l.peak.Load()) }
