//go:generate mockgen -source=limiter.go -destination=limiter_mock.go -package=limiter
package limiter

import (
	"context"

	"blogd/internal/config"
)

// Limiter bounds the number of requests handled at the same time
type Limiter interface {
	Acquire(ctx context.Context) error
	Release()
	InFlight() int
}

// limiter implements the Limiter interface
type limiter struct {
	sem chan struct{}
}

// NewLimiter creates a limiter sized by server.max_in_flight
func NewLimiter(cfg *config.Config) Limiter {
	return &limiter{
		sem: make(chan struct{}, cfg.Server.MaxInFlight),
	}
}

// Acquire takes a slot, blocking while all slots are busy; it returns ctx.Err() once ctx is done
func (l *limiter) Acquire(ctx context.Context) error {
	select {
	case l.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot taken by Acquire
func (l *limiter) Release() {
	<-l.sem
}

// InFlight returns the number of slots currently held
func (l *limiter) InFlight() int {
	return len(l.sem)
}
