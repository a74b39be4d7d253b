package collector

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Gate enforces a fixed minimum interval between successive requests on one
// logical timeline. Reservations are taken against an injectable clock, so the
// schedule can be tested without real waiting.
type Gate struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	now     func() time.Time
	sleep   SleepFunc
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithGateClock replaces time.Now.
func WithGateClock(now func() time.Time) GateOption {
	return func(g *Gate) { g.now = now }
}

// WithGateSleep replaces the context-aware timer sleep.
func WithGateSleep(sleep SleepFunc) GateOption {
	return func(g *Gate) { g.sleep = sleep }
}

// NewGate creates a gate letting one request through per interval. The first
// request passes immediately. A zero interval never blocks.
func NewGate(interval time.Duration, opts ...GateOption) *Gate {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	g := &Gate{
		limiter: rate.NewLimiter(limit, 1),
		now:     time.Now,
		sleep:   sleepContext,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Wait blocks until the caller may issue its request.
func (g *Gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	now := g.now()
	r := g.limiter.ReserveN(now, 1)
	if !r.OK() {
		g.mu.Unlock()
		return errors.New("gate: reservation exceeds burst")
	}
	delay := r.DelayFrom(now)
	g.mu.Unlock()

	if delay <= 0 {
		return nil
	}
	if err := g.sleep(ctx, delay); err != nil {
		r.CancelAt(g.now())
		return err
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
