package fetch

import (
	"context"
	"sync"
	"time"
)

// Gate enforces a request budget per fixed rate window. A unit of budget is
// consumed before every attempt, whether or not the attempt succeeds. When
// the budget is spent the gate pauses for the remainder of the window and
// resets the counter to zero.
//
// Check-then-increment is serialized by a single mutex, and the pause happens
// while holding it, so every worker stalls together until the window resets.
// A Gate is scoped to one batch; create a fresh one per FetchAll call.
type Gate struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	count   int
	pauses  int
	sleep   func(ctx context.Context, d time.Duration) error
	onPause func(d time.Duration)
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithSleep replaces the gate's wait function.
// This is useful for testing without waiting for real windows.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) GateOption {
	return func(g *Gate) {
		g.sleep = fn
	}
}

// WithPauseHook registers fn to be called each time the gate pauses, with the
// duration of the pause.
func WithPauseHook(fn func(d time.Duration)) GateOption {
	return func(g *Gate) {
		g.onPause = fn
	}
}

// NewGate creates a Gate allowing max requests per window.
// A max of zero or less means the gate never pauses.
func NewGate(max int, window time.Duration, opts ...GateOption) *Gate {
	g := &Gate{
		max:    max,
		window: window,
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Acquire consumes one unit of budget, pausing for the remainder of the rate
// window when the budget is spent. Returns an error only if the context is
// canceled; a pause is flow control, never a failure.
func (g *Gate) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.max > 0 && g.count >= g.max {
		g.pauses++
		if g.onPause != nil {
			g.onPause(g.window)
		}
		if err := g.sleep(ctx, g.window); err != nil {
			return err
		}
		g.count = 0
	}

	g.count++
	return nil
}

// Pauses returns the number of window resets so far.
func (g *Gate) Pauses() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pauses
}

// sleepContext sleeps for d or until the context is canceled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
