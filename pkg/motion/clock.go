package motion

import (
	"context"
	"time"
)

// Clock paces the engine between interpolation ticks. Tests substitute a fake
// implementation so motion logic runs without real-time delays.
type Clock interface {
	// Tick blocks for the given duration or until ctx is cancelled.
	Tick(ctx context.Context, d time.Duration) error
}

// WallClock is a Clock backed by real timers.
type WallClock struct{}

func (WallClock) Tick(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
