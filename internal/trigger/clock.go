package trigger

import (
	"context"
	"math/rand/v2"
	"time"
)

// Clock is the detector's source of time. Every suspension in the loop goes
// through Sleep so tests can run the loop on simulated time.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, whichever comes first.
	// It returns ctx.Err() when interrupted.
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock is the wall clock
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// HumanDelay samples a uniform delay in [minMs, maxMs] milliseconds, bounds inclusive.
// An inverted range is treated as its swap.
func HumanDelay(rng *rand.Rand, minMs, maxMs int) time.Duration {
	if minMs > maxMs {
		minMs, maxMs = maxMs, minMs
	}
	if minMs < 0 {
		minMs = 0
	}
	if maxMs < minMs {
		maxMs = minMs
	}
	ms := minMs + rng.IntN(maxMs-minMs+1)
	return time.Duration(ms) * time.Millisecond
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
}
