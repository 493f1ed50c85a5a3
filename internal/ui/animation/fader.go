package animation

import (
	"context"
	"sync"
	"time"
)

// Config contains fade timing values.
type Config struct {
	Duration     time.Duration
	TickInterval time.Duration
}

// DefaultConfig returns the standard short ease-in/out fade.
func DefaultConfig() Config {
	return Config{
		Duration:     250 * time.Millisecond,
		TickInterval: 16 * time.Millisecond,
	}
}

// Fader animates a scalar toward a target value. A new FadeTo supersedes
// any in-flight transition: the previous run is cancelled where it stands
// and the newest call animates from there, so the value converges
// monotonically to the latest target.
type Fader struct {
	mu      sync.Mutex
	config  Config
	apply   func(float64)
	cancel  context.CancelFunc
	current float64
}

// New creates a Fader. apply receives every intermediate value.
func New(config Config, apply func(float64)) *Fader {
	if config.Duration <= 0 {
		config.Duration = 250 * time.Millisecond
	}
	if config.TickInterval <= 0 {
		config.TickInterval = 16 * time.Millisecond
	}
	return &Fader{
		config: config,
		apply:  apply,
	}
}

// Current returns the last applied value.
func (fader *Fader) Current() float64 {
	fader.mu.Lock()
	defer fader.mu.Unlock()
	return fader.current
}

// Jump sets the value immediately, cancelling any transition.
func (fader *Fader) Jump(target float64) {
	fader.mu.Lock()
	defer fader.mu.Unlock()
	if fader.cancel != nil {
		fader.cancel()
		fader.cancel = nil
	}
	fader.current = target
	fader.apply(target)
}

// FadeTo starts an eased transition from the current value to target.
// Fire-and-forget: the caller is never suspended.
func (fader *Fader) FadeTo(target float64) {
	fader.mu.Lock()
	if fader.cancel != nil {
		fader.cancel()
	}
	runCtx, cancel := context.WithCancel(context.Background())
	fader.cancel = cancel
	from := fader.current
	fader.mu.Unlock()

	go fader.run(runCtx, from, target)
}

// Stop cancels any active transition, leaving the value where it stands.
func (fader *Fader) Stop() {
	fader.mu.Lock()
	defer fader.mu.Unlock()
	if fader.cancel != nil {
		fader.cancel()
		fader.cancel = nil
	}
}

func (fader *Fader) run(ctx context.Context, from, target float64) {
	start := time.Now()
	for {
		if !sleepWithContext(ctx, fader.config.TickInterval) {
			return
		}
		progress := float64(time.Since(start)) / float64(fader.config.Duration)
		if progress >= 1 {
			fader.step(ctx, target)
			return
		}
		fader.step(ctx, from+(target-from)*easeInOut(progress))
	}
}

// step applies one frame under the lock so a superseded transition can
// never land a stale frame after its replacement. apply must not call
// back into the Fader.
func (fader *Fader) step(ctx context.Context, value float64) {
	fader.mu.Lock()
	defer fader.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	fader.current = value
	fader.apply(value)
}

// easeInOut is a cubic ease: slow start, fast middle, slow settle.
func easeInOut(progress float64) float64 {
	if progress < 0.5 {
		return 4 * progress * progress * progress
	}
	tail := -2*progress + 2
	return 1 - tail*tail*tail/2
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
