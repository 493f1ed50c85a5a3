package platform

import (
	"sync"
	"time"
)

const jumpCheckInterval = 30 * time.Second

// clockJumpDetector infers a sleep/wake cycle from a wall-clock jump: a
// ticker cannot fire while the system is suspended, so the first tick
// after wake observes far more elapsed wall time than the tick interval.
type clockJumpDetector struct {
	interval time.Duration

	mu      sync.Mutex
	stopCh  chan struct{}
	running bool
}

func newClockJumpDetector() *clockJumpDetector {
	return &clockJumpDetector{interval: jumpCheckInterval}
}

func (detector *clockJumpDetector) Start(onWake func()) error {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if detector.running {
		return nil
	}
	detector.running = true
	detector.stopCh = make(chan struct{})

	go detector.run(detector.stopCh, onWake)
	return nil
}

func (detector *clockJumpDetector) Stop() {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.running {
		return
	}
	detector.running = false
	close(detector.stopCh)
	detector.stopCh = nil
}

func (detector *clockJumpDetector) run(stop <-chan struct{}, onWake func()) {
	ticker := time.NewTicker(detector.interval)
	defer ticker.Stop()

	// Round(0) strips the monotonic reading; the comparison must see
	// wall-clock time, since the monotonic clock pauses during suspend.
	threshold := 2 * detector.interval
	last := time.Now().Round(0)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			now := time.Now().Round(0)
			if now.Sub(last) >= threshold {
				onWake()
			}
			last = now
		}
	}
}
