package scheduler

import (
	"log"
	"sync"
	"time"

	"umbra/internal/core/model"
)

// Clock provides wall-clock time. Injected so tests control "now".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the real wall clock.
func SystemClock() Clock { return systemClock{} }

// Config contains runtime options for the Scheduler.
type Config struct {
	TickInterval time.Duration
}

// State represents the current Scheduler mode.
type State string

const (
	StateDisabled State = "disabled"
	StateArmed    State = "armed"
)

// Scheduler arms a daily brightness reset at a fixed hour and compensates
// for triggers missed while the system was asleep.
type Scheduler struct {
	mu      sync.Mutex
	clock   Clock
	options Config
	state   State
	hour    int
	next    time.Time
	reset   func()
	stopCh  chan struct{}
}

// New creates a disarmed Scheduler. reset is invoked on every fire.
func New(clock Clock, options Config, reset func()) *Scheduler {
	if clock == nil {
		clock = SystemClock()
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Minute
	}
	return &Scheduler{
		clock:   clock,
		options: options,
		state:   StateDisabled,
		reset:   reset,
	}
}

// Enable arms the daily reset at the given hour. Re-enabling while armed
// recomputes the next fire time from the current clock; a stale value is
// never reused.
func (sched *Scheduler) Enable(hour int) {
	hour = model.NormalizeHour(hour)

	sched.mu.Lock()
	sched.hour = hour
	sched.next = nextTrigger(hour, sched.clock.Now())
	next := sched.next
	if sched.state == StateArmed {
		sched.mu.Unlock()
		log.Printf("auto-disable rearmed for %s", next.Format(time.RFC3339))
		return
	}
	sched.state = StateArmed
	sched.stopCh = make(chan struct{})
	stop := sched.stopCh
	sched.mu.Unlock()

	log.Printf("auto-disable armed for %s", next.Format(time.RFC3339))
	go sched.run(stop)
}

// Disable disarms the scheduler and invalidates the ticker. Safe to call
// when already disabled.
func (sched *Scheduler) Disable() {
	sched.mu.Lock()
	if sched.state != StateArmed {
		sched.mu.Unlock()
		return
	}
	sched.state = StateDisabled
	close(sched.stopCh)
	sched.stopCh = nil
	sched.mu.Unlock()

	log.Printf("auto-disable disarmed")
}

// Stop disarms on process shutdown.
func (sched *Scheduler) Stop() {
	sched.Disable()
}

// CurrentState reports whether the scheduler is armed.
func (sched *Scheduler) CurrentState() State {
	sched.mu.Lock()
	defer sched.mu.Unlock()
	return sched.state
}

// NextFire returns the pending trigger time while armed.
func (sched *Scheduler) NextFire() (time.Time, bool) {
	sched.mu.Lock()
	defer sched.mu.Unlock()
	if sched.state != StateArmed {
		return time.Time{}, false
	}
	return sched.next, true
}

// Tick checks the armed trigger against the clock, firing the reset and
// recomputing the next day's trigger when it is due.
func (sched *Scheduler) Tick() {
	sched.mu.Lock()
	if sched.state != StateArmed {
		sched.mu.Unlock()
		return
	}
	now := sched.clock.Now()
	if now.Before(sched.next) {
		sched.mu.Unlock()
		return
	}
	sched.next = nextTrigger(sched.hour, now)
	next := sched.next
	reset := sched.reset
	sched.mu.Unlock()

	log.Printf("auto-disable fired, next trigger %s", next.Format(time.RFC3339))
	if reset != nil {
		reset()
	}
}

// OnWake compensates for ticks missed during system sleep. While armed it
// behaves as an immediate Tick, so a trigger time passed during sleep is
// honored promptly.
func (sched *Scheduler) OnWake() {
	sched.Tick()
}

func (sched *Scheduler) run(stop chan struct{}) {
	ticker := time.NewTicker(sched.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			sched.Tick()
		}
	}
}

// nextTrigger resolves the next wall-clock instant for the trigger hour.
// The result is always strictly in the future; "now" landing exactly on
// the trigger resolves to the next day. time.Date normalizes the day+1
// overflow, which also absorbs DST and calendar transitions.
func nextTrigger(hour int, now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, hour, 0, 0, 0, now.Location())
	}
	return next
}
