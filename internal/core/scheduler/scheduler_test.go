package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *fakeClock) set(now time.Time) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.now = now
}

func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func newTestScheduler(clock Clock, fired *int) *Scheduler {
	return New(clock, Config{TickInterval: time.Hour}, func() {
		if fired != nil {
			*fired++
		}
	})
}

func TestNextTrigger(t *testing.T) {
	tests := []struct {
		name string
		hour int
		now  time.Time
		want time.Time
	}{
		{"before trigger same day", 7, at(6, 30), at(7, 0)},
		{"after trigger next day", 7, at(7, 30), at(7, 0).AddDate(0, 0, 1)},
		{"exactly on trigger next day", 7, at(7, 0), at(7, 0).AddDate(0, 0, 1)},
		{"midnight hour", 0, at(12, 0), at(0, 0).AddDate(0, 0, 1)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.True(t, nextTrigger(test.hour, test.now).Equal(test.want))
		})
	}
}

func TestEnableArms(t *testing.T) {
	clock := &fakeClock{now: at(6, 30)}
	sched := newTestScheduler(clock, nil)
	defer sched.Stop()

	sched.Enable(7)

	assert.Equal(t, StateArmed, sched.CurrentState())
	next, armed := sched.NextFire()
	require.True(t, armed)
	assert.True(t, next.Equal(at(7, 0)))
}

func TestTickFiresAndRecomputes(t *testing.T) {
	clock := &fakeClock{now: at(6, 30)}
	fired := 0
	sched := newTestScheduler(clock, &fired)
	defer sched.Stop()
	sched.Enable(7)

	clock.set(at(6, 59))
	sched.Tick()
	assert.Equal(t, 0, fired, "no fire before the trigger")

	clock.set(at(7, 1))
	sched.Tick()
	assert.Equal(t, 1, fired)

	assert.Equal(t, StateArmed, sched.CurrentState(), "firing stays armed")
	next, armed := sched.NextFire()
	require.True(t, armed)
	assert.True(t, next.Equal(at(7, 0).AddDate(0, 0, 1)), "next fire moves to the following day")

	sched.Tick()
	assert.Equal(t, 1, fired, "no double fire before the next trigger")
}

func TestOnWakeCompensatesMissedTrigger(t *testing.T) {
	clock := &fakeClock{now: at(6, 30)}
	fired := 0
	sched := newTestScheduler(clock, &fired)
	defer sched.Stop()
	sched.Enable(7)

	// The trigger passed while the machine slept.
	clock.set(at(9, 15))
	sched.OnWake()

	assert.Equal(t, 1, fired)
	next, armed := sched.NextFire()
	require.True(t, armed)
	assert.True(t, next.Equal(at(7, 0).AddDate(0, 0, 1)))
}

func TestOnWakeWhileDisabledDoesNothing(t *testing.T) {
	clock := &fakeClock{now: at(9, 0)}
	fired := 0
	sched := newTestScheduler(clock, &fired)

	sched.OnWake()

	assert.Equal(t, 0, fired)
	assert.Equal(t, StateDisabled, sched.CurrentState())
}

func TestDisableThenEnableComputesFreshTrigger(t *testing.T) {
	clock := &fakeClock{now: at(6, 30)}
	sched := newTestScheduler(clock, nil)
	defer sched.Stop()

	sched.Enable(7)
	sched.Disable()
	assert.Equal(t, StateDisabled, sched.CurrentState())
	_, armed := sched.NextFire()
	assert.False(t, armed)

	clock.set(at(8, 0))
	sched.Enable(7)

	next, armed := sched.NextFire()
	require.True(t, armed)
	assert.True(t, next.After(clock.Now()), "re-enable never reuses a stale trigger")
	assert.True(t, next.Equal(at(7, 0).AddDate(0, 0, 1)))
}

func TestReenableWhileArmedRecomputes(t *testing.T) {
	clock := &fakeClock{now: at(6, 30)}
	sched := newTestScheduler(clock, nil)
	defer sched.Stop()

	sched.Enable(7)
	sched.Enable(20)

	next, armed := sched.NextFire()
	require.True(t, armed)
	assert.True(t, next.Equal(at(20, 0)))
	assert.Equal(t, StateArmed, sched.CurrentState())
}

func TestDisableIsIdempotent(t *testing.T) {
	clock := &fakeClock{now: at(6, 30)}
	sched := newTestScheduler(clock, nil)

	sched.Disable()
	sched.Enable(7)
	sched.Disable()
	sched.Disable()

	assert.Equal(t, StateDisabled, sched.CurrentState())
}

func TestEnableNormalizesHour(t *testing.T) {
	clock := &fakeClock{now: at(6, 30)}
	sched := newTestScheduler(clock, nil)
	defer sched.Stop()

	sched.Enable(31)

	next, armed := sched.NextFire()
	require.True(t, armed)
	assert.True(t, next.Equal(at(7, 0)))
}
