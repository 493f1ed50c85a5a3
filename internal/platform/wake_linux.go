//go:build linux

package platform

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	login1Interface = "org.freedesktop.login1.Manager"
	login1Path      = "/org/freedesktop/login1"
	sleepSignal     = login1Interface + ".PrepareForSleep"
)

// dbusWakeNotifier listens for logind's PrepareForSleep(false) signal on
// the system bus. When the bus is unavailable the clock-jump fallback is
// started instead.
type dbusWakeNotifier struct {
	fallback *clockJumpDetector

	mu      sync.Mutex
	conn    *dbus.Conn
	signals chan *dbus.Signal
	stopCh  chan struct{}
}

func newWakeNotifier() WakeNotifier {
	return &dbusWakeNotifier{fallback: newClockJumpDetector()}
}

func (notifier *dbusWakeNotifier) Start(onWake func()) error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		_ = notifier.fallback.Start(onWake)
		return fmt.Errorf("wake: system bus unavailable, using clock fallback: %w", err)
	}

	err = conn.AddMatchSignal(
		dbus.WithMatchInterface(login1Interface),
		dbus.WithMatchMember("PrepareForSleep"),
		dbus.WithMatchObjectPath(login1Path),
	)
	if err != nil {
		_ = conn.Close()
		_ = notifier.fallback.Start(onWake)
		return fmt.Errorf("wake: match PrepareForSleep, using clock fallback: %w", err)
	}

	signals := make(chan *dbus.Signal, 8)
	conn.Signal(signals)

	notifier.mu.Lock()
	notifier.conn = conn
	notifier.signals = signals
	notifier.stopCh = make(chan struct{})
	stop := notifier.stopCh
	notifier.mu.Unlock()

	go func() {
		for {
			select {
			case <-stop:
				return
			case signal, ok := <-signals:
				if !ok {
					return
				}
				if isWakeSignal(signal) {
					onWake()
				}
			}
		}
	}()
	return nil
}

func (notifier *dbusWakeNotifier) Stop() {
	notifier.fallback.Stop()

	notifier.mu.Lock()
	conn := notifier.conn
	signals := notifier.signals
	stopCh := notifier.stopCh
	notifier.conn = nil
	notifier.signals = nil
	notifier.stopCh = nil
	notifier.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}
	if conn != nil {
		conn.RemoveSignal(signals)
		_ = conn.Close()
	}
}

// isWakeSignal reports whether the signal is PrepareForSleep leaving
// sleep: logind sends true when suspending and false on resume.
func isWakeSignal(signal *dbus.Signal) bool {
	if signal == nil || signal.Name != sleepSignal || len(signal.Body) != 1 {
		return false
	}
	entering, ok := signal.Body[0].(bool)
	return ok && !entering
}
