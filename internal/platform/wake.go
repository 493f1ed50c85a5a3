package platform

// WakeNotifier delivers a callback shortly after the system resumes from
// sleep, so time-based policies can catch up on triggers that passed
// while timers were suspended.
type WakeNotifier interface {
	// Start begins watching for wake events. A non-nil error means the
	// preferred platform mechanism is unavailable; a best-effort
	// fallback keeps running, so callers log and continue.
	Start(onWake func()) error

	// Stop releases the notifier. Safe to call more than once.
	Stop()
}

// NewWakeNotifier returns a platform-specific wake notifier.
func NewWakeNotifier() WakeNotifier {
	return newWakeNotifier()
}
