//go:build !linux

package platform

// Without a native resume signal the clock-jump detector stands in.
func newWakeNotifier() WakeNotifier {
	return newClockJumpDetector()
}
