package model

// Brightness bounds. The floor keeps the overlay from ever going fully
// opaque and blacking out the screen.
const (
	MinBrightness = 0.1
	MaxBrightness = 1.0

	// FullThreshold is the level at or above which the display counts as
	// undimmed and the overlay surface is released.
	FullThreshold = 0.99

	// HotkeyStep is the brightness delta applied per hotkey press.
	HotkeyStep = 0.1
)

// AutoDisableConfig describes the daily brightness reset.
type AutoDisableConfig struct {
	Enabled     bool
	TriggerHour int
}

// ClampBrightness sanitizes a requested brightness level. Out-of-range
// requests are clamped, never rejected.
func ClampBrightness(requested float64) float64 {
	if requested < MinBrightness {
		return MinBrightness
	}
	if requested > MaxBrightness {
		return MaxBrightness
	}
	return requested
}

// NormalizeHour maps any integer onto the 0-23 clock.
func NormalizeHour(hour int) int {
	hour %= 24
	if hour < 0 {
		hour += 24
	}
	return hour
}
