package preferences

import "umbra/internal/core/model"

// Settings defines editable user preferences.
type Settings struct {
	Brightness         float64
	AutoDisableEnabled bool
	AutoDisableHour    int
	HotkeysEnabled     bool
	LaunchAtLogin      bool
}

// DefaultSettings returns first-run defaults: full brightness, hotkeys
// on, auto-disable off with a morning trigger prefilled.
func DefaultSettings() Settings {
	return Settings{
		Brightness:         model.MaxBrightness,
		AutoDisableEnabled: false,
		AutoDisableHour:    7,
		HotkeysEnabled:     true,
		LaunchAtLogin:      false,
	}
}

// AutoDisableConfig converts settings to the scheduler configuration.
func (settings Settings) AutoDisableConfig() model.AutoDisableConfig {
	return model.AutoDisableConfig{
		Enabled:     settings.AutoDisableEnabled,
		TriggerHour: model.NormalizeHour(settings.AutoDisableHour),
	}
}
