package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"umbra/internal/core/model"
	"umbra/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Brightness         float64 `yaml:"brightness"`
	AutoDisableEnabled bool    `yaml:"auto_disable_enabled"`
	AutoDisableHour    int     `yaml:"auto_disable_hour"`
	HotkeysEnabled     bool    `yaml:"hotkeys_enabled"`
	LaunchAtLogin      bool    `yaml:"launch_at_login"`
}

// LoadSettings reads user preferences from YAML. A missing config file
// yields defaults; values outside their valid range are ignored.
func LoadSettings(appName string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	configPath, err := SettingsPath(appName)
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		Brightness:         settings.Brightness,
		AutoDisableEnabled: settings.AutoDisableEnabled,
		AutoDisableHour:    settings.AutoDisableHour,
		HotkeysEnabled:     settings.HotkeysEnabled,
		LaunchAtLogin:      settings.LaunchAtLogin,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

// SettingsPath returns the location of the settings file.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.Brightness >= model.MinBrightness && fileData.Brightness <= model.MaxBrightness {
		settings.Brightness = fileData.Brightness
	}
	if fileData.AutoDisableHour >= 0 && fileData.AutoDisableHour <= 23 {
		settings.AutoDisableHour = fileData.AutoDisableHour
	}

	settings.AutoDisableEnabled = fileData.AutoDisableEnabled
	settings.HotkeysEnabled = fileData.HotkeysEnabled
	settings.LaunchAtLogin = fileData.LaunchAtLogin
}
