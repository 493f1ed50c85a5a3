package storage

import (
	"os"
	"path/filepath"
	"testing"

	"umbra/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testApp = "UmbraTest"

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	useTempConfigDir(t)

	settings, err := LoadSettings(testApp)

	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	useTempConfigDir(t)

	saved := preferences.Settings{
		Brightness:         0.45,
		AutoDisableEnabled: true,
		AutoDisableHour:    21,
		HotkeysEnabled:     false,
		LaunchAtLogin:      true,
	}
	require.NoError(t, SaveSettings(testApp, saved))

	loaded, err := LoadSettings(testApp)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadSettingsIgnoresOutOfRangeValues(t *testing.T) {
	useTempConfigDir(t)

	configPath, err := SettingsPath(testApp)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o755))
	raw := "brightness: 5.0\nauto_disable_hour: 99\nhotkeys_enabled: true\n"
	require.NoError(t, os.WriteFile(configPath, []byte(raw), 0o644))

	loaded, err := LoadSettings(testApp)

	require.NoError(t, err)
	defaults := preferences.DefaultSettings()
	assert.InDelta(t, defaults.Brightness, loaded.Brightness, 1e-9)
	assert.Equal(t, defaults.AutoDisableHour, loaded.AutoDisableHour)
	assert.True(t, loaded.HotkeysEnabled)
}

func TestLoadSettingsBadYAML(t *testing.T) {
	useTempConfigDir(t)

	configPath, err := SettingsPath(testApp)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o755))
	require.NoError(t, os.WriteFile(configPath, []byte("{not yaml"), 0o644))

	settings, err := LoadSettings(testApp)

	assert.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings, "parse failure degrades to defaults")
}
