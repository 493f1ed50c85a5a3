package storage

import (
	"testing"
	"time"

	"umbra/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchSettingsDeliversReload(t *testing.T) {
	useTempConfigDir(t)

	initial := preferences.DefaultSettings()
	require.NoError(t, SaveSettings(testApp, initial))

	reloads := make(chan preferences.Settings, 4)
	watcher, err := WatchSettings(testApp, func(settings preferences.Settings) {
		reloads <- settings
	})
	require.NoError(t, err)
	defer func() {
		_ = watcher.Close()
	}()

	updated := initial
	updated.Brightness = 0.33
	updated.AutoDisableEnabled = true
	require.NoError(t, SaveSettings(testApp, updated))

	select {
	case reloaded := <-reloads:
		assert.InDelta(t, 0.33, reloaded.Brightness, 1e-9)
		assert.True(t, reloaded.AutoDisableEnabled)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload delivered after the settings file changed")
	}
}

func TestWatchSettingsCreatesMissingDirectory(t *testing.T) {
	useTempConfigDir(t)

	// Fresh install: the config directory does not exist until the first
	// save. Watching must still start, and the first save must reload.
	reloads := make(chan preferences.Settings, 4)
	watcher, err := WatchSettings(testApp, func(settings preferences.Settings) {
		reloads <- settings
	})
	require.NoError(t, err)
	defer func() {
		_ = watcher.Close()
	}()

	settings := preferences.DefaultSettings()
	settings.Brightness = 0.42
	require.NoError(t, SaveSettings(testApp, settings))

	select {
	case reloaded := <-reloads:
		assert.InDelta(t, 0.42, reloaded.Brightness, 1e-9)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload delivered after the first save")
	}
}
