package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"umbra/internal/ui/preferences"

	"github.com/fsnotify/fsnotify"
)

// Editors write settings files in bursts (temp file, rename, chmod), so
// reloads are debounced.
const reloadDebounce = 250 * time.Millisecond

// Watcher reloads settings when the file changes on disk, letting an
// externally edited config update the running agent.
type Watcher struct {
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
}

// WatchSettings watches the settings file for appName and delivers each
// successfully reloaded Settings to onChange.
func WatchSettings(appName string, onChange func(preferences.Settings)) (*Watcher, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return nil, err
	}

	// On a first run nothing has written the config directory yet.
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}

	// Watch the directory, not the file: atomic-rename saves replace the
	// inode and would silently drop a file-level watch.
	if err := fsWatcher.Add(configDir); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("watch config directory: %w", err)
	}

	watcher := &Watcher{
		watcher: fsWatcher,
		stopCh:  make(chan struct{}),
	}
	go watcher.run(appName, filepath.Base(configPath), onChange)
	return watcher, nil
}

// Close stops watching. Safe to call once.
func (watcher *Watcher) Close() error {
	close(watcher.stopCh)
	return watcher.watcher.Close()
}

func (watcher *Watcher) run(appName, fileName string, onChange func(preferences.Settings)) {
	var debounce *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-watcher.stopCh:
			return
		case event, ok := <-watcher.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != fileName {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(reloadDebounce)
				debounceCh = debounce.C
			} else {
				debounce.Reset(reloadDebounce)
			}
		case <-debounceCh:
			debounce = nil
			debounceCh = nil
			settings, err := LoadSettings(appName)
			if err != nil {
				log.Printf("settings reload: %v", err)
				continue
			}
			onChange(settings)
		case err, ok := <-watcher.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("settings watcher: %v", err)
		}
	}
}
