package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnPreferences       func()
	OnSetLevel          func(float64)
	OnRestore           func()
	OnToggleAutoDisable func()
	OnQuit              func()
}

// Manager handles system tray state. It is a pure view over the
// controller's brightness level.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	presetsItem *fyne.MenuItem
	restoreItem *fyne.MenuItem
	autoItem    *fyne.MenuItem
	callbacks   Callbacks
	autoEnabled bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Brightness: 100%", nil)
	manager.statusItem.Disabled = true

	manager.presetsItem = fyne.NewMenuItem("Dim to...", nil)
	manager.presetsItem.ChildMenu = fyne.NewMenu("",
		presetItem(manager, 0.75),
		presetItem(manager, 0.50),
		presetItem(manager, 0.25),
	)

	manager.restoreItem = fyne.NewMenuItem("Restore full brightness", func() {
		if manager.callbacks.OnRestore != nil {
			manager.callbacks.OnRestore()
		}
	})

	manager.autoItem = fyne.NewMenuItem("Enable auto-disable", func() {
		if manager.callbacks.OnToggleAutoDisable != nil {
			manager.callbacks.OnToggleAutoDisable()
		}
	})

	manager.refreshMenu()
	return manager
}

// SetLevel updates the brightness readout.
func (manager *Manager) SetLevel(level float64) {
	manager.statusItem.Label = fmt.Sprintf("Brightness: %d%%", int(level*100+0.5))
	manager.refreshMenu()
}

// SetAutoDisable updates the auto-disable toggle label.
func (manager *Manager) SetAutoDisable(enabled bool) {
	manager.autoEnabled = enabled
	if enabled {
		manager.autoItem.Label = "Disable auto-disable"
	} else {
		manager.autoItem.Label = "Enable auto-disable"
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Umbra",
		manager.statusItem,
		manager.presetsItem,
		manager.restoreItem,
		manager.autoItem,
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}

func presetItem(manager *Manager, level float64) *fyne.MenuItem {
	return fyne.NewMenuItem(fmt.Sprintf("%d%%", int(level*100+0.5)), func() {
		if manager.callbacks.OnSetLevel != nil {
			manager.callbacks.OnSetLevel(level)
		}
	})
}
