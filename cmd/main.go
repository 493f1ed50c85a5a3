package main

import (
	"log"
	"os"
	"time"

	"umbra/internal/core/controller"
	"umbra/internal/core/model"
	"umbra/internal/core/scheduler"
	"umbra/internal/hotkeys"
	"umbra/internal/platform"
	"umbra/internal/storage"
	"umbra/internal/ui/overlay"
	"umbra/internal/ui/preferences"
	"umbra/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const appName = "Umbra"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("app.umbra")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return
	}

	trayWindow := fyneApp.NewWindow(appName)
	trayWindow.SetContent(widget.NewLabel("Umbra is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)
	desktopApp.SetSystemTrayIcon(theme.VisibilityIcon())

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	overlayWindow := overlay.New(fyneApp)
	brightness := controller.New(settings.Brightness, overlayWindow)

	// The scheduler ticker and hotkey dispatch run on their own
	// goroutines; their mutations marshal onto the fyne UI context
	// before touching the controller and overlay.
	sched := scheduler.New(scheduler.SystemClock(), scheduler.Config{TickInterval: time.Minute}, func() {
		fyne.Do(brightness.Reset)
	})

	wakeNotifier := platform.NewWakeNotifier()
	if err := wakeNotifier.Start(sched.OnWake); err != nil {
		log.Printf("wake notifications: %v", err)
	}

	gateway := hotkeys.NewGateway(hotkeys.SystemRegistrar(), func(action hotkeys.Action) {
		step := model.HotkeyStep
		if action == hotkeys.BrightnessDown {
			step = -model.HotkeyStep
		}
		fyne.Do(func() {
			brightness.Adjust(step)
		})
	})

	autostart := platform.NewAutostart()

	var applySettings func(preferences.Settings)
	var trayManager *tray.Manager

	prefsWindow := preferences.New(fyneApp, settings, func(level float64) {
		brightness.SetLevel(level)
	}, func(updated preferences.Settings) {
		applySettings(updated)
		if err := storage.SaveSettings(appName, updated); err != nil {
			log.Printf("save settings: %v", err)
		}
	})

	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnSetLevel: func(level float64) {
			brightness.SetLevel(level)
		},
		OnRestore: func() {
			brightness.Reset()
		},
		OnToggleAutoDisable: func() {
			updated := settings
			updated.AutoDisableEnabled = !updated.AutoDisableEnabled
			applySettings(updated)
			prefsWindow.UpdateSettings(updated)
			if err := storage.SaveSettings(appName, updated); err != nil {
				log.Printf("save settings: %v", err)
			}
		},
		OnQuit: func() {
			gateway.Close()
			sched.Stop()
			wakeNotifier.Stop()
			settings.Brightness = brightness.Level()
			if err := storage.SaveSettings(appName, settings); err != nil {
				log.Printf("save settings: %v", err)
			}
			brightness.Close()
			fyneApp.Quit()
		},
	})

	applySettings = func(updated preferences.Settings) {
		previous := settings
		settings = updated

		brightness.SetLevel(updated.Brightness)

		if config := updated.AutoDisableConfig(); config.Enabled {
			sched.Enable(config.TriggerHour)
		} else {
			sched.Disable()
		}
		trayManager.SetAutoDisable(updated.AutoDisableEnabled)

		if updated.HotkeysEnabled != previous.HotkeysEnabled {
			if updated.HotkeysEnabled {
				if err := gateway.Start(); err != nil {
					log.Printf("hotkeys unavailable: %v", err)
				}
			} else {
				gateway.Close()
			}
		}

		if updated.LaunchAtLogin != previous.LaunchAtLogin {
			toggleAutostart(autostart, updated.LaunchAtLogin)
		}
	}

	events := brightness.Subscribe(8)
	go func() {
		for event := range events {
			level := event.Level
			fyne.Do(func() {
				trayManager.SetLevel(level)
				prefsWindow.SetBrightness(level)
			})
		}
	}()

	watcher, err := storage.WatchSettings(appName, func(updated preferences.Settings) {
		fyne.Do(func() {
			applySettings(updated)
			prefsWindow.UpdateSettings(updated)
		})
	})
	if err != nil {
		log.Printf("settings watcher: %v", err)
	} else {
		defer func() {
			_ = watcher.Close()
		}()
	}

	if settings.HotkeysEnabled {
		if err := gateway.Start(); err != nil {
			log.Printf("hotkeys unavailable: %v", err)
		}
	}
	if config := settings.AutoDisableConfig(); config.Enabled {
		sched.Enable(config.TriggerHour)
	}
	trayManager.SetAutoDisable(settings.AutoDisableEnabled)

	brightness.SetLevel(settings.Brightness)

	fyneApp.Run()
}

func toggleAutostart(autostart platform.Autostart, enabled bool) {
	execPath, err := os.Executable()
	if err != nil {
		log.Printf("autostart: resolve executable: %v", err)
		return
	}
	if enabled {
		if err := autostart.Enable(appName, execPath); err != nil {
			log.Printf("autostart: %v", err)
		}
		return
	}
	if err := autostart.Disable(appName); err != nil {
		log.Printf("autostart: %v", err)
	}
}
