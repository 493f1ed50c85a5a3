package preferences

import (
	"fmt"
	"strconv"

	"umbra/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI. It is a pure view: the brightness
// slider reflects the controller's level and every edit is written back
// through the callbacks, never stored here as authority.
type Window struct {
	window       fyne.Window
	settings     Settings
	onLevel      func(float64)
	onSave       func(Settings)
	slider       *widget.Slider
	levelLabel   *widget.Label
	autoCheck    *widget.Check
	hourEntry    *widget.Entry
	hotkeysCheck *widget.Check
	loginCheck   *widget.Check
	reflecting   bool
}

// New creates a preferences window. onLevel fires live while the slider
// moves; onSave fires once with the full settings on Save.
func New(app fyne.App, settings Settings, onLevel func(float64), onSave func(Settings)) *Window {
	window := app.NewWindow("Umbra Settings")

	slider := widget.NewSlider(model.MinBrightness, model.MaxBrightness)
	slider.Step = 0.01
	slider.Value = settings.Brightness

	levelLabel := widget.NewLabel(formatLevel(settings.Brightness))

	autoCheck := widget.NewCheck("Restore full brightness daily at", nil)
	autoCheck.SetChecked(settings.AutoDisableEnabled)

	hourEntry := widget.NewEntry()
	hourEntry.SetText(strconv.Itoa(settings.AutoDisableHour))

	hotkeysCheck := widget.NewCheck("Global hotkeys (Ctrl+Shift+Up/Down)", nil)
	hotkeysCheck.SetChecked(settings.HotkeysEnabled)

	loginCheck := widget.NewCheck("Launch at login", nil)
	loginCheck.SetChecked(settings.LaunchAtLogin)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Brightness", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, nil, levelLabel, slider),
		widget.NewLabelWithStyle("Auto-disable", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(autoCheck, hourEntry, widget.NewLabel("o'clock")),
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		hotkeysCheck,
		loginCheck,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 320))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs := &Window{
		window:       window,
		settings:     settings,
		onLevel:      onLevel,
		onSave:       onSave,
		slider:       slider,
		levelLabel:   levelLabel,
		autoCheck:    autoCheck,
		hourEntry:    hourEntry,
		hotkeysCheck: hotkeysCheck,
		loginCheck:   loginCheck,
	}

	slider.OnChanged = func(value float64) {
		prefs.levelLabel.SetText(formatLevel(value))
		if prefs.reflecting {
			return
		}
		if prefs.onLevel != nil {
			prefs.onLevel(value)
		}
	}
	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.SetBrightness(settings.Brightness)
	prefs.autoCheck.SetChecked(settings.AutoDisableEnabled)
	prefs.hourEntry.SetText(strconv.Itoa(settings.AutoDisableHour))
	prefs.hotkeysCheck.SetChecked(settings.HotkeysEnabled)
	prefs.loginCheck.SetChecked(settings.LaunchAtLogin)
}

// SetBrightness mirrors an externally changed level (hotkeys, scheduler)
// into the slider without re-triggering the live callback.
func (prefs *Window) SetBrightness(level float64) {
	prefs.reflecting = true
	prefs.slider.Value = level
	prefs.slider.Refresh()
	prefs.levelLabel.SetText(formatLevel(level))
	prefs.reflecting = false
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.Brightness = model.ClampBrightness(prefs.slider.Value)
	settings.AutoDisableEnabled = prefs.autoCheck.Checked
	if hour, ok := parseHour(prefs.hourEntry.Text); ok {
		settings.AutoDisableHour = hour
	}
	settings.HotkeysEnabled = prefs.hotkeysCheck.Checked
	settings.LaunchAtLogin = prefs.loginCheck.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parseHour(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 || parsed > 23 {
		return 0, false
	}
	return parsed, true
}

func formatLevel(level float64) string {
	return fmt.Sprintf("%d%%", int(level*100+0.5))
}
