package overlay

import (
	"image/color"
	"log"
	"sync"

	"umbra/internal/core/model"
	"umbra/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Window manages the dimming surface: a borderless, topmost, full-screen
// black rectangle whose alpha is 1 - brightness. The surface is an owned
// slot: created lazily on the first dimmed level, released whenever
// brightness returns to maximum, never more than one alive.
type Window struct {
	mu         sync.Mutex
	app        fyne.App
	window     fyne.Window
	background *canvas.Rectangle
	fader      *animation.Fader
}

// New creates an overlay manager with no surface allocated.
func New(app fyne.App) *Window {
	overlay := &Window{app: app}
	overlay.fader = animation.New(animation.DefaultConfig(), overlay.applyAlpha)
	return overlay
}

// Refresh drives the surface toward the given brightness level. Levels at
// or above the full threshold tear the surface down; anything darker
// ensures a surface exists and fades its opacity to 1 - level. The newest
// call supersedes any in-flight fade.
//
// Refresh and Teardown must run on the fyne UI context; callers on other
// goroutines marshal through fyne.Do first. Fade frames arrive from the
// fader's own goroutine and are marshaled internally.
func (overlay *Window) Refresh(level float64) {
	if level >= model.FullThreshold {
		overlay.Teardown()
		return
	}
	if created := overlay.ensureSurface(); created {
		// A fresh surface fades in from fully clear.
		overlay.fader.Jump(0)
	}
	overlay.fader.FadeTo(1 - level)
}

// Teardown releases the surface. Idempotent; safe to call when no surface
// exists. The window is fully closed so no invisible layer lingers.
func (overlay *Window) Teardown() {
	overlay.fader.Stop()

	overlay.mu.Lock()
	window := overlay.window
	overlay.window = nil
	overlay.background = nil
	overlay.mu.Unlock()

	if window == nil {
		return
	}
	window.Close()
}

// Active reports whether a surface is currently allocated.
func (overlay *Window) Active() bool {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()
	return overlay.window != nil
}

func (overlay *Window) ensureSurface() bool {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()
	if overlay.window != nil {
		return false
	}

	var window fyne.Window
	if driver, ok := overlay.app.Driver().(splashWindowDriver); ok {
		// Splash windows carry no native frame or buttons.
		window = driver.CreateSplashWindow()
	} else {
		log.Printf("overlay: splash windows unsupported, using a plain window")
		window = overlay.app.NewWindow("Umbra")
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: 0})
	window.SetContent(background)

	overlay.window = window
	overlay.background = background

	window.SetFullScreen(true)
	window.Show()
	applyPassthrough(window)
	return true
}

func (overlay *Window) applyAlpha(alpha float64) {
	overlay.mu.Lock()
	background := overlay.background
	overlay.mu.Unlock()
	if background == nil {
		return
	}

	fyne.Do(func() {
		background.FillColor = color.NRGBA{R: 0, G: 0, B: 0, A: alphaByte(alpha)}
		canvas.Refresh(background)
	})
}

func alphaByte(alpha float64) uint8 {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return uint8(alpha*255 + 0.5)
}
