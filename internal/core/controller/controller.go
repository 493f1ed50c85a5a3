package controller

import (
	"sync"
	"time"

	"umbra/internal/core/model"
)

// Renderer owns the dimming surface. Refresh receives the authoritative
// brightness level after every mutation; Teardown releases the surface.
type Renderer interface {
	Refresh(level float64)
	Teardown()
}

// Controller is the single source of truth for the brightness level.
// Every mutation funnels through SetLevel so there is always exactly one
// consistent visual state.
type Controller struct {
	mu       sync.Mutex
	level    float64
	renderer Renderer
	events   []chan Event
	closed   bool
}

// New creates a Controller holding the clamped initial level. The renderer
// is not touched until the first mutation; callers apply the initial level
// once the UI is ready.
func New(initial float64, renderer Renderer) *Controller {
	return &Controller{
		level:    model.ClampBrightness(initial),
		renderer: renderer,
	}
}

// Level returns the current brightness for UI reflection.
func (ctrl *Controller) Level() float64 {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	return ctrl.level
}

// Subscribe registers a new observer channel.
func (ctrl *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	ctrl.mu.Lock()
	ctrl.events = append(ctrl.events, ch)
	ctrl.mu.Unlock()
	return ch
}

// SetLevel clamps the requested level, stores it, and refreshes the overlay.
// Invalid input is sanitized, never rejected.
func (ctrl *Controller) SetLevel(requested float64) {
	ctrl.apply(requested, EventLevelChange)
}

// Adjust shifts the current level by delta; hotkeys use ±model.HotkeyStep.
func (ctrl *Controller) Adjust(delta float64) {
	ctrl.mu.Lock()
	requested := ctrl.level + delta
	ctrl.mu.Unlock()
	ctrl.apply(requested, EventLevelChange)
}

// Reset forces full brightness and overlay teardown. Used by the scheduler
// and by manual override.
func (ctrl *Controller) Reset() {
	ctrl.apply(model.MaxBrightness, EventReset)
}

// Close releases observer channels. The renderer is torn down so no
// surface outlives the controller.
func (ctrl *Controller) Close() {
	ctrl.mu.Lock()
	if ctrl.closed {
		ctrl.mu.Unlock()
		return
	}
	ctrl.closed = true
	events := ctrl.events
	ctrl.events = nil
	renderer := ctrl.renderer
	ctrl.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
	if renderer != nil {
		renderer.Teardown()
	}
}

func (ctrl *Controller) apply(requested float64, eventType EventType) {
	level := model.ClampBrightness(requested)

	ctrl.mu.Lock()
	if ctrl.closed {
		ctrl.mu.Unlock()
		return
	}
	ctrl.level = level
	// Refresh under the lock so renders land in store order and the
	// overlay can never show a superseded level. The renderer does not
	// call back into the controller.
	if ctrl.renderer != nil {
		ctrl.renderer.Refresh(level)
	}
	events := append([]chan Event(nil), ctrl.events...)
	ctrl.mu.Unlock()

	event := Event{
		Type:  eventType,
		Level: level,
		At:    time.Now(),
	}
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
