package hotkeys

import (
	"fmt"

	"golang.design/x/hotkey"
)

// SystemRegistrar returns a Registrar backed by OS-level global hotkeys.
// Bindings fire regardless of which application has focus.
func SystemRegistrar() Registrar {
	return systemRegistrar{}
}

type systemRegistrar struct{}

func (systemRegistrar) Register(action Action) (Registration, error) {
	modifiers, key := defaultBinding(action)
	hk := hotkey.New(modifiers, key)
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("register %s: %w", action, err)
	}

	registration := &systemRegistration{
		hk:     hk,
		events: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
	}
	go registration.pump()
	return registration, nil
}

// defaultBinding maps an action to its key combination. Key codes are a
// configuration detail: Ctrl+Shift+Down dims, Ctrl+Shift+Up restores.
func defaultBinding(action Action) ([]hotkey.Modifier, hotkey.Key) {
	modifiers := []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}
	if action == BrightnessUp {
		return modifiers, hotkey.KeyUp
	}
	return modifiers, hotkey.KeyDown
}

type systemRegistration struct {
	hk     *hotkey.Hotkey
	events chan struct{}
	stopCh chan struct{}
}

func (registration *systemRegistration) Keydown() <-chan struct{} {
	return registration.events
}

func (registration *systemRegistration) Unregister() error {
	close(registration.stopCh)
	return registration.hk.Unregister()
}

// pump converts key-down events into coalesced step signals. A held key
// never queues more than one pending step.
func (registration *systemRegistration) pump() {
	for {
		select {
		case <-registration.stopCh:
			return
		case <-registration.hk.Keydown():
			select {
			case registration.events <- struct{}{}:
			default:
			}
		}
	}
}
