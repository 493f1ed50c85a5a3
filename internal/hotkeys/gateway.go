package hotkeys

import (
	"fmt"
	"log"
	"sync"
)

// Action is a discrete brightness step requested by a global hotkey.
type Action int

const (
	BrightnessDown Action = iota
	BrightnessUp
)

func (action Action) String() string {
	switch action {
	case BrightnessDown:
		return "brightness_down"
	case BrightnessUp:
		return "brightness_up"
	default:
		return "unknown"
	}
}

// Registration is an active global key binding.
type Registration interface {
	Keydown() <-chan struct{}
	Unregister() error
}

// Registrar binds logical actions to platform key combinations. The
// gateway never touches a key-binding API directly.
type Registrar interface {
	Register(action Action) (Registration, error)
}

// Gateway owns the global hotkey bindings and delivers one discrete step
// per key press to the sink. Registration failure is non-fatal: the
// action is logged and skipped, and the rest of the system stays usable
// through direct UI control.
type Gateway struct {
	registrar Registrar
	sink      func(Action)

	mu      sync.Mutex
	regs    []Registration
	stopCh  chan struct{}
	wg      sync.WaitGroup
	started bool
}

// NewGateway creates a Gateway. sink runs on the gateway's dispatch
// goroutine; callers marshal onto their UI context themselves.
func NewGateway(registrar Registrar, sink func(Action)) *Gateway {
	return &Gateway{
		registrar: registrar,
		sink:      sink,
	}
}

// Start registers both bindings and begins dispatching. An error is
// returned only when no binding could be registered at all.
func (gateway *Gateway) Start() error {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	if gateway.started {
		return nil
	}
	gateway.stopCh = make(chan struct{})

	registered := 0
	for _, action := range []Action{BrightnessDown, BrightnessUp} {
		registration, err := gateway.registrar.Register(action)
		if err != nil {
			log.Printf("hotkeys: register %s: %v", action, err)
			continue
		}
		gateway.regs = append(gateway.regs, registration)
		registered++

		gateway.wg.Add(1)
		go gateway.dispatch(action, registration, gateway.stopCh)
	}

	gateway.started = true
	if registered == 0 {
		return fmt.Errorf("hotkeys: no bindings registered")
	}
	return nil
}

// Close unregisters both bindings and detaches the dispatch goroutines.
// Safe to call without a prior Start.
func (gateway *Gateway) Close() {
	gateway.mu.Lock()
	if !gateway.started {
		gateway.mu.Unlock()
		return
	}
	gateway.started = false
	close(gateway.stopCh)
	regs := gateway.regs
	gateway.regs = nil
	gateway.mu.Unlock()

	for _, registration := range regs {
		if err := registration.Unregister(); err != nil {
			log.Printf("hotkeys: unregister: %v", err)
		}
	}
	gateway.wg.Wait()
}

func (gateway *Gateway) dispatch(action Action, registration Registration, stop <-chan struct{}) {
	defer gateway.wg.Done()
	for {
		select {
		case <-stop:
			return
		case _, ok := <-registration.Keydown():
			if !ok {
				return
			}
			gateway.sink(action)
		}
	}
}
