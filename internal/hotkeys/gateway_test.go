package hotkeys

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistration struct {
	events       chan struct{}
	mu           sync.Mutex
	unregistered bool
}

func (registration *fakeRegistration) Keydown() <-chan struct{} {
	return registration.events
}

func (registration *fakeRegistration) Unregister() error {
	registration.mu.Lock()
	defer registration.mu.Unlock()
	registration.unregistered = true
	return nil
}

type fakeRegistrar struct {
	regs map[Action]*fakeRegistration
	fail map[Action]bool
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{
		regs: map[Action]*fakeRegistration{},
		fail: map[Action]bool{},
	}
}

func (registrar *fakeRegistrar) Register(action Action) (Registration, error) {
	if registrar.fail[action] {
		return nil, errors.New("binding taken")
	}
	registration := &fakeRegistration{events: make(chan struct{}, 1)}
	registrar.regs[action] = registration
	return registration, nil
}

func collectActions(sink chan Action, want int) []Action {
	var actions []Action
	timeout := time.After(time.Second)
	for len(actions) < want {
		select {
		case action := <-sink:
			actions = append(actions, action)
		case <-timeout:
			return actions
		}
	}
	return actions
}

func TestGatewayDeliversSteps(t *testing.T) {
	registrar := newFakeRegistrar()
	sink := make(chan Action, 4)
	gateway := NewGateway(registrar, func(action Action) { sink <- action })

	require.NoError(t, gateway.Start())
	defer gateway.Close()

	registrar.regs[BrightnessDown].events <- struct{}{}
	registrar.regs[BrightnessUp].events <- struct{}{}

	actions := collectActions(sink, 2)
	assert.ElementsMatch(t, []Action{BrightnessDown, BrightnessUp}, actions)
}

func TestGatewayPartialRegistrationIsNonFatal(t *testing.T) {
	registrar := newFakeRegistrar()
	registrar.fail[BrightnessUp] = true
	sink := make(chan Action, 4)
	gateway := NewGateway(registrar, func(action Action) { sink <- action })

	require.NoError(t, gateway.Start(), "one working binding is enough")
	defer gateway.Close()

	registrar.regs[BrightnessDown].events <- struct{}{}
	actions := collectActions(sink, 1)
	assert.Equal(t, []Action{BrightnessDown}, actions)
}

func TestGatewayTotalRegistrationFailure(t *testing.T) {
	registrar := newFakeRegistrar()
	registrar.fail[BrightnessDown] = true
	registrar.fail[BrightnessUp] = true
	gateway := NewGateway(registrar, func(Action) {})

	assert.Error(t, gateway.Start())
	gateway.Close()
}

func TestGatewayCloseUnregisters(t *testing.T) {
	registrar := newFakeRegistrar()
	gateway := NewGateway(registrar, func(Action) {})

	require.NoError(t, gateway.Start())
	gateway.Close()
	gateway.Close()

	for action, registration := range registrar.regs {
		registration.mu.Lock()
		assert.True(t, registration.unregistered, "binding %s stays registered", action)
		registration.mu.Unlock()
	}
}

func TestGatewayRestartsAfterClose(t *testing.T) {
	registrar := newFakeRegistrar()
	sink := make(chan Action, 4)
	gateway := NewGateway(registrar, func(action Action) { sink <- action })

	require.NoError(t, gateway.Start())
	gateway.Close()
	require.NoError(t, gateway.Start())
	defer gateway.Close()

	registrar.regs[BrightnessUp].events <- struct{}{}
	actions := collectActions(sink, 1)
	assert.Equal(t, []Action{BrightnessUp}, actions)
}
