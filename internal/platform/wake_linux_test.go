//go:build linux

package platform

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
)

func TestIsWakeSignal(t *testing.T) {
	tests := []struct {
		name   string
		signal *dbus.Signal
		want   bool
	}{
		{"nil signal", nil, false},
		{"resume", &dbus.Signal{Name: sleepSignal, Body: []interface{}{false}}, true},
		{"suspend", &dbus.Signal{Name: sleepSignal, Body: []interface{}{true}}, false},
		{"wrong signal", &dbus.Signal{Name: "org.freedesktop.login1.Manager.SessionNew", Body: []interface{}{false}}, false},
		{"empty body", &dbus.Signal{Name: sleepSignal}, false},
		{"wrong body type", &dbus.Signal{Name: sleepSignal, Body: []interface{}{"false"}}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, isWakeSignal(test.signal))
		})
	}
}
