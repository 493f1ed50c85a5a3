package controller

import "time"

// EventType defines the type of brightness event.
type EventType string

const (
	EventLevelChange EventType = "level_change"
	EventReset       EventType = "reset"
)

// Event represents a brightness update for observers.
type Event struct {
	Type  EventType
	Level float64
	At    time.Time
}
