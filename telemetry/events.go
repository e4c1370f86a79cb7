// Package telemetry provides scene statistics, bookmarking, perf tracking
// and the compressed tick trace.
package telemetry

import (
	"encoding/json"
	"fmt"
)

// EventType identifies telemetry events.
type EventType uint8

const (
	EventJump EventType = iota
	EventLand
	EventBlocked
	EventWatchStart
	EventWalkStart
	EventArrive
	EventWalkTimeout
	EventDoorToggle
	EventLightToggle
	EventZombiesSpawned
)

var eventTypeNames = []string{
	"jump", "land", "blocked", "watch_start", "walk_start",
	"arrive", "walk_timeout", "door_toggle", "light_toggle", "zombies_spawned",
}

// String returns the wire name of the event type.
func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// MarshalJSON encodes the event type by name.
func (t EventType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes an event type name.
func (t *EventType) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	for i, n := range eventTypeNames {
		if n == name {
			*t = EventType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event type %q", name)
}

// Event is a single discrete occurrence during a tick.
type Event struct {
	Type  EventType `json:"type"`
	Tick  int32     `json:"tick"`
	Count int       `json:"count,omitempty"` // Aggregated occurrences, e.g. villagers entering WATCH
	State bool      `json:"state,omitempty"` // New door/light state for toggles
}

// NewToggleEvent creates a door or light toggle event carrying the new state.
func NewToggleEvent(t EventType, tick int32, state bool) Event {
	return Event{Type: t, Tick: tick, State: state}
}

// NewCountEvent creates an aggregated event. Returns false when n is zero.
func NewCountEvent(t EventType, tick int32, n int) (Event, bool) {
	if n == 0 {
		return Event{}, false
	}
	return Event{Type: t, Tick: tick, Count: n}, true
}
