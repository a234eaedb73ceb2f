// Package status models a device's rollout lifecycle as an explicit
// three-state machine driven by externally supplied status events,
// replacing log-tail scanning on the device side.
package status

import (
	"errors"
	"fmt"
)

// State is a device's current rollout state.
type State string

const (
	StateIdle       State = "IDLE"       // no installation in progress
	StateInstalling State = "INSTALLING" // update payload being applied
	StateFailed     State = "FAILED"     // last installation failed
)

// Event is an installation lifecycle transition reported by a device.
type Event string

const (
	EventInstallStarted   Event = "INSTALL_STARTED"
	EventInstallFailed    Event = "INSTALL_FAILED"
	EventInstallSucceeded Event = "INSTALL_SUCCEEDED"
)

// ErrInvalidTransition indicates an event that is not legal from the
// device's current state (e.g. a failure report while idle).
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrUnknownEvent indicates an unrecognized event kind.
var ErrUnknownEvent = errors.New("unknown status event")

var transitions = map[State]map[Event]State{
	StateIdle: {
		EventInstallStarted: StateInstalling,
	},
	StateInstalling: {
		EventInstallFailed:    StateFailed,
		EventInstallSucceeded: StateIdle,
	},
	StateFailed: {
		// A retry is the only way out of FAILED.
		EventInstallStarted: StateInstalling,
	},
}

// ParseEvent validates an event string from the wire.
func ParseEvent(s string) (Event, error) {
	switch Event(s) {
	case EventInstallStarted, EventInstallFailed, EventInstallSucceeded:
		return Event(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEvent, s)
}

// ParseState maps a stored state string back to a State, defaulting to
// idle for anything unrecognized (a fresh device has no stored state).
func ParseState(s string) State {
	switch State(s) {
	case StateInstalling, StateFailed:
		return State(s)
	}
	return StateIdle
}

// Next returns the state reached by applying ev in current.
func Next(current State, ev Event) (State, error) {
	if next, ok := transitions[current][ev]; ok {
		return next, nil
	}
	return current, fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, ev, current)
}
