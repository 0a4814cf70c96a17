package session

import (
	"errors"

	"github.com/alexanderramin/pinlog/internal/domain"
)

// State is the controller's position in the logging flow.
type State int

const (
	StateIdle State = iota
	StateMapReady
	StateAwaitingFormInput
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMapReady:
		return "map-ready"
	case StateAwaitingFormInput:
		return "awaiting-form-input"
	}
	return "unknown"
}

var (
	ErrAlreadyLocated    = errors.New("position already requested")
	ErrMapNotReady       = errors.New("map not ready")
	ErrNoPendingLocation = errors.New("no pending location")
)

// Alert texts shown to the user.
const (
	AlertNoPosition    = "Could not get your position"
	AlertInvalidInputs = "Inputs have to be positive numbers"
	AlertNoLocation    = "Click on the map to choose a location first"
	AlertSaveFailed    = "Could not save the workout"
)

// sessionState is everything the controller mutates between events.
type sessionState struct {
	state    State
	resolved bool
	// pending is the single click slot; a new click overwrites it.
	pending  *domain.Coords
	lastZoom Timer
}
