// Package replay drives a session from a YAML script instead of a terminal.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/pinlog/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	ActionLocate = "locate"
	ActionClick  = "click"
	ActionToggle = "toggle"
	ActionSubmit = "submit"
	ActionSelect = "select"
	ActionWait   = "wait"
)

// Script is a recorded session. Home, when set, is the position the
// locator reports; without it the position is unavailable.
type Script struct {
	Home       *domain.Coords `yaml:"home"`
	ZoomPolicy string         `yaml:"zoom_policy"`
	Events     []Event        `yaml:"events"`
}

// Event is one user or environment action. Which fields apply depends on
// Action: click reads Lat/Lng, submit reads Type and the measurements,
// select reads Index (1-based list position) or ID, wait reads After.
type Event struct {
	Action string `yaml:"action"`

	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`

	Type      string  `yaml:"type"`
	Distance  float64 `yaml:"distance"`
	Duration  float64 `yaml:"duration"`
	Cadence   float64 `yaml:"cadence"`
	Elevation float64 `yaml:"elevation"`

	Index int    `yaml:"index"`
	ID    string `yaml:"id"`

	After string `yaml:"after"`
}

// Load decodes and validates a script. Unknown keys are rejected.
func Load(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty replay script")
		}
		return nil, fmt.Errorf("decoding replay script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func LoadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading replay script: %w", err)
	}
	return Load(bytes.NewReader(data))
}

// Validate checks the script's structure. Measurement values are not
// checked here; invalid ones are what the session rejects at run time.
func (s *Script) Validate() error {
	if s.ZoomPolicy != "" {
		switch domain.ZoomPolicy(s.ZoomPolicy) {
		case domain.ZoomStack, domain.ZoomLatest:
		default:
			return fmt.Errorf("invalid zoom_policy %q", s.ZoomPolicy)
		}
	}
	for i, e := range s.Events {
		if err := e.validate(); err != nil {
			return fmt.Errorf("event %d (%s): %w", i+1, e.Action, err)
		}
	}
	return nil
}

func (e Event) validate() error {
	switch e.Action {
	case ActionLocate, ActionToggle:
		return nil
	case ActionClick:
		return domain.Coords{Lat: e.Lat, Lng: e.Lng}.Validate()
	case ActionSubmit:
		if _, err := domain.ParseKind(e.Type); err != nil {
			return err
		}
		return nil
	case ActionSelect:
		if e.ID == "" && e.Index < 1 {
			return fmt.Errorf("select needs an id or an index of 1 or more")
		}
		return nil
	case ActionWait:
		_, err := e.wait()
		return err
	case "":
		return fmt.Errorf("missing action")
	}
	return fmt.Errorf("unknown action %q", e.Action)
}

func (e Event) wait() (time.Duration, error) {
	d, err := time.ParseDuration(e.After)
	if err != nil {
		return 0, fmt.Errorf("invalid wait %q: %w", e.After, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid wait %q: must not be negative", e.After)
	}
	return d, nil
}
