package domain

import (
	"fmt"
	"time"
)

// months is indexed by time.Month-1.
var months = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// RunningStats holds the fields only a running workout carries.
type RunningStats struct {
	CadenceSpm   float64
	PaceMinPerKm float64
}

// CyclingStats holds the fields only a cycling workout carries.
type CyclingStats struct {
	ElevationGainM float64
	SpeedKmh       float64
}

// Workout is a logged activity. Kind selects which of Running or Cycling is
// set; the other is nil. Only VisitCount changes after construction.
type Workout struct {
	ID          string
	Kind        Kind
	CreatedAt   time.Time
	Coords      Coords
	DistanceKm  float64
	DurationMin float64
	VisitCount  int
	Description string

	Running *RunningStats
	Cycling *CyclingStats
}

// Metric is a labelled value for display.
type Metric struct {
	Value float64
	Unit  string
}

// NewRunning builds a running workout. Distance, duration and cadence must
// be finite and strictly positive.
func NewRunning(id string, createdAt time.Time, coords Coords, distanceKm, durationMin, cadenceSpm float64) (*Workout, error) {
	if err := validateBase(coords, distanceKm, durationMin); err != nil {
		return nil, err
	}
	if err := requirePositive("cadence", cadenceSpm); err != nil {
		return nil, err
	}

	w := newBase(id, KindRunning, createdAt, coords, distanceKm, durationMin)
	w.Running = &RunningStats{
		CadenceSpm:   cadenceSpm,
		PaceMinPerKm: durationMin / distanceKm,
	}
	return w, nil
}

// NewCycling builds a cycling workout. Distance and duration must be finite
// and strictly positive; elevation only has to be finite, a negative gain
// (a net descent) is accepted.
func NewCycling(id string, createdAt time.Time, coords Coords, distanceKm, durationMin, elevationGainM float64) (*Workout, error) {
	if err := validateBase(coords, distanceKm, durationMin); err != nil {
		return nil, err
	}
	if err := requireFinite("elevation", elevationGainM); err != nil {
		return nil, err
	}

	w := newBase(id, KindCycling, createdAt, coords, distanceKm, durationMin)
	w.Cycling = &CyclingStats{
		ElevationGainM: elevationGainM,
		SpeedKmh:       distanceKm / (durationMin / 60),
	}
	return w, nil
}

// Describe returns "<Kind> on <Month> <day>" for the calendar date of t in
// t's own location.
func Describe(kind Kind, t time.Time) string {
	return fmt.Sprintf("%s on %s %d", kind.Label(), months[t.Month()-1], t.Day())
}

// Visit records one selection of the workout.
func (w *Workout) Visit() {
	w.VisitCount++
}

// PrimaryMetric returns the derived metric: pace for running, speed for cycling.
func (w *Workout) PrimaryMetric() Metric {
	switch w.Kind {
	case KindRunning:
		return Metric{Value: w.Running.PaceMinPerKm, Unit: "min/km"}
	case KindCycling:
		return Metric{Value: w.Cycling.SpeedKmh, Unit: "km/h"}
	}
	return Metric{}
}

// SecondaryMetric returns the user-entered type-specific metric.
func (w *Workout) SecondaryMetric() Metric {
	switch w.Kind {
	case KindRunning:
		return Metric{Value: w.Running.CadenceSpm, Unit: "spm"}
	case KindCycling:
		return Metric{Value: w.Cycling.ElevationGainM, Unit: "m"}
	}
	return Metric{}
}

// Clone returns a deep copy.
func (w *Workout) Clone() *Workout {
	c := *w
	if w.Running != nil {
		r := *w.Running
		c.Running = &r
	}
	if w.Cycling != nil {
		cy := *w.Cycling
		c.Cycling = &cy
	}
	return &c
}

// DisplayID returns a short identifier for display. Time-ordered ids share
// their leading characters, so the tail is used.
func (w *Workout) DisplayID() string {
	if len(w.ID) > 8 {
		return w.ID[len(w.ID)-8:]
	}
	return w.ID
}

func newBase(id string, kind Kind, createdAt time.Time, coords Coords, distanceKm, durationMin float64) *Workout {
	return &Workout{
		ID:          id,
		Kind:        kind,
		CreatedAt:   createdAt,
		Coords:      coords,
		DistanceKm:  distanceKm,
		DurationMin: durationMin,
		Description: Describe(kind, createdAt),
	}
}

func validateBase(coords Coords, distanceKm, durationMin float64) error {
	if err := coords.Validate(); err != nil {
		return err
	}
	if err := requirePositive("distance", distanceKm); err != nil {
		return err
	}
	return requirePositive("duration", durationMin)
}

func requireFinite(field string, v float64) error {
	if !isFinite(v) {
		return &ValidationError{Field: field, Value: v, Reason: "must be a finite number"}
	}
	return nil
}

func requirePositive(field string, v float64) error {
	if err := requireFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return &ValidationError{Field: field, Value: v, Reason: "must be greater than zero"}
	}
	return nil
}
