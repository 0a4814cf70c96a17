package domain

import (
	"fmt"
	"math"
)

// Coords is a latitude/longitude pair in degrees.
type Coords struct {
	Lat float64
	Lng float64
}

// Validate checks that both components are finite and inside the
// geographic range.
func (c Coords) Validate() error {
	if !isFinite(c.Lat) {
		return &ValidationError{Field: "latitude", Value: c.Lat, Reason: "must be a finite number"}
	}
	if !isFinite(c.Lng) {
		return &ValidationError{Field: "longitude", Value: c.Lng, Reason: "must be a finite number"}
	}
	if c.Lat < -90 || c.Lat > 90 {
		return &ValidationError{Field: "latitude", Value: c.Lat, Reason: "must be within [-90, 90]"}
	}
	if c.Lng < -180 || c.Lng > 180 {
		return &ValidationError{Field: "longitude", Value: c.Lng, Reason: "must be within [-180, 180]"}
	}
	return nil
}

func (c Coords) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lng)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
