package domain

import "fmt"

// ValidationError reports a rejected numeric input. No record is created
// when a constructor returns one.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}
