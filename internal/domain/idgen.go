package domain

import "github.com/google/uuid"

// IDGenerator hands out workout ids.
type IDGenerator interface {
	NewID() string
}

// TimeOrderedIDs generates UUIDv7 ids. The leading 48 bits are the Unix
// millisecond timestamp of creation, the rest is random, so ids sort by
// creation time and never repeat within a session.
type TimeOrderedIDs struct{}

func (TimeOrderedIDs) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
