package utils

import "github.com/google/uuid"

// NewID returns a time-ordered v7 UUID string. Token ids and trace ids both
// come from here so log lines and denylist keys sort by issue time.
// A random v4 is returned if the v7 clock read fails.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
