package types

import (
	"time"

	"github.com/google/uuid"
)

// SpecID identifies a stored specification. UUIDv7 string alias: type
// safety with plain-string JSON and database serialization, and
// time-ordered values cluster sequential inserts in B-tree pages.
type SpecID string

// NewSpecID generates a UUIDv7 specification identifier.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewSpecID() SpecID {
	return SpecID(uuid.Must(uuid.NewV7()).String())
}

// ParseSpecID validates and converts a string to SpecID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the system.
func ParseSpecID(s string) (SpecID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return SpecID(s), nil
}

// SpecIDTime extracts the timestamp embedded in a UUIDv7 ID.
// Returns zero time for invalid UUIDs; caller should check IsZero().
func SpecIDTime(id SpecID) time.Time {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}
