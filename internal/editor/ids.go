package editor

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator returns a fresh unit id on every call.
type IDGenerator func() string

// UUIDv7 returns a lowercase time-ordered UUIDv7 string.
func UUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// UUIDv4 returns a lowercase random UUIDv4 string.
func UUIDv4() string {
	return uuid.NewString()
}

// IDsForVersion returns the generator for a UUID version (4 or 7).
func IDsForVersion(version int) (IDGenerator, error) {
	switch version {
	case 7:
		return UUIDv7, nil
	case 4:
		return UUIDv4, nil
	default:
		return nil, fmt.Errorf("unsupported id version %d (want 4 or 7)", version)
	}
}
