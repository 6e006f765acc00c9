// Package validation rejects malformed input before it reaches the replay
// engine. The engine is total over well-formed input, so every integrity
// check lives here.
package validation

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidUUID marks a path parameter that is not a well-formed UUID.
var ErrInvalidUUID = fmt.Errorf("invalid UUID format")

// ValidateUUID checks that id parses as a UUID.
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}
