// internal/app/engine/errors.go
package engine

import (
	"errors"
	"fmt"
)

// Error kinds returned by engine operations. Callers classify failures
// with errors.Is; the wrapped message carries the specifics.
var (
	// ErrNotFound reports that the entity named by the operation's
	// primary argument (resource, user, group, share target) does not
	// exist. Dangling references discovered mid-resolution are not
	// errors; they are skipped.
	ErrNotFound = errors.New("not found")

	// ErrValidation reports a malformed request: unknown share type,
	// missing required fields, or an id that does not parse.
	ErrValidation = errors.New("invalid request")

	// ErrConflict is reserved for stores that reject upsert-as-overwrite.
	// The default policy is upsert, so the engine itself never returns it.
	ErrConflict = errors.New("conflict")

	// ErrStoreUnavailable wraps any failure coming out of the grant
	// store (I/O errors, timeouts). The engine performs no retries.
	ErrStoreUnavailable = errors.New("store unavailable")
)

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// storeErr tags a store-layer failure so callers can tell infrastructure
// trouble apart from domain outcomes.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
