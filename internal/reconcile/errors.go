package reconcile

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for the reconciliation taxonomy. Handlers translate them to
// HTTP statuses; none of them is fatal to a screen's interaction loop.
var (
	// ErrDuplicateMapping: the target identity pair (or external id, simple
	// families) already carries a mapping. Surfaced as a dismissible message.
	ErrDuplicateMapping = errors.New("vinculo ja existe")

	// ErrAlreadyLinked: an assignment gesture started or landed on an external
	// record that is already linked. Advisory pre-check result; the unique
	// index is the authoritative guard.
	ErrAlreadyLinked = errors.New("registro externo ja vinculado")
)

// DuplicateMappingError carries the offending pair for logging and messages.
type DuplicateMappingError struct {
	InternalID uuid.UUID
	ExternalID string
}

func (e *DuplicateMappingError) Error() string {
	return fmt.Sprintf("vinculo ja existe para o registro externo %s", e.ExternalID)
}

func (e *DuplicateMappingError) Unwrap() error { return ErrDuplicateMapping }

// ValidationError reports a rejected input before any store call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
