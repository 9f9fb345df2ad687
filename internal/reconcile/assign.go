package reconcile

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MappingShape selects the commit path of the assignment protocol: simple
// links commit straight from the drop, weighted links pass through a
// quantity-capture sub-state first.
type MappingShape int

const (
	ShapeSimple MappingShape = iota
	ShapeWeighted
)

// AssignState enumerates the gesture state machine.
type AssignState int

const (
	StateIdle AssignState = iota
	StateDragging
	StateHovering
	StateAwaitingQuantity
)

// CreateRequest is the validated output of a completed gesture — the only
// thing the protocol ever hands to the mapping store.
type CreateRequest struct {
	InternalID uuid.UUID
	ExternalID string
	// Quantity is set for the weighted shape only, always strictly positive.
	Quantity *decimal.Decimal
}

// Assignment drives one link gesture from candidate pickup to a validated
// create request. Drag-and-drop is one trigger among several: click-to-link
// panels and bulk assignment run Begin/Hover/Drop directly against the same
// machine, so every entry point shares the duplicate pre-check and quantity
// validation.
//
// The machine is client-local: no store call happens until the caller commits
// the emitted CreateRequest, and Cancel at any point leaves no trace.
type Assignment struct {
	shape     MappingShape
	linked    func(externalID string) bool
	state     AssignState
	candidate string
	target    uuid.UUID
}

// NewAssignment builds an idle machine. linked is the view model's
// IsExternalLinked predicate; it is advisory (possibly stale), the store's
// unique index remains authoritative.
func NewAssignment(shape MappingShape, linked func(string) bool) *Assignment {
	return &Assignment{shape: shape, linked: linked, state: StateIdle}
}

func (a *Assignment) State() AssignState { return a.state }

// Begin captures the candidate external record. Already-linked records are
// not draggable.
func (a *Assignment) Begin(externalID string) error {
	if a.state != StateIdle {
		return &ValidationError{Field: "state", Message: "gesto ja em andamento"}
	}
	if externalID == "" {
		return &ValidationError{Field: "external_id", Message: "obrigatorio"}
	}
	if a.linked != nil && a.linked(externalID) {
		return ErrAlreadyLinked
	}
	a.candidate = externalID
	a.state = StateDragging
	return nil
}

// Hover marks the internal target under the gesture. Pure highlight; no side
// effect beyond remembering the target.
func (a *Assignment) Hover(target uuid.UUID) error {
	if a.state != StateDragging && a.state != StateHovering {
		return &ValidationError{Field: "state", Message: "nenhum gesto em andamento"}
	}
	if target == uuid.Nil {
		return &ValidationError{Field: "internal_id", Message: "obrigatorio"}
	}
	a.target = target
	a.state = StateHovering
	return nil
}

// Leave returns from a hover to plain dragging.
func (a *Assignment) Leave() {
	if a.state == StateHovering {
		a.target = uuid.Nil
		a.state = StateDragging
	}
}

// Drop commits the gesture. The linked pre-check runs again here to catch a
// mutation that raced the gesture; on conflict the machine aborts to Idle and
// the store is never called. Simple shape emits the request immediately;
// weighted shape transitions to quantity capture and emits nothing yet.
func (a *Assignment) Drop() (*CreateRequest, error) {
	if a.state != StateHovering {
		return nil, &ValidationError{Field: "state", Message: "nenhum alvo sob o gesto"}
	}
	if a.linked != nil && a.linked(a.candidate) {
		a.reset()
		return nil, ErrAlreadyLinked
	}
	if a.shape == ShapeWeighted {
		a.state = StateAwaitingQuantity
		return nil, nil
	}
	req := &CreateRequest{InternalID: a.target, ExternalID: a.candidate}
	a.reset()
	return req, nil
}

// Quantity completes a weighted gesture. Zero, negative or non-numeric input
// is rejected with a validation message and the sub-state stays open for
// correction.
func (a *Assignment) Quantity(q decimal.Decimal) (*CreateRequest, error) {
	if a.state != StateAwaitingQuantity {
		return nil, &ValidationError{Field: "state", Message: "nenhuma captura de quantidade em andamento"}
	}
	if err := ValidateQuantity(q); err != nil {
		return nil, err
	}
	req := &CreateRequest{InternalID: a.target, ExternalID: a.candidate, Quantity: &q}
	a.reset()
	return req, nil
}

// Cancel abandons the gesture at any point without emitting a request.
func (a *Assignment) Cancel() { a.reset() }

func (a *Assignment) reset() {
	a.state = StateIdle
	a.candidate = ""
	a.target = uuid.Nil
}

// ValidateQuantity enforces the strictly-positive rule shared by the capture
// sub-state and the inline quantity edit.
func ValidateQuantity(q decimal.Decimal) error {
	if !q.IsPositive() {
		return &ValidationError{Field: "quantity_per_unit", Message: "deve ser um numero positivo"}
	}
	return nil
}
