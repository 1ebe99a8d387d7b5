package pool

import "errors"

// Pool and tag errors.
var (
	// ErrBadTag is returned when a reference string is not "module::output".
	ErrBadTag = errors.New("malformed input tag")

	// ErrSlotNotFound is returned when a tag resolves to no declared slot.
	ErrSlotNotFound = errors.New("slot not found")

	// ErrKindMismatch is returned when a slot exists under another kind.
	ErrKindMismatch = errors.New("slot kind mismatch")

	// ErrSlotTaken is returned when declaring an already-declared slot.
	ErrSlotTaken = errors.New("slot already declared")
)
