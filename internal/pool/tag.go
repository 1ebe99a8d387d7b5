package pool

import (
	"fmt"
	"strings"
)

// Tag is a named reference to a slot another module produces, written as
// "module::output" in configuration. A Tag is inert until resolved against
// a Pool; resolution happens once, at module construction.
type Tag struct {
	Module string
	Output string
}

// ParseTag parses a "module::output" reference.
func ParseTag(s string) (Tag, error) {
	parts := strings.Split(s, "::")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Tag{}, fmt.Errorf("%w: %q", ErrBadTag, s)
	}
	return Tag{Module: parts[0], Output: parts[1]}, nil
}

func (t Tag) String() string {
	return t.Module + "::" + t.Output
}

// ResolveScalar binds the tag to a scalar slot in p. Fails with
// ErrSlotNotFound or ErrKindMismatch; either failure is permanent for the
// run, per the binding contract.
func (t Tag) ResolveScalar(p *Pool) (*Scalar, error) {
	return p.scalar(t)
}

// ResolveVector binds the tag to a 4-vector slot in p.
func (t Tag) ResolveVector(p *Pool) (*Vector, error) {
	return p.vector(t)
}
