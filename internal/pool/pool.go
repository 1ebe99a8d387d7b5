// Package pool implements the run-scoped value store through which
// phase-space modules exchange named, typed values. Slots are declared
// once per run, keyed by owner module and output name, then overwritten
// on every sampled point. The pool does no locking: concurrent evaluation
// requires a private pool per worker, which the graph runner arranges.
package pool

import (
	"fmt"

	"phasegen/internal/logging"
	"phasegen/internal/vector"
)

// Scalar is a float64 slot. The owning module overwrites it each
// invocation; consumers hold read handles obtained via Tag resolution.
type Scalar struct {
	v float64
}

// Set overwrites the slot value.
func (s *Scalar) Set(v float64) { s.v = v }

// Value returns the current slot value.
func (s *Scalar) Value() float64 { return s.v }

// Vector is a 4-momentum slot.
type Vector struct {
	v vector.FourVec
}

// Set overwrites the slot value.
func (s *Vector) Set(v vector.FourVec) { s.v = v }

// Value returns the current slot value.
func (s *Vector) Value() vector.FourVec { return s.v }

// Pool holds all declared slots for one run.
type Pool struct {
	scalars map[string]*Scalar
	vectors map[string]*Vector
}

// New creates an empty pool.
func New() *Pool {
	return &Pool{
		scalars: make(map[string]*Scalar),
		vectors: make(map[string]*Vector),
	}
}

func key(owner, name string) string {
	return owner + "::" + name
}

// DeclareScalar allocates a scalar slot owned by a module. Declaring a
// name twice, under any kind, is an error.
func (p *Pool) DeclareScalar(owner, name string) (*Scalar, error) {
	k := key(owner, name)
	if err := p.checkFree(k); err != nil {
		return nil, err
	}
	s := &Scalar{}
	p.scalars[k] = s
	logging.PoolDebug("declared scalar slot %s", k)
	return s, nil
}

// DeclareVector allocates a 4-vector slot owned by a module.
func (p *Pool) DeclareVector(owner, name string) (*Vector, error) {
	k := key(owner, name)
	if err := p.checkFree(k); err != nil {
		return nil, err
	}
	v := &Vector{}
	p.vectors[k] = v
	logging.PoolDebug("declared vector slot %s", k)
	return v, nil
}

func (p *Pool) checkFree(k string) error {
	if _, ok := p.scalars[k]; ok {
		return fmt.Errorf("%w: %s", ErrSlotTaken, k)
	}
	if _, ok := p.vectors[k]; ok {
		return fmt.Errorf("%w: %s", ErrSlotTaken, k)
	}
	return nil
}

func (p *Pool) scalar(t Tag) (*Scalar, error) {
	k := key(t.Module, t.Output)
	if s, ok := p.scalars[k]; ok {
		return s, nil
	}
	if _, ok := p.vectors[k]; ok {
		return nil, fmt.Errorf("%w: %s is a 4-vector, want scalar", ErrKindMismatch, k)
	}
	return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, k)
}

func (p *Pool) vector(t Tag) (*Vector, error) {
	k := key(t.Module, t.Output)
	if v, ok := p.vectors[k]; ok {
		return v, nil
	}
	if _, ok := p.scalars[k]; ok {
		return nil, fmt.Errorf("%w: %s is a scalar, want 4-vector", ErrKindMismatch, k)
	}
	return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, k)
}

// Len returns the number of declared slots.
func (p *Pool) Len() int {
	return len(p.scalars) + len(p.vectors)
}
