// Package module defines the phase-space module contract and the factory
// registry through which module types are constructed from configuration.
//
// A module binds its named inputs against the pool exactly once, at
// construction, and declares the outputs it will produce. After that the
// host invokes Work once per sampled point. Construction failures are
// fatal to the run; a module that failed to bind is never invoked.
package module

// Status is the result of one module invocation.
type Status int

const (
	// StatusOK means the invocation produced all declared outputs.
	StatusOK Status = iota

	// StatusAbort means the point cannot contribute and evaluation of
	// the remaining modules for this point should stop.
	StatusAbort
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAbort:
		return "abort"
	}
	return "unknown"
}

// Module is one phase-space transform unit.
type Module interface {
	// Name returns the instance name, which keys the module's output
	// slots in the pool.
	Name() string

	// Work reads the bound inputs and overwrites the declared outputs
	// for the current sampled point.
	Work() Status

	// Dimensions returns how many unit-hypercube coordinates the module
	// consumes per point. Fixed after construction; the sampler sizes
	// its space from the sum over all modules.
	Dimensions() int
}
