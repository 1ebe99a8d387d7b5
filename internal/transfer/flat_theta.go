// Package transfer implements transfer-function modules: units that map
// sampler coordinates onto physical particle observables and report the
// transfer-function value times the Jacobian of that map, for the host
// integrator to fold into its integrand.
package transfer

import (
	"math"

	"phasegen/internal/module"
	"phasegen/internal/pool"
	"phasegen/internal/vector"
)

// TypeFlatTheta is the registry type name of the flat-theta transfer function.
const TypeFlatTheta = "flat_theta"

// Fixed output names; downstream consumers address them as
// "<instance>::output" and "<instance>::TF_times_jacobian".
const (
	OutputVector = "output"
	OutputWeight = "TF_times_jacobian"
)

func init() {
	module.MustRegister(TypeFlatTheta, NewFlatTheta)
}

// FlatTheta is a constant (=1) transfer function on a particle's polar
// angle, used to validate a phase-space generator: integrating over it
// recovers the geometric phase-space volume.
//
// Per sampled point it reads one unit-interval coordinate u and one
// reconstructed 4-vector, and produces a 4-vector with the same momentum
// magnitude, azimuthal angle and energy but polar angle theta = pi*u,
// together with the weight pi (transfer function 1 times the Jacobian of
// [0,1] -> [0,pi]). It consumes one integration dimension.
//
// Parameters:
//
//	ps_point      scalar tag    sampler coordinate in [0,1]
//	reco_particle 4-vector tag  reconstructed input particle
type FlatTheta struct {
	name string

	psPoint *pool.Scalar
	input   *pool.Vector

	output *pool.Vector
	weight *pool.Scalar
}

// NewFlatTheta binds the module's inputs and declares its outputs. Any
// failure here is a binding error: the instance must not be invoked.
func NewFlatTheta(p *pool.Pool, params *module.Params) (module.Module, error) {
	m := &FlatTheta{name: params.ModuleName()}

	tag, err := params.Tag("ps_point")
	if err != nil {
		return nil, err
	}
	if m.psPoint, err = tag.ResolveScalar(p); err != nil {
		return nil, err
	}

	tag, err = params.Tag("reco_particle")
	if err != nil {
		return nil, err
	}
	if m.input, err = tag.ResolveVector(p); err != nil {
		return nil, err
	}

	if m.output, err = p.DeclareVector(m.name, OutputVector); err != nil {
		return nil, err
	}
	if m.weight, err = p.DeclareScalar(m.name, OutputWeight); err != nil {
		return nil, err
	}
	return m, nil
}

// Name returns the instance name.
func (m *FlatTheta) Name() string { return m.name }

// Work resamples the input particle's polar angle. The transform is total
// on u in [0,1], so it always reports StatusOK.
func (m *FlatTheta) Work() module.Status {
	u := m.psPoint.Value()
	reco := m.input.Value()

	theta := math.Pi * u

	// Keep the input's |P|, phi and E; only theta changes.
	m.output.Set(vector.Polar(reco.P(), theta, reco.Phi(), reco.E))

	// Transfer function (=1) times the Jacobian of [0,1] -> [0,pi].
	m.weight.Set(math.Pi)

	return module.StatusOK
}

// Dimensions returns 1: the module consumes one sampler coordinate.
func (m *FlatTheta) Dimensions() int { return 1 }
