// Package vector provides the 4-momentum representation exchanged between
// phase-space modules. Components are Cartesian (px, py, pz) plus energy,
// all in float64; derived quantities (|P|, theta, phi, mass) follow the
// usual collider conventions with theta measured from the +z axis.
package vector

import (
	"fmt"
	"math"
)

// FourVec is a particle 4-momentum (px, py, pz, E).
type FourVec struct {
	Px float64
	Py float64
	Pz float64
	E  float64
}

// PxPyPzE builds a 4-vector from Cartesian components.
func PxPyPzE(px, py, pz, e float64) FourVec {
	return FourVec{Px: px, Py: py, Pz: pz, E: e}
}

// Polar builds a 4-vector from momentum magnitude, polar angle theta,
// azimuthal angle phi and energy.
func Polar(p, theta, phi, e float64) FourVec {
	sin, cos := math.Sincos(theta)
	return FourVec{
		Px: p * sin * math.Cos(phi),
		Py: p * sin * math.Sin(phi),
		Pz: p * cos,
		E:  e,
	}
}

// P returns the momentum magnitude.
func (v FourVec) P() float64 {
	return math.Sqrt(v.Px*v.Px + v.Py*v.Py + v.Pz*v.Pz)
}

// Pt returns the transverse momentum.
func (v FourVec) Pt() float64 {
	return math.Sqrt(v.Px*v.Px + v.Py*v.Py)
}

// Phi returns the azimuthal angle in (-pi, pi].
func (v FourVec) Phi() float64 {
	return math.Atan2(v.Py, v.Px)
}

// Theta returns the polar angle in [0, pi]. A zero-momentum vector has
// no defined direction; Theta reports 0 for it.
func (v FourVec) Theta() float64 {
	p := v.P()
	if p == 0 {
		return 0
	}
	return math.Acos(v.Pz / p)
}

// M2 returns the squared invariant mass E^2 - |P|^2. It can be slightly
// negative for massless particles due to rounding.
func (v FourVec) M2() float64 {
	return v.E*v.E - (v.Px*v.Px + v.Py*v.Py + v.Pz*v.Pz)
}

// M returns the invariant mass, clamping small negative M2 to zero.
func (v FourVec) M() float64 {
	m2 := v.M2()
	if m2 < 0 {
		return 0
	}
	return math.Sqrt(m2)
}

func (v FourVec) String() string {
	return fmt.Sprintf("(px=%g py=%g pz=%g e=%g)", v.Px, v.Py, v.Pz, v.E)
}
