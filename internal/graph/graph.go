// Package graph assembles module instances from a run configuration and
// evaluates them over sampled points. A graph owns one pool; parallel
// evaluation builds one graph per worker so no slot is ever shared.
package graph

import (
	"fmt"
	"strconv"

	"phasegen/internal/config"
	"phasegen/internal/logging"
	"phasegen/internal/module"
	"phasegen/internal/pool"
	"phasegen/internal/vector"
)

// Reserved slot owners: sampler coordinates and fixed input particles.
const (
	SamplerName = "sampler"
	InputsName  = "inputs"
)

// Graph is an ordered set of bound modules sharing one pool.
type Graph struct {
	pool    *pool.Pool
	modules []module.Module
	samples []*pool.Scalar
	weights []*pool.Scalar
	dims    int
}

// Build resolves a configuration into a bound graph: it declares the
// fixed input particles and the sampler coordinate slots, then constructs
// each module in declaration order against the registry. Any binding
// failure aborts construction.
func Build(cfg *config.Config, reg *module.Registry) (*Graph, error) {
	timer := logging.StartTimer(logging.CategoryGraph, "Build")
	defer timer.Stop()

	g := &Graph{pool: pool.New()}

	for name, in := range cfg.Inputs {
		slot, err := g.pool.DeclareVector(InputsName, name)
		if err != nil {
			return nil, fmt.Errorf("declare input %s: %w", name, err)
		}
		slot.Set(vector.PxPyPzE(in.Px, in.Py, in.Pz, in.E))
	}

	n, err := samplerSlotCount(cfg)
	if err != nil {
		return nil, err
	}
	g.samples = make([]*pool.Scalar, n)
	for i := range g.samples {
		slot, err := g.pool.DeclareScalar(SamplerName, strconv.Itoa(i))
		if err != nil {
			return nil, fmt.Errorf("declare sampler coordinate %d: %w", i, err)
		}
		g.samples[i] = slot
	}

	for _, mc := range cfg.Modules {
		m, err := reg.Build(mc.Type, g.pool, module.NewParams(mc.Name, mc.Params))
		if err != nil {
			return nil, err
		}
		g.modules = append(g.modules, m)
		g.dims += m.Dimensions()

		// Modules reporting a transfer weight contribute to the per-point
		// product; modules without one are pure transforms.
		tag := pool.Tag{Module: m.Name(), Output: "TF_times_jacobian"}
		if w, err := tag.ResolveScalar(g.pool); err == nil {
			g.weights = append(g.weights, w)
		}
	}

	if g.dims != n {
		return nil, fmt.Errorf("%w: modules declare %d, configs reference %d",
			ErrDimensionMismatch, g.dims, n)
	}

	logging.Graph("built graph: %d modules, %d dimensions, %d slots",
		len(g.modules), g.dims, g.pool.Len())
	return g, nil
}

// samplerSlotCount scans module parameters for sampler references and
// checks they form a contiguous 0-based range.
func samplerSlotCount(cfg *config.Config) (int, error) {
	seen := make(map[int]bool)
	max := -1
	for _, mc := range cfg.Modules {
		for _, raw := range mc.Params {
			s, ok := raw.(string)
			if !ok {
				continue
			}
			tag, err := pool.ParseTag(s)
			if err != nil || tag.Module != SamplerName {
				continue
			}
			idx, err := strconv.Atoi(tag.Output)
			if err != nil || idx < 0 {
				return 0, fmt.Errorf("%w: bad coordinate %q", ErrSamplerIndices, tag.Output)
			}
			seen[idx] = true
			if idx > max {
				max = idx
			}
		}
	}
	if len(seen) != max+1 {
		return 0, fmt.Errorf("%w: %d referenced, highest index %d", ErrSamplerIndices, len(seen), max)
	}
	return len(seen), nil
}

// Dimensions returns the summed dimension count of all modules.
func (g *Graph) Dimensions() int { return g.dims }

// Modules returns the bound modules in evaluation order.
func (g *Graph) Modules() []module.Module { return g.modules }

// Pool returns the graph's pool, for consumers resolving module outputs.
func (g *Graph) Pool() *pool.Pool { return g.pool }

// SetPoint writes one unit-hypercube point into the sampler slots.
func (g *Graph) SetPoint(u []float64) error {
	if len(u) != len(g.samples) {
		return fmt.Errorf("%w: got %d, want %d", ErrPointSize, len(u), len(g.samples))
	}
	for i, v := range u {
		g.samples[i].Set(v)
	}
	return nil
}

// Run invokes every module in order for the current point, stopping at
// the first module that does not report ok.
func (g *Graph) Run() module.Status {
	for _, m := range g.modules {
		if status := m.Work(); status != module.StatusOK {
			logging.ModulesDebug("module %s stopped point: %v", m.Name(), status)
			return status
		}
	}
	return module.StatusOK
}

// Weight returns the product of every module's transfer weight for the
// current point. Valid after a successful Run.
func (g *Graph) Weight() float64 {
	w := 1.0
	for _, s := range g.weights {
		w *= s.Value()
	}
	return w
}
