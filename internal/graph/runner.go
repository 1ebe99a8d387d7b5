package graph

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"phasegen/internal/config"
	"phasegen/internal/logging"
	"phasegen/internal/module"
)

// Result summarizes one run over sampled points. MeanWeight times the
// points evaluated is what a surrounding integrator would accumulate;
// the runner itself only evaluates and averages.
type Result struct {
	RunID      string
	Config     string
	Points     int
	Aborted    int
	Dimensions int
	MeanWeight float64
	Duration   time.Duration
}

// Runner evaluates a configuration's graph over uniformly sampled points,
// sequentially or with one private graph per worker.
type Runner struct {
	cfg *config.Config
	reg *module.Registry
}

// NewRunner creates a runner over the global module registry.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg, reg: module.Global()}
}

// NewRunnerWithRegistry creates a runner over a specific registry.
func NewRunnerWithRegistry(cfg *config.Config, reg *module.Registry) *Runner {
	return &Runner{cfg: cfg, reg: reg}
}

// Run evaluates cfg.Points points and returns the run summary. The
// context is checked between points; cancellation abandons the run.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{
		RunID:  uuid.NewString(),
		Config: r.cfg.Name,
		Points: r.cfg.Points,
	}
	logging.Run("run %s: %d points, %d workers, seed %d",
		res.RunID, r.cfg.Points, r.cfg.Workers, r.cfg.Seed)

	// Build once up front so binding errors surface before any sampling,
	// and so the result can report the dimension count even for 0 workers'
	// worth of work.
	probe, err := Build(r.cfg, r.reg)
	if err != nil {
		return nil, err
	}
	res.Dimensions = probe.Dimensions()

	var sum float64
	var aborted int
	if r.cfg.Workers == 1 {
		sum, aborted, err = evaluate(ctx, probe, r.cfg.Points, r.cfg.Seed)
		if err != nil {
			return nil, err
		}
	} else {
		sum, aborted, err = r.runParallel(ctx)
		if err != nil {
			return nil, err
		}
	}

	res.Aborted = aborted
	res.MeanWeight = sum / float64(res.Points)
	res.Duration = time.Since(start)
	logging.Run("run %s: mean weight %g (%d aborted) in %v",
		res.RunID, res.MeanWeight, res.Aborted, res.Duration)
	return res, nil
}

// runParallel splits the points across workers, each with its own graph
// and its own seed-derived sample stream.
func (r *Runner) runParallel(ctx context.Context) (float64, int, error) {
	workers := r.cfg.Workers
	sums := make([]float64, workers)
	aborts := make([]int, workers)

	grp, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		points := r.cfg.Points / workers
		if w < r.cfg.Points%workers {
			points++
		}
		seed := r.cfg.Seed + int64(w)
		w := w
		grp.Go(func() error {
			g, err := Build(r.cfg, r.reg)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			sums[w], aborts[w], err = evaluate(ctx, g, points, seed)
			return err
		})
	}
	if err := grp.Wait(); err != nil {
		return 0, 0, err
	}

	var sum float64
	var aborted int
	for w := 0; w < workers; w++ {
		sum += sums[w]
		aborted += aborts[w]
	}
	return sum, aborted, nil
}

// evaluate runs n points through g, summing weights. Aborted points
// contribute zero weight.
func evaluate(ctx context.Context, g *Graph, n int, seed int64) (float64, int, error) {
	rng := rand.New(rand.NewSource(seed))
	u := make([]float64, g.Dimensions())

	var sum float64
	var aborted int
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}
		for d := range u {
			u[d] = rng.Float64()
		}
		if err := g.SetPoint(u); err != nil {
			return 0, 0, err
		}
		if g.Run() != module.StatusOK {
			aborted++
			continue
		}
		sum += g.Weight()
	}
	return sum, aborted, nil
}
