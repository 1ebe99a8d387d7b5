package graph

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/goleak"

	"phasegen/internal/module"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunnerSequential(t *testing.T) {
	cfg := thetaConfig()
	cfg.Points = 500

	res, err := NewRunner(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.RunID == "" {
		t.Error("empty run id")
	}
	if res.Points != 500 {
		t.Errorf("Points = %d, want 500", res.Points)
	}
	if res.Dimensions != 1 {
		t.Errorf("Dimensions = %d, want 1", res.Dimensions)
	}
	if res.Aborted != 0 {
		t.Errorf("Aborted = %d, want 0", res.Aborted)
	}
	// Every point weighs exactly pi, so the mean is exact up to summation.
	if math.Abs(res.MeanWeight-math.Pi) > 1e-9 {
		t.Errorf("MeanWeight = %g, want pi", res.MeanWeight)
	}
}

func TestRunnerParallel(t *testing.T) {
	cfg := chainedConfig()
	cfg.Points = 1001 // uneven split across workers
	cfg.Workers = 4

	res, err := NewRunner(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Points != 1001 {
		t.Errorf("Points = %d, want 1001", res.Points)
	}
	if res.Dimensions != 2 {
		t.Errorf("Dimensions = %d, want 2", res.Dimensions)
	}
	if math.Abs(res.MeanWeight-math.Pi*math.Pi) > 1e-9 {
		t.Errorf("MeanWeight = %g, want pi^2", res.MeanWeight)
	}
}

func TestRunnerBindingErrorBeforeSampling(t *testing.T) {
	cfg := thetaConfig()
	delete(cfg.Modules[0].Params, "reco_particle")

	_, err := NewRunner(cfg).Run(context.Background())
	if !errors.Is(err, module.ErrParamMissing) {
		t.Errorf("error = %v, want ErrParamMissing", err)
	}
}

func TestRunnerCancelled(t *testing.T) {
	cfg := thetaConfig()
	cfg.Points = 1 << 20

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(cfg).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRunnerCancelledParallel(t *testing.T) {
	cfg := thetaConfig()
	cfg.Points = 1 << 20
	cfg.Workers = 4

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(cfg).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
