// Command phasegen evaluates phase-space transform graphs over sampled
// points: validate a run configuration, describe its module graph, run it,
// and inspect persisted run records.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"phasegen/internal/config"
	"phasegen/internal/graph"
	"phasegen/internal/logging"
	"phasegen/internal/module"
	"phasegen/internal/store"
	_ "phasegen/internal/transfer" // register transfer-function modules
)

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "phasegen",
	Short: "Phase-space transform graph evaluator",
	Long: `phasegen builds a graph of phase-space modules from a yaml run file,
evaluates it over uniformly sampled points, and reports the mean
transfer-function weight. With a flat transfer function the mean weight
is the Jacobian of the sampling map, which validates that a surrounding
integrator would recover the correct phase-space volume.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [run.yaml]",
	Short: "Check a run configuration and its module bindings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args[0])
		if err != nil {
			return err
		}
		g, err := graph.Build(cfg, module.Global())
		if err != nil {
			return fmt.Errorf("binding failed: %w", err)
		}
		fmt.Printf("%s: %d modules, %d integration dimensions\n",
			cfg.Name, len(g.Modules()), g.Dimensions())
		return nil
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe [run.yaml]",
	Short: "Print the module graph of a run configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args[0])
		if err != nil {
			return err
		}
		g, err := graph.Build(cfg, module.Global())
		if err != nil {
			return fmt.Errorf("binding failed: %w", err)
		}

		fmt.Printf("run: %s\n", cfg.Name)
		fmt.Printf("points: %d  workers: %d  seed: %d\n", cfg.Points, cfg.Workers, cfg.Seed)
		fmt.Printf("integration dimensions: %d\n", g.Dimensions())
		for name, in := range cfg.Inputs {
			fmt.Printf("input %s::%s: (px=%g py=%g pz=%g e=%g)\n",
				graph.InputsName, name, in.Px, in.Py, in.Pz, in.E)
		}
		for _, m := range g.Modules() {
			fmt.Printf("module %s: dimensions=%d\n", m.Name(), m.Dimensions())
		}
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run [run.yaml]",
	Short: "Evaluate a run configuration over sampled points",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args[0])
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("starting run",
			zap.String("config", cfg.Name),
			zap.Int("points", cfg.Points),
			zap.Int("workers", cfg.Workers))

		res, err := graph.NewRunner(cfg).Run(ctx)
		if err != nil {
			return err
		}

		logger.Info("run finished",
			zap.String("run_id", res.RunID),
			zap.Float64("mean_weight", res.MeanWeight),
			zap.Duration("duration", res.Duration))

		fmt.Printf("run %s (%s)\n", res.RunID, res.Config)
		fmt.Printf("points: %d  aborted: %d  dimensions: %d\n",
			res.Points, res.Aborted, res.Dimensions)
		fmt.Printf("mean weight: %.12g\n", res.MeanWeight)
		fmt.Printf("duration: %v\n", res.Duration)

		if cfg.Database != "" {
			s, err := store.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.SaveRun(res); err != nil {
				return err
			}
			logger.Info("run persisted", zap.String("database", cfg.Database))
		}
		return nil
	},
}

var runsCmd = &cobra.Command{
	Use:   "runs [database]",
	Short: "List persisted run records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}

		s, err := store.Open(args[0])
		if err != nil {
			return err
		}
		defer s.Close()

		records, err := s.Runs(limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}
		for _, r := range records {
			fmt.Printf("%s  %-20s  points=%-8d dims=%d  mean=%.9g  %dms  %s\n",
				r.ID, r.Config, r.Points, r.Dimensions, r.MeanWeight, r.DurationMs,
				r.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.Logging.Dir != "" {
		if err := logging.Initialize(cfg.Logging.Dir, cfg.Logging.Level); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	runsCmd.Flags().Int("limit", 20, "maximum records to list")

	rootCmd.AddCommand(validateCmd, describeCmd, runCmd, runsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
