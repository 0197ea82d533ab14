package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-pachinko/internal/board"
	"github.com/vovakirdan/tui-pachinko/internal/config"
	"github.com/vovakirdan/tui-pachinko/internal/games/pachinko"
	"github.com/vovakirdan/tui-pachinko/internal/layouts"
)

var (
	flagSimRuns     int
	flagSimBalls    int
	flagSimInterval int
	flagSimMaxTicks int
	flagSimWorkers  int
	flagSimVerbose  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless sessions and report score statistics",
	Long: `Run complete sessions without a screen and print the score distribution.

Each run uses seed+i, so a given --seed always produces the same report.
Runs execute in parallel on --workers goroutines.

Examples:
  pachinko simulate
  pachinko simulate --runs 200 --balls 30 --seed 7
  pachinko simulate --layout classic --bounce wild
  pachinko simulate --config ./my-pachinko.yaml --runs 50 -v`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 20, "Number of sessions to run")
	simulateCmd.Flags().IntVar(&flagSimBalls, "balls", 0, "Balls per session (0 = from config)")
	simulateCmd.Flags().IntVar(&flagSimInterval, "interval", 20, "Ticks between launches")
	simulateCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 60*600, "Tick limit per session")
	simulateCmd.Flags().IntVar(&flagSimWorkers, "workers", runtime.NumCPU(), "Parallel sessions")
	simulateCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log every run")
	simulateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom pachinko config YAML")
	simulateCmd.Flags().StringVar(&flagBounce, "bounce", "", "Bounce preset: soft, lively, wild")
	simulateCmd.Flags().StringVar(&flagLayout, "layout", "", "Layout name (built-in or from the layout directory)")
}

func runSimulate(cmd *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pachinko-sim",
	})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	opts, err := simulateOptions()
	if err != nil {
		fail("%v", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info("simulating",
		"runs", flagSimRuns,
		"balls", opts.Balls,
		"layout", opts.Layout.Name,
		"workers", flagSimWorkers,
	)

	start := time.Now()
	results, err := simulateBatch(ctx, opts, flagSimRuns, flagSimWorkers, logger)
	if err != nil {
		fail("simulate: %v", err)
	}

	sum := pachinko.Summarize(results)
	logger.Info("done", "elapsed", time.Since(start).Round(time.Millisecond))

	fmt.Printf("Layout:    %s (%gx%g)\n", opts.Layout.Name, opts.Config.Board.Width, opts.Config.Board.Height)
	fmt.Printf("Runs:      %d x %d balls\n", sum.Runs, opts.Balls)
	fmt.Printf("Score:     min %d  median %.1f  mean %.1f  max %d  (sd %.1f)\n",
		sum.MinScore, sum.Median, sum.Mean, sum.MaxScore, sum.StdDev)
	fmt.Printf("Exit rate: %.1f%% (%d of %d)\n", sum.ExitRate()*100, sum.Exits, sum.Launched)
	if sum.Stranded > 0 {
		fmt.Printf("Stranded:  %d balls still on the board at the tick limit\n", sum.Stranded)
	}
}

// simulateOptions builds headless options from the config file and flags.
func simulateOptions() (pachinko.HeadlessOptions, error) {
	cfg, err := config.LoadPachinko(flagConfig)
	if err != nil {
		return pachinko.HeadlessOptions{}, err
	}
	preset, err := parseBounceFlag()
	if err != nil {
		return pachinko.HeadlessOptions{}, err
	}
	if preset != "" {
		config.ApplyBouncePreset(&cfg, preset)
	}

	name := flagLayout
	if name == "" {
		name = cfg.Board.Layout
	}
	layout := board.ChuteLayout()
	if name != "" {
		layout, err = layouts.Resolve(name, config.ExpandHome(cfg.Board.LayoutDir))
		if err != nil {
			return pachinko.HeadlessOptions{}, err
		}
	}

	opts := pachinko.DefaultHeadlessOptions()
	opts.Config = cfg
	opts.Layout = layout
	opts.Balls = cfg.Gameplay.BallsPerSession
	if flagSimBalls > 0 {
		opts.Balls = flagSimBalls
	}
	if opts.Balls <= 0 {
		return pachinko.HeadlessOptions{}, fmt.Errorf("endless config: pass --balls")
	}
	opts.LaunchInterval = flagSimInterval
	opts.MaxTicks = flagSimMaxTicks
	opts.TickRate = flagFPS
	opts.Seed = flagSeed
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return opts, nil
}

// simulateBatch runs sessions with seeds opts.Seed+i on up to workers
// goroutines. Results are returned in run order.
func simulateBatch(ctx context.Context, opts pachinko.HeadlessOptions, runs, workers int, logger *log.Logger) ([]pachinko.HeadlessResult, error) {
	if runs <= 0 {
		return nil, fmt.Errorf("runs must be positive, got %d", runs)
	}
	if workers <= 0 {
		workers = 1
	}

	results := make([]pachinko.HeadlessResult, runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range runs {
		g.Go(func() error {
			o := opts
			o.Seed = opts.Seed + int64(i)
			res, err := pachinko.RunHeadless(ctx, o)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = res
			logger.Debug("run finished",
				"run", i,
				"seed", res.Seed,
				"score", res.Score,
				"exits", res.Exits,
				"ticks", res.Ticks,
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
