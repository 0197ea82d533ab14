package pachinko

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/tui-pachinko/internal/board"
	"github.com/vovakirdan/tui-pachinko/internal/config"
	"github.com/vovakirdan/tui-pachinko/internal/sim"
)

// HeadlessOptions describes one session run without a screen.
type HeadlessOptions struct {
	Config         config.PachinkoConfig
	Layout         board.Layout
	Seed           int64
	Balls          int // balls to launch; must be positive
	LaunchInterval int // ticks between launch attempts
	TickRate       int
	MaxTicks       int // run stops here even with balls still on the board
}

// DefaultHeadlessOptions returns options for a full default session.
func DefaultHeadlessOptions() HeadlessOptions {
	cfg := config.DefaultPachinkoConfig()
	return HeadlessOptions{
		Config:         cfg,
		Layout:         board.ChuteLayout(),
		Seed:           1,
		Balls:          cfg.Gameplay.BallsPerSession,
		LaunchInterval: 20,
		TickRate:       60,
		MaxTicks:       60 * 600,
	}
}

// HeadlessResult is the outcome of one headless session.
type HeadlessResult struct {
	Seed     int64
	Score    int
	Launched int
	Exits    int
	Refused  int // launch attempts refused by the live-ball cap
	Stranded int // balls still live or queued when MaxTicks was reached
	Ticks    int
}

// RunHeadless plays one session: it launches opts.Balls balls every
// LaunchInterval ticks and steps until all of them have exited or MaxTicks
// is reached. Cancelling ctx stops the run between ticks.
func RunHeadless(ctx context.Context, opts HeadlessOptions) (HeadlessResult, error) {
	if opts.Balls <= 0 {
		return HeadlessResult{}, fmt.Errorf("pachinko: headless: balls must be positive, got %d", opts.Balls)
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.LaunchInterval <= 0 {
		opts.LaunchInterval = 1
	}

	rng := rand.New(rand.NewSource(opts.Seed)) //#nosec G404 -- simulation randomness
	s := sim.New(SimConfig(opts.Config, opts.Layout), rng)
	if err := s.Initialize(opts.Config.Board.Width, opts.Config.Board.Height); err != nil {
		return HeadlessResult{}, fmt.Errorf("pachinko: headless: %w", err)
	}

	res := HeadlessResult{Seed: opts.Seed}
	dt := 1 / float64(opts.TickRate)

	for res.Ticks < opts.MaxTicks {
		if res.Ticks%64 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		if res.Launched < opts.Balls && res.Ticks%opts.LaunchInterval == 0 {
			if _, err := s.LaunchBall(); err == nil {
				res.Launched++
			} else if errors.Is(err, sim.ErrOverCapacity) {
				res.Refused++
			} else {
				return res, fmt.Errorf("pachinko: headless: %w", err)
			}
		}

		events, err := s.Tick(dt)
		if err != nil {
			return res, fmt.Errorf("pachinko: headless: %w", err)
		}
		res.Ticks++
		res.Exits += len(events)

		if res.Launched == opts.Balls && len(s.LiveBalls()) == 0 && s.Pending() == 0 {
			break
		}
	}

	res.Score = s.Score()
	res.Stranded = len(s.LiveBalls()) + s.Pending()
	return res, nil
}

// Summary aggregates a batch of headless results.
type Summary struct {
	Runs     int
	MinScore int
	MaxScore int
	Mean     float64
	Median   float64
	StdDev   float64
	Launched int
	Exits    int
	Stranded int
}

// ExitRate is the fraction of launched balls that exited.
func (s Summary) ExitRate() float64 {
	if s.Launched == 0 {
		return 0
	}
	return float64(s.Exits) / float64(s.Launched)
}

// Summarize computes score statistics over results.
func Summarize(results []HeadlessResult) Summary {
	var sum Summary
	if len(results) == 0 {
		return sum
	}

	scores := make([]int, len(results))
	total := 0
	for i, r := range results {
		scores[i] = r.Score
		total += r.Score
		sum.Launched += r.Launched
		sum.Exits += r.Exits
		sum.Stranded += r.Stranded
	}
	sort.Ints(scores)

	n := len(scores)
	sum.Runs = n
	sum.MinScore = scores[0]
	sum.MaxScore = scores[n-1]
	sum.Mean = float64(total) / float64(n)
	if n%2 == 1 {
		sum.Median = float64(scores[n/2])
	} else {
		sum.Median = float64(scores[n/2-1]+scores[n/2]) / 2
	}

	var sq float64
	for _, v := range scores {
		d := float64(v) - sum.Mean
		sq += d * d
	}
	sum.StdDev = math.Sqrt(sq / float64(n))
	return sum
}
