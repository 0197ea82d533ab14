// Package pachinko puts the peg-board simulation on the arcade screen.
// Balls launch up the right lane, bounce down through the pins and score when
// they leave through the bottom of the board.
package pachinko

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-pachinko/internal/board"
	"github.com/vovakirdan/tui-pachinko/internal/config"
	"github.com/vovakirdan/tui-pachinko/internal/core"
	"github.com/vovakirdan/tui-pachinko/internal/layouts"
	"github.com/vovakirdan/tui-pachinko/internal/registry"
	"github.com/vovakirdan/tui-pachinko/internal/sim"
)

// Mode selects the default board revision.
type Mode int

const (
	ModeChute   Mode = iota // flat top with an angled chute
	ModeClassic             // one long diagonal across the top-right corner
)

// Screen limits below which the board is not drawn.
const (
	MinScreenW = 30
	MinScreenH = 12
)

// configPath stores the custom config path set via CLI
var configPath string

// bouncePreset stores the bounce preset set via CLI
var bouncePreset config.BouncePreset

// layoutName stores the layout override set via CLI
var layoutName string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetBouncePreset sets the bounce preset. Unknown names clear it.
func SetBouncePreset(preset string) {
	bouncePreset, _ = config.ParseBouncePreset(preset)
}

// SetLayout overrides the layout for both modes. Empty restores the defaults.
func SetLayout(name string) {
	layoutName = name
}

// Game implements registry.Game on top of a sim.Simulation.
type Game struct {
	mode    Mode
	runtime core.RuntimeConfig
	cfg     config.PachinkoConfig
	layout  string

	sim         *sim.Simulation
	unsubscribe func()
	indicators  []Indicator

	launched  int // balls accepted this session
	refused   int // launches refused by the live-ball cap
	tickCount int
	paused    bool
	gameOver  bool
	err       error // board could not be built; rendered instead of the board

	screenW, screenH int
}

// New creates a pachinko game on the chute board.
func New() *Game {
	return &Game{mode: ModeChute}
}

// NewClassic creates a pachinko game on the classic board.
func NewClassic() *Game {
	return &Game{mode: ModeClassic}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeClassic {
		return "pachinko_classic"
	}
	return "pachinko"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Pachinko (Classic)"
	}
	return "Pachinko"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime
	g.screenW, g.screenH = runtime.ScreenW, runtime.ScreenH

	cfg, err := config.LoadPachinko(configPath)
	if err != nil {
		cfg = config.DefaultPachinkoConfig()
	}
	if bouncePreset != "" {
		config.ApplyBouncePreset(&cfg, bouncePreset)
	}
	g.cfg = cfg

	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
	g.indicators = nil
	g.launched = 0
	g.refused = 0
	g.tickCount = 0
	g.paused = false
	g.gameOver = false
	g.err = nil

	layout := g.resolveLayout()
	g.layout = layout.Name

	rng := rand.New(rand.NewSource(runtime.Seed)) //#nosec G404 -- gameplay randomness
	g.sim = sim.New(SimConfig(cfg, layout), rng)
	if err := g.sim.Initialize(cfg.Board.Width, cfg.Board.Height); err != nil {
		g.err = err
		return
	}
	g.unsubscribe = g.sim.Subscribe(sim.ObserverFunc(g.onExit))
}

// resolveLayout picks the layout by CLI override, mode and config, falling
// back to the built-in board for the mode.
func (g *Game) resolveLayout() board.Layout {
	fallback := board.ChuteLayout()
	name := g.cfg.Board.Layout
	if g.mode == ModeClassic {
		fallback = board.ClassicLayout()
		name = fallback.Name
	}
	if layoutName != "" {
		name = layoutName
	}
	if name == "" {
		return fallback
	}

	l, err := layouts.Resolve(name, config.ExpandHome(g.cfg.Board.LayoutDir))
	if err != nil {
		return fallback
	}
	return l
}

// Resize follows a terminal resize. The world is independent of the screen,
// so the session continues.
func (g *Game) Resize(screenW, screenH int) {
	g.screenW, g.screenH = screenW, screenH
	g.runtime.ScreenW, g.runtime.ScreenH = screenW, screenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver || g.err != nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	if in.Has(core.ActionLaunch) && g.ballsLeft() != 0 {
		if _, err := g.sim.LaunchBall(); err == nil {
			g.launched++
		} else if errors.Is(err, sim.ErrOverCapacity) {
			g.refused++
		}
	}

	events, err := g.sim.Tick(1 / float64(g.runtime.TickRate))
	if err != nil {
		g.err = err
		return core.StepResult{State: g.State()}
	}

	g.ageIndicators()

	if g.ballsLeft() == 0 && len(g.sim.LiveBalls()) == 0 && g.sim.Pending() == 0 {
		g.gameOver = true
	}

	return core.StepResult{State: g.State(), Exits: len(events)}
}

// ballsLeft returns the remaining launch budget, or -1 in endless mode.
func (g *Game) ballsLeft() int {
	budget := g.cfg.Gameplay.BallsPerSession
	if budget <= 0 {
		return -1
	}
	return core.Max(budget-g.launched, 0)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.sim != nil {
		score = g.sim.Score()
	}
	return core.GameState{
		Score:    score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Layout returns the name of the board layout in use.
func (g *Game) Layout() string {
	return g.layout
}

// Report summarizes the session for the scores database.
func (g *Game) Report() registry.Report {
	r := registry.Report{
		Layout:   g.layout,
		Seed:     g.runtime.Seed,
		Launched: g.launched,
	}
	if g.sim != nil {
		r.Exits = g.sim.Session().Exits
	}
	return r
}

// Err returns the error that stopped the board from being built, if any.
func (g *Game) Err() error {
	if g.err == nil {
		return nil
	}
	return fmt.Errorf("pachinko: %w", g.err)
}

// Register the games with the registry
func init() {
	registry.Register("pachinko", func() registry.Game {
		return New()
	})
	registry.Register("pachinko_classic", func() registry.Game {
		return NewClassic()
	})
}
