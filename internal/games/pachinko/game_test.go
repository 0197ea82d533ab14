package pachinko

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pachinko/internal/core"
	"github.com/vovakirdan/tui-pachinko/internal/physics"
	"github.com/vovakirdan/tui-pachinko/internal/registry"
	"github.com/vovakirdan/tui-pachinko/internal/sim"
)

const maxTicks = 60 * 600

// testRuntime isolates the test from any user config and returns a fixed runtime.
func testRuntime(t *testing.T) core.RuntimeConfig {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

// useConfig points the game at a temporary config file for one test.
func useConfig(t *testing.T, yaml string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pachinko.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestGameDeterminism(t *testing.T) {
	cfg := testRuntime(t)

	run := func() (*Game, Snapshot) {
		g := New()
		g.Reset(cfg)
		for i := range 400 {
			if i%20 == 0 {
				g.Step(frame(core.ActionLaunch))
			} else {
				g.Step(frame())
			}
		}
		return g, g.Snapshot()
	}

	g1, snap1 := run()
	g2, snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if g1.State().Score != g2.State().Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", g1.State().Score, g2.State().Score)
	}
	if snap1.Launched != 20 {
		t.Errorf("Launched = %d, expected 20", snap1.Launched)
	}
}

func TestLaunchScoresAndShowsIndicator(t *testing.T) {
	g := New()
	g.Reset(testRuntime(t))

	result := g.Step(frame(core.ActionLaunch))
	exits := result.Exits
	for i := 0; i < maxTicks && g.State().Score == 0; i++ {
		exits += g.Step(frame()).Exits
	}

	if g.State().Score != 10 {
		t.Fatalf("Score = %d, expected 10", g.State().Score)
	}
	if exits != 1 {
		t.Errorf("Exits = %d, expected 1", exits)
	}

	inds := g.Indicators()
	if len(inds) != 1 || inds[0].Text != "+10" {
		t.Fatalf("Indicators = %+v, expected one +10", inds)
	}
	if inds[0].Origin.Y < 0 {
		t.Errorf("indicator origin should be clamped to the floor, got %v", inds[0].Origin)
	}

	for range 60 {
		g.Step(frame())
	}
	if len(g.Indicators()) != 0 {
		t.Errorf("indicator should expire after a second, still have %d", len(g.Indicators()))
	}
}

func TestSnapshotHashCoversIndicatorOrigin(t *testing.T) {
	base := Snapshot{
		Layout:     "chute",
		Indicators: []Indicator{{Origin: physics.V(100, 0), Text: "+10", Age: 3}},
	}
	moved := base
	moved.Indicators = []Indicator{{Origin: physics.V(140, 0), Text: "+10", Age: 3}}

	if base.Hash() == moved.Hash() {
		t.Error("indicators at different positions should hash differently")
	}
	if again := base; again.Hash() != base.Hash() {
		t.Error("Hash() should be stable for equal snapshots")
	}
}

func TestIndicatorFloatsUp(t *testing.T) {
	ind := Indicator{Age: 30}
	if p := ind.position(60); p.Y != IndicatorRise/2 {
		t.Errorf("position at half life = %v, expected %v", p.Y, IndicatorRise/2)
	}
	if p := ind.position(0); p.Y != 0 {
		t.Errorf("zero lifetime should not move, got %v", p.Y)
	}
}

func TestBallBudgetEndsSession(t *testing.T) {
	cfg := testRuntime(t)
	useConfig(t, "gameplay:\n  balls_per_session: 2\n")

	g := New()
	g.Reset(cfg)

	for range 3 {
		g.Step(frame(core.ActionLaunch))
	}
	if g.launched != 2 {
		t.Fatalf("launched = %d, expected budget of 2", g.launched)
	}

	for i := 0; i < maxTicks && !g.State().GameOver; i++ {
		g.Step(frame(core.ActionLaunch))
	}

	state := g.State()
	if !state.GameOver {
		t.Fatal("expected game over after the budget is spent")
	}
	if state.Score != 20 {
		t.Errorf("Score = %d, expected 20", state.Score)
	}

	snap := g.Snapshot()
	before := snap.Hash()
	g.Step(frame(core.ActionLaunch))
	if after := g.Snapshot(); after.Hash() != before {
		t.Error("game over should freeze the game")
	}

	rep := g.Report()
	if rep.Layout != "chute" || rep.Launched != 2 || rep.Exits != 2 || rep.Seed != cfg.Seed {
		t.Errorf("Report() = %+v", rep)
	}
}

func TestEndlessMode(t *testing.T) {
	cfg := testRuntime(t)
	useConfig(t, "gameplay:\n  balls_per_session: 0\n")

	g := New()
	g.Reset(cfg)
	for range 40 {
		g.Step(frame(core.ActionLaunch))
	}

	if g.launched != 40 {
		t.Errorf("launched = %d, expected 40", g.launched)
	}
	if g.ballsLeft() != -1 {
		t.Errorf("ballsLeft() = %d, expected -1", g.ballsLeft())
	}

	dst := core.NewScreen(80, 24)
	g.Render(dst)
	if !strings.Contains(dst.Row(0), "Balls: ∞") {
		t.Errorf("HUD should show endless budget, got %q", dst.Row(0))
	}
}

func TestLiveBallCap(t *testing.T) {
	cfg := testRuntime(t)
	useConfig(t, "gameplay:\n  max_live_balls: 1\n")

	g := New()
	g.Reset(cfg)
	g.Step(frame(core.ActionLaunch))
	g.Step(frame(core.ActionLaunch))

	if g.launched != 1 || g.refused != 1 {
		t.Errorf("launched=%d refused=%d, expected 1 and 1", g.launched, g.refused)
	}
}

func TestPause(t *testing.T) {
	g := New()
	g.Reset(testRuntime(t))
	g.Step(frame(core.ActionLaunch))

	result := g.Step(frame(core.ActionPause))
	if !result.State.Paused {
		t.Fatal("expected paused state")
	}

	ticks := g.sim.TickCount()
	for range 10 {
		g.Step(frame(core.ActionLaunch))
	}
	if g.sim.TickCount() != ticks {
		t.Error("paused game should not advance the simulation")
	}
	if g.launched != 1 {
		t.Error("paused game should not launch balls")
	}

	dst := core.NewScreen(80, 24)
	g.Render(dst)
	if !strings.Contains(dst.String(), "PAUSED") {
		t.Error("paused game should say so")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused || g.sim.TickCount() != ticks+1 {
		t.Error("second pause should resume")
	}
}

func TestRenderBoard(t *testing.T) {
	g := New()
	g.Reset(testRuntime(t))
	g.Step(frame(core.ActionLaunch))

	dst := core.NewScreen(80, 24)
	g.Render(dst)

	if !strings.Contains(dst.Row(0), "Score: 0") {
		t.Errorf("HUD missing score: %q", dst.Row(0))
	}
	if !strings.Contains(dst.Row(0), "Balls: 29/30") {
		t.Errorf("HUD missing budget: %q", dst.Row(0))
	}

	out := dst.String()
	if strings.Count(out, string(PinChar)) < 10 {
		t.Errorf("expected pins on screen:\n%s", out)
	}
	if !strings.ContainsRune(out, BallChar) {
		t.Errorf("expected a ball on screen:\n%s", out)
	}
	if !strings.ContainsRune(out, FenceChar) {
		t.Errorf("expected fences on screen:\n%s", out)
	}
	if !strings.ContainsRune(dst.Row(23), ExitChar) {
		t.Errorf("expected the exit line on the bottom row, got %q", dst.Row(23))
	}

	vp := viewport(dst, g.sim.Board())
	pin := g.sim.Obstacles()[0]
	x, y := vp.ToCell(pin.Center.X, pin.Center.Y)
	if c := dst.GetCell(x, y); c.Rune != PinChar || c.Color != core.ColorCyan {
		t.Errorf("pin cell = %+v", c)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	g.Reset(testRuntime(t))

	dst := core.NewScreen(20, 8)
	g.Render(dst)
	if !strings.Contains(dst.String(), "too small") {
		t.Errorf("expected size warning:\n%s", dst.String())
	}
}

func TestBoardError(t *testing.T) {
	cfg := testRuntime(t)
	useConfig(t, "board:\n  width: 100\n")

	g := New()
	g.Reset(cfg)

	if err := g.Err(); !errors.Is(err, sim.ErrInvalidBoardDimensions) {
		t.Fatalf("Err() = %v, expected invalid dimensions", err)
	}

	g.Step(frame(core.ActionLaunch))

	dst := core.NewScreen(80, 24)
	g.Render(dst)
	if !strings.Contains(dst.String(), "BOARD ERROR") {
		t.Errorf("expected error box:\n%s", dst.String())
	}
}

func TestInvalidConfigFallsBackToDefaults(t *testing.T) {
	cfg := testRuntime(t)
	useConfig(t, "gameplay:\n  award: -10\n")

	g := New()
	g.Reset(cfg)

	if g.Err() != nil {
		t.Fatalf("Err() = %v, expected a playable default board", g.Err())
	}
	if g.cfg.Gameplay.Award != 10 {
		t.Errorf("Award = %d, expected default 10", g.cfg.Gameplay.Award)
	}
}

func TestClassicMode(t *testing.T) {
	g := NewClassic()
	g.Reset(testRuntime(t))

	if g.ID() != "pachinko_classic" || g.Title() != "Pachinko (Classic)" {
		t.Errorf("unexpected identity %q / %q", g.ID(), g.Title())
	}
	if g.Layout() != "classic" {
		t.Errorf("Layout() = %q, expected classic", g.Layout())
	}
	if n := len(g.sim.Boundary()); n != 5 {
		t.Errorf("classic boundary has %d vertices, expected 5", n)
	}
}

func TestLayoutOverride(t *testing.T) {
	cfg := testRuntime(t)
	t.Cleanup(func() { SetLayout("") })

	SetLayout("classic")
	g := New()
	g.Reset(cfg)
	if g.Layout() != "classic" {
		t.Errorf("Layout() = %q, expected classic", g.Layout())
	}

	SetLayout("does-not-exist")
	g.Reset(cfg)
	if g.Layout() != "chute" {
		t.Errorf("unknown layout should fall back to chute, got %q", g.Layout())
	}
}

func TestBouncePreset(t *testing.T) {
	cfg := testRuntime(t)
	t.Cleanup(func() { SetBouncePreset("") })

	SetBouncePreset("soft")
	g := New()
	g.Reset(cfg)
	if r := g.sim.Obstacles()[0].Restitution; r != 0.6 {
		t.Errorf("pin restitution = %v, expected 0.6", r)
	}

	SetBouncePreset("bogus")
	g.Reset(cfg)
	if r := g.sim.Obstacles()[0].Restitution; r != 0.9 {
		t.Errorf("pin restitution = %v, expected layout default 0.9", r)
	}
}

func TestResizeKeepsSession(t *testing.T) {
	g := New()
	g.Reset(testRuntime(t))
	g.Step(frame(core.ActionLaunch))
	g.Step(frame())

	var _ registry.Resizable = g
	g.Resize(120, 40)

	if g.launched != 1 || g.sim.TickCount() != 2 {
		t.Error("resize should not restart the session")
	}

	dst := core.NewScreen(120, 40)
	g.Render(dst)
	if !strings.ContainsRune(dst.Row(39), ExitChar) {
		t.Error("board should fill the resized screen")
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"pachinko", "pachinko_classic"} {
		if !registry.Exists(id) {
			t.Errorf("%s not registered", id)
		}
		g, err := registry.Create(id)
		if err != nil || g.ID() != id {
			t.Errorf("Create(%q) = %v, %v", id, g, err)
		}
	}
}

func TestWallRune(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   rune
	}{
		{10, 0, '─'},
		{-10, 1, '─'},
		{0, -10, '│'},
		{1, 10, '│'},
		{5, -5, '╱'},
		{-5, 5, '╱'},
		{5, 5, '╲'},
	}
	for _, tc := range tests {
		if got := wallRune(tc.dx, tc.dy); got != tc.want {
			t.Errorf("wallRune(%d, %d) = %q, expected %q", tc.dx, tc.dy, got, tc.want)
		}
	}
}
