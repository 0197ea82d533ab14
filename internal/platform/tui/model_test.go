package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pachinko/internal/core"
	"github.com/vovakirdan/tui-pachinko/internal/registry"
	"github.com/vovakirdan/tui-pachinko/internal/storage"
)

// stubGame ends after overAt steps with a fixed score.
type stubGame struct {
	overAt   int
	steps    int
	resets   int
	launches int
	lastSeed int64
}

func (g *stubGame) ID() string { return "tui_stub" }
func (g *stubGame) Title() string { return "Stub Board" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.launches = 0
	g.lastSeed = cfg.Seed
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	if in.Has(core.ActionLaunch) {
		g.launches++
	}
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "STUB")
}

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: 50, GameOver: g.overAt > 0 && g.steps >= g.overAt}
}

func (g *stubGame) Report() registry.Report {
	return registry.Report{Layout: "stub", Seed: g.lastSeed, Launched: g.launches, Exits: g.launches}
}

// resizableStub follows resizes without a reset.
type resizableStub struct {
	stubGame
	w, h int
}

func (g *resizableStub) Resize(w, h int) { g.w, g.h = w, h }

func init() {
	registry.Register("tui_stub", func() registry.Game { return &stubGame{overAt: 3} })
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 7}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, want GameModel", next)
	}
	return gm
}

func TestGameModelSavesResultOnce(t *testing.T) {
	store := openStore(t)
	game := &stubGame{overAt: 3}
	m := NewGameModel(game, store, testConfig())
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	for range 6 {
		m = update(t, m, TickMsg{})
	}

	if !m.State().GameOver {
		t.Fatal("game should be over")
	}

	scores, err := store.TopScores("tui_stub", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 50 {
		t.Errorf("scores = %+v, want one entry of 50", scores)
	}

	sessions, err := store.RecentSessions("tui_stub", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}
	if sessions[0].Layout != "stub" || sessions[0].Launched != 1 || sessions[0].Seed != 7 {
		t.Errorf("session = %+v", sessions[0])
	}
}

func TestGameModelRestartOnlyAfterGameOver(t *testing.T) {
	game := &stubGame{overAt: 2}
	m := NewGameModel(game, nil, testConfig())
	m.Init()

	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})
	if game.resets != 1 {
		t.Errorf("restart before game over reset the game (%d resets)", game.resets)
	}

	m = update(t, m, TickMsg{})
	if !m.State().GameOver {
		t.Fatal("game should be over")
	}

	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})
	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if m.State().GameOver {
		t.Error("restart should clear game over")
	}
	if game.lastSeed != 8 {
		t.Errorf("restart seed = %d, want 8 (seed 7 plus one restart)", game.lastSeed)
	}

	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey('r'))
	update(t, m, TickMsg{})
	if game.lastSeed != 9 {
		t.Errorf("second restart seed = %d, want 9", game.lastSeed)
	}
}

func TestGameModelBack(t *testing.T) {
	game := &stubGame{overAt: 1}
	m := NewGameModel(game, nil, testConfig())
	m.Init()

	m = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Error("back during play should be ignored")
	}

	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("back after game over should return to menu")
	}

	standalone := NewGameModel(&stubGame{overAt: 1}, nil, testConfig())
	standalone.quitOnBack = true
	standalone.Init()
	standalone = update(t, standalone, TickMsg{})
	standalone = update(t, standalone, runeKey('b'))
	if !standalone.IsQuitting() {
		t.Error("back in standalone play should quit")
	}
}

func TestGameModelResize(t *testing.T) {
	plain := &stubGame{}
	m := NewGameModel(plain, nil, testConfig())
	m.Init()
	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if plain.resets != 2 {
		t.Errorf("non-resizable game should be reset on resize, resets = %d", plain.resets)
	}

	rs := &resizableStub{}
	m = NewGameModel(rs, nil, testConfig())
	m.Init()
	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if rs.resets != 1 {
		t.Errorf("resizable game should not be reset, resets = %d", rs.resets)
	}
	if rs.w != 100 || rs.h != 30 {
		t.Errorf("Resize got %dx%d, want 100x30", rs.w, rs.h)
	}
}

func TestGameModelView(t *testing.T) {
	m := NewGameModel(&stubGame{}, nil, testConfig())
	m.Init()

	view := m.View()
	if !strings.Contains(view, "STUB") {
		t.Errorf("View() missing game output:\n%s", view)
	}
	if got := strings.Count(view, "\n"); got != 9 {
		t.Errorf("View() has %d line breaks, want 9", got)
	}

	m = update(t, m, runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit and blank the view")
	}
}

func TestSessionModelFlow(t *testing.T) {
	s := NewSessionModel(nil, testConfig(), "session-1")
	if s.ID() != "session-1" {
		t.Errorf("ID() = %q", s.ID())
	}

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T, want SessionModel", next)
		}
		s = sm
	}

	if !strings.Contains(s.View(), "Stub Board") {
		t.Errorf("menu should list registered games:\n%s", s.View())
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.view != viewScoreboard {
		t.Fatalf("tab should open the scoreboard, view = %v", s.view)
	}
	step(runeKey('b'))
	if s.view != viewMenu {
		t.Fatalf("b should return to the menu, view = %v", s.view)
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.view != viewGame {
		t.Fatalf("enter should start the game, view = %v", s.view)
	}
	if !strings.Contains(s.View(), "STUB") {
		t.Error("game view should render the game")
	}

	for range 3 {
		step(TickMsg{})
	}
	step(runeKey('b'))
	if s.view != viewMenu {
		t.Errorf("b after game over should return to the menu, view = %v", s.view)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.SetColored(4, 1, '*', core.ColorGray)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() gave %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") {
		t.Errorf("first line %q missing text", lines[0])
	}
	if !strings.Contains(lines[1], "*") {
		t.Errorf("second line %q missing star", lines[1])
	}

	for _, c := range core.Palette() {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
	}
}
