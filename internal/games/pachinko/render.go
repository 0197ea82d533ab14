package pachinko

import (
	"fmt"

	"github.com/vovakirdan/tui-pachinko/internal/board"
	"github.com/vovakirdan/tui-pachinko/internal/core"
)

// Visual characters for rendering
const (
	BallChar  = '●'
	PinChar   = '•'
	FenceChar = '┃'
	ExitChar  = '┄'
	SpawnChar = '▲'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorRed)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH), core.ColorGray)
		return
	}

	if g.err != nil || g.sim == nil {
		msg := "Board not initialized"
		if g.err != nil {
			msg = g.err.Error()
		}
		g.drawCenteredMessage(dst, "BOARD ERROR", msg)
		return
	}

	b := g.sim.Board()
	vp := viewport(dst, b)

	g.drawBoard(dst, vp, b)

	sx, sy := vp.ToCell(g.sim.Spawn().X, g.sim.Spawn().Y)
	dst.SetColored(sx, sy, SpawnChar, core.ColorGreen)

	for _, ball := range g.sim.LiveBalls() {
		x, y := vp.ToCell(ball.Position.X, ball.Position.Y)
		dst.SetColored(x, y, BallChar, core.ColorBrightYellow)
	}

	for _, ind := range g.indicators {
		p := ind.position(g.cfg.Gameplay.IndicatorTicks)
		x, y := vp.ToCell(p.X, p.Y)
		w := len([]rune(ind.Text))
		x = core.Clamp(x-w/2, 0, dst.Width()-w)
		dst.DrawTextColored(x, y, ind.Text, core.ColorBrightGreen)
	}

	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.State().Score))
	}
}

// drawBoard draws the exit line, walls and obstacles.
func (g *Game) drawBoard(dst *core.Screen, vp core.Viewport, b *board.Board) {
	x0, y0 := vp.ToCell(b.Bottom.A.X, b.Bottom.A.Y)
	x1, _ := vp.ToCell(b.Bottom.B.X, b.Bottom.B.Y)
	dst.DrawLine(x0, y0, x1, y0, ExitChar, core.ColorRed)

	for _, w := range b.Walls {
		ax, ay := vp.ToCell(w.A.X, w.A.Y)
		bx, by := vp.ToCell(w.B.X, w.B.Y)
		dst.DrawLine(ax, ay, bx, by, wallRune(bx-ax, by-ay), core.ColorGray)
	}

	for _, o := range b.Obstacles {
		switch o.Kind {
		case board.KindPin:
			x, y := vp.ToCell(o.Center.X, o.Center.Y)
			dst.SetColored(x, y, PinChar, core.ColorCyan)
		case board.KindFence:
			bounds := o.Bounds()
			x, top := vp.ToCell(o.Center.X, bounds.Max.Y)
			_, bottom := vp.ToCell(o.Center.X, bounds.Min.Y)
			dst.DrawLine(x, top, x, bottom, FenceChar, core.ColorOrange)
		}
	}
}

// wallRune picks a line glyph for a wall running dx, dy cells on screen.
func wallRune(dx, dy int) rune {
	ax, ay := core.Abs(dx), core.Abs(dy)
	switch {
	case ay*2 <= ax:
		return '─'
	case ax*2 <= ay:
		return '│'
	case (dx > 0) == (dy < 0):
		return '╱'
	default:
		return '╲'
	}
}

// drawHUD draws the score line on the top row.
func (g *Game) drawHUD(dst *core.Screen) {
	balls := "∞"
	if left := g.ballsLeft(); left >= 0 {
		balls = fmt.Sprintf("%d/%d", left, g.cfg.Gameplay.BallsPerSession)
	}

	hud := fmt.Sprintf(" Score: %d  Balls: %s  Live: %d ", g.State().Score, balls, len(g.sim.LiveBalls()))
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)

	if help := "[Space] launch [P] pause "; len(hud)+len(help) <= dst.Width() {
		dst.DrawTextColored(dst.Width()-len(help), 0, help, core.ColorGray)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Min(core.Max(len([]rune(title)), len([]rune(subtitle)))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightWhite)
	dst.DrawTextColored(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle, core.ColorDefault)
}

// viewport maps the world onto every row below the HUD.
func viewport(dst *core.Screen, b *board.Board) core.Viewport {
	return core.Viewport{
		WorldW: b.Width,
		WorldH: b.Height,
		Area:   core.NewRect(0, 1, dst.Width(), dst.Height()-1),
	}
}
