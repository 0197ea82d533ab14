package pachinko

import (
	"fmt"

	"github.com/vovakirdan/tui-pachinko/internal/physics"
	"github.com/vovakirdan/tui-pachinko/internal/sim"
)

// IndicatorRise is how far a score indicator floats up over its lifetime, in
// world units.
const IndicatorRise = 100

// Indicator is a floating "+10" shown where a ball left the board.
type Indicator struct {
	Origin physics.Vec2
	Text   string
	Age    int
}

// onExit is subscribed to the simulation and adds an indicator per exit.
func (g *Game) onExit(e sim.ExitEvent) {
	origin := e.Position
	if origin.Y < 0 {
		origin.Y = 0
	}
	g.indicators = append(g.indicators, Indicator{
		Origin: origin,
		Text:   fmt.Sprintf("+%d", g.cfg.Gameplay.Award),
	})
}

// ageIndicators advances indicators and drops the expired ones.
func (g *Game) ageIndicators() {
	life := g.cfg.Gameplay.IndicatorTicks
	kept := g.indicators[:0]
	for _, ind := range g.indicators {
		ind.Age++
		if ind.Age < life {
			kept = append(kept, ind)
		}
	}
	g.indicators = kept
}

// position returns where the indicator is drawn after floating upward.
func (ind Indicator) position(life int) physics.Vec2 {
	if life <= 0 {
		return ind.Origin
	}
	p := ind.Origin
	p.Y += IndicatorRise * float64(ind.Age) / float64(life)
	return p
}

// Indicators returns a copy of the active indicators.
func (g *Game) Indicators() []Indicator {
	return append([]Indicator(nil), g.indicators...)
}
