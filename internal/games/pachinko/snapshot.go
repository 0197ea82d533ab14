package pachinko

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/tui-pachinko/internal/sim"
)

// Snapshot contains the game state for replay checks and determinism tests.
type Snapshot struct {
	Sim        sim.Snapshot
	Layout     string
	Launched   int
	Refused    int
	Tick       int
	Paused     bool
	GameOver   bool
	Indicators []Indicator
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Layout:     g.layout,
		Launched:   g.launched,
		Refused:    g.refused,
		Tick:       g.tickCount,
		Paused:     g.paused,
		GameOver:   g.gameOver,
		Indicators: g.Indicators(),
	}
	if g.sim != nil {
		snap.Sim = g.sim.Snapshot()
	}
	return snap
}

// Hash returns an xxhash digest of the snapshot for determinism testing.
func (snap Snapshot) Hash() uint64 {
	buf := make([]byte, 0, 64+len(snap.Layout)+32*len(snap.Indicators))
	buf = binary.LittleEndian.AppendUint64(buf, snap.Sim.Hash())
	buf = append(buf, snap.Layout...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(snap.Launched)) //#nosec G115 -- hash computation
	buf = binary.LittleEndian.AppendUint64(buf, uint64(snap.Refused))  //#nosec G115 -- hash computation
	buf = binary.LittleEndian.AppendUint64(buf, uint64(snap.Tick))     //#nosec G115 -- hash computation
	buf = append(buf, boolByte(snap.Paused), boolByte(snap.GameOver))
	for _, ind := range snap.Indicators {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(ind.Origin.X))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(ind.Origin.Y))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(ind.Age)) //#nosec G115 -- hash computation
		buf = append(buf, ind.Text...)
	}
	return xxhash.Sum64(buf)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
