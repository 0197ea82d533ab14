package sim

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Snapshot is the dynamic state of a simulation at a tick boundary.
type Snapshot struct {
	Tick    uint64
	Score   int
	Exits   int
	Pending int
	NextID  BallID
	Balls   []BallState
}

// Snapshot captures the current state.
func (s *Simulation) Snapshot() Snapshot {
	s.mu.Lock()
	pending := len(s.pending)
	next := s.nextID
	s.mu.Unlock()

	return Snapshot{
		Tick:    s.ticks,
		Score:   s.session.Score,
		Exits:   s.session.Exits,
		Pending: pending,
		NextID:  next,
		Balls:   s.LiveBalls(),
	}
}

// Hash returns an xxhash digest of the snapshot for determinism checks.
// Floating point fields are hashed by their bit patterns.
func (snap *Snapshot) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	putFloat := func(f float64) { put(math.Float64bits(f)) }

	put(snap.Tick)
	put(uint64(snap.Score))   //#nosec G115 -- hash computation
	put(uint64(snap.Exits))   //#nosec G115 -- hash computation
	put(uint64(snap.Pending)) //#nosec G115 -- hash computation
	put(uint64(snap.NextID))
	put(uint64(len(snap.Balls)))

	for _, b := range snap.Balls {
		put(uint64(b.ID))
		put(b.Seq)
		putFloat(b.Position.X)
		putFloat(b.Position.Y)
		putFloat(b.Velocity.X)
		putFloat(b.Velocity.Y)
		putFloat(b.Radius)
		putFloat(b.Mass)
	}

	return d.Sum64()
}
