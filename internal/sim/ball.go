package sim

import "github.com/vovakirdan/tui-pachinko/internal/physics"

// BallID identifies a ball. IDs start at 1 and are never reused by a Simulation.
type BallID uint64

// Ball is a live, gravity-affected body.
type Ball struct {
	ID      BallID
	Body    physics.Body
	Seq     uint64 // spawn order
	Retired bool
}

// BallState is a read-only copy of a ball.
type BallState struct {
	ID       BallID
	Position physics.Vec2
	Velocity physics.Vec2
	Radius   float64
	Mass     float64
	Seq      uint64
}

func (b *Ball) state() BallState {
	return BallState{
		ID:       b.ID,
		Position: b.Body.Pos,
		Velocity: b.Body.Vel,
		Radius:   b.Body.Radius,
		Mass:     b.Body.Mass,
		Seq:      b.Seq,
	}
}
