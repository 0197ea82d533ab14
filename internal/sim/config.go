package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-pachinko/internal/board"
	"github.com/vovakirdan/tui-pachinko/internal/physics"
)

// PhysicsConfig controls the integrator.
type PhysicsConfig struct {
	Gravity         physics.Vec2
	MaxSubsteps     int
	BallRestitution float64
	BallCollisions  bool
}

// LaunchConfig controls where and how fast balls enter the board.
type LaunchConfig struct {
	// Spawn point is (width - SpawnInsetX, SpawnY).
	SpawnInsetX    float64
	SpawnY         float64
	Radius         float64
	Mass           float64
	BaseVelocity   float64
	JitterVelocity float64
}

// GameplayConfig controls scoring and capacity.
type GameplayConfig struct {
	Award        int
	MaxLiveBalls int // 0 = unlimited
}

// Config is the complete simulation configuration.
type Config struct {
	Physics  PhysicsConfig
	Launch   LaunchConfig
	Gameplay GameplayConfig
	Layout   board.Layout
}

// DefaultConfig returns the stock chute board with no live-ball cap.
func DefaultConfig() Config {
	return Config{
		Physics: PhysicsConfig{
			Gravity:         physics.V(0, -980),
			MaxSubsteps:     64,
			BallRestitution: 0.9,
		},
		Launch: LaunchConfig{
			SpawnInsetX:    35,
			SpawnY:         40,
			Radius:         30,
			Mass:           1,
			BaseVelocity:   3000,
			JitterVelocity: 600,
		},
		Gameplay: GameplayConfig{
			Award: 10,
		},
		Layout: board.ChuteLayout(),
	}
}

// Validate checks the values the session invariants depend on.
func (c Config) Validate() error {
	switch {
	case c.Gameplay.Award <= 0:
		return fmt.Errorf("award %d must be positive: %w", c.Gameplay.Award, ErrInvalidConfig)
	case c.Gameplay.MaxLiveBalls < 0:
		return fmt.Errorf("max live balls %d is negative: %w", c.Gameplay.MaxLiveBalls, ErrInvalidConfig)
	case !(c.Physics.Gravity.Y < 0) || math.IsInf(c.Physics.Gravity.Y, 0) || math.IsNaN(c.Physics.Gravity.X):
		return fmt.Errorf("gravity %v must point down: %w", c.Physics.Gravity, ErrInvalidConfig)
	case !(c.Launch.Mass > 0):
		return fmt.Errorf("ball mass %v must be positive: %w", c.Launch.Mass, ErrInvalidConfig)
	}

	r := c.Layout.Restitution
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"pin", r.Pin},
		{"fence", r.Fence},
		{"wall", r.Wall},
		{"ball", c.Physics.BallRestitution},
	} {
		if !(v.value >= 0 && v.value <= 1) {
			return fmt.Errorf("%s restitution %v outside [0,1]: %w", v.name, v.value, ErrInvalidConfig)
		}
	}
	return nil
}
