package pachinko

import (
	"github.com/vovakirdan/tui-pachinko/internal/board"
	"github.com/vovakirdan/tui-pachinko/internal/config"
	"github.com/vovakirdan/tui-pachinko/internal/physics"
	"github.com/vovakirdan/tui-pachinko/internal/sim"
)

// SimConfig builds a simulation configuration from the game config and a layout.
// Non-zero restitution values in the config replace the layout's.
func SimConfig(cfg config.PachinkoConfig, layout board.Layout) sim.Config {
	r := cfg.Physics.Restitution
	if r.Pin > 0 {
		layout.Restitution.Pin = r.Pin
	}
	if r.Fence > 0 {
		layout.Restitution.Fence = r.Fence
	}
	if r.Wall > 0 {
		layout.Restitution.Wall = r.Wall
	}

	return sim.Config{
		Physics: sim.PhysicsConfig{
			Gravity:         physics.V(0, -cfg.Physics.Gravity),
			MaxSubsteps:     cfg.Physics.MaxSubsteps,
			BallRestitution: r.Ball,
			BallCollisions:  cfg.Physics.BallCollisions,
		},
		Launch: sim.LaunchConfig{
			SpawnInsetX:    cfg.Launch.SpawnInsetX,
			SpawnY:         cfg.Launch.SpawnY,
			Radius:         cfg.Launch.Radius,
			Mass:           cfg.Launch.Mass,
			BaseVelocity:   cfg.Launch.BaseVelocity,
			JitterVelocity: cfg.Launch.JitterVelocity,
		},
		Gameplay: sim.GameplayConfig{
			Award:        cfg.Gameplay.Award,
			MaxLiveBalls: cfg.Gameplay.MaxLiveBalls,
		},
		Layout: layout,
	}
}
