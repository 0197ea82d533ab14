// Package config provides YAML-based game configuration loading and
// bounce presets for the pachinko games.
package config

// PachinkoConfig contains all configuration for the pachinko games.
type PachinkoConfig struct {
	Physics  PachinkoPhysics  `yaml:"physics"`
	Launch   PachinkoLaunch   `yaml:"launch"`
	Gameplay PachinkoGameplay `yaml:"gameplay"`
	Board    PachinkoBoard    `yaml:"board"`
}

// PachinkoPhysics defines integrator parameters.
type PachinkoPhysics struct {
	Gravity        float64             `yaml:"gravity"` // downward, world units/s^2
	MaxSubsteps    int                 `yaml:"max_substeps"`
	BallCollisions bool                `yaml:"ball_collisions"`
	Restitution    PachinkoRestitution `yaml:"restitution"`
}

// PachinkoRestitution defines the bounce factor per body class.
// Zero pin, fence and wall values keep the layout's own restitution.
type PachinkoRestitution struct {
	Pin   float64 `yaml:"pin"`
	Fence float64 `yaml:"fence"`
	Wall  float64 `yaml:"wall"`
	Ball  float64 `yaml:"ball"`
}

// PachinkoLaunch defines where and how fast balls are launched.
type PachinkoLaunch struct {
	SpawnInsetX    float64 `yaml:"spawn_inset_x"`
	SpawnY         float64 `yaml:"spawn_y"`
	Radius         float64 `yaml:"radius"`
	Mass           float64 `yaml:"mass"`
	BaseVelocity   float64 `yaml:"base_velocity"`
	JitterVelocity float64 `yaml:"jitter_velocity"`
}

// PachinkoGameplay defines scoring and session rules.
type PachinkoGameplay struct {
	Award           int `yaml:"award"`
	BallsPerSession int `yaml:"balls_per_session"` // 0 = endless
	MaxLiveBalls    int `yaml:"max_live_balls"`    // 0 = unlimited
	IndicatorTicks  int `yaml:"indicator_ticks"`
}

// PachinkoBoard defines the world size and layout selection.
type PachinkoBoard struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Layout    string  `yaml:"layout"`
	LayoutDir string  `yaml:"layout_dir"`
}
