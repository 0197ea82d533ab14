// Package sim implements the peg-board simulation: a board of fixed obstacles,
// gravity-driven balls launched up the right lane, and a session score that grows
// by a fixed award each time a ball crosses the bottom boundary.
//
// A Simulation is driven by a single owner calling Tick. LaunchBall and Pending
// are safe to call from any goroutine; launches take effect at the next tick.
package sim

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/vovakirdan/tui-pachinko/internal/board"
	"github.com/vovakirdan/tui-pachinko/internal/physics"
)

// Rand is the source of launch jitter. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Simulation owns the board, the live balls and the session.
type Simulation struct {
	cfg Config
	rng Rand

	board  *board.Board
	bounds []physics.AABB // cached obstacle bounds, same order as board.Obstacles
	spawn  physics.Vec2

	balls   []*Ball
	session Session
	ticks   uint64
	seq     uint64

	// mu guards the fields below; they are touched by LaunchBall and Subscribe.
	mu          sync.Mutex
	initialized bool
	pending     []BallID
	live        int
	nextID      BallID
	subs        []subscription
	nextSub     int
}

// New creates an uninitialized simulation. A nil rng is replaced by a source
// seeded with 1.
func New(cfg Config, rng Rand) *Simulation {
	if rng == nil {
		rng = rand.New(rand.NewSource(1)) //#nosec G404 -- gameplay randomness
	}
	if cfg.Physics.MaxSubsteps < 1 {
		cfg.Physics.MaxSubsteps = 1
	}
	return &Simulation{
		cfg:     cfg,
		rng:     rng,
		session: Session{Award: cfg.Gameplay.Award},
	}
}

// Config returns the configuration the simulation was created with.
func (s *Simulation) Config() Config {
	return s.cfg
}

// Initialize builds the board for the given size and starts a fresh session.
// On error the simulation keeps its previous state.
func (s *Simulation) Initialize(width, height float64) error {
	if err := s.cfg.Validate(); err != nil {
		return fmt.Errorf("sim: initialize: %w", err)
	}
	b, err := board.Build(width, height, s.cfg.Layout)
	if err != nil {
		return fmt.Errorf("sim: initialize: %w", err)
	}

	l := s.cfg.Launch
	spawn := physics.V(width-l.SpawnInsetX, l.SpawnY)
	if l.Radius <= 0 || spawn.X-l.Radius < 0 || spawn.X+l.Radius > width || spawn.Y+l.Radius > height || b.Exited(spawn) {
		return fmt.Errorf("sim: initialize: spawn point %v outside %vx%v board: %w",
			spawn, width, height, ErrInvalidBoardDimensions)
	}

	s.board = b
	s.spawn = spawn
	s.bounds = make([]physics.AABB, len(b.Obstacles))
	for i, o := range b.Obstacles {
		s.bounds[i] = o.Bounds()
	}

	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()

	s.Reset()
	return nil
}

// Reset removes every ball, drops queued launches and zeroes the session.
// The board is kept.
func (s *Simulation) Reset() {
	s.mu.Lock()
	s.pending = nil
	s.live = 0
	s.mu.Unlock()

	s.balls = nil
	s.session.reset()
	s.ticks = 0
}

// LaunchBall queues a ball for the next tick and returns its id.
func (s *Simulation) LaunchBall() (BallID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return 0, fmt.Errorf("sim: launch: %w", ErrNotInitialized)
	}
	if limit := s.cfg.Gameplay.MaxLiveBalls; limit > 0 && s.live+len(s.pending) >= limit {
		return 0, fmt.Errorf("sim: launch: %d live, %d queued, limit %d: %w",
			s.live, len(s.pending), limit, ErrOverCapacity)
	}

	s.nextID++
	s.pending = append(s.pending, s.nextID)
	return s.nextID, nil
}

// Pending returns the number of launches waiting for the next tick.
func (s *Simulation) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Subscribe registers an observer for exit events and returns a function that
// removes it. Observers are called synchronously from Tick.
func (s *Simulation) Subscribe(o Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, obs: o})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Tick advances the simulation by dt seconds and returns the exit events it
// produced, in spawn order.
func (s *Simulation) Tick(dt float64) ([]ExitEvent, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("sim: tick %v: %w", dt, ErrInvalidTimeStep)
	}

	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return nil, fmt.Errorf("sim: tick: %w", ErrNotInitialized)
	}
	queued := s.pending
	s.pending = nil
	subs := append([]subscription(nil), s.subs...)
	s.mu.Unlock()

	for _, id := range queued {
		s.spawnBall(id)
	}

	n := s.substeps(dt)
	h := dt / float64(n)
	exited := false
	for range n {
		if s.step(h) {
			exited = true
		}
	}

	var events []ExitEvent
	if exited {
		kept := s.balls[:0]
		for _, b := range s.balls {
			if !b.Retired {
				kept = append(kept, b)
				continue
			}
			events = append(events, ExitEvent{
				Ball:     b.ID,
				Position: b.Body.Pos,
				Score:    s.session.record(),
			})
		}
		clear(s.balls[len(kept):])
		s.balls = kept
	}

	s.ticks++

	s.mu.Lock()
	s.live = len(s.balls)
	s.mu.Unlock()

	for _, e := range events {
		for _, sub := range subs {
			sub.obs.OnExit(e)
		}
	}

	return events, nil
}

func (s *Simulation) spawnBall(id BallID) {
	l := s.cfg.Launch
	vy := l.BaseVelocity
	if l.JitterVelocity > 0 {
		vy += s.rng.Float64() * l.JitterVelocity
	}

	s.seq++
	s.balls = append(s.balls, &Ball{
		ID:  id,
		Seq: s.seq,
		Body: physics.Body{
			Pos:    s.spawn,
			Vel:    physics.V(0, vy),
			Radius: l.Radius,
			Mass:   l.Mass,
		},
	})
}

// substeps picks a sub-step count so that no ball moves more than half its
// radius per sub-step.
func (s *Simulation) substeps(dt float64) int {
	g := s.cfg.Physics.Gravity.Len()
	worst := 0.0
	for _, b := range s.balls {
		if b.Body.Radius <= 0 {
			continue
		}
		travel := (b.Body.Vel.Len() + g*dt) * dt
		if ratio := travel / (b.Body.Radius * 0.5); ratio > worst {
			worst = ratio
		}
	}

	n := int(math.Ceil(worst))
	if n < 1 {
		n = 1
	}
	if n > s.cfg.Physics.MaxSubsteps {
		n = s.cfg.Physics.MaxSubsteps
	}
	return n
}

// step integrates every live ball by h and reports whether any ball exited.
func (s *Simulation) step(h float64) bool {
	g := s.cfg.Physics.Gravity
	exited := false

	for _, b := range s.balls {
		if b.Retired {
			continue
		}
		b.Body.Vel = b.Body.Vel.Add(g.Scale(h))
		b.Body.Pos = b.Body.Pos.Add(b.Body.Vel.Scale(h))
		s.collideStatic(b)
	}

	if s.cfg.Physics.BallCollisions {
		for i, a := range s.balls {
			if a.Retired {
				continue
			}
			for _, o := range s.balls[i+1:] {
				if !o.Retired {
					physics.ResolveCircles(&a.Body, &o.Body, s.cfg.Physics.BallRestitution)
				}
			}
		}
	}

	for _, b := range s.balls {
		if !b.Retired && s.board.Exited(b.Body.Pos) {
			b.Retired = true
			exited = true
		}
	}

	return exited
}

func (s *Simulation) collideStatic(b *Ball) {
	r := b.Body.Radius

	for i, o := range s.board.Obstacles {
		if !physics.CircleBounds(b.Body.Pos, r).Overlaps(s.bounds[i]) {
			continue
		}
		if c, ok := o.Collide(b.Body.Pos, r); ok {
			bounce(&b.Body, c, o.Restitution)
		}
	}

	for _, w := range s.board.Walls {
		if c, ok := physics.CircleSegment(b.Body.Pos, r, w); ok {
			bounce(&b.Body, c, s.board.WallRestitution)
		}
	}
}

func bounce(body *physics.Body, c physics.Contact, restitution float64) {
	body.Pos = body.Pos.Add(c.Normal.Scale(c.Depth))
	body.Vel = physics.Reflect(body.Vel, c.Normal, restitution)
}

// Score returns the current session score.
func (s *Simulation) Score() int {
	return s.session.Score
}

// Session returns a copy of the session state.
func (s *Simulation) Session() Session {
	return s.session
}

// TickCount returns the number of ticks since the last reset.
func (s *Simulation) TickCount() uint64 {
	return s.ticks
}

// LiveBalls returns copies of the live balls in spawn order.
func (s *Simulation) LiveBalls() []BallState {
	out := make([]BallState, 0, len(s.balls))
	for _, b := range s.balls {
		out = append(out, b.state())
	}
	return out
}

// Obstacles returns a copy of the static obstacles, or nil before Initialize.
func (s *Simulation) Obstacles() []board.Obstacle {
	if s.board == nil {
		return nil
	}
	return append([]board.Obstacle(nil), s.board.Obstacles...)
}

// Boundary returns a copy of the boundary polyline vertices.
func (s *Simulation) Boundary() []physics.Vec2 {
	if s.board == nil {
		return nil
	}
	return append([]physics.Vec2(nil), s.board.Vertices...)
}

// Bottom returns the exit segment.
func (s *Simulation) Bottom() physics.Segment {
	if s.board == nil {
		return physics.Segment{}
	}
	return s.board.Bottom
}

// Board returns the static board, or nil before Initialize. Callers must not
// modify it.
func (s *Simulation) Board() *board.Board {
	return s.board
}

// Spawn returns the launch point.
func (s *Simulation) Spawn() physics.Vec2 {
	return s.spawn
}
