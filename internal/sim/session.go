package sim

import "github.com/vovakirdan/tui-pachinko/internal/physics"

// ExitEvent describes a ball crossing the bottom boundary.
type ExitEvent struct {
	Ball     BallID
	Position physics.Vec2
	Score    int
}

// Observer receives exit events in the order they are produced.
type Observer interface {
	OnExit(ExitEvent)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ExitEvent)

// OnExit calls f(e).
func (f ObserverFunc) OnExit(e ExitEvent) { f(e) }

// Session is the running score of one play session.
type Session struct {
	Score int
	Exits int
	Award int
}

// record credits one exit and returns the new score.
func (s *Session) record() int {
	s.Exits++
	s.Score += s.Award
	return s.Score
}

// reset zeroes the score and exit count but keeps the award.
func (s *Session) reset() {
	s.Score = 0
	s.Exits = 0
}

type subscription struct {
	id  int
	obs Observer
}
