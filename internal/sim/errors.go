package sim

import (
	"errors"

	"github.com/vovakirdan/tui-pachinko/internal/board"
)

var (
	// ErrNotInitialized is returned by Tick and LaunchBall before Initialize.
	ErrNotInitialized = errors.New("simulation not initialized")

	// ErrOverCapacity is returned by LaunchBall when the live-ball cap is reached.
	ErrOverCapacity = errors.New("too many live balls")

	// ErrInvalidTimeStep is returned by Tick for a non-positive or non-finite dt.
	ErrInvalidTimeStep = errors.New("invalid time step")

	// ErrInvalidConfig is returned by Initialize for a configuration that would
	// break the session rules: a non-positive award, gravity that does not pull
	// down, or a restitution outside [0,1].
	ErrInvalidConfig = errors.New("invalid simulation config")

	// ErrInvalidBoardDimensions aliases the board error so callers need one import.
	ErrInvalidBoardDimensions = board.ErrInvalidBoardDimensions
)
