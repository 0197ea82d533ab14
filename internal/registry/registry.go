// Package registry maps game IDs to factories.
// Games register themselves in init() functions, so the platform can list and
// create them without importing each game by name.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-pachinko/internal/core"
)

// Game is the interface every game implements.
// Games hold pure logic with no Bubble Tea dependency. The platform handles
// input mapping, timing and rendering.
type Game interface {
	// ID returns a unique identifier used by CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or restarts the game for the given screen and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state. The screen is pre-cleared.
	Render(dst *core.Screen)

	// State returns score, game over and pause flags.
	State() core.GameState
}

// Resizable is implemented by games that can follow a terminal resize without
// restarting. Other games are Reset with the new size.
type Resizable interface {
	Resize(screenW, screenH int)
}

// Report summarizes a finished session for persistence.
type Report struct {
	Layout   string
	Seed     int64
	Launched int
	Exits    int
}

// Reporter is implemented by games that can describe a session beyond its score.
type Reporter interface {
	Report() Report
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("unknown game")

// Registry is a set of game factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	titles    map[string]string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		titles:    make(map[string]string),
	}
}

// Default is the registry games add themselves to.
var Default = New()

// Register adds a game factory.
// Panics if a game with the same ID is already registered.
func (r *Registry) Register(id string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	r.factories[id] = f
	r.titles[id] = f().Title()
}

// List returns all registered games sorted by ID.
func (r *Registry) List() []GameInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]GameInfo, 0, len(r.factories))
	for id := range r.factories {
		result = append(result, GameInfo{ID: id, Title: r.titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new game by its ID.
func (r *Registry) Create(id string) (Game, error) {
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: %q: %w", id, ErrUnknownGame)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[id]
	return ok
}

// Register adds a game factory to the default registry.
func Register(id string, f Factory) { Default.Register(id, f) }

// List returns the games in the default registry.
func List() []GameInfo { return Default.List() }

// Create instantiates a game from the default registry.
func Create(id string) (Game, error) { return Default.Create(id) }

// Exists checks the default registry.
func Exists(id string) bool { return Default.Exists(id) }
