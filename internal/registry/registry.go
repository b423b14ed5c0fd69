// Package registry maps layout IDs to constructors. Each One Drop layout
// registers itself from init, and the CLI, menu and SSH sessions resolve an
// ID here without importing the layouts directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/one-drop/internal/core"
)

// Game is one playable layout. Every registered ID yields a fresh value
// with its own world, so two sessions on the same ID share nothing.
//
// The platform owns the clock and the terminal: it calls Reset once, then
// Step and Render once per tick. Implementations never block and never
// touch Bubble Tea.
type Game interface {
	// ID is the layout ID the factory was registered under. The run
	// history is keyed by it.
	ID() string

	// Title is shown in the menu and the history view.
	Title() string

	// Reset builds the first run from the screen size, tick rate and
	// seed. In-session restarts arrive as ActionRestart through Step.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions pressed since the last one.
	// StepResult.Restarted is set on the tick a restart happened.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen sized to the terminal.
	Render(dst *core.Screen)

	// State reports the timer, status line and outcome without stepping.
	State() core.GameState
}

// GameInfo names a registered layout.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a layout in its pre-Reset state.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register binds id to a factory. The title is read from one throwaway
// instance. Registering an ID twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: layout %q already registered", id))
	}

	factories[id] = f

	g := f()
	titles[id] = g.Title()
}

// List returns every registered layout, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create returns a new, independent instance of the layout id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown layout %q", id)
	}

	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
