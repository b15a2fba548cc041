// Package registry maps game mode IDs to factories. Modes register
// themselves from init so the CLI and menus can list them without
// importing each one by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Game is what the terminal layer drives. Implementations hold pure logic:
// the platform owns timing, key mapping and output.
type Game interface {
	// ID is the mode identifier used on the command line and in the
	// score table, e.g. "blockfall".
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh game for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick with the actions collected since the
	// previous tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame. dst is cleared beforehand.
	Render(dst *core.Screen)

	State() core.GameState
}

// BestScoreReceiver is implemented by games that show the stored best
// score in their HUD.
type BestScoreReceiver interface {
	SetBestScore(score int)
}

// Resizer is implemented by games that can adapt to a new terminal size
// without restarting.
type Resizer interface {
	Resize(width, height int)
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a factory. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered modes sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(factories))
	for id := range factories {
		out = append(out, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Create instantiates the mode registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
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
