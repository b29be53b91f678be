package engine

import (
	"github.com/ZiedYousfi/candidengine/engine/core"
)

// Game wires an application into the engine loop. Callbacks may be nil
// and are skipped when unset.
type Game struct {
	Config       *core.Config
	State        interface{}
	FnInitialize Initialize
	FnUpdate     Update
	FnRender     Render
	FnOnResize   OnResize
	FnShutdown   Shutdown
}

type Initialize func(e *Engine) error
type Update func(e *Engine, deltaTime float64) error
type Render func(e *Engine, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func(e *Engine) error
