package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/ZiedYousfi/candidengine/engine/assets"
	"github.com/ZiedYousfi/candidengine/engine/core"
	"github.com/ZiedYousfi/candidengine/engine/platform"
	"github.com/ZiedYousfi/candidengine/engine/renderer"
	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Engine owns the platform window, the renderer and the asset manager,
// and drives the game loop.
type Engine struct {
	currentStage Stage
	gameInstance *Game
	config       *core.Config
	isRunning    bool
	isSuspended  bool

	platform     *platform.Platform
	renderer     *renderer.Renderer
	assetManager *assets.Manager
}

func New(g *Game) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("game instance is required: %w", metadata.ErrInvalidArgument)
	}
	cfg := g.Config
	if cfg == nil {
		cfg = core.DefaultConfig()
		g.Config = cfg
	}
	core.SetLogLevel(cfg.LogLevel)

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		config:       cfg,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	p, err := platform.New()
	if err != nil {
		return err
	}
	e.platform = p
	if err := p.Startup(e.config.Name, 100, 100, e.config.Width, e.config.Height); err != nil {
		return err
	}

	am, err := assets.NewManager()
	if err != nil {
		return err
	}
	e.assetManager = am
	if _, err := os.Stat(e.config.AssetsDir); err == nil {
		if err := am.Watch(e.config.AssetsDir); err != nil {
			core.LogWarn("asset watch on %s failed: %s", e.config.AssetsDir, err.Error())
		}
	}

	r, err := renderer.New(&renderer.Config{
		AppName:      e.config.Name,
		Width:        e.config.Width,
		Height:       e.config.Height,
		Backend:      metadata.ParseBackendType(e.config.Backend),
		VSync:        e.config.VSync,
		DebugMode:    e.config.Debug,
		NativeWindow: p.Window,
	})
	if err != nil {
		return err
	}
	e.renderer = r

	p.SetResizeCallback(e.onResized)

	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives the frame loop until the window closes or Shutdown is
// called. Transient frame failures (a minimized window) skip the frame;
// fatal device errors end the loop.
func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.isRunning = true

	for e.isRunning && !e.platform.ShouldClose() {
		e.platform.PumpMessages()
		if e.isSuspended {
			continue
		}

		if err := e.renderer.BeginFrame(); err != nil {
			if metadata.IsFatal(err) {
				return fmt.Errorf("frame begin: %w", err)
			}
			if errors.Is(err, metadata.ErrResourceCreation) {
				// No drawable, typically minimized. Wait for a resize.
				continue
			}
			core.LogWarn("frame skipped: %s", err.Error())
			continue
		}

		delta := e.renderer.DeltaTime()
		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(e, delta); err != nil {
				return err
			}
		}
		if e.gameInstance.FnRender != nil {
			if err := e.gameInstance.FnRender(e, delta); err != nil {
				return err
			}
		}

		if err := e.renderer.EndFrame(); err != nil {
			if metadata.IsFatal(err) {
				return fmt.Errorf("frame end: %w", err)
			}
			core.LogWarn("frame end: %s", err.Error())
		}
		core.MetricsUpdate(delta)
	}
	return nil
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	if e.gameInstance != nil && e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(e); err != nil {
			core.LogError("game shutdown: %s", err.Error())
		}
	}
	if e.renderer != nil {
		e.renderer.Destroy()
		e.renderer = nil
	}
	if e.assetManager != nil {
		e.assetManager.Close()
		e.assetManager = nil
	}
	if e.platform != nil {
		if err := e.platform.Shutdown(); err != nil {
			return err
		}
		e.platform = nil
	}
	e.currentStage = EngineStageUninitialized
	return nil
}

// Renderer exposes the renderer to game callbacks.
func (e *Engine) Renderer() *renderer.Renderer { return e.renderer }

// Assets exposes the asset manager to game callbacks.
func (e *Engine) Assets() *assets.Manager { return e.assetManager }

func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.platform.FramebufferSize()
}

func (e *Engine) onResized(width, height uint32) {
	e.isSuspended = width == 0 || height == 0
	if err := e.renderer.Resize(width, height); err != nil {
		core.LogError("resize to %dx%d: %s", width, height, err.Error())
		return
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError("game resize handler: %s", err.Error())
		}
	}
}
