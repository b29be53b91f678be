// Package testbed is a sample application driving the renderer: a spinning
// cube and a ground plane lit by the builtin Blinn-Phong program.
package testbed

import (
	"github.com/ZiedYousfi/candidengine/engine"
	"github.com/ZiedYousfi/candidengine/engine/core"
	"github.com/ZiedYousfi/candidengine/engine/math"
	"github.com/ZiedYousfi/candidengine/engine/renderer"
	"github.com/ZiedYousfi/candidengine/engine/renderer/geometry"
	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	camera *renderer.Camera

	cube   *metadata.Mesh
	ground *metadata.Mesh
	shader *metadata.ShaderProgram

	angle float32
}

func NewTestGame() (*TestGame, error) {
	cfg := core.DefaultConfig()
	cfg.Name = "Candid Testbed"

	tg := &TestGame{
		Game: &engine.Game{
			Config: cfg,
			State:  &gameState{},
		},
	}
	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown
	return tg, nil
}

func (g *TestGame) Initialize(e *engine.Engine) error {
	state := g.State.(*gameState)
	r := e.Renderer()

	cubeData := geometry.Cube(1)
	cube, err := r.CreateMesh(&metadata.MeshDesc{
		Data:   cubeData,
		Bounds: geometry.CalculateAABB(&cubeData),
		Label:  "testbed-cube",
	})
	if err != nil {
		return err
	}
	state.cube = cube

	groundData := geometry.Plane(10, 10, 8, 8)
	ground, err := r.CreateMesh(&metadata.MeshDesc{
		Data:   groundData,
		Bounds: geometry.CalculateAABB(&groundData),
		Label:  "testbed-ground",
	})
	if err != nil {
		return err
	}
	state.ground = ground

	shader, err := r.BuiltinShader(metadata.BuiltinShaderBlinnPhong)
	if err != nil {
		return err
	}
	state.shader = shader

	state.camera = &renderer.Camera{
		Position: math.NewVec3(0, 2, 6),
		Target:   math.NewVec3(0, 0, 0),
		Up:       math.NewVec3(0, 1, 0),
		FovY:     math.Pi / 4,
		Near:     0.1,
		Far:      100,
	}
	r.SetClearColor(metadata.Color{R: 0.05, G: 0.05, B: 0.1, A: 1})
	return r.SetCamera(state.camera)
}

func (g *TestGame) Update(e *engine.Engine, deltaTime float64) error {
	state := g.State.(*gameState)
	state.angle += float32(deltaTime)
	if core.MetricsFPS() > 0 && e.Renderer().FrameCount()%300 == 0 {
		core.LogDebug("fps %.1f avg frame %.2fms", core.MetricsFPS(), core.MetricsFrameAvg())
	}
	return nil
}

func (g *TestGame) Render(e *engine.Engine, deltaTime float64) error {
	state := g.State.(*gameState)
	r := e.Renderer()

	if err := r.BindPipeline(state.shader, nil, nil, nil); err != nil {
		return err
	}

	spin := math.NewMat4RotationY(state.angle).Mul(math.NewMat4Translation(math.NewVec3(0, 0.5, 0)))
	if err := r.DrawMesh(state.cube, spin); err != nil {
		return err
	}
	return r.DrawMesh(state.ground, math.NewMat4Identity())
}

func (g *TestGame) OnResize(width, height uint32) error {
	core.LogDebug("testbed resized to %dx%d", width, height)
	return nil
}

func (g *TestGame) Shutdown(e *engine.Engine) error {
	state := g.State.(*gameState)
	r := e.Renderer()
	r.DestroyMesh(state.cube)
	r.DestroyMesh(state.ground)
	state.cube = nil
	state.ground = nil
	return nil
}
