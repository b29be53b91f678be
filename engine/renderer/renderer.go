package renderer

import (
	"fmt"

	"github.com/ZiedYousfi/candidengine/engine/core"
	"github.com/ZiedYousfi/candidengine/engine/math"
	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

// Config selects the backend and describes the output surface.
// NativeWindow/NativeSurface come from the platform layer and are passed
// to the backend untouched.
type Config struct {
	AppName       string
	Width         uint32
	Height        uint32
	Backend       metadata.BackendType
	VSync         bool
	DebugMode     bool
	NativeWindow  interface{}
	NativeSurface interface{}
}

// Renderer is the frontend every caller talks to. It owns one device on
// one backend, forwards resource and command operations to it, and keeps
// the per-frame state (clock, clear color, camera matrices, open command
// buffer). A Renderer is single-threaded by contract.
type Renderer struct {
	backend Backend
	device  *metadata.Device

	width  uint32
	height uint32

	clearColor metadata.Color
	view       math.Mat4
	projection math.Mat4

	clock      *core.Clock
	lastTime   float64
	deltaTime  float64
	frameCount uint64

	// cmd is the command buffer between BeginFrame and EndFrame, nil
	// outside a frame.
	cmd *metadata.CommandBuffer

	builtins       [metadata.BuiltinShaderCount]*metadata.ShaderProgram
	builtinModules []*metadata.ShaderModule
}

// New resolves the requested backend and creates a device on it. A
// BackendAuto config picks the platform-preferred registered backend.
// The config's backend being unregistered is ErrBackendNotSupported;
// device creation failures come back from the backend verbatim.
func New(config *Config) (*Renderer, error) {
	if config == nil {
		return nil, metadata.ErrInvalidArgument
	}
	b := Get(config.Backend)
	if b == nil {
		return nil, fmt.Errorf("no backend registered for %q: %w", config.Backend, metadata.ErrBackendNotSupported)
	}
	device, err := b.DeviceCreate(&metadata.DeviceDesc{
		PreferredBackend: b.Type(),
		NativeWindow:     config.NativeWindow,
		NativeSurface:    config.NativeSurface,
		Width:            config.Width,
		Height:           config.Height,
		VSync:            config.VSync,
		DebugMode:        config.DebugMode,
		AppName:          config.AppName,
	})
	if err != nil {
		return nil, err
	}
	core.LogInfo("renderer initialized on %s at %dx%d", b.Name(), config.Width, config.Height)
	r := &Renderer{
		backend:    b,
		device:     device,
		width:      config.Width,
		height:     config.Height,
		clearColor: metadata.Color{R: 0.2, G: 0.2, B: 0.2, A: 1.0},
		view:       math.NewMat4Identity(),
		projection: math.NewMat4Identity(),
		clock:      core.NewClock(),
	}
	r.clock.Start()
	return r, nil
}

// Destroy tears down the device. It does not sweep leaked resources;
// the caller owns destruction of everything it created. Safe to call
// more than once.
func (r *Renderer) Destroy() {
	if r == nil || r.device == nil {
		return
	}
	for i, p := range r.builtins {
		if p != nil {
			r.backend.ShaderProgramDestroy(r.device, p)
			r.builtins[i] = nil
		}
	}
	for _, m := range r.builtinModules {
		r.backend.ShaderModuleDestroy(r.device, m)
	}
	r.builtinModules = nil
	r.backend.DeviceDestroy(r.device)
	r.device = nil
	r.clock.Stop()
}

// BackendType reports which backend the renderer runs on.
func (r *Renderer) BackendType() metadata.BackendType {
	return r.backend.Type()
}

// Device exposes the underlying device handle for backend interop.
// Callers must not destroy it; Destroy owns that.
func (r *Renderer) Device() *metadata.Device {
	return r.device
}

// Limits returns the device capability report.
func (r *Renderer) Limits() metadata.DeviceLimits {
	return r.backend.DeviceLimits(r.device)
}

// Resize propagates a new swapchain extent. Zero dimensions are
// accepted (a minimized window); frames will fail to acquire a drawable
// until a non-zero resize arrives.
func (r *Renderer) Resize(width, height uint32) error {
	if err := r.backend.SwapchainResize(r.device, width, height); err != nil {
		return err
	}
	r.width = width
	r.height = height
	return nil
}

// SetClearColor sets the clear color for following frames.
func (r *Renderer) SetClearColor(c metadata.Color) {
	r.clearColor = c
}

// BeginFrame advances the clock, opens a command buffer and begins the
// swapchain render pass with the current clear color.
func (r *Renderer) BeginFrame() error {
	if r.cmd != nil {
		return metadata.ErrInvalidArgument
	}
	r.clock.Update()
	now := r.clock.Elapsed()
	r.deltaTime = now - r.lastTime
	r.lastTime = now

	cmd, err := r.backend.CmdBegin(r.device)
	if err != nil {
		return err
	}
	if err := r.backend.CmdBeginRenderPass(cmd, &r.clearColor); err != nil {
		r.backend.CmdEnd(cmd)
		return err
	}
	r.cmd = cmd
	return nil
}

// EndFrame closes and submits the frame's command buffer and presents.
// The frame counter advances whether or not submission succeeded, so
// FrameCount counts attempts, not successes.
func (r *Renderer) EndFrame() error {
	if r.cmd == nil {
		return metadata.ErrInvalidArgument
	}
	cmd := r.cmd
	r.cmd = nil
	r.frameCount++

	if err := r.backend.CmdEnd(cmd); err != nil {
		return err
	}
	if err := r.backend.CmdSubmit(cmd); err != nil {
		return err
	}
	return r.backend.SwapchainPresent(r.device)
}

// Time returns seconds since the renderer was created.
func (r *Renderer) Time() float64 { return r.lastTime }

// DeltaTime returns the seconds between the last two BeginFrame calls.
func (r *Renderer) DeltaTime() float64 { return r.deltaTime }

// FrameCount returns the number of frames ended so far.
func (r *Renderer) FrameCount() uint64 { return r.frameCount }

// SetViewport sets the viewport on the open command buffer.
func (r *Renderer) SetViewport(x, y, width, height float32) error {
	if r.cmd == nil {
		return metadata.ErrInvalidArgument
	}
	r.backend.CmdSetViewport(r.cmd, x, y, width, height)
	return nil
}

// SetScissor sets the scissor rectangle on the open command buffer.
func (r *Renderer) SetScissor(x, y, width, height uint32) error {
	if r.cmd == nil {
		return metadata.ErrInvalidArgument
	}
	r.backend.CmdSetScissor(r.cmd, x, y, width, height)
	return nil
}

// BindPipeline binds a shader program with optional fixed-function
// overrides. A nil program selects the backend's default pipeline.
func (r *Renderer) BindPipeline(program *metadata.ShaderProgram, raster *metadata.RasterizerState, depthStencil *metadata.DepthStencilState, blend *metadata.BlendState) error {
	if r.cmd == nil {
		return metadata.ErrInvalidArgument
	}
	return r.backend.CmdBindPipeline(r.cmd, program, raster, depthStencil, blend)
}

// BindUniformBuffer binds a uniform buffer for the given stages on the
// open command buffer.
func (r *Renderer) BindUniformBuffer(slot uint32, buffer *metadata.Buffer, stages metadata.ShaderStage) error {
	if r.cmd == nil || buffer == nil {
		return metadata.ErrInvalidArgument
	}
	return r.backend.CmdBindUniformBuffer(r.cmd, slot, buffer, stages)
}

// BindTexture binds a texture/sampler pair on the open command buffer.
func (r *Renderer) BindTexture(slot uint32, texture *metadata.Texture, sampler *metadata.Sampler) error {
	if r.cmd == nil || texture == nil {
		return metadata.ErrInvalidArgument
	}
	return r.backend.CmdBindTexture(r.cmd, slot, texture, sampler)
}

// DrawMesh draws all submeshes of a mesh with the given model transform.
// The combined model-view-projection matrix goes to the vertex stage as
// push constants.
func (r *Renderer) DrawMesh(mesh *metadata.Mesh, model math.Mat4) error {
	return r.DrawMeshInstanced(mesh, model, 1)
}

// DrawSubmesh draws one submesh of a mesh.
func (r *Renderer) DrawSubmesh(mesh *metadata.Mesh, submesh int, model math.Mat4) error {
	if r.cmd == nil || mesh == nil {
		return metadata.ErrInvalidArgument
	}
	if err := r.pushTransform(model); err != nil {
		return err
	}
	return r.backend.CmdDrawMesh(r.cmd, mesh, submesh, 1)
}

// DrawMeshInstanced draws a mesh instanceCount times.
func (r *Renderer) DrawMeshInstanced(mesh *metadata.Mesh, model math.Mat4, instanceCount uint32) error {
	if r.cmd == nil || mesh == nil {
		return metadata.ErrInvalidArgument
	}
	if err := r.pushTransform(model); err != nil {
		return err
	}
	return r.backend.CmdDrawMesh(r.cmd, mesh, -1, instanceCount)
}

func (r *Renderer) pushTransform(model math.Mat4) error {
	mvp := r.ViewProjection().Mul(model)
	return r.backend.CmdPushConstants(r.cmd, metadata.ShaderStageVertex, 0, mvp.Bytes())
}

// Dispatch records a compute dispatch on the open command buffer.
func (r *Renderer) Dispatch(groupsX, groupsY, groupsZ uint32) error {
	if r.cmd == nil {
		return metadata.ErrInvalidArgument
	}
	return r.backend.CmdDispatch(r.cmd, groupsX, groupsY, groupsZ)
}

// CreateBuffer creates a GPU buffer.
func (r *Renderer) CreateBuffer(desc *metadata.BufferDesc) (*metadata.Buffer, error) {
	if desc == nil {
		return nil, metadata.ErrInvalidArgument
	}
	return r.backend.BufferCreate(r.device, desc)
}

// DestroyBuffer releases a buffer. Nil is a no-op.
func (r *Renderer) DestroyBuffer(buffer *metadata.Buffer) {
	if buffer == nil {
		return
	}
	r.backend.BufferDestroy(r.device, buffer)
}

// UpdateBuffer writes data into a CPU-visible buffer at offset.
func (r *Renderer) UpdateBuffer(buffer *metadata.Buffer, offset uint64, data []byte) error {
	if buffer == nil {
		return metadata.ErrInvalidArgument
	}
	return r.backend.BufferUpdate(r.device, buffer, offset, data)
}

// MapBuffer maps a CPU-visible buffer and returns its backing bytes.
func (r *Renderer) MapBuffer(buffer *metadata.Buffer) ([]byte, error) {
	if buffer == nil {
		return nil, metadata.ErrInvalidArgument
	}
	return r.backend.BufferMap(r.device, buffer)
}

// UnmapBuffer unmaps a previously mapped buffer. Nil is a no-op.
func (r *Renderer) UnmapBuffer(buffer *metadata.Buffer) {
	if buffer == nil {
		return
	}
	r.backend.BufferUnmap(r.device, buffer)
}

// CreateTexture creates a texture.
func (r *Renderer) CreateTexture(desc *metadata.TextureDesc) (*metadata.Texture, error) {
	if desc == nil {
		return nil, metadata.ErrInvalidArgument
	}
	return r.backend.TextureCreate(r.device, desc)
}

// DestroyTexture releases a texture. Nil is a no-op.
func (r *Renderer) DestroyTexture(texture *metadata.Texture) {
	if texture == nil {
		return
	}
	r.backend.TextureDestroy(r.device, texture)
}

// UploadTexture uploads tightly packed pixel data into one mip level of
// one array layer.
func (r *Renderer) UploadTexture(texture *metadata.Texture, mipLevel, arrayLayer uint32, data []byte) error {
	if texture == nil {
		return metadata.ErrInvalidArgument
	}
	return r.backend.TextureUpload(r.device, texture, mipLevel, arrayLayer, data)
}

// CreateSampler creates a sampler.
func (r *Renderer) CreateSampler(desc *metadata.SamplerDesc) (*metadata.Sampler, error) {
	if desc == nil {
		return nil, metadata.ErrInvalidArgument
	}
	return r.backend.SamplerCreate(r.device, desc)
}

// DestroySampler releases a sampler. Nil is a no-op.
func (r *Renderer) DestroySampler(sampler *metadata.Sampler) {
	if sampler == nil {
		return
	}
	r.backend.SamplerDestroy(r.device, sampler)
}

// CreateShaderModule compiles one shader stage.
func (r *Renderer) CreateShaderModule(desc *metadata.ShaderModuleDesc) (*metadata.ShaderModule, error) {
	if desc == nil {
		return nil, metadata.ErrInvalidArgument
	}
	return r.backend.ShaderModuleCreate(r.device, desc)
}

// DestroyShaderModule releases a shader module. Nil is a no-op.
func (r *Renderer) DestroyShaderModule(module *metadata.ShaderModule) {
	if module == nil {
		return
	}
	r.backend.ShaderModuleDestroy(r.device, module)
}

// CreateShaderProgram links shader modules into a program.
func (r *Renderer) CreateShaderProgram(desc *metadata.ShaderProgramDesc) (*metadata.ShaderProgram, error) {
	if desc == nil {
		return nil, metadata.ErrInvalidArgument
	}
	return r.backend.ShaderProgramCreate(r.device, desc)
}

// DestroyShaderProgram releases a shader program. Nil is a no-op.
func (r *Renderer) DestroyShaderProgram(program *metadata.ShaderProgram) {
	if program == nil {
		return
	}
	r.backend.ShaderProgramDestroy(r.device, program)
}

// CreateMesh uploads mesh data into GPU buffers.
func (r *Renderer) CreateMesh(desc *metadata.MeshDesc) (*metadata.Mesh, error) {
	if desc == nil {
		return nil, metadata.ErrInvalidArgument
	}
	return r.backend.MeshCreate(r.device, desc)
}

// DestroyMesh releases a mesh and its buffers. Nil is a no-op.
func (r *Renderer) DestroyMesh(mesh *metadata.Mesh) {
	if mesh == nil {
		return
	}
	r.backend.MeshDestroy(r.device, mesh)
}

// CreateMaterial creates a material.
func (r *Renderer) CreateMaterial(desc *metadata.MaterialDesc) (*metadata.Material, error) {
	if desc == nil {
		return nil, metadata.ErrInvalidArgument
	}
	return r.backend.MaterialCreate(r.device, desc)
}

// DestroyMaterial releases a material. Nil is a no-op.
func (r *Renderer) DestroyMaterial(material *metadata.Material) {
	if material == nil {
		return
	}
	r.backend.MaterialDestroy(r.device, material)
}
