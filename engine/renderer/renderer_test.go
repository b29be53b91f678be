package renderer_test

import (
	"errors"
	"testing"

	"github.com/ZiedYousfi/candidengine/engine/math"
	"github.com/ZiedYousfi/candidengine/engine/renderer"
	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
	"github.com/ZiedYousfi/candidengine/engine/renderer/null"
)

func newTestRenderer(t *testing.T) *renderer.Renderer {
	t.Helper()
	r, err := renderer.New(&renderer.Config{
		AppName: "renderer-test",
		Width:   800,
		Height:  600,
		Backend: metadata.BackendNull,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(r.Destroy)
	return r
}

func TestRegistryResolution(t *testing.T) {
	// The null backend registered itself from its package init.
	if !renderer.IsAvailable(metadata.BackendNull) {
		t.Fatal("null backend not registered")
	}
	b := renderer.Get(metadata.BackendNull)
	if b == nil || b.Type() != metadata.BackendNull {
		t.Fatalf("Get(BackendNull) = %v", b)
	}

	// Resolution is deterministic and side-effect free.
	first := renderer.Preferred()
	for i := 0; i < 10; i++ {
		if got := renderer.Preferred(); got != first {
			t.Fatalf("Preferred changed between calls: %v then %v", first, got)
		}
	}
	if auto := renderer.Get(metadata.BackendAuto); auto == nil || auto.Type() != first {
		t.Errorf("Get(Auto) = %v, want the preferred backend %v", auto, first)
	}

	if renderer.Get(metadata.BackendCount) != nil {
		t.Error("Get out of range should be nil")
	}
	if renderer.IsAvailable(metadata.BackendMetal) {
		t.Error("metal should not be registered in tests")
	}

	available := renderer.Available()
	if len(available) == 0 {
		t.Fatal("Available() is empty")
	}
	for i := 1; i < len(available); i++ {
		if available[i-1] >= available[i] {
			t.Errorf("Available() not in ascending order: %v", available)
		}
	}
}

func TestNewUnregisteredBackend(t *testing.T) {
	_, err := renderer.New(&renderer.Config{
		AppName: "x",
		Width:   100,
		Height:  100,
		Backend: metadata.BackendMetal,
	})
	if !errors.Is(err, metadata.ErrBackendNotSupported) {
		t.Errorf("New with unregistered backend = %v, want ErrBackendNotSupported", err)
	}
}

func TestNewNilConfig(t *testing.T) {
	if _, err := renderer.New(nil); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("New(nil) = %v, want ErrInvalidArgument", err)
	}
}

func TestDestroyIdempotent(t *testing.T) {
	r, err := renderer.New(&renderer.Config{AppName: "x", Width: 10, Height: 10, Backend: metadata.BackendNull})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.Destroy()
	r.Destroy()
}

func TestFrameLoop(t *testing.T) {
	r := newTestRenderer(t)

	for i := 0; i < 3; i++ {
		if err := r.BeginFrame(); err != nil {
			t.Fatalf("BeginFrame %d: %v", i, err)
		}
		if err := r.SetViewport(0, 0, 800, 600); err != nil {
			t.Errorf("SetViewport: %v", err)
		}
		if err := r.EndFrame(); err != nil {
			t.Fatalf("EndFrame %d: %v", i, err)
		}
	}
	if r.FrameCount() != 3 {
		t.Errorf("FrameCount = %d, want 3", r.FrameCount())
	}

	// Frame calls must pair up.
	if err := r.EndFrame(); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("EndFrame without BeginFrame = %v, want ErrInvalidArgument", err)
	}
	if err := r.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}
	if err := r.BeginFrame(); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("nested BeginFrame = %v, want ErrInvalidArgument", err)
	}
	if err := r.EndFrame(); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}
}

func TestFrameCountAdvancesOnFailedFrame(t *testing.T) {
	r := newTestRenderer(t)

	if err := r.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}
	if err := r.EndFrame(); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}
	before := r.FrameCount()

	// A zero-extent swapchain makes BeginFrame fail; the frame counter
	// only moves on EndFrame.
	if err := r.Resize(0, 0); err != nil {
		t.Fatalf("Resize(0,0): %v", err)
	}
	if err := r.BeginFrame(); !errors.Is(err, metadata.ErrResourceCreation) {
		t.Errorf("BeginFrame at 0x0 = %v, want ErrResourceCreation", err)
	}
	if r.FrameCount() != before {
		t.Errorf("FrameCount moved on failed BeginFrame")
	}

	if err := r.Resize(800, 600); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if err := r.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame after resize: %v", err)
	}
	if err := r.EndFrame(); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}
	if r.FrameCount() != before+1 {
		t.Errorf("FrameCount = %d, want %d", r.FrameCount(), before+1)
	}
}

func TestCameraMatrices(t *testing.T) {
	r := newTestRenderer(t)

	cam := renderer.Camera{
		Position: math.NewVec3(0, 0, 5),
		Target:   math.NewVec3(0, 0, 0),
		Up:       math.NewVec3(0, 1, 0),
		FovY:     math.Pi / 2.0,
		Near:     0.1,
		Far:      100.0,
		Aspect:   1.0,
	}
	if err := r.SetCamera(&cam); err != nil {
		t.Fatalf("SetCamera: %v", err)
	}

	vp := r.ViewProjection()
	// The world origin, 5 units in front of the camera, lands on the
	// view axis: clip x and y are 0, w is the view-space distance.
	clip := vp.MulVec4(math.NewVec4(0, 0, 0, 1))
	if abs(clip.X) > 1e-5 || abs(clip.Y) > 1e-5 {
		t.Errorf("origin off axis: clip = %+v", clip)
	}
	if abs(clip.W-5) > 1e-4 {
		t.Errorf("clip.W = %f, want 5", clip.W)
	}
	// Depth maps inside the clip volume: -w <= z <= w.
	if clip.Z < -clip.W || clip.Z > clip.W {
		t.Errorf("origin outside depth range: z = %f, w = %f", clip.Z, clip.W)
	}

	if err := r.SetCamera(nil); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("SetCamera(nil) = %v, want ErrInvalidArgument", err)
	}

	// SetViewProjection overwrites whatever SetCamera computed.
	id := math.NewMat4Identity()
	r.SetViewProjection(id, id)
	got := r.ViewProjection()
	if got != id {
		t.Errorf("ViewProjection after identity override = %+v", got)
	}
}

func TestBuiltinShaderCache(t *testing.T) {
	r := newTestRenderer(t)

	p1, err := r.BuiltinShader(metadata.BuiltinShaderUnlit)
	if err != nil {
		t.Fatalf("BuiltinShader: %v", err)
	}
	p2, err := r.BuiltinShader(metadata.BuiltinShaderUnlit)
	if err != nil {
		t.Fatalf("BuiltinShader second call: %v", err)
	}
	if p1 != p2 {
		t.Error("builtin program not cached")
	}
	if _, err := r.BuiltinShader(metadata.BuiltinShaderCount); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("out-of-range builtin = %v, want ErrInvalidArgument", err)
	}

	// Every builtin compiles on the null backend.
	for kind := metadata.BuiltinShader(0); kind < metadata.BuiltinShaderCount; kind++ {
		if _, err := r.BuiltinShader(kind); err != nil {
			t.Errorf("builtin %d: %v", kind, err)
		}
	}
}

func TestResourceForwardersNilChecks(t *testing.T) {
	r := newTestRenderer(t)

	if _, err := r.CreateBuffer(nil); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("CreateBuffer(nil) = %v", err)
	}
	if _, err := r.CreateTexture(nil); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("CreateTexture(nil) = %v", err)
	}
	if _, err := r.CreateMesh(nil); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("CreateMesh(nil) = %v", err)
	}

	// Nil destroys never panic and never error.
	r.DestroyBuffer(nil)
	r.DestroyTexture(nil)
	r.DestroySampler(nil)
	r.DestroyShaderModule(nil)
	r.DestroyShaderProgram(nil)
	r.DestroyMesh(nil)
	r.DestroyMaterial(nil)
}

func TestDrawMeshForwarding(t *testing.T) {
	r := newTestRenderer(t)

	mesh, err := r.CreateMesh(&metadata.MeshDesc{
		Data: metadata.MeshData{
			Vertices: []metadata.Vertex{
				{Position: math.NewVec3(0, 0, 0)},
				{Position: math.NewVec3(1, 0, 0)},
				{Position: math.NewVec3(0, 1, 0)},
			},
			Indices:     []byte{0, 0, 1, 0, 2, 0},
			IndexFormat: metadata.IndexFormatUint16,
		},
	})
	if err != nil {
		t.Fatalf("CreateMesh: %v", err)
	}
	defer r.DestroyMesh(mesh)

	// Drawing outside a frame is rejected.
	if err := r.DrawMesh(mesh, math.NewMat4Identity()); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("DrawMesh outside frame = %v, want ErrInvalidArgument", err)
	}

	if err := r.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}
	if err := r.BindPipeline(nil, nil, nil, nil); err != nil {
		t.Fatalf("BindPipeline: %v", err)
	}
	if err := r.DrawMesh(mesh, math.NewMat4Identity()); err != nil {
		t.Errorf("DrawMesh: %v", err)
	}
	if err := r.DrawMesh(nil, math.NewMat4Identity()); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("DrawMesh(nil) = %v, want ErrInvalidArgument", err)
	}
	if err := r.EndFrame(); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}
}

func TestGPUOnlyUpdateLeavesContents(t *testing.T) {
	r := newTestRenderer(t)

	gpu, err := r.CreateBuffer(&metadata.BufferDesc{
		Size:        4,
		Usage:       metadata.BufferUsageStorage,
		Memory:      metadata.BufferMemoryGPUOnly,
		InitialData: []byte{7, 7, 7, 7},
	})
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	defer r.DestroyBuffer(gpu)

	if err := r.UpdateBuffer(gpu, 0, []byte{1}); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("UpdateBuffer on GPU-only = %v, want ErrInvalidArgument", err)
	}
	if _, err := r.MapBuffer(gpu); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("MapBuffer on GPU-only = %v, want ErrInvalidArgument", err)
	}

	cpu, err := r.CreateBuffer(&metadata.BufferDesc{
		Size:        4,
		Usage:       metadata.BufferUsageStorage,
		Memory:      metadata.BufferMemoryCPUToGPU,
		InitialData: []byte{7, 7, 7, 7},
	})
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	defer r.DestroyBuffer(cpu)

	if err := r.UpdateBuffer(cpu, 1, []byte{8, 8}); err != nil {
		t.Fatalf("UpdateBuffer: %v", err)
	}
	data, err := r.MapBuffer(cpu)
	if err != nil {
		t.Fatalf("MapBuffer: %v", err)
	}
	want := []byte{7, 8, 8, 7}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("byte %d = %d, want %d", i, data[i], want[i])
		}
	}
	r.UnmapBuffer(cpu)
}

func TestDeviceStateAccess(t *testing.T) {
	r := newTestRenderer(t)
	s := null.StateOf(r.Device())
	if s == nil {
		t.Fatal("StateOf(device) is nil")
	}

	buf, err := r.CreateBuffer(&metadata.BufferDesc{
		Size:   16,
		Usage:  metadata.BufferUsageUniform,
		Memory: metadata.BufferMemoryCPUToGPU,
	})
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	if s.LiveBuffers != 1 {
		t.Errorf("LiveBuffers = %d, want 1", s.LiveBuffers)
	}
	r.DestroyBuffer(buf)
	if s.LiveBuffers != 0 {
		t.Errorf("LiveBuffers = %d, want 0", s.LiveBuffers)
	}
	if null.StateOf(nil) != nil {
		t.Error("StateOf(nil) should be nil")
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
