package null

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ZiedYousfi/candidengine/engine/math"
	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

func newTestDevice(t *testing.T) (*NullBackend, *metadata.Device) {
	t.Helper()
	b := New()
	device, err := b.DeviceCreate(&metadata.DeviceDesc{
		Width:   640,
		Height:  480,
		AppName: "null-test",
	})
	if err != nil {
		t.Fatalf("DeviceCreate: %v", err)
	}
	return b, device
}

func testVertices(n int) []metadata.Vertex {
	verts := make([]metadata.Vertex, n)
	for i := range verts {
		verts[i].Position = math.NewVec3(float32(i), 0, 0)
		verts[i].Color = metadata.Color{R: 1, G: 1, B: 1, A: 1}
	}
	return verts
}

func TestDeviceCreateNilDesc(t *testing.T) {
	b := New()
	if _, err := b.DeviceCreate(nil); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("DeviceCreate(nil) = %v, want ErrInvalidArgument", err)
	}
}

func TestBufferLifecycle(t *testing.T) {
	b, device := newTestDevice(t)
	s := StateOf(device)

	initial := []byte{1, 2, 3, 4}
	buf, err := b.BufferCreate(device, &metadata.BufferDesc{
		Size:        16,
		Usage:       metadata.BufferUsageVertex,
		Memory:      metadata.BufferMemoryCPUToGPU,
		InitialData: initial,
	})
	if err != nil {
		t.Fatalf("BufferCreate: %v", err)
	}
	if s.LiveBuffers != 1 {
		t.Errorf("LiveBuffers = %d, want 1", s.LiveBuffers)
	}
	if buf.Label == "" {
		t.Error("expected a generated debug label")
	}

	data, err := b.BufferMap(device, buf)
	if err != nil {
		t.Fatalf("BufferMap: %v", err)
	}
	if !bytes.Equal(data[:4], initial) {
		t.Errorf("initial data = %v, want %v", data[:4], initial)
	}
	b.BufferUnmap(device, buf)

	b.BufferDestroy(device, buf)
	if s.LiveBuffers != 0 {
		t.Errorf("LiveBuffers after destroy = %d, want 0", s.LiveBuffers)
	}
	// Double destroy and nil destroy are no-ops.
	b.BufferDestroy(device, buf)
	b.BufferDestroy(device, nil)
	if s.LiveBuffers != 0 {
		t.Errorf("LiveBuffers after double destroy = %d, want 0", s.LiveBuffers)
	}
}

func TestBufferGPUOnlyRejectsCPUAccess(t *testing.T) {
	b, device := newTestDevice(t)

	buf, err := b.BufferCreate(device, &metadata.BufferDesc{
		Size:        8,
		Usage:       metadata.BufferUsageStorage,
		Memory:      metadata.BufferMemoryGPUOnly,
		InitialData: []byte{9, 9, 9, 9, 9, 9, 9, 9},
	})
	if err != nil {
		t.Fatalf("BufferCreate: %v", err)
	}

	if err := b.BufferUpdate(device, buf, 0, []byte{1, 2}); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("BufferUpdate on GPU-only = %v, want ErrInvalidArgument", err)
	}
	if _, err := b.BufferMap(device, buf); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("BufferMap on GPU-only = %v, want ErrInvalidArgument", err)
	}

	// The failed update must not have touched the contents.
	bs := buf.InternalData.(*bufferState)
	for i, v := range bs.data {
		if v != 9 {
			t.Fatalf("byte %d = %d after rejected update, want 9", i, v)
		}
	}
}

func TestBufferUpdateOutOfBounds(t *testing.T) {
	b, device := newTestDevice(t)
	buf, _ := b.BufferCreate(device, &metadata.BufferDesc{
		Size:   8,
		Usage:  metadata.BufferUsageUniform,
		Memory: metadata.BufferMemoryCPUToGPU,
	})
	if err := b.BufferUpdate(device, buf, 6, []byte{1, 2, 3}); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("out-of-bounds update = %v, want ErrInvalidArgument", err)
	}
}

func TestMeshCreateAtomicOnBufferFailure(t *testing.T) {
	b, device := newTestDevice(t)
	s := StateOf(device)

	desc := &metadata.MeshDesc{
		Data: metadata.MeshData{
			Vertices:    testVertices(3),
			Indices:     []byte{0, 0, 1, 0, 2, 0},
			IndexFormat: metadata.IndexFormatUint16,
			Layout:      metadata.StandardVertexLayout(),
		},
	}

	// Sanity: the mesh creates cleanly without injection.
	mesh, err := b.MeshCreate(device, desc)
	if err != nil {
		t.Fatalf("MeshCreate: %v", err)
	}
	if s.LiveBuffers != 2 || s.LiveMeshes != 1 {
		t.Fatalf("LiveBuffers = %d, LiveMeshes = %d, want 2 and 1", s.LiveBuffers, s.LiveMeshes)
	}
	b.MeshDestroy(device, mesh)
	if s.LiveBuffers != 0 || s.LiveMeshes != 0 {
		t.Fatalf("after destroy LiveBuffers = %d, LiveMeshes = %d, want 0 and 0", s.LiveBuffers, s.LiveMeshes)
	}

	// Vertex buffer is the first create inside MeshCreate: fail it and
	// nothing may leak.
	s.FailBufferCreates = 1
	if _, err := b.MeshCreate(device, desc); !errors.Is(err, metadata.ErrResourceCreation) {
		t.Errorf("MeshCreate with failing vertex buffer = %v, want ErrResourceCreation", err)
	}
	if s.LiveBuffers != 0 || s.LiveMeshes != 0 {
		t.Errorf("leak after vertex failure: buffers = %d, meshes = %d", s.LiveBuffers, s.LiveMeshes)
	}

	// Index buffer is the second create: when it fails, the already
	// created vertex buffer must be rolled back.
	s.FailBufferCreates = 2
	if _, err := b.MeshCreate(device, desc); !errors.Is(err, metadata.ErrResourceCreation) {
		t.Errorf("MeshCreate with failing index buffer = %v, want ErrResourceCreation", err)
	}
	if s.LiveBuffers != 0 || s.LiveMeshes != 0 {
		t.Errorf("leak after index failure: buffers = %d, meshes = %d", s.LiveBuffers, s.LiveMeshes)
	}
}

func TestTextureMipValidation(t *testing.T) {
	b, device := newTestDevice(t)

	tex, err := b.TextureCreate(device, &metadata.TextureDesc{
		Width:  4,
		Height: 4,
		Format: metadata.TextureFormatRGBA8Unorm,
		Usage:  metadata.TextureUsageSampled,
	})
	if err != nil {
		t.Fatalf("TextureCreate: %v", err)
	}
	if tex.MipLevels != 3 {
		t.Errorf("MipLevels = %d, want full chain 3", tex.MipLevels)
	}

	// Mip 1 of a 4x4 RGBA8 texture is 2x2x4 = 16 bytes.
	if err := b.TextureUpload(device, tex, 1, 0, make([]byte, 16)); err != nil {
		t.Errorf("TextureUpload mip 1: %v", err)
	}
	if err := b.TextureUpload(device, tex, 1, 0, make([]byte, 15)); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("short upload = %v, want ErrInvalidArgument", err)
	}
	if err := b.TextureUpload(device, tex, 3, 0, make([]byte, 4)); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("out-of-range mip = %v, want ErrInvalidArgument", err)
	}

	if _, err := b.TextureCreate(device, &metadata.TextureDesc{
		Width: 4, Height: 4, MipLevels: 9,
		Format: metadata.TextureFormatRGBA8Unorm,
	}); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("over-deep mip chain = %v, want ErrInvalidArgument", err)
	}
}

func TestShaderModuleValidation(t *testing.T) {
	b, device := newTestDevice(t)

	if _, err := b.ShaderModuleCreate(device, &metadata.ShaderModuleDesc{
		Stage:      metadata.ShaderStageVertex,
		SourceType: metadata.ShaderSourceHLSL,
	}); !errors.Is(err, metadata.ErrShaderCompilation) {
		t.Errorf("empty source = %v, want ErrShaderCompilation", err)
	}

	if _, err := b.ShaderModuleCreate(device, &metadata.ShaderModuleDesc{
		Stage:      metadata.ShaderStageVertex,
		SourceType: metadata.ShaderSourceSPIRV,
		Bytecode:   []byte{1, 2, 3, 4, 5, 6, 7, 8},
	}); !errors.Is(err, metadata.ErrShaderCompilation) {
		t.Errorf("bad SPIR-V = %v, want ErrShaderCompilation", err)
	}

	mod, err := b.ShaderModuleCreate(device, &metadata.ShaderModuleDesc{
		Stage:      metadata.ShaderStageVertex,
		SourceType: metadata.ShaderSourceSPIRV,
		Bytecode:   []byte{0x03, 0x02, 0x23, 0x07, 0, 0, 1, 0},
	})
	if err != nil {
		t.Fatalf("valid SPIR-V rejected: %v", err)
	}
	if mod.EntryPoint != "main" {
		t.Errorf("EntryPoint = %q, want default main", mod.EntryPoint)
	}
}

func TestShaderProgramRequiresStages(t *testing.T) {
	b, device := newTestDevice(t)

	if _, err := b.ShaderProgramCreate(device, &metadata.ShaderProgramDesc{}); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("empty program = %v, want ErrInvalidArgument", err)
	}

	cs, err := b.ShaderModuleCreate(device, &metadata.ShaderModuleDesc{
		Stage:      metadata.ShaderStageCompute,
		Source:     "[numthreads(1,1,1)] void main() {}",
		SourceType: metadata.ShaderSourceHLSL,
	})
	if err != nil {
		t.Fatalf("ShaderModuleCreate: %v", err)
	}
	if _, err := b.ShaderProgramCreate(device, &metadata.ShaderProgramDesc{Compute: cs}); err != nil {
		t.Errorf("compute-only program: %v", err)
	}
}

func TestCommandStateMachine(t *testing.T) {
	b, device := newTestDevice(t)

	cmd, err := b.CmdBegin(device)
	if err != nil {
		t.Fatalf("CmdBegin: %v", err)
	}

	// One open command buffer per device.
	if _, err := b.CmdBegin(device); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("second CmdBegin = %v, want ErrInvalidArgument", err)
	}

	// Submit before End is rejected.
	if err := b.CmdSubmit(cmd); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("CmdSubmit while recording = %v, want ErrInvalidArgument", err)
	}

	if err := b.CmdBeginRenderPass(cmd, nil); err != nil {
		t.Fatalf("CmdBeginRenderPass: %v", err)
	}
	cs := cmd.InternalData.(*cmdState)
	want := metadata.Color{R: 0.2, G: 0.2, B: 0.2, A: 1.0}
	if cs.clearColor != want {
		t.Errorf("default clear color = %+v, want %+v", cs.clearColor, want)
	}

	// CmdEnd closes the open pass implicitly.
	if err := b.CmdEnd(cmd); err != nil {
		t.Fatalf("CmdEnd: %v", err)
	}
	// A new command buffer may open once the previous one ended.
	cmd2, err := b.CmdBegin(device)
	if err != nil {
		t.Fatalf("CmdBegin after end: %v", err)
	}
	if err := b.CmdEnd(cmd2); err != nil {
		t.Fatalf("CmdEnd: %v", err)
	}
	if err := b.CmdSubmit(cmd2); err != nil {
		t.Fatalf("CmdSubmit: %v", err)
	}
	// Submission consumed the handle.
	if err := b.CmdSubmit(cmd2); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("resubmit = %v, want ErrInvalidArgument", err)
	}

	if err := b.CmdSubmit(cmd); err != nil {
		t.Fatalf("CmdSubmit of first buffer: %v", err)
	}
}

func TestZeroExtentRenderPassFails(t *testing.T) {
	b, device := newTestDevice(t)

	if err := b.SwapchainResize(device, 0, 0); err != nil {
		t.Fatalf("SwapchainResize(0,0): %v", err)
	}
	cmd, err := b.CmdBegin(device)
	if err != nil {
		t.Fatalf("CmdBegin: %v", err)
	}
	if err := b.CmdBeginRenderPass(cmd, nil); !errors.Is(err, metadata.ErrResourceCreation) {
		t.Errorf("render pass at 0x0 = %v, want ErrResourceCreation", err)
	}
	b.CmdEnd(cmd)

	// Recovery after a real resize.
	if err := b.SwapchainResize(device, 320, 240); err != nil {
		t.Fatalf("SwapchainResize: %v", err)
	}
	cmd, err = b.CmdBegin(device)
	if err != nil {
		t.Fatalf("CmdBegin: %v", err)
	}
	if err := b.CmdBeginRenderPass(cmd, nil); err != nil {
		t.Errorf("render pass after resize: %v", err)
	}
}

func TestNilProgramBindsDefaultPipeline(t *testing.T) {
	b, device := newTestDevice(t)

	cmd, _ := b.CmdBegin(device)
	if err := b.CmdBeginRenderPass(cmd, &metadata.Color{A: 1}); err != nil {
		t.Fatalf("CmdBeginRenderPass: %v", err)
	}
	if err := b.CmdBindPipeline(cmd, nil, nil, nil, nil); err != nil {
		t.Fatalf("CmdBindPipeline(nil): %v", err)
	}
	cs := cmd.InternalData.(*cmdState)
	if cs.raster.CullMode != metadata.CullBack || cs.raster.FrontFace != metadata.FrontFaceCCW {
		t.Errorf("default rasterizer = %+v", cs.raster)
	}
	if !cs.depthStencil.DepthTestEnabled || !cs.depthStencil.DepthWriteEnabled || cs.depthStencil.DepthCompare != metadata.CompareLess {
		t.Errorf("default depth-stencil = %+v", cs.depthStencil)
	}

	if err := b.CmdDraw(cmd, 3, 1, 0, 0); err != nil {
		t.Errorf("CmdDraw with default pipeline: %v", err)
	}
	if err := b.CmdEnd(cmd); err != nil {
		t.Fatalf("CmdEnd: %v", err)
	}
	if err := b.CmdSubmit(cmd); err != nil {
		t.Errorf("CmdSubmit: %v", err)
	}
	if StateOf(device).DrawCalls != 1 {
		t.Errorf("DrawCalls = %d, want 1", StateOf(device).DrawCalls)
	}
}

func TestDrawOutsideRenderPass(t *testing.T) {
	b, device := newTestDevice(t)
	cmd, _ := b.CmdBegin(device)
	if err := b.CmdDraw(cmd, 3, 1, 0, 0); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("CmdDraw outside pass = %v, want ErrInvalidArgument", err)
	}
}

func TestDispatchCounts(t *testing.T) {
	b, device := newTestDevice(t)
	if !b.DeviceLimits(device).SupportsCompute {
		t.Fatal("null backend should report compute support")
	}
	cmd, _ := b.CmdBegin(device)
	if err := b.CmdDispatch(cmd, 8, 8, 1); err != nil {
		t.Fatalf("CmdDispatch: %v", err)
	}
	if err := b.CmdDispatch(cmd, 0, 1, 1); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("zero-group dispatch = %v, want ErrInvalidArgument", err)
	}
	b.CmdEnd(cmd)
	b.CmdSubmit(cmd)
	if got := StateOf(device).Dispatches; got != 1 {
		t.Errorf("Dispatches = %d, want 1", got)
	}
}

func TestDrawMeshSubmeshBounds(t *testing.T) {
	b, device := newTestDevice(t)
	mesh, err := b.MeshCreate(device, &metadata.MeshDesc{
		Data: metadata.MeshData{
			Vertices:    testVertices(4),
			Indices:     []byte{0, 0, 1, 0, 2, 0, 0, 0, 2, 0, 3, 0},
			IndexFormat: metadata.IndexFormatUint16,
		},
		Submeshes: []metadata.Submesh{
			{IndexOffset: 0, IndexCount: 6},
			{IndexOffset: 6, IndexCount: 6},
		},
	})
	if err != nil {
		t.Fatalf("MeshCreate: %v", err)
	}
	if mesh.IndexCount != 6 {
		t.Errorf("IndexCount = %d, want 6", mesh.IndexCount)
	}

	cmd, _ := b.CmdBegin(device)
	b.CmdBeginRenderPass(cmd, nil)
	if err := b.CmdDrawMesh(cmd, mesh, 2, 1); !errors.Is(err, metadata.ErrInvalidArgument) {
		t.Errorf("out-of-range submesh = %v, want ErrInvalidArgument", err)
	}
	if err := b.CmdDrawMesh(cmd, mesh, -1, 1); err != nil {
		t.Errorf("draw all submeshes: %v", err)
	}
	b.CmdEnd(cmd)
	b.CmdSubmit(cmd)
	if got := StateOf(device).DrawCalls; got != 2 {
		t.Errorf("DrawCalls = %d, want 2 (one per submesh)", got)
	}
}
