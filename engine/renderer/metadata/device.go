package metadata

// DeviceDesc describes the GPU context to initialize. NativeWindow and
// NativeSurface are opaque handles from the windowing layer; the core
// never interprets them, only passes them to the chosen backend.
type DeviceDesc struct {
	PreferredBackend BackendType
	NativeWindow     interface{}
	NativeSurface    interface{}
	Width            uint32
	Height           uint32
	VSync            bool
	// DebugMode enables validation layers where the backend has them.
	DebugMode bool
	AppName   string
}

// DeviceLimits reports device capabilities. Fields a backend does not
// fill read as zero/false.
type DeviceLimits struct {
	MaxTextureSize          uint32
	MaxCubeMapSize          uint32
	MaxTextureArrayLayers   uint32
	MaxVertexAttributes     uint32
	MaxVertexBuffers        uint32
	MaxUniformBufferSize    uint32
	MaxStorageBufferSize    uint32
	MaxComputeWorkgroupSize [3]uint32
	MaxComputeWorkgroups    [3]uint32
	MaxAnisotropy           float32
	SupportsGeometryShader  bool
	SupportsTessellation    bool
	SupportsCompute         bool
	SupportsRayTracing      bool
}

// Device is a backend-owned handle to an initialized GPU context:
// physical and logical device, command queue, swapchain surface. One per
// Renderer. All resources created through it must be destroyed before it
// is.
type Device struct {
	Backend BackendType
	Width   uint32
	Height  uint32
	// InternalData is backend-private state.
	InternalData interface{}
}

// CommandBuffer is one in-flight recording of GPU work. It moves through
// Recording -> (optionally) InRenderPass -> Ended -> Submitted; submit
// consumes the handle. Backends own the state tracking.
type CommandBuffer struct {
	// InternalData is backend-private state.
	InternalData interface{}
}
