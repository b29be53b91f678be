package metadata

// InvalidID marks a handle generation or identifier as unset/destroyed.
const InvalidID uint32 = 0xFFFFFFFF

// BackendType identifies a graphics API implementation.
type BackendType uint8

const (
	// BackendAuto selects the best backend for the platform.
	BackendAuto BackendType = iota
	// BackendMetal is Metal (macOS, iOS).
	BackendMetal
	// BackendVulkan is Vulkan (Windows, Linux, Android).
	BackendVulkan
	// BackendD3D12 is Direct3D 12 (Windows).
	BackendD3D12
	// BackendWebGPU is WebGPU (web, native).
	BackendWebGPU
	// BackendNull is the in-memory reference backend. It implements the
	// full contract without touching a GPU and backs the test suite.
	BackendNull
	// BackendCount is the number of backend kinds, Auto included.
	BackendCount
)

func (b BackendType) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendMetal:
		return "metal"
	case BackendVulkan:
		return "vulkan"
	case BackendD3D12:
		return "d3d12"
	case BackendWebGPU:
		return "webgpu"
	case BackendNull:
		return "null"
	}
	return "unknown"
}

// ParseBackendType maps a configuration string to a BackendType.
// Unrecognized names map to BackendAuto.
func ParseBackendType(name string) BackendType {
	switch name {
	case "metal":
		return BackendMetal
	case "vulkan":
		return BackendVulkan
	case "d3d12":
		return BackendD3D12
	case "webgpu":
		return BackendWebGPU
	case "null":
		return BackendNull
	}
	return BackendAuto
}

// Color is an RGBA color with float32 components, typically in [0, 1].
type Color struct {
	R, G, B, A float32
}

// CompareFunc selects a depth/stencil comparison.
type CompareFunc uint8

const (
	CompareNever CompareFunc = iota
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

// BlendFactor selects a source or destination blend factor.
type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendDstColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
)

// BlendOp combines source and destination after factoring.
type BlendOp uint8

const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax
)

// PrimitiveTopology selects how vertices assemble into primitives.
type PrimitiveTopology uint8

const (
	PrimitivePointList PrimitiveTopology = iota
	PrimitiveLineList
	PrimitiveLineStrip
	PrimitiveTriangleList
	PrimitiveTriangleStrip
)

// IndexFormat is the width of mesh indices.
type IndexFormat uint8

const (
	IndexFormatUint16 IndexFormat = iota
	IndexFormatUint32
)

// Size returns the width of one index in bytes.
func (f IndexFormat) Size() uint64 {
	if f == IndexFormatUint16 {
		return 2
	}
	return 4
}

// CullMode selects which triangle faces are discarded.
type CullMode uint8

const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// FrontFace selects the winding order of front-facing triangles.
type FrontFace uint8

const (
	// FrontFaceCCW treats counter-clockwise triangles as front-facing.
	FrontFaceCCW FrontFace = iota
	// FrontFaceCW treats clockwise triangles as front-facing.
	FrontFaceCW
)
