package metadata

// SamplerFilter selects texel filtering.
type SamplerFilter uint8

const (
	SamplerFilterNearest SamplerFilter = iota
	SamplerFilterLinear
)

// SamplerAddressMode selects behavior for texture coordinates outside [0, 1].
type SamplerAddressMode uint8

const (
	SamplerAddressRepeat SamplerAddressMode = iota
	SamplerAddressMirrorRepeat
	SamplerAddressClampToEdge
	SamplerAddressClampToBorder
)

// SamplerDesc describes a sampler to create.
type SamplerDesc struct {
	MinFilter SamplerFilter
	MagFilter SamplerFilter
	MipFilter SamplerFilter
	AddressU  SamplerAddressMode
	AddressV  SamplerAddressMode
	AddressW  SamplerAddressMode
	// MaxAnisotropy of 0 or 1 disables anisotropic filtering.
	MaxAnisotropy float32
	BorderColor   Color
	Label         string
}

// Sampler is a backend-owned sampler handle.
type Sampler struct {
	ID         uint32
	Label      string
	Generation uint32
	// InternalData is backend-private state.
	InternalData interface{}
}
