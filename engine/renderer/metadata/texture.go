package metadata

// TextureFormat is the pixel format of a texture.
type TextureFormat uint8

const (
	TextureFormatRGBA8Unorm TextureFormat = iota
	TextureFormatRGBA8SRGB
	TextureFormatBGRA8Unorm
	TextureFormatBGRA8SRGB
	TextureFormatR8Unorm
	TextureFormatRG8Unorm
	TextureFormatRGBA16Float
	TextureFormatRGBA32Float
	TextureFormatDepth32Float
	TextureFormatDepth24Stencil8
)

// PixelSize returns the bytes per pixel of the format.
func (f TextureFormat) PixelSize() uint32 {
	switch f {
	case TextureFormatR8Unorm:
		return 1
	case TextureFormatRG8Unorm:
		return 2
	case TextureFormatRGBA16Float:
		return 8
	case TextureFormatRGBA32Float:
		return 16
	default:
		// RGBA8/BGRA8 variants and packed depth formats.
		return 4
	}
}

// IsDepth reports whether the format is a depth or depth-stencil format.
func (f TextureFormat) IsDepth() bool {
	return f == TextureFormatDepth32Float || f == TextureFormatDepth24Stencil8
}

// TextureUsage is a bit set describing how a texture will be used.
type TextureUsage uint32

const (
	TextureUsageSampled TextureUsage = 1 << iota
	TextureUsageStorage
	TextureUsageRenderTarget
	TextureUsageDepthStencil
	TextureUsageTransferSrc
	TextureUsageTransferDst
)

// TextureDesc describes a texture to create.
type TextureDesc struct {
	Width  uint32
	Height uint32
	// Depth is 1 for 2D textures.
	Depth uint32
	// MipLevels of 0 requests the full chain down to 1x1.
	MipLevels uint32
	// ArrayLayers is 1 for non-array textures.
	ArrayLayers uint32
	Format      TextureFormat
	Usage       TextureUsage
	Label       string
}

// Texture is a backend-owned texture handle.
type Texture struct {
	ID          uint32
	Width       uint32
	Height      uint32
	Depth       uint32
	MipLevels   uint32
	ArrayLayers uint32
	Format      TextureFormat
	Usage       TextureUsage
	Label       string
	Generation  uint32
	// InternalData is backend-private state.
	InternalData interface{}
}

// MipDimension returns the extent of one axis at the given mip level:
// max(1, base>>mip).
func MipDimension(base, mipLevel uint32) uint32 {
	d := base >> mipLevel
	if d == 0 {
		return 1
	}
	return d
}

// FullMipLevels returns the number of levels in a complete mip chain for
// the given base extents.
func FullMipLevels(width, height uint32) uint32 {
	levels := uint32(1)
	for width > 1 || height > 1 {
		width = MipDimension(width, 1)
		height = MipDimension(height, 1)
		levels++
	}
	return levels
}
