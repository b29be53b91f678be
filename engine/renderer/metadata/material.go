package metadata

import "github.com/ZiedYousfi/candidengine/engine/math"

// AlphaMode selects how a material's alpha channel is interpreted.
type AlphaMode uint8

const (
	AlphaModeOpaque AlphaMode = iota
	AlphaModeMask
	AlphaModeBlend
)

// PBRWorkflow is the material shading model: either metallic-roughness or
// specular-glossiness. Sealed; the two implementations below are the only
// ones.
type PBRWorkflow interface {
	pbrWorkflow()
}

// PBRMetallicRoughness is the default PBR workflow.
type PBRMetallicRoughness struct {
	BaseColorFactor          Color
	MetallicFactor           float32
	RoughnessFactor          float32
	BaseColorTexture         *Texture
	MetallicRoughnessTexture *Texture
}

func (PBRMetallicRoughness) pbrWorkflow() {}

// PBRSpecularGlossiness is the legacy specular workflow.
type PBRSpecularGlossiness struct {
	DiffuseFactor             Color
	SpecularFactor            math.Vec3
	GlossinessFactor          float32
	DiffuseTexture            *Texture
	SpecularGlossinessTexture *Texture
}

func (PBRSpecularGlossiness) pbrWorkflow() {}

// MaterialDesc describes a material to create. A nil Shader selects the
// backend's default program; a nil PBR selects default metallic-roughness
// parameters.
type MaterialDesc struct {
	Name string
	// Shader is a custom program; nil uses the default.
	Shader *ShaderProgram

	PBR PBRWorkflow

	NormalTexture     *Texture
	NormalScale       float32
	OcclusionTexture  *Texture
	OcclusionStrength float32
	EmissiveTexture   *Texture
	EmissiveFactor    math.Vec3

	AlphaMode AlphaMode
	// AlphaCutoff applies in AlphaModeMask.
	AlphaCutoff float32

	DoubleSided bool
	// Unlit ignores lighting and uses the base color only.
	Unlit bool

	// CustomUniforms backs custom shaders.
	CustomUniforms *Buffer
}

// Material is a backend-owned material handle.
type Material struct {
	ID         uint32
	Name       string
	Generation uint32
	// InternalData is backend-private state.
	InternalData interface{}
}

// BlendState describes fixed-function blending for a pipeline.
type BlendState struct {
	Enabled  bool
	SrcColor BlendFactor
	DstColor BlendFactor
	ColorOp  BlendOp
	SrcAlpha BlendFactor
	DstAlpha BlendFactor
	AlphaOp  BlendOp
	// WriteMask holds RGBA write-enable bits.
	WriteMask uint8
}

// DepthStencilState describes depth/stencil testing for a pipeline.
type DepthStencilState struct {
	DepthTestEnabled  bool
	DepthWriteEnabled bool
	DepthCompare      CompareFunc
	StencilEnabled    bool
}

// RasterizerState describes fixed-function rasterization for a pipeline.
type RasterizerState struct {
	CullMode           CullMode
	FrontFace          FrontFace
	Wireframe          bool
	DepthBias          float32
	DepthBiasSlope     float32
	DepthClipEnabled   bool
	ScissorTestEnabled bool
}

// DefaultRasterizerState is what a nil rasterizer state binds: back-face
// culling with counter-clockwise front faces.
func DefaultRasterizerState() RasterizerState {
	return RasterizerState{
		CullMode:  CullBack,
		FrontFace: FrontFaceCCW,
	}
}

// DefaultDepthStencilState is what a nil depth-stencil state binds:
// depth test and write enabled with a LESS compare.
func DefaultDepthStencilState() DepthStencilState {
	return DepthStencilState{
		DepthTestEnabled:  true,
		DepthWriteEnabled: true,
		DepthCompare:      CompareLess,
	}
}
