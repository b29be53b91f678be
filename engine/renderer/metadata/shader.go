package metadata

// ShaderStage is a bit set of pipeline stages.
type ShaderStage uint32

const (
	ShaderStageVertex ShaderStage = 1 << iota
	ShaderStageFragment
	ShaderStageCompute
	// ShaderStageGeometry is not supported on all backends.
	ShaderStageGeometry
	// ShaderStageTessellation is not supported on all backends.
	ShaderStageTessellation
)

// ShaderSourceType tags shader source text or pre-compiled bytecode.
// Cross-compilation between formats is an external toolchain concern;
// backends consume whichever formats they understand natively.
type ShaderSourceType uint8

const (
	ShaderSourceHLSL ShaderSourceType = iota
	ShaderSourceMSL
	ShaderSourceGLSL
	ShaderSourceSPIRV
	ShaderSourceMetalLib
	ShaderSourceDXIL
)

// IsText reports whether the source type carries text rather than bytecode.
func (t ShaderSourceType) IsText() bool {
	switch t {
	case ShaderSourceHLSL, ShaderSourceMSL, ShaderSourceGLSL:
		return true
	}
	return false
}

// ShaderModuleDesc describes a single-stage shader module. Text formats
// fill Source; binary formats fill Bytecode.
type ShaderModuleDesc struct {
	Stage      ShaderStage
	Source     string
	SourceType ShaderSourceType
	Bytecode   []byte
	// EntryPoint is the entry function name, e.g. "main" or "VSMain".
	EntryPoint string
	Label      string
}

// ShaderModule is a backend-owned handle to one compiled shader stage.
type ShaderModule struct {
	ID         uint32
	Stage      ShaderStage
	EntryPoint string
	Label      string
	Generation uint32
	// InternalData is backend-private state.
	InternalData interface{}
}

// ShaderProgramDesc links shader modules into a program. A render program
// needs Vertex and Fragment; a compute program needs only Compute.
type ShaderProgramDesc struct {
	Vertex   *ShaderModule
	Fragment *ShaderModule
	Compute  *ShaderModule
	Label    string
}

// ShaderProgram is a backend-owned handle to a linked set of stages.
type ShaderProgram struct {
	ID         uint32
	Label      string
	Generation uint32
	// InternalData is backend-private state.
	InternalData interface{}
}

// BuiltinShader identifies a shader program shipped with the engine.
type BuiltinShader uint8

const (
	BuiltinShaderUnlit BuiltinShader = iota
	BuiltinShaderBlinnPhong
	BuiltinShaderPBRMetallic
	BuiltinShaderPBRSpecular
	BuiltinShaderSkybox
	BuiltinShaderShadowMap
	BuiltinShaderPostTonemap
	BuiltinShaderPostFXAA
	BuiltinShaderDebugNormals
	BuiltinShaderDebugUV
	BuiltinShaderCount
)

// SPIRVMagic is the first word of a valid SPIR-V module, in the byte
// order the module was encoded with.
const SPIRVMagic uint32 = 0x07230203

// ValidSPIRV reports whether bytecode starts with the SPIR-V magic word
// in either byte order. A cheap sanity check, not validation.
func ValidSPIRV(bytecode []byte) bool {
	if len(bytecode) < 4 || len(bytecode)%4 != 0 {
		return false
	}
	le := uint32(bytecode[0]) | uint32(bytecode[1])<<8 | uint32(bytecode[2])<<16 | uint32(bytecode[3])<<24
	be := uint32(bytecode[3]) | uint32(bytecode[2])<<8 | uint32(bytecode[1])<<16 | uint32(bytecode[0])<<24
	return le == SPIRVMagic || be == SPIRVMagic
}
