package renderer

import (
	"embed"
	"fmt"

	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

//go:embed shaders/*.hlsl
var builtinShaderFS embed.FS

var builtinShaderFiles = [metadata.BuiltinShaderCount]string{
	metadata.BuiltinShaderUnlit:        "shaders/unlit.hlsl",
	metadata.BuiltinShaderBlinnPhong:   "shaders/blinn_phong.hlsl",
	metadata.BuiltinShaderPBRMetallic:  "shaders/pbr_metallic.hlsl",
	metadata.BuiltinShaderPBRSpecular:  "shaders/pbr_specular.hlsl",
	metadata.BuiltinShaderSkybox:       "shaders/skybox.hlsl",
	metadata.BuiltinShaderShadowMap:    "shaders/shadow_map.hlsl",
	metadata.BuiltinShaderPostTonemap:  "shaders/post_tonemap.hlsl",
	metadata.BuiltinShaderPostFXAA:     "shaders/post_fxaa.hlsl",
	metadata.BuiltinShaderDebugNormals: "shaders/debug_normals.hlsl",
	metadata.BuiltinShaderDebugUV:      "shaders/debug_uv.hlsl",
}

// BuiltinShader returns the program for one of the shaders shipped with
// the engine, compiling it on first use. Compiled programs are cached
// for the renderer's lifetime; compilation failures are not cached, so a
// later call retries.
func (r *Renderer) BuiltinShader(kind metadata.BuiltinShader) (*metadata.ShaderProgram, error) {
	if kind >= metadata.BuiltinShaderCount {
		return nil, metadata.ErrInvalidArgument
	}
	if p := r.builtins[kind]; p != nil {
		return p, nil
	}

	source, err := builtinShaderFS.ReadFile(builtinShaderFiles[kind])
	if err != nil {
		return nil, fmt.Errorf("builtin shader %d: %w", kind, metadata.ErrShaderCompilation)
	}

	vs, err := r.backend.ShaderModuleCreate(r.device, &metadata.ShaderModuleDesc{
		Stage:      metadata.ShaderStageVertex,
		Source:     string(source),
		SourceType: metadata.ShaderSourceHLSL,
		EntryPoint: "VSMain",
		Label:      builtinShaderFiles[kind] + ":vs",
	})
	if err != nil {
		return nil, err
	}
	fs, err := r.backend.ShaderModuleCreate(r.device, &metadata.ShaderModuleDesc{
		Stage:      metadata.ShaderStageFragment,
		Source:     string(source),
		SourceType: metadata.ShaderSourceHLSL,
		EntryPoint: "PSMain",
		Label:      builtinShaderFiles[kind] + ":ps",
	})
	if err != nil {
		r.backend.ShaderModuleDestroy(r.device, vs)
		return nil, err
	}
	program, err := r.backend.ShaderProgramCreate(r.device, &metadata.ShaderProgramDesc{
		Vertex:   vs,
		Fragment: fs,
		Label:    builtinShaderFiles[kind],
	})
	if err != nil {
		r.backend.ShaderModuleDestroy(r.device, fs)
		r.backend.ShaderModuleDestroy(r.device, vs)
		return nil, err
	}
	r.builtinModules = append(r.builtinModules, vs, fs)
	r.builtins[kind] = program
	return program, nil
}
