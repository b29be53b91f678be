package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

// ShaderLoader reads shader source files from disk into module
// descriptors. The source type comes from the file extension; stage and
// entry point come from the extension where it is unambiguous (.vert,
// .frag) and are left for the caller otherwise.
type ShaderLoader struct{}

// ShaderSourceTypeForExt maps a file extension (with leading dot) to a
// source type. The second result is false for unrecognized extensions.
func ShaderSourceTypeForExt(ext string) (metadata.ShaderSourceType, bool) {
	switch strings.ToLower(ext) {
	case ".hlsl":
		return metadata.ShaderSourceHLSL, true
	case ".msl", ".metal":
		return metadata.ShaderSourceMSL, true
	case ".glsl", ".vert", ".frag":
		return metadata.ShaderSourceGLSL, true
	case ".spv":
		return metadata.ShaderSourceSPIRV, true
	}
	return 0, false
}

// Load reads the file at path and fills a ShaderModuleDesc. Text
// sources land in Source, .spv bytecode in Bytecode (checked against
// the SPIR-V magic word). GLSL stage extensions also set Stage and a
// "main" entry point.
func (ShaderLoader) Load(path string) (*metadata.ShaderModuleDesc, error) {
	ext := filepath.Ext(path)
	sourceType, ok := ShaderSourceTypeForExt(ext)
	if !ok {
		return nil, fmt.Errorf("unrecognized shader extension %q: %w", ext, metadata.ErrInvalidArgument)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shader %s: %w", path, err)
	}

	desc := &metadata.ShaderModuleDesc{
		SourceType: sourceType,
		Label:      filepath.Base(path),
	}
	if sourceType.IsText() {
		desc.Source = string(raw)
	} else {
		if !metadata.ValidSPIRV(raw) {
			return nil, fmt.Errorf("%s is not SPIR-V: %w", path, metadata.ErrShaderCompilation)
		}
		desc.Bytecode = raw
		desc.EntryPoint = "main"
	}

	switch strings.ToLower(ext) {
	case ".vert":
		desc.Stage = metadata.ShaderStageVertex
		desc.EntryPoint = "main"
	case ".frag":
		desc.Stage = metadata.ShaderStageFragment
		desc.EntryPoint = "main"
	}
	return desc, nil
}
