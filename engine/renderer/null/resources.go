package null

import (
	"encoding/binary"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

type bufferState struct {
	data   []byte
	mapped bool
}

func (b *NullBackend) BufferCreate(device *metadata.Device, desc *metadata.BufferDesc) (*metadata.Buffer, error) {
	s, err := deviceState(device)
	if err != nil {
		return nil, err
	}
	if desc == nil || desc.Size == 0 {
		return nil, metadata.ErrInvalidArgument
	}
	if uint64(len(desc.InitialData)) > desc.Size {
		return nil, metadata.ErrInvalidArgument
	}
	if s.FailBufferCreates > 0 {
		s.FailBufferCreates--
		if s.FailBufferCreates == 0 {
			return nil, fmt.Errorf("injected buffer failure: %w", metadata.ErrResourceCreation)
		}
	}
	data := make([]byte, desc.Size)
	copy(data, desc.InitialData)
	s.LiveBuffers++
	return &metadata.Buffer{
		ID:           s.allocID(),
		Size:         desc.Size,
		Usage:        desc.Usage,
		Memory:       desc.Memory,
		Label:        defaultLabel("buffer", desc.Label),
		Generation:   1,
		InternalData: &bufferState{data: data},
	}, nil
}

func (b *NullBackend) BufferDestroy(device *metadata.Device, buffer *metadata.Buffer) {
	s := StateOf(device)
	if s == nil || buffer == nil || buffer.Generation == metadata.InvalidID {
		return
	}
	buffer.Generation = metadata.InvalidID
	buffer.InternalData = nil
	s.LiveBuffers--
}

func (b *NullBackend) BufferUpdate(device *metadata.Device, buffer *metadata.Buffer, offset uint64, data []byte) error {
	if _, err := deviceState(device); err != nil {
		return err
	}
	bs, err := liveBuffer(buffer)
	if err != nil {
		return err
	}
	if buffer.Memory == metadata.BufferMemoryGPUOnly {
		return fmt.Errorf("buffer %q is GPU-only: %w", buffer.Label, metadata.ErrInvalidArgument)
	}
	if offset+uint64(len(data)) > buffer.Size {
		return metadata.ErrInvalidArgument
	}
	copy(bs.data[offset:], data)
	return nil
}

func (b *NullBackend) BufferMap(device *metadata.Device, buffer *metadata.Buffer) ([]byte, error) {
	if _, err := deviceState(device); err != nil {
		return nil, err
	}
	bs, err := liveBuffer(buffer)
	if err != nil {
		return nil, err
	}
	if buffer.Memory == metadata.BufferMemoryGPUOnly {
		return nil, fmt.Errorf("buffer %q is GPU-only: %w", buffer.Label, metadata.ErrInvalidArgument)
	}
	bs.mapped = true
	return bs.data, nil
}

func (b *NullBackend) BufferUnmap(device *metadata.Device, buffer *metadata.Buffer) {
	bs, err := liveBuffer(buffer)
	if err != nil {
		return
	}
	bs.mapped = false
}

func liveBuffer(buffer *metadata.Buffer) (*bufferState, error) {
	if buffer == nil || buffer.Generation == metadata.InvalidID {
		return nil, metadata.ErrInvalidArgument
	}
	bs, ok := buffer.InternalData.(*bufferState)
	if !ok {
		return nil, metadata.ErrInvalidArgument
	}
	return bs, nil
}

type textureState struct {
	// levels stores uploaded pixel data keyed by (mip, layer).
	levels map[[2]uint32][]byte
}

func (b *NullBackend) TextureCreate(device *metadata.Device, desc *metadata.TextureDesc) (*metadata.Texture, error) {
	s, err := deviceState(device)
	if err != nil {
		return nil, err
	}
	if desc == nil || desc.Width == 0 || desc.Height == 0 {
		return nil, metadata.ErrInvalidArgument
	}
	depth := desc.Depth
	if depth == 0 {
		depth = 1
	}
	layers := desc.ArrayLayers
	if layers == 0 {
		layers = 1
	}
	full := metadata.FullMipLevels(desc.Width, desc.Height)
	mips := desc.MipLevels
	if mips == 0 {
		mips = full
	}
	if mips > full {
		return nil, fmt.Errorf("%d mip levels for %dx%d: %w", mips, desc.Width, desc.Height, metadata.ErrInvalidArgument)
	}
	s.LiveTextures++
	return &metadata.Texture{
		ID:           s.allocID(),
		Width:        desc.Width,
		Height:       desc.Height,
		Depth:        depth,
		MipLevels:    mips,
		ArrayLayers:  layers,
		Format:       desc.Format,
		Usage:        desc.Usage,
		Label:        defaultLabel("texture", desc.Label),
		Generation:   1,
		InternalData: &textureState{levels: map[[2]uint32][]byte{}},
	}, nil
}

func (b *NullBackend) TextureDestroy(device *metadata.Device, texture *metadata.Texture) {
	s := StateOf(device)
	if s == nil || texture == nil || texture.Generation == metadata.InvalidID {
		return
	}
	texture.Generation = metadata.InvalidID
	texture.InternalData = nil
	s.LiveTextures--
}

func (b *NullBackend) TextureUpload(device *metadata.Device, texture *metadata.Texture, mipLevel, arrayLayer uint32, data []byte) error {
	if _, err := deviceState(device); err != nil {
		return err
	}
	if texture == nil || texture.Generation == metadata.InvalidID {
		return metadata.ErrInvalidArgument
	}
	ts, ok := texture.InternalData.(*textureState)
	if !ok {
		return metadata.ErrInvalidArgument
	}
	if mipLevel >= texture.MipLevels || arrayLayer >= texture.ArrayLayers {
		return metadata.ErrInvalidArgument
	}
	w := metadata.MipDimension(texture.Width, mipLevel)
	h := metadata.MipDimension(texture.Height, mipLevel)
	expected := uint64(w) * uint64(h) * uint64(texture.Depth) * uint64(texture.Format.PixelSize())
	if uint64(len(data)) != expected {
		return fmt.Errorf("mip %d expects %d bytes, got %d: %w", mipLevel, expected, len(data), metadata.ErrInvalidArgument)
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	ts.levels[[2]uint32{mipLevel, arrayLayer}] = stored
	return nil
}

func (b *NullBackend) SamplerCreate(device *metadata.Device, desc *metadata.SamplerDesc) (*metadata.Sampler, error) {
	s, err := deviceState(device)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, metadata.ErrInvalidArgument
	}
	s.LiveSamplers++
	return &metadata.Sampler{
		ID:         s.allocID(),
		Label:      defaultLabel("sampler", desc.Label),
		Generation: 1,
	}, nil
}

func (b *NullBackend) SamplerDestroy(device *metadata.Device, sampler *metadata.Sampler) {
	s := StateOf(device)
	if s == nil || sampler == nil || sampler.Generation == metadata.InvalidID {
		return
	}
	sampler.Generation = metadata.InvalidID
	s.LiveSamplers--
}

func (b *NullBackend) ShaderModuleCreate(device *metadata.Device, desc *metadata.ShaderModuleDesc) (*metadata.ShaderModule, error) {
	s, err := deviceState(device)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, metadata.ErrInvalidArgument
	}
	if desc.SourceType.IsText() {
		if desc.Source == "" {
			return nil, fmt.Errorf("empty shader source: %w", metadata.ErrShaderCompilation)
		}
	} else {
		if len(desc.Bytecode) == 0 {
			return nil, fmt.Errorf("empty shader bytecode: %w", metadata.ErrShaderCompilation)
		}
		if desc.SourceType == metadata.ShaderSourceSPIRV && !metadata.ValidSPIRV(desc.Bytecode) {
			return nil, fmt.Errorf("bad SPIR-V magic: %w", metadata.ErrShaderCompilation)
		}
	}
	entry := desc.EntryPoint
	if entry == "" {
		entry = "main"
	}
	s.LiveShaderModules++
	return &metadata.ShaderModule{
		ID:         s.allocID(),
		Stage:      desc.Stage,
		EntryPoint: entry,
		Label:      defaultLabel("shader", desc.Label),
		Generation: 1,
	}, nil
}

func (b *NullBackend) ShaderModuleDestroy(device *metadata.Device, module *metadata.ShaderModule) {
	s := StateOf(device)
	if s == nil || module == nil || module.Generation == metadata.InvalidID {
		return
	}
	module.Generation = metadata.InvalidID
	s.LiveShaderModules--
}

func (b *NullBackend) ShaderProgramCreate(device *metadata.Device, desc *metadata.ShaderProgramDesc) (*metadata.ShaderProgram, error) {
	s, err := deviceState(device)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, metadata.ErrInvalidArgument
	}
	render := desc.Vertex != nil && desc.Fragment != nil
	compute := desc.Compute != nil
	if !render && !compute {
		return nil, metadata.ErrInvalidArgument
	}
	s.LiveShaderPrograms++
	return &metadata.ShaderProgram{
		ID:         s.allocID(),
		Label:      defaultLabel("program", desc.Label),
		Generation: 1,
	}, nil
}

func (b *NullBackend) ShaderProgramDestroy(device *metadata.Device, program *metadata.ShaderProgram) {
	s := StateOf(device)
	if s == nil || program == nil || program.Generation == metadata.InvalidID {
		return
	}
	program.Generation = metadata.InvalidID
	s.LiveShaderPrograms--
}

func (b *NullBackend) MeshCreate(device *metadata.Device, desc *metadata.MeshDesc) (*metadata.Mesh, error) {
	s, err := deviceState(device)
	if err != nil {
		return nil, err
	}
	if desc == nil || len(desc.Data.Vertices) == 0 {
		return nil, metadata.ErrInvalidArgument
	}

	vb, err := b.BufferCreate(device, &metadata.BufferDesc{
		Size:        uint64(len(desc.Data.Vertices)) * metadata.VertexSize,
		Usage:       metadata.BufferUsageVertex | metadata.BufferUsageTransferDst,
		Memory:      metadata.BufferMemoryGPUOnly,
		InitialData: packVertices(desc.Data.Vertices),
		Label:       defaultLabel("mesh", desc.Label) + ":vb",
	})
	if err != nil {
		return nil, err
	}

	var ib *metadata.Buffer
	if len(desc.Data.Indices) > 0 {
		ib, err = b.BufferCreate(device, &metadata.BufferDesc{
			Size:        uint64(len(desc.Data.Indices)),
			Usage:       metadata.BufferUsageIndex | metadata.BufferUsageTransferDst,
			Memory:      metadata.BufferMemoryGPUOnly,
			InitialData: desc.Data.Indices,
			Label:       defaultLabel("mesh", desc.Label) + ":ib",
		})
		if err != nil {
			// Mesh creation is atomic: unwind the vertex buffer.
			b.BufferDestroy(device, vb)
			return nil, err
		}
	}

	s.LiveMeshes++
	return &metadata.Mesh{
		ID:           s.allocID(),
		VertexBuffer: vb,
		IndexBuffer:  ib,
		VertexCount:  uint32(len(desc.Data.Vertices)),
		IndexCount:   desc.Data.IndexCount(),
		IndexFormat:  desc.Data.IndexFormat,
		Topology:     desc.Data.Topology,
		Submeshes:    desc.Submeshes,
		Bounds:       desc.Bounds,
		Label:        defaultLabel("mesh", desc.Label),
		Generation:   1,
	}, nil
}

func (b *NullBackend) MeshDestroy(device *metadata.Device, mesh *metadata.Mesh) {
	s := StateOf(device)
	if s == nil || mesh == nil || mesh.Generation == metadata.InvalidID {
		return
	}
	b.BufferDestroy(device, mesh.VertexBuffer)
	b.BufferDestroy(device, mesh.IndexBuffer)
	mesh.Generation = metadata.InvalidID
	s.LiveMeshes--
}

func (b *NullBackend) MaterialCreate(device *metadata.Device, desc *metadata.MaterialDesc) (*metadata.Material, error) {
	s, err := deviceState(device)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, metadata.ErrInvalidArgument
	}
	s.LiveMaterials++
	return &metadata.Material{
		ID:         s.allocID(),
		Name:       defaultLabel("material", desc.Name),
		Generation: 1,
	}, nil
}

func (b *NullBackend) MaterialDestroy(device *metadata.Device, material *metadata.Material) {
	s := StateOf(device)
	if s == nil || material == nil || material.Generation == metadata.InvalidID {
		return
	}
	material.Generation = metadata.InvalidID
	s.LiveMaterials--
}

// packVertices serializes vertices into the tightly packed standard
// layout: position, normal, tangent, uv0, uv1, color.
func packVertices(vertices []metadata.Vertex) []byte {
	out := make([]byte, 0, len(vertices)*metadata.VertexSize)
	put := func(f float32) {
		out = binary.LittleEndian.AppendUint32(out, math32.Float32bits(f))
	}
	for _, v := range vertices {
		put(v.Position.X)
		put(v.Position.Y)
		put(v.Position.Z)
		put(v.Normal.X)
		put(v.Normal.Y)
		put(v.Normal.Z)
		put(v.Tangent.X)
		put(v.Tangent.Y)
		put(v.Tangent.Z)
		put(v.Tangent.W)
		put(v.Texcoord0.X)
		put(v.Texcoord0.Y)
		put(v.Texcoord1.X)
		put(v.Texcoord1.Y)
		put(v.Color.R)
		put(v.Color.G)
		put(v.Color.B)
		put(v.Color.A)
	}
	return out
}
