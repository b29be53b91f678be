package renderer

import (
	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

// Backend is the contract every graphics API implementation fulfills.
// The Renderer dispatches through it and never reaches into backend
// internals; backends keep their private state in the handles'
// InternalData fields.
//
// All operations are single-threaded per device. Destroying a nil
// handle is a no-op, never an error.
type Backend interface {
	Name() string
	Type() metadata.BackendType

	DeviceCreate(desc *metadata.DeviceDesc) (*metadata.Device, error)
	DeviceDestroy(device *metadata.Device)
	DeviceLimits(device *metadata.Device) metadata.DeviceLimits

	SwapchainResize(device *metadata.Device, width, height uint32) error
	SwapchainPresent(device *metadata.Device) error

	BufferCreate(device *metadata.Device, desc *metadata.BufferDesc) (*metadata.Buffer, error)
	BufferDestroy(device *metadata.Device, buffer *metadata.Buffer)
	BufferUpdate(device *metadata.Device, buffer *metadata.Buffer, offset uint64, data []byte) error
	BufferMap(device *metadata.Device, buffer *metadata.Buffer) ([]byte, error)
	BufferUnmap(device *metadata.Device, buffer *metadata.Buffer)

	TextureCreate(device *metadata.Device, desc *metadata.TextureDesc) (*metadata.Texture, error)
	TextureDestroy(device *metadata.Device, texture *metadata.Texture)
	TextureUpload(device *metadata.Device, texture *metadata.Texture, mipLevel, arrayLayer uint32, data []byte) error

	SamplerCreate(device *metadata.Device, desc *metadata.SamplerDesc) (*metadata.Sampler, error)
	SamplerDestroy(device *metadata.Device, sampler *metadata.Sampler)

	ShaderModuleCreate(device *metadata.Device, desc *metadata.ShaderModuleDesc) (*metadata.ShaderModule, error)
	ShaderModuleDestroy(device *metadata.Device, module *metadata.ShaderModule)
	ShaderProgramCreate(device *metadata.Device, desc *metadata.ShaderProgramDesc) (*metadata.ShaderProgram, error)
	ShaderProgramDestroy(device *metadata.Device, program *metadata.ShaderProgram)

	MeshCreate(device *metadata.Device, desc *metadata.MeshDesc) (*metadata.Mesh, error)
	MeshDestroy(device *metadata.Device, mesh *metadata.Mesh)

	MaterialCreate(device *metadata.Device, desc *metadata.MaterialDesc) (*metadata.Material, error)
	MaterialDestroy(device *metadata.Device, material *metadata.Material)

	CmdBegin(device *metadata.Device) (*metadata.CommandBuffer, error)
	CmdEnd(cmd *metadata.CommandBuffer) error
	CmdSubmit(cmd *metadata.CommandBuffer) error

	CmdBeginRenderPass(cmd *metadata.CommandBuffer, clearColor *metadata.Color) error
	CmdEndRenderPass(cmd *metadata.CommandBuffer) error

	CmdSetViewport(cmd *metadata.CommandBuffer, x, y, width, height float32)
	CmdSetScissor(cmd *metadata.CommandBuffer, x, y, width, height uint32)

	CmdBindPipeline(cmd *metadata.CommandBuffer, program *metadata.ShaderProgram, raster *metadata.RasterizerState, depthStencil *metadata.DepthStencilState, blend *metadata.BlendState) error
	CmdBindVertexBuffer(cmd *metadata.CommandBuffer, slot uint32, buffer *metadata.Buffer, offset uint64) error
	CmdBindIndexBuffer(cmd *metadata.CommandBuffer, buffer *metadata.Buffer, format metadata.IndexFormat, offset uint64) error
	CmdBindUniformBuffer(cmd *metadata.CommandBuffer, slot uint32, buffer *metadata.Buffer, stages metadata.ShaderStage) error
	CmdBindTexture(cmd *metadata.CommandBuffer, slot uint32, texture *metadata.Texture, sampler *metadata.Sampler) error
	CmdPushConstants(cmd *metadata.CommandBuffer, stages metadata.ShaderStage, offset uint32, data []byte) error

	CmdDraw(cmd *metadata.CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) error
	CmdDrawIndexed(cmd *metadata.CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) error
	CmdDrawMesh(cmd *metadata.CommandBuffer, mesh *metadata.Mesh, submesh int, instanceCount uint32) error
	CmdDispatch(cmd *metadata.CommandBuffer, groupsX, groupsY, groupsZ uint32) error
}
