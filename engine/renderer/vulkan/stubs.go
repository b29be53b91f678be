package vulkan

import (
	"fmt"

	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

// The operations below are not implemented yet. They fail loudly with
// ErrBackendNotSupported instead of silently doing nothing, so callers
// can fall back to another backend.

func notImplemented(op string) error {
	return fmt.Errorf("vulkan %s not implemented: %w", op, metadata.ErrBackendNotSupported)
}

func (b *VulkanBackend) SwapchainResize(device *metadata.Device, width, height uint32) error {
	return notImplemented("swapchain resize")
}

func (b *VulkanBackend) SwapchainPresent(device *metadata.Device) error {
	return notImplemented("present")
}

func (b *VulkanBackend) BufferCreate(device *metadata.Device, desc *metadata.BufferDesc) (*metadata.Buffer, error) {
	return nil, notImplemented("buffer creation")
}

func (b *VulkanBackend) BufferDestroy(device *metadata.Device, buffer *metadata.Buffer) {}

func (b *VulkanBackend) BufferUpdate(device *metadata.Device, buffer *metadata.Buffer, offset uint64, data []byte) error {
	return notImplemented("buffer update")
}

func (b *VulkanBackend) BufferMap(device *metadata.Device, buffer *metadata.Buffer) ([]byte, error) {
	return nil, notImplemented("buffer map")
}

func (b *VulkanBackend) BufferUnmap(device *metadata.Device, buffer *metadata.Buffer) {}

func (b *VulkanBackend) TextureCreate(device *metadata.Device, desc *metadata.TextureDesc) (*metadata.Texture, error) {
	return nil, notImplemented("texture creation")
}

func (b *VulkanBackend) TextureDestroy(device *metadata.Device, texture *metadata.Texture) {}

func (b *VulkanBackend) TextureUpload(device *metadata.Device, texture *metadata.Texture, mipLevel, arrayLayer uint32, data []byte) error {
	return notImplemented("texture upload")
}

func (b *VulkanBackend) SamplerCreate(device *metadata.Device, desc *metadata.SamplerDesc) (*metadata.Sampler, error) {
	return nil, notImplemented("sampler creation")
}

func (b *VulkanBackend) SamplerDestroy(device *metadata.Device, sampler *metadata.Sampler) {}

func (b *VulkanBackend) ShaderModuleCreate(device *metadata.Device, desc *metadata.ShaderModuleDesc) (*metadata.ShaderModule, error) {
	return nil, notImplemented("shader module creation")
}

func (b *VulkanBackend) ShaderModuleDestroy(device *metadata.Device, module *metadata.ShaderModule) {}

func (b *VulkanBackend) ShaderProgramCreate(device *metadata.Device, desc *metadata.ShaderProgramDesc) (*metadata.ShaderProgram, error) {
	return nil, notImplemented("shader program creation")
}

func (b *VulkanBackend) ShaderProgramDestroy(device *metadata.Device, program *metadata.ShaderProgram) {
}

func (b *VulkanBackend) MeshCreate(device *metadata.Device, desc *metadata.MeshDesc) (*metadata.Mesh, error) {
	return nil, notImplemented("mesh creation")
}

func (b *VulkanBackend) MeshDestroy(device *metadata.Device, mesh *metadata.Mesh) {}

func (b *VulkanBackend) MaterialCreate(device *metadata.Device, desc *metadata.MaterialDesc) (*metadata.Material, error) {
	return nil, notImplemented("material creation")
}

func (b *VulkanBackend) MaterialDestroy(device *metadata.Device, material *metadata.Material) {}

func (b *VulkanBackend) CmdBegin(device *metadata.Device) (*metadata.CommandBuffer, error) {
	return nil, notImplemented("command recording")
}

func (b *VulkanBackend) CmdEnd(cmd *metadata.CommandBuffer) error {
	return notImplemented("command recording")
}

func (b *VulkanBackend) CmdSubmit(cmd *metadata.CommandBuffer) error {
	return notImplemented("command submission")
}

func (b *VulkanBackend) CmdBeginRenderPass(cmd *metadata.CommandBuffer, clearColor *metadata.Color) error {
	return notImplemented("render pass")
}

func (b *VulkanBackend) CmdEndRenderPass(cmd *metadata.CommandBuffer) error {
	return notImplemented("render pass")
}

func (b *VulkanBackend) CmdSetViewport(cmd *metadata.CommandBuffer, x, y, width, height float32) {}

func (b *VulkanBackend) CmdSetScissor(cmd *metadata.CommandBuffer, x, y, width, height uint32) {}

func (b *VulkanBackend) CmdBindPipeline(cmd *metadata.CommandBuffer, program *metadata.ShaderProgram, raster *metadata.RasterizerState, depthStencil *metadata.DepthStencilState, blend *metadata.BlendState) error {
	return notImplemented("pipeline binding")
}

func (b *VulkanBackend) CmdBindVertexBuffer(cmd *metadata.CommandBuffer, slot uint32, buffer *metadata.Buffer, offset uint64) error {
	return notImplemented("vertex buffer binding")
}

func (b *VulkanBackend) CmdBindIndexBuffer(cmd *metadata.CommandBuffer, buffer *metadata.Buffer, format metadata.IndexFormat, offset uint64) error {
	return notImplemented("index buffer binding")
}

func (b *VulkanBackend) CmdBindUniformBuffer(cmd *metadata.CommandBuffer, slot uint32, buffer *metadata.Buffer, stages metadata.ShaderStage) error {
	return notImplemented("uniform buffer binding")
}

func (b *VulkanBackend) CmdBindTexture(cmd *metadata.CommandBuffer, slot uint32, texture *metadata.Texture, sampler *metadata.Sampler) error {
	return notImplemented("texture binding")
}

func (b *VulkanBackend) CmdPushConstants(cmd *metadata.CommandBuffer, stages metadata.ShaderStage, offset uint32, data []byte) error {
	return notImplemented("push constants")
}

func (b *VulkanBackend) CmdDraw(cmd *metadata.CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) error {
	return notImplemented("draw")
}

func (b *VulkanBackend) CmdDrawIndexed(cmd *metadata.CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) error {
	return notImplemented("indexed draw")
}

func (b *VulkanBackend) CmdDrawMesh(cmd *metadata.CommandBuffer, mesh *metadata.Mesh, submesh int, instanceCount uint32) error {
	return notImplemented("mesh draw")
}

func (b *VulkanBackend) CmdDispatch(cmd *metadata.CommandBuffer, groupsX, groupsY, groupsZ uint32) error {
	return notImplemented("compute dispatch")
}
