package null

import (
	"fmt"

	"github.com/ZiedYousfi/candidengine/engine/containers"
	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

type cmdPhase uint8

const (
	cmdRecording cmdPhase = iota
	cmdInRenderPass
	cmdEnded
	cmdSubmitted
)

// maxPushConstantBytes matches the guaranteed minimum of the native APIs.
const maxPushConstantBytes = 128

// recordedCommand is one entry in a command buffer's recording, kept so
// tests can assert on what was recorded.
type recordedCommand struct {
	name string
}

type cmdState struct {
	device *DeviceState
	phase  cmdPhase

	clearColor metadata.Color

	pipelineBound  bool
	program        *metadata.ShaderProgram
	raster         metadata.RasterizerState
	depthStencil   metadata.DepthStencilState
	blend          metadata.BlendState
	vertexBuffers  [metadata.MaxVertexBuffers]*metadata.Buffer
	indexBuffer    *metadata.Buffer
	indexFormat    metadata.IndexFormat
	pushConstants  [maxPushConstantBytes]byte
	recorded       *containers.RingQueue[recordedCommand]
	draws          uint64
	dispatches     uint64
}

func cmdOf(cmd *metadata.CommandBuffer) (*cmdState, error) {
	if cmd == nil {
		return nil, metadata.ErrInvalidArgument
	}
	cs, ok := cmd.InternalData.(*cmdState)
	if !ok {
		return nil, metadata.ErrInvalidArgument
	}
	return cs, nil
}

func (cs *cmdState) record(name string) {
	if cs.recorded.IsFull() {
		cs.recorded.Dequeue()
	}
	cs.recorded.Enqueue(recordedCommand{name: name})
}

func (b *NullBackend) CmdBegin(device *metadata.Device) (*metadata.CommandBuffer, error) {
	s, err := deviceState(device)
	if err != nil {
		return nil, err
	}
	if s.openCmd != nil {
		return nil, fmt.Errorf("a command buffer is already open: %w", metadata.ErrInvalidArgument)
	}
	cmd := &metadata.CommandBuffer{
		InternalData: &cmdState{
			device:   s,
			phase:    cmdRecording,
			recorded: containers.NewRingQueue[recordedCommand](1024),
		},
	}
	s.openCmd = cmd
	return cmd, nil
}

func (b *NullBackend) CmdEnd(cmd *metadata.CommandBuffer) error {
	cs, err := cmdOf(cmd)
	if err != nil {
		return err
	}
	switch cs.phase {
	case cmdInRenderPass:
		// An open pass is closed implicitly.
		cs.phase = cmdRecording
		fallthrough
	case cmdRecording:
		cs.phase = cmdEnded
		cs.device.openCmd = nil
		return nil
	default:
		return metadata.ErrInvalidArgument
	}
}

func (b *NullBackend) CmdSubmit(cmd *metadata.CommandBuffer) error {
	cs, err := cmdOf(cmd)
	if err != nil {
		return err
	}
	if cs.phase != cmdEnded {
		return metadata.ErrInvalidArgument
	}
	cs.phase = cmdSubmitted
	cs.device.DrawCalls += cs.draws
	cs.device.Dispatches += cs.dispatches
	// Submission consumes the handle.
	cmd.InternalData = nil
	return nil
}

func (b *NullBackend) CmdBeginRenderPass(cmd *metadata.CommandBuffer, clearColor *metadata.Color) error {
	cs, err := cmdOf(cmd)
	if err != nil {
		return err
	}
	if cs.phase != cmdRecording {
		return metadata.ErrInvalidArgument
	}
	if cs.device.Width == 0 || cs.device.Height == 0 {
		return fmt.Errorf("no drawable at %dx%d: %w", cs.device.Width, cs.device.Height, metadata.ErrResourceCreation)
	}
	if clearColor != nil {
		cs.clearColor = *clearColor
	} else {
		cs.clearColor = metadata.Color{R: 0.2, G: 0.2, B: 0.2, A: 1.0}
	}
	cs.phase = cmdInRenderPass
	cs.record("begin_render_pass")
	return nil
}

func (b *NullBackend) CmdEndRenderPass(cmd *metadata.CommandBuffer) error {
	cs, err := cmdOf(cmd)
	if err != nil {
		return err
	}
	if cs.phase != cmdInRenderPass {
		return metadata.ErrInvalidArgument
	}
	cs.phase = cmdRecording
	cs.record("end_render_pass")
	return nil
}

func (b *NullBackend) CmdSetViewport(cmd *metadata.CommandBuffer, x, y, width, height float32) {
	cs, err := cmdOf(cmd)
	if err != nil {
		return
	}
	cs.record("set_viewport")
}

func (b *NullBackend) CmdSetScissor(cmd *metadata.CommandBuffer, x, y, width, height uint32) {
	cs, err := cmdOf(cmd)
	if err != nil {
		return
	}
	cs.record("set_scissor")
}

func (b *NullBackend) CmdBindPipeline(cmd *metadata.CommandBuffer, program *metadata.ShaderProgram, raster *metadata.RasterizerState, depthStencil *metadata.DepthStencilState, blend *metadata.BlendState) error {
	cs, err := cmdOf(cmd)
	if err != nil {
		return err
	}
	if cs.phase != cmdRecording && cs.phase != cmdInRenderPass {
		return metadata.ErrInvalidArgument
	}
	if program != nil && program.Generation == metadata.InvalidID {
		return metadata.ErrInvalidArgument
	}
	// A nil program binds the built-in default pipeline.
	cs.program = program
	if raster != nil {
		cs.raster = *raster
	} else {
		cs.raster = metadata.DefaultRasterizerState()
	}
	if depthStencil != nil {
		cs.depthStencil = *depthStencil
	} else {
		cs.depthStencil = metadata.DefaultDepthStencilState()
	}
	if blend != nil {
		cs.blend = *blend
	} else {
		cs.blend = metadata.BlendState{WriteMask: 0x0F}
	}
	cs.pipelineBound = true
	cs.record("bind_pipeline")
	return nil
}

func (b *NullBackend) CmdBindVertexBuffer(cmd *metadata.CommandBuffer, slot uint32, buffer *metadata.Buffer, offset uint64) error {
	cs, err := cmdOf(cmd)
	if err != nil {
		return err
	}
	if buffer == nil || buffer.Generation == metadata.InvalidID || slot >= metadata.MaxVertexBuffers {
		return metadata.ErrInvalidArgument
	}
	if buffer.Usage&metadata.BufferUsageVertex == 0 || offset >= buffer.Size {
		return metadata.ErrInvalidArgument
	}
	cs.vertexBuffers[slot] = buffer
	cs.record("bind_vertex_buffer")
	return nil
}

func (b *NullBackend) CmdBindIndexBuffer(cmd *metadata.CommandBuffer, buffer *metadata.Buffer, format metadata.IndexFormat, offset uint64) error {
	cs, err := cmdOf(cmd)
	if err != nil {
		return err
	}
	if buffer == nil || buffer.Generation == metadata.InvalidID {
		return metadata.ErrInvalidArgument
	}
	if buffer.Usage&metadata.BufferUsageIndex == 0 || offset >= buffer.Size {
		return metadata.ErrInvalidArgument
	}
	cs.indexBuffer = buffer
	cs.indexFormat = format
	cs.record("bind_index_buffer")
	return nil
}

func (b *NullBackend) CmdBindUniformBuffer(cmd *metadata.CommandBuffer, slot uint32, buffer *metadata.Buffer, stages metadata.ShaderStage) error {
	cs, err := cmdOf(cmd)
	if err != nil {
		return err
	}
	if buffer == nil || buffer.Generation == metadata.InvalidID || stages == 0 {
		return metadata.ErrInvalidArgument
	}
	if buffer.Usage&metadata.BufferUsageUniform == 0 {
		return metadata.ErrInvalidArgument
	}
	cs.record("bind_uniform_buffer")
	return nil
}

func (b *NullBackend) CmdBindTexture(cmd *metadata.CommandBuffer, slot uint32, texture *metadata.Texture, sampler *metadata.Sampler) error {
	cs, err := cmdOf(cmd)
	if err != nil {
		return err
	}
	if texture == nil || texture.Generation == metadata.InvalidID {
		return metadata.ErrInvalidArgument
	}
	if sampler != nil && sampler.Generation == metadata.InvalidID {
		return metadata.ErrInvalidArgument
	}
	cs.record("bind_texture")
	return nil
}

func (b *NullBackend) CmdPushConstants(cmd *metadata.CommandBuffer, stages metadata.ShaderStage, offset uint32, data []byte) error {
	cs, err := cmdOf(cmd)
	if err != nil {
		return err
	}
	if stages == 0 || int(offset)+len(data) > maxPushConstantBytes {
		return metadata.ErrInvalidArgument
	}
	copy(cs.pushConstants[offset:], data)
	cs.record("push_constants")
	return nil
}

func (b *NullBackend) CmdDraw(cmd *metadata.CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) error {
	cs, err := cmdOf(cmd)
	if err != nil {
		return err
	}
	if cs.phase != cmdInRenderPass {
		return metadata.ErrInvalidArgument
	}
	if vertexCount == 0 || instanceCount == 0 {
		return metadata.ErrInvalidArgument
	}
	cs.draws++
	cs.record("draw")
	return nil
}

func (b *NullBackend) CmdDrawIndexed(cmd *metadata.CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) error {
	cs, err := cmdOf(cmd)
	if err != nil {
		return err
	}
	if cs.phase != cmdInRenderPass {
		return metadata.ErrInvalidArgument
	}
	if indexCount == 0 || instanceCount == 0 {
		return metadata.ErrInvalidArgument
	}
	if cs.indexBuffer == nil {
		return metadata.ErrInvalidArgument
	}
	cs.draws++
	cs.record("draw_indexed")
	return nil
}

func (b *NullBackend) CmdDrawMesh(cmd *metadata.CommandBuffer, mesh *metadata.Mesh, submesh int, instanceCount uint32) error {
	cs, err := cmdOf(cmd)
	if err != nil {
		return err
	}
	if cs.phase != cmdInRenderPass {
		return metadata.ErrInvalidArgument
	}
	if mesh == nil || mesh.Generation == metadata.InvalidID || instanceCount == 0 {
		return metadata.ErrInvalidArgument
	}
	if submesh >= 0 {
		if submesh >= len(mesh.Submeshes) {
			return metadata.ErrInvalidArgument
		}
		cs.draws++
	} else if len(mesh.Submeshes) > 0 {
		cs.draws += uint64(len(mesh.Submeshes))
	} else {
		cs.draws++
	}
	cs.record("draw_mesh")
	return nil
}

func (b *NullBackend) CmdDispatch(cmd *metadata.CommandBuffer, groupsX, groupsY, groupsZ uint32) error {
	cs, err := cmdOf(cmd)
	if err != nil {
		return err
	}
	if cs.phase != cmdRecording && cs.phase != cmdInRenderPass {
		return metadata.ErrInvalidArgument
	}
	if groupsX == 0 || groupsY == 0 || groupsZ == 0 {
		return metadata.ErrInvalidArgument
	}
	cs.dispatches++
	cs.record("dispatch")
	return nil
}
