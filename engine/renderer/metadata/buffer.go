package metadata

// BufferUsage is a bit set describing how a buffer will be used.
type BufferUsage uint32

const (
	BufferUsageVertex BufferUsage = 1 << iota
	BufferUsageIndex
	BufferUsageUniform
	BufferUsageStorage
	BufferUsageTransferSrc
	BufferUsageTransferDst
)

// BufferMemory selects where buffer memory lives and who may touch it.
type BufferMemory uint8

const (
	// BufferMemoryGPUOnly is fast device memory. It cannot be updated or
	// mapped from the CPU; uploading requires a staging transfer.
	BufferMemoryGPUOnly BufferMemory = iota
	// BufferMemoryCPUToGPU is CPU writable, GPU readable. Writable
	// immediately after creation.
	BufferMemoryCPUToGPU
	// BufferMemoryGPUToCPU is GPU writable, CPU readable (readback).
	BufferMemoryGPUToCPU
)

// BufferDesc describes a buffer to create. InitialData, when non-nil, is
// copied into the buffer synchronously during creation; the caller may
// reuse the slice as soon as the call returns.
type BufferDesc struct {
	Size        uint64
	Usage       BufferUsage
	Memory      BufferMemory
	InitialData []byte
	Label       string
}

// Buffer is a backend-owned buffer handle. The embedded fields mirror the
// creation descriptor; InternalData belongs to the owning backend and must
// not be inspected by callers.
type Buffer struct {
	ID         uint32
	Size       uint64
	Usage      BufferUsage
	Memory     BufferMemory
	Label      string
	Generation uint32
	// InternalData is backend-private state.
	InternalData interface{}
}
