// Package null implements the backend contract entirely in memory. It
// renders nothing, but tracks resources, buffer contents and command
// buffer state faithfully, which makes it the reference backend for tests
// and for running headless.
package null

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ZiedYousfi/candidengine/engine/renderer"
	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

func init() {
	renderer.Register(New())
}

// NullBackend satisfies renderer.Backend without touching a GPU.
type NullBackend struct{}

func New() *NullBackend {
	return &NullBackend{}
}

func (b *NullBackend) Name() string {
	return "Null"
}

func (b *NullBackend) Type() metadata.BackendType {
	return metadata.BackendNull
}

// DeviceState is the null backend's device bookkeeping. Tests reach it
// through StateOf to observe live-resource counts and inject failures.
type DeviceState struct {
	Width  uint32
	Height uint32

	LiveBuffers        int
	LiveTextures       int
	LiveSamplers       int
	LiveShaderModules  int
	LiveShaderPrograms int
	LiveMeshes         int
	LiveMaterials      int

	DrawCalls       uint64
	Dispatches      uint64
	FramesPresented uint64

	// FailBufferCreates makes the Nth upcoming BufferCreate fail with
	// ErrResourceCreation (1 fails the next create, 2 the one after).
	// Cleared once the failure fires.
	FailBufferCreates int

	hasDepth bool
	nextID   uint32
	openCmd  *metadata.CommandBuffer
}

// StateOf returns the device's internal state, or nil when the device
// was not created by this backend.
func StateOf(device *metadata.Device) *DeviceState {
	if device == nil {
		return nil
	}
	s, _ := device.InternalData.(*DeviceState)
	return s
}

func deviceState(device *metadata.Device) (*DeviceState, error) {
	s := StateOf(device)
	if s == nil {
		return nil, metadata.ErrInvalidArgument
	}
	return s, nil
}

func (b *NullBackend) DeviceCreate(desc *metadata.DeviceDesc) (*metadata.Device, error) {
	if desc == nil {
		return nil, metadata.ErrInvalidArgument
	}
	s := &DeviceState{
		Width:  desc.Width,
		Height: desc.Height,
		nextID: 1,
	}
	s.hasDepth = desc.Width > 0 && desc.Height > 0
	return &metadata.Device{
		Backend:      metadata.BackendNull,
		Width:        desc.Width,
		Height:       desc.Height,
		InternalData: s,
	}, nil
}

func (b *NullBackend) DeviceDestroy(device *metadata.Device) {
	if device == nil {
		return
	}
	device.InternalData = nil
}

func (b *NullBackend) DeviceLimits(device *metadata.Device) metadata.DeviceLimits {
	return metadata.DeviceLimits{
		MaxTextureSize:          16384,
		MaxCubeMapSize:          16384,
		MaxTextureArrayLayers:   2048,
		MaxVertexAttributes:     metadata.MaxVertexAttributes,
		MaxVertexBuffers:        metadata.MaxVertexBuffers,
		MaxUniformBufferSize:    64 * 1024,
		MaxStorageBufferSize:    1 << 28,
		MaxComputeWorkgroupSize: [3]uint32{1024, 1024, 64},
		MaxComputeWorkgroups:    [3]uint32{65535, 65535, 65535},
		MaxAnisotropy:           16,
		SupportsCompute:         true,
	}
}

func (b *NullBackend) SwapchainResize(device *metadata.Device, width, height uint32) error {
	s, err := deviceState(device)
	if err != nil {
		return err
	}
	s.Width = width
	s.Height = height
	device.Width = width
	device.Height = height
	s.hasDepth = width > 0 && height > 0
	return nil
}

func (b *NullBackend) SwapchainPresent(device *metadata.Device) error {
	s, err := deviceState(device)
	if err != nil {
		return err
	}
	s.FramesPresented++
	return nil
}

func (s *DeviceState) allocID() uint32 {
	id := s.nextID
	s.nextID++
	return id
}

// defaultLabel fills in a debug label for resources created without one.
func defaultLabel(kind, label string) string {
	if label != "" {
		return label
	}
	return fmt.Sprintf("%s-%s", kind, uuid.NewString()[:8])
}
