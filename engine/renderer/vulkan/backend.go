// Package vulkan is the Vulkan backend. Device bring-up is real:
// instance, surface, physical device selection, logical device and
// capability reporting. Swapchain management, resources and command
// recording are not implemented yet and report ErrBackendNotSupported.
package vulkan

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"

	"github.com/ZiedYousfi/candidengine/engine/core"
	"github.com/ZiedYousfi/candidengine/engine/renderer"
	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

func init() {
	renderer.Register(New())
}

type VulkanBackend struct{}

func New() *VulkanBackend {
	return &VulkanBackend{}
}

func (b *VulkanBackend) Name() string {
	return "Vulkan"
}

func (b *VulkanBackend) Type() metadata.BackendType {
	return metadata.BackendVulkan
}

// deviceState is the backend-private payload of a Device handle.
type deviceState struct {
	instance       vk.Instance
	surface        vk.Surface
	physicalDevice vk.PhysicalDevice
	device         vk.Device
	graphicsQueue  vk.Queue
	graphicsFamily uint32
	limits         metadata.DeviceLimits
}

func (b *VulkanBackend) DeviceCreate(desc *metadata.DeviceDesc) (*metadata.Device, error) {
	if desc == nil {
		return nil, metadata.ErrInvalidArgument
	}
	window, ok := desc.NativeWindow.(*glfw.Window)
	if !ok || window == nil {
		return nil, fmt.Errorf("vulkan needs a glfw window: %w", metadata.ErrInvalidArgument)
	}

	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		return nil, fmt.Errorf("no vulkan loader: %w", metadata.ErrBackendNotSupported)
	}
	vk.SetGetInstanceProcAddr(procAddr)
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vulkan init: %v: %w", err, metadata.ErrBackendNotSupported)
	}

	instance, err := createInstance(desc, window)
	if err != nil {
		return nil, err
	}

	surfacePtr, err := window.CreateWindowSurface(instance, nil)
	if err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, fmt.Errorf("surface creation: %v: %w", err, metadata.ErrResourceCreation)
	}
	surface := vk.SurfaceFromPointer(surfacePtr)

	s := &deviceState{instance: instance, surface: surface}
	if err := s.pickPhysicalDevice(); err != nil {
		vk.DestroySurface(instance, surface, nil)
		vk.DestroyInstance(instance, nil)
		return nil, err
	}
	if err := s.createLogicalDevice(); err != nil {
		vk.DestroySurface(instance, surface, nil)
		vk.DestroyInstance(instance, nil)
		return nil, err
	}

	core.LogInfo("vulkan device created at %dx%d", desc.Width, desc.Height)
	return &metadata.Device{
		Backend:      metadata.BackendVulkan,
		Width:        desc.Width,
		Height:       desc.Height,
		InternalData: s,
	}, nil
}

func createInstance(desc *metadata.DeviceDesc, window *glfw.Window) (vk.Instance, error) {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   safeString(desc.AppName),
		PEngineName:        safeString("Candid"),
	}

	extensions := []string{"VK_KHR_surface"}
	extensions = append(extensions, window.GetRequiredInstanceExtensions()...)
	if runtime.GOOS == "darwin" {
		extensions = append(extensions,
			"VK_KHR_portability_enumeration",
			"VK_KHR_get_physical_device_properties2",
		)
	}

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: safeStrings(extensions),
	}
	if runtime.GOOS == "darwin" {
		createInfo.Flags |= 1 // portability enumeration
	}

	var layers []string
	if desc.DebugMode && validationLayerAvailable() {
		layers = []string{"VK_LAYER_KHRONOS_validation"}
	}
	createInfo.EnabledLayerCount = uint32(len(layers))
	createInfo.PpEnabledLayerNames = safeStrings(layers)

	var instance vk.Instance
	if res := vk.CreateInstance(&createInfo, nil, &instance); res != vk.Success {
		return nil, fmt.Errorf("instance creation: %s: %w", resultString(res), resultError(res))
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, fmt.Errorf("instance proc load: %v: %w", err, metadata.ErrBackendNotSupported)
	}
	return instance, nil
}

func validationLayerAvailable() bool {
	var count uint32
	if res := vk.EnumerateInstanceLayerProperties(&count, nil); res != vk.Success {
		return false
	}
	layers := make([]vk.LayerProperties, count)
	if res := vk.EnumerateInstanceLayerProperties(&count, layers); res != vk.Success {
		return false
	}
	for i := range layers {
		layers[i].Deref()
		if cString(layers[i].LayerName[:]) == "VK_LAYER_KHRONOS_validation" {
			return true
		}
	}
	return false
}

func (b *VulkanBackend) DeviceDestroy(device *metadata.Device) {
	if device == nil {
		return
	}
	s, _ := device.InternalData.(*deviceState)
	if s == nil {
		return
	}
	if s.device != nil {
		vk.DeviceWaitIdle(s.device)
		vk.DestroyDevice(s.device, nil)
	}
	if s.surface != vk.NullSurface {
		vk.DestroySurface(s.instance, s.surface, nil)
	}
	if s.instance != nil {
		vk.DestroyInstance(s.instance, nil)
	}
	device.InternalData = nil
}

func (b *VulkanBackend) DeviceLimits(device *metadata.Device) metadata.DeviceLimits {
	if device == nil {
		return metadata.DeviceLimits{}
	}
	s, _ := device.InternalData.(*deviceState)
	if s == nil {
		return metadata.DeviceLimits{}
	}
	return s.limits
}
