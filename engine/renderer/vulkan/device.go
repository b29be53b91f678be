package vulkan

import (
	"fmt"
	"runtime"

	vk "github.com/goki/vulkan"

	"github.com/ZiedYousfi/candidengine/engine/core"
	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

// pickPhysicalDevice selects a GPU with a graphics+present queue family,
// preferring discrete GPUs where the platform has them.
func (s *deviceState) pickPhysicalDevice() error {
	var count uint32
	if res := vk.EnumeratePhysicalDevices(s.instance, &count, nil); res != vk.Success {
		return fmt.Errorf("physical device enumeration: %s: %w", resultString(res), resultError(res))
	}
	if count == 0 {
		return fmt.Errorf("no vulkan devices: %w", metadata.ErrBackendNotSupported)
	}
	devices := make([]vk.PhysicalDevice, count)
	if res := vk.EnumeratePhysicalDevices(s.instance, &count, devices); res != vk.Success {
		return fmt.Errorf("physical device enumeration: %s: %w", resultString(res), resultError(res))
	}

	preferDiscrete := runtime.GOOS != "darwin"
	var fallback vk.PhysicalDevice
	var fallbackFamily uint32
	found := false

	for _, pd := range devices {
		family, ok := graphicsPresentFamily(pd, s.surface)
		if !ok {
			continue
		}
		var props vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(pd, &props)
		props.Deref()

		if preferDiscrete && props.DeviceType == vk.PhysicalDeviceTypeDiscreteGpu {
			s.physicalDevice = pd
			s.graphicsFamily = family
			s.fillLimits(props)
			core.LogInfo("selected discrete gpu %s", cString(props.DeviceName[:]))
			return nil
		}
		if !found {
			fallback = pd
			fallbackFamily = family
			found = true
		}
	}
	if !found {
		return fmt.Errorf("no vulkan device with graphics+present queues: %w", metadata.ErrBackendNotSupported)
	}

	s.physicalDevice = fallback
	s.graphicsFamily = fallbackFamily
	var props vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(fallback, &props)
	props.Deref()
	s.fillLimits(props)
	core.LogInfo("selected gpu %s", cString(props.DeviceName[:]))
	return nil
}

// graphicsPresentFamily finds a queue family that supports both graphics
// work and presentation to the surface.
func graphicsPresentFamily(pd vk.PhysicalDevice, surface vk.Surface) (uint32, bool) {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, nil)
	if count == 0 {
		return 0, false
	}
	families := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, families)

	for i := uint32(0); i < count; i++ {
		families[i].Deref()
		if families[i].QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) == 0 {
			continue
		}
		var supported vk.Bool32
		vk.GetPhysicalDeviceSurfaceSupport(pd, i, surface, &supported)
		if supported == vk.True {
			return i, true
		}
	}
	return 0, false
}

func (s *deviceState) createLogicalDevice() error {
	queueInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: s.graphicsFamily,
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}}

	extensions := []string{vk.KhrSwapchainExtensionName}
	if runtime.GOOS == "darwin" {
		extensions = append(extensions, "VK_KHR_portability_subset")
	}

	var features vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(s.physicalDevice, &features)
	features.Deref()
	enabled := vk.PhysicalDeviceFeatures{
		SamplerAnisotropy: features.SamplerAnisotropy,
	}

	var device vk.Device
	res := vk.CreateDevice(s.physicalDevice, &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: safeStrings(extensions),
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{enabled},
	}, nil, &device)
	if res != vk.Success {
		return fmt.Errorf("logical device creation: %s: %w", resultString(res), resultError(res))
	}
	s.device = device

	var queue vk.Queue
	vk.GetDeviceQueue(device, s.graphicsFamily, 0, &queue)
	s.graphicsQueue = queue
	return nil
}

func (s *deviceState) fillLimits(props vk.PhysicalDeviceProperties) {
	props.Limits.Deref()
	l := props.Limits

	var features vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(s.physicalDevice, &features)
	features.Deref()

	s.limits = metadata.DeviceLimits{
		MaxTextureSize:        l.MaxImageDimension2D,
		MaxCubeMapSize:        l.MaxImageDimensionCube,
		MaxTextureArrayLayers: l.MaxImageArrayLayers,
		MaxVertexAttributes:   l.MaxVertexInputAttributes,
		MaxVertexBuffers:      l.MaxVertexInputBindings,
		MaxUniformBufferSize:  l.MaxUniformBufferRange,
		MaxStorageBufferSize:  l.MaxStorageBufferRange,
		MaxComputeWorkgroupSize: [3]uint32{
			l.MaxComputeWorkGroupSize[0],
			l.MaxComputeWorkGroupSize[1],
			l.MaxComputeWorkGroupSize[2],
		},
		MaxComputeWorkgroups: [3]uint32{
			l.MaxComputeWorkGroupCount[0],
			l.MaxComputeWorkGroupCount[1],
			l.MaxComputeWorkGroupCount[2],
		},
		MaxAnisotropy:          l.MaxSamplerAnisotropy,
		SupportsGeometryShader: features.GeometryShader == vk.True,
		SupportsTessellation:   features.TessellationShader == vk.True,
		SupportsCompute:        true,
	}
}
