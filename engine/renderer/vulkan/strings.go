package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

// Vulkan wants null-terminated strings.
func safeString(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\x00' {
		return s + "\x00"
	}
	return s
}

func safeStrings(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = safeString(s)
	}
	return out
}

// cString converts a fixed-size null-terminated byte array field.
func cString(arr []byte) string {
	for i, b := range arr {
		if b == 0 {
			return string(arr[:i])
		}
	}
	return string(arr)
}

func resultString(res vk.Result) string {
	switch res {
	case vk.Success:
		return "VK_SUCCESS"
	case vk.NotReady:
		return "VK_NOT_READY"
	case vk.Timeout:
		return "VK_TIMEOUT"
	case vk.Incomplete:
		return "VK_INCOMPLETE"
	case vk.ErrorOutOfHostMemory:
		return "VK_ERROR_OUT_OF_HOST_MEMORY"
	case vk.ErrorOutOfDeviceMemory:
		return "VK_ERROR_OUT_OF_DEVICE_MEMORY"
	case vk.ErrorInitializationFailed:
		return "VK_ERROR_INITIALIZATION_FAILED"
	case vk.ErrorDeviceLost:
		return "VK_ERROR_DEVICE_LOST"
	case vk.ErrorLayerNotPresent:
		return "VK_ERROR_LAYER_NOT_PRESENT"
	case vk.ErrorExtensionNotPresent:
		return "VK_ERROR_EXTENSION_NOT_PRESENT"
	case vk.ErrorFeatureNotPresent:
		return "VK_ERROR_FEATURE_NOT_PRESENT"
	case vk.ErrorIncompatibleDriver:
		return "VK_ERROR_INCOMPATIBLE_DRIVER"
	case vk.ErrorSurfaceLost:
		return "VK_ERROR_SURFACE_LOST_KHR"
	case vk.ErrorOutOfDate:
		return "VK_ERROR_OUT_OF_DATE_KHR"
	default:
		return "VK_ERROR_UNKNOWN"
	}
}

// resultError maps a VkResult to the error taxonomy.
func resultError(res vk.Result) error {
	switch res {
	case vk.ErrorOutOfHostMemory:
		return metadata.ErrOutOfMemory
	case vk.ErrorDeviceLost:
		return metadata.ErrDeviceLost
	case vk.ErrorIncompatibleDriver, vk.ErrorLayerNotPresent,
		vk.ErrorExtensionNotPresent, vk.ErrorFeatureNotPresent,
		vk.ErrorInitializationFailed:
		return metadata.ErrBackendNotSupported
	case vk.ErrorOutOfDeviceMemory, vk.ErrorSurfaceLost, vk.ErrorOutOfDate:
		return metadata.ErrResourceCreation
	default:
		return metadata.ErrUnknown
	}
}
