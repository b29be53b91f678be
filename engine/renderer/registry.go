package renderer

import (
	"runtime"
	"sync"

	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

var (
	registryMu sync.RWMutex
	registry   = map[metadata.BackendType]Backend{}
)

// Register makes a backend selectable by type. Backend packages call
// this from init, so a backend compiled into the binary is always
// present. Registering the same type twice replaces the earlier entry.
func Register(b Backend) {
	if b == nil {
		return
	}
	t := b.Type()
	if t <= metadata.BackendAuto || t >= metadata.BackendCount {
		return
	}
	registryMu.Lock()
	registry[t] = b
	registryMu.Unlock()
}

// Get returns the backend registered for t, resolving BackendAuto
// through Preferred. It returns nil when no backend is registered for
// t or t is out of range. Get never mutates the registry.
func Get(t metadata.BackendType) Backend {
	if t == metadata.BackendAuto {
		t = Preferred()
		if t == metadata.BackendAuto {
			return nil
		}
	}
	if t >= metadata.BackendCount {
		return nil
	}
	registryMu.RLock()
	b := registry[t]
	registryMu.RUnlock()
	return b
}

// Preferred picks the best registered backend for the running platform:
// Metal first on darwin, D3D12 first on windows, then Vulkan and WebGPU,
// with the null backend as the last resort. It returns BackendAuto when
// nothing is registered.
func Preferred() metadata.BackendType {
	var order []metadata.BackendType
	switch runtime.GOOS {
	case "darwin":
		order = []metadata.BackendType{metadata.BackendMetal, metadata.BackendVulkan, metadata.BackendWebGPU, metadata.BackendNull}
	case "windows":
		order = []metadata.BackendType{metadata.BackendD3D12, metadata.BackendVulkan, metadata.BackendWebGPU, metadata.BackendNull}
	default:
		order = []metadata.BackendType{metadata.BackendVulkan, metadata.BackendWebGPU, metadata.BackendNull}
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, t := range order {
		if _, ok := registry[t]; ok {
			return t
		}
	}
	return metadata.BackendAuto
}

// IsAvailable reports whether a backend is registered for t. Auto is
// available whenever anything is.
func IsAvailable(t metadata.BackendType) bool {
	if t == metadata.BackendAuto {
		return Preferred() != metadata.BackendAuto
	}
	registryMu.RLock()
	_, ok := registry[t]
	registryMu.RUnlock()
	return ok
}

// Available lists the registered backends in ascending enum order.
func Available() []metadata.BackendType {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]metadata.BackendType, 0, len(registry))
	for t := metadata.BackendType(1); t < metadata.BackendCount; t++ {
		if _, ok := registry[t]; ok {
			out = append(out, t)
		}
	}
	return out
}
