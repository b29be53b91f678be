// Package assets indexes shader and image files on disk and invalidates
// entries when they change, so resources can be re-uploaded hot.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ZiedYousfi/candidengine/engine/assets/loaders"
	"github.com/ZiedYousfi/candidengine/engine/core"
	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

// AssetType classifies a file by what loader handles it.
type AssetType uint8

const (
	AssetNone AssetType = iota
	AssetShader
	AssetImage
)

// TypeForPath classifies a path by extension.
func TypeForPath(path string) AssetType {
	ext := filepath.Ext(path)
	if _, ok := loaders.ShaderSourceTypeForExt(ext); ok {
		return AssetShader
	}
	switch ext {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
		return AssetImage
	}
	return AssetNone
}

// Entry is one indexed asset.
type Entry struct {
	Path string
	Type AssetType
	// Generation increments on every write to the file.
	Generation uint32
	LastSeen   time.Time
}

// InvalidateFunc is called from the watch goroutine when an indexed
// asset changes on disk.
type InvalidateFunc func(entry Entry)

// Manager watches a directory tree and keeps an index of loadable
// assets. Loads go through the typed loaders.
type Manager struct {
	shader loaders.ShaderLoader
	image  loaders.ImageLoader

	mutex   sync.RWMutex
	entries map[string]Entry

	watcher      *fsnotify.Watcher
	onInvalidate InvalidateFunc
	done         chan struct{}
	closeOnce    sync.Once
}

// NewManager creates an idle manager. Call Watch to index a tree.
func NewManager() (*Manager, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	m := &Manager{
		entries: make(map[string]Entry),
		watcher: watcher,
		done:    make(chan struct{}),
	}
	go m.run()
	return m, nil
}

// SetInvalidateFunc installs the change callback. It runs on the watch
// goroutine, so keep it short.
func (m *Manager) SetInvalidateFunc(fn InvalidateFunc) {
	m.mutex.Lock()
	m.onInvalidate = fn
	m.mutex.Unlock()
}

// Watch indexes root and all subdirectories and starts watching them.
func (m *Manager) Watch(root string) error {
	return filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return m.watcher.Add(path)
		}
		m.index(path)
		return nil
	})
}

// Entry returns the indexed entry for a path, if any.
func (m *Manager) Entry(path string) (Entry, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	e, ok := m.entries[path]
	return e, ok
}

// LoadShader loads a shader module descriptor from an indexed or
// arbitrary path.
func (m *Manager) LoadShader(path string) (*metadata.ShaderModuleDesc, error) {
	return m.shader.Load(path)
}

// LoadImage decodes an image into RGBA8 pixels.
func (m *Manager) LoadImage(path string) (*loaders.ImageData, error) {
	return m.image.Load(path)
}

// Close stops the watcher. Safe to call more than once.
func (m *Manager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		close(m.done)
		err = m.watcher.Close()
	})
	return err
}

func (m *Manager) run() {
	for {
		select {
		case e, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			m.handleEvent(e)
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err.Error())
		case <-m.done:
			return
		}
	}
}

func (m *Manager) handleEvent(e fsnotify.Event) {
	if e.Op&fsnotify.Remove != 0 {
		m.mutex.Lock()
		delete(m.entries, e.Name)
		m.mutex.Unlock()
		return
	}
	if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if fi, err := os.Stat(e.Name); err == nil && fi.IsDir() {
		// New subdirectory: watch it too.
		if e.Op&fsnotify.Create != 0 {
			if err := m.watcher.Add(e.Name); err != nil {
				core.LogWarn("asset watcher: add %s: %s", e.Name, err.Error())
			}
		}
		return
	}
	m.index(e.Name)
}

func (m *Manager) index(path string) {
	t := TypeForPath(path)
	if t == AssetNone {
		return
	}
	m.mutex.Lock()
	entry, existed := m.entries[path]
	if existed {
		entry.Generation++
	} else {
		entry = Entry{Path: path, Type: t}
	}
	entry.LastSeen = time.Now()
	m.entries[path] = entry
	fn := m.onInvalidate
	m.mutex.Unlock()

	if existed && fn != nil {
		fn(entry)
	}
}

// ErrNotIndexed is returned by Reload when the path was never indexed.
var ErrNotIndexed = errors.New("asset not indexed")

// Reload loads an indexed shader entry, failing for paths the watcher
// has not seen or that are not shaders.
func (m *Manager) Reload(path string) (*metadata.ShaderModuleDesc, error) {
	entry, ok := m.Entry(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNotIndexed)
	}
	if entry.Type != AssetShader {
		return nil, fmt.Errorf("%s is not a shader: %w", path, metadata.ErrInvalidArgument)
	}
	return m.LoadShader(path)
}
