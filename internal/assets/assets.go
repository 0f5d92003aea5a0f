// Package assets handles loading of shaders, mesh tables and texture files.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

//go:embed meshes/*.yaml shaders/*.vert shaders/*.frag textures/*.png sounds/*.wav
var builtin embed.FS

// Builtin returns the embedded asset tree (meshes/, shaders/, textures/ and sounds/).
func Builtin() fs.FS {
	return builtin
}

// Manager reads asset files from a stack of filesystems. The most recently
// added layer wins, so a directory on disk can override the embedded defaults.
// Successful reads are cached until Close or the next AddLayer.
type Manager struct {
	mu     sync.Mutex
	layers []fs.FS
	cached map[string][]byte
	hits   int
	misses int
}

// NewManager creates a manager with the embedded assets as its base layer.
func NewManager() *Manager {
	return &Manager{
		layers: []fs.FS{builtin},
		cached: make(map[string][]byte),
	}
}

// AddLayer stacks fsys above the existing layers.
func (m *Manager) AddLayer(fsys fs.FS) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layers = append(m.layers, fsys)
	clear(m.cached)
}

// Load reads a file from the highest-priority layer that has it.
func (m *Manager) Load(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if data, ok := m.cached[path]; ok {
		m.hits++
		return data, nil
	}
	m.misses++

	for i := len(m.layers) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.layers[i], path)
		switch {
		case err == nil:
			m.cached[path] = data
			return data, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return nil, fmt.Errorf("asset %s: %w", path, fs.ErrNotExist)
}

// LoadString reads a text asset such as shader source.
func (m *Manager) LoadString(path string) (string, error) {
	data, err := m.Load(path)
	return string(data), err
}

// Stats reports cache hits and misses since the last Close.
func (m *Manager) Stats() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}

// Close drops cached data and resets the counters.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.cached)
	m.hits, m.misses = 0, 0
}
