package assets

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FloatsPerVertex is the interleaved layout of every mesh table:
// position (3), normal (3), texture coordinates (2).
const FloatsPerVertex = 8

// Shader and mesh paths inside the asset tree.
const (
	SceneVertexShader   = "shaders/scene.vert"
	SceneFragmentShader = "shaders/scene.frag"
)

var (
	// ErrVertexCount means the declared count and the table length differ.
	ErrVertexCount = errors.New("vertex count mismatch")
	// ErrVertexStride means a vertex row does not have FloatsPerVertex floats.
	ErrVertexStride = errors.New("wrong number of floats in vertex")
)

// MeshTable is a static triangle list.
type MeshTable struct {
	Name        string      `yaml:"name"`
	VertexCount int         `yaml:"vertex_count"`
	Vertices    [][]float32 `yaml:"vertices"`
}

// MeshPath returns the asset path of the named mesh table.
func MeshPath(name string) string {
	return "meshes/" + name + ".yaml"
}

// DecodeMesh parses and validates a YAML mesh table.
func DecodeMesh(data []byte) (*MeshTable, error) {
	var m MeshTable
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing mesh: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the table shape against its declared vertex count.
func (m *MeshTable) Validate() error {
	if len(m.Vertices) != m.VertexCount {
		return fmt.Errorf("mesh %s: %w: declared %d, found %d",
			m.Name, ErrVertexCount, m.VertexCount, len(m.Vertices))
	}
	for i, v := range m.Vertices {
		if len(v) != FloatsPerVertex {
			return fmt.Errorf("mesh %s vertex %d: %w: got %d",
				m.Name, i, ErrVertexStride, len(v))
		}
	}
	return nil
}

// Interleaved returns the vertex data as one flat slice for GPU upload.
func (m *MeshTable) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for _, v := range m.Vertices {
		out = append(out, v...)
	}
	return out
}

// LoadMesh loads the named mesh table and checks it has exactly want vertices.
func (m *Manager) LoadMesh(name string, want int) (*MeshTable, error) {
	data, err := m.Load(MeshPath(name))
	if err != nil {
		return nil, err
	}
	mesh, err := DecodeMesh(data)
	if err != nil {
		return nil, err
	}
	if mesh.VertexCount != want {
		return nil, fmt.Errorf("mesh %s: %w: draw needs %d, table has %d",
			name, ErrVertexCount, want, mesh.VertexCount)
	}
	return mesh, nil
}
