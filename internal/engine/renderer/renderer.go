// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/hammerview/internal/assets"
	"github.com/Faultbox/hammerview/internal/engine/lighting"
	"github.com/Faultbox/hammerview/internal/engine/scene"
	"github.com/Faultbox/hammerview/internal/engine/shader"
	"github.com/Faultbox/hammerview/internal/engine/texture"
	"github.com/Faultbox/hammerview/internal/logger"
)

// Texture units bound to the material samplers.
const (
	diffuseUnit  = 0
	specularUnit = 1
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
}

// Mesh is an uploaded vertex buffer with its vertex count.
type Mesh struct {
	VAO         uint32
	VBO         uint32
	VertexCount int32
}

// Renderer owns the GL state, the scene shader and all GPU resources.
type Renderer struct {
	config Config

	program  *shader.Program
	meshes   map[string]*Mesh
	textures map[scene.Material]*texture.Texture
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, vertexSrc, fragmentSrc string) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		meshes:   make(map[string]*Mesh),
		textures: make(map[scene.Material]*texture.Texture),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	var err error
	r.program, err = shader.New(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.program.Use()
	r.program.SetInt("material.diffuse", diffuseUnit)
	r.program.SetInt("material.specular", specularUnit)

	logger.Debug("shader program created", zap.Uint32("program", r.program.ID()))
	return r, nil
}

// UploadMesh uploads an interleaved position/normal/uv table under name.
func (r *Renderer) UploadMesh(name string, table *assets.MeshTable) error {
	vertices := table.Interleaved()
	if len(vertices) == 0 {
		return fmt.Errorf("mesh %s is empty", name)
	}

	m := &Mesh{VertexCount: int32(table.VertexCount)}
	stride := int32(assets.FloatsPerVertex * 4)

	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	gl.GenBuffers(1, &m.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	// Texture coordinates (location = 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.meshes[name] = m
	logger.Debug("mesh uploaded",
		zap.String("mesh", name),
		zap.Uint32("vao", m.VAO),
		zap.Int32("vertices", m.VertexCount),
	)
	return nil
}

// SetTexture assigns the texture used for a material.
func (r *Renderer) SetTexture(mat scene.Material, tex *texture.Texture) {
	r.textures[mat] = tex
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawFrame pushes the shared uniforms and issues one draw per part, in order.
func (r *Renderer) DrawFrame(f scene.Frame, lights *lighting.PointLightBuffer) error {
	r.program.Use()
	r.program.SetVec3("viewPos", f.ViewPos)
	lights.Apply(r.program)
	r.program.SetMat4("view", f.View)
	r.program.SetMat4("projection", f.Projection)

	bound := scene.Material(-1)
	for _, d := range f.Draws {
		mesh, ok := r.meshes[d.Part.Mesh]
		if !ok {
			return fmt.Errorf("part %s: mesh %s not uploaded", d.Part.Name, d.Part.Mesh)
		}
		if mesh.VertexCount != int32(d.Part.VertexCount) {
			return fmt.Errorf("part %s: mesh has %d vertices, draw needs %d",
				d.Part.Name, mesh.VertexCount, d.Part.VertexCount)
		}

		if d.Part.Material != bound {
			tex, ok := r.textures[d.Part.Material]
			if !ok {
				return fmt.Errorf("part %s: no texture for material %s", d.Part.Name, d.Part.Material)
			}
			tex.Bind(diffuseUnit)
			bound = d.Part.Material
		}

		r.program.SetMat4("model", d.Model)
		gl.BindVertexArray(mesh.VAO)
		gl.DrawArrays(gl.TRIANGLES, 0, mesh.VertexCount)
	}
	gl.BindVertexArray(0)
	return nil
}

// ReadPixels reads the back buffer as RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// End finishes the current frame.
func (r *Renderer) End() {
	// Nothing to do; the platform swaps buffers.
}

// Close releases every GPU resource in one pass.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, m := range r.meshes {
		gl.DeleteVertexArrays(1, &m.VAO)
		gl.DeleteBuffers(1, &m.VBO)
	}
	r.meshes = map[string]*Mesh{}
	for _, t := range r.textures {
		t.Delete()
	}
	r.textures = map[scene.Material]*texture.Texture{}
	if r.program != nil {
		r.program.Delete()
	}
}
