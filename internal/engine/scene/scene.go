package scene

import (
	"github.com/Faultbox/hammerview/internal/engine/animation"
	"github.com/Faultbox/hammerview/pkg/math"
)

// Draw counts fixed by the static mesh tables.
const (
	PlaneVertices    = 36
	BaseVertices     = 90
	HammerVertices   = 108
	CylinderVertices = 96
)

var zAxis = math.Vec3{X: 0, Y: 0, Z: 1}

// DefaultParts returns the assembly in draw order: plane, base, hammer, pivot.
func DefaultParts() []Part {
	return []Part{
		{
			Name:        "plane",
			Mesh:        "plane",
			VertexCount: PlaneVertices,
			Material:    MaterialGround,
			Base:        Recipe{Scale(2, 2, 2)},
		},
		{
			Name:        "base",
			Mesh:        "base",
			VertexCount: BaseVertices,
			Material:    MaterialFigure,
			Base:        Recipe{Scale(2, 1.5, 2)},
		},
		{
			Name:        "hammer",
			Mesh:        "hammer",
			VertexCount: HammerVertices,
			Material:    MaterialFigure,
			Base: Recipe{
				Scale(2, 1.5, 2),
				Rotate(0.13, zAxis),
			},
			Swing: Recipe{
				Rotate(-0.13, zAxis),
			},
		},
		{
			Name:        "cylinder",
			Mesh:        "cylinder",
			VertexCount: CylinderVertices,
			Material:    MaterialFigure,
			Base: Recipe{
				Scale(2, 1.5, 2),
				Rotate(59.75, zAxis),
				Translate(-0.545, -0.29, 0),
			},
			// Pulls the cylinder back onto the hammer's pivot axis.
			Swing: Recipe{
				Rotate(-59.75, zAxis),
				Translate(-0.53, -0.31, 0),
			},
		},
	}
}

// Draw is one draw call of a frame.
type Draw struct {
	Part  *Part
	Model math.Mat4
}

// Frame is everything the renderer needs for one frame.
type Frame struct {
	View       math.Mat4
	Projection math.Mat4
	ViewPos    math.Vec3
	Phase      animation.Phase
	Draws      []Draw
}

// Scene is the fixed, ordered list of parts.
type Scene struct {
	parts []Part
	draws []Draw
}

// New creates a scene from parts, kept in the given order.
func New(parts []Part) *Scene {
	return &Scene{
		parts: parts,
		draws: make([]Draw, 0, len(parts)),
	}
}

// Plan composes every part's model matrix for the given phase.
// The returned frame's Draws slice is reused by the next call.
func (s *Scene) Plan(view, projection math.Mat4, viewPos math.Vec3, phase animation.Phase) Frame {
	s.draws = s.draws[:0]
	for i := range s.parts {
		p := &s.parts[i]
		s.draws = append(s.draws, Draw{Part: p, Model: p.Model(phase)})
	}
	return Frame{
		View:       view,
		Projection: projection,
		ViewPos:    viewPos,
		Phase:      phase,
		Draws:      s.draws,
	}
}
