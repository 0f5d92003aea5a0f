// Package scene describes the fixed set of rigid parts and builds per-frame draw lists.
package scene

import (
	"github.com/Faultbox/hammerview/internal/engine/animation"
	"github.com/Faultbox/hammerview/pkg/math"
)

// OpKind is the kind of a single transform step.
type OpKind int

const (
	OpScale OpKind = iota
	OpRotate
	OpTranslate
)

// Op is one step of a transform recipe.
type Op struct {
	Kind  OpKind
	Vec   math.Vec3 // scale factors, rotation axis or translation
	Angle float32   // radians, OpRotate only
}

// Scale returns a scale step.
func Scale(x, y, z float32) Op {
	return Op{Kind: OpScale, Vec: math.Vec3{X: x, Y: y, Z: z}}
}

// Rotate returns a rotation step of angle radians around axis.
func Rotate(angle float32, axis math.Vec3) Op {
	return Op{Kind: OpRotate, Vec: axis, Angle: angle}
}

// Translate returns a translation step.
func Translate(x, y, z float32) Op {
	return Op{Kind: OpTranslate, Vec: math.Vec3{X: x, Y: y, Z: z}}
}

// Recipe is an ordered list of steps, each post-multiplied onto the model
// matrix in list order.
type Recipe []Op

// Apply composes the recipe onto m.
func (r Recipe) Apply(m math.Mat4) math.Mat4 {
	for _, op := range r {
		switch op.Kind {
		case OpScale:
			m = m.Scaled(op.Vec)
		case OpRotate:
			m = m.Rotated(op.Angle, op.Vec)
		case OpTranslate:
			m = m.Translated(op.Vec)
		}
	}
	return m
}

// Material selects the texture a part is drawn with.
type Material int

const (
	MaterialGround Material = iota
	MaterialFigure
)

func (m Material) String() string {
	if m == MaterialGround {
		return "ground"
	}
	return "figure"
}

// Part is one rigid piece of the assembly. Parts are not parented to each
// other; pivoting is baked into each part's own recipe.
type Part struct {
	Name        string
	Mesh        string // mesh table name
	VertexCount int    // vertices drawn per frame
	Material    Material

	Base  Recipe // always applied
	Swing Recipe // appended while the swing is deflected
}

// Animated reports whether the swing contributes to this part.
func (p *Part) Animated() bool {
	return len(p.Swing) > 0
}

// Model returns the model matrix for the given swing phase.
func (p *Part) Model(phase animation.Phase) math.Mat4 {
	m := p.Base.Apply(math.Identity())
	if phase == animation.Deflected {
		m = p.Swing.Apply(m)
	}
	return m
}
