// Package lighting holds the point lights and pushes them to the shader.
package lighting

import (
	"fmt"

	"github.com/Faultbox/hammerview/pkg/math"
)

// MaxPointLights matches NR_POINT_LIGHTS in the scene fragment shader.
const MaxPointLights = 3

// Material shininess used for every part.
const Shininess float32 = 32.0

// PointLight is a point light with Phong terms and distance attenuation.
type PointLight struct {
	Position math.Vec3
	Ambient  math.Vec3
	Diffuse  math.Vec3
	Specular math.Vec3

	Constant  float32
	Linear    float32
	Quadratic float32
}

// Uniforms is the part of a shader program the lights are written to.
type Uniforms interface {
	SetFloat(name string, v float32)
	SetVec3(name string, v math.Vec3)
}

func gray(v float32) math.Vec3 {
	return math.Vec3{X: v, Y: v, Z: v}
}

// DefaultLights returns the three lights of the scene: left, above and behind.
func DefaultLights() []PointLight {
	return []PointLight{
		{
			Position: math.Vec3{X: 1.95, Y: 1.0, Z: 0.0},
			Ambient:  gray(0.05),
			Diffuse:  gray(0.8),
			Specular: gray(1.0),
			Constant: 1.0, Linear: 0.09, Quadratic: 0.032,
		},
		{
			Position: math.Vec3{X: 0.0, Y: 2.0, Z: 0.0},
			Ambient:  gray(0.05),
			Diffuse:  gray(1.3),
			Specular: gray(1.0),
			Constant: 1.0, Linear: 0.09, Quadratic: 0.032,
		},
		{
			Position: math.Vec3{X: 0.0, Y: 0.05, Z: -1.35},
			Ambient:  gray(0.25),
			Diffuse:  gray(0.8),
			Specular: gray(1.0),
			Constant: 1.0, Linear: 0.09, Quadratic: 0.032,
		},
	}
}

// PointLightBuffer holds the lights for upload.
type PointLightBuffer struct {
	Lights []PointLight
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// SetLights replaces all lights in the buffer.
// Truncates to MaxPointLights if necessary.
func (b *PointLightBuffer) SetLights(lights []PointLight) {
	count := len(lights)
	if count > MaxPointLights {
		count = MaxPointLights
	}
	b.Lights = append(b.Lights[:0], lights[:count]...)
}

// Apply writes every light and the material shininess to u.
func (b *PointLightBuffer) Apply(u Uniforms) {
	u.SetFloat("material.shininess", Shininess)
	for i, l := range b.Lights {
		prefix := fmt.Sprintf("pointLights[%d].", i)
		u.SetVec3(prefix+"position", l.Position)
		u.SetVec3(prefix+"ambient", l.Ambient)
		u.SetVec3(prefix+"diffuse", l.Diffuse)
		u.SetVec3(prefix+"specular", l.Specular)
		u.SetFloat(prefix+"constant", l.Constant)
		u.SetFloat(prefix+"linear", l.Linear)
		u.SetFloat(prefix+"quadratic", l.Quadratic)
	}
}
