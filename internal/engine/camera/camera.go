// Package camera provides the free-look camera used by the viewer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/hammerview/pkg/math"
)

// Direction is a keyboard movement command.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Defaults for a freshly constructed camera. Angles are in degrees.
const (
	DefaultYaw         float32 = -90.0
	DefaultPitch       float32 = 0.0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45.0

	MaxPitch float32 = 89.0
	MinZoom  float32 = 1.0
	MaxZoom  float32 = 45.0
)

// WorldUp is the fixed world up axis.
var WorldUp = math.Vec3{X: 0, Y: 1, Z: 0}

// Camera is a yaw/pitch free-look camera.
// Front, Right and Up are derived from Yaw and Pitch and are recomputed
// whenever the angles change.
type Camera struct {
	Position math.Vec3
	Front    math.Vec3
	Up       math.Vec3
	Right    math.Vec3

	Yaw   float32 // degrees
	Pitch float32 // degrees, kept in [-MaxPitch, MaxPitch]

	MovementSpeed    float32
	MouseSensitivity float32
	Zoom             float32 // vertical field of view, degrees
}

// New creates a camera at position with default orientation and tuning.
func New(position math.Vec3) *Camera {
	c := &Camera{
		Position:         position,
		Yaw:              DefaultYaw,
		Pitch:            DefaultPitch,
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
		Zoom:             DefaultZoom,
	}
	c.updateVectors()
	return c
}

// SetOrientation sets yaw and pitch (degrees), clamping pitch.
func (c *Camera) SetOrientation(yaw, pitch float32) {
	c.Yaw = yaw
	c.Pitch = clampPitch(pitch)
	c.updateVectors()
}

// ProcessKeyboard moves the camera along its front or right axis by
// MovementSpeed * deltaTime. There are no bounds on the resulting position.
func (c *Camera) ProcessKeyboard(dir Direction, deltaTime float32) {
	velocity := c.MovementSpeed * deltaTime
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.Front.Scale(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Scale(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Scale(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Scale(velocity))
	}
}

// ProcessMouseMovement turns the camera by the given cursor offsets.
func (c *Camera) ProcessMouseMovement(xOffset, yOffset float32) {
	c.Yaw += xOffset * c.MouseSensitivity
	c.Pitch = clampPitch(c.Pitch + yOffset*c.MouseSensitivity)
	c.updateVectors()
}

// ProcessMouseScroll narrows or widens the field of view.
func (c *Camera) ProcessMouseScroll(yOffset float32) {
	c.Zoom -= yOffset
	if c.Zoom < MinZoom {
		c.Zoom = MinZoom
	}
	if c.Zoom > MaxZoom {
		c.Zoom = MaxZoom
	}
}

// ViewMatrix returns the look-at matrix for the current state.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Front), c.Up)
}

// ProjectionMatrix returns a perspective projection using Zoom as the vertical FOV.
func (c *Camera) ProjectionMatrix(aspect, near, far float32) math.Mat4 {
	return math.Perspective(math.Radians(c.Zoom), aspect, near, far)
}

func (c *Camera) updateVectors() {
	yaw := float64(math.Radians(c.Yaw))
	pitch := float64(math.Radians(c.Pitch))

	front := math.Vec3{
		X: float32(gomath.Cos(yaw) * gomath.Cos(pitch)),
		Y: float32(gomath.Sin(pitch)),
		Z: float32(gomath.Sin(yaw) * gomath.Cos(pitch)),
	}
	c.Front = front.Normalize()
	c.Right = c.Front.Cross(WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

func clampPitch(p float32) float32 {
	if p > MaxPitch {
		return MaxPitch
	}
	if p < -MaxPitch {
		return -MaxPitch
	}
	return p
}
