package camera

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/hammerview/pkg/math"
)

const tolerance = 1e-5

func startCamera() *Camera {
	return New(math.Vec3{X: 0.75, Y: 0.5, Z: -2.0})
}

func TestNewDefaults(t *testing.T) {
	c := startCamera()

	assert.Equal(t, DefaultYaw, c.Yaw)
	assert.Equal(t, DefaultPitch, c.Pitch)
	assert.Equal(t, DefaultSpeed, c.MovementSpeed)
	assert.Equal(t, DefaultZoom, c.Zoom)

	assert.InDelta(t, 0, c.Front.X, tolerance)
	assert.InDelta(t, 0, c.Front.Y, tolerance)
	assert.InDelta(t, -1, c.Front.Z, tolerance)
	assert.InDelta(t, 1, c.Right.X, tolerance)
	assert.InDelta(t, 1, c.Up.Y, tolerance)
}

func TestForwardMovesAlongFront(t *testing.T) {
	c := startCamera()
	front := c.Front

	c.ProcessKeyboard(Forward, 1.0)

	assert.InDelta(t, 0.75+front.X*2.5, c.Position.X, tolerance)
	assert.InDelta(t, 0.75, c.Position.X, tolerance, "x is unchanged when looking down -Z")
	assert.InDelta(t, 0.5, c.Position.Y, tolerance)
	assert.InDelta(t, -4.5, c.Position.Z, tolerance, "z decreases by 2.5")
}

func TestForwardBackwardCancel(t *testing.T) {
	c := startCamera()
	c.ProcessMouseMovement(123, -45)
	start := c.Position

	c.ProcessKeyboard(Forward, 0.016)
	c.ProcessKeyboard(Backward, 0.016)

	assert.InDelta(t, start.X, c.Position.X, tolerance)
	assert.InDelta(t, start.Y, c.Position.Y, tolerance)
	assert.InDelta(t, start.Z, c.Position.Z, tolerance)
}

func TestStrafe(t *testing.T) {
	c := startCamera()

	c.ProcessKeyboard(Right, 1.0)
	assert.InDelta(t, 0.75+2.5, c.Position.X, tolerance)

	c.ProcessKeyboard(Left, 2.0)
	assert.InDelta(t, 0.75-2.5, c.Position.X, tolerance)
}

func TestDiagonalIsNotNormalized(t *testing.T) {
	c := startCamera()
	start := c.Position

	c.ProcessKeyboard(Forward, 1.0)
	c.ProcessKeyboard(Right, 1.0)

	dist := c.Position.Sub(start).Length()
	assert.InDelta(t, 2.5*1.41421356, dist, 1e-4)
}

func TestPitchClamped(t *testing.T) {
	c := startCamera()

	c.ProcessMouseMovement(0, 10000)
	assert.Equal(t, MaxPitch, c.Pitch)

	// Clamping is idempotent at the boundary.
	c.ProcessMouseMovement(0, 10)
	assert.Equal(t, MaxPitch, c.Pitch)

	c.ProcessMouseMovement(0, -1e6)
	assert.Equal(t, -MaxPitch, c.Pitch)
}

func TestRandomLookSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := startCamera()

	for i := 0; i < 5000; i++ {
		c.ProcessMouseMovement(float32(rng.NormFloat64()*500), float32(rng.NormFloat64()*500))

		require.GreaterOrEqual(t, c.Pitch, -MaxPitch)
		require.LessOrEqual(t, c.Pitch, MaxPitch)
		require.InDelta(t, 1.0, c.Front.Length(), tolerance)
		require.InDelta(t, 1.0, c.Right.Length(), tolerance)
		require.InDelta(t, 0.0, c.Front.Dot(c.Up), 1e-4)
	}
}

func TestYawAccumulates(t *testing.T) {
	c := startCamera()
	c.ProcessMouseMovement(900, 0)

	assert.InDelta(t, DefaultYaw+90, c.Yaw, tolerance)
	assert.InDelta(t, 1, c.Front.X, tolerance)
}

func TestViewMatrixIsPure(t *testing.T) {
	c := startCamera()
	c.ProcessMouseMovement(37, 12)

	a := c.ViewMatrix()
	b := c.ViewMatrix()
	assert.Equal(t, a, b)

	eye := a.TransformPoint(c.Position)
	assert.InDelta(t, 0, eye.Length(), tolerance)
}

func TestScrollZoomClamped(t *testing.T) {
	c := startCamera()

	c.ProcessMouseScroll(10)
	assert.Equal(t, float32(35), c.Zoom)

	c.ProcessMouseScroll(100)
	assert.Equal(t, MinZoom, c.Zoom)

	c.ProcessMouseScroll(-100)
	assert.Equal(t, MaxZoom, c.Zoom)
}

func TestSetOrientationClampsPitch(t *testing.T) {
	c := startCamera()
	c.SetOrientation(0, 120)

	assert.Equal(t, MaxPitch, c.Pitch)
	assert.InDelta(t, 1.0, c.Front.Length(), tolerance)
}

func TestProjectionUsesZoom(t *testing.T) {
	c := startCamera()
	p := c.ProjectionMatrix(800.0/600.0, 0.1, 100)
	want := math.Perspective(math.Radians(45), 800.0/600.0, 0.1, 100)

	assert.Equal(t, want, p)
}
