package viewer

import (
	"github.com/Faultbox/hammerview/internal/engine/camera"
	"github.com/Faultbox/hammerview/internal/engine/input"
)

// binding maps a key onto a camera movement direction.
type binding struct {
	key input.Key
	dir camera.Direction
}

// DefaultBindings are the arrow keys plus W/A/S/D.
var DefaultBindings = []binding{
	{input.KeyUp, camera.Forward},
	{input.KeyW, camera.Forward},
	{input.KeyDown, camera.Backward},
	{input.KeyS, camera.Backward},
	{input.KeyLeft, camera.Left},
	{input.KeyA, camera.Left},
	{input.KeyRight, camera.Right},
	{input.KeyD, camera.Right},
}

var directions = [...]camera.Direction{camera.Forward, camera.Backward, camera.Left, camera.Right}

// Controller turns input events into camera motion.
type Controller struct {
	camera   *camera.Camera
	input    *input.State
	bindings []binding
	quit     bool
	capture  bool
}

// NewController creates a controller driving cam from state.
func NewController(cam *camera.Camera, state *input.State) *Controller {
	return &Controller{
		camera:   cam,
		input:    state,
		bindings: DefaultBindings,
	}
}

// Camera returns the controlled camera.
func (c *Controller) Camera() *camera.Camera {
	return c.camera
}

// HandleEvent applies one platform event.
func (c *Controller) HandleEvent(ev input.Event) {
	switch ev.Type {
	case input.EventQuit:
		c.quit = true
	case input.EventKeyDown:
		switch ev.Key {
		case input.KeyEscape:
			c.quit = true
		case input.KeyF12:
			c.capture = true
		}
		c.input.Apply(ev)
	case input.EventKeyUp:
		c.input.Apply(ev)
	case input.EventMouseMove:
		dx, dy, ok := c.input.CursorDelta(ev.CursorX, ev.CursorY)
		if ok {
			c.camera.ProcessMouseMovement(float32(dx), float32(dy))
		}
	case input.EventScroll:
		c.camera.ProcessMouseScroll(float32(ev.ScrollY))
	}
}

// Update moves the camera once for every direction that has a held key.
// Directions add up without normalization, so diagonals are faster.
func (c *Controller) Update(deltaTime float32) {
	for _, dir := range directions {
		if c.held(dir) {
			c.camera.ProcessKeyboard(dir, deltaTime)
		}
	}
}

func (c *Controller) held(dir camera.Direction) bool {
	for _, b := range c.bindings {
		if b.dir == dir && c.input.IsDown(b.key) {
			return true
		}
	}
	return false
}

// TakeScreenshotRequest reports and clears a pending screenshot request.
func (c *Controller) TakeScreenshotRequest() bool {
	req := c.capture
	c.capture = false
	return req
}

// QuitRequested reports whether a quit key or close event was seen.
func (c *Controller) QuitRequested() bool {
	return c.quit
}
