// Package window provides the host platform: window, GL context, clock and input events.
package window

import (
	"fmt"

	"github.com/Faultbox/hammerview/internal/engine/input"
)

// Config holds window configuration.
type Config struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	VSync     bool
}

// Platform is a window with a current OpenGL 4.1 core context.
// All methods must be called from the thread that created it.
type Platform interface {
	// PollEvents drains pending events without blocking.
	PollEvents() []input.Event
	// Time returns monotonic seconds since the platform was created.
	Time() float64
	SwapBuffers()
	// DrawableSize returns the framebuffer size in pixels.
	DrawableSize() (int, int)
	ShouldClose() bool
	SetShouldClose(bool)
	Close()
}

// Backend names.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// New creates a platform using the named backend.
func New(backend string, cfg Config) (Platform, error) {
	switch backend {
	case BackendSDL, "":
		return NewSDL(cfg)
	case BackendGLFW:
		return NewGLFW(cfg)
	default:
		return nil, fmt.Errorf("unknown window backend %q", backend)
	}
}

// eventQueue collects translated events between polls.
type eventQueue struct {
	events []input.Event
}

func (q *eventQueue) reset() {
	q.events = q.events[:0]
}

func (q *eventQueue) push(ev input.Event) {
	q.events = append(q.events, ev)
}

// relativeCursor turns relative motion into absolute cursor positions for
// backends that only report deltas. The first motion is preceded by a move to
// the starting position, so the consumer's first-sample suppression swallows
// the synthetic seed instead of the user's first real movement.
type relativeCursor struct {
	x, y   float64
	seeded bool
}

func newRelativeCursor(width, height int) relativeCursor {
	return relativeCursor{x: float64(width) / 2, y: float64(height) / 2}
}

func (c *relativeCursor) move(q *eventQueue, dx, dy float64) {
	if !c.seeded {
		q.push(input.Event{Type: input.EventMouseMove, CursorX: c.x, CursorY: c.y})
		c.seeded = true
	}
	c.x += dx
	c.y += dy
	q.push(input.Event{Type: input.EventMouseMove, CursorX: c.x, CursorY: c.y})
}
