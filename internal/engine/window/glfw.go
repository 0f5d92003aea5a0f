package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/hammerview/internal/engine/input"
	"github.com/Faultbox/hammerview/internal/logger"
)

// GLFWPlatform wraps a GLFW window. Callbacks are queued and handed out by PollEvents.
type GLFWPlatform struct {
	config Config
	w      *glfw.Window
	queue  eventQueue
}

// NewGLFW creates a GLFW window with an OpenGL 4.1 core context and a disabled cursor.
func NewGLFW(cfg Config) (*GLFWPlatform, error) {
	runtime.LockOSThread()

	logger.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init failed: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	if cfg.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window failed: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	p := &GLFWPlatform{config: cfg, w: win}

	win.SetCloseCallback(func(*glfw.Window) {
		p.queue.push(input.Event{Type: input.EventQuit})
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		p.queue.push(input.Event{Type: input.EventWindowResize, Width: w, Height: h})
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		p.queue.push(input.Event{Type: input.EventMouseMove, CursorX: x, CursorY: y})
	})
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		p.queue.push(input.Event{Type: input.EventScroll, ScrollY: yoff})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k := translateKey(key)
		if k == input.KeyUnknown {
			return
		}
		switch action {
		case glfw.Press:
			p.queue.push(input.Event{Type: input.EventKeyDown, Key: k})
		case glfw.Release:
			p.queue.push(input.Event{Type: input.EventKeyUp, Key: k})
		}
	})

	glfw.SetTime(0)

	logger.Info("window created",
		zap.String("backend", BackendGLFW),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("vsync", cfg.VSync),
	)
	return p, nil
}

// PollEvents runs GLFW callbacks and returns what they queued.
func (p *GLFWPlatform) PollEvents() []input.Event {
	p.queue.reset()
	glfw.PollEvents()
	return p.queue.events
}

// Time returns seconds since the window was created.
func (p *GLFWPlatform) Time() float64 { return glfw.GetTime() }

// SwapBuffers swaps the OpenGL buffers.
func (p *GLFWPlatform) SwapBuffers() { p.w.SwapBuffers() }

// DrawableSize returns the framebuffer size in pixels.
func (p *GLFWPlatform) DrawableSize() (int, int) { return p.w.GetFramebufferSize() }

// ShouldClose reports whether a close was requested.
func (p *GLFWPlatform) ShouldClose() bool { return p.w.ShouldClose() }

// SetShouldClose sets the close flag.
func (p *GLFWPlatform) SetShouldClose(v bool) { p.w.SetShouldClose(v) }

// Close destroys the window and terminates GLFW.
func (p *GLFWPlatform) Close() {
	logger.Info("closing window")
	p.w.Destroy()
	glfw.Terminate()
}

func translateKey(k glfw.Key) input.Key {
	switch k {
	case glfw.KeyUp:
		return input.KeyUp
	case glfw.KeyDown:
		return input.KeyDown
	case glfw.KeyLeft:
		return input.KeyLeft
	case glfw.KeyRight:
		return input.KeyRight
	case glfw.KeyW:
		return input.KeyW
	case glfw.KeyA:
		return input.KeyA
	case glfw.KeyS:
		return input.KeyS
	case glfw.KeyD:
		return input.KeyD
	case glfw.KeyEscape:
		return input.KeyEscape
	case glfw.KeyF12:
		return input.KeyF12
	default:
		return input.KeyUnknown
	}
}
