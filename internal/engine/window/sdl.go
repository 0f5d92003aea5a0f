package window

import (
	"fmt"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/hammerview/internal/engine/input"
	"github.com/Faultbox/hammerview/internal/logger"
)

// SDLPlatform wraps an SDL2 window and OpenGL context.
type SDLPlatform struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	start     time.Time
	closing   bool
	queue     eventQueue

	// Virtual cursor accumulated from relative motion while the mouse is captured.
	cursor relativeCursor
}

// NewSDL creates an SDL2 window with an OpenGL context and captures the mouse.
func NewSDL(cfg Config) (*SDLPlatform, error) {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()

	p := &SDLPlatform{
		config: cfg,
		cursor: newRelativeCursor(cfg.Width, cfg.Height),
	}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Set OpenGL attributes BEFORE creating window
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_SHOWN | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}

	var err error
	p.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	p.glContext, err = p.sdlWindow.GLCreateContext()
	if err != nil {
		p.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logger.Warn("failed to set swap interval", zap.Error(err))
	}

	sdl.SetRelativeMouseMode(true)

	p.start = time.Now()

	logger.Info("window created",
		zap.String("backend", BackendSDL),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("vsync", cfg.VSync),
	)
	return p, nil
}

// PollEvents drains the SDL queue and converts events to input events.
func (p *SDLPlatform) PollEvents() []input.Event {
	p.queue.reset()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			p.closing = true
			p.queue.push(input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				w, h := p.DrawableSize()
				p.queue.push(input.Event{Type: input.EventWindowResize, Width: w, Height: h})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			key := translateScancode(e.Keysym.Scancode)
			if key == input.KeyUnknown {
				continue
			}
			typ := input.EventKeyDown
			if e.Type == sdl.KEYUP {
				typ = input.EventKeyUp
			}
			p.queue.push(input.Event{Type: typ, Key: key})

		case *sdl.MouseMotionEvent:
			p.cursor.move(&p.queue, float64(e.XRel), float64(e.YRel))

		case *sdl.MouseWheelEvent:
			p.queue.push(input.Event{Type: input.EventScroll, ScrollY: float64(e.Y)})
		}
	}

	return p.queue.events
}

// Time returns seconds since the window was created.
func (p *SDLPlatform) Time() float64 {
	return time.Since(p.start).Seconds()
}

// SwapBuffers swaps the OpenGL buffers.
func (p *SDLPlatform) SwapBuffers() {
	p.sdlWindow.GLSwap()
}

// DrawableSize returns the framebuffer size in pixels.
func (p *SDLPlatform) DrawableSize() (int, int) {
	w, h := p.sdlWindow.GLGetDrawableSize()
	return int(w), int(h)
}

// ShouldClose reports whether a close was requested.
func (p *SDLPlatform) ShouldClose() bool {
	return p.closing
}

// SetShouldClose sets the close flag.
func (p *SDLPlatform) SetShouldClose(v bool) {
	p.closing = v
}

// Close destroys the window and cleans up SDL2.
func (p *SDLPlatform) Close() {
	logger.Info("closing window")

	sdl.SetRelativeMouseMode(false)
	if p.glContext != nil {
		sdl.GLDeleteContext(p.glContext)
	}
	if p.sdlWindow != nil {
		p.sdlWindow.Destroy()
	}

	sdl.Quit()
}

func translateScancode(sc sdl.Scancode) input.Key {
	switch sc {
	case sdl.SCANCODE_UP:
		return input.KeyUp
	case sdl.SCANCODE_DOWN:
		return input.KeyDown
	case sdl.SCANCODE_LEFT:
		return input.KeyLeft
	case sdl.SCANCODE_RIGHT:
		return input.KeyRight
	case sdl.SCANCODE_W:
		return input.KeyW
	case sdl.SCANCODE_A:
		return input.KeyA
	case sdl.SCANCODE_S:
		return input.KeyS
	case sdl.SCANCODE_D:
		return input.KeyD
	case sdl.SCANCODE_ESCAPE:
		return input.KeyEscape
	case sdl.SCANCODE_F12:
		return input.KeyF12
	default:
		return input.KeyUnknown
	}
}
