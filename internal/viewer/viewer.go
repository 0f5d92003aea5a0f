// Package viewer wires the platform, camera, animation and renderer into the frame loop.
package viewer

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/hammerview/internal/assets"
	"github.com/Faultbox/hammerview/internal/config"
	"github.com/Faultbox/hammerview/internal/engine/animation"
	"github.com/Faultbox/hammerview/internal/engine/audio"
	"github.com/Faultbox/hammerview/internal/engine/camera"
	"github.com/Faultbox/hammerview/internal/engine/debug"
	"github.com/Faultbox/hammerview/internal/engine/input"
	"github.com/Faultbox/hammerview/internal/engine/lighting"
	"github.com/Faultbox/hammerview/internal/engine/renderer"
	"github.com/Faultbox/hammerview/internal/engine/scene"
	"github.com/Faultbox/hammerview/internal/engine/texture"
	"github.com/Faultbox/hammerview/internal/engine/window"
	"github.com/Faultbox/hammerview/internal/logger"
	"github.com/Faultbox/hammerview/pkg/math"
)

// ClearColor is the background colour.
var ClearColor = [4]float32{0.1, 0.1, 0.1, 1.0}

// frameRenderer is the part of renderer.Renderer the loop uses.
type frameRenderer interface {
	Begin()
	DrawFrame(f scene.Frame, lights *lighting.PointLightBuffer) error
	End()
	ReadPixels() ([]byte, int, int)
	Resize(width, height int)
	Aspect() float32
	Close()
}

// ImpactSound is the name the swing impact effect is loaded under.
const ImpactSound = "impact"

// soundPlayer is the part of audio.Manager the loop uses.
type soundPlayer interface {
	Play(name string) error
	Close()
}

// App owns every piece of viewer state. Nothing lives in package globals.
type App struct {
	config *config.Config
	log    *zap.Logger

	platform   window.Platform
	renderer   frameRenderer
	sounds     soundPlayer
	assets     *assets.Manager
	controller *Controller
	driver     *animation.Driver
	scene      *scene.Scene
	lights     *lighting.PointLightBuffer
	shots      *debug.ScreenshotCapture

	lastFrame float64
	frames    int
}

// New creates the window, uploads all GPU resources and builds the scene.
func New(cfg *config.Config) (*App, error) {
	log := logger.Named("viewer")
	log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("backend", cfg.Window.Backend),
	)

	mode, err := animation.ParseMode(cfg.Animation.Mode)
	if err != nil {
		return nil, err
	}

	// Create window (this also creates OpenGL context)
	platform, err := window.New(cfg.Window.Backend, window.Config{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Resizable: cfg.Window.Resizable,
		VSync:     cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	mgr := assets.NewManager()
	if cfg.Assets.Dir != "" {
		mgr.AddLayer(os.DirFS(cfg.Assets.Dir))
	}

	r, err := newRenderer(platform, mgr)
	if err != nil {
		mgr.Close()
		platform.Close()
		return nil, err
	}

	parts := scene.DefaultParts()
	if err := uploadScene(r, mgr, cfg, parts); err != nil {
		r.Close()
		mgr.Close()
		platform.Close()
		return nil, err
	}

	a := assemble(cfg, platform, r, parts, animation.NewDriver(mode, cfg.Animation.Enabled))
	a.assets = mgr
	a.log = log
	if cfg.Audio.Enabled {
		if sounds := newSounds(mgr, cfg); sounds != nil {
			a.sounds = sounds
		}
	}

	log.Info("viewer initialized", zap.Stringer("animation", mode))
	return a, nil
}

// assemble builds the CPU-side state around an existing platform and renderer.
func assemble(cfg *config.Config, platform window.Platform, r frameRenderer, parts []scene.Part, driver *animation.Driver) *App {
	cam := camera.New(math.V3(cfg.Camera.Position))
	cam.SetOrientation(cfg.Camera.Yaw, cfg.Camera.Pitch)
	cam.MovementSpeed = cfg.Camera.MovementSpeed
	cam.MouseSensitivity = cfg.Camera.MouseSensitivity
	cam.Zoom = cfg.Camera.Zoom

	lights := lighting.NewPointLightBuffer()
	lights.SetLights(lighting.DefaultLights())

	state := input.NewState(float64(cfg.Window.Width)/2, float64(cfg.Window.Height)/2)

	return &App{
		config:     cfg,
		log:        logger.Log,
		platform:   platform,
		renderer:   r,
		controller: NewController(cam, state),
		driver:     driver,
		scene:      scene.New(parts),
		lights:     lights,
		shots:      debug.NewScreenshotCapture(cfg.Capture.Dir, cfg.Capture.Prefix, shotFormat(cfg.Capture.Format)),
	}
}

func newRenderer(platform window.Platform, mgr *assets.Manager) (*renderer.Renderer, error) {
	vs, err := mgr.LoadString(assets.SceneVertexShader)
	if err != nil {
		return nil, fmt.Errorf("loading vertex shader: %w", err)
	}
	fs, err := mgr.LoadString(assets.SceneFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("loading fragment shader: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	w, h := platform.DrawableSize()
	r, err := renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		ClearColor: ClearColor,
	}, vs, fs)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return r, nil
}

func uploadScene(r *renderer.Renderer, mgr *assets.Manager, cfg *config.Config, parts []scene.Part) error {
	for _, p := range parts {
		table, err := mgr.LoadMesh(p.Mesh, p.VertexCount)
		if err != nil {
			return err
		}
		if err := r.UploadMesh(p.Mesh, table); err != nil {
			return err
		}
	}

	textures := []struct {
		mat  scene.Material
		path string
	}{
		{scene.MaterialGround, cfg.Assets.PlaneTexture},
		{scene.MaterialFigure, cfg.Assets.FigureTexture},
	}
	for _, t := range textures {
		tex, err := loadTexture(mgr, t.path)
		if err != nil {
			return err
		}
		r.SetTexture(t.mat, tex)
	}
	return nil
}

func loadTexture(mgr *assets.Manager, path string) (*texture.Texture, error) {
	data, err := mgr.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading texture %s: %w", path, err)
	}
	img, format, err := texture.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading texture %s: %w", path, err)
	}
	tex, err := texture.Upload(img)
	if err != nil {
		return nil, fmt.Errorf("uploading texture %s: %w", path, err)
	}
	logger.Debug("texture loaded",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height),
	)
	return tex, nil
}

// newSounds opens the speaker and loads the impact effect.
// Audio is optional, so failures are logged and the viewer runs silent.
func newSounds(mgr *assets.Manager, cfg *config.Config) *audio.Manager {
	data, err := mgr.Load(cfg.Audio.ImpactSound)
	if err != nil {
		logger.Warn("impact sound unavailable", zap.Error(err))
		return nil
	}

	m := audio.New(cfg.Audio.Volume)
	if err := m.Load(ImpactSound, data); err != nil {
		logger.Warn("impact sound unavailable", zap.Error(err))
		return nil
	}
	if err := m.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
		return nil
	}

	samples, _ := m.Loaded(ImpactSound)
	logger.Debug("audio initialized",
		zap.String("sound", cfg.Audio.ImpactSound),
		zap.Int("samples", samples),
		zap.Float64("volume", m.Volume()),
	)
	return m
}

// Run executes the frame loop until the platform is asked to close.
func (a *App) Run() error {
	a.log.Info("starting frame loop")

	a.lastFrame = a.platform.Time()
	fpsTimer := a.lastFrame
	for !a.platform.ShouldClose() {
		now, err := a.step()
		if err != nil {
			return err
		}

		// FPS counter
		a.frames++
		if now-fpsTimer >= 1 {
			a.log.Debug("fps",
				zap.Int("count", a.frames),
				zap.Stringer("phase", a.driver.Phase()),
				zap.Int("transitions", a.driver.Transitions()),
			)
			a.frames = 0
			fpsTimer = now
		}
	}

	a.log.Info("frame loop stopped")
	return nil
}

// step runs one frame: timing, input, camera, animation, planning, draw, present.
func (a *App) step() (float64, error) {
	now := a.platform.Time()
	dt := now - a.lastFrame
	a.lastFrame = now

	// 1. Input
	for _, ev := range a.platform.PollEvents() {
		if ev.Type == input.EventWindowResize {
			a.renderer.Resize(ev.Width, ev.Height)
			continue
		}
		a.controller.HandleEvent(ev)
	}
	if a.controller.QuitRequested() {
		a.platform.SetShouldClose(true)
	}

	// 2. Camera
	a.controller.Update(float32(dt))
	cam := a.controller.Camera()

	// 3. Animation
	prev := a.driver.Phase()
	phase := a.driver.Sample(now)
	if a.sounds != nil && prev == animation.Neutral && phase == animation.Deflected {
		if err := a.sounds.Play(ImpactSound); err != nil {
			a.log.Warn("impact sound failed", zap.Error(err))
		}
	}

	// 4. Transforms
	frame := a.scene.Plan(
		cam.ViewMatrix(),
		cam.ProjectionMatrix(a.renderer.Aspect(), a.config.Camera.Near, a.config.Camera.Far),
		cam.Position,
		phase,
	)

	// 5. Draw
	a.renderer.Begin()
	if err := a.renderer.DrawFrame(frame, a.lights); err != nil {
		return now, fmt.Errorf("render error: %w", err)
	}
	a.renderer.End()

	if a.controller.TakeScreenshotRequest() {
		a.screenshot()
	}

	// 6. Present
	a.platform.SwapBuffers()
	return now, nil
}

// screenshot saves the frame just drawn. Failures are logged only.
func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// shotFormat maps the validated config value; anything unknown falls back to PNG.
func shotFormat(name string) debug.ImageFormat {
	f, err := debug.ParseImageFormat(name)
	if err != nil {
		return debug.FormatPNG
	}
	return f
}

// Camera returns the viewer camera.
func (a *App) Camera() *camera.Camera {
	return a.controller.Camera()
}

// Close releases every resource in one pass.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.sounds != nil {
		a.sounds.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.assets != nil {
		hits, misses := a.assets.Stats()
		a.log.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
		a.assets.Close()
	}
	if a.platform != nil {
		a.platform.Close()
	}
}
