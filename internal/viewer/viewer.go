// Package viewer runs the interactive terrain viewer loop.
package viewer

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/islegen/internal/config"
	"github.com/Faultbox/islegen/internal/engine/camera"
	"github.com/Faultbox/islegen/internal/engine/input"
	"github.com/Faultbox/islegen/internal/engine/lighting"
	"github.com/Faultbox/islegen/internal/engine/renderer"
	"github.com/Faultbox/islegen/internal/engine/scene"
	"github.com/Faultbox/islegen/internal/engine/texture"
	"github.com/Faultbox/islegen/internal/engine/window"
	"github.com/Faultbox/islegen/internal/logger"
	"github.com/Faultbox/islegen/internal/terrain"
	"github.com/Faultbox/islegen/internal/terrain/falloff"
)

// Viewer is the interactive viewer instance.
type Viewer struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	chunks    *scene.ChunkRenderer
	water     *scene.WaterRenderer
	bounds    *scene.BoundsRenderer
	generator *terrain.Generator

	showBounds bool
}

// New creates the window and GL resources and generates the first terrain.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg: cfg,
		log: logger.Named("viewer"),
	}

	v.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	// Window first, it owns the OpenGL context
	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	dw, dh := v.window.GetDrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.chunks, err = scene.NewChunkRenderer()
	if err != nil {
		v.Close()
		return nil, err
	}
	v.chunks.LightDir = lighting.LightDirection(cfg.Lighting.SunLongitude, cfg.Lighting.SunLatitude)
	v.chunks.Ambient = cfg.Lighting.Ambient

	v.water, err = scene.NewWaterRenderer()
	if err != nil {
		v.Close()
		return nil, err
	}

	v.bounds, err = scene.NewBoundsRenderer()
	if err != nil {
		v.Close()
		return nil, err
	}

	v.generator, err = terrain.New(cfg, v.chunks)
	if err != nil {
		v.Close()
		return nil, err
	}

	v.input = input.New()
	v.camera = camera.NewOrbitCamera()

	if err := v.regenerate(true); err != nil {
		v.Close()
		return nil, err
	}

	v.log.Info("viewer initialized")
	return v, nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}

		if err := v.handleEvents(); err != nil {
			return err
		}
		v.updateCamera(float32(dt))
		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dtMs", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() error {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			dw, dh := v.window.GetDrawableSize()
			v.renderer.Resize(dw, dh)

		case input.EventKeyDown:
			if err := v.handleKey(event.Key); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *Viewer) handleKey(key sdl.Scancode) error {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false

	case sdl.SCANCODE_R:
		v.generator.Reseed(v.cfg.Noise.Seed + 1)
		return v.regenerate(false)

	case sdl.SCANCODE_F:
		mode, err := falloff.ParseMode(v.cfg.Falloff.Mode)
		if err != nil {
			return err
		}
		v.generator.SetFalloff(mode.Next())
		return v.regenerate(false)

	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		v.generator.SetMapSize(v.cfg.Terrain.MapSize + 1)
		return v.regenerate(true)

	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		v.generator.SetMapSize(v.cfg.Terrain.MapSize - 1)
		return v.regenerate(true)

	case sdl.SCANCODE_B:
		v.showBounds = !v.showBounds

	case sdl.SCANCODE_P:
		v.screenshot()

	case sdl.SCANCODE_S:
		if sdl.GetModState()&sdl.KMOD_CTRL != 0 {
			if err := v.cfg.Save(); err != nil {
				v.log.Warn("failed to save config", zap.Error(err))
			} else {
				v.log.Info("config saved", zap.String("dir", config.ConfigDir()))
			}
		}
	}
	return nil
}

// regenerate rebuilds the terrain and water. refit recenters the camera.
func (v *Viewer) regenerate(refit bool) error {
	res, err := v.generator.Generate(context.Background())
	if err != nil {
		return fmt.Errorf("generate terrain: %w", err)
	}

	if v.cfg.Water.Enabled {
		w, err := terrain.BuildWater(v.cfg.Water, res.Layout)
		if err != nil {
			return fmt.Errorf("build water: %w", err)
		}
		v.water.SetWater(w)
	}

	v.bounds.SetBoxes(v.chunks.Boxes())

	if refit {
		if lo, hi, ok := v.chunks.Bounds(); ok {
			v.camera.FitToBounds(lo, hi)
		}
	}

	v.window.SetTitle(fmt.Sprintf("%s - seed %d - %s - %dx%d chunks",
		v.cfg.Window.Title, v.cfg.Noise.Seed, v.cfg.Falloff.Mode,
		v.cfg.Terrain.MapSize, v.cfg.Terrain.MapSize))
	return nil
}

func (v *Viewer) updateCamera(dt float32) {
	if dx, dy := v.input.DragDelta(); dx != 0 || dy != 0 {
		v.camera.HandleDrag(dx, dy)
	}
	if wheel := v.input.Wheel(); wheel != 0 {
		v.camera.HandleZoom(wheel)
	}

	keys := sdl.GetKeyboardState()
	var forward, right float32
	if keys[sdl.SCANCODE_W] != 0 {
		forward++
	}
	if keys[sdl.SCANCODE_S] != 0 && sdl.GetModState()&sdl.KMOD_CTRL == 0 {
		forward--
	}
	if keys[sdl.SCANCODE_D] != 0 {
		right++
	}
	if keys[sdl.SCANCODE_A] != 0 {
		right--
	}
	if forward != 0 || right != 0 {
		v.camera.HandleMovement(forward*dt*60, right*dt*60, 0)
	}
}

func (v *Viewer) render() {
	v.renderer.Begin()

	viewProj := v.camera.ProjectionMatrix(v.renderer.Aspect()).Mul(v.camera.ViewMatrix())
	v.chunks.Render(viewProj)
	if v.cfg.Water.Enabled {
		v.water.Render(viewProj)
	}
	if v.showBounds {
		v.bounds.Render(viewProj)
	}
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	img, err := texture.FromPixels(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}

	name := fmt.Sprintf("screenshot_%s.%s", time.Now().Format("2006-01-02_15-04-05"), v.cfg.Preview.Format)
	path := filepath.Join(v.cfg.Preview.OutputDir, name)
	if err := texture.Save(path, img); err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases all viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.generator != nil {
		if err := v.generator.Clear(); err != nil {
			v.log.Warn("failed to clear terrain", zap.Error(err))
		}
	}
	if v.bounds != nil {
		v.bounds.Destroy()
	}
	if v.water != nil {
		v.water.Destroy()
	}
	if v.chunks != nil {
		v.chunks.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
