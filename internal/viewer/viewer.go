// Package viewer implements the forest viewer application loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/tibogot/greenwood/internal/config"
	"github.com/tibogot/greenwood/internal/engine/camera"
	"github.com/tibogot/greenwood/internal/engine/forest"
	"github.com/tibogot/greenwood/internal/engine/impostor"
	"github.com/tibogot/greenwood/internal/engine/input"
	"github.com/tibogot/greenwood/internal/engine/lighting"
	"github.com/tibogot/greenwood/internal/engine/lod"
	"github.com/tibogot/greenwood/internal/engine/mesh"
	"github.com/tibogot/greenwood/internal/engine/terrain"
	"github.com/tibogot/greenwood/internal/engine/window"
	"github.com/tibogot/greenwood/internal/logger"
	"github.com/tibogot/greenwood/pkg/math"
)

// Viewer owns the window, camera, and forest, and runs the frame loop.
type Viewer struct {
	cfg     *config.Config
	running bool

	window *window.Window
	input  *input.Input
	camera *camera.FlyCamera
	forest *forest.Forest
	ground *terrain.GroundRenderer
	sun    lighting.Sun

	looking bool
}

// New creates the window and GL context, builds the procedural source
// tree, and bakes the forest. The bake runs before the first frame; the
// window shows nothing until it finishes.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{cfg: cfg}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "Greenwood",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	// The ground sampling rate follows the area so hills keep roughly the
	// same world-space detail at any size.
	var height forest.HeightFunc
	if cfg.Forest.TerrainAmplitude > 0 {
		res := int(cfg.Forest.AreaSize/4) + 1
		field := terrain.NewHeightfield(cfg.Forest.Seed, cfg.Forest.AreaSize*1.2, res,
			cfg.Forest.TerrainAmplitude, 4)
		height = field.HeightAt

		v.ground, err = terrain.NewGroundRenderer(field)
		if err != nil {
			v.window.Close()
			return nil, fmt.Errorf("building ground: %w", err)
		}
	}

	v.sun = lighting.NewSun(
		cfg.Lighting.SunLongitude,
		cfg.Lighting.SunLatitude,
		cfg.Lighting.SunColor,
		cfg.Lighting.AmbientColor,
	)

	source := mesh.NewCanopyTree()
	v.forest, err = forest.New(cfg.Forest, v.sun, source, height)
	if err != nil {
		if v.ground != nil {
			v.ground.Destroy()
		}
		v.window.Close()
		return nil, fmt.Errorf("building forest: %w", err)
	}

	v.input = input.New()
	aspect := float32(cfg.Graphics.Width) / float32(cfg.Graphics.Height)
	v.camera = camera.NewFlyCamera(aspect)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)

	return v, nil
}

// Run drives the frame loop until quit.
func (v *Viewer) Run() error {
	v.running = true
	lastTime := time.Now()
	frameCount := 0
	statTimer := time.Now()

	logger.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			break
		}
		v.handleEvents()
		v.handleMovement(dt)

		v.frame()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(statTimer) >= time.Second {
			counts := v.forest.TierCounts()
			v.window.SetTitle(fmt.Sprintf("Greenwood | %d fps | near %d mid %d far %d",
				frameCount, counts[lod.TierNear], counts[lod.TierMid], counts[lod.TierFar]))
			frameCount = 0
			statTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			gl.Viewport(0, 0, int32(event.Width), int32(event.Height))
			v.camera.Aspect = float32(event.Width) / float32(event.Height)

		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_1:
				v.toggleTier(lod.TierNear)
			case sdl.SCANCODE_2:
				v.toggleTier(lod.TierMid)
			case sdl.SCANCODE_3:
				v.toggleTier(lod.TierFar)
			case sdl.SCANCODE_LEFTBRACKET:
				p := v.forest.Params()
				v.forest.SetLODDistances(math.Max(p.MidDistance-10, 10), p.FarDistance)
			case sdl.SCANCODE_RIGHTBRACKET:
				p := v.forest.Params()
				v.forest.SetLODDistances(p.MidDistance+10, p.FarDistance)
			}

		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_RIGHT {
				v.looking = true
				v.window.SetRelativeMouse(true)
			}

		case input.EventMouseUp:
			if event.Button == sdl.BUTTON_RIGHT {
				v.looking = false
				v.window.SetRelativeMouse(false)
			}
		}
	}

	if v.looking {
		dx, dy := v.input.MouseDelta()
		v.camera.HandleLook(dx, dy)
	}
}

func (v *Viewer) toggleTier(t lod.Tier) {
	visible := !v.forest.Params().TierVisible[t]
	v.forest.SetTierVisible(t, visible)
	logger.Info("tier toggled", zap.Int("tier", int(t)), zap.Bool("visible", visible))
}

func (v *Viewer) handleMovement(dt float32) {
	var fwd, right, up float32
	if v.input.IsHeld(sdl.SCANCODE_W) {
		fwd++
	}
	if v.input.IsHeld(sdl.SCANCODE_S) {
		fwd--
	}
	if v.input.IsHeld(sdl.SCANCODE_D) {
		right++
	}
	if v.input.IsHeld(sdl.SCANCODE_A) {
		right--
	}
	if v.input.IsHeld(sdl.SCANCODE_E) || v.input.IsHeld(sdl.SCANCODE_SPACE) {
		up++
	}
	if v.input.IsHeld(sdl.SCANCODE_Q) {
		up--
	}

	speed := float32(1)
	if v.input.IsHeld(sdl.SCANCODE_LSHIFT) {
		speed = 4
	}
	v.camera.HandleMovement(fwd*speed, right*speed, up*speed, dt)
}

// frame classifies instances for the new camera position and draws all
// three tiers.
func (v *Viewer) frame() {
	viewProj := v.camera.ViewProj()
	frustum := camera.FrustumFromViewProj(viewProj)
	v.forest.Update(v.camera.Position, &frustum)

	gl.ClearColor(0.53, 0.71, 0.86, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if v.ground != nil {
		v.ground.Draw(&viewProj, v.sun.Direction, v.sun.Color, v.sun.Ambient)
	}

	v.forest.Draw(impostor.FrameUniforms{
		ViewProj:  viewProj,
		CameraPos: v.camera.Position,
	})
}

// Close releases the forest and the window.
func (v *Viewer) Close() {
	if v.forest != nil {
		v.forest.Dispose()
		v.forest = nil
	}
	if v.ground != nil {
		v.ground.Destroy()
		v.ground = nil
	}
	if v.window != nil {
		v.window.Close()
		v.window = nil
	}
}
