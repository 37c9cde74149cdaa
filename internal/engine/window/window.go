// Package window handles SDL2 window and OpenGL context creation.
package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/tibogot/greenwood/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps the SDL2 window and OpenGL context.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
}

// New creates a window with an OpenGL 4.1 core context and loads the GL
// function pointers.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Attributes must be set before window creation. 4.1 core is the
	// highest profile available everywhere, macOS included.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
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

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if err := gl.Init(); err != nil {
		w.Close()
		return nil, fmt.Errorf("loading OpenGL functions: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			logger.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.String("gl_version", gl.GoStr(gl.GetString(gl.VERSION))))

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
		w.glContext = nil
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
		w.sdlWindow = nil
	}

	sdl.Quit()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// GetSize returns the current drawable size.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// SetRelativeMouse toggles relative mouse mode for fly-camera look.
func (w *Window) SetRelativeMouse(enabled bool) {
	sdl.SetRelativeMouseMode(enabled)
}
