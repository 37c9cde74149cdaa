package impostor

import (
	"runtime"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/tibogot/greenwood/internal/engine/mesh"
	"github.com/tibogot/greenwood/internal/logger"
)

// newTestGLContext creates a hidden window with a GL 4.1 core context, or
// skips the test when the host has no usable video backend.
func newTestGLContext(t *testing.T) func() {
	t.Helper()
	runtime.LockOSThread()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		t.Skipf("No video backend available: %v", err)
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	win, err := sdl.CreateWindow("bake test", sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED, 64, 64, sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN)
	if err != nil {
		sdl.Quit()
		t.Skipf("No GL window available: %v", err)
	}

	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		sdl.Quit()
		t.Skipf("No GL 4.1 context available: %v", err)
	}

	if err := gl.Init(); err != nil {
		sdl.GLDeleteContext(ctx)
		win.Destroy()
		sdl.Quit()
		t.Skipf("Loading GL functions failed: %v", err)
	}

	if logger.Log == nil {
		_ = logger.InitWithFileConfig("error", logger.FileConfig{}, false)
	}

	return func() {
		sdl.GLDeleteContext(ctx)
		win.Destroy()
		sdl.Quit()
		runtime.UnlockOSThread()
	}
}

// readCellAlphaCounts attaches the texture to a scratch framebuffer and
// counts the pixels with nonzero alpha in every grid cell.
func readCellAlphaCounts(t *testing.T, tex uint32, cfg AtlasConfig) [][]int {
	t.Helper()
	size := int32(cfg.TextureSize)

	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	defer gl.DeleteFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)

	pixels := make([]byte, size*size*4)
	gl.ReadPixels(0, 0, size, size, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	n := cfg.SpritesPerSide
	counts := make([][]int, n)
	for j := 0; j < n; j++ {
		counts[j] = make([]int, n)
		for i := 0; i < n; i++ {
			x, y, w, h := CellViewport(i, j, n, cfg.TextureSize)
			for py := y; py < y+h; py++ {
				for px := x; px < x+w; px++ {
					if pixels[(py*size+px)*4+3] != 0 {
						counts[j][i]++
					}
				}
			}
		}
	}
	return counts
}

func TestBakeFlatQuadFillsEveryCell(t *testing.T) {
	cleanup := newTestGLContext(t)
	defer cleanup()

	cfg := AtlasConfig{
		TextureSize:    64,
		SpritesPerSide: 2,
		AlphaTest:      0.5,
		Hemisphere:     false,
		CameraMargin:   1.05,
		// A bare quad is exactly what the degenerate filter rejects, so
		// both thresholds must be zeroed for this bake.
		MinVertexCount: 0,
		FlatRatio:      0,
	}

	baker, err := NewBaker(cfg)
	if err != nil {
		t.Fatalf("NewBaker: %v", err)
	}
	defer baker.Destroy()

	root := mesh.NewNode("quad")
	root.Mesh = mesh.NewQuad(2, mesh.DefaultMaterial())

	atlas, err := baker.Bake(root)
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	defer atlas.Dispose()

	counts := readCellAlphaCounts(t, atlas.Albedo, cfg)
	_, _, w, h := CellViewport(0, 0, 2, cfg.TextureSize)
	cellPixels := int(w * h)

	for j := 0; j < 2; j++ {
		for i := 0; i < 2; i++ {
			got := counts[j][i]
			if got == 0 {
				t.Errorf("cell (%d,%d) is empty, every view direction must see the quad", i, j)
			}
			if got == cellPixels {
				t.Errorf("cell (%d,%d) fully opaque, the quad must not cover the whole cell", i, j)
			}
		}
	}
}
