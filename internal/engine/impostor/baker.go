package impostor

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/tibogot/greenwood/internal/engine/bounds"
	"github.com/tibogot/greenwood/internal/engine/framebuffer"
	"github.com/tibogot/greenwood/internal/engine/impostor/shaders"
	"github.com/tibogot/greenwood/internal/engine/mesh"
	"github.com/tibogot/greenwood/internal/engine/octahedral"
	"github.com/tibogot/greenwood/internal/engine/shader"
	"github.com/tibogot/greenwood/internal/engine/texture"
	"github.com/tibogot/greenwood/internal/logger"
)

// Baker renders a source hierarchy from every grid direction into the two
// atlas textures. A bake is blocking and all-or-nothing: every cell is
// rendered before the atlas is handed out. Bakes of the same target must
// not overlap; the baker owns no shared global state, so independent Baker
// instances never cross-contaminate (the placeholder texture is scoped per
// baker, not process-wide).
type Baker struct {
	cfg     AtlasConfig
	program *shader.Program
	white   uint32 // placeholder for untextured materials
}

// NewBaker validates the configuration and compiles the bake program.
func NewBaker(cfg AtlasConfig) (*Baker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("atlas config: %w", err)
	}

	program, err := shader.NewProgram(shaders.BakeVertexShader, shaders.BakeFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("bake shader: %w", err)
	}

	return &Baker{
		cfg:     cfg,
		program: program,
		white:   texture.NewSolid(255, 255, 255, 255),
	}, nil
}

// Config returns the baker's atlas configuration.
func (b *Baker) Config() AtlasConfig {
	return b.cfg
}

// Bake renders the target from all grid directions and returns the atlas.
// Fails when no eligible mesh survives the degenerate filter or when the
// offscreen target cannot be allocated; both are fatal for this bake and
// never retried.
func (b *Baker) Bake(root *mesh.Node) (*Atlas, error) {
	opts := b.cfg.filterOptions()

	var placed []mesh.PlacedMesh
	if b.cfg.LargestMeshOnly {
		if p := bounds.LargestMesh(root, opts); p != nil {
			placed = []mesh.PlacedMesh{*p}
		}
	} else {
		for _, p := range root.Meshes() {
			if opts.Eligible(p.Mesh) {
				placed = append(placed, p)
			}
		}
	}
	if len(placed) == 0 {
		return nil, fmt.Errorf("no eligible meshes to bake after degenerate filtering")
	}

	sphere, err := computeBakeSphere(placed)
	if err != nil {
		return nil, err
	}
	sphere = sphere.Inflate(b.cfg.CameraMargin)

	fb, err := framebuffer.NewMRT(int32(b.cfg.TextureSize), int32(b.cfg.TextureSize), 2)
	if err != nil {
		return nil, fmt.Errorf("bake target: %w", err)
	}
	defer fb.Destroy()

	uploaded := make([]*mesh.GLMesh, len(placed))
	for i, p := range placed {
		uploaded[i] = mesh.Upload(p.Mesh)
	}
	defer func() {
		for _, g := range uploaded {
			g.Destroy()
		}
	}()

	restore := fb.BindWithViewport()
	defer restore()

	fb.Clear(0, 0, 0, 0)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)

	b.program.Use()
	b.program.SetFloat("uAOBase", sphere.Center.Y-sphere.Radius)
	b.program.SetFloat("uAOHeight", sphere.Radius*2)
	b.program.SetInt("uTexture", 0)

	n := b.cfg.SpritesPerSide
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			dir := octahedral.DirectionForCell(i, j, n, b.cfg.Hemisphere)
			cam := NewCaptureCamera(sphere, dir)

			x, y, w, h := CellViewport(i, j, n, b.cfg.TextureSize)
			gl.Viewport(x, y, w, h)
			b.program.SetMat4("uViewProj", cam.ViewProj.Ptr())

			for k, g := range uploaded {
				world := placed[k].World
				b.program.SetMat4("uModel", world.Ptr())
				mat := g.Material
				b.program.SetVec3("uBaseColor", mat.BaseColor[0], mat.BaseColor[1], mat.BaseColor[2])
				b.program.SetVec3("uTint", mat.Tint[0], mat.Tint[1], mat.Tint[2])

				alphaTest := mat.AlphaTest
				if alphaTest == 0 {
					alphaTest = b.cfg.AlphaTest
				}
				b.program.SetFloat("uAlphaTest", alphaTest)

				gl.ActiveTexture(gl.TEXTURE0)
				if mat.TextureID != 0 {
					gl.BindTexture(gl.TEXTURE_2D, mat.TextureID)
				} else {
					gl.BindTexture(gl.TEXTURE_2D, b.white)
				}

				g.Draw()
			}
		}
	}

	textures := fb.DetachColorTextures()
	atlas := &Atlas{
		Albedo: textures[0],
		Normal: textures[1],
		Sphere: sphere,
		Config: b.cfg,
	}

	logger.Debug("atlas baked",
		zap.Int("texture_size", b.cfg.TextureSize),
		zap.Int("sprites_per_side", n),
		zap.Bool("hemisphere", b.cfg.Hemisphere),
		zap.Float32("radius", sphere.Radius),
		zap.Int("meshes", len(placed)))

	return atlas, nil
}

// DumpAtlas reads the atlas textures back through a temporary framebuffer
// and writes them as PNGs for inspection.
func DumpAtlas(a *Atlas, albedoPath, normalPath string) error {
	size := int32(a.Config.TextureSize)

	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	defer gl.DeleteFramebuffers(1, &fbo)

	var prevFBO int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))

	read := func(tex uint32, path string) error {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)
		pixels := make([]byte, size*size*4)
		gl.ReadPixels(0, 0, size, size, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
		return texture.SavePNG(path, pixels, int(size), int(size))
	}

	if err := read(a.Albedo, albedoPath); err != nil {
		return fmt.Errorf("dumping albedo atlas: %w", err)
	}
	if err := read(a.Normal, normalPath); err != nil {
		return fmt.Errorf("dumping normal atlas: %w", err)
	}
	return nil
}

// computeBakeSphere unions the already-filtered meshes' spheres.
func computeBakeSphere(placed []mesh.PlacedMesh) (bounds.Sphere, error) {
	var result bounds.Sphere
	for i, p := range placed {
		s := bounds.Sphere{
			Center: p.World.TransformPoint(p.Mesh.Bounds.Center()),
			Radius: p.Mesh.Bounds.Radius() * p.World.MaxScaleOnAxis(),
		}
		if i == 0 {
			result = s
		} else {
			result = result.Union(s)
		}
	}
	if result.Radius <= 0 {
		return bounds.Sphere{}, fmt.Errorf("bake target has zero-radius bounds")
	}
	return result, nil
}

// Destroy releases the baker's GL resources. Baked atlases are owned by
// their callers and survive the baker.
func (b *Baker) Destroy() {
	if b.program != nil {
		b.program.Destroy()
		b.program = nil
	}
	if b.white != 0 {
		gl.DeleteTextures(1, &b.white)
		b.white = 0
	}
}
