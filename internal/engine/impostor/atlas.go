// Package impostor bakes octahedral impostor atlases and renders them as
// camera-facing billboards reconstructed from the baked views.
package impostor

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/tibogot/greenwood/internal/engine/bounds"
)

// AtlasConfig is the immutable bake-time configuration.
type AtlasConfig struct {
	// TextureSize is the square atlas edge in pixels.
	TextureSize int
	// SpritesPerSide is the direction grid resolution n; the atlas holds
	// n*n sprites.
	SpritesPerSide int
	// AlphaTest discards bake fragments below this alpha so cutouts stay
	// crisp. Zero disables the test.
	AlphaTest float32
	// Hemisphere restricts the grid to upper-hemisphere views at double
	// the angular density.
	Hemisphere bool
	// CameraMargin inflates the capture framing (and therefore the runtime
	// billboard scale) to keep silhouettes off the frustum edge.
	CameraMargin float32
	// LargestMeshOnly bakes only the hierarchy's biggest eligible mesh,
	// for source assets with unrelated sub-objects.
	LargestMeshOnly bool

	// Degenerate-geometry filter overrides, see bounds.Options.
	MinVertexCount int
	FlatRatio      float32
}

// DefaultAtlasConfig returns the standard bake settings.
func DefaultAtlasConfig() AtlasConfig {
	fo := bounds.DefaultOptions()
	return AtlasConfig{
		TextureSize:    1024,
		SpritesPerSide: 8,
		AlphaTest:      0.5,
		Hemisphere:     true,
		CameraMargin:   1.05,
		MinVertexCount: fo.MinVertexCount,
		FlatRatio:      fo.FlatRatio,
	}
}

// Validate reports configuration errors. These indicate programming or
// asset defects and are fatal at bake time, never retried.
func (c AtlasConfig) Validate() error {
	if c.TextureSize <= 0 {
		return fmt.Errorf("texture size must be positive, got %d", c.TextureSize)
	}
	if c.SpritesPerSide <= 0 {
		return fmt.Errorf("sprites per side must be positive, got %d", c.SpritesPerSide)
	}
	if c.TextureSize%c.SpritesPerSide != 0 {
		return fmt.Errorf("texture size %d not divisible by sprites per side %d",
			c.TextureSize, c.SpritesPerSide)
	}
	if c.CameraMargin < 1 {
		return fmt.Errorf("camera margin must be >= 1, got %v", c.CameraMargin)
	}
	return nil
}

func (c AtlasConfig) filterOptions() bounds.Options {
	return bounds.Options{
		MinVertexCount: c.MinVertexCount,
		FlatRatio:      c.FlatRatio,
	}
}

// Atlas is the baked output: two GPU textures plus the exact sphere used
// for capture framing. The sphere must also drive the runtime billboard
// scale or bake and reconstruction disagree. Immutable after Bake; owned
// by the caller and released with Dispose.
type Atlas struct {
	Albedo uint32 // linear albedo x AO in rgb, coverage in alpha
	Normal uint32 // source-local normal remapped to [0,1]
	Sphere bounds.Sphere
	Config AtlasConfig
}

// Dispose releases the atlas textures.
func (a *Atlas) Dispose() {
	if a.Albedo != 0 {
		gl.DeleteTextures(1, &a.Albedo)
		a.Albedo = 0
	}
	if a.Normal != 0 {
		gl.DeleteTextures(1, &a.Normal)
		a.Normal = 0
	}
}
