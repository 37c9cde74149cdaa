package impostor

import (
	"testing"

	"github.com/tibogot/greenwood/internal/engine/bounds"
	"github.com/tibogot/greenwood/internal/engine/octahedral"
	"github.com/tibogot/greenwood/pkg/math"
)

func TestCellViewportTilesExactly(t *testing.T) {
	const n, size = 8, 1024
	cell := int32(size / n)

	seen := make(map[[2]int32]bool)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			x, y, w, h := CellViewport(i, j, n, size)
			if w != cell || h != cell {
				t.Fatalf("cell (%d,%d): got %dx%d, want %dx%d", i, j, w, h, cell, cell)
			}
			if x%cell != 0 || y%cell != 0 {
				t.Fatalf("cell (%d,%d): origin (%d,%d) not on cell grid", i, j, x, y)
			}
			if x+w > size || y+h > size {
				t.Fatalf("cell (%d,%d): rect (%d,%d,%d,%d) exceeds atlas", i, j, x, y, w, h)
			}
			key := [2]int32{x, y}
			if seen[key] {
				t.Fatalf("cell (%d,%d): origin (%d,%d) already used", i, j, x, y)
			}
			seen[key] = true
		}
	}
	if len(seen) != n*n {
		t.Fatalf("expected %d distinct cells, got %d", n*n, len(seen))
	}
}

func TestCaptureCameraPlacement(t *testing.T) {
	sphere := bounds.Sphere{Center: math.Vec3{X: 3, Y: 10, Z: -2}, Radius: 4}
	dir := math.Vec3{X: 1, Y: 1, Z: 0}.Normalize()

	cam := NewCaptureCamera(sphere, dir)

	wantEye := sphere.Center.Add(dir.Scale(8))
	if cam.Eye.Sub(wantEye).Length() > 1e-5 {
		t.Fatalf("eye = %v, want %v", cam.Eye, wantEye)
	}

	// The sphere center must land on the camera axis, two radii in front.
	viewCenter := cam.View.TransformPoint(sphere.Center)
	if math.Abs(viewCenter.X) > 1e-5 || math.Abs(viewCenter.Y) > 1e-5 {
		t.Fatalf("center off axis in view space: %v", viewCenter)
	}
	if math.Abs(viewCenter.Z+8) > 1e-4 {
		t.Fatalf("center at view depth %v, want -8", viewCenter.Z)
	}
}

func TestCaptureCameraFramesSphere(t *testing.T) {
	sphere := bounds.Sphere{Center: math.Vec3{Y: 5}, Radius: 3}
	n := 4

	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			dir := octahedral.DirectionForCell(i, j, n, true)
			cam := NewCaptureCamera(sphere, dir)

			// Sphere extrema along the image axes must stay inside NDC.
			for _, offset := range []math.Vec3{
				{X: sphere.Radius}, {X: -sphere.Radius},
				{Y: sphere.Radius}, {Y: -sphere.Radius},
				{Z: sphere.Radius}, {Z: -sphere.Radius},
			} {
				p := sphere.Center.Add(offset)
				ndc := cam.ViewProj.TransformPoint(p)
				if math.Abs(ndc.X) > 1.0001 || math.Abs(ndc.Y) > 1.0001 || math.Abs(ndc.Z) > 1.0001 {
					t.Fatalf("cell (%d,%d): sphere point %v outside NDC: %v", i, j, p, ndc)
				}
			}
		}
	}
}

func TestCaptureCameraPoleUp(t *testing.T) {
	sphere := bounds.Sphere{Radius: 1}
	cam := NewCaptureCamera(sphere, math.Vec3{Y: 1})

	// A straight-down view must still produce a usable basis.
	p := cam.View.TransformPoint(math.Vec3{X: 1})
	if p.Length() == 0 {
		t.Fatal("degenerate view basis at the pole")
	}
	for _, v := range []float32{p.X, p.Y, p.Z} {
		if v != v {
			t.Fatalf("NaN in pole view transform: %v", p)
		}
	}
}

func TestAtlasConfigValidate(t *testing.T) {
	if err := DefaultAtlasConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*AtlasConfig)
	}{
		{"zero texture size", func(c *AtlasConfig) { c.TextureSize = 0 }},
		{"zero grid", func(c *AtlasConfig) { c.SpritesPerSide = 0 }},
		{"indivisible grid", func(c *AtlasConfig) { c.SpritesPerSide = 7 }},
		{"margin below one", func(c *AtlasConfig) { c.CameraMargin = 0.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultAtlasConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
