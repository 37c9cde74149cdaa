// Package forest assembles the full pipeline: bake the source into an
// atlas, scatter instances over an area, classify them into tiers each
// frame, and draw every tier.
package forest

import (
	"math/rand"

	"github.com/tibogot/greenwood/internal/engine/bounds"
	"github.com/tibogot/greenwood/internal/engine/lod"
	"github.com/tibogot/greenwood/pkg/math"
)

// HeightFunc returns terrain height at a ground position. Nil means flat
// ground at y=0.
type HeightFunc func(x, z float32) float32

// ScatterParams controls deterministic instance placement.
type ScatterParams struct {
	Count    int
	AreaSize float32 // instances land in [-AreaSize/2, AreaSize/2]²
	Seed     int64
	MinScale float32
	MaxScale float32
}

// Scatter places Count instances uniformly over the area with random
// rotation and scale. The same seed always yields the same forest; the
// world-space bounding sphere of each instance is derived from the bake
// sphere so culling and rendering agree on extents.
func Scatter(p ScatterParams, bakeSphere bounds.Sphere, height HeightFunc) []lod.Instance {
	rng := rand.New(rand.NewSource(p.Seed))
	instances := make([]lod.Instance, 0, p.Count)

	for i := 0; i < p.Count; i++ {
		x := (rng.Float32() - 0.5) * p.AreaSize
		z := (rng.Float32() - 0.5) * p.AreaSize
		y := float32(0)
		if height != nil {
			y = height(x, z)
		}

		scale := p.MinScale + rng.Float32()*(p.MaxScale-p.MinScale)
		rotY := rng.Float32() * 2 * math.Pi
		pos := math.Vec3{X: x, Y: y, Z: z}

		m := math.TRS(pos, rotY, scale)
		instances = append(instances, lod.Instance{
			Position:  pos,
			RotationY: rotY,
			Scale:     scale,
			Center:    m.TransformPoint(bakeSphere.Center),
			Radius:    bakeSphere.Radius * scale,
		})
	}

	return instances
}
