// Package octahedral maps unit directions to cells of a square sprite grid
// and back. The baker and the impostor shaders must agree on this mapping
// exactly, so the GLSL side mirrors these functions line for line.
package octahedral

import (
	"github.com/tibogot/greenwood/pkg/math"
)

// Encode projects a direction onto the octahedron (division by the L1 norm)
// and folds it into the unit square [0,1]². The hemi variant folds only the
// upper hemisphere, doubling angular density per texel; directions with
// negative Y are clamped onto the horizon.
func Encode(dir math.Vec3, hemi bool) math.Vec2 {
	l1 := dir.L1Norm()
	if l1 == 0 {
		// Degenerate input: land in the cell straight above.
		return math.Vec2{X: 0.5, Y: 0.5}
	}
	v := dir.Scale(1 / l1)

	if hemi {
		if v.Y < 0 {
			// Project onto the horizon ring, renormalized in L1.
			h := math.Abs(v.X) + math.Abs(v.Z)
			if h == 0 {
				return math.Vec2{X: 0.5, Y: 0.5}
			}
			v = math.Vec3{X: v.X / h, Y: 0, Z: v.Z / h}
		}
		// 45-degree rotated fold: the upper hemisphere fills the full square.
		return math.Vec2{
			X: (v.X+v.Z)*0.5 + 0.5,
			Y: (v.X-v.Z)*0.5 + 0.5,
		}
	}

	u, w := v.X, v.Z
	if v.Y < 0 {
		// Fold the lower hemisphere outward over the square's corners.
		u = (1 - math.Abs(v.Z)) * math.Sign(v.X)
		w = (1 - math.Abs(v.X)) * math.Sign(v.Z)
	}
	return math.Vec2{X: u*0.5 + 0.5, Y: w*0.5 + 0.5}
}

// Decode is the inverse fold. The missing Y axis is reconstructed from the
// L1-sphere identity |x|+|y|+|z| = 1; the result is always unit length.
func Decode(uv math.Vec2, hemi bool) math.Vec3 {
	if hemi {
		px := uv.X*2 - 1
		py := uv.Y*2 - 1
		x := (px + py) * 0.5
		z := (px - py) * 0.5
		y := 1 - math.Abs(x) - math.Abs(z)
		if y < 0 {
			y = 0
		}
		return math.Vec3{X: x, Y: y, Z: z}.NormalizeOr(math.Vec3{Y: 1}, 1e-8)
	}

	x := uv.X*2 - 1
	z := uv.Y*2 - 1
	y := 1 - math.Abs(x) - math.Abs(z)
	if y < 0 {
		// Unfold the corner region back onto the lower hemisphere.
		ox := x
		x = (1 - math.Abs(z)) * math.Sign(ox)
		z = (1 - math.Abs(ox)) * math.Sign(z)
	}
	return math.Vec3{X: x, Y: y, Z: z}.NormalizeOr(math.Vec3{Y: 1}, 1e-8)
}

// CellForDirection returns the grid cell the direction encodes to,
// with both coordinates in [0, n-1].
func CellForDirection(dir math.Vec3, n int, hemi bool) (i, j int) {
	uv := Encode(dir, hemi)
	i = int(uv.X * float32(n))
	j = int(uv.Y * float32(n))
	if i >= n {
		i = n - 1
	}
	if j >= n {
		j = n - 1
	}
	if i < 0 {
		i = 0
	}
	if j < 0 {
		j = 0
	}
	return i, j
}

// DirectionForCell decodes the center of grid cell (i, j) to a unit direction.
func DirectionForCell(i, j, n int, hemi bool) math.Vec3 {
	uv := math.Vec2{
		X: (float32(i) + 0.5) / float32(n),
		Y: (float32(j) + 0.5) / float32(n),
	}
	return Decode(uv, hemi)
}
