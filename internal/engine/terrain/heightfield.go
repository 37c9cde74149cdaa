// Package terrain provides the procedural ground heightfield the forest
// stands on: deterministic rolling hills with bilinear height lookup.
package terrain

import (
	"math/rand"

	"github.com/tibogot/greenwood/pkg/math"
)

// Heightfield is a square grid of altitudes spanning [-Size/2, Size/2]²
// in world units. Heights between grid points are bilinearly interpolated,
// so instance placement and the rendered ground mesh always agree.
type Heightfield struct {
	heights []float32
	res     int     // grid points per side
	size    float32 // world side length
}

// NewHeightfield generates rolling hills from a seed. The same seed and
// parameters always produce the same terrain; amplitude is the peak
// height and octaves controls how busy the hills are.
func NewHeightfield(seed int64, size float32, res int, amplitude float32, octaves int) *Heightfield {
	if res < 2 {
		res = 2
	}

	h := &Heightfield{
		heights: make([]float32, res*res),
		res:     res,
		size:    size,
	}

	// Layered value noise: each octave doubles frequency and halves
	// contribution, each with its own deterministic lattice.
	freq := float32(1)
	amp := amplitude
	for oct := 0; oct < octaves; oct++ {
		lattice := noiseLattice(seed+int64(oct), int(freq)*4+2)
		for z := 0; z < res; z++ {
			for x := 0; x < res; x++ {
				u := float32(x) / float32(res-1)
				v := float32(z) / float32(res-1)
				h.heights[z*res+x] += lattice.sample(u, v) * amp
			}
		}
		freq *= 2
		amp *= 0.5
	}

	return h
}

// HeightAt returns the bilinearly interpolated altitude at a world
// position. Positions outside the field clamp to the border.
func (h *Heightfield) HeightAt(worldX, worldZ float32) float32 {
	fx := (worldX/h.size + 0.5) * float32(h.res-1)
	fz := (worldZ/h.size + 0.5) * float32(h.res-1)

	x0 := int(math.Floor(fx))
	z0 := int(math.Floor(fz))
	x0 = clampi(x0, 0, h.res-2)
	z0 = clampi(z0, 0, h.res-2)

	tx := math.Clamp(fx-float32(x0), 0, 1)
	tz := math.Clamp(fz-float32(z0), 0, 1)

	h00 := h.heights[z0*h.res+x0]
	h10 := h.heights[z0*h.res+x0+1]
	h01 := h.heights[(z0+1)*h.res+x0]
	h11 := h.heights[(z0+1)*h.res+x0+1]

	south := math.Lerp(h00, h10, tx)
	north := math.Lerp(h01, h11, tx)
	return math.Lerp(south, north, tz)
}

// Size returns the world side length.
func (h *Heightfield) Size() float32 {
	return h.size
}

// Resolution returns the grid points per side.
func (h *Heightfield) Resolution() int {
	return h.res
}

// lattice is one octave's random value grid with smooth sampling.
type lattice struct {
	values []float32
	n      int
}

func noiseLattice(seed int64, n int) lattice {
	rng := rand.New(rand.NewSource(seed))
	values := make([]float32, n*n)
	for i := range values {
		values[i] = rng.Float32()*2 - 1
	}
	return lattice{values: values, n: n}
}

// sample interpolates the lattice at (u, v) in [0,1]² with smoothstep
// easing between grid points.
func (l lattice) sample(u, v float32) float32 {
	fx := u * float32(l.n-1)
	fz := v * float32(l.n-1)
	x0 := clampi(int(fx), 0, l.n-2)
	z0 := clampi(int(fz), 0, l.n-2)

	tx := smoothstep(math.Clamp(fx-float32(x0), 0, 1))
	tz := smoothstep(math.Clamp(fz-float32(z0), 0, 1))

	a := math.Lerp(l.values[z0*l.n+x0], l.values[z0*l.n+x0+1], tx)
	b := math.Lerp(l.values[(z0+1)*l.n+x0], l.values[(z0+1)*l.n+x0+1], tx)
	return math.Lerp(a, b, tz)
}

func smoothstep(t float32) float32 {
	return t * t * (3 - 2*t)
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
