package terrain

import (
	"testing"

	"github.com/tibogot/greenwood/pkg/math"
)

func TestHeightfieldDeterministic(t *testing.T) {
	a := NewHeightfield(5, 200, 64, 6, 3)
	b := NewHeightfield(5, 200, 64, 6, 3)

	for _, p := range [][2]float32{{0, 0}, {37.5, -81.2}, {-99, 99}, {12.3, 45.6}} {
		if a.HeightAt(p[0], p[1]) != b.HeightAt(p[0], p[1]) {
			t.Fatalf("same seed disagrees at %v", p)
		}
	}

	c := NewHeightfield(6, 200, 64, 6, 3)
	same := true
	for _, p := range [][2]float32{{0, 0}, {37.5, -81.2}, {-99, 99}} {
		if a.HeightAt(p[0], p[1]) != c.HeightAt(p[0], p[1]) {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical terrain")
	}
}

func TestHeightfieldAmplitudeBound(t *testing.T) {
	const amplitude = 5
	h := NewHeightfield(1, 100, 48, amplitude, 4)

	// Octave sum is bounded by amplitude * (1 + 1/2 + 1/4 + ...) < 2x.
	for z := float32(-50); z <= 50; z += 7 {
		for x := float32(-50); x <= 50; x += 7 {
			v := h.HeightAt(x, z)
			if math.Abs(v) > amplitude*2 {
				t.Fatalf("height %v at (%v,%v) exceeds bound", v, x, z)
			}
		}
	}
}

func TestHeightfieldInterpolationContinuous(t *testing.T) {
	h := NewHeightfield(9, 100, 32, 4, 2)

	// Tiny steps must give tiny height changes.
	prev := h.HeightAt(-20, 13)
	for x := float32(-20); x <= 20; x += 0.05 {
		v := h.HeightAt(x, 13)
		if math.Abs(v-prev) > 0.5 {
			t.Fatalf("height jump %v -> %v at x=%v", prev, v, x)
		}
		prev = v
	}
}

func TestHeightfieldClampsOutside(t *testing.T) {
	h := NewHeightfield(2, 80, 16, 3, 2)

	inside := h.HeightAt(40, 40)
	outside := h.HeightAt(400, 400)
	if inside != outside {
		t.Fatalf("border clamp broken: edge %v, far outside %v", inside, outside)
	}
}

func TestGroundMeshMatchesHeightfield(t *testing.T) {
	h := NewHeightfield(3, 60, 16, 4, 2)
	m := buildGroundMesh(h)

	if len(m.Vertices) != 16*16 {
		t.Fatalf("got %d vertices, want %d", len(m.Vertices), 16*16)
	}
	if len(m.Indices) != 15*15*6 {
		t.Fatalf("got %d indices, want %d", len(m.Indices), 15*15*6)
	}

	for _, v := range m.Vertices {
		want := h.HeightAt(v.Position.X, v.Position.Z)
		if math.Abs(v.Position.Y-want) > 1e-4 {
			t.Fatalf("vertex at (%v,%v): height %v, field says %v",
				v.Position.X, v.Position.Z, v.Position.Y, want)
		}
		if math.Abs(v.Normal.Length()-1) > 1e-4 {
			t.Fatalf("non-unit normal %v", v.Normal)
		}
	}
}
