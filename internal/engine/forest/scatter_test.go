package forest

import (
	"testing"

	"github.com/tibogot/greenwood/internal/engine/bounds"
	"github.com/tibogot/greenwood/pkg/math"
)

func TestScatterDeterministic(t *testing.T) {
	sphere := bounds.Sphere{Center: math.Vec3{Y: 4}, Radius: 5}
	p := ScatterParams{Count: 200, AreaSize: 100, Seed: 42, MinScale: 0.8, MaxScale: 1.3}

	a := Scatter(p, sphere, nil)
	b := Scatter(p, sphere, nil)

	if len(a) != 200 || len(b) != 200 {
		t.Fatalf("got %d and %d instances, want 200", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("instance %d differs between identical seeds: %+v vs %+v", i, a[i], b[i])
		}
	}

	p.Seed = 43
	c := Scatter(p, sphere, nil)
	same := 0
	for i := range a {
		if a[i].Position == c[i].Position {
			same++
		}
	}
	if same == len(a) {
		t.Fatal("different seeds produced identical placement")
	}
}

func TestScatterStaysInArea(t *testing.T) {
	sphere := bounds.Sphere{Radius: 1}
	p := ScatterParams{Count: 500, AreaSize: 60, Seed: 7, MinScale: 1, MaxScale: 1}

	for _, inst := range Scatter(p, sphere, nil) {
		if math.Abs(inst.Position.X) > 30 || math.Abs(inst.Position.Z) > 30 {
			t.Fatalf("instance outside area: %v", inst.Position)
		}
		if inst.Position.Y != 0 {
			t.Fatalf("flat scatter has nonzero height: %v", inst.Position)
		}
	}
}

func TestScatterScaleRange(t *testing.T) {
	sphere := bounds.Sphere{Center: math.Vec3{Y: 2}, Radius: 3}
	p := ScatterParams{Count: 300, AreaSize: 50, Seed: 9, MinScale: 0.5, MaxScale: 2}

	for _, inst := range Scatter(p, sphere, nil) {
		if inst.Scale < 0.5 || inst.Scale > 2 {
			t.Fatalf("scale %v out of [0.5, 2]", inst.Scale)
		}
		// World sphere must track the instance scale exactly.
		want := sphere.Radius * inst.Scale
		if math.Abs(inst.Radius-want) > 1e-5 {
			t.Fatalf("radius %v, want %v for scale %v", inst.Radius, want, inst.Scale)
		}
	}
}

func TestScatterHeightFunc(t *testing.T) {
	sphere := bounds.Sphere{Center: math.Vec3{Y: 4}, Radius: 5}
	p := ScatterParams{Count: 100, AreaSize: 40, Seed: 3, MinScale: 1, MaxScale: 1}

	height := func(x, z float32) float32 { return x + z }

	for _, inst := range Scatter(p, sphere, height) {
		want := inst.Position.X + inst.Position.Z
		if math.Abs(inst.Position.Y-want) > 1e-5 {
			t.Fatalf("height func not applied: y=%v want %v", inst.Position.Y, want)
		}
	}
}

func TestScatterCenterTracksTransform(t *testing.T) {
	sphere := bounds.Sphere{Center: math.Vec3{X: 1, Y: 4, Z: -2}, Radius: 5}
	p := ScatterParams{Count: 50, AreaSize: 80, Seed: 11, MinScale: 0.7, MaxScale: 1.6}

	for _, inst := range Scatter(p, sphere, nil) {
		m := math.TRS(inst.Position, inst.RotationY, inst.Scale)
		want := m.TransformPoint(sphere.Center)
		if inst.Center.Sub(want).Length() > 1e-4 {
			t.Fatalf("center %v, want %v", inst.Center, want)
		}
	}
}
