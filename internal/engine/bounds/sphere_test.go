package bounds

import (
	"testing"

	"github.com/tibogot/greenwood/internal/engine/mesh"
	"github.com/tibogot/greenwood/pkg/math"
)

func treeWithSphere(radius float32) *mesh.Node {
	root := mesh.NewNode("root")
	n := root.AddChild(mesh.NewNode("body"))
	n.Mesh = mesh.NewSphere(radius, 8, 12, mesh.DefaultMaterial())
	return root
}

func TestComputeSphereSingleMesh(t *testing.T) {
	root := treeWithSphere(2)
	s, err := ComputeSphere(root, DefaultOptions())
	if err != nil {
		t.Fatalf("ComputeSphere() error = %v", err)
	}
	// The AABB-derived sphere through the box corners overshoots the mesh
	// radius; it must still enclose it.
	if s.Radius < 2 {
		t.Errorf("radius = %v, must enclose mesh radius 2", s.Radius)
	}
	if s.Center.Length() > 0.05 {
		t.Errorf("center = %v, want ~origin", s.Center)
	}
}

func TestComputeSphereIgnoresFlatProxy(t *testing.T) {
	root := treeWithSphere(2)
	base, err := ComputeSphere(root, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	// A big flat card far from the body must not change the sphere.
	card := root.AddChild(mesh.NewNode("shadow_card"))
	card.Transform = math.Translate(50, 0, 0)
	card.Mesh = mesh.NewQuad(40, mesh.DefaultMaterial())

	withCard, err := ComputeSphere(root, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if withCard != base {
		t.Errorf("sphere changed after adding flat proxy: %+v -> %+v", base, withCard)
	}
}

func TestComputeSphereIgnoresLowVertexMesh(t *testing.T) {
	root := treeWithSphere(2)
	base, _ := ComputeSphere(root, DefaultOptions())

	// A tiny tetra-like mesh under the vertex threshold, even if not flat.
	small := root.AddChild(mesh.NewNode("marker"))
	small.Transform = math.Translate(0, 100, 0)
	small.Mesh = mesh.NewSphere(30, 2, 3, mesh.DefaultMaterial())
	if len(small.Mesh.Vertices) > DefaultOptions().MinVertexCount {
		t.Fatalf("test mesh has %d vertices, expected <= %d",
			len(small.Mesh.Vertices), DefaultOptions().MinVertexCount)
	}

	withSmall, _ := ComputeSphere(root, DefaultOptions())
	if withSmall != base {
		t.Errorf("sphere changed after adding low-vertex mesh: %+v -> %+v", base, withSmall)
	}
}

func TestComputeSphereFailsWhenAllFiltered(t *testing.T) {
	root := mesh.NewNode("root")
	card := root.AddChild(mesh.NewNode("card"))
	card.Mesh = mesh.NewQuad(10, mesh.DefaultMaterial())

	if _, err := ComputeSphere(root, DefaultOptions()); err == nil {
		t.Error("ComputeSphere() on all-degenerate hierarchy must fail")
	}
}

func TestComputeSphereWithLooseFilterAcceptsQuad(t *testing.T) {
	root := mesh.NewNode("root")
	card := root.AddChild(mesh.NewNode("card"))
	card.Mesh = mesh.NewQuad(10, mesh.DefaultMaterial())

	s, err := ComputeSphere(root, Options{MinVertexCount: 0, FlatRatio: 0})
	if err != nil {
		t.Fatalf("ComputeSphere() with loose filter error = %v", err)
	}
	if s.Radius <= 0 {
		t.Errorf("radius = %v, want > 0", s.Radius)
	}
}

func TestUnionEnclosesBoth(t *testing.T) {
	a := Sphere{Center: math.Vec3{X: -5}, Radius: 2}
	b := Sphere{Center: math.Vec3{X: 5}, Radius: 3}
	u := a.Union(b)

	if !u.Contains(a) || !u.Contains(b) {
		t.Errorf("union %+v does not contain both inputs", u)
	}
	// d=10, expected radius (10+2+3)/2 = 7.5
	if u.Radius < 7.49 || u.Radius > 7.51 {
		t.Errorf("union radius = %v, want 7.5", u.Radius)
	}
}

func TestUnionWithContainedSphere(t *testing.T) {
	big := Sphere{Center: math.Vec3{}, Radius: 10}
	small := Sphere{Center: math.Vec3{X: 2}, Radius: 1}
	if got := big.Union(small); got != big {
		t.Errorf("union with contained sphere = %+v, want %+v", got, big)
	}
	if got := small.Union(big); got != big {
		t.Errorf("reversed union = %+v, want %+v", got, big)
	}
}

func TestInflate(t *testing.T) {
	s := Sphere{Center: math.Vec3{X: 1}, Radius: 4}
	got := s.Inflate(1.05)
	if got.Radius < 4.19 || got.Radius > 4.21 {
		t.Errorf("inflated radius = %v, want 4.2", got.Radius)
	}
	if got.Center != s.Center {
		t.Error("inflate must not move the center")
	}
}

func TestScaledTransformGrowsSphere(t *testing.T) {
	root := mesh.NewNode("root")
	n := root.AddChild(mesh.NewNode("body"))
	n.Transform = math.Scale(3)
	n.Mesh = mesh.NewSphere(1, 8, 12, mesh.DefaultMaterial())

	s, err := ComputeSphere(root, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if s.Radius < 3 {
		t.Errorf("radius = %v, must be at least the scaled mesh radius 3", s.Radius)
	}
}

func TestLargestMesh(t *testing.T) {
	root := mesh.NewNode("root")
	a := root.AddChild(mesh.NewNode("small"))
	a.Mesh = mesh.NewSphere(1, 6, 8, mesh.DefaultMaterial())
	b := root.AddChild(mesh.NewNode("big"))
	b.Mesh = mesh.NewSphere(1, 16, 24, mesh.DefaultMaterial())

	got := LargestMesh(root, DefaultOptions())
	if got == nil || got.Mesh != b.Mesh {
		t.Error("LargestMesh() did not pick the mesh with the most vertices")
	}
}
