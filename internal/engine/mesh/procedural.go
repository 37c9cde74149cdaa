package mesh

import (
	gomath "math"

	"github.com/tibogot/greenwood/pkg/math"
)

// NewQuad builds a flat two-triangle quad in the XY plane, centered on the
// origin, facing +Z.
func NewQuad(size float32, mat Material) *Mesh {
	h := size * 0.5
	m := &Mesh{
		Vertices: []Vertex{
			{Position: math.Vec3{X: -h, Y: -h}, Normal: math.Vec3{Z: 1}, TexCoord: math.Vec2{X: 0, Y: 0}},
			{Position: math.Vec3{X: h, Y: -h}, Normal: math.Vec3{Z: 1}, TexCoord: math.Vec2{X: 1, Y: 0}},
			{Position: math.Vec3{X: h, Y: h}, Normal: math.Vec3{Z: 1}, TexCoord: math.Vec2{X: 1, Y: 1}},
			{Position: math.Vec3{X: -h, Y: h}, Normal: math.Vec3{Z: 1}, TexCoord: math.Vec2{X: 0, Y: 1}},
		},
		Indices:  []uint32{0, 1, 2, 0, 2, 3},
		Material: mat,
	}
	m.ComputeBounds()
	return m
}

// NewSphere builds a UV sphere with the given radius.
func NewSphere(radius float32, rings, segments int, mat Material) *Mesh {
	m := &Mesh{Material: mat}

	for r := 0; r <= rings; r++ {
		phi := gomath.Pi * float64(r) / float64(rings)
		y := float32(gomath.Cos(phi))
		ringR := float32(gomath.Sin(phi))
		for s := 0; s <= segments; s++ {
			theta := 2 * gomath.Pi * float64(s) / float64(segments)
			n := math.Vec3{
				X: ringR * float32(gomath.Cos(theta)),
				Y: y,
				Z: ringR * float32(gomath.Sin(theta)),
			}
			m.Vertices = append(m.Vertices, Vertex{
				Position: n.Scale(radius),
				Normal:   n,
				TexCoord: math.Vec2{X: float32(s) / float32(segments), Y: float32(r) / float32(rings)},
			})
		}
	}

	stride := uint32(segments + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := uint32(r)*stride + uint32(s)
			b := a + stride
			m.Indices = append(m.Indices, a, b, a+1, a+1, b, b+1)
		}
	}

	m.ComputeBounds()
	return m
}

// NewCylinder builds a closed cylinder along +Y starting at the origin.
func NewCylinder(radius, height float32, segments int, mat Material) *Mesh {
	m := &Mesh{Material: mat}

	for s := 0; s <= segments; s++ {
		theta := 2 * gomath.Pi * float64(s) / float64(segments)
		nx := float32(gomath.Cos(theta))
		nz := float32(gomath.Sin(theta))
		u := float32(s) / float32(segments)
		m.Vertices = append(m.Vertices,
			Vertex{
				Position: math.Vec3{X: nx * radius, Y: 0, Z: nz * radius},
				Normal:   math.Vec3{X: nx, Z: nz},
				TexCoord: math.Vec2{X: u, Y: 0},
			},
			Vertex{
				Position: math.Vec3{X: nx * radius, Y: height, Z: nz * radius},
				Normal:   math.Vec3{X: nx, Z: nz},
				TexCoord: math.Vec2{X: u, Y: 1},
			},
		)
	}
	for s := 0; s < segments; s++ {
		a := uint32(s * 2)
		m.Indices = append(m.Indices, a, a+1, a+2, a+2, a+1, a+3)
	}

	// Top cap.
	capCenter := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, Vertex{
		Position: math.Vec3{Y: height},
		Normal:   math.Vec3{Y: 1},
		TexCoord: math.Vec2{X: 0.5, Y: 0.5},
	})
	for s := 0; s < segments; s++ {
		theta := 2 * gomath.Pi * float64(s) / float64(segments)
		m.Vertices = append(m.Vertices, Vertex{
			Position: math.Vec3{
				X: float32(gomath.Cos(theta)) * radius,
				Y: height,
				Z: float32(gomath.Sin(theta)) * radius,
			},
			Normal:   math.Vec3{Y: 1},
			TexCoord: math.Vec2{X: 0.5, Y: 0.5},
		})
	}
	for s := 0; s < segments; s++ {
		next := uint32((s + 1) % segments)
		m.Indices = append(m.Indices, capCenter, capCenter+1+next, capCenter+1+uint32(s))
	}

	m.ComputeBounds()
	return m
}

// NewCanopyTree builds a stylized tree: a trunk cylinder with a cluster of
// canopy spheres. Good enough to exercise the baker and demo without asset
// files.
func NewCanopyTree() *Node {
	root := NewNode("tree")

	trunkMat := DefaultMaterial()
	trunkMat.BaseColor = [3]float32{0.45, 0.31, 0.18}
	trunk := root.AddChild(NewNode("trunk"))
	trunk.Mesh = NewCylinder(0.35, 4.2, 10, trunkMat)

	canopyMat := DefaultMaterial()
	canopyMat.BaseColor = [3]float32{0.18, 0.42, 0.16}

	blobs := []struct {
		offset math.Vec3
		radius float32
	}{
		{math.Vec3{X: 0, Y: 5.0, Z: 0}, 1.9},
		{math.Vec3{X: 1.1, Y: 4.3, Z: 0.4}, 1.3},
		{math.Vec3{X: -0.9, Y: 4.5, Z: -0.5}, 1.2},
		{math.Vec3{X: 0.2, Y: 4.1, Z: 1.0}, 1.1},
	}
	for _, b := range blobs {
		n := root.AddChild(NewNode("canopy"))
		n.Transform = math.Translate(b.offset.X, b.offset.Y, b.offset.Z)
		n.Mesh = NewSphere(b.radius, 8, 12, canopyMat)
	}

	return root
}
