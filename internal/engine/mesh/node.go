package mesh

import (
	"github.com/tibogot/greenwood/pkg/math"
)

// Node is one element of a mesh hierarchy. A node may carry a mesh, child
// nodes, or both. Transforms compose parent-to-child.
type Node struct {
	Name      string
	Transform math.Mat4
	Mesh      *Mesh
	Children  []*Node
}

// NewNode returns an empty node with an identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Transform: math.Identity()}
}

// AddChild appends a child node and returns it for chaining.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// Walk visits every node depth-first with its accumulated world transform.
func (n *Node) Walk(visit func(node *Node, world math.Mat4)) {
	n.walk(math.Identity(), visit)
}

func (n *Node) walk(parent math.Mat4, visit func(node *Node, world math.Mat4)) {
	world := parent.Mul(n.Transform)
	visit(n, world)
	for _, c := range n.Children {
		c.walk(world, visit)
	}
}

// Meshes returns every mesh in the hierarchy paired with its world transform.
func (n *Node) Meshes() []PlacedMesh {
	var out []PlacedMesh
	n.Walk(func(node *Node, world math.Mat4) {
		if node.Mesh != nil {
			out = append(out, PlacedMesh{Mesh: node.Mesh, World: world})
		}
	})
	return out
}

// PlacedMesh is a mesh with its accumulated world transform.
type PlacedMesh struct {
	Mesh  *Mesh
	World math.Mat4
}
