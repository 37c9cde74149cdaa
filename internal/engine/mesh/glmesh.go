package mesh

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// vertexStride is the byte size of one interleaved Vertex (3+3+2 floats).
const vertexStride = 8 * 4

// GLMesh is a mesh uploaded to the GPU.
type GLMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	Material   Material
}

// Upload creates GPU buffers for the mesh. Attribute layout:
// 0 = position (vec3), 1 = normal (vec3), 2 = texcoord (vec2).
func Upload(m *Mesh) *GLMesh {
	g := &GLMesh{
		indexCount: int32(len(m.Indices)),
		Material:   m.Material,
	}

	data := make([]float32, 0, len(m.Vertices)*8)
	for _, v := range m.Vertices {
		data = append(data,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
			v.TexCoord.X, v.TexCoord.Y,
		)
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexStride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return g
}

// VAO returns the vertex array object, for renderers that append
// per-instance attributes.
func (g *GLMesh) VAO() uint32 {
	return g.vao
}

// Draw renders the mesh with the currently bound program.
func (g *GLMesh) Draw() {
	if g.vao == 0 || g.indexCount == 0 {
		return
	}
	gl.BindVertexArray(g.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// DrawInstanced renders count instances of the mesh.
func (g *GLMesh) DrawInstanced(count int32) {
	if g.vao == 0 || g.indexCount == 0 || count <= 0 {
		return
	}
	gl.BindVertexArray(g.vao)
	gl.DrawElementsInstanced(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil, count)
	gl.BindVertexArray(0)
}

// Destroy releases the GPU buffers.
func (g *GLMesh) Destroy() {
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
		g.ebo = 0
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
		g.vbo = 0
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
}
