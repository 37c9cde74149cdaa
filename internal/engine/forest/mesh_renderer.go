package forest

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/tibogot/greenwood/internal/engine/impostor"
	"github.com/tibogot/greenwood/internal/engine/impostor/shaders"
	"github.com/tibogot/greenwood/internal/engine/lod"
	"github.com/tibogot/greenwood/internal/engine/mesh"
	"github.com/tibogot/greenwood/internal/engine/shader"
	"github.com/tibogot/greenwood/internal/engine/texture"
	"github.com/tibogot/greenwood/pkg/math"
)

// meshInstance is one uploaded submesh plus its placement inside the
// source hierarchy.
type meshInstance struct {
	gpu   *mesh.GLMesh
	local math.Mat4
}

// MeshRenderer draws the near tier: the real source geometry, instanced
// over the compacted tier buffer. Every submesh shares the same two
// per-instance streams, so one upload per frame covers the whole
// hierarchy.
type MeshRenderer struct {
	program *shader.Program
	meshes  []meshInstance
	white   uint32

	transformVBO uint32
	fadeVBO      uint32
}

// NewMeshRenderer uploads the source hierarchy and prepares the instanced
// mesh program. The full hierarchy is drawn; the degenerate filter only
// applies to bake framing, never to near-tier rendering.
func NewMeshRenderer(source *mesh.Node) (*MeshRenderer, error) {
	program, err := shader.NewProgram(shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}

	r := &MeshRenderer{
		program: program,
		white:   texture.NewSolid(255, 255, 255, 255),
	}

	gl.GenBuffers(1, &r.transformVBO)
	gl.GenBuffers(1, &r.fadeVBO)

	for _, placed := range source.Meshes() {
		gpu := mesh.Upload(placed.Mesh)
		r.attachInstanceAttribs(gpu.VAO())
		r.meshes = append(r.meshes, meshInstance{gpu: gpu, local: placed.World})
	}
	if len(r.meshes) == 0 {
		r.Destroy()
		return nil, fmt.Errorf("source hierarchy has no meshes")
	}

	return r, nil
}

// attachInstanceAttribs wires the shared instance streams into a submesh
// VAO: model matrix at locations 3-6, signed fade at 7.
func (r *MeshRenderer) attachInstanceAttribs(vao uint32) {
	gl.BindVertexArray(vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.transformVBO)
	for col := uint32(0); col < 4; col++ {
		loc := 3 + col
		gl.VertexAttribPointerWithOffset(loc, 4, gl.FLOAT, false, 16*4, uintptr(col*16))
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribDivisor(loc, 1)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.fadeVBO)
	gl.VertexAttribPointerWithOffset(7, 1, gl.FLOAT, false, 4, 0)
	gl.EnableVertexAttribArray(7)
	gl.VertexAttribDivisor(7, 1)

	gl.BindVertexArray(0)
}

// Draw streams the tier buffer and renders every submesh instanced.
func (r *MeshRenderer) Draw(buf *lod.TierBuffer, frame impostor.FrameUniforms) {
	count := buf.Count()
	if count == 0 {
		return
	}

	streamBuffer(r.transformVBO, buf.Transforms)
	streamBuffer(r.fadeVBO, buf.Fades)

	r.program.Use()
	r.program.SetMat4("uViewProj", frame.ViewProj.Ptr())
	r.program.SetVec3("uSunDirection", frame.SunDirection.X, frame.SunDirection.Y, frame.SunDirection.Z)
	r.program.SetVec3("uSunColor", frame.SunColor[0], frame.SunColor[1], frame.SunColor[2])
	r.program.SetVec3("uAmbientColor", frame.AmbientColor[0], frame.AmbientColor[1], frame.AmbientColor[2])
	r.program.SetFloat("uDitherPhase", frame.DitherPhase)
	r.program.SetInt("uTexture", 0)

	gl.ActiveTexture(gl.TEXTURE0)

	for i := range r.meshes {
		m := &r.meshes[i]
		mat := m.gpu.Material

		r.program.SetMat4("uLocal", m.local.Ptr())
		r.program.SetVec3("uBaseColor", mat.BaseColor[0], mat.BaseColor[1], mat.BaseColor[2])
		r.program.SetVec3("uTint", mat.Tint[0], mat.Tint[1], mat.Tint[2])
		r.program.SetFloat("uAlphaTest", mat.AlphaTest)

		if mat.TextureID != 0 {
			gl.BindTexture(gl.TEXTURE_2D, mat.TextureID)
		} else {
			gl.BindTexture(gl.TEXTURE_2D, r.white)
		}

		m.gpu.DrawInstanced(int32(count))
	}
}

// streamBuffer orphans and refills a per-frame instance stream.
func streamBuffer(vbo uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, nil, gl.STREAM_DRAW)
	if len(data) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, unsafe.Pointer(&data[0]))
	}
}

// Destroy releases all GPU resources owned by the renderer.
func (r *MeshRenderer) Destroy() {
	for _, m := range r.meshes {
		m.gpu.Destroy()
	}
	r.meshes = nil
	if r.program != nil {
		r.program.Destroy()
		r.program = nil
	}
	if r.white != 0 {
		gl.DeleteTextures(1, &r.white)
		r.white = 0
	}
	if r.transformVBO != 0 {
		gl.DeleteBuffers(1, &r.transformVBO)
		r.transformVBO = 0
	}
	if r.fadeVBO != 0 {
		gl.DeleteBuffers(1, &r.fadeVBO)
		r.fadeVBO = 0
	}
}
