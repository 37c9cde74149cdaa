package impostor

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/tibogot/greenwood/internal/engine/impostor/shaders"
	"github.com/tibogot/greenwood/internal/engine/lod"
	"github.com/tibogot/greenwood/internal/engine/shader"
)

// quadCorners is the camera-facing unit quad, two triangles, corners in
// [-0.5, 0.5]. The vertex shader scales it to the bake sphere diameter.
var quadCorners = [12]float32{
	-0.5, -0.5,
	0.5, -0.5,
	0.5, 0.5,
	-0.5, -0.5,
	0.5, 0.5,
	-0.5, 0.5,
}

// BillboardRenderer draws a compacted tier buffer as instanced impostor
// quads against one atlas. The mid tier blends three neighboring sprites;
// the far tier snaps to the nearest one. Instance data is streamed each
// frame, so a renderer holds no per-frame state between draws.
type BillboardRenderer struct {
	atlas   *Atlas
	program *shader.Program

	vao     uint32
	quadVBO uint32

	// Per-instance streams: model matrices, world centers, signed fades.
	transformVBO uint32
	centerVBO    uint32
	fadeVBO      uint32
}

// NewBillboardRenderer compiles the impostor program and builds the quad
// VAO with its per-instance attribute streams.
func NewBillboardRenderer(atlas *Atlas) (*BillboardRenderer, error) {
	program, err := shader.NewProgram(shaders.ImpostorVertexShader, shaders.ImpostorFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("impostor shader: %w", err)
	}

	r := &BillboardRenderer{
		atlas:   atlas,
		program: program,
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadCorners)*4, unsafe.Pointer(&quadCorners[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)

	// Model matrix occupies attribute locations 2-5, one vec4 per column.
	gl.GenBuffers(1, &r.transformVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.transformVBO)
	for col := uint32(0); col < 4; col++ {
		loc := 2 + col
		gl.VertexAttribPointerWithOffset(loc, 4, gl.FLOAT, false, 16*4, uintptr(col*16))
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribDivisor(loc, 1)
	}

	gl.GenBuffers(1, &r.centerVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.centerVBO)
	gl.VertexAttribPointerWithOffset(6, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(6)
	gl.VertexAttribDivisor(6, 1)

	gl.GenBuffers(1, &r.fadeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.fadeVBO)
	gl.VertexAttribPointerWithOffset(7, 1, gl.FLOAT, false, 4, 0)
	gl.EnableVertexAttribArray(7)
	gl.VertexAttribDivisor(7, 1)

	gl.BindVertexArray(0)

	return r, nil
}

// Atlas returns the atlas this renderer samples.
func (r *BillboardRenderer) Atlas() *Atlas {
	return r.atlas
}

// Draw streams the tier buffer to the GPU and issues one instanced draw.
// singleSprite selects the far-tier path: nearest sprite, no blending.
func (r *BillboardRenderer) Draw(buf *lod.TierBuffer, frame FrameUniforms, singleSprite bool) {
	count := buf.Count()
	if count == 0 {
		return
	}

	stream(r.transformVBO, buf.Transforms)
	stream(r.centerVBO, buf.Centers)
	stream(r.fadeVBO, buf.Fades)

	r.program.Use()
	r.program.SetMat4("uViewProj", frame.ViewProj.Ptr())
	r.program.SetVec3("uCameraPos", frame.CameraPos.X, frame.CameraPos.Y, frame.CameraPos.Z)
	r.program.SetVec3("uSphereCenter", r.atlas.Sphere.Center.X, r.atlas.Sphere.Center.Y, r.atlas.Sphere.Center.Z)
	r.program.SetFloat("uRadius", r.atlas.Sphere.Radius)
	r.program.SetFloat("uGrid", float32(r.atlas.Config.SpritesPerSide))
	r.program.SetInt("uHemi", boolInt(r.atlas.Config.Hemisphere))
	r.program.SetInt("uSingleSprite", boolInt(singleSprite))

	r.program.SetVec3("uSunDirection", frame.SunDirection.X, frame.SunDirection.Y, frame.SunDirection.Z)
	r.program.SetVec3("uSunColor", frame.SunColor[0], frame.SunColor[1], frame.SunColor[2])
	r.program.SetVec3("uAmbientColor", frame.AmbientColor[0], frame.AmbientColor[1], frame.AmbientColor[2])
	r.program.SetFloat("uAlphaClamp", frame.AlphaClamp)
	r.program.SetFloat("uDitherPhase", frame.DitherPhase)
	r.program.SetInt("uAlbedoAtlas", 0)
	r.program.SetInt("uNormalAtlas", 1)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlas.Albedo)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, r.atlas.Normal)

	gl.BindVertexArray(r.vao)
	gl.DrawArraysInstanced(gl.TRIANGLES, 0, 6, int32(count))
	gl.BindVertexArray(0)

	gl.ActiveTexture(gl.TEXTURE0)
}

// stream orphans the buffer and uploads fresh per-frame instance data.
func stream(vbo uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, nil, gl.STREAM_DRAW)
	if len(data) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, unsafe.Pointer(&data[0]))
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// Destroy releases the renderer's GL resources. The atlas is owned by the
// caller and is not touched.
func (r *BillboardRenderer) Destroy() {
	if r.program != nil {
		r.program.Destroy()
		r.program = nil
	}
	for _, vbo := range []*uint32{&r.quadVBO, &r.transformVBO, &r.centerVBO, &r.fadeVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
			*vbo = 0
		}
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
}
