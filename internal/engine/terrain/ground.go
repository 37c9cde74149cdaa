package terrain

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/tibogot/greenwood/internal/engine/mesh"
	"github.com/tibogot/greenwood/internal/engine/shader"
	"github.com/tibogot/greenwood/pkg/math"
)

const groundVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uViewProj;

out vec3 vNormal;
out float vHeight;

void main() {
    gl_Position = uViewProj * vec4(aPos, 1.0);
    vNormal = aNormal;
    vHeight = aPos.y;
}
`

const groundFragmentShader = `
#version 410 core

in vec3 vNormal;
in float vHeight;

uniform vec3 uSunDirection;
uniform vec3 uSunColor;
uniform vec3 uAmbientColor;
uniform float uAmplitude;

out vec4 FragColor;

void main() {
    // Grass in the valleys, drier tones on the ridges.
    vec3 low = pow(vec3(0.22, 0.38, 0.16), vec3(2.2));
    vec3 high = pow(vec3(0.45, 0.42, 0.28), vec3(2.2));
    float t = clamp(vHeight / max(uAmplitude, 0.001) * 0.5 + 0.5, 0.0, 1.0);
    vec3 albedo = mix(low, high, t);

    vec3 n = normalize(vNormal);
    float diffuse = max(dot(n, uSunDirection), 0.0);
    vec3 lit = albedo * (uAmbientColor + uSunColor * diffuse);

    FragColor = vec4(pow(lit, vec3(1.0 / 2.2)), 1.0);
}
`

// GroundRenderer draws the heightfield as one static mesh.
type GroundRenderer struct {
	program   *shader.Program
	gpu       *mesh.GLMesh
	amplitude float32
}

// NewGroundRenderer tessellates the heightfield and uploads it.
func NewGroundRenderer(h *Heightfield) (*GroundRenderer, error) {
	program, err := shader.NewProgram(groundVertexShader, groundFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("ground shader: %w", err)
	}

	m := buildGroundMesh(h)

	var amplitude float32
	for _, v := range m.Vertices {
		amplitude = math.Max(amplitude, math.Abs(v.Position.Y))
	}

	return &GroundRenderer{
		program:   program,
		gpu:       mesh.Upload(m),
		amplitude: amplitude,
	}, nil
}

// buildGroundMesh samples the heightfield on its own grid and emits one
// vertex per grid point with a central-difference normal.
func buildGroundMesh(h *Heightfield) *mesh.Mesh {
	res := h.Resolution()
	size := h.Size()
	step := size / float32(res-1)

	m := &mesh.Mesh{
		Vertices: make([]mesh.Vertex, 0, res*res),
		Material: mesh.DefaultMaterial(),
	}

	for z := 0; z < res; z++ {
		for x := 0; x < res; x++ {
			wx := float32(x)*step - size/2
			wz := float32(z)*step - size/2
			wy := h.HeightAt(wx, wz)

			// Central differences, clamped at the border by HeightAt.
			dx := h.HeightAt(wx+step, wz) - h.HeightAt(wx-step, wz)
			dz := h.HeightAt(wx, wz+step) - h.HeightAt(wx, wz-step)
			normal := math.Vec3{X: -dx, Y: 2 * step, Z: -dz}.Normalize()

			m.Vertices = append(m.Vertices, mesh.Vertex{
				Position: math.Vec3{X: wx, Y: wy, Z: wz},
				Normal:   normal,
				TexCoord: math.Vec2{X: float32(x) / float32(res-1), Y: float32(z) / float32(res-1)},
			})
		}
	}

	for z := 0; z < res-1; z++ {
		for x := 0; x < res-1; x++ {
			i := uint32(z*res + x)
			m.Indices = append(m.Indices,
				i, i+uint32(res), i+1,
				i+1, i+uint32(res), i+uint32(res)+1,
			)
		}
	}

	m.ComputeBounds()
	return m
}

// Draw renders the ground.
func (r *GroundRenderer) Draw(viewProj *math.Mat4, sunDir math.Vec3, sunColor, ambient [3]float32) {
	r.program.Use()
	r.program.SetMat4("uViewProj", viewProj.Ptr())
	r.program.SetVec3("uSunDirection", sunDir.X, sunDir.Y, sunDir.Z)
	r.program.SetVec3("uSunColor", sunColor[0], sunColor[1], sunColor[2])
	r.program.SetVec3("uAmbientColor", ambient[0], ambient[1], ambient[2])
	r.program.SetFloat("uAmplitude", r.amplitude)

	gl.Disable(gl.CULL_FACE)
	r.gpu.Draw()
	gl.Enable(gl.CULL_FACE)
}

// Destroy releases GPU resources.
func (r *GroundRenderer) Destroy() {
	if r.gpu != nil {
		r.gpu.Destroy()
		r.gpu = nil
	}
	if r.program != nil {
		r.program.Destroy()
		r.program = nil
	}
}
