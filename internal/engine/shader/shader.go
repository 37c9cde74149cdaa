// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CompileProgram compiles vertex and fragment shaders and links them into a
// program. Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// GetUniform returns the uniform location for the given name, or -1 if the
// uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// Program wraps a linked program with a uniform location cache.
type Program struct {
	id       uint32
	uniforms map[string]int32
}

// NewProgram compiles and links the sources into a Program.
func NewProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &Program{id: id, uniforms: make(map[string]int32)}, nil
}

// ID returns the underlying GL program name.
func (p *Program) ID() uint32 {
	return p.id
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Uniform returns the cached location for a uniform name.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := GetUniform(p.id, name)
	p.uniforms[name] = loc
	return loc
}

// SetMat4 sets a mat4 uniform from a column-major float array.
func (p *Program) SetMat4(name string, m *float32) {
	gl.UniformMatrix4fv(p.Uniform(name), 1, false, m)
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, x, y, z float32) {
	gl.Uniform3f(p.Uniform(name), x, y, z)
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.Uniform(name), v)
}

// SetInt sets an int (or sampler) uniform.
func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.Uniform(name), v)
}

// Destroy deletes the program.
func (p *Program) Destroy() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
