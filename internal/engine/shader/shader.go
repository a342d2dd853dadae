// Package shader compiles GLSL sources into linked OpenGL programs.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CompileProgram compiles a vertex and fragment shader pair and links them.
// The intermediate shader objects are deleted once the program is linked.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vert, err := compile(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compile(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := programLog(program)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", log)
	}
	return program, nil
}

func compile(source string, kind uint32, name string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}
	return shader, nil
}

func programLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	log := make([]byte, logLen+1)
	gl.GetProgramInfoLog(program, logLen, nil, &log[0])
	return string(log)
}

// GetUniform returns the uniform location for name, -1 if the uniform is
// absent or was optimized out.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
