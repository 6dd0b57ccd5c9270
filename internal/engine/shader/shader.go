// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/mapproj/internal/engine/shaders"
)

type stage struct {
	kind   uint32
	name   string
	source string
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	return link(
		stage{gl.VERTEX_SHADER, "vertex", vertexSrc},
		stage{gl.FRAGMENT_SHADER, "fragment", fragmentSrc},
	)
}

// CompileGeometryProgram is CompileProgram with a geometry stage between
// the vertex and fragment stages.
func CompileGeometryProgram(vertexSrc, geometrySrc, fragmentSrc string) (uint32, error) {
	return link(
		stage{gl.VERTEX_SHADER, "vertex", vertexSrc},
		stage{gl.GEOMETRY_SHADER, "geometry", geometrySrc},
		stage{gl.FRAGMENT_SHADER, "fragment", fragmentSrc},
	)
}

// Compile builds a generated program, with or without a geometry stage.
func Compile(p shaders.Program) (uint32, error) {
	var (
		prog uint32
		err  error
	)
	if p.Geometry == "" {
		prog, err = CompileProgram(p.Vertex, p.Fragment)
	} else {
		prog, err = CompileGeometryProgram(p.Vertex, p.Geometry, p.Fragment)
	}
	if err != nil {
		return 0, fmt.Errorf("program %s: %w", p.Name, err)
	}
	return prog, nil
}

func link(stages ...stage) (uint32, error) {
	ids := make([]uint32, 0, len(stages))
	defer func() {
		for _, id := range ids {
			gl.DeleteShader(id)
		}
	}()

	for _, s := range stages {
		id, err := compileShader(s.source, s.kind, s.name)
		if err != nil {
			return 0, err
		}
		ids = append(ids, id)
	}

	program := gl.CreateProgram()
	for _, id := range ids {
		gl.AttachShader(program, id)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, max(logLen, 1))
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
		log := make([]byte, max(logLen, 1))
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
