// Package renderer draws composed render requests with OpenGL.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/walkabout/internal/engine/scene"
	"github.com/Faultbox/walkabout/internal/engine/shader"
	"github.com/Faultbox/walkabout/internal/logger"
	"github.com/Faultbox/walkabout/pkg/formats"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer owns the GL program and the uploaded mesh buffers.
type Renderer struct {
	config Config

	program  uint32
	locProj  int32
	locView  int32
	locModel int32
	locTex   int32

	vao         uint32
	vbo         uint32
	vertexCount int32
}

// floats per vertex in the interleaved buffer: position xyz + texcoord uv.
const vertexStride = 5

// New creates a new renderer.
// Must be called after the OpenGL context exists.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	gpu := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", gpu),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	program, err := shader.CompileProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("creating mesh shader: %w", err)
	}
	r.program = program
	r.locProj = shader.GetUniform(program, "uProj")
	r.locView = shader.GetUniform(program, "uView")
	r.locModel = shader.GetUniform(program, "uModel")
	r.locTex = shader.GetUniform(program, "uTexture")

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetMesh uploads mesh geometry to the GPU, replacing any previous geometry.
// Called when a decoded mesh arrives; drawing an empty mesh is a no-op.
func (r *Renderer) SetMesh(mesh formats.Mesh) {
	data := make([]float32, 0, len(mesh.Triangles)*3*vertexStride)
	for _, tri := range mesh.Triangles {
		for _, v := range tri {
			data = append(data,
				v.Position.X, v.Position.Y, v.Position.Z,
				v.TexCoord.X, v.TexCoord.Y)
		}
	}
	r.vertexCount = int32(len(data) / vertexStride)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, vertexStride*4, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("mesh uploaded", zap.Int32("vertices", r.vertexCount))
}

// Draw renders one composed request.
func (r *Renderer) Draw(req scene.RenderRequest) {
	if r.vertexCount == 0 {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locProj, 1, false, req.Proj.Ptr())
	gl.UniformMatrix4fv(r.locView, 1, false, req.View.Ptr())
	gl.UniformMatrix4fv(r.locModel, 1, false, req.Model.Ptr())

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, req.Texture)
	gl.Uniform1i(r.locTex, 0)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, r.vertexCount)
	gl.BindVertexArray(0)
}

const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;

uniform mat4 uProj;
uniform mat4 uView;
uniform mat4 uModel;

out vec2 vTexCoord;

void main() {
	gl_Position = uProj * uView * uModel * vec4(aPos, 1.0);
	vTexCoord = aTexCoord;
}
`

const meshFragmentShader = `
#version 410 core

in vec2 vTexCoord;
uniform sampler2D uTexture;
out vec4 FragColor;

void main() {
	FragColor = texture(uTexture, vTexCoord);
}
`
