package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/islegen/internal/engine/debug"
	"github.com/Faultbox/islegen/internal/engine/scene/shaders"
	"github.com/Faultbox/islegen/internal/engine/shader"
	"github.com/Faultbox/islegen/pkg/math"
)

// boundsPadding keeps outlines from z-fighting with chunk edges.
const boundsPadding = 0.05

// BoundsRenderer draws chunk bounding boxes as a line overlay.
type BoundsRenderer struct {
	program *shader.Program

	vao   uint32
	vbo   uint32
	count int32

	Color [4]float32
}

// NewBoundsRenderer compiles the line shader.
func NewBoundsRenderer() (*BoundsRenderer, error) {
	program, err := shader.NewProgram(shaders.LinesVertexShader, shaders.LinesFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("lines shader: %w", err)
	}

	br := &BoundsRenderer{
		program: program,
		Color:   [4]float32{1, 0.85, 0.2, 1},
	}
	gl.GenVertexArrays(1, &br.vao)
	gl.BindVertexArray(br.vao)

	gl.GenBuffers(1, &br.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, br.vbo)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	return br, nil
}

// SetBoxes replaces the outlined boxes.
func (br *BoundsRenderer) SetBoxes(boxes []debug.Box) {
	data := debug.BoxesLines(boxes, boundsPadding)
	br.count = int32(len(data) / 3)
	if len(data) == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, br.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Render draws the outlines.
func (br *BoundsRenderer) Render(viewProj math.Mat4) {
	if br.count == 0 {
		return
	}

	br.program.Use()
	br.program.SetMat4("uViewProj", viewProj)
	br.program.SetVec4("uColor", br.Color)

	gl.BindVertexArray(br.vao)
	gl.DrawArrays(gl.LINES, 0, br.count)
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (br *BoundsRenderer) Destroy() {
	gl.DeleteVertexArrays(1, &br.vao)
	gl.DeleteBuffers(1, &br.vbo)
	br.program.Delete()
}
