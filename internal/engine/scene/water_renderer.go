package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/islegen/internal/engine/scene/shaders"
	"github.com/Faultbox/islegen/internal/engine/shader"
	"github.com/Faultbox/islegen/internal/terrain"
	"github.com/Faultbox/islegen/pkg/math"
)

// WaterRenderer draws the translucent water plane.
type WaterRenderer struct {
	program *shader.Program

	vao   uint32
	vbo   uint32
	count int32

	model math.Mat4
	color [4]float32
}

// NewWaterRenderer compiles the water shader.
func NewWaterRenderer() (*WaterRenderer, error) {
	program, err := shader.NewProgram(shaders.WaterVertexShader, shaders.WaterFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("water shader: %w", err)
	}
	return &WaterRenderer{program: program}, nil
}

// SetWater uploads a water plane, replacing any previous one.
func (wr *WaterRenderer) SetWater(w *terrain.Water) {
	wr.clear()

	data := w.Mesh.Positions()
	wr.count = int32(len(w.Mesh.Vertices))
	wr.model = math.Model(w.Position, w.Scale)
	wr.color = w.Color

	gl.GenVertexArrays(1, &wr.vao)
	gl.BindVertexArray(wr.vao)

	gl.GenBuffers(1, &wr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, wr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
}

// Render draws the water plane blended over the terrain.
func (wr *WaterRenderer) Render(viewProj math.Mat4) {
	if wr.vao == 0 {
		return
	}

	wr.program.Use()
	wr.program.SetMat4("uMVP", viewProj.Mul(wr.model))
	wr.program.SetVec4("uWaterColor", wr.color)

	gl.Enable(gl.BLEND)
	gl.DepthMask(false)
	gl.BindVertexArray(wr.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, wr.count)
	gl.BindVertexArray(0)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

func (wr *WaterRenderer) clear() {
	if wr.vao != 0 {
		gl.DeleteVertexArrays(1, &wr.vao)
		wr.vao = 0
	}
	if wr.vbo != 0 {
		gl.DeleteBuffers(1, &wr.vbo)
		wr.vbo = 0
	}
}

// Destroy releases all resources.
func (wr *WaterRenderer) Destroy() {
	wr.clear()
	wr.program.Delete()
}
