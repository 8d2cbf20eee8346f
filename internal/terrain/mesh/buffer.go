package mesh

// FloatsPerVertex is the stride of Interleaved: position, normal, color.
const FloatsPerVertex = 9

// Interleaved packs the mesh for upload as position(3) normal(3) color(3)
// per vertex. Normals are flat; vertices without a color are white.
func (m *MeshData) Interleaved() []float32 {
	normals := m.FlatNormals()
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for i, v := range m.Vertices {
		n := normals[i]
		r, g, b := float32(1), float32(1), float32(1)
		if i < len(m.Colors) {
			fr, fg, fb := m.Colors[i].Floats()
			r, g, b = float32(fr), float32(fg), float32(fb)
		}
		out = append(out, v.X, v.Y, v.Z, n.X, n.Y, n.Z, r, g, b)
	}
	return out
}

// Positions packs vertex positions only.
func (m *MeshData) Positions() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}
