package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/mapproj/internal/mesh"
)

// gpuMesh is an uploaded mesh: lon/lat pairs plus one index buffer.
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
	primitive     uint32
}

// lonLatVertices flattens mesh vertices into interleaved float32 lon/lat pairs.
func lonLatVertices(m *mesh.Mesh) []float32 {
	out := make([]float32, 0, 2*len(m.Vertices))
	for _, v := range m.Vertices {
		out = append(out, float32(v.Lon), float32(v.Lat))
	}
	return out
}

// uploadMesh creates buffers for the triangles of m when primitive is
// gl.TRIANGLES, its lines otherwise. Empty meshes return nil.
func uploadMesh(m *mesh.Mesh, primitive uint32) *gpuMesh {
	if m == nil || len(m.Vertices) == 0 {
		return nil
	}
	indices := m.Lines
	if primitive == gl.TRIANGLES {
		indices = m.Triangles
	}
	if len(indices) == 0 {
		return nil
	}
	verts := lonLatVertices(m)

	g := &gpuMesh{count: int32(len(indices)), primitive: primitive}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	// lon_lat (location = 0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	return g
}

func (g *gpuMesh) draw() {
	if g == nil {
		return
	}
	gl.BindVertexArray(g.vao)
	gl.DrawElementsWithOffset(g.primitive, g.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

func (g *gpuMesh) destroy() {
	if g == nil {
		return
	}
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
}
