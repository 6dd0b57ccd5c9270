// Package pipeline runs the projection core on the CPU: a data-parallel
// vertex pass followed by primitive assembly and discard.
package pipeline

import (
	"runtime"
	"sync"

	"github.com/Faultbox/mapproj/internal/discard"
	"github.com/Faultbox/mapproj/internal/mesh"
	"github.com/Faultbox/mapproj/internal/projection"
)

// Result holds the projected vertices and the indices of the primitives
// that survived the discard filter, in mesh order.
type Result struct {
	Vertices  []projection.ProjectedVertex
	Lines     []uint32
	Triangles []uint32

	DiscardedLines     int
	DiscardedTriangles int
}

// Line returns accepted line i.
func (r *Result) Line(i int) [2]projection.ProjectedVertex {
	return [2]projection.ProjectedVertex{
		r.Vertices[r.Lines[2*i]],
		r.Vertices[r.Lines[2*i+1]],
	}
}

// Triangle returns accepted triangle i.
func (r *Result) Triangle(i int) [3]projection.ProjectedVertex {
	return [3]projection.ProjectedVertex{
		r.Vertices[r.Triangles[3*i]],
		r.Vertices[r.Triangles[3*i+1]],
		r.Vertices[r.Triangles[3*i+2]],
	}
}

// LineCount returns the number of accepted lines.
func (r *Result) LineCount() int { return len(r.Lines) / 2 }

// TriangleCount returns the number of accepted triangles.
func (r *Result) TriangleCount() int { return len(r.Triangles) / 3 }

// Pipeline projects meshes for a frame. The zero value uses one worker per CPU.
type Pipeline struct {
	Workers int
}

// New creates a pipeline with the given worker count (<= 0 means GOMAXPROCS).
func New(workers int) *Pipeline {
	return &Pipeline{Workers: workers}
}

func (p *Pipeline) workers() int {
	if p == nil || p.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return p.Workers
}

// Run projects m under f. The frame is read-only for the whole run and the
// vertex pass completes before any primitive is assembled.
func (p *Pipeline) Run(f projection.Frame, m *mesh.Mesh) *Result {
	workers := p.workers()
	res := &Result{Vertices: make([]projection.ProjectedVertex, len(m.Vertices))}

	proj := projection.For(f.Mode)
	chunks(workers, len(m.Vertices), func(start, end int) {
		for i := start; i < end; i++ {
			res.Vertices[i] = projection.ProjectVertex(proj, f, m.Vertices[i])
		}
	})

	res.Lines, res.DiscardedLines = assemble(workers, res.Vertices, m.Lines, discard.Line{})
	res.Triangles, res.DiscardedTriangles = assemble(workers, res.Vertices, m.Triangles, discard.Triangle{})
	return res
}

// assemble filters indexed primitives in parallel and compacts the
// survivors in their original order.
func assemble(workers int, verts []projection.ProjectedVertex, indices []uint32, filter discard.Filter) ([]uint32, int) {
	arity := filter.Arity()
	n := len(indices) / arity
	keep := make([]bool, n)

	chunks(workers, n, func(start, end int) {
		prim := make([]projection.ProjectedVertex, arity)
		for i := start; i < end; i++ {
			for k := range arity {
				prim[k] = verts[indices[i*arity+k]]
			}
			keep[i] = filter.ShouldEmit(prim)
		}
	})

	out := make([]uint32, 0, len(indices))
	for i, ok := range keep {
		if ok {
			out = append(out, indices[i*arity:(i+1)*arity]...)
		}
	}
	return out, n - len(out)/arity
}

// chunks splits [0, n) into one contiguous range per worker and waits for
// all of them.
func chunks(workers, n int, fn func(start, end int)) {
	if n == 0 {
		return
	}
	workers = max(1, min(workers, n))
	if workers == 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	size := (n + workers - 1) / workers
	for w := range workers {
		start := w * size
		end := min(start+size, n)
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
