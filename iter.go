package wedge

import (
	"iter"
)

// Edges walks the ring around v clockwise, starting at its base edge and
// yielding every incident edge exactly once. The sequence is empty for an
// isolated or invalid vertex, and may be ranged over again to restart.
//
// The walk panics with an *InvariantError if the ring is corrupted: an edge
// in it is not incident to v, or it does not close within as many steps as
// the mesh has edges.
func (v Vertex[V, E, F]) Edges() iter.Seq[Edge[V, E, F]] {
	return func(yield func(Edge[V, E, F]) bool) {
		start, ok := v.ringStart()
		if !ok {
			return
		}

		cur := start
		for visited := 1; ; visited++ {
			if !yield(Edge[V, E, F]{acc: v.acc, index: cur}) {
				return
			}
			next, done := v.step(start, cur, visited)
			if done {
				return
			}
			cur = next
		}
	}
}

func (v Vertex[V, E, F]) ringStart() (Index, bool) {
	unlock := v.acc.lock()
	defer unlock()

	m := v.acc.m
	r := m.verts.get(v.index)
	if r == nil || r.baseEdge == none {
		return 0, false
	}
	if _, err := m.ringHalfEdge(r.baseEdge, v.index); err != nil {
		m.violation("traverse", err)
	}
	return r.baseEdge, true
}

// step returns the edge after cur in the ring around v and whether the ring
// has closed. visited is the number of edges yielded so far.
func (v Vertex[V, E, F]) step(start, cur Index, visited int) (Index, bool) {
	unlock := v.acc.lock()
	defer unlock()

	m := v.acc.m
	next, err := m.nextAround(cur, v.index)
	if err != nil {
		m.violation("traverse", err)
	}
	if next == start {
		return next, true
	}
	if _, err := m.ringHalfEdge(next, v.index); err != nil {
		m.violation("traverse", err)
	}
	if visited >= m.edges.len() {
		m.violation("traverse", &InvariantError{
			Vertex: v.index,
			Edge:   next,
			Reason: "ring does not return to its base edge",
		})
	}
	return next, false
}

// Faces yields, for each edge around v in ring order, the face linked on
// the side of v. Edges without a linked face are skipped.
func (v Vertex[V, E, F]) Faces() iter.Seq[Face[V, E, F]] {
	return func(yield func(Face[V, E, F]) bool) {
		for e := range v.Edges() {
			f, ok := e.Face(v.index)
			if !ok {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

// AdjacentFaces yields the faces linked on either side of e, first side
// first. A self-loop has a single side.
func (e Edge[V, E, F]) AdjacentFaces() iter.Seq[Face[V, E, F]] {
	return func(yield func(Face[V, E, F]) bool) {
		faces, n := e.faceLinks()
		for _, f := range faces[:n] {
			if !yield(Face[V, E, F]{acc: e.acc, index: f}) {
				return
			}
		}
	}
}

func (e Edge[V, E, F]) faceLinks() ([2]Index, int) {
	unlock := e.acc.lock()
	defer unlock()

	var faces [2]Index
	r := e.acc.m.edges.get(e.index)
	if r == nil {
		return faces, 0
	}
	sides := 2
	if r.isLoop() {
		sides = 1
	}
	n := 0
	for _, h := range r.half[:sides] {
		if h.nextFace != none {
			faces[n] = h.nextFace
			n++
		}
	}
	return faces, n
}

func (a access[V, E, F]) numVertices() int {
	unlock := a.lock()
	defer unlock()
	return a.m.verts.len()
}

func (a access[V, E, F]) numEdges() int {
	unlock := a.lock()
	defer unlock()
	return a.m.edges.len()
}

func (a access[V, E, F]) numFaces() int {
	unlock := a.lock()
	defer unlock()
	return a.m.faces.len()
}

func (a access[V, E, F]) vertices() iter.Seq[Vertex[V, E, F]] {
	return func(yield func(Vertex[V, E, F]) bool) {
		for i := 0; i < a.numVertices(); i++ {
			if !yield(Vertex[V, E, F]{acc: a, index: Index(i)}) {
				return
			}
		}
	}
}

func (a access[V, E, F]) edges() iter.Seq[Edge[V, E, F]] {
	return func(yield func(Edge[V, E, F]) bool) {
		for i := 0; i < a.numEdges(); i++ {
			if !yield(Edge[V, E, F]{acc: a, index: Index(i)}) {
				return
			}
		}
	}
}

func (a access[V, E, F]) faces() iter.Seq[Face[V, E, F]] {
	return func(yield func(Face[V, E, F]) bool) {
		for i := 0; i < a.numFaces(); i++ {
			if !yield(Face[V, E, F]{acc: a, index: Index(i)}) {
				return
			}
		}
	}
}

// Vertices yields every vertex in index order. Vertices added while the
// sequence is consumed are yielded too.
func (m *Mesh[V, E, F]) Vertices() iter.Seq[Vertex[V, E, F]] {
	return access[V, E, F]{m: m}.vertices()
}

// Edges yields every edge in index order.
func (m *Mesh[V, E, F]) Edges() iter.Seq[Edge[V, E, F]] {
	return access[V, E, F]{m: m}.edges()
}

// Faces yields every face in index order.
func (m *Mesh[V, E, F]) Faces() iter.Seq[Face[V, E, F]] {
	return access[V, E, F]{m: m}.faces()
}
