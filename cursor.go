package wedge

// access is how a cursor reaches its mesh. Outside a transaction every call
// takes the read lock; inside one the transaction already holds the lock.
type access[V, E, F any] struct {
	m  *Mesh[V, E, F]
	tx *ReadTx[V, E, F]
}

func nop() {}

func (a access[V, E, F]) lock() (unlock func()) {
	if a.tx != nil {
		a.tx.check()
		return nop
	}
	a.m.mu.RLock()
	return a.m.mu.RUnlock
}

// Vertex is a read cursor on one vertex of a mesh. The zero value is not
// usable; cursors come from a Mesh, a transaction or another cursor.
type Vertex[V, E, F any] struct {
	acc   access[V, E, F]
	index Index
}

func (v Vertex[V, E, F]) Index() Index {
	return v.index
}

func (v Vertex[V, E, F]) IsValid() bool {
	unlock := v.acc.lock()
	defer unlock()
	return v.acc.m.verts.valid(v.index)
}

// Data returns a copy of the vertex payload, or false if the vertex does not
// exist.
func (v Vertex[V, E, F]) Data() (V, bool) {
	unlock := v.acc.lock()
	defer unlock()

	r := v.acc.m.verts.get(v.index)
	if r == nil {
		var zero V
		return zero, false
	}
	return r.data, true
}

// BaseEdge returns the edge the ring around v starts from. Isolated and
// invalid vertices have none.
func (v Vertex[V, E, F]) BaseEdge() (Edge[V, E, F], bool) {
	b, ok := v.baseEdgeIndex()
	if !ok {
		return Edge[V, E, F]{}, false
	}
	return Edge[V, E, F]{acc: v.acc, index: b}, true
}

func (v Vertex[V, E, F]) baseEdgeIndex() (Index, bool) {
	unlock := v.acc.lock()
	defer unlock()

	r := v.acc.m.verts.get(v.index)
	if r == nil {
		return 0, false
	}
	return optional(r.baseEdge)
}

// Degree is the number of edges around v. A self-loop counts once.
func (v Vertex[V, E, F]) Degree() int {
	n := 0
	for range v.Edges() {
		n++
	}
	return n
}

// Edge is a read cursor on one edge of a mesh.
type Edge[V, E, F any] struct {
	acc   access[V, E, F]
	index Index
}

func (e Edge[V, E, F]) Index() Index {
	return e.index
}

func (e Edge[V, E, F]) IsValid() bool {
	unlock := e.acc.lock()
	defer unlock()
	return e.acc.m.edges.valid(e.index)
}

// Data returns a copy of the edge payload, or false if the edge does not
// exist.
func (e Edge[V, E, F]) Data() (E, bool) {
	unlock := e.acc.lock()
	defer unlock()

	r := e.acc.m.edges.get(e.index)
	if r == nil {
		var zero E
		return zero, false
	}
	return r.data, true
}

// Endpoints returns the two vertices of e in the order they were given to
// AddEdge. Both are the same vertex for a self-loop.
func (e Edge[V, E, F]) Endpoints() (Vertex[V, E, F], Vertex[V, E, F], bool) {
	unlock := e.acc.lock()
	defer unlock()

	r := e.acc.m.edges.get(e.index)
	if r == nil {
		return Vertex[V, E, F]{}, Vertex[V, E, F]{}, false
	}
	return Vertex[V, E, F]{acc: e.acc, index: r.half[0].vertex},
		Vertex[V, E, F]{acc: e.acc, index: r.half[1].vertex},
		true
}

// Other returns the endpoint of e opposite to v. For a self-loop on v that is
// v itself.
func (e Edge[V, E, F]) Other(v Index) (Vertex[V, E, F], bool) {
	unlock := e.acc.lock()
	defer unlock()

	r := e.acc.m.edges.get(e.index)
	if r == nil {
		return Vertex[V, E, F]{}, false
	}
	switch v {
	case r.half[0].vertex:
		return Vertex[V, E, F]{acc: e.acc, index: r.half[1].vertex}, true
	case r.half[1].vertex:
		return Vertex[V, E, F]{acc: e.acc, index: r.half[0].vertex}, true
	}
	return Vertex[V, E, F]{}, false
}

func (e Edge[V, E, F]) IsLoop() bool {
	unlock := e.acc.lock()
	defer unlock()

	r := e.acc.m.edges.get(e.index)
	return r != nil && r.isLoop()
}

// Next returns the edge after e going clockwise around its endpoint v.
func (e Edge[V, E, F]) Next(v Index) (Edge[V, E, F], bool) {
	return e.link(v, func(h *halfEdge) Index { return h.nextEdge })
}

// Prev returns the edge before e going clockwise around its endpoint v.
func (e Edge[V, E, F]) Prev(v Index) (Edge[V, E, F], bool) {
	return e.link(v, func(h *halfEdge) Index { return h.prevEdge })
}

func (e Edge[V, E, F]) link(v Index, field func(*halfEdge) Index) (Edge[V, E, F], bool) {
	unlock := e.acc.lock()
	defer unlock()

	r := e.acc.m.edges.get(e.index)
	if r == nil {
		return Edge[V, E, F]{}, false
	}
	h := r.halfEdgeFor(v)
	if h == nil {
		return Edge[V, E, F]{}, false
	}
	i, ok := optional(field(h))
	if !ok {
		return Edge[V, E, F]{}, false
	}
	return Edge[V, E, F]{acc: e.acc, index: i}, true
}

// Face returns the face linked on the side of e at its endpoint v.
func (e Edge[V, E, F]) Face(v Index) (Face[V, E, F], bool) {
	unlock := e.acc.lock()
	defer unlock()

	r := e.acc.m.edges.get(e.index)
	if r == nil {
		return Face[V, E, F]{}, false
	}
	h := r.halfEdgeFor(v)
	if h == nil {
		return Face[V, E, F]{}, false
	}
	f, ok := optional(h.nextFace)
	if !ok {
		return Face[V, E, F]{}, false
	}
	return Face[V, E, F]{acc: e.acc, index: f}, true
}

// Face is a read cursor on one face of a mesh.
type Face[V, E, F any] struct {
	acc   access[V, E, F]
	index Index
}

func (f Face[V, E, F]) Index() Index {
	return f.index
}

func (f Face[V, E, F]) IsValid() bool {
	unlock := f.acc.lock()
	defer unlock()
	return f.acc.m.faces.valid(f.index)
}

// Data returns a copy of the face payload, or false if the face does not
// exist.
func (f Face[V, E, F]) Data() (F, bool) {
	unlock := f.acc.lock()
	defer unlock()

	r := f.acc.m.faces.get(f.index)
	if r == nil {
		var zero F
		return zero, false
	}
	return r.data, true
}

func (f Face[V, E, F]) BaseEdge() (Edge[V, E, F], bool) {
	unlock := f.acc.lock()
	defer unlock()

	r := f.acc.m.faces.get(f.index)
	if r == nil {
		return Edge[V, E, F]{}, false
	}
	return Edge[V, E, F]{acc: f.acc, index: r.baseEdge}, true
}

func (m *Mesh[V, E, F]) Vertex(i Index) Vertex[V, E, F] {
	return Vertex[V, E, F]{acc: access[V, E, F]{m: m}, index: i}
}

func (m *Mesh[V, E, F]) Edge(i Index) Edge[V, E, F] {
	return Edge[V, E, F]{acc: access[V, E, F]{m: m}, index: i}
}

func (m *Mesh[V, E, F]) Face(i Index) Face[V, E, F] {
	return Face[V, E, F]{acc: access[V, E, F]{m: m}, index: i}
}
