package wedge

import (
	"iter"
)

// ReadTx is a read-only view of a mesh that stays consistent for the whole
// View callback. It must not be used after the callback returns.
//
// Inside the callback, use only the transaction and the cursors it hands
// out. Cursors from the Mesh and Mesh methods take the lock again and may
// deadlock.
type ReadTx[V, E, F any] struct {
	m      *Mesh[V, E, F]
	closed bool
}

func (tx *ReadTx[V, E, F]) check() {
	if tx.closed {
		panic("wedge: transaction used after its callback returned")
	}
}

func (tx *ReadTx[V, E, F]) access() access[V, E, F] {
	return access[V, E, F]{m: tx.m, tx: tx}
}

func (tx *ReadTx[V, E, F]) NumVertices() int {
	tx.check()
	return tx.m.verts.len()
}

func (tx *ReadTx[V, E, F]) NumEdges() int {
	tx.check()
	return tx.m.edges.len()
}

func (tx *ReadTx[V, E, F]) NumFaces() int {
	tx.check()
	return tx.m.faces.len()
}

func (tx *ReadTx[V, E, F]) Vertex(i Index) Vertex[V, E, F] {
	return Vertex[V, E, F]{acc: tx.access(), index: i}
}

func (tx *ReadTx[V, E, F]) Edge(i Index) Edge[V, E, F] {
	return Edge[V, E, F]{acc: tx.access(), index: i}
}

func (tx *ReadTx[V, E, F]) Face(i Index) Face[V, E, F] {
	return Face[V, E, F]{acc: tx.access(), index: i}
}

func (tx *ReadTx[V, E, F]) Vertices() iter.Seq[Vertex[V, E, F]] {
	return tx.access().vertices()
}

func (tx *ReadTx[V, E, F]) Edges() iter.Seq[Edge[V, E, F]] {
	return tx.access().edges()
}

func (tx *ReadTx[V, E, F]) Faces() iter.Seq[Face[V, E, F]] {
	return tx.access().faces()
}

// Tx holds exclusive access to a mesh for the duration of an Update
// callback. Besides the builder operations it hands out write cursors.
//
// Inside the callback, use only the transaction and the cursors it hands
// out. Any Mesh method, or a cursor obtained from the Mesh, blocks forever
// on the lock Update already holds.
type Tx[V, E, F any] struct {
	ReadTx[V, E, F]
}

func (tx *Tx[V, E, F]) Vertex(i Index) VertexWriter[V, E, F] {
	return VertexWriter[V, E, F]{tx.ReadTx.Vertex(i)}
}

func (tx *Tx[V, E, F]) Edge(i Index) EdgeWriter[V, E, F] {
	return EdgeWriter[V, E, F]{tx.ReadTx.Edge(i)}
}

func (tx *Tx[V, E, F]) Face(i Index) FaceWriter[V, E, F] {
	return FaceWriter[V, E, F]{tx.ReadTx.Face(i)}
}

func (tx *Tx[V, E, F]) AddVertex(v V) Index {
	tx.check()
	return tx.m.addVertex(v)
}

func (tx *Tx[V, E, F]) AddEdge(e E, v1, v2 Index) (Index, error) {
	tx.check()
	return tx.m.addEdge(e, v1, v2)
}

func (tx *Tx[V, E, F]) AddFace(f F, base Index) (Index, error) {
	tx.check()
	return tx.m.addFace(f, base)
}

func (tx *Tx[V, E, F]) LinkFace(edge, vertex, face Index) error {
	tx.check()
	return tx.m.linkFace(edge, vertex, face)
}

func (tx *Tx[V, E, F]) AddLoop(payloads []E, vs ...Index) ([]Index, error) {
	tx.check()
	return tx.m.addLoop(payloads, vs)
}

// VertexWriter is a Vertex cursor that may also replace the payload.
type VertexWriter[V, E, F any] struct {
	Vertex[V, E, F]
}

// SetData replaces the payload and reports whether the vertex exists.
func (w VertexWriter[V, E, F]) SetData(v V) bool {
	w.acc.tx.check()

	r := w.acc.m.verts.get(w.index)
	if r == nil {
		return false
	}
	r.data = v
	return true
}

// EdgeWriter is an Edge cursor that may also replace the payload.
type EdgeWriter[V, E, F any] struct {
	Edge[V, E, F]
}

func (w EdgeWriter[V, E, F]) SetData(e E) bool {
	w.acc.tx.check()

	r := w.acc.m.edges.get(w.index)
	if r == nil {
		return false
	}
	r.data = e
	return true
}

// FaceWriter is a Face cursor that may also replace the payload.
type FaceWriter[V, E, F any] struct {
	Face[V, E, F]
}

func (w FaceWriter[V, E, F]) SetData(f F) bool {
	w.acc.tx.check()

	r := w.acc.m.faces.get(w.index)
	if r == nil {
		return false
	}
	r.data = f
	return true
}

// View runs fn with a read-only transaction. Other readers may run at the
// same time; mutations wait until fn returns.
//
// fn must read through tx only. Calling methods of m from fn is not
// allowed: the read lock is not reentrant, and a nested read waits behind
// any pending writer, which in turn waits for fn.
func (m *Mesh[V, E, F]) View(fn func(tx *ReadTx[V, E, F]) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tx := &ReadTx[V, E, F]{m: m}
	defer func() { tx.closed = true }()
	return fn(tx)
}

// Update runs fn with exclusive access to the mesh. Elements added before fn
// returns an error stay in the mesh; there is no rollback.
//
// fn must work through tx only. Calling methods of m from fn, or using
// cursors obtained from m, deadlocks.
func (m *Mesh[V, E, F]) Update(fn func(tx *Tx[V, E, F]) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &Tx[V, E, F]{ReadTx[V, E, F]{m: m}}
	defer func() { tx.closed = true }()
	return fn(tx)
}
