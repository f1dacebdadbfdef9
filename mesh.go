package wedge

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type halfEdge struct {
	vertex   Index // required.
	nextFace Index // optional. cw relative to vertex
	nextEdge Index // optional. cw around vertex
	prevEdge Index // optional. ccw around vertex
}

func newHalfEdge(v Index) halfEdge {
	return halfEdge{
		vertex:   v,
		nextFace: none,
		nextEdge: none,
		prevEdge: none,
	}
}

type vertexRecord[V any] struct {
	baseEdge Index // optional. entry point of the ring around the vertex
	data     V
}

// edgeRecord owns both of its half-edges. The side belonging to a vertex is
// found by matching the endpoint, never by position.
type edgeRecord[E any] struct {
	half [2]halfEdge
	data E
}

// halfEdgeFor returns the side of e attached to v, or nil if v is not an
// endpoint. For a self-loop this is always the first side; the second side
// is never spliced into a ring.
func (e *edgeRecord[E]) halfEdgeFor(v Index) *halfEdge {
	if e.half[0].vertex == v {
		return &e.half[0]
	}
	if e.half[1].vertex == v {
		return &e.half[1]
	}
	return nil
}

func (e *edgeRecord[E]) isLoop() bool {
	return e.half[0].vertex == e.half[1].vertex
}

type faceRecord[F any] struct {
	baseEdge Index // required.
	data     F
}

// Mesh is a half-edge mesh storing caller-defined payloads of type V, E and F
// on its vertices, edges and faces.
//
// A Mesh is safe for concurrent use: any number of readers may run while no
// mutation is in progress, and every mutation excludes the whole mesh.
type Mesh[V, E, F any] struct {
	mu sync.RWMutex

	id      uuid.UUID
	logger  logrus.FieldLogger
	metrics *metrics

	verts arena[vertexRecord[V]]
	edges arena[edgeRecord[E]]
	faces arena[faceRecord[F]]
}

// New returns an empty mesh.
func New[V, E, F any](opts ...Option) *Mesh[V, E, F] {
	o := newOptions(opts)
	logger := o.logger.WithField("mesh_id", o.id.String())

	return &Mesh[V, E, F]{
		id:      o.id,
		logger:  logger,
		metrics: newMetrics(o.registerer, o.id.String(), logger),
		verts:   newArena[vertexRecord[V]](o.vertexCapacity, o.limit),
		edges:   newArena[edgeRecord[E]](o.edgeCapacity, o.limit),
		faces:   newArena[faceRecord[F]](o.faceCapacity, o.limit),
	}
}

func (m *Mesh[V, E, F]) ID() uuid.UUID {
	return m.id
}

// Close unregisters the metrics of m. Meshes sharing an ID share their
// collectors, so closing one stops the metrics of all of them. The mesh stays
// usable after Close.
func (m *Mesh[V, E, F]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics.unregister()
}

func (m *Mesh[V, E, F]) NumVertices() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.verts.len()
}

func (m *Mesh[V, E, F]) NumEdges() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.edges.len()
}

func (m *Mesh[V, E, F]) NumFaces() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.faces.len()
}

func (m *Mesh[V, E, F]) IsValidVertexIndex(i Index) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.verts.valid(i)
}

func (m *Mesh[V, E, F]) IsValidEdgeIndex(i Index) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.edges.valid(i)
}

func (m *Mesh[V, E, F]) IsValidFaceIndex(i Index) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.faces.valid(i)
}

// AddVertex appends an isolated vertex and returns its index.
func (m *Mesh[V, E, F]) AddVertex(v V) Index {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addVertex(v)
}

// AddEdge connects v1 and v2 with a new edge and returns its index. The new
// edge becomes the last edge of the ring around each endpoint, that is the
// one right before the vertex's base edge. v1 == v2 makes a self-loop, which
// appears once in the ring of its vertex.
//
// If either vertex does not exist, AddEdge returns an error wrapping
// ErrInvalidReference and leaves the mesh untouched.
func (m *Mesh[V, E, F]) AddEdge(e E, v1, v2 Index) (Index, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addEdge(e, v1, v2)
}

// AddFace appends a face anchored at the edge base.
func (m *Mesh[V, E, F]) AddFace(f F, base Index) (Index, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addFace(f, base)
}

// LinkFace records face as the face following edge clockwise around vertex.
// vertex must be an endpoint of edge.
func (m *Mesh[V, E, F]) LinkFace(edge, vertex, face Index) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.linkFace(edge, vertex, face)
}

func (m *Mesh[V, E, F]) addVertex(v V) Index {
	m.ensureRoom(m.verts.room(1), kindVertex)

	i := m.verts.push(vertexRecord[V]{
		baseEdge: none,
		data:     v,
	})
	m.metrics.setElements(kindVertex, m.verts.len())
	return i
}

// splicePoint is where a new half-edge enters the ring of a vertex: right
// after last and right before base. last and base are the same half-edge
// in a ring of one, and both are nil for an empty ring.
type splicePoint struct {
	base    *halfEdge
	last    *halfEdge
	baseIdx Index
	lastIdx Index
}

func (m *Mesh[V, E, F]) splicePointFor(v Index) (splicePoint, error) {
	base := m.verts.items[v].baseEdge
	if base == none {
		return splicePoint{baseIdx: none, lastIdx: none}, nil
	}

	bh, err := m.ringHalfEdge(base, v)
	if err != nil {
		return splicePoint{}, err
	}
	last := bh.prevEdge
	lh, err := m.ringHalfEdge(last, v)
	if err != nil {
		return splicePoint{}, err
	}
	return splicePoint{
		base:    bh,
		last:    lh,
		baseIdx: base,
		lastIdx: last,
	}, nil
}

// splice inserts h, the half-edge of the edge at index e, into the ring of
// its vertex at p.
func (m *Mesh[V, E, F]) splice(h *halfEdge, e Index, p splicePoint) {
	if p.base == nil {
		// The ring was empty: the new edge forms a ring of one.
		m.verts.items[h.vertex].baseEdge = e
		h.nextEdge = e
		h.prevEdge = e
		return
	}

	h.prevEdge = p.lastIdx
	h.nextEdge = p.baseIdx
	p.last.nextEdge = e
	p.base.prevEdge = e
}

func (m *Mesh[V, E, F]) addEdge(e E, v1, v2 Index) (Index, error) {
	if !m.verts.valid(v1) {
		return 0, m.reject("add_edge", invalidVertex(v1))
	}
	if !m.verts.valid(v2) {
		return 0, m.reject("add_edge", invalidVertex(v2))
	}
	m.ensureRoom(m.edges.room(1), kindEdge)

	idx := Index(m.edges.len())
	rec := edgeRecord[E]{
		half: [2]halfEdge{newHalfEdge(v1), newHalfEdge(v2)},
		data: e,
	}

	ends := []Index{v1}
	if v2 != v1 {
		ends = append(ends, v2)
	}

	// Resolve both splice points before touching anything, so that a
	// corrupted ring never leaves one endpoint spliced and the other not.
	var points [2]splicePoint
	for i, v := range ends {
		p, err := m.splicePointFor(v)
		if err != nil {
			m.violation("add_edge", err)
		}
		points[i] = p
	}
	for i := range ends {
		m.splice(&rec.half[i], idx, points[i])
	}

	m.edges.push(rec)
	m.metrics.setElements(kindEdge, m.edges.len())
	return idx, nil
}

func (m *Mesh[V, E, F]) addFace(f F, base Index) (Index, error) {
	if !m.edges.valid(base) {
		return 0, m.reject("add_face", invalidEdge(base))
	}
	m.ensureRoom(m.faces.room(1), kindFace)

	i := m.faces.push(faceRecord[F]{
		baseEdge: base,
		data:     f,
	})
	m.metrics.setElements(kindFace, m.faces.len())
	return i, nil
}

func (m *Mesh[V, E, F]) linkFace(edge, vertex, face Index) error {
	rec := m.edges.get(edge)
	if rec == nil {
		return m.reject("link_face", invalidEdge(edge))
	}
	if !m.faces.valid(face) {
		return m.reject("link_face", invalidFace(face))
	}
	h := rec.halfEdgeFor(vertex)
	if h == nil {
		return m.reject("link_face", errors.Wrapf(ErrInvalidReference,
			"vertex %d is not an endpoint of edge %d", vertex, edge))
	}

	h.nextFace = face
	return nil
}

// ringHalfEdge returns the half-edge of e around v. A failure means a ring
// link points somewhere it must not.
func (m *Mesh[V, E, F]) ringHalfEdge(e, v Index) (*halfEdge, error) {
	rec := m.edges.get(e)
	if rec == nil {
		return nil, &InvariantError{Vertex: v, Edge: e, Reason: "ring references a missing edge"}
	}
	h := rec.halfEdgeFor(v)
	if h == nil {
		return nil, &InvariantError{Vertex: v, Edge: e, Reason: "edge in ring is not incident to the vertex"}
	}
	return h, nil
}

// nextAround returns the edge following e clockwise around v.
func (m *Mesh[V, E, F]) nextAround(e, v Index) (Index, error) {
	h, err := m.ringHalfEdge(e, v)
	if err != nil {
		return none, err
	}
	if h.nextEdge == none {
		return none, &InvariantError{Vertex: v, Edge: e, Reason: "half-edge in ring has no successor"}
	}
	return h.nextEdge, nil
}

func (m *Mesh[V, E, F]) ensureRoom(ok bool, kind string) {
	if ok {
		return
	}
	err := errors.Wrapf(ErrArenaOverflow, "wedge: no index left for a new %s", kind)
	m.logger.WithField("action", "add_"+kind).WithError(err).Error("index space exhausted")
	panic(err)
}

func (m *Mesh[V, E, F]) reject(action string, err error) error {
	m.logger.WithField("action", action).WithError(err).Warn("rejected operation")
	m.metrics.reject(action)
	return err
}

func (m *Mesh[V, E, F]) violation(action string, err error) {
	m.logger.WithField("action", action).WithError(err).Error("corrupted adjacency ring")
	panic(err)
}
