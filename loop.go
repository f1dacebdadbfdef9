package wedge

import (
	"github.com/pkg/errors"
)

// AddLoop connects vs into a closed outline: edge i runs from vs[i] to
// vs[i+1], and the last edge closes back to vs[0]. payloads[i] becomes the
// payload of edge i. The new edge indices are returned in the same order.
//
// All vertices are validated before any edge is added, so a rejected loop
// leaves the mesh untouched.
func (m *Mesh[V, E, F]) AddLoop(payloads []E, vs ...Index) ([]Index, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addLoop(payloads, vs)
}

func (m *Mesh[V, E, F]) addLoop(payloads []E, vs []Index) ([]Index, error) {
	if len(vs) < 2 {
		return nil, m.reject("add_loop", errors.Wrapf(ErrLoopTooShort, "got %d", len(vs)))
	}
	if len(payloads) != len(vs) {
		return nil, m.reject("add_loop", errors.Wrapf(ErrLengthMismatch,
			"%d payloads for %d vertices", len(payloads), len(vs)))
	}
	for _, v := range vs {
		if !m.verts.valid(v) {
			return nil, m.reject("add_loop", invalidVertex(v))
		}
	}
	m.ensureRoom(m.edges.room(len(vs)), kindEdge)

	edges := make([]Index, len(vs))
	for i, v := range vs {
		e, err := m.addEdge(payloads[i], v, vs[(i+1)%len(vs)])
		if err != nil {
			return nil, err
		}
		edges[i] = e
	}

	m.logger.WithField("action", "add_loop").
		WithField("edges", len(edges)).
		Debug("added loop")
	return edges, nil
}
