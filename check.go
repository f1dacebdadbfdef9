package wedge

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Check verifies the connectivity of the whole mesh and returns every
// violation it finds, or nil for a consistent mesh:
//   - the ring around each vertex closes on its base edge,
//     every edge in it is incident to the vertex,
//     and next/prev links agree
//   - each edge appears in the ring of each endpoint exactly once
//     (a self-loop once in total)
//   - endpoints, face links and face base edges exist
func (m *Mesh[V, E, F]) Check() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result *multierror.Error
	seen := make([]int, m.edges.len())

	for i := range m.verts.items {
		v := Index(i)
		base := m.verts.items[i].baseEdge
		if base == none {
			continue
		}
		if err := m.checkRing(v, base, seen); err != nil {
			result = multierror.Append(result, err)
		}
	}

	for i := range m.edges.items {
		e := Index(i)
		rec := &m.edges.items[i]
		sides := 2
		if rec.isLoop() {
			sides = 1
		}
		for _, h := range rec.half[:sides] {
			if !m.verts.valid(h.vertex) {
				result = multierror.Append(result, &InvariantError{
					Vertex: h.vertex,
					Edge:   e,
					Reason: "endpoint does not exist",
				})
			}
			if h.nextFace != none && !m.faces.valid(h.nextFace) {
				result = multierror.Append(result, &InvariantError{
					Vertex: h.vertex,
					Edge:   e,
					Reason: fmt.Sprintf("linked face %d does not exist", h.nextFace),
				})
			}
		}
		if seen[i] != sides {
			result = multierror.Append(result, &InvariantError{
				Vertex: rec.half[0].vertex,
				Edge:   e,
				Reason: fmt.Sprintf("edge appears %d times in the rings of its endpoints, want %d", seen[i], sides),
			})
		}
	}

	for i := range m.faces.items {
		if base := m.faces.items[i].baseEdge; !m.edges.valid(base) {
			result = multierror.Append(result,
				errors.Errorf("wedge: face %d: base edge %d does not exist", i, base))
		}
	}

	return result.ErrorOrNil()
}

// checkRing walks the ring around v from base, counting visits per edge in
// seen. It stops at the first broken link.
func (m *Mesh[V, E, F]) checkRing(v, base Index, seen []int) error {
	cur := base
	for steps := 0; ; steps++ {
		if steps >= m.edges.len() {
			return &InvariantError{Vertex: v, Edge: cur, Reason: "ring does not return to its base edge"}
		}
		if _, err := m.ringHalfEdge(cur, v); err != nil {
			return err
		}
		seen[cur]++

		next, err := m.nextAround(cur, v)
		if err != nil {
			return err
		}
		nh, err := m.ringHalfEdge(next, v)
		if err != nil {
			return err
		}
		if nh.prevEdge != cur {
			return &InvariantError{Vertex: v, Edge: next, Reason: "prev link does not point back along the ring"}
		}
		if next == base {
			return nil
		}
		cur = next
	}
}
