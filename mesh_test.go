package wedge_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/hajimehoshi/go-wedge"
)

type testMesh = Mesh[int, float64, string]

func newTestMesh(t *testing.T) *testMesh {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return New[int, float64, string](WithLogger(logger))
}

// newScenarioMesh builds four vertices (5, 11, 15, 22) and the edges
// 0-1, 1-2, 2-0 and 0-3.
func newScenarioMesh(t *testing.T) *testMesh {
	t.Helper()
	m := newTestMesh(t)
	for i, d := range []int{5, 11, 15, 22} {
		require.Equal(t, Index(i), m.AddVertex(d))
	}
	for i, e := range []struct {
		w      float64
		v1, v2 Index
	}{
		{5.5, 0, 1},
		{3.1, 1, 2},
		{2.2, 2, 0},
		{1.1, 0, 3},
	} {
		idx, err := m.AddEdge(e.w, e.v1, e.v2)
		require.NoError(t, err)
		require.Equal(t, Index(i), idx)
	}
	return m
}

func edgeIndices(v Vertex[int, float64, string]) []Index {
	var out []Index
	for e := range v.Edges() {
		out = append(out, e.Index())
	}
	return out
}

func TestAddVertexIndicesFollowInsertionOrder(t *testing.T) {
	m := newTestMesh(t)
	for i := 0; i < 16; i++ {
		assert.Equal(t, Index(i), m.AddVertex(i*10))
	}
	assert.Equal(t, 16, m.NumVertices())

	var got []int
	for v := range m.Vertices() {
		d, ok := v.Data()
		require.True(t, ok)
		got = append(got, d)
	}
	want := make([]int, 16)
	for i := range want {
		want[i] = i * 10
	}
	assert.Equal(t, want, got)
}

func TestVertexEdgesScenario(t *testing.T) {
	m := newScenarioMesh(t)

	assert.ElementsMatch(t, []Index{0, 2, 3}, edgeIndices(m.Vertex(0)))
	// new edges are spliced in right before the base edge
	assert.Equal(t, []Index{0, 2, 3}, edgeIndices(m.Vertex(0)))
	assert.Equal(t, []Index{0, 1}, edgeIndices(m.Vertex(1)))
	assert.Equal(t, []Index{1, 2}, edgeIndices(m.Vertex(2)))
	assert.Equal(t, []Index{3}, edgeIndices(m.Vertex(3)))
	assert.NoError(t, m.Check())
}

func TestVertexEdgesAreIncidentAndRestartable(t *testing.T) {
	m := newTestMesh(t)
	hub := m.AddVertex(0)
	var spokes []Index
	for i := 1; i <= 50; i++ {
		v := m.AddVertex(i)
		e, err := m.AddEdge(float64(i), hub, v)
		require.NoError(t, err)
		spokes = append(spokes, e)
	}

	first := edgeIndices(m.Vertex(hub))
	assert.Equal(t, spokes, first)
	assert.Equal(t, first, edgeIndices(m.Vertex(hub)))
	assert.Equal(t, 50, m.Vertex(hub).Degree())

	for e := range m.Vertex(hub).Edges() {
		a, b, ok := e.Endpoints()
		require.True(t, ok)
		assert.True(t, a.Index() == hub || b.Index() == hub)
	}
}

func TestVertexEdgesStopsEarly(t *testing.T) {
	m := newScenarioMesh(t)

	var got []Index
	for e := range m.Vertex(0).Edges() {
		got = append(got, e.Index())
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []Index{0, 2}, got)
}

func TestEndpointsRoundTrip(t *testing.T) {
	m := newTestMesh(t)
	a := m.AddVertex(1)
	b := m.AddVertex(2)

	e, err := m.AddEdge(4.5, b, a)
	require.NoError(t, err)

	v1, v2, ok := m.Edge(e).Endpoints()
	require.True(t, ok)
	assert.ElementsMatch(t, []Index{a, b}, []Index{v1.Index(), v2.Index()})

	d, ok := m.Edge(e).Data()
	require.True(t, ok)
	assert.Equal(t, 4.5, d)

	other, ok := m.Edge(e).Other(a)
	require.True(t, ok)
	assert.Equal(t, b, other.Index())
	_, ok = m.Edge(e).Other(42)
	assert.False(t, ok)
}

func TestRingClosure(t *testing.T) {
	m := newScenarioMesh(t)
	// a few more edges so rings of different sizes exist
	_, err := m.AddEdge(0.5, 1, 3)
	require.NoError(t, err)
	_, err = m.AddEdge(0.25, 0, 1)
	require.NoError(t, err)

	for v := range m.Vertices() {
		k := v.Degree()
		base, ok := v.BaseEdge()
		require.True(t, ok)

		seen := map[Index]struct{}{base.Index(): {}}
		cur := base
		for i := 0; i < k; i++ {
			cur, ok = cur.Next(v.Index())
			require.True(t, ok)
			seen[cur.Index()] = struct{}{}
		}
		assert.Equal(t, base.Index(), cur.Index(), "vertex %d", v.Index())
		assert.Len(t, seen, k)

		cur, ok = cur.Next(v.Index())
		require.True(t, ok)
		seen[cur.Index()] = struct{}{}
		assert.Len(t, seen, k, "k+1 steps must not reveal a new edge")

		// walking backwards visits the same ring in reverse
		var back []Index
		cur = base
		for i := 0; i < k; i++ {
			cur, ok = cur.Prev(v.Index())
			require.True(t, ok)
			back = append([]Index{cur.Index()}, back...)
		}
		assert.Equal(t, edgeIndices(v), back)
	}
	assert.NoError(t, m.Check())
}

func TestSelfLoop(t *testing.T) {
	m := newTestMesh(t)
	v := m.AddVertex(7)
	w := m.AddVertex(8)

	before, err := m.AddEdge(1, v, w)
	require.NoError(t, err)
	loop, err := m.AddEdge(2, v, v)
	require.NoError(t, err)
	after, err := m.AddEdge(3, w, v)
	require.NoError(t, err)

	assert.Equal(t, []Index{before, loop, after}, edgeIndices(m.Vertex(v)))
	assert.Equal(t, 3, m.Vertex(v).Degree())
	assert.Equal(t, []Index{before, after}, edgeIndices(m.Vertex(w)))

	e := m.Edge(loop)
	assert.True(t, e.IsLoop())
	a, b, ok := e.Endpoints()
	require.True(t, ok)
	assert.Equal(t, v, a.Index())
	assert.Equal(t, v, b.Index())
	other, ok := e.Other(v)
	require.True(t, ok)
	assert.Equal(t, v, other.Index())

	assert.NoError(t, m.Check())
}

func TestSelfLoopOnIsolatedVertex(t *testing.T) {
	m := newTestMesh(t)
	v := m.AddVertex(1)
	loop, err := m.AddEdge(1, v, v)
	require.NoError(t, err)

	assert.Equal(t, []Index{loop}, edgeIndices(m.Vertex(v)))
	next, ok := m.Edge(loop).Next(v)
	require.True(t, ok)
	assert.Equal(t, loop, next.Index())
	assert.NoError(t, m.Check())
}

func TestAddEdgeInvalidReference(t *testing.T) {
	m := newScenarioMesh(t)
	degree := m.Vertex(0).Degree()

	for _, tc := range []struct {
		name   string
		v1, v2 Index
	}{
		{"second endpoint", 0, 9999},
		{"first endpoint", 9999, 0},
		{"just past the end", 0, 4},
		{"max index", ^Index(0), 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.AddEdge(1, tc.v1, tc.v2)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidReference))
			assert.Equal(t, 4, m.NumEdges())
			assert.Equal(t, degree, m.Vertex(0).Degree())
		})
	}
	assert.Equal(t, []Index{0, 2, 3}, edgeIndices(m.Vertex(0)))
	assert.NoError(t, m.Check())
}

func TestCursorsOnInvalidIndices(t *testing.T) {
	m := newScenarioMesh(t)

	v := m.Vertex(42)
	assert.False(t, v.IsValid())
	_, ok := v.Data()
	assert.False(t, ok)
	_, ok = v.BaseEdge()
	assert.False(t, ok)
	assert.Empty(t, edgeIndices(v))
	assert.Equal(t, 0, v.Degree())
	for range v.Faces() {
		t.Fatal("invalid vertex yielded a face")
	}

	e := m.Edge(^Index(0))
	assert.False(t, e.IsValid())
	_, ok = e.Data()
	assert.False(t, ok)
	_, _, ok = e.Endpoints()
	assert.False(t, ok)
	_, ok = e.Next(0)
	assert.False(t, ok)
	for range e.AdjacentFaces() {
		t.Fatal("invalid edge yielded a face")
	}

	f := m.Face(0)
	assert.False(t, f.IsValid())
	_, ok = f.Data()
	assert.False(t, ok)
	_, ok = f.BaseEdge()
	assert.False(t, ok)

	assert.True(t, m.IsValidVertexIndex(3))
	assert.False(t, m.IsValidVertexIndex(4))
	assert.True(t, m.IsValidEdgeIndex(3))
	assert.False(t, m.IsValidEdgeIndex(^Index(0)))
	assert.False(t, m.IsValidFaceIndex(0))
}

func TestIsolatedVertexHasNoEdges(t *testing.T) {
	m := newScenarioMesh(t)
	v := m.AddVertex(99)

	assert.True(t, m.Vertex(v).IsValid())
	_, ok := m.Vertex(v).BaseEdge()
	assert.False(t, ok)
	assert.Empty(t, edgeIndices(m.Vertex(v)))
}

func TestArenaOrderIterators(t *testing.T) {
	m := newScenarioMesh(t)

	var weights []float64
	for e := range m.Edges() {
		w, ok := e.Data()
		require.True(t, ok)
		weights = append(weights, w)
	}
	assert.Equal(t, []float64{5.5, 3.1, 2.2, 1.1}, weights)

	for range m.Faces() {
		t.Fatal("mesh without faces yielded a face")
	}

	// vertices added while iterating are picked up
	n := 0
	for v := range m.Vertices() {
		if v.Index() == 0 {
			m.AddVertex(100)
		}
		n++
	}
	assert.Equal(t, 5, n)
}

func TestFaces(t *testing.T) {
	m := newScenarioMesh(t)

	_, err := m.AddFace("missing", 17)
	assert.True(t, errors.Is(err, ErrInvalidReference))
	assert.Equal(t, 0, m.NumFaces())

	tri, err := m.AddFace("triangle", 0)
	require.NoError(t, err)
	outer, err := m.AddFace("outer", 3)
	require.NoError(t, err)

	// the triangle 0-1-2 lies clockwise after edges 0, 1 and 2
	require.NoError(t, m.LinkFace(0, 0, tri))
	require.NoError(t, m.LinkFace(1, 1, tri))
	require.NoError(t, m.LinkFace(2, 2, tri))
	require.NoError(t, m.LinkFace(3, 0, outer))
	require.NoError(t, m.LinkFace(0, 1, outer))

	var names []string
	for f := range m.Vertex(0).Faces() {
		d, ok := f.Data()
		require.True(t, ok)
		names = append(names, d)
	}
	assert.Equal(t, []string{"triangle", "outer"}, names)

	var adjacent []Index
	for f := range m.Edge(0).AdjacentFaces() {
		adjacent = append(adjacent, f.Index())
	}
	assert.Equal(t, []Index{tri, outer}, adjacent)

	f, ok := m.Edge(3).Face(0)
	require.True(t, ok)
	assert.Equal(t, outer, f.Index())
	_, ok = m.Edge(3).Face(3)
	assert.False(t, ok)

	base, ok := m.Face(tri).BaseEdge()
	require.True(t, ok)
	assert.Equal(t, Index(0), base.Index())

	err = m.LinkFace(1, 0, tri)
	assert.True(t, errors.Is(err, ErrInvalidReference), "vertex 0 is not on edge 1")
	err = m.LinkFace(1, 1, 99)
	assert.True(t, errors.Is(err, ErrInvalidReference))
	err = m.LinkFace(99, 1, tri)
	assert.True(t, errors.Is(err, ErrInvalidReference))

	assert.NoError(t, m.Check())
}

func TestAddLoop(t *testing.T) {
	m := newTestMesh(t)
	a, b, c := m.AddVertex(1), m.AddVertex(2), m.AddVertex(3)

	edges, err := m.AddLoop([]float64{1, 2, 3}, a, b, c)
	require.NoError(t, err)
	assert.Equal(t, []Index{0, 1, 2}, edges)

	for i, e := range edges {
		v1, v2, ok := m.Edge(e).Endpoints()
		require.True(t, ok)
		assert.Equal(t, []Index{a, b, c}[i], v1.Index())
		assert.Equal(t, []Index{b, c, a}[i], v2.Index())
	}
	for v := range m.Vertices() {
		assert.Equal(t, 2, v.Degree())
	}
	assert.NoError(t, m.Check())
}

func TestAddLoopRejectsWithoutMutation(t *testing.T) {
	m := newScenarioMesh(t)

	_, err := m.AddLoop([]float64{1}, 0)
	assert.True(t, errors.Is(err, ErrLoopTooShort))

	_, err = m.AddLoop([]float64{1, 2}, 0, 1, 2)
	assert.True(t, errors.Is(err, ErrLengthMismatch))

	_, err = m.AddLoop([]float64{1, 2, 3}, 0, 1, 77)
	assert.True(t, errors.Is(err, ErrInvalidReference))

	assert.Equal(t, 4, m.NumEdges())
	assert.Equal(t, []Index{0, 2, 3}, edgeIndices(m.Vertex(0)))
	assert.Equal(t, []Index{0, 1}, edgeIndices(m.Vertex(1)))
}

func TestDigonLoop(t *testing.T) {
	m := newTestMesh(t)
	a, b := m.AddVertex(1), m.AddVertex(2)

	edges, err := m.AddLoop([]float64{1, 2}, a, b)
	require.NoError(t, err)
	assert.Equal(t, edges, edgeIndices(m.Vertex(a)))
	assert.Equal(t, edges, edgeIndices(m.Vertex(b)))
	assert.NoError(t, m.Check())
}

func TestRejectedOperationIsLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	m := New[int, float64, string](WithLogger(logger))
	m.AddVertex(1)

	_, err := m.AddEdge(1, 0, 5)
	require.Error(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "add_edge", entry.Data["action"])
	assert.Equal(t, m.ID().String(), entry.Data["mesh_id"])
	assert.Equal(t, err, entry.Data[logrus.ErrorKey])
}
