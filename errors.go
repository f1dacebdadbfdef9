package wedge

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidReference is returned when an index does not identify a
	// live element of the mesh.
	ErrInvalidReference = errors.New("wedge: invalid reference")

	// ErrLengthMismatch is returned by AddLoop when the payloads and the
	// vertices differ in number.
	ErrLengthMismatch = errors.New("wedge: length mismatch")

	// ErrLoopTooShort is returned by AddLoop for fewer than two vertices.
	ErrLoopTooShort = errors.New("wedge: loop needs at least two vertices")

	// ErrArenaOverflow is the panic value, wrapped, when an arena runs out
	// of indices.
	ErrArenaOverflow = errors.New("wedge: arena overflow")
)

// InvariantError describes a corrupted adjacency ring. It is raised with
// panic by traversals and collected by Check.
type InvariantError struct {
	Vertex Index
	Edge   Index
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("wedge: invariant violation at vertex %d, edge %d: %s", e.Vertex, e.Edge, e.Reason)
}

func invalidVertex(v Index) error {
	return errors.Wrapf(ErrInvalidReference, "vertex %d", v)
}

func invalidEdge(e Index) error {
	return errors.Wrapf(ErrInvalidReference, "edge %d", e)
}

func invalidFace(f Index) error {
	return errors.Wrapf(ErrInvalidReference, "face %d", f)
}
