package wedge

// Index identifies a vertex, an edge or a face. Indices are handed out in
// creation order starting at 0 and are never reused.
type Index uint32

// none marks an absent reference inside the arenas. It is never a real index
// and never leaves the package; optional references are reported as
// (Index, bool) instead.
const none = ^Index(0)

func optional(i Index) (Index, bool) {
	if i == none {
		return 0, false
	}
	return i, true
}
