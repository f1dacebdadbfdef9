package wedge

import (
	"github.com/pkg/errors"
)

// arena is a growable array whose positions are the identities of the
// records stored in it. Records are only ever appended.
type arena[T any] struct {
	items []T

	// limit is the maximum number of records. It never exceeds none, so
	// that none stays out of the index space.
	limit Index
}

func newArena[T any](capacity int, limit Index) arena[T] {
	if limit == 0 || limit > none {
		limit = none
	}
	if capacity < 0 {
		capacity = 0
	}
	if uint64(capacity) > uint64(limit) {
		capacity = int(limit)
	}
	return arena[T]{
		items: make([]T, 0, capacity),
		limit: limit,
	}
}

func (a *arena[T]) len() int {
	return len(a.items)
}

func (a *arena[T]) valid(i Index) bool {
	return i < none && uint64(i) < uint64(len(a.items))
}

// room reports whether n more records fit below the limit.
func (a *arena[T]) room(n int) bool {
	return uint64(len(a.items))+uint64(n) <= uint64(a.limit)
}

// push appends x and returns its index. Exhausting the index space is fatal.
func (a *arena[T]) push(x T) Index {
	if !a.room(1) {
		panic(errors.Wrapf(ErrArenaOverflow, "wedge: arena holds %d records", len(a.items)))
	}
	i := Index(len(a.items))
	a.items = append(a.items, x)
	return i
}

// get returns the record at i, or nil when i does not identify a record.
// The pointer is only valid until the next push.
func (a *arena[T]) get(i Index) *T {
	if !a.valid(i) {
		return nil
	}
	return &a.items[i]
}
