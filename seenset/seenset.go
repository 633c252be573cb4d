// Package seenset tracks which article links have already been emitted, so
// repeated pipeline runs are idempotent. The set only ever grows during a
// run; membership is the sole gate between "new" and "already emitted".
package seenset

// Set is the in-memory seen-link set. Insertion order is preserved for
// persistence but carries no meaning.
type Set struct {
	links map[string]bool
	order []string
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{links: make(map[string]bool)}
}

// Contains reports whether link is in the set. Links are compared as exact
// strings; normalization happens upstream in the field resolver.
func (s *Set) Contains(link string) bool {
	return s.links[link]
}

// Add inserts link and reports whether it was new. Inserting an existing
// link is a no-op.
func (s *Set) Add(link string) bool {
	if s.links[link] {
		return false
	}
	s.links[link] = true
	s.order = append(s.order, link)
	return true
}

// Links returns the links in insertion order.
func (s *Set) Links() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of links in the set.
func (s *Set) Len() int {
	return len(s.order)
}

// Store loads and persists a Set. Implementations must treat a missing or
// corrupt resource as an empty set rather than an error -- lost history
// means re-emitting items, not failing the run.
type Store interface {
	Load() (*Set, error)
	Save(*Set) error
}
