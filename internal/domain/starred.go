package domain

import "slices"

// StarredSet holds the ids of starred ideas. It is kept apart from the idea
// list; the zero value is an empty set ready to read but not to write.
type StarredSet map[int64]struct{}

// NewStarredSet builds a set from ids
func NewStarredSet(ids ...int64) StarredSet {
	s := make(StarredSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is starred
func (s StarredSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Add stars id
func (s StarredSet) Add(id int64) {
	s[id] = struct{}{}
}

// Remove unstars id. Removing an absent id does nothing.
func (s StarredSet) Remove(id int64) {
	delete(s, id)
}

// Len returns the number of starred ids
func (s StarredSet) Len() int {
	return len(s)
}

// IDs returns the starred ids in ascending order
func (s StarredSet) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Clone returns an independent copy
func (s StarredSet) Clone() StarredSet {
	c := make(StarredSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Equal reports whether both sets hold the same ids
func (s StarredSet) Equal(other StarredSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Prune drops ids that do not belong to any idea in the list
func (s StarredSet) Prune(ideas []Idea) {
	present := make(map[int64]struct{}, len(ideas))
	for _, idea := range ideas {
		present[idea.ID] = struct{}{}
	}
	for id := range s {
		if _, ok := present[id]; !ok {
			delete(s, id)
		}
	}
}
