package detail

import (
	"maps"
	"slices"
)

// SelectionSet is an immutable snapshot of selected task ids.
type SelectionSet struct {
	ids map[int]struct{}
}

// NewSelectionSet returns a set holding ids.
func NewSelectionSet(ids ...int) SelectionSet {
	s := SelectionSet{ids: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func snapshot(ids map[int]struct{}) SelectionSet {
	return SelectionSet{ids: maps.Clone(ids)}
}

// Contains reports whether id is selected.
func (s SelectionSet) Contains(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s SelectionSet) Len() int {
	return len(s.ids)
}

// IsEmpty reports whether nothing is selected.
func (s SelectionSet) IsEmpty() bool {
	return len(s.ids) == 0
}

// IDs returns the selected ids in ascending order.
func (s SelectionSet) IDs() []int {
	return slices.Sorted(maps.Keys(s.ids))
}

// Equal reports whether both sets hold the same ids.
func (s SelectionSet) Equal(other SelectionSet) bool {
	if len(s.ids) != len(other.ids) {
		return false
	}
	for id := range s.ids {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}
