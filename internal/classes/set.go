// Package classes extracts CSS class names from stylesheets and HTML markup.
package classes

import "sort"

// Set is a set of class names that remembers insertion order.
// The zero value is ready to use.
type Set struct {
	order []string
	index map[string]struct{}
}

// NewSet returns a set holding names in the given order.
func NewSet(names ...string) *Set {
	s := &Set{}
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add inserts name and reports whether it was new.
func (s *Set) Add(name string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = struct{}{}
	s.order = append(s.order, name)
	return true
}

// Has reports whether name is in the set. A nil set is empty.
func (s *Set) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// Len returns the number of names in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Union adds every name of other, keeping other's order for the new ones.
func (s *Set) Union(other *Set) {
	if other == nil {
		return
	}
	for _, name := range other.order {
		s.Add(name)
	}
}

// Names returns a copy of the names in insertion order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Sorted returns a copy of the names in lexical order.
func (s *Set) Sorted() []string {
	out := s.Names()
	sort.Strings(out)
	return out
}
