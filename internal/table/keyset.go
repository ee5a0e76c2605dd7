package table

import "slices"

// keySet is an insertion-ordered set of row keys. Selection callbacks
// report keys in the order the user selected them.
type keySet struct {
	order []string
	index map[string]int
}

func newKeySet(keys ...string) *keySet {
	s := &keySet{index: make(map[string]int, len(keys))}
	for _, k := range keys {
		s.add(k)
	}
	return s
}

func (s *keySet) has(k string) bool {
	_, ok := s.index[k]
	return ok
}

// add appends k and reports whether it was absent.
func (s *keySet) add(k string) bool {
	if s.has(k) {
		return false
	}
	s.index[k] = len(s.order)
	s.order = append(s.order, k)
	return true
}

// remove deletes k and reports whether it was present.
func (s *keySet) remove(k string) bool {
	i, ok := s.index[k]
	if !ok {
		return false
	}
	s.order = slices.Delete(s.order, i, i+1)
	delete(s.index, k)
	for j := i; j < len(s.order); j++ {
		s.index[s.order[j]] = j
	}
	return true
}

func (s *keySet) clone() *keySet {
	return newKeySet(s.order...)
}

func (s *keySet) keys() []string {
	return slices.Clone(s.order)
}

func (s *keySet) len() int {
	return len(s.order)
}

// diffKeys returns the keys of a missing from b, then the keys of b
// missing from a.
func diffKeys(a, b *keySet) []string {
	var out []string
	for _, k := range a.order {
		if !b.has(k) {
			out = append(out, k)
		}
	}
	for _, k := range b.order {
		if !a.has(k) {
			out = append(out, k)
		}
	}
	return out
}
