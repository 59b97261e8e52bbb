package domain

// IDSet is a set of ComponentIDs, unique by canonical string form.
// Insertion order is preserved so downstream output stays deterministic.
type IDSet struct {
	order []ComponentID
	index map[string]int
}

// NewIDSet creates an IDSet seeded with the given ids. Duplicates are
// dropped, first occurrence wins.
func NewIDSet(ids ...ComponentID) *IDSet {
	s := &IDSet{index: make(map[string]int, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// ParseIDSet builds an IDSet from canonical id strings.
func ParseIDSet(raw []string) (*IDSet, error) {
	s := NewIDSet()
	for _, r := range raw {
		id, err := ParseComponentID(r)
		if err != nil {
			return nil, err
		}
		s.Add(id)
	}
	return s, nil
}

// Add inserts id if its string form is not already present.
// It reports whether the set grew.
func (s *IDSet) Add(id ComponentID) bool {
	key := id.String()
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = len(s.order)
	s.order = append(s.order, id)
	return true
}

// AddAll inserts every id from other, preserving other's order.
func (s *IDSet) AddAll(other *IDSet) {
	if other == nil {
		return
	}
	for _, id := range other.order {
		s.Add(id)
	}
}

// Contains reports whether the exact id (including version) is present.
func (s *IDSet) Contains(id ComponentID) bool {
	_, ok := s.index[id.String()]
	return ok
}

// ContainsComponent reports whether any version of id's component is
// present, comparing on (scope, name) only.
func (s *IDSet) ContainsComponent(id ComponentID) bool {
	for _, have := range s.order {
		if have.SameComponent(id) {
			return true
		}
	}
	return false
}

// Len returns the number of ids in the set.
func (s *IDSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// IsEmpty reports whether the set has no ids.
func (s *IDSet) IsEmpty() bool {
	return s.Len() == 0
}

// IDs returns the ids in insertion order. The caller must not mutate the
// returned slice.
func (s *IDSet) IDs() []ComponentID {
	if s == nil {
		return nil
	}
	return s.order
}

// Strings returns the canonical string forms in insertion order.
func (s *IDSet) Strings() []string {
	out := make([]string, 0, s.Len())
	for _, id := range s.IDs() {
		out = append(out, id.String())
	}
	return out
}

// Filter returns a new IDSet holding the ids for which keep returns true,
// preserving order.
func (s *IDSet) Filter(keep func(ComponentID) bool) *IDSet {
	out := NewIDSet()
	for _, id := range s.IDs() {
		if keep(id) {
			out.Add(id)
		}
	}
	return out
}

// Partition splits the set into the ids owned by selfScope and everything
// else. Local ids must never trigger a network call directly.
func (s *IDSet) Partition(selfScope string) (local, external *IDSet) {
	local, external = NewIDSet(), NewIDSet()
	for _, id := range s.IDs() {
		if id.IsLocalTo(selfScope) {
			local.Add(id)
		} else {
			external.Add(id)
		}
	}
	return local, external
}
