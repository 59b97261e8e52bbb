package domain

import "slices"

// ScopeGrouping maps owning scope names to the ref strings requested from
// them. It is the unit of a batched remote fetch: one round-trip carries
// one grouping. Construct it with one of the Group* constructors and treat
// it as immutable afterwards.
type ScopeGrouping struct {
	scopes []string
	refs   map[string][]string
}

func newScopeGrouping() ScopeGrouping {
	return ScopeGrouping{refs: make(map[string][]string)}
}

func (g *ScopeGrouping) add(scope, ref string) {
	if _, ok := g.refs[scope]; !ok {
		g.scopes = append(g.scopes, scope)
	}
	for _, have := range g.refs[scope] {
		if have == ref {
			return
		}
	}
	g.refs[scope] = append(g.refs[scope], ref)
}

// GroupIDsByScope buckets an id set by owning scope. Scope order follows
// first appearance in the set, ref order follows the set's order.
func GroupIDsByScope(ids *IDSet) ScopeGrouping {
	g := newScopeGrouping()
	for _, id := range ids.IDs() {
		g.add(id.Scope.String(), id.String())
	}
	return g
}

// GroupLaneRefsByScope buckets lane references by owning scope.
func GroupLaneRefsByScope(refs []LaneRef) ScopeGrouping {
	g := newScopeGrouping()
	for _, ref := range refs {
		g.add(ref.Scope, ref.Name)
	}
	return g
}

// GroupHashesByScope buckets content hashes by owning scope, deduplicating
// per scope while keeping the caller's order.
func GroupHashesByScope(hashes map[string][]ObjectHash) ScopeGrouping {
	g := newScopeGrouping()
	// Deterministic scope order: callers pass a map, so sort lexically.
	for _, scope := range sortedKeys(hashes) {
		for _, h := range hashes[scope] {
			g.add(scope, string(h))
		}
	}
	return g
}

// Scopes returns the scope names in grouping order.
func (g ScopeGrouping) Scopes() []string {
	return g.scopes
}

// Refs returns the ref strings grouped under the given scope.
func (g ScopeGrouping) Refs(scope string) []string {
	return g.refs[scope]
}

// IsEmpty reports whether the grouping holds no refs at all.
func (g ScopeGrouping) IsEmpty() bool {
	return len(g.scopes) == 0
}

// Len returns the total ref count across all scopes.
func (g ScopeGrouping) Len() int {
	n := 0
	for _, scope := range g.scopes {
		n += len(g.refs[scope])
	}
	return n
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
