// Package association provides the directional membership graphs maintained
// by the registry: entity ids per user id, and task ids per project id.
//
// A Graph only does set bookkeeping. Id resolution lives in the registry,
// while the project-owns-task normalization rule lives in NormalizePair, so
// the direction and legality of an entity pair is decided in exactly one
// place.
package association

import (
	"sort"

	"github.com/samber/lo"

	"github.com/vk/pmcore/internal/entity"
)

// Graph stores a set of member ids per key id. Duplicate links and missing
// unlinks are reported to the caller, never silently absorbed.
type Graph struct {
	links map[string]map[string]struct{}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{links: make(map[string]map[string]struct{})}
}

// Restore rebuilds a graph from a persisted key-to-members map.
func Restore(m map[string][]string) *Graph {
	g := New()
	for key, members := range m {
		for _, member := range members {
			g.Link(key, member)
		}
	}
	return g
}

// Link inserts member under key, creating the set on first use. It reports
// false when the link already exists, in which case nothing changes.
func (g *Graph) Link(key, member string) bool {
	set, ok := g.links[key]
	if !ok {
		g.links[key] = map[string]struct{}{member: {}}
		return true
	}
	if _, dup := set[member]; dup {
		return false
	}
	set[member] = struct{}{}
	return true
}

// Unlink removes member from under key. It reports false when the key or the
// member is absent; it never creates a set.
func (g *Graph) Unlink(key, member string) bool {
	set, ok := g.links[key]
	if !ok {
		return false
	}
	if _, linked := set[member]; !linked {
		return false
	}
	delete(set, member)
	return true
}

// Has reports whether member is linked under key.
func (g *Graph) Has(key, member string) bool {
	_, ok := g.links[key][member]
	return ok
}

// Neighbors returns the members linked under key, sorted for stable output.
func (g *Graph) Neighbors(key string) []string {
	members := lo.Keys(g.links[key])
	sort.Strings(members)
	return members
}

// Keys returns every key that has at least one member, sorted.
func (g *Graph) Keys() []string {
	keys := lo.PickBy(g.links, func(_ string, set map[string]struct{}) bool {
		return len(set) > 0
	})
	out := lo.Keys(keys)
	sort.Strings(out)
	return out
}

// Snapshot renders the graph as a plain key-to-members map for persistence.
func (g *Graph) Snapshot() map[string][]string {
	out := make(map[string][]string, len(g.links))
	for _, key := range g.Keys() {
		out[key] = g.Neighbors(key)
	}
	return out
}

// NormalizePair applies the entity-pair rule: the only legal pairing is one
// project and one task, in either argument order, and never an id with
// itself. It returns the pair ordered project first.
func NormalizePair(aID string, aKind entity.Kind, bID string, bKind entity.Kind) (projectID, taskID string, ok bool) {
	if aID == bID {
		return "", "", false
	}
	switch {
	case aKind == entity.Project && bKind == entity.Task:
		return aID, bID, true
	case aKind == entity.Task && bKind == entity.Project:
		return bID, aID, true
	default:
		return "", "", false
	}
}
