package txn

// EdgeKind tags a dependency edge between two transactions.
type EdgeKind int

const (
	RW EdgeKind = iota
	WW
)

func (k EdgeKind) String() string {
	if k == RW {
		return "RW"
	}
	return "WW"
}

// Edge is one directed dependency edge, From -> To.
type Edge struct {
	To   string
	Kind EdgeKind
}

// Graph is the SSI dependency graph: an edge set keyed by transaction
// id with edge-kind tags, per the core's own design note against
// representing it via object back-pointers (the structure is
// naturally cyclic).
type Graph struct {
	outgoing map[string][]Edge
}

// NewGraph returns an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{outgoing: make(map[string][]Edge)}
}

// AddEdge adds From->To of the given kind if it is not already
// present, and reports whether it was newly added. Commit-time
// provisional edges use the return value to know what to roll back
// on abort.
func (g *Graph) AddEdge(from, to string, kind EdgeKind) (added bool) {
	for _, e := range g.outgoing[from] {
		if e.To == to && e.Kind == kind {
			return false
		}
	}
	g.outgoing[from] = append(g.outgoing[from], Edge{To: to, Kind: kind})
	return true
}

// RemoveEdge removes one From->To edge of the given kind, if present.
func (g *Graph) RemoveEdge(from, to string, kind EdgeKind) {
	edges := g.outgoing[from]
	for i, e := range edges {
		if e.To == to && e.Kind == kind {
			g.outgoing[from] = append(edges[:i], edges[i+1:]...)
			return
		}
	}
}

// RemoveTransaction deletes every edge touching id, incoming or
// outgoing. Used when a transaction aborts: its edges can no longer
// participate in anyone's cycle check.
func (g *Graph) RemoveTransaction(id string) {
	delete(g.outgoing, id)
	for from, edges := range g.outgoing {
		filtered := edges[:0]
		for _, e := range edges {
			if e.To != id {
				filtered = append(filtered, e)
			}
		}
		g.outgoing[from] = filtered
	}
}

// Reachable reports whether to is reachable from from by following
// outgoing edges of any kind. It ignores edge kinds entirely; the
// commit-time dangerous-structure check is HasDangerousCycleThrough,
// not this.
func (g *Graph) Reachable(from, to string) bool {
	if from == to {
		return true
	}
	visited := map[string]bool{from: true}
	return g.reach(from, to, visited)
}

func (g *Graph) reach(node, to string, visited map[string]bool) bool {
	for _, e := range g.outgoing[node] {
		if e.To == to {
			return true
		}
		if visited[e.To] {
			continue
		}
		visited[e.To] = true
		if g.reach(e.To, to, visited) {
			return true
		}
	}
	return false
}

// HasDangerousCycleThrough reports whether the graph contains a cycle
// passing through start that includes two consecutive RW edges
// (X ->RW Y ->RW Z), treating the cycle as circular so the edge
// closing back to start and the edge leaving it count as adjacent
// too. This is the commit-time dangerous-structure check: Phase C
// calls it after provisionally adding the edges committing start
// would fix.
func (g *Graph) HasDangerousCycleThrough(start string) bool {
	visited := map[string]bool{start: true}
	return g.dangerousDFS(start, start, nil, visited)
}

func (g *Graph) dangerousDFS(start, node string, path []EdgeKind, visited map[string]bool) bool {
	for _, e := range g.outgoing[node] {
		next := make([]EdgeKind, len(path)+1)
		copy(next, path)
		next[len(path)] = e.Kind

		if e.To == start {
			if hasAdjacentRW(next) {
				return true
			}
			continue
		}
		if visited[e.To] {
			continue
		}
		visited[e.To] = true
		if g.dangerousDFS(start, e.To, next, visited) {
			return true
		}
		delete(visited, e.To)
	}
	return false
}

// hasAdjacentRW reports whether a circular sequence of edge kinds
// (the edges of a closed cycle, in order) contains two adjacent RW
// entries, wrapping from the last edge back to the first.
func hasAdjacentRW(kinds []EdgeKind) bool {
	n := len(kinds)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if kinds[i] == RW && kinds[j] == RW {
			return true
		}
	}
	return false
}

// Outgoing returns a copy of the edges leaving id, for diagnostics.
func (g *Graph) Outgoing(id string) []Edge {
	edges := g.outgoing[id]
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}
