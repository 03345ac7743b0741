package order

import (
	"fmt"
	"sort"
	"strings"
)

// targetLess orders two Targets by vertex index, then by their
// parameter lists' string form, giving a total, deterministic order.
func targetLess(a, b Target) bool {
	if a.Index != b.Index {
		return a.Index < b.Index
	}
	return targetParamsKey(a) < targetParamsKey(b)
}

func targetParamsKey(t Target) string {
	parts := make([]string, len(t.Parameters))
	for i, p := range t.Parameters {
		parts[i] = p.canonicalKey()
	}
	return strings.Join(parts, ",")
}

func sortDedupeTargets(ts []Target) []Target {
	if len(ts) == 0 {
		return ts
	}
	sorted := append([]Target(nil), ts...)
	sort.Slice(sorted, func(i, j int) bool { return targetLess(sorted[i], sorted[j]) })
	out := sorted[:1]
	for _, t := range sorted[1:] {
		last := out[len(out)-1]
		if last.Index == t.Index && targetParamsKey(last) == targetParamsKey(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Normalize sorts and deduplicates every backedge list and the
// successor list of Bottom, the final step of every hygiene pass
// (spec.md §4.8, invariant 5).
func (e *Engine) Normalize() {
	g := e.graph
	for i := range g.backedges {
		g.backedges[i] = sortDedupeTargets(g.backedges[i])
	}
	if idx, ok := g.IndexOf(Bottom{}); ok {
		g.edges[idx] = sortDedupeTargets(g.edges[idx])
	}
}

// Deduplicate compresses both the forward and backward adjacency of
// every type in annotations to keep only the first occurrence per
// successor/predecessor index.
func (e *Engine) Deduplicate(annotations []Type) {
	g := e.graph
	for _, t := range annotations {
		idx, ok := g.IndexOf(t)
		if !ok {
			continue
		}
		g.edges[idx] = firstPerIndex(g.edges[idx])
		g.backedges[idx] = firstPerIndex(g.backedges[idx])
	}
}

func firstPerIndex(ts []Target) []Target {
	seen := map[int]bool{}
	out := make([]Target, 0, len(ts))
	for _, t := range ts {
		if seen[t.Index] {
			continue
		}
		seen[t.Index] = true
		out = append(out, t)
	}
	return out
}

// RemoveExtraEdges drops a vertex's edge to top when it has other
// successors, and symmetrically drops bottom's edge to a vertex when
// that vertex already has a predecessor other than bottom — in both
// cases the edge is redundant once a more specific path exists.
func (e *Engine) RemoveExtraEdges() {
	g := e.graph
	topIdx, hasTop := g.IndexOf(Top{})
	bottomIdx, hasBottom := g.IndexOf(Bottom{})

	for i := range g.edges {
		if hasTop && i != topIdx {
			g.edges[i] = dropIfOthers(g.edges[i], topIdx)
		}
	}
	if hasBottom {
		g.edges[bottomIdx] = dropShadowedBottomEdges(g, bottomIdx)
	}
	e.fixupBackedgesFromForward()
}

// dropShadowedBottomEdges removes a direct Bottom->v edge once v
// already has an incoming edge from some predecessor other than
// Bottom: that predecessor's own chain back to Bottom makes the
// direct edge redundant.
func dropShadowedBottomEdges(g *Graph, bottomIdx int) []Target {
	out := g.edges[bottomIdx][:0]
	for _, t := range g.edges[bottomIdx] {
		shadowed := false
		for _, pred := range g.backedges[t.Index] {
			if pred.Index != bottomIdx {
				shadowed = true
				break
			}
		}
		if !shadowed {
			out = append(out, t)
		}
	}
	return out
}

// dropIfOthers removes target if ts has at least one other entry.
func dropIfOthers(ts []Target, target int) []Target {
	hasOther := false
	for _, t := range ts {
		if t.Index != target {
			hasOther = true
			break
		}
	}
	if !hasOther {
		return ts
	}
	out := ts[:0]
	for _, t := range ts {
		if t.Index != target {
			out = append(out, t)
		}
	}
	return out
}

// fixupBackedgesFromForward rebuilds every backedge list from the
// (now edited) forward lists, restoring invariant 2.
func (e *Engine) fixupBackedgesFromForward() {
	g := e.graph
	for i := range g.backedges {
		g.backedges[i] = nil
	}
	for i, ts := range g.edges {
		for _, t := range ts {
			g.backedges[t.Index] = append(g.backedges[t.Index], Target{Index: i, Parameters: t.Parameters})
		}
	}
}

// ConnectAnnotationsToTop connects any tracked vertex that has no
// outgoing edge at all directly to Top, so every vertex has at least
// one path upward regardless of how sparsely the host populated it.
func (e *Engine) ConnectAnnotationsToTop(*Order) {
	g := e.graph
	topIdx, ok := g.IndexOf(Top{})
	if !ok {
		return
	}
	for idx := range g.annotations {
		if idx == topIdx || len(g.edges[idx]) > 0 {
			continue
		}
		g.Connect(g.annotations[idx], Top{}, nil)
	}
}

// CheckIntegrity verifies presence of Bottom/Top, that every key has
// entries in all four tables, that the graph is acyclic, and that
// every forward edge has a matching backedge and vice versa.
func (e *Engine) CheckIntegrity() error {
	g := e.graph
	if !g.Contains(Bottom{}) {
		return &IncompleteError{Detail: "missing Bottom"}
	}
	if !g.Contains(Top{}) {
		return &IncompleteError{Detail: "missing Top"}
	}
	n := g.Len()
	if len(g.indices) != n || len(g.annotations) != n || len(g.edges) != n || len(g.backedges) != n {
		return &IncompleteError{Detail: "table length mismatch"}
	}

	// Forward/backward mirror check.
	for i, ts := range g.edges {
		for _, t := range ts {
			if !hasMirror(g.backedges[t.Index], i, t.Parameters) {
				return &IncompleteError{Detail: fmt.Sprintf("edge %d->%d missing backedge", i, t.Index)}
			}
		}
	}
	for i, ts := range g.backedges {
		for _, t := range ts {
			if !hasMirror(g.edges[t.Index], i, t.Parameters) {
				return &IncompleteError{Detail: fmt.Sprintf("backedge %d->%d missing forward edge", i, t.Index)}
			}
		}
	}

	if cyc := e.findCycle(); cyc != nil {
		return &CyclicError{At: cyc}
	}
	return nil
}

func hasMirror(ts []Target, index int, params []Type) bool {
	want := targetParamsKey(Target{Parameters: params})
	for _, t := range ts {
		if t.Index == index && targetParamsKey(t) == want {
			return true
		}
	}
	return false
}

type color int

const (
	white color = iota
	grey
	black
)

// findCycle runs a three-color DFS over the forward edges and returns
// the type at which a back-edge (cycle) was found, or nil if acyclic.
func (e *Engine) findCycle() Type {
	g := e.graph
	n := g.Len()
	colors := make([]color, n)

	var visit func(i int) Type
	visit = func(i int) Type {
		colors[i] = grey
		for _, t := range g.edges[i] {
			switch colors[t.Index] {
			case grey:
				return g.annotations[t.Index]
			case white:
				if found := visit(t.Index); found != nil {
					return found
				}
			}
		}
		colors[i] = black
		return nil
	}

	for i := 0; i < n; i++ {
		if colors[i] == white {
			if found := visit(i); found != nil {
				return found
			}
		}
	}
	return nil
}

// ToDot emits a deterministic Graphviz representation of the forward
// edges, vertices sorted by canonical key so output is diffable.
func (e *Engine) ToDot() string {
	g := e.graph
	type row struct {
		key  string
		line string
	}
	var rows []row
	for i, t := range g.annotations {
		label := strings.ReplaceAll(t.String(), `"`, `\"`)
		rows = append(rows, row{key: t.canonicalKey(), line: fmt.Sprintf("  %d [label=%q];", i, label)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].key < rows[j].key })

	var edgeRows []row
	for i, ts := range g.edges {
		for _, t := range ts {
			params := ""
			if len(t.Parameters) > 0 {
				parts := make([]string, len(t.Parameters))
				for k, p := range t.Parameters {
					parts[k] = p.String()
				}
				params = fmt.Sprintf(" [label=%q]", strings.Join(parts, ","))
			}
			key := fmt.Sprintf("%s->%s", g.annotations[i].canonicalKey(), g.annotations[t.Index].canonicalKey())
			edgeRows = append(edgeRows, row{key: key, line: fmt.Sprintf("  %d -> %d%s;", i, t.Index, params)})
		}
	}
	sort.Slice(edgeRows, func(i, j int) bool { return edgeRows[i].key < edgeRows[j].key })

	var b strings.Builder
	b.WriteString("digraph order {\n")
	for _, r := range rows {
		b.WriteString(r.line)
		b.WriteString("\n")
	}
	for _, r := range edgeRows {
		b.WriteString(r.line)
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// --- thin forwarding methods on Order, for callers already holding one ---

func (ord *Order) Normalize()               { ord.Engine.Normalize() }
func (ord *Order) Deduplicate(keys []Type)  { ord.Engine.Deduplicate(keys) }
func (ord *Order) RemoveExtraEdges()        { ord.Engine.RemoveExtraEdges() }
func (ord *Order) ConnectAnnotationsToTop() { ord.Engine.ConnectAnnotationsToTop(ord) }
func (ord *Order) CheckIntegrity() error    { return ord.Engine.CheckIntegrity() }
func (ord *Order) ToDot() string            { return ord.Engine.ToDot() }
