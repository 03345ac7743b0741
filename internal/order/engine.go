package order

import "github.com/arborlang/typeorder/internal/config"

// Engine is the mutable type graph: the graph store plus the small
// amount of bookkeeping (its own identity, for telemetry) layered on
// top of it. Queries on an Engine are pure; mutation requires
// exclusive access per spec.md §5.
type Engine struct {
	graph *Graph
	id    string
}

// ID returns the engine's telemetry identifier.
func (e *Engine) ID() string { return e.id }

// Insert, Connect, DisconnectSuccessors, Contains, Keys are the public
// mutation/inspection surface; they delegate straight to the graph
// store (§5 SPEC_FULL).

func (e *Engine) Insert(t Type) int               { return e.graph.Insert(t) }
func (e *Engine) Connect(pred, succ Type, params []Type) { e.graph.Connect(pred, succ, params) }
func (e *Engine) DisconnectSuccessors(t Type)     { e.graph.DisconnectSuccessors(t) }
func (e *Engine) Contains(t Type) bool             { return e.graph.Contains(t) }
func (e *Engine) Keys() []Type                     { return e.graph.Keys() }
func (e *Engine) IndexOf(t Type) (int, bool)       { return e.graph.IndexOf(t) }

// Variables returns the declared type variables of t's primitive, by
// finding its edge to the distinguished Generic vertex. type and
// typing.Callable are hard-coded to a single covariant _T_meta
// variable, matching spec.md §6.
func (e *Engine) Variables(t Type) []Variable {
	name, _, ok := Split(t)
	if !ok {
		return nil
	}
	if name == config.TypeMetaFormName || name == config.CallableSpecialForm {
		return []Variable{{Name: config.GenericSelfVarName, Variance: Covariant}}
	}

	idx, ok := e.graph.IndexOf(Primitive{Name: name})
	if !ok {
		return nil
	}
	genericIdx, ok := e.graph.IndexOf(Primitive{Name: config.GenericVertexName})
	if !ok {
		return nil
	}
	for _, target := range e.graph.edges[idx] {
		if target.Index == genericIdx {
			out := make([]Variable, 0, len(target.Parameters))
			for _, p := range target.Parameters {
				if v, ok := p.(Variable); ok {
					out = append(out, v)
				}
			}
			return out
		}
	}
	return nil
}

// Widen is the fixed-point iteration termination aid: once iteration
// exceeds threshold it coerces straight to Top, otherwise it joins
// previous and next under ord.
func (ord *Order) Widen(previous, next Type, iteration, threshold int) Type {
	if iteration > threshold {
		return Top{}
	}
	return ord.Join(previous, next)
}
