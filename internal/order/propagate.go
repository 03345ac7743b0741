package order

import "github.com/arborlang/typeorder/internal/config"

// normalizeForWalk maps a structural Tuple onto its graph-walkable
// typing.Tuple[_T] form, collapsing every bounded element through one
// Join before the walk begins. This loses per-element precision for
// ancestors further than typing.Tuple itself (e.g. a two-parameter
// Mapping ancestor reached through a tuple of pairs), a known
// imprecision rather than an oversight.
func normalizeForWalk(ord *Order, t Type) Type {
	tup, ok := t.(Tuple)
	if !ok {
		return t
	}
	if tup.IsUnbounded() {
		return Parametric{Name: config.TupleSpecialForm, Parameters: []Type{tup.Unbounded}}
	}
	if len(tup.Bounded) == 0 {
		return Parametric{Name: config.TupleSpecialForm, Parameters: []Type{Bottom{}}}
	}
	joined := tup.Bounded[0]
	for _, e := range tup.Bounded[1:] {
		joined = ord.Join(joined, e)
	}
	return Parametric{Name: config.TupleSpecialForm, Parameters: []Type{joined}}
}

// InstantiateSuccessorsParameters BFS-walks every ancestor of t
// reachable through directSuccessors, keyed by canonical form, with
// t's own parameters substituted through at each hop. A missing
// predecessor generic along the way resolves to Bottom (see
// bindParameters); a Tuple source is first collapsed through
// normalizeForWalk.
func InstantiateSuccessorsParameters(ord *Order, t Type) map[string]Type {
	return walkInstantiated(normalizeForWalk(ord, t), func(cur Type) []Type {
		return directSuccessors(ord.Engine, cur)
	})
}

// InstantiatePredecessorsParameters is the backward-edge dual of
// InstantiateSuccessorsParameters.
func InstantiatePredecessorsParameters(ord *Order, t Type) map[string]Type {
	return walkInstantiated(normalizeForWalk(ord, t), func(cur Type) []Type {
		return Predecessors(ord.Engine, cur)
	})
}

func walkInstantiated(seed Type, next func(Type) []Type) map[string]Type {
	out := map[string]Type{}
	queue := []Type{seed}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		key := cur.canonicalKey()
		if _, seen := out[key]; seen {
			continue
		}
		out[key] = cur
		queue = append(queue, next(cur)...)
	}
	return out
}
