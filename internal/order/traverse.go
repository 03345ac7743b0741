package order

// bindParameters pairs declared type variables with the concrete
// parameters supplied at an instantiation site. A declared variable
// past the end of params falls back to Bottom rather than failing the
// walk outright (an accepted imprecision: see the Open Question
// resolutions in the design notes).
func bindParameters(vars []Variable, params []Type) map[string]Type {
	if len(vars) == 0 {
		return nil
	}
	subst := make(map[string]Type, len(vars))
	for i, v := range vars {
		if i < len(params) {
			subst[v.Name] = params[i]
		} else {
			subst[v.Name] = Bottom{}
		}
	}
	return subst
}

// rebuildTarget reconstructs the Type an edge points at, substituting
// the edge's parameter list (expressed in terms of the source's
// declared variables) through the substitution built at the source.
func rebuildTarget(annotation Type, edgeParams []Type, subst map[string]Type) Type {
	if len(edgeParams) == 0 {
		return annotation
	}
	name, _, ok := Split(annotation)
	if !ok {
		return annotation
	}
	resolved := make([]Type, len(edgeParams))
	for i, p := range edgeParams {
		resolved[i] = Substitute(p, subst)
	}
	return Parametric{Name: name, Parameters: resolved}
}

// directSuccessors returns the graph's immediate forward edges of t,
// substituting t's concrete parameters for the declared variables
// each edge was recorded against. Scalars and structural-only shapes
// have no graph vertex and return nil.
func directSuccessors(e *Engine, t Type) []Type {
	name, params, ok := Split(t)
	if !ok {
		return nil
	}
	idx, ok := e.graph.IndexOf(Primitive{Name: name})
	if !ok {
		return nil
	}
	subst := bindParameters(e.Variables(Primitive{Name: name}), params)
	out := make([]Type, 0, len(e.graph.edges[idx]))
	for _, target := range e.graph.edges[idx] {
		out = append(out, rebuildTarget(e.graph.annotations[target.Index], target.Parameters, subst))
	}
	return out
}

// Predecessors returns the graph's immediate backward edges of t: the
// types one step below t in the subclass relation, with t's concrete
// parameters substituted through the same way directSuccessors does.
func Predecessors(e *Engine, t Type) []Type {
	name, params, ok := Split(t)
	if !ok {
		return nil
	}
	idx, ok := e.graph.IndexOf(Primitive{Name: name})
	if !ok {
		return nil
	}
	subst := bindParameters(e.Variables(Primitive{Name: name}), params)
	out := make([]Type, 0, len(e.graph.backedges[idx]))
	for _, target := range e.graph.backedges[idx] {
		out = append(out, rebuildTarget(e.graph.annotations[target.Index], target.Parameters, subst))
	}
	return out
}

// Greatest scans candidates in order, replacing the running best with
// any later candidate it is less than or equal to under
// ord.LessOrEqual. When one candidate is greater than or equal to
// every other it is the result; among mutually incomparable
// candidates the result depends on their order. Meet uses this to
// pick the most general of a set of common subtypes.
func Greatest(ord *Order, candidates []Type) Type {
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if ok, _ := ord.LessOrEqual(best, c); ok {
			best = c
		}
	}
	return best
}

// Least is Greatest's dual: the candidate less than or equal to every
// other candidate, the tie-break Join uses to pick the most specific
// of a set of common ancestors.
func Least(ord *Order, candidates []Type) Type {
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if ok, _ := ord.LessOrEqual(c, best); ok {
			best = c
		}
	}
	return best
}
