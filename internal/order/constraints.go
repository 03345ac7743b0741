package order

import "fmt"

// SolveConstraints walks source and target structurally, threading
// constraints (a TypeVar name -> bound type map, possibly already
// partially filled in by a caller like SimulateSignatureSelect)
// through the walk, and returns the enlarged map once source has been
// shown compatible with target under it. It is mutually recursive with
// LessOrEqual (once target is fully resolved), with
// InstantiateSuccessorsParameters (a Parametric target), and with
// SimulateSignatureSelect (a Callable target) — the hard/interesting
// part of the engine, per its own design notes.
func SolveConstraints(ord *Order, constraints map[string]Type, source, target Type) (map[string]Type, error) {
	if constraints == nil {
		constraints = map[string]Type{}
	}

	if _, ok := source.(Bottom); ok {
		return constraints, nil
	}
	if u, ok := source.(Union); ok {
		acc := constraints
		for _, branch := range u.Types {
			var err error
			acc, err = SolveConstraints(ord, acc, branch, target)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	}
	if so, ok := source.(Optional); ok {
		return SolveConstraints(ord, constraints, optionalAsUnion(so), target)
	}

	if IsInstantiated(target) {
		ok, err := ord.LessOrEqual(source, target)
		if err != nil {
			return nil, err
		}
		if ok || isAnyTopCorner(source, target) {
			return constraints, nil
		}
		return nil, fmt.Errorf("order: %s is not a subtype of %s", source.String(), target.String())
	}

	switch t := target.(type) {
	case Variable:
		return solveVariableTarget(ord, constraints, source, t)
	case Parametric:
		if c, ok := source.(Callable); ok {
			witnessed := ord.implementsOf(Primitive{Name: t.Name}, c)
			if !witnessed.Implements {
				return nil, fmt.Errorf("order: %s does not implement %s", source.String(), t.Name)
			}
			return SolveConstraints(ord, constraints, source, Parametric{Name: t.Name, Parameters: witnessed.Parameters})
		}
		return solveParametricTarget(ord, constraints, source, t)
	case Optional:
		return SolveConstraints(ord, constraints, source, optionalAsUnion(t))
	case Tuple:
		return solveTupleTarget(ord, constraints, source, t)
	case Union:
		for _, branch := range t.Types {
			if next, err := SolveConstraints(ord, constraints, source, branch); err == nil {
				return next, nil
			}
		}
		return nil, fmt.Errorf("order: %s solves no branch of %s", source.String(), target.String())
	case Callable:
		if cs, ok := source.(Callable); ok {
			return solveCallableTarget(ord, constraints, cs, t)
		}
		if m, ok := source.(Meta); ok {
			if instance, ok := ord.constructorOf(m.SingleParameter()); ok {
				return SolveConstraints(ord, constraints, instance, target)
			}
		}
		return nil, fmt.Errorf("order: %s is not callable-shaped for target %s", source.String(), target.String())
	default:
		return nil, fmt.Errorf("order: cannot solve unresolved target %s", target.String())
	}
}

// isAnyTopCorner tolerates the degenerate pairing LessOrEqual treats
// specially at its own sentinel checks: an Any source or a Top target
// always satisfies a constraint regardless of what the rest of the
// structural walk would have concluded.
func isAnyTopCorner(source, target Type) bool {
	if _, ok := source.(AnyType); ok {
		return true
	}
	_, ok := target.(Top)
	return ok
}

// solveVariableTarget implements the Variable-target case of §4.7:
// join the newly observed source into whatever this variable has
// already been bound to, then accept the joined value according to
// the variable's own declared constraint.
func solveVariableTarget(ord *Order, constraints map[string]Type, source Type, target Variable) (map[string]Type, error) {
	if sv, ok := source.(Variable); ok && sv.Name == target.Name {
		return constraints, nil
	}

	joined := source
	if previous, ok := constraints[target.Name]; ok {
		joined = ord.Join(previous, source)
	}

	switch target.Constraints.Kind {
	case Explicit:
		if sv, ok := source.(Variable); ok && sv.Constraints.Kind == Explicit {
			for _, opt := range sv.Constraints.Options {
				if !containsType(target.Constraints.Options, opt) {
					return nil, fmt.Errorf("order: %s's constraints are not a subset of %s's", sv.Name, target.Name)
				}
			}
			constraints[target.Name] = joined
			return constraints, nil
		}
		for _, opt := range target.Constraints.Options {
			if ok, err := ord.LessOrEqual(joined, opt); err != nil {
				return nil, err
			} else if ok {
				constraints[target.Name] = joined
				return constraints, nil
			}
		}
		return nil, fmt.Errorf("order: no explicit constraint of %s is a supertype of %s", target.Name, joined.String())
	case Bound:
		ok, err := ord.LessOrEqual(joined, target.Constraints.BoundOn)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("order: %s exceeds the bound declared for %s", joined.String(), target.Name)
		}
		constraints[target.Name] = joined
		return constraints, nil
	default:
		constraints[target.Name] = joined
		return constraints, nil
	}
}

func containsType(options []Type, t Type) bool {
	for _, o := range options {
		if Equal(o, t) {
			return true
		}
	}
	return false
}

// solveParametricTarget is the "any source vs Parametric target" rule:
// propagate source's parameters up to target's primitive, solve every
// parameter position componentwise, then verify the target instance
// rebuilt from those solutions is still a supertype of source.
func solveParametricTarget(ord *Order, constraints map[string]Type, source Type, target Parametric) (map[string]Type, error) {
	propagated := InstantiateSuccessorsParameters(ord, source)
	actual, ok := ancestorByName(propagated, target.Name)
	if !ok {
		return nil, fmt.Errorf("order: %s has no %s ancestor", source.String(), target.Name)
	}
	_, actualParams, _ := Split(actual)

	acc := constraints
	for i, formal := range target.Parameters {
		var ap Type = Bottom{}
		if i < len(actualParams) {
			ap = actualParams[i]
		}
		var err error
		acc, err = SolveConstraints(ord, acc, ap, formal)
		if err != nil {
			return nil, err
		}
	}

	instantiated := Substitute(target, acc)
	ok, err := ord.LessOrEqual(source, instantiated)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("order: %s is not a subtype of %s once instantiated", source.String(), instantiated.String())
	}
	return acc, nil
}

func ancestorByName(instantiated map[string]Type, name string) (Type, bool) {
	for _, t := range instantiated {
		if n, _, ok := Split(t); ok && n == name {
			return t, true
		}
	}
	return nil, false
}

// solveTupleTarget covers the Bounded/Bounded, Unbounded/Unbounded,
// and mixed (expansion or unioning) tuple pairings §4.7 calls for.
func solveTupleTarget(ord *Order, constraints map[string]Type, source Type, target Tuple) (map[string]Type, error) {
	st, ok := source.(Tuple)
	if !ok {
		return nil, fmt.Errorf("order: %s is not a tuple for target %s", source.String(), target.String())
	}
	switch {
	case !st.IsUnbounded() && !target.IsUnbounded():
		if len(st.Bounded) != len(target.Bounded) {
			return nil, fmt.Errorf("order: tuple arity mismatch solving %s against %s", source.String(), target.String())
		}
		acc := constraints
		for i := range st.Bounded {
			var err error
			acc, err = SolveConstraints(ord, acc, st.Bounded[i], target.Bounded[i])
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	case st.IsUnbounded() && target.IsUnbounded():
		return SolveConstraints(ord, constraints, st.Unbounded, target.Unbounded)
	case !st.IsUnbounded() && target.IsUnbounded():
		acc := constraints
		for _, e := range st.Bounded {
			var err error
			acc, err = SolveConstraints(ord, acc, e, target.Unbounded)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	default:
		return SolveConstraints(ord, constraints, st.Unbounded, NewUnion(target.Bounded))
	}
}

// solveCallableTarget simulates calling source with target's own
// parameter annotations as the call site; on success it solves the
// two return types against whatever bindings that selected. On
// failure it falls back to solving parameter annotations pairwise
// (tolerating a length mismatch) and the return types of the
// originals.
func solveCallableTarget(ord *Order, constraints map[string]Type, source, target Callable) (map[string]Type, error) {
	if target.HasImplementation && target.Implementation.Parameters.Defined {
		args := make([]Type, len(target.Implementation.Parameters.Parameters))
		for i, p := range target.Implementation.Parameters.Parameters {
			args[i] = p.Annotation
		}
		if selected, ok := SimulateSignatureSelect(ord, source, args, nil); ok {
			returned := Substitute(selected.Overload.Annotation, selected.Bindings)
			if acc, err := SolveConstraints(ord, constraints, returned, target.Implementation.Annotation); err == nil {
				return acc, nil
			}
		}
	}

	acc := constraints
	if source.HasImplementation && target.HasImplementation &&
		source.Implementation.Parameters.Defined && target.Implementation.Parameters.Defined {
		sp := source.Implementation.Parameters.Parameters
		tp := target.Implementation.Parameters.Parameters
		n := len(sp)
		if len(tp) < n {
			n = len(tp)
		}
		for i := 0; i < n; i++ {
			var err error
			acc, err = SolveConstraints(ord, acc, sp[i].Annotation, tp[i].Annotation)
			if err != nil {
				return nil, err
			}
		}
	}
	if !source.HasImplementation || !target.HasImplementation {
		return nil, fmt.Errorf("order: cannot solve callable %s against %s", source.String(), target.String())
	}
	return SolveConstraints(ord, acc, source.Implementation.Annotation, target.Implementation.Annotation)
}
