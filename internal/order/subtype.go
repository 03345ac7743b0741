package order

import "github.com/arborlang/typeorder/internal/config"

// LessOrEqual reports whether a is a subtype of b under ord, trying
// the structural shapes (Union, Optional, Tuple, Callable,
// TypedDictionary), then the nominal graph, then protocol witnessing,
// in that order.
// A non-nil error only ever wraps an InconsistentMROError surfaced
// while linearizing a nominal ancestor chain; every other case
// degrades to a plain false rather than failing the query.
func (ord *Order) LessOrEqual(a, b Type) (bool, error) {
	if Equal(a, b) {
		return true, nil
	}
	if ContainsUndeclared(a) || ContainsUndeclared(b) {
		return true, nil
	}
	if _, ok := a.(AnyType); ok {
		return true, nil
	}
	if _, ok := b.(AnyType); ok {
		return true, nil
	}
	if _, ok := a.(Bottom); ok {
		return true, nil
	}
	if _, ok := b.(Top); ok {
		return true, nil
	}
	if _, ok := a.(Top); ok {
		return false, nil
	}
	if _, ok := b.(Bottom); ok {
		return false, nil
	}

	if l, ok := a.(Literal); ok {
		if lb, ok := b.(Literal); ok {
			return l.canonicalKey() == lb.canonicalKey(), nil
		}
		return ord.LessOrEqual(WeakenLiterals(l), b)
	}

	if u, ok := a.(Union); ok {
		for _, m := range u.Types {
			if ok, err := ord.LessOrEqual(m, b); err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
	if u, ok := b.(Union); ok {
		for _, m := range u.Types {
			if ok, err := ord.LessOrEqual(a, m); err != nil {
				return false, err
			} else if ok {
				return true, nil
			}
		}
		return false, nil
	}

	if o, ok := a.(Optional); ok {
		return ord.LessOrEqual(optionalAsUnion(o), b)
	}
	if o, ok := b.(Optional); ok {
		return ord.LessOrEqual(a, optionalAsUnion(o))
	}

	if v, ok := a.(Variable); ok {
		switch v.Constraints.Kind {
		case Bound:
			return ord.LessOrEqual(v.Constraints.BoundOn, b)
		case Explicit:
			for _, opt := range v.Constraints.Options {
				if ok, err := ord.LessOrEqual(opt, b); err != nil || !ok {
					return false, err
				}
			}
			return true, nil
		default:
			return false, nil
		}
	}
	if v, ok := b.(Variable); ok {
		if v.Constraints.Kind == Bound {
			return ord.LessOrEqual(a, v.Constraints.BoundOn)
		}
		return false, nil
	}

	if ma, ok := a.(Meta); ok {
		if mb, ok := b.(Meta); ok {
			return ord.LessOrEqual(ma.Inner, mb.Inner)
		}
		return ord.LessOrEqual(Primitive{Name: config.TypeMetaFormName}, b)
	}

	if ta, ok := a.(Tuple); ok {
		if tb, ok := b.(Tuple); ok {
			return tupleLessOrEqual(ord, ta, tb)
		}
		return ord.LessOrEqual(normalizeForWalk(ord, ta), b)
	}

	if da, ok := a.(TypedDictionary); ok {
		if db, ok := b.(TypedDictionary); ok {
			return typedDictLessOrEqual(ord, da, db)
		}
	}

	if ca, ok := a.(Callable); ok {
		if cb, ok := b.(Callable); ok {
			return callableLessOrEqual(ord, ca, cb)
		}
	}

	return ord.nominalLessOrEqual(a, b)
}

func optionalAsUnion(o Optional) Type {
	return NewUnion([]Type{o.Inner, Primitive{Name: config.NoneTypeName}})
}

func tupleLessOrEqual(ord *Order, a, b Tuple) (bool, error) {
	switch {
	case !a.IsUnbounded() && !b.IsUnbounded():
		if len(a.Bounded) != len(b.Bounded) {
			return false, nil
		}
		for i := range a.Bounded {
			if ok, err := ord.LessOrEqual(a.Bounded[i], b.Bounded[i]); err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case !a.IsUnbounded() && b.IsUnbounded():
		for _, e := range a.Bounded {
			if ok, err := ord.LessOrEqual(e, b.Unbounded); err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case a.IsUnbounded() && b.IsUnbounded():
		return ord.LessOrEqual(a.Unbounded, b.Unbounded)
	default:
		// a is unbounded, b is a fixed length: only satisfiable in the
		// degenerate case of an empty b, which Python's typing module
		// doesn't allow either, so this is always false.
		return false, nil
	}
}

// typedDictLessOrEqual implements width subtyping: a and b must share
// the same totality, and every field b declares must exist in a with
// an equivalent annotation (each <= the other); a may carry extra
// fields.
func typedDictLessOrEqual(ord *Order, a, b TypedDictionary) (bool, error) {
	if a.Total != b.Total {
		return false, nil
	}
	fields := make(map[string]Type, len(a.Fields))
	for _, f := range a.Fields {
		fields[f.Name] = f.Annotation
	}
	for _, f := range b.sortedFields() {
		av, ok := fields[f.Name]
		if !ok {
			return false, nil
		}
		okLE, err := ord.LessOrEqual(av, f.Annotation)
		if err != nil {
			return false, err
		}
		okGE, err := ord.LessOrEqual(f.Annotation, av)
		if err != nil {
			return false, err
		}
		if !okLE || !okGE {
			return false, nil
		}
	}
	return true, nil
}

// callableLessOrEqual treats a as a subtype of b when every overload
// of b (including its plain implementation) is satisfied by at least
// one overload of a: parameters compared contravariantly, return type
// covariantly.
func callableLessOrEqual(ord *Order, a, b Callable) (bool, error) {
	bOverloads := b.Overloads
	if b.HasImplementation {
		bOverloads = append(append([]Overload(nil), bOverloads...), b.Implementation)
	}
	aOverloads := a.Overloads
	if a.HasImplementation {
		aOverloads = append(append([]Overload(nil), aOverloads...), a.Implementation)
	}
	if len(bOverloads) == 0 {
		return true, nil
	}
	for _, bo := range bOverloads {
		satisfied := false
		for _, ao := range aOverloads {
			ok, err := overloadLessOrEqual(ord, ao, bo)
			if err != nil {
				return false, err
			}
			if ok {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false, nil
		}
	}
	return true, nil
}

func overloadLessOrEqual(ord *Order, a, b Overload) (bool, error) {
	if ok, err := ord.LessOrEqual(a.Annotation, b.Annotation); err != nil || !ok {
		return false, err
	}
	if !a.Parameters.Defined || !b.Parameters.Defined {
		return true, nil
	}
	if len(a.Parameters.Parameters) != len(b.Parameters.Parameters) {
		return false, nil
	}
	for i, bp := range b.Parameters.Parameters {
		ap := a.Parameters.Parameters[i]
		if ap.Kind != bp.Kind {
			return false, nil
		}
		if ok, err := ord.LessOrEqual(bp.Annotation, ap.Annotation); err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// nominalLessOrEqual handles the remaining cases: plain nominal
// classes and their generic instantiations, falling back to
// structural protocol witnessing when the graph has no ancestor
// relationship at all.
func (ord *Order) nominalLessOrEqual(a, b Type) (bool, error) {
	bName, bParams, ok := Split(b)
	if !ok {
		return false, nil
	}
	aName, aParams, ok := Split(a)
	if !ok {
		return ord.protocolLessOrEqual(a, b)
	}

	if aName == bName {
		declared := ord.Engine.Variables(Primitive{Name: aName})
		return parametersLessOrEqual(ord, declared, aParams, bParams)
	}

	chain, err := Successors(ord, a)
	if err != nil {
		return false, err
	}
	for _, ancestor := range chain {
		name, params, ok := Split(ancestor)
		if !ok || name != bName {
			continue
		}
		declared := ord.Engine.Variables(Primitive{Name: bName})
		return parametersLessOrEqual(ord, declared, params, bParams)
	}

	return ord.protocolLessOrEqual(a, b)
}

// protocolLessOrEqual consults the host's structural witness for any
// b that the nominal graph gives no declared path to from a; whether
// b is a protocol is left to the host's Implements callback.
func (ord *Order) protocolLessOrEqual(a, b Type) (bool, error) {
	result := ord.implementsOf(b, a)
	if !result.Implements {
		return false, nil
	}
	bName, bParams, ok := Split(b)
	if !ok {
		return true, nil
	}
	declared := ord.Engine.Variables(Primitive{Name: bName})
	return parametersLessOrEqual(ord, declared, result.Parameters, bParams)
}

func parametersLessOrEqual(ord *Order, declared []Variable, a, b []Type) (bool, error) {
	n := len(declared)
	if n == 0 {
		return true, nil
	}
	for i := 0; i < n; i++ {
		var ap, bp Type = Bottom{}, Top{}
		if i < len(a) {
			ap = a[i]
		}
		if i < len(b) {
			bp = b[i]
		}
		switch declared[i].Variance {
		case Contravariant:
			if ok, err := ord.LessOrEqual(bp, ap); err != nil || !ok {
				return false, err
			}
		case Invariant:
			if !Equal(ap, bp) {
				return false, nil
			}
		default: // Covariant
			if ok, err := ord.LessOrEqual(ap, bp); err != nil || !ok {
				return false, err
			}
		}
	}
	return true, nil
}
