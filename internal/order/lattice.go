package order

import "github.com/arborlang/typeorder/internal/config"

// Join returns the least upper bound of a and b under ord: the most
// specific type both are subtypes of. Structural shapes that don't
// line up (different-length tuples, a tuple, TypedDictionary or
// Callable against a different shape, two Callables with no precise
// join) fall back to the plain structural union of a and b rather
// than failing; two TypedDictionary terms join to a TypedDictionary
// or to typing.Mapping[str, Any] (see joinTypedDicts). This is an accepted
// imprecision carried over from the graph this engine was modeled on.
func (ord *Order) Join(a, b Type) Type {
	if _, ok := a.(Undeclared); ok {
		return NewUnion([]Type{a, b})
	}
	if _, ok := b.(Undeclared); ok {
		return NewUnion([]Type{a, b})
	}
	if va, ok := a.(Variable); ok {
		return ord.Join(groundForm(va), b)
	}
	if vb, ok := b.(Variable); ok {
		return ord.Join(a, groundForm(vb))
	}

	if ok, _ := ord.LessOrEqual(a, b); ok {
		return b
	}
	if ok, _ := ord.LessOrEqual(b, a); ok {
		return a
	}

	if ua, ok := a.(Union); ok {
		return NewUnion(append(append([]Type(nil), ua.Types...), b))
	}
	if ub, ok := b.(Union); ok {
		return NewUnion(append([]Type{a}, ub.Types...))
	}
	if oa, ok := a.(Optional); ok {
		return ord.Join(optionalAsUnion(oa), b)
	}
	if ob, ok := b.(Optional); ok {
		return ord.Join(a, optionalAsUnion(ob))
	}

	if ta, ok := a.(Tuple); ok {
		if tb, ok := b.(Tuple); ok {
			if j, ok := joinTuples(ord, ta, tb); ok {
				return j
			}
		}
		return NewUnion([]Type{a, b})
	}
	if _, ok := b.(Tuple); ok {
		return NewUnion([]Type{a, b})
	}
	if da, ok := a.(TypedDictionary); ok {
		if db, ok := b.(TypedDictionary); ok {
			return joinTypedDicts(da, db)
		}
		return NewUnion([]Type{a, b})
	}
	if _, ok := b.(TypedDictionary); ok {
		return NewUnion([]Type{a, b})
	}
	if ca, ok := a.(Callable); ok {
		if cb, ok := b.(Callable); ok {
			if j, ok := joinCallables(ord, ca, cb); ok {
				return j
			}
		}
		return NewUnion([]Type{a, b})
	}
	if _, ok := b.(Callable); ok {
		return NewUnion([]Type{a, b})
	}

	return ord.joinNominal(a, b)
}

// groundForm reduces a free TypeVar to the ground type Join/Meet use
// in its place: a Bound variable reduces to its bound, an Explicit one
// to the union of its options, and an unconstrained one to Top (the
// most permissive type any of its observations could be joined into).
func groundForm(v Variable) Type {
	switch v.Constraints.Kind {
	case Bound:
		return v.Constraints.BoundOn
	case Explicit:
		return NewUnion(v.Constraints.Options)
	default:
		return Top{}
	}
}

// mappingFallback is the typing.Mapping[str, Any] this engine falls
// back to whenever two TypedDictionary shapes can't be merged exactly.
func mappingFallback() Type {
	return Parametric{Name: config.TypingMappingTypeName, Parameters: []Type{
		Primitive{Name: config.StrTypeName},
		AnyType{},
	}}
}

// joinTypedDicts intersects fields when both dictionaries share the
// same totality and agree on every field they have in common;
// otherwise it widens to typing.Mapping[str, Any].
func joinTypedDicts(a, b TypedDictionary) Type {
	if a.Total != b.Total {
		return mappingFallback()
	}
	bFields := make(map[string]Type, len(b.Fields))
	for _, f := range b.Fields {
		bFields[f.Name] = f.Annotation
	}
	var fields []TypedDictionaryField
	for _, f := range a.Fields {
		bt, ok := bFields[f.Name]
		if !ok {
			continue
		}
		if !Equal(f.Annotation, bt) {
			return mappingFallback()
		}
		fields = append(fields, f)
	}
	return TypedDictionary{Fields: fields, Total: a.Total}
}

// meetTypedDicts unions fields when both dictionaries share the same
// totality; colliding field names must agree, since a single instance
// would need to satisfy both annotations at once. Mismatched totality
// falls back to the nominal meet (typically Bottom).
func meetTypedDicts(ord *Order, a, b TypedDictionary) (Type, bool) {
	if a.Total != b.Total {
		return nil, false
	}
	byName := map[string]TypedDictionaryField{}
	var fieldOrder []string
	for _, f := range a.Fields {
		byName[f.Name] = f
		fieldOrder = append(fieldOrder, f.Name)
	}
	for _, f := range b.Fields {
		existing, ok := byName[f.Name]
		if !ok {
			byName[f.Name] = f
			fieldOrder = append(fieldOrder, f.Name)
			continue
		}
		if !Equal(existing.Annotation, f.Annotation) {
			return nil, false
		}
	}
	fields := make([]TypedDictionaryField, len(fieldOrder))
	for i, name := range fieldOrder {
		fields[i] = byName[name]
	}
	return TypedDictionary{Fields: fields, Total: a.Total}, true
}

// joinImplementations merges two anonymous, unoverloaded Callables by
// meeting their parameter annotations and joining their return
// annotations: a signature matching both implementations has to
// accept whatever either demanded and promise no more than both
// promise. The merged signature inherits the left operand's
// parameter names, kinds, and defaults.
func joinImplementations(ord *Order, left, right Overload) (Overload, bool) {
	lp, rp := left.Parameters, right.Parameters
	if !lp.Defined || !rp.Defined || len(lp.Parameters) != len(rp.Parameters) {
		return Overload{}, false
	}
	params := make([]Parameter, len(lp.Parameters))
	for i := range lp.Parameters {
		l, r := lp.Parameters[i], rp.Parameters[i]
		if l.Kind != r.Kind || l.HasDefault != r.HasDefault {
			return Overload{}, false
		}
		params[i] = Parameter{
			Kind:       l.Kind,
			Name:       l.Name,
			HasDefault: l.HasDefault,
			Annotation: ord.Meet(l.Annotation, r.Annotation),
		}
	}
	return Overload{
		Annotation: ord.Join(left.Annotation, right.Annotation),
		Parameters: ParameterList{Defined: true, Parameters: params},
	}, true
}

// joinCallables unifies two named callables of equal name and joins
// two anonymous, unoverloaded callables via joinImplementations;
// everything else (differing names, any overloads) has no precise
// join and returns ok=false so the caller falls back to a union.
func joinCallables(ord *Order, a, b Callable) (Type, bool) {
	if a.Kind == Named && b.Kind == Named {
		if a.QualifiedName == b.QualifiedName {
			return a, true
		}
		return nil, false
	}
	if a.Kind == Named || b.Kind == Named {
		return nil, false
	}
	if len(a.Overloads) > 0 || len(b.Overloads) > 0 {
		return nil, false
	}
	if !a.HasImplementation || !b.HasImplementation {
		return nil, false
	}
	merged, ok := joinImplementations(ord, a.Implementation, b.Implementation)
	if !ok {
		return nil, false
	}
	return Callable{Kind: Anonymous, HasImplementation: true, Implementation: merged}, true
}

// meetCallables mirrors joinCallables: named callables of equal name
// unify, and anonymous unoverloaded callables merge by joining
// parameter annotations (a caller satisfying both signatures must
// satisfy the stricter one) and meeting return annotations.
func meetCallables(ord *Order, a, b Callable) (Type, bool) {
	if a.Kind == Named && b.Kind == Named {
		if a.QualifiedName == b.QualifiedName {
			return a, true
		}
		return nil, false
	}
	if a.Kind == Named || b.Kind == Named {
		return nil, false
	}
	if len(a.Overloads) > 0 || len(b.Overloads) > 0 {
		return nil, false
	}
	if !a.HasImplementation || !b.HasImplementation {
		return nil, false
	}
	lp, rp := a.Implementation.Parameters, b.Implementation.Parameters
	if !lp.Defined || !rp.Defined || len(lp.Parameters) != len(rp.Parameters) {
		return nil, false
	}
	params := make([]Parameter, len(lp.Parameters))
	for i := range lp.Parameters {
		l, r := lp.Parameters[i], rp.Parameters[i]
		if l.Kind != r.Kind || l.HasDefault != r.HasDefault {
			return nil, false
		}
		params[i] = Parameter{
			Kind:       l.Kind,
			Name:       l.Name,
			HasDefault: l.HasDefault,
			Annotation: ord.Join(l.Annotation, r.Annotation),
		}
	}
	merged := Overload{
		Annotation: ord.Meet(a.Implementation.Annotation, b.Implementation.Annotation),
		Parameters: ParameterList{Defined: true, Parameters: params},
	}
	return Callable{Kind: Anonymous, HasImplementation: true, Implementation: merged}, true
}

func joinTuples(ord *Order, a, b Tuple) (Type, bool) {
	switch {
	case !a.IsUnbounded() && !b.IsUnbounded() && len(a.Bounded) == len(b.Bounded):
		joined := make([]Type, len(a.Bounded))
		for i := range a.Bounded {
			joined[i] = ord.Join(a.Bounded[i], b.Bounded[i])
		}
		return Tuple{Bounded: joined}, true
	case a.IsUnbounded() && b.IsUnbounded():
		return Tuple{Unbounded: ord.Join(a.Unbounded, b.Unbounded)}, true
	default:
		return nil, false
	}
}

// joinNominal finds the ancestors a and b instantiate in common and
// returns the most specific one. Structural-only shapes that reached
// here (no primitive head) join to their plain union; two nominal
// types with no common ancestor (unrelated Primitives under disjoint
// roots, or untracked ones) join to Top.
func (ord *Order) joinNominal(a, b Type) Type {
	_, _, aOK := Split(a)
	_, _, bOK := Split(b)
	if !aOK || !bOK {
		return NewUnion([]Type{a, b})
	}

	ancestorsA := InstantiateSuccessorsParameters(ord, a)
	ancestorsB := InstantiateSuccessorsParameters(ord, b)

	var common []Type
	for k, t := range ancestorsA {
		if _, ok := ancestorsB[k]; ok {
			common = append(common, t)
		}
	}
	if len(common) == 0 {
		return Top{}
	}
	return Least(ord, common)
}

// Meet returns the greatest lower bound of a and b under ord: the
// most general type that is a subtype of both. It mirrors Join over
// the backward edges; two types with no common subtype other than
// Bottom meet to Bottom.
func (ord *Order) Meet(a, b Type) Type {
	if _, ok := a.(Undeclared); ok {
		return NewUnion([]Type{a, b})
	}
	if _, ok := b.(Undeclared); ok {
		return NewUnion([]Type{a, b})
	}
	if _, ok := a.(Variable); ok {
		return Bottom{}
	}
	if _, ok := b.(Variable); ok {
		return Bottom{}
	}

	if ok, _ := ord.LessOrEqual(a, b); ok {
		return a
	}
	if ok, _ := ord.LessOrEqual(b, a); ok {
		return b
	}

	if ua, ok := a.(Union); ok {
		return meetUnion(ord, ua, b)
	}
	if ub, ok := b.(Union); ok {
		return meetUnion(ord, ub, a)
	}
	if oa, ok := a.(Optional); ok {
		return ord.Meet(optionalAsUnion(oa), b)
	}
	if ob, ok := b.(Optional); ok {
		return ord.Meet(a, optionalAsUnion(ob))
	}

	if ta, ok := a.(Tuple); ok {
		if tb, ok := b.(Tuple); ok {
			if m, ok := meetTuples(ord, ta, tb); ok {
				return m
			}
		}
		return Bottom{}
	}
	if _, ok := b.(Tuple); ok {
		return Bottom{}
	}
	if da, ok := a.(TypedDictionary); ok {
		if db, ok := b.(TypedDictionary); ok {
			if m, ok := meetTypedDicts(ord, da, db); ok {
				return m
			}
		}
		return ord.meetNominal(a, b)
	}
	if _, ok := b.(TypedDictionary); ok {
		return ord.meetNominal(a, b)
	}
	if ca, ok := a.(Callable); ok {
		if cb, ok := b.(Callable); ok {
			if m, ok := meetCallables(ord, ca, cb); ok {
				return m
			}
		}
		return Bottom{}
	}
	if _, ok := b.(Callable); ok {
		return Bottom{}
	}

	return ord.meetNominal(a, b)
}

func meetUnion(ord *Order, u Union, other Type) Type {
	var members []Type
	for _, m := range u.Types {
		if ok, _ := ord.LessOrEqual(m, other); ok {
			members = append(members, m)
			continue
		}
		met := ord.Meet(m, other)
		if _, isBottom := met.(Bottom); !isBottom {
			members = append(members, met)
		}
	}
	return NewUnion(members)
}

func meetTuples(ord *Order, a, b Tuple) (Type, bool) {
	switch {
	case !a.IsUnbounded() && !b.IsUnbounded() && len(a.Bounded) == len(b.Bounded):
		met := make([]Type, len(a.Bounded))
		for i := range a.Bounded {
			met[i] = ord.Meet(a.Bounded[i], b.Bounded[i])
		}
		return Tuple{Bounded: met}, true
	case a.IsUnbounded() && b.IsUnbounded():
		return Tuple{Unbounded: ord.Meet(a.Unbounded, b.Unbounded)}, true
	default:
		return nil, false
	}
}

func (ord *Order) meetNominal(a, b Type) Type {
	_, _, aOK := Split(a)
	_, _, bOK := Split(b)
	if !aOK || !bOK {
		return Bottom{}
	}

	predecessorsA := InstantiatePredecessorsParameters(ord, a)
	predecessorsB := InstantiatePredecessorsParameters(ord, b)

	var common []Type
	for k, t := range predecessorsA {
		if _, ok := predecessorsB[k]; ok {
			common = append(common, t)
		}
	}
	if len(common) == 0 {
		return Bottom{}
	}
	return Greatest(ord, common)
}
