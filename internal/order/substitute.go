package order

// Substitute structurally replaces every Variable occurrence in t
// whose name is a key of subst with the corresponding type, recursing
// through every compound shape. It never mutates t.
func Substitute(t Type, subst map[string]Type) Type {
	if t == nil || len(subst) == 0 {
		return t
	}
	switch v := t.(type) {
	case Variable:
		if replacement, ok := subst[v.Name]; ok {
			return replacement
		}
		return v
	case Parametric:
		params := make([]Type, len(v.Parameters))
		for i, p := range v.Parameters {
			params[i] = Substitute(p, subst)
		}
		return Parametric{Name: v.Name, Parameters: params}
	case Optional:
		return Optional{Inner: Substitute(v.Inner, subst)}
	case Union:
		members := make([]Type, len(v.Types))
		for i, m := range v.Types {
			members[i] = Substitute(m, subst)
		}
		return NewUnion(members)
	case Tuple:
		if v.IsUnbounded() {
			return Tuple{Unbounded: Substitute(v.Unbounded, subst)}
		}
		elems := make([]Type, len(v.Bounded))
		for i, e := range v.Bounded {
			elems[i] = Substitute(e, subst)
		}
		return Tuple{Bounded: elems}
	case Callable:
		out := Callable{Kind: v.Kind, QualifiedName: v.QualifiedName}
		if v.HasImplementation {
			out.HasImplementation = true
			out.Implementation = substituteOverload(v.Implementation, subst)
		}
		if v.Overloads != nil {
			out.Overloads = make([]Overload, len(v.Overloads))
			for i, o := range v.Overloads {
				out.Overloads[i] = substituteOverload(o, subst)
			}
		}
		return out
	case TypedDictionary:
		fields := make([]TypedDictionaryField, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = TypedDictionaryField{Name: f.Name, Annotation: Substitute(f.Annotation, subst)}
		}
		return TypedDictionary{Fields: fields, Total: v.Total}
	case Meta:
		return Meta{Inner: Substitute(v.Inner, subst)}
	default:
		return t
	}
}

func substituteOverload(o Overload, subst map[string]Type) Overload {
	out := Overload{Annotation: Substitute(o.Annotation, subst)}
	if o.Parameters.Defined {
		params := make([]Parameter, len(o.Parameters.Parameters))
		for i, p := range o.Parameters.Parameters {
			params[i] = Parameter{
				Kind:       p.Kind,
				Name:       p.Name,
				Annotation: Substitute(p.Annotation, subst),
				HasDefault: p.HasDefault,
			}
		}
		out.Parameters = ParameterList{Defined: true, Parameters: params}
	} else {
		out.Parameters = ParameterList{Defined: false}
	}
	return out
}
