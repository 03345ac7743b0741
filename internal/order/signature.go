package order

// SelectedOverload is the result of a successful SimulateSignatureSelect:
// the overload chosen, the TypeVar bindings the argument match
// produced, and why it was chosen.
type SelectedOverload struct {
	Overload Overload
	Bindings map[string]Type
	Source   DispatchSource
}

// SimulateSignatureSelect picks the first overload of c (its declared
// Overloads, then its plain Implementation) whose parameters accept
// args in order, optionally narrowed further by an expectedReturn the
// call site already knows it needs. Every free variable appearing in
// an overload's own parameters or return is seeded to Bottom before
// matching begins, so a TypeVar that never gets a constraining
// argument still resolves to something substitutable rather than
// being left dangling. It returns false when no overload matches.
func SimulateSignatureSelect(ord *Order, c Callable, args []Type, expectedReturn Type) (SelectedOverload, bool) {
	overloads := c.Overloads
	if c.HasImplementation {
		overloads = append(append([]Overload(nil), overloads...), c.Implementation)
	}

	for i, o := range overloads {
		bindings, source, ok := matchOverload(ord, o, args, i)
		if !ok {
			continue
		}
		if expectedReturn != nil {
			ret := Substitute(o.Annotation, bindings)
			if ok, _ := ord.LessOrEqual(ret, expectedReturn); !ok {
				continue
			}
			source = DispatchSource{Kind: DispatchReturn}
		}
		return SelectedOverload{Overload: o, Bindings: bindings, Source: source}, true
	}
	return SelectedOverload{}, false
}

// freeVariableBottoms seeds every free variable mentioned anywhere in
// o (parameters and return) to Bottom, the starting point matchOverload
// enlarges via SolveConstraints as it walks the call's arguments.
func freeVariableBottoms(o Overload) map[string]Type {
	out := map[string]Type{}
	for _, v := range FreeVariables(o.Annotation) {
		out[v.Name] = Bottom{}
	}
	if o.Parameters.Defined {
		for _, p := range o.Parameters.Parameters {
			for _, v := range FreeVariables(p.Annotation) {
				out[v.Name] = Bottom{}
			}
		}
	}
	return out
}

// matchOverload walks o's parameters against args positionally,
// solving each parameter's declared TypeVars against the
// corresponding argument via SolveConstraints(source=arg,
// target=param.Annotation) rather than just checking LessOrEqual, so
// the bindings returned are usable to instantiate the chosen
// overload's return type.
//
// Reaching a lone *args or **kwargs parameter consumes every
// remaining argument and returns. A *args immediately followed by a
// **kwargs is matched as a single compound unit against whatever
// Named parameters remain in the call: the rest of the call is
// consumed against either annotation without separately re-checking
// positions, a quirk of the original matcher whose intent is unclear
// but has been preserved rather than "fixed".
func matchOverload(ord *Order, o Overload, args []Type, index int) (map[string]Type, DispatchSource, bool) {
	if !o.Parameters.Defined {
		return map[string]Type{}, DispatchSource{Kind: DispatchImplementation, Index: index}, true
	}

	constraints := freeVariableBottoms(o)
	ai := 0
	params := o.Parameters.Parameters
	for pi := 0; pi < len(params); pi++ {
		p := params[pi]
		switch p.Kind {
		case ParamVariable:
			if pi+1 < len(params) && params[pi+1].Kind == ParamKeywords {
				kw := params[pi+1]
				for ; ai < len(args); ai++ {
					next, err := SolveConstraints(ord, constraints, args[ai], p.Annotation)
					if err != nil {
						next, err = SolveConstraints(ord, constraints, args[ai], kw.Annotation)
						if err != nil {
							return nil, DispatchSource{}, false
						}
					}
					constraints = next
				}
				return constraints, DispatchSource{Kind: DispatchArg, Index: pi}, true
			}
			for ; ai < len(args); ai++ {
				next, err := SolveConstraints(ord, constraints, args[ai], p.Annotation)
				if err != nil {
					return nil, DispatchSource{}, false
				}
				constraints = next
			}
			return constraints, DispatchSource{Kind: DispatchArg, Index: pi}, true
		case ParamKeywords:
			for ; ai < len(args); ai++ {
				next, err := SolveConstraints(ord, constraints, args[ai], p.Annotation)
				if err != nil {
					return nil, DispatchSource{}, false
				}
				constraints = next
			}
			return constraints, DispatchSource{Kind: DispatchArg, Index: pi}, true
		default:
			if ai >= len(args) {
				if p.HasDefault {
					continue
				}
				return nil, DispatchSource{}, false
			}
			next, err := SolveConstraints(ord, constraints, args[ai], p.Annotation)
			if err != nil {
				return nil, DispatchSource{}, false
			}
			constraints = next
			ai++
		}
	}
	if ai < len(args) {
		return nil, DispatchSource{}, false
	}
	return constraints, DispatchSource{Kind: DispatchImplementation, Index: index}, true
}
