package order

import "github.com/arborlang/typeorder/internal/config"

// Builder constructs Engines. It has no state of its own; every
// method is a constructor (Create, Copy) or a seeding pass (Default).
type Builder struct{}

// Create returns a fresh, empty Engine: four empty tables and a
// telemetry identity, nothing seeded. r may be nil, in which case
// invalid mutations are silently dropped (NullReporter).
func (Builder) Create(r TelemetryReporter) *Engine {
	if r == nil {
		r = NullReporter{}
	}
	id := newEngineID()
	return &Engine{graph: NewGraph(r, id), id: id}
}

// Copy deep-copies every table of e into an independent Engine (its
// own telemetry identity), per spec.md §5: each goroutine that wants
// to query concurrently needs its own copy.
func (Builder) Copy(e *Engine) *Engine {
	id := newEngineID()
	g := e.graph.clone()
	g.engineID = id
	return &Engine{graph: g, id: id}
}

// Default seeds a freshly Created engine with the universal scalars,
// the numeric tower, the typing-module special forms, the
// TypedDictionary tower, type[_T], and the unittest.mock pair listed
// in spec.md §6, then runs the hygiene passes so the seed is already
// integrity-clean before the host inserts user classes.
func (Builder) Default(e *Engine) *Engine {
	g := e.graph

	g.Insert(Bottom{})
	g.Insert(Top{})
	g.Insert(AnyType{})
	g.Insert(Undeclared{})

	object := config.ObjectTypeName
	g.Insert(Primitive{Name: object})

	seedChain(g, config.IntTypeName, config.FloatTypeName)
	seedChain(g, config.FloatTypeName, config.ComplexTypeName)
	seedChain(g, config.ComplexTypeName, config.NumbersComplexTypeName)
	seedChain(g, config.NumbersComplexTypeName, config.NumbersNumberTypeName)
	seedChain(g, config.NumbersNumberTypeName, object)

	for _, scalar := range []string{config.BoolTypeName, config.StrTypeName, config.BytesTypeName, config.NoneTypeName} {
		seedChain(g, scalar, object)
	}

	for _, form := range []string{
		config.TupleSpecialForm, config.CallableSpecialForm, config.ProtocolSpecialForm,
		config.GenericVertexName, config.FrozenSetSpecialForm, config.OptionalSpecialForm,
		config.TypeVarSpecialForm, config.UnionSpecialForm, config.NoReturnSpecialForm,
		config.ClassVarSpecialForm, config.NamedTupleTypeName,
	} {
		seedChain(g, form, object)
	}

	// typing.Tuple declares one covariant element variable, the
	// collapsed-join position every bounded Tuple propagates its
	// members through on the way up to a generic container ancestor.
	declareGenerics(g, config.TupleSpecialForm, Variable{Name: "_T", Variance: Covariant})

	seedChain(g, config.DictTypeName, config.TypingDictTypeName)
	seedChain(g, config.TypingDictTypeName, object)

	// type[_T] -> Generic[_T]
	typeVar := Variable{Name: "_T", Variance: Covariant}
	g.Insert(Primitive{Name: config.TypeMetaFormName})
	genericOfT := Parametric{Name: config.GenericVertexName, Parameters: []Type{typeVar}}
	g.Insert(genericOfT)
	g.Connect(Primitive{Name: config.TypeMetaFormName}, genericOfT, nil)
	declareGenerics(g, config.TypeMetaFormName, typeVar)

	// NonTotalTypedDictionary -> TypedDictionary -> typing.Mapping[str, Any] -> Generic[_T, _T2]
	tVar1 := Variable{Name: "_T"}
	tVar2 := Variable{Name: "_T2"}
	seedChain(g, config.NonTotalTypedDictionaryTypeName, config.TypedDictionaryTypeName)
	mappingStrAny := Parametric{Name: config.TypingMappingTypeName, Parameters: []Type{Primitive{Name: config.StrTypeName}, AnyType{}}}
	g.Insert(mappingStrAny)
	g.Connect(Primitive{Name: config.TypedDictionaryTypeName}, mappingStrAny, nil)
	g.Insert(Primitive{Name: config.TypingMappingTypeName})
	g.Connect(mappingStrAny, Primitive{Name: config.TypingMappingTypeName}, []Type{Primitive{Name: config.StrTypeName}, AnyType{}})
	declareGenerics(g, config.TypingMappingTypeName, tVar1, tVar2)
	seedChain(g, config.TypingMappingTypeName, object)

	seedChain(g, config.MockNonCallableTypeName, config.MockBaseTypeName)
	seedChain(g, config.MockBaseTypeName, object)

	ord := &Order{Engine: e}
	ord.Normalize()
	ord.Deduplicate(g.Keys())
	ord.RemoveExtraEdges()
	ord.ConnectAnnotationsToTop()
	ord.Normalize()

	return e
}

// seedChain inserts both Primitive names if absent and connects
// sub -> super with no parameters (a plain, non-generic edge).
func seedChain(g *Graph, sub, super string) {
	g.Insert(Primitive{Name: sub})
	g.Insert(Primitive{Name: super})
	g.Connect(Primitive{Name: sub}, Primitive{Name: super}, nil)
}

// declareGenerics records primitiveName's declared type variables as
// an edge to the distinguished Generic vertex, the mechanism
// Engine.Variables and parameter propagation both read back.
func declareGenerics(g *Graph, primitiveName string, vars ...Variable) {
	g.Insert(Primitive{Name: config.GenericVertexName})
	params := make([]Type, len(vars))
	for i, v := range vars {
		params[i] = v
	}
	g.Connect(Primitive{Name: primitiveName}, Primitive{Name: config.GenericVertexName}, params)
}
