package order

// Constructor maps a metaclass type to its instance type, when the
// host can supply one (e.g. Meta(Foo) -> Foo's __init__ signature).
type Constructor func(Type) (Type, bool)

// ImplementsResult is the result of a structural-protocol witness
// check: either DoesNotImplement, or Implements with the concrete
// parameters the candidate witnesses the protocol's generics as.
type ImplementsResult struct {
	Implements bool
	Parameters []Type
}

// DoesNotImplement is the zero-value "no witness" result.
var DoesNotImplement = ImplementsResult{}

// Implements checks whether candidate structurally satisfies
// protocol, witnessed externally by the host (e.g. "this Callable
// witnesses this Protocol's abstract methods").
type Implements func(protocol, candidate Type) ImplementsResult

// Order bundles an Engine handle with the two host callbacks every
// mutually recursive query (LessOrEqual, Join, Meet, SolveConstraints,
// SimulateSignatureSelect) needs, so the recursion stays acyclic at
// the module level (spec.md §9's design note) instead of needing a
// package-level callback registry.
type Order struct {
	Engine      *Engine
	Constructor Constructor
	Implements  Implements
}

// New bundles an existing engine with host callbacks. Either callback
// may be nil; callers that never exercise protocol witnessing or
// constructor lookup can pass nil and those rules simply fail closed
// (treated as "no witness"/"no constructor").
func New(engine *Engine, constructor Constructor, implements Implements) *Order {
	return &Order{Engine: engine, Constructor: constructor, Implements: implements}
}

func (ord *Order) constructorOf(t Type) (Type, bool) {
	if ord.Constructor == nil {
		return nil, false
	}
	return ord.Constructor(t)
}

func (ord *Order) implementsOf(protocol, candidate Type) ImplementsResult {
	if ord.Implements == nil {
		return DoesNotImplement
	}
	return ord.Implements(protocol, candidate)
}
