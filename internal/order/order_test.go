package order

import (
	"testing"

	"github.com/arborlang/typeorder/internal/config"
)

// TestUniversalInvariants checks the handful of properties every
// seeded engine must satisfy regardless of what a host has inserted:
// reflexivity, Bottom/Top as absolute bounds (Any among the checked
// types), and join/meet's bounding behavior.
func TestUniversalInvariants(t *testing.T) {
	ord := newTestOrder()
	seedAnimalHierarchy(ord)

	everything := []Type{
		Bottom{}, Top{}, AnyType{},
		Primitive{Name: "pkg.Dog"}, Primitive{Name: "pkg.Animal"},
		Primitive{Name: config.ObjectTypeName},
	}

	for _, ty := range everything {
		if ok, err := ord.LessOrEqual(ty, ty); err != nil || !ok {
			t.Errorf("%s is not reflexive under LessOrEqual", ty)
		}
		if ok, _ := ord.LessOrEqual(Bottom{}, ty); !ok {
			t.Errorf("Bottom <= %s failed", ty)
		}
		if ok, _ := ord.LessOrEqual(ty, Top{}); !ok {
			t.Errorf("%s <= Top failed", ty)
		}
	}

	dog := Primitive{Name: "pkg.Dog"}
	cat := Primitive{Name: "pkg.Cat"}
	joined := ord.Join(dog, cat)
	if ok, _ := ord.LessOrEqual(dog, joined); !ok {
		t.Errorf("Join(Dog, Cat) is not an upper bound of Dog")
	}
	if ok, _ := ord.LessOrEqual(cat, joined); !ok {
		t.Errorf("Join(Dog, Cat) is not an upper bound of Cat")
	}

	met := ord.Meet(dog, cat)
	if ok, _ := ord.LessOrEqual(met, dog); !ok {
		t.Errorf("Meet(Dog, Cat) is not a lower bound of Dog")
	}
	if ok, _ := ord.LessOrEqual(met, cat); !ok {
		t.Errorf("Meet(Dog, Cat) is not a lower bound of Cat")
	}
}

// TestInsertIdempotentAcrossIntegrityChecks mirrors spec.md §8's
// insert-idempotency scenario: repeated Insert of the same type must
// never break CheckIntegrity or change its resolved index.
func TestInsertIdempotentAcrossIntegrityChecks(t *testing.T) {
	e := newTestEngine()
	foo := Primitive{Name: "pkg.Foo"}

	first := e.Insert(foo)
	for i := 0; i < 5; i++ {
		if again := e.Insert(foo); again != first {
			t.Fatalf("Insert(Foo) returned a different index on repeat %d: %d != %d", i, again, first)
		}
	}
	if err := e.CheckIntegrity(); err != nil {
		t.Errorf("CheckIntegrity() after repeated Insert = %v", err)
	}
}

// TestProtocolWitnessingFallback exercises the structural-protocol
// path: a type with no nominal ancestry in common with a protocol
// still satisfies LessOrEqual when the host's Implements callback
// witnesses it.
func TestProtocolWitnessingFallback(t *testing.T) {
	e := newTestEngine()
	protocol := Primitive{Name: "pkg.Sized"}
	candidate := Primitive{Name: "pkg.Box"}
	e.graph.Insert(protocol)
	e.graph.Connect(protocol, Primitive{Name: config.ObjectTypeName}, nil)
	e.graph.Insert(candidate)
	e.graph.Connect(candidate, Primitive{Name: config.ObjectTypeName}, nil)

	implements := func(p, c Type) ImplementsResult {
		if Equal(p, protocol) && Equal(c, candidate) {
			return ImplementsResult{Implements: true}
		}
		return DoesNotImplement
	}
	ord := New(e, nil, implements)

	ok, err := ord.LessOrEqual(candidate, protocol)
	if err != nil {
		t.Fatalf("LessOrEqual error: %v", err)
	}
	if !ok {
		t.Errorf("candidate should satisfy protocol through structural witnessing")
	}

	other := Primitive{Name: "pkg.Unwitnessed"}
	e.graph.Insert(other)
	e.graph.Connect(other, Primitive{Name: config.ObjectTypeName}, nil)
	if ok, _ := ord.LessOrEqual(other, protocol); ok {
		t.Errorf("an unwitnessed candidate should not satisfy the protocol")
	}
}

// TestMROInconsistentHierarchyReportsError mirrors spec.md §8's
// "no consistent linearization" scenario: a base ordering that C3
// cannot reconcile must return an InconsistentMROError, not panic.
func TestMROInconsistentHierarchyReportsError(t *testing.T) {
	ord := newTestOrder()
	g := ord.Engine.graph

	x := Primitive{Name: "pkg.X"}
	y := Primitive{Name: "pkg.Y"}
	// Z inherits (X, Y) and W inherits (Y, X): incompatible orderings.
	z := Primitive{Name: "pkg.Z"}
	w := Primitive{Name: "pkg.W"}
	top := Primitive{Name: "pkg.Top2"}

	g.Insert(x)
	g.Insert(y)
	g.Insert(z)
	g.Insert(w)
	g.Insert(top)
	g.Connect(x, top, nil)
	g.Connect(y, top, nil)
	g.Connect(z, x, nil)
	g.Connect(z, y, nil)
	g.Connect(w, y, nil)
	g.Connect(w, x, nil)

	conflict := Primitive{Name: "pkg.Conflict"}
	g.Insert(conflict)
	g.Connect(conflict, z, nil)
	g.Connect(conflict, w, nil)

	if _, err := Linearize(ord, conflict); err == nil {
		t.Errorf("expected an InconsistentMROError for conflicting base orders")
	}
}
