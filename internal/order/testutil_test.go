package order

import "github.com/arborlang/typeorder/internal/config"

// newTestEngine returns a freshly seeded Engine with no host callbacks.
func newTestEngine() *Engine {
	var b Builder
	return b.Default(b.Create(NullReporter{}))
}

// newTestOrder wraps newTestEngine in an Order with nil host callbacks,
// sufficient for every test that never exercises protocol witnessing
// or metaclass construction.
func newTestOrder() *Order {
	return New(newTestEngine(), nil, nil)
}

// seedAnimalHierarchy adds object -> Animal -> {Dog, Cat} -> {Puppy}
// and a one-parameter generic Box[_T] -> object, the small class tree
// every subtype/lattice/mro test builds on.
func seedAnimalHierarchy(ord *Order) {
	g := ord.Engine.graph
	object := Primitive{Name: config.ObjectTypeName}

	animal := Primitive{Name: "pkg.Animal"}
	dog := Primitive{Name: "pkg.Dog"}
	cat := Primitive{Name: "pkg.Cat"}
	puppy := Primitive{Name: "pkg.Puppy"}

	g.Insert(animal)
	g.Insert(dog)
	g.Insert(cat)
	g.Insert(puppy)
	g.Connect(animal, object, nil)
	g.Connect(dog, animal, nil)
	g.Connect(cat, animal, nil)
	g.Connect(puppy, dog, nil)

	boxVar := Variable{Name: "_T", Variance: Covariant}
	box := Primitive{Name: "pkg.Box"}
	g.Insert(box)
	g.Connect(box, object, nil)
	declareGenerics(g, "pkg.Box", boxVar)

	ord.Normalize()
	ord.Deduplicate(g.Keys())
	ord.RemoveExtraEdges()
	ord.ConnectAnnotationsToTop()
	ord.Normalize()
}
