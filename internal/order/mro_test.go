package order

import (
	"strings"
	"testing"

	"github.com/arborlang/typeorder/internal/config"
)

// seedDiamond builds the classic C3 diamond: D(B, C), B(A), C(A), A(object).
func seedDiamond(ord *Order) (a, b, c, d Primitive) {
	g := ord.Engine.graph
	object := Primitive{Name: config.ObjectTypeName}
	a = Primitive{Name: "pkg.A"}
	b = Primitive{Name: "pkg.B"}
	c = Primitive{Name: "pkg.C"}
	d = Primitive{Name: "pkg.D"}

	g.Insert(a)
	g.Insert(b)
	g.Insert(c)
	g.Insert(d)
	g.Connect(a, object, nil)
	g.Connect(b, a, nil)
	g.Connect(c, a, nil)
	g.Connect(d, b, nil)
	g.Connect(d, c, nil)

	ord.Normalize()
	ord.Deduplicate(g.Keys())
	return
}

func TestLinearizeDiamond(t *testing.T) {
	ord := newTestOrder()
	a, b, c, d := seedDiamond(ord)

	chain, err := Linearize(ord, d)
	if err != nil {
		t.Fatalf("Linearize(D) error: %v", err)
	}

	names := make([]string, len(chain))
	for i, ty := range chain {
		names[i] = ty.String()
	}
	got := strings.Join(names, ",")
	want := strings.Join([]string{d.Name, b.Name, c.Name, a.Name, config.ObjectTypeName, "Top"}, ",")
	if got != want {
		t.Errorf("Linearize(D) = %s, want %s", got, want)
	}
}

func TestSuccessorsStripsHead(t *testing.T) {
	ord := newTestOrder()
	seedAnimalHierarchy(ord)

	chain, err := Successors(ord, Primitive{Name: "pkg.Puppy"})
	if err != nil {
		t.Fatalf("Successors(Puppy) error: %v", err)
	}
	if len(chain) == 0 {
		t.Fatalf("Successors(Puppy) is empty")
	}
	if Equal(chain[0], Primitive{Name: "pkg.Puppy"}) {
		t.Errorf("Successors(Puppy) still contains Puppy at the head")
	}
	if Equal(chain[len(chain)-1], Primitive{Name: "pkg.Puppy"}) == false && chain[len(chain)-1].String() != "Top" {
		t.Errorf("Successors(Puppy) should end at Top, ended at %s", chain[len(chain)-1])
	}
}
