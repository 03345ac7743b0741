package witness

import (
	"testing"

	"github.com/arborlang/typeorder/internal/order"
)

func TestConstructor(t *testing.T) {
	r := NewRegistry()
	foo := order.Primitive{Name: "pkg.Foo"}
	r.RegisterConstructor("pkg.FooMeta", foo)

	got, ok := r.Constructor(order.Primitive{Name: "pkg.FooMeta"})
	if !ok || !order.Equal(got, foo) {
		t.Errorf("Constructor(pkg.FooMeta) = %v, %v; want %v, true", got, ok, foo)
	}

	if _, ok := r.Constructor(order.Primitive{Name: "pkg.Unregistered"}); ok {
		t.Errorf("Constructor(pkg.Unregistered) should not resolve")
	}
}

func TestImplements(t *testing.T) {
	r := NewRegistry()
	r.RegisterProtocolWitness("pkg.Sized", "pkg.Box", nil)
	r.RegisterProtocolWitness("pkg.Container", "pkg.Box", []order.Type{order.Primitive{Name: "builtins.int"}})

	tests := []struct {
		name      string
		protocol  order.Type
		candidate order.Type
		want      order.ImplementsResult
	}{
		{
			name:      "no-parameter witness",
			protocol:  order.Primitive{Name: "pkg.Sized"},
			candidate: order.Primitive{Name: "pkg.Box"},
			want:      order.ImplementsResult{Implements: true},
		},
		{
			name:      "parametric witness",
			protocol:  order.Primitive{Name: "pkg.Container"},
			candidate: order.Primitive{Name: "pkg.Box"},
			want:      order.ImplementsResult{Implements: true, Parameters: []order.Type{order.Primitive{Name: "builtins.int"}}},
		},
		{
			name:      "unwitnessed pair",
			protocol:  order.Primitive{Name: "pkg.Sized"},
			candidate: order.Primitive{Name: "pkg.Other"},
			want:      order.DoesNotImplement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Implements(tt.protocol, tt.candidate)
			if got.Implements != tt.want.Implements || len(got.Parameters) != len(tt.want.Parameters) {
				t.Fatalf("Implements() = %+v, want %+v", got, tt.want)
			}
			for i := range got.Parameters {
				if !order.Equal(got.Parameters[i], tt.want.Parameters[i]) {
					t.Errorf("Parameters[%d] = %v, want %v", i, got.Parameters[i], tt.want.Parameters[i])
				}
			}
		})
	}
}
