package order

import "testing"

func TestNewUnionFlattensDedupesAndSorts(t *testing.T) {
	tests := []struct {
		name  string
		types []Type
		want  string
	}{
		{
			name:  "singleton collapses",
			types: []Type{Primitive{Name: "builtins.int"}},
			want:  "builtins.int",
		},
		{
			name:  "duplicates removed",
			types: []Type{Primitive{Name: "builtins.int"}, Primitive{Name: "builtins.int"}},
			want:  "builtins.int",
		},
		{
			name: "nested union flattened",
			types: []Type{
				Union{Types: []Type{Primitive{Name: "builtins.str"}, Primitive{Name: "builtins.int"}}},
				Primitive{Name: "builtins.bool"},
			},
			want: "builtins.bool | builtins.int | builtins.str",
		},
		{
			name:  "empty union collapses to Bottom",
			types: nil,
			want:  "Bottom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewUnion(tt.types)
			if got.String() != tt.want {
				t.Errorf("NewUnion(...).String() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestFreeVariables(t *testing.T) {
	tVar := Variable{Name: "_T"}
	p := Parametric{Name: "typing.List", Parameters: []Type{tVar}}

	got := FreeVariables(Optional{Inner: p})
	if len(got) != 1 || got[0].Name != "_T" {
		t.Errorf("FreeVariables = %v, want [_T]", got)
	}

	if IsInstantiated(p) {
		t.Errorf("IsInstantiated(%s) = true, want false", p)
	}
	concrete := Parametric{Name: "typing.List", Parameters: []Type{Primitive{Name: "builtins.int"}}}
	if !IsInstantiated(concrete) {
		t.Errorf("IsInstantiated(%s) = false, want true", concrete)
	}
}

func TestContainsUndeclared(t *testing.T) {
	if !ContainsUndeclared(Optional{Inner: Undeclared{}}) {
		t.Errorf("ContainsUndeclared(Optional[Undeclared]) = false, want true")
	}
	if ContainsUndeclared(Primitive{Name: "builtins.int"}) {
		t.Errorf("ContainsUndeclared(int) = true, want false")
	}
}

func TestWeakenLiterals(t *testing.T) {
	lit := Literal{Kind: LiteralInt, Int: 5, Carrier: Primitive{Name: "builtins.int"}}
	if got := WeakenLiterals(lit); !Equal(got, Primitive{Name: "builtins.int"}) {
		t.Errorf("WeakenLiterals(Literal[5]) = %v, want builtins.int", got)
	}
	if got := WeakenLiterals(Primitive{Name: "builtins.str"}); !Equal(got, Primitive{Name: "builtins.str"}) {
		t.Errorf("WeakenLiterals(str) = %v, want unchanged", got)
	}
}

func TestSubstitute(t *testing.T) {
	tVar := Variable{Name: "_T"}
	subst := map[string]Type{"_T": Primitive{Name: "builtins.str"}}

	got := Substitute(Tuple{Bounded: []Type{tVar, Primitive{Name: "builtins.int"}}}, subst)
	want := Tuple{Bounded: []Type{Primitive{Name: "builtins.str"}, Primitive{Name: "builtins.int"}}}
	if !Equal(got, want) {
		t.Errorf("Substitute(...) = %v, want %v", got, want)
	}
}
