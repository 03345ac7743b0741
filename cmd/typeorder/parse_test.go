package main

import (
	"testing"

	"github.com/arborlang/typeorder/internal/order"
)

func TestParseTypeSentinelsAndPrimitives(t *testing.T) {
	cases := map[string]order.Type{
		"Bottom":  order.Bottom{},
		"Top":     order.Top{},
		"Any":     order.AnyType{},
		"pkg.Dog": order.Primitive{Name: "pkg.Dog"},
	}
	for input, want := range cases {
		got, err := parseType(input)
		if err != nil {
			t.Fatalf("parseType(%q) error = %v", input, err)
		}
		if got.String() != want.String() {
			t.Errorf("parseType(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestParseTypeOptionalAndUnion(t *testing.T) {
	got, err := parseType("Optional[pkg.Dog]")
	if err != nil {
		t.Fatalf("parseType error: %v", err)
	}
	opt, ok := got.(order.Optional)
	if !ok {
		t.Fatalf("expected Optional, got %T", got)
	}
	if opt.Inner.String() != "pkg.Dog" {
		t.Errorf("Optional inner = %v, want pkg.Dog", opt.Inner)
	}

	got, err = parseType("Union[pkg.Dog, pkg.Cat]")
	if err != nil {
		t.Fatalf("parseType error: %v", err)
	}
	union, ok := got.(order.Union)
	if !ok {
		t.Fatalf("expected Union, got %T", got)
	}
	if len(union.Types) != 2 {
		t.Errorf("Union has %d members, want 2", len(union.Types))
	}
}

func TestParseTypeListRespectsNesting(t *testing.T) {
	got, err := parseType("Union[Tuple[pkg.Dog, pkg.Cat], pkg.Fish]")
	if err != nil {
		t.Fatalf("parseType error: %v", err)
	}
	union, ok := got.(order.Union)
	if !ok {
		t.Fatalf("expected Union, got %T", got)
	}
	if len(union.Types) != 2 {
		t.Fatalf("Union has %d members, want 2 (nested Tuple must not split on its inner comma)", len(union.Types))
	}
}

func TestParseTypeRejectsEmpty(t *testing.T) {
	if _, err := parseType(""); err == nil {
		t.Errorf("expected an error for an empty type expression")
	}
}
