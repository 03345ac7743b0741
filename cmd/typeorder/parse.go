package main

import (
	"fmt"
	"strings"

	"github.com/arborlang/typeorder/internal/order"
)

// parseType reads one of the small set of type expressions the demo
// CLI accepts: the three sentinels (with "Never" as another spelling
// of Bottom), Optional[X], Union[X, Y, ...], Tuple[X, Y, ...] (a
// bounded tuple), and otherwise a bare dotted name taken as a
// Primitive. It is a
// convenience for exercising the engine from a shell, not a stand-in
// for a real annotation parser.
func parseType(s string) (order.Type, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "Bottom", "Never":
		return order.Bottom{}, nil
	case "Top":
		return order.Top{}, nil
	case "Any":
		return order.AnyType{}, nil
	}

	if inner, ok := unwrap(s, "Optional["); ok {
		elem, err := parseType(inner)
		if err != nil {
			return nil, err
		}
		return order.Optional{Inner: elem}, nil
	}

	if inner, ok := unwrap(s, "Union["); ok {
		parts, err := parseTypeList(inner)
		if err != nil {
			return nil, err
		}
		return order.NewUnion(parts), nil
	}

	if inner, ok := unwrap(s, "Tuple["); ok {
		parts, err := parseTypeList(inner)
		if err != nil {
			return nil, err
		}
		return order.Tuple{Bounded: parts}, nil
	}

	if s == "" {
		return nil, fmt.Errorf("empty type expression")
	}
	return order.Primitive{Name: s}, nil
}

func unwrap(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, "]") {
		return "", false
	}
	return s[len(prefix) : len(s)-1], true
}

// parseTypeList splits a top-level comma list, respecting nested
// brackets so "Union[Tuple[int, str], float]" splits into two parts
// rather than three.
func parseTypeList(s string) ([]order.Type, error) {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])

	out := make([]order.Type, 0, len(parts))
	for _, p := range parts {
		t, err := parseType(p)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
