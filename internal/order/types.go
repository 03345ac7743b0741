// Package order implements the type-order engine: a directed graph of
// nominal types ordered by the subclass relation, plus the structural
// operations (subtyping, join/meet, MRO, constraint solving) a static
// type checker needs on top of it.
package order

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the closed algebra of type terms the engine reasons about.
// Every case is an immutable value compared structurally; canonicalKey
// gives each one a deterministic string identity used by the graph
// store and by set-like operations (Union dedup, etc).
type Type interface {
	String() string
	canonicalKey() string
}

// Variance annotates how substitution through a type variable
// interacts with the subtype relation.
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "+"
	case Contravariant:
		return "-"
	default:
		return "="
	}
}

// ConstraintKind tags the three shapes a Variable's bound can take.
type ConstraintKind int

const (
	Unconstrained ConstraintKind = iota
	Bound
	Explicit
)

// VarConstraints is the constraint payload of a Variable.
type VarConstraints struct {
	Kind    ConstraintKind
	BoundOn Type   // valid when Kind == Bound
	Options []Type // valid when Kind == Explicit
}

func (c VarConstraints) String() string {
	switch c.Kind {
	case Bound:
		return ": " + c.BoundOn.String()
	case Explicit:
		parts := make([]string, len(c.Options))
		for i, o := range c.Options {
			parts[i] = o.String()
		}
		return ": (" + strings.Join(parts, ", ") + ")"
	default:
		return ""
	}
}

// --- scalar sentinels -------------------------------------------------

// Bottom is the universal subtype (Never/NoReturn's lattice position).
type Bottom struct{}

func (Bottom) String() string        { return "Bottom" }
func (Bottom) canonicalKey() string  { return "Bottom" }

// Top is the universal supertype.
type Top struct{}

func (Top) String() string       { return "Top" }
func (Top) canonicalKey() string { return "Top" }

// AnyType is the gradual-typing escape hatch: bidirectionally
// compatible with everything except itself-on-the-right-vs-not.
type AnyType struct{}

func (AnyType) String() string       { return "Any" }
func (AnyType) canonicalKey() string { return "Any" }

// Undeclared marks a position the host never annotated.
type Undeclared struct{}

func (Undeclared) String() string       { return "Undeclared" }
func (Undeclared) canonicalKey() string { return "Undeclared" }

// --- nominal types ------------------------------------------------------

// Primitive is a nominal class identified by its canonical dotted name.
type Primitive struct {
	Name string
}

func (p Primitive) String() string       { return p.Name }
func (p Primitive) canonicalKey() string { return "P:" + p.Name }

// Parametric is a Primitive applied to a fixed-length parameter list.
type Parametric struct {
	Name       string
	Parameters []Type
}

func (p Parametric) String() string {
	parts := make([]string, len(p.Parameters))
	for i, a := range p.Parameters {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", p.Name, strings.Join(parts, ", "))
}

func (p Parametric) canonicalKey() string {
	parts := make([]string, len(p.Parameters))
	for i, a := range p.Parameters {
		parts[i] = a.canonicalKey()
	}
	return "G:" + p.Name + "[" + strings.Join(parts, ",") + "]"
}

// Variable is a TypeVar-like position: a name, an optional bound or
// explicit constraint set, and a declared variance.
type Variable struct {
	Name        string
	Constraints VarConstraints
	Variance    Variance
}

func (v Variable) String() string { return v.Name + v.Constraints.String() }
func (v Variable) canonicalKey() string {
	return fmt.Sprintf("V:%s:%d:%d", v.Name, v.Constraints.Kind, v.Variance)
}

// Optional wraps a type that may additionally be None.
type Optional struct {
	Inner Type
}

func (o Optional) String() string       { return "Optional[" + o.Inner.String() + "]" }
func (o Optional) canonicalKey() string { return "O:" + o.Inner.canonicalKey() }

// Union is a set of alternative types. After NewUnion it is flattened,
// deduplicated, and sorted so that semantically equal unions compare
// structurally equal regardless of construction order.
type Union struct {
	Types []Type
}

func (u Union) String() string {
	parts := make([]string, len(u.Types))
	for i, t := range u.Types {
		parts[i] = t.String()
	}
	return strings.Join(parts, " | ")
}

func (u Union) canonicalKey() string {
	parts := make([]string, len(u.Types))
	for i, t := range u.Types {
		parts[i] = t.canonicalKey()
	}
	return "U:[" + strings.Join(parts, ",") + "]"
}

// NewUnion flattens nested unions, deduplicates by canonicalKey, sorts
// for determinism, and collapses a singleton to its one member. Mirrors
// the teacher's NormalizeUnion recipe exactly, against this algebra.
func NewUnion(types []Type) Type {
	flat := make([]Type, 0, len(types))
	for _, t := range types {
		if u, ok := t.(Union); ok {
			flat = append(flat, u.Types...)
		} else {
			flat = append(flat, t)
		}
	}

	seen := make(map[string]bool, len(flat))
	unique := make([]Type, 0, len(flat))
	for _, t := range flat {
		k := t.canonicalKey()
		if !seen[k] {
			seen[k] = true
			unique = append(unique, t)
		}
	}

	if len(unique) == 0 {
		return Bottom{}
	}
	if len(unique) == 1 {
		return unique[0]
	}

	sort.Slice(unique, func(i, j int) bool {
		return unique[i].canonicalKey() < unique[j].canonicalKey()
	})
	return Union{Types: unique}
}

// Tuple is Bounded (fixed-length element list) or Unbounded
// (homogeneous element type, arbitrary length).
type Tuple struct {
	Bounded   []Type // nil when Unbounded
	Unbounded Type   // nil when Bounded
}

func (t Tuple) IsUnbounded() bool { return t.Unbounded != nil }

func (t Tuple) String() string {
	if t.IsUnbounded() {
		return "Tuple[" + t.Unbounded.String() + ", ...]"
	}
	parts := make([]string, len(t.Bounded))
	for i, e := range t.Bounded {
		parts[i] = e.String()
	}
	return "Tuple[" + strings.Join(parts, ", ") + "]"
}

func (t Tuple) canonicalKey() string {
	if t.IsUnbounded() {
		return "T*:" + t.Unbounded.canonicalKey()
	}
	parts := make([]string, len(t.Bounded))
	for i, e := range t.Bounded {
		parts[i] = e.canonicalKey()
	}
	return "T:[" + strings.Join(parts, ",") + "]"
}

// ParameterKind tags the three callable-parameter shapes.
type ParameterKind int

const (
	ParamNamed ParameterKind = iota
	ParamVariable                // *args
	ParamKeywords                // **kwargs
)

// Parameter is one formal parameter of a callable overload.
type Parameter struct {
	Kind       ParameterKind
	Name       string
	Annotation Type
	HasDefault bool // meaningful only when Kind == ParamNamed
}

func (p Parameter) String() string {
	switch p.Kind {
	case ParamVariable:
		return "*" + p.Name + ": " + p.Annotation.String()
	case ParamKeywords:
		return "**" + p.Name + ": " + p.Annotation.String()
	default:
		s := p.Name + ": " + p.Annotation.String()
		if p.HasDefault {
			s += " = ..."
		}
		return s
	}
}

// ParameterList is Defined (a concrete, ordered parameter list) or
// Undefined (the signature's parameters are unknown/unchecked).
type ParameterList struct {
	Defined    bool
	Parameters []Parameter
}

// Overload is one signature a Callable may be called through.
type Overload struct {
	Annotation Type // return type
	Parameters ParameterList
}

func (o Overload) String() string {
	if !o.Parameters.Defined {
		return "(...) -> " + o.Annotation.String()
	}
	parts := make([]string, len(o.Parameters.Parameters))
	for i, p := range o.Parameters.Parameters {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + o.Annotation.String()
}

// CallableKind distinguishes a named callable (nominally compared by
// qualified name) from an anonymous one (structurally compared).
type CallableKind int

const (
	Anonymous CallableKind = iota
	Named
)

// Callable is a (possibly overloaded) function type.
type Callable struct {
	Kind           CallableKind
	QualifiedName  string // valid when Kind == Named
	Implementation Overload
	HasImplementation bool
	Overloads      []Overload
}

func (c Callable) String() string {
	if c.Kind == Named {
		return c.QualifiedName
	}
	return c.Implementation.String()
}

func (c Callable) canonicalKey() string {
	if c.Kind == Named {
		return "C:" + c.QualifiedName
	}
	parts := make([]string, len(c.Overloads))
	for i, o := range c.Overloads {
		parts[i] = o.String()
	}
	impl := ""
	if c.HasImplementation {
		impl = c.Implementation.String()
	}
	return "C:" + impl + "|" + strings.Join(parts, ";")
}

// TypedDictionaryField is one declared field of a TypedDictionary.
type TypedDictionaryField struct {
	Name       string
	Annotation Type
}

// TypedDictionary is a structurally-typed dict literal shape.
type TypedDictionary struct {
	Fields []TypedDictionaryField
	Total  bool
}

func (d TypedDictionary) String() string {
	parts := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		parts[i] = f.Name + ": " + f.Annotation.String()
	}
	prefix := "TypedDictionary"
	if !d.Total {
		prefix = "NonTotalTypedDictionary"
	}
	return prefix + "{" + strings.Join(parts, ", ") + "}"
}

func (d TypedDictionary) canonicalKey() string {
	fields := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = f.Name + ":" + f.Annotation.canonicalKey()
	}
	return fmt.Sprintf("D:%v:[%s]", d.Total, strings.Join(fields, ","))
}

// sortedFields returns a copy of d.Fields sorted by name, for the
// order-insensitive comparisons rule 17 of the subtype relation needs.
func (d TypedDictionary) sortedFields() []TypedDictionaryField {
	out := append([]TypedDictionaryField(nil), d.Fields...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LiteralKind tags the three literal value kinds.
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralString
	LiteralBool
)

// Literal is a literal value type (e.g. the type of `5` or `"x"`).
type Literal struct {
	Kind  LiteralKind
	Int   int64
	Str   string
	Bool  bool
	// Carrier is the primitive WeakenLiterals widens this literal to.
	Carrier Primitive
}

func (l Literal) String() string {
	switch l.Kind {
	case LiteralString:
		return fmt.Sprintf("Literal[%q]", l.Str)
	case LiteralBool:
		return fmt.Sprintf("Literal[%v]", l.Bool)
	default:
		return fmt.Sprintf("Literal[%d]", l.Int)
	}
}

func (l Literal) canonicalKey() string {
	switch l.Kind {
	case LiteralString:
		return "L:s:" + l.Str
	case LiteralBool:
		return fmt.Sprintf("L:b:%v", l.Bool)
	default:
		return fmt.Sprintf("L:i:%d", l.Int)
	}
}

// WeakenLiterals widens a Literal to its carrier Primitive; any other
// type is returned unchanged.
func WeakenLiterals(t Type) Type {
	if l, ok := t.(Literal); ok {
		return l.Carrier
	}
	return t
}

// Meta is "the type object of T" (i.e. Python's type[T]/Type[T]).
type Meta struct {
	Inner Type
}

func (m Meta) String() string       { return "type[" + m.Inner.String() + "]" }
func (m Meta) canonicalKey() string { return "M:" + m.Inner.canonicalKey() }

// SingleParameter returns the wrapped type of a Meta, for callers that
// have already established IsMeta(t).
func (m Meta) SingleParameter() Type { return m.Inner }

// IsMeta reports whether t is a Meta(...) term.
func IsMeta(t Type) bool {
	_, ok := t.(Meta)
	return ok
}

// --- structural helpers shared by every component ----------------------

// Split decomposes a non-scalar type into its head primitive name and
// concrete parameter list, the operation every component uses before
// walking the graph. Scalars and structural-only shapes (Union,
// Optional, Tuple, Callable, TypedDictionary, Variable, Literal, Meta)
// have no primitive head and return ok=false.
func Split(t Type) (name string, parameters []Type, ok bool) {
	switch v := t.(type) {
	case Primitive:
		return v.Name, nil, true
	case Parametric:
		return v.Name, v.Parameters, true
	default:
		return "", nil, false
	}
}

// FreeVariables collects the distinct Variable terms occurring
// anywhere within t, in first-occurrence order.
func FreeVariables(t Type) []Variable {
	var out []Variable
	seen := map[string]bool{}
	var walk func(Type)
	walk = func(t Type) {
		switch v := t.(type) {
		case Variable:
			if !seen[v.Name] {
				seen[v.Name] = true
				out = append(out, v)
			}
		case Parametric:
			for _, p := range v.Parameters {
				walk(p)
			}
		case Optional:
			walk(v.Inner)
		case Union:
			for _, m := range v.Types {
				walk(m)
			}
		case Tuple:
			if v.IsUnbounded() {
				walk(v.Unbounded)
			} else {
				for _, e := range v.Bounded {
					walk(e)
				}
			}
		case Callable:
			if v.HasImplementation {
				walkOverload(v.Implementation, walk)
			}
			for _, o := range v.Overloads {
				walkOverload(o, walk)
			}
		case TypedDictionary:
			for _, f := range v.Fields {
				walk(f.Annotation)
			}
		case Meta:
			walk(v.Inner)
		}
	}
	walk(t)
	return out
}

func walkOverload(o Overload, walk func(Type)) {
	walk(o.Annotation)
	if o.Parameters.Defined {
		for _, p := range o.Parameters.Parameters {
			walk(p.Annotation)
		}
	}
}

// IsInstantiated reports whether t contains no free Variable.
func IsInstantiated(t Type) bool {
	return len(FreeVariables(t)) == 0
}

// ContainsUndeclared reports whether t mentions Undeclared anywhere,
// used by rule 2 of the subtype relation.
func ContainsUndeclared(t Type) bool {
	switch v := t.(type) {
	case Undeclared:
		return true
	case Parametric:
		for _, p := range v.Parameters {
			if ContainsUndeclared(p) {
				return true
			}
		}
	case Optional:
		return ContainsUndeclared(v.Inner)
	case Union:
		for _, m := range v.Types {
			if ContainsUndeclared(m) {
				return true
			}
		}
	case Tuple:
		if v.IsUnbounded() {
			return ContainsUndeclared(v.Unbounded)
		}
		for _, e := range v.Bounded {
			if ContainsUndeclared(e) {
				return true
			}
		}
	case Meta:
		return ContainsUndeclared(v.Inner)
	}
	return false
}

// Equal reports whether two types are structurally identical.
func Equal(a, b Type) bool {
	return a.canonicalKey() == b.canonicalKey()
}
