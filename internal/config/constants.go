// Package config holds the small set of compile-time names and
// runtime toggles shared across the type-order engine.
package config

// IsTestMode makes engine telemetry identifiers deterministic (a
// counter instead of a random UUID). It is read each time an engine
// is created; DOT output is deterministic whether or not it is set.
var IsTestMode = false

// Canonical dotted names for the universal scalars and the numeric
// tower seeded by Builder.Default.
const (
	ObjectTypeName  = "builtins.object"
	IntTypeName     = "builtins.int"
	FloatTypeName   = "builtins.float"
	ComplexTypeName = "builtins.complex"
	BoolTypeName    = "builtins.bool"
	StrTypeName     = "builtins.str"
	BytesTypeName   = "builtins.bytes"
	NoneTypeName    = "builtins.NoneType"
	DictTypeName    = "builtins.dict"

	NumbersComplexTypeName = "numbers.Complex"
	NumbersNumberTypeName  = "numbers.Number"
)

// Canonical names for typing-module special forms and other
// distinguished vertices Builder.Default seeds.
const (
	GenericVertexName    = "Generic"
	TupleSpecialForm     = "typing.Tuple"
	CallableSpecialForm  = "typing.Callable"
	ProtocolSpecialForm  = "typing.Protocol"
	FrozenSetSpecialForm = "typing.FrozenSet"
	OptionalSpecialForm  = "typing.Optional"
	TypeVarSpecialForm   = "typing.TypeVar"
	UndeclaredSpecialForm = "typing.Undeclared"
	UnionSpecialForm     = "typing.Union"
	NoReturnSpecialForm  = "typing.NoReturn"
	ClassVarSpecialForm  = "typing.ClassVar"
	NamedTupleTypeName   = "typing.NamedTuple"
	TypingDictTypeName   = "typing.Dict"
	TypingMappingTypeName = "typing.Mapping"

	NonTotalTypedDictionaryTypeName = "typing.NonTotalTypedDictionary"
	TypedDictionaryTypeName         = "typing.TypedDictionary"

	TypeMetaFormName = "type"

	MockBaseTypeName         = "unittest.mock.Base"
	MockNonCallableTypeName  = "unittest.mock.NonCallableMock"
)

// GenericSelfVarName is the name of the single covariant TypeVar that
// Engine.Variables hard-codes for `type` and `typing.Callable`.
const GenericSelfVarName = "_T_meta"
