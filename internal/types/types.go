// Package types implements the canonical C type model and its layout
// rules (component C10), in the idiom of go/types: one Type interface
// with a marker method, one concrete struct per variant, and cross-type
// references made through the opaque TypeKey handle C8 hands out rather
// than through direct pointers — the same arena-of-handles shape the
// declarator/expression/statement tables of package ast use.
package types

import (
	"github.com/anishon/cfront/internal/ident"
)

// A TypeKey names a Type in a Context's type table (package ctx).
// InvalidType (-1) never names a real type.
type TypeKey int32

// InvalidType is returned where no type could be computed, e.g. after a
// semantic error that was recovered from by substituting Unknown.
const InvalidType TypeKey = -1

// A Qualifier carries the three C type qualifiers. It is a value, not a
// pointer, so two Types with equal Qualifier and TypeKind compare equal
// by value — the precondition C8 relies on to intern non-record types
// structurally.
type Qualifier struct {
	Const    bool
	Volatile bool
	Restrict bool
}

// A Type pairs a Qualifier with a TypeKind.
type Type struct {
	Qual Qualifier
	Kind TypeKind
}

// A TypeKind is one of the marked variant structs below. The marker
// method keeps arbitrary structs from satisfying the interface by
// accident, matching the ast.Kind / lex.Kind "closed sum type" pattern
// used throughout this repository.
type TypeKind interface {
	typeKind()
}

// Void is C's `void`.
type Void struct{}

func (Void) typeKind() {}

// An IntSize names the rank of an integer type.
type IntSize int

const (
	Char IntSize = iota
	Short
	Int
	Long
	LongLong
)

func (s IntSize) String() string {
	switch s {
	case Char:
		return "char"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	case LongLong:
		return "long long"
	default:
		return "int-size(?)"
	}
}

// Integer is any of C's integer types, `_Bool` included (_Bool is
// represented as an unsigned Char-ranked Integer — it has no signed form
// in standard C, so no separate variant is warranted).
type Integer struct {
	Signed bool
	Size   IntSize
}

func (Integer) typeKind() {}

// A FloatSize names the rank of a floating type.
type FloatSize int

const (
	Float FloatSize = iota
	Double
	LongDouble
)

func (s FloatSize) String() string {
	switch s {
	case Float:
		return "float"
	case Double:
		return "double"
	case LongDouble:
		return "long double"
	default:
		return "float-size(?)"
	}
}

// Floating is any of C's floating-point types.
type Floating struct {
	Size FloatSize
}

func (Floating) typeKind() {}

// Pointer is `elem *`.
type Pointer struct {
	Elem TypeKey
}

func (Pointer) typeKind() {}

// An ArraySizeKind classifies how an Array's extent is known.
type ArraySizeKind int

const (
	// SizeUnknown is an incomplete array type, e.g. `extern int a[];`.
	SizeUnknown ArraySizeKind = iota
	// SizeFixed is a constant extent known at parse time, e.g. `int a[10];`.
	SizeFixed
	// SizeVLA is a variable-length array whose extent is an expression,
	// e.g. `int a[n];`. ExprKey names that expression in the AST's
	// expression table.
	SizeVLA
)

// Array is `elem[size]`.
type Array struct {
	Elem     TypeKey
	SizeKind ArraySizeKind
	Fixed    uint64 // valid iff SizeKind == SizeFixed
	VLAExpr  int32  // ast.ExprKey, valid iff SizeKind == SizeVLA; int32 to avoid importing ast
}

func (Array) typeKind() {}

// Function is a C function type: its return type, parameter types, and
// whether it ends in `...`.
type Function struct {
	Ret      TypeKey
	Params   []TypeKey
	Variadic bool
}

func (Function) typeKind() {}

// A RecordField is one member of a Struct or Union.
type RecordField struct {
	Name     *ident.Ident
	Ty       TypeKey
	BitField *uint64 // nil unless the member is a bit-field
	Offset   uint64  // byte offset within the record; 0 for unions
}

// Struct is a complete `struct` type: its name (if tagged) and its
// finalized field list with computed offsets and overall size. Unlike
// Pointer/Array/Function, Struct is never deduplicated by C8 — two
// structurally identical struct definitions at different declaration
// sites remain distinct types, matching the spec's "record types have
// identity by declaration site".
type Struct struct {
	Name   *ident.Ident
	Fields []RecordField
	Size   uint64
}

func (Struct) typeKind() {}

// Union is a complete `union` type; see Struct for field semantics
// (offsets are always 0; Size is the max field size).
type Union struct {
	Name   *ident.Ident
	Fields []RecordField
}

func (Union) typeKind() {}

// An EnumField is one enumerator of an Enum.
type EnumField struct {
	Name  ident.Ident
	Value int64
}

// Enum is a complete `enum` type.
type Enum struct {
	Name        *ident.Ident
	Enumerators []EnumField
}

func (Enum) typeKind() {}

// StructRef, UnionRef, and EnumRef resolve a tag to its complete type
// through the tag scope at use sites, rather than holding a direct
// reference to it. This is how self-referential records (`struct node {
// struct node *next; }`) are represented without a cycle in the type
// arena itself (spec.md §9's "cyclic types" design note): the Pointer
// wrapping a StructRef is a perfectly ordinary, acyclic value; only a tag
// lookup, performed when the type is actually needed, walks back to the
// Struct.
type StructRef struct{ Name string }

func (StructRef) typeKind() {}

type UnionRef struct{ Name string }

func (UnionRef) typeKind() {}

type EnumRef struct{ Name string }

func (EnumRef) typeKind() {}

// Unknown substitutes for a type that could not be computed because of a
// semantic error already reported to C9 (spec.md §7: "substitute the
// Unknown type and continue").
type Unknown struct{}

func (Unknown) typeKind() {}
