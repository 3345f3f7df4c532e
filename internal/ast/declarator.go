package ast

import (
	"github.com/anishon/cfront/internal/ident"
	"github.com/anishon/cfront/internal/span"
	"github.com/anishon/cfront/internal/types"
)

// A DeclSpec is the declaration-specifier list to the left of a
// declarator: storage class, qualifiers, and the accumulated
// type-specifier state. Sema resolves it to a base TypeKey once the
// declarator's chunks are known to exist (spec.md §4.6 step 1).
//
// TypeName is populated for SpecTypeName and RecordType for SpecRecord
// and SpecEnum; Sema reads whichever is relevant for the finished Spec
// and ignores the others. EnumTagName is read by Sema only for a
// SpecEnum whose RecordType is InvalidType; package parser never sets it.
type DeclSpec struct {
	Storage     StorageClass
	Qual        types.Qualifier
	Spec        types.TypeSpecState
	Signed      bool
	Unsigned    bool
	TypeName    *ident.Ident  // names the typedef, when Spec == SpecTypeName
	RecordType  types.TypeKey // the struct/union type (SpecRecord) or enum type (SpecEnum) the parser built or looked up
	EnumTagName string        // the tag, when Spec == SpecEnum and RecordType is InvalidType
	Span        span.Span
}

// A ChunkKind classifies a DeclaratorChunk.
type ChunkKind int

const (
	ChunkParen ChunkKind = iota
	ChunkArray
	ChunkPointer
	ChunkFunction
)

func (k ChunkKind) String() string {
	switch k {
	case ChunkParen:
		return "paren"
	case ChunkArray:
		return "array"
	case ChunkPointer:
		return "pointer"
	case ChunkFunction:
		return "function"
	default:
		return "chunk(?)"
	}
}

// An ArraySizeSpec is the untyped, parser-time form of an array chunk's
// extent: either unspecified, a constant folded by the parser, or a
// variable-length expression recorded by ExprKey.
type ArraySizeSpec struct {
	Kind  types.ArraySizeKind
	Fixed uint64
	VLA   ExprKey
}

// A Param is one entry of a function declarator chunk's parameter list:
// itself a (possibly abstract, possibly named) declarator.
type Param struct {
	Name *ident.Ident
	Spec DeclSpec
	Chunks []DeclaratorChunk
	Span span.Span
}

// A DeclaratorChunk is one syntactic wrapper of a C declarator — a
// pointer star, an array suffix, a parenthesized group, or a function
// parameter list — recorded inside-out as the parser descends and
// applied inside-out by Sema to build the canonical Type (spec.md §4.6,
// Glossary "Declarator chunk"). Only the fields relevant to Kind are
// populated; a Paren chunk carries no payload beyond its Span.
type DeclaratorChunk struct {
	Kind      ChunkKind
	Qual      types.Qualifier // valid for ChunkPointer, ChunkArray
	ArraySize ArraySizeSpec   // valid for ChunkArray
	Params    []Param         // valid for ChunkFunction
	Variadic  bool            // valid for ChunkFunction
	Span      span.Span
}

// A Declarator is the untyped, parser-time shape of one declared name:
// its DeclSpec and the chunk sequence wrapping it. Sema lowers this into
// a canonical Type and a finished Decl (spec.md §3's "Declarator
// (parser-time, untyped)").
type Declarator struct {
	Name   *ident.Ident
	Spec   DeclSpec
	Chunks []DeclaratorChunk
	Span   span.Span
}

// An Initializer is the right-hand side of an init-declarator: either a
// single expression or a brace-enclosed list (for aggregates), applied
// recursively.
type Initializer struct {
	Expr ExprKey      // valid iff List == nil
	List []Initializer // valid iff non-nil: a brace-enclosed initializer list
	Span span.Span
}

// An InitDeclarator pairs a Declarator with its optional initializer.
type InitDeclarator struct {
	Declarator Declarator
	Init       *Initializer
	Span       span.Span
}
