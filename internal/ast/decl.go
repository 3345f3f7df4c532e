package ast

import (
	"github.com/anishon/cfront/internal/ident"
	"github.com/anishon/cfront/internal/span"
	"github.com/anishon/cfront/internal/types"
)

// A StorageClass names a C storage-class specifier, or its absence.
type StorageClass int

const (
	StorageNone StorageClass = iota
	StorageAuto
	StorageRegister
	StorageStatic
	StorageExtern
	StorageTypedef
)

func (s StorageClass) String() string {
	switch s {
	case StorageNone:
		return "(none)"
	case StorageAuto:
		return "auto"
	case StorageRegister:
		return "register"
	case StorageStatic:
		return "static"
	case StorageExtern:
		return "extern"
	case StorageTypedef:
		return "typedef"
	default:
		return "storage(?)"
	}
}

// A DeclKind classifies a Decl.
type DeclKind int

const (
	DeclVar DeclKind = iota
	DeclTypedef
	DeclParam
	DeclField
	DeclEnumerator
	DeclEnumTag
	DeclStructTag
	DeclUnionTag
	DeclFunc
)

func (k DeclKind) String() string {
	switch k {
	case DeclVar:
		return "var"
	case DeclTypedef:
		return "typedef"
	case DeclParam:
		return "param"
	case DeclField:
		return "field"
	case DeclEnumerator:
		return "enumerator"
	case DeclEnumTag:
		return "enum-tag"
	case DeclStructTag:
		return "struct-tag"
	case DeclUnionTag:
		return "union-tag"
	case DeclFunc:
		return "func"
	default:
		return "decl(?)"
	}
}

// A Decl is one finished declaration, as inserted into a scope by Sema.
// EnumValue is valid only when Kind == DeclEnumerator.
type Decl struct {
	Storage   StorageClass
	Kind      DeclKind
	Name      *ident.Ident
	Ty        types.TypeKey
	EnumValue int64
	Span      span.Span
}
