package ast

import "github.com/anishon/cfront/internal/span"

// An ExternalDeclKind is one of the marked variant structs below.
type ExternalDeclKind interface {
	externalDeclKind()
}

// FuncDef is a complete function definition: its declaration (giving its
// name, type, and linkage) and its compound-statement body.
type FuncDef struct {
	Decl DeclKey
	Body StmtKey
}

func (FuncDef) externalDeclKind() {}

// DeclGroup is one or more declarations sharing a declaration-specifier
// list at file scope, e.g. `int a, *b, c[3];` or a single `typedef`.
type DeclGroup struct{ Decls []DeclKey }

func (DeclGroup) externalDeclKind() {}

// An ExternalDecl is one top-level construct of a translation unit.
type ExternalDecl struct {
	Kind ExternalDeclKind
	Span span.Span
}

// A TranslationUnit is the parser's final output: the ordered sequence
// of external declarations making up one source file (spec.md §3).
type TranslationUnit struct {
	Decls []ExternalDecl
}
