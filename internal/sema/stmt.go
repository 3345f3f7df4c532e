package sema

import (
	"github.com/anishon/cfront/internal/ast"
	"github.com/anishon/cfront/internal/ident"
)

// DeclareLabel binds name to stmt in the label namespace of the
// enclosing function, reporting RedefinedLabel on collision (spec.md
// §7). It must be called from inside some Function scope; the parser
// only ever parses labeled statements inside a function body, so a
// missing Function scope here would itself be a parser bug, not a user
// error to recover from gracefully.
func (s *Sema) DeclareLabel(name ident.Ident, stmt ast.StmtKey) {
	if err := s.Scope.InsertLabel(name.Sym, stmt); err != nil {
		s.Diags.Errorf(name.Span, errRedefinedLabel, "redefinition of label %q", s.Interner.Name(name.Sym))
	}
}

// CheckGoto reports UndefinedLabel if name has no binding anywhere in the
// enclosing function by the time the goto referencing it is built.
// Forward gotos are legal in C, so this can't be checked until the whole
// function body has been parsed — the parser calls it once per pending
// goto right after closing the function's compound statement.
func (s *Sema) CheckGoto(name ident.Ident) {
	if _, ok := s.Scope.LookupLabel(name.Sym); !ok {
		s.Diags.Errorf(name.Span, errUndefinedLabel, "use of undeclared label %q", s.Interner.Name(name.Sym))
	}
}
