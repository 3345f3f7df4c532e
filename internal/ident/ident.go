// Package ident defines the shared identifier value used by both the type
// system and the AST, kept separate from both to avoid an import cycle
// between internal/types and internal/ast.
package ident

import (
	"github.com/anishon/cfront/internal/span"
	"github.com/anishon/cfront/internal/symbol"
)

// An Ident is a named occurrence of a symbol: a tag, a declarator name, an
// enumerator, a struct member name.
type Ident struct {
	Sym  symbol.Symbol
	Span span.Span
}
