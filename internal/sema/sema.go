// Package sema implements the semantic actions (component C7): the
// routines the parser calls at well-defined reductions to lower
// declarators into canonical types, insert declarations into scope,
// compute expression value categories, and perform decay and the usual
// arithmetic conversions.
package sema

import (
	"github.com/anishon/cfront/internal/ast"
	"github.com/anishon/cfront/internal/ctx"
	"github.com/anishon/cfront/internal/diag"
	"github.com/anishon/cfront/internal/scope"
	"github.com/anishon/cfront/internal/symbol"
	"github.com/anishon/cfront/internal/types"
)

// A Sema bundles everything C7 needs: the compiler context it interns
// into, the scope manager it resolves names against, the symbol interner
// shared with the token stream, and the diagnostic channel it reports
// to. It is owned by the parser for the lifetime of one translation
// unit, the same ownership spec.md §5 gives the scope manager itself —
// and, per spec.md §9's "global interning is avoided" note, nothing here
// is a package-level global: a second translation unit gets its own
// Sema, Context, Manager, and Interner.
type Sema struct {
	Ctx      *ctx.Context
	Scope    *scope.Manager
	Interner *symbol.Interner
	Diags    *diag.Channel
}

// New returns a Sema wired to the given context, scope manager, symbol
// interner, and diagnostic channel.
func New(c *ctx.Context, s *scope.Manager, interner *symbol.Interner, d *diag.Channel) *Sema {
	return &Sema{Ctx: c, Scope: s, Interner: interner, Diags: d}
}

// ResolveKey implements types.Resolver.
func (s *Sema) ResolveKey(k types.TypeKey) types.Type {
	return s.Ctx.Type(k)
}

// ResolveTag implements types.Resolver by walking the live scope chain's
// tag namespace — this is why the resolver lives here rather than on
// *ctx.Context alone: which struct/union/enum a bare tag name resolves to
// depends on which scopes are currently pushed, something only Sema (via
// its Scope) knows.
func (s *Sema) ResolveTag(name string) (types.Type, bool) {
	sym := s.Interner.Intern(name)
	declKey, ok := s.Scope.LookupChainTag(sym)
	if !ok {
		return types.Type{}, false
	}
	d := s.Ctx.Decl(declKey)
	return s.Ctx.Type(d.Ty), true
}

// IsTypeName implements tokstream.Classifier: the lexer-hack query C4
// runs on every Ident token it is about to yield (spec.md §4.3).
func (s *Sema) IsTypeName(sym symbol.Symbol) bool {
	declKey, ok := s.Scope.LookupChainIdent(sym)
	if !ok {
		return false
	}
	return s.Ctx.Decl(declKey).Kind == ast.DeclTypedef
}
