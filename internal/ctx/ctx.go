// Package ctx implements the compiler context (component C8): the
// per-translation-unit owner of four append-only interning tables for
// declarations, expressions, types, and statements, each keyed by an
// opaque handle that never invalidates. Per spec.md §9's "global
// interning is avoided" design note, a Context is created once per parse
// and dropped with the translation unit — there is no process-wide
// symbol or type pool, mirroring the single-instance `OpTable` the
// teacher hands each parser (lang/operators.go) rather than a package
// global.
package ctx

import (
	"github.com/anishon/cfront/internal/ast"
	"github.com/anishon/cfront/internal/types"
)

// A Context owns the four interning tables of one translation unit.
type Context struct {
	decls []ast.Decl
	exprs []ast.Expr
	stmts []ast.Stmt
	tys   []types.Type

	// typeIndex deduplicates non-record TypeKinds: two requests to intern
	// structurally identical (Qualifier, TypeKind) pairs return the same
	// TypeKey. Struct and Union are deliberately excluded (see InternType)
	// since spec.md §4.7 gives them identity by declaration site.
	typeIndex map[typeHashKey]types.TypeKey
}

// New returns an empty Context.
func New() *Context {
	return &Context{
		typeIndex: make(map[typeHashKey]types.TypeKey),
	}
}

// NewDecl interns d and returns its key.
func (c *Context) NewDecl(d ast.Decl) ast.DeclKey {
	c.decls = append(c.decls, d)
	return ast.DeclKey(len(c.decls) - 1)
}

// Decl retrieves the declaration named by k. It panics if k is not a key
// this Context handed out — spec.md §3: "Lookup by key is total (panic
// on unknown key is a bug)".
func (c *Context) Decl(k ast.DeclKey) ast.Decl {
	return c.decls[k]
}

// SetDecl overwrites the declaration named by k, used by Sema to finalize
// a forward-declared tag (a Decl inserted with a placeholder type before
// its record body is parsed, then updated once the body is complete).
func (c *Context) SetDecl(k ast.DeclKey, d ast.Decl) {
	c.decls[k] = d
}

// NewExpr interns e and returns its key.
func (c *Context) NewExpr(e ast.Expr) ast.ExprKey {
	c.exprs = append(c.exprs, e)
	return ast.ExprKey(len(c.exprs) - 1)
}

// Expr retrieves the expression named by k.
func (c *Context) Expr(k ast.ExprKey) ast.Expr {
	return c.exprs[k]
}

// NewStmt interns s and returns its key.
func (c *Context) NewStmt(s ast.Stmt) ast.StmtKey {
	c.stmts = append(c.stmts, s)
	return ast.StmtKey(len(c.stmts) - 1)
}

// Stmt retrieves the statement named by k.
func (c *Context) Stmt(k ast.StmtKey) ast.Stmt {
	return c.stmts[k]
}

// SetStmt overwrites the statement named by k, used by Sema to patch a
// Compound's Stmts slice in once its nested statements are all built.
func (c *Context) SetStmt(k ast.StmtKey, s ast.Stmt) {
	c.stmts[k] = s
}

// Type retrieves the type named by k. Satisfies the ResolveKey half of
// types.Resolver directly.
func (c *Context) Type(k types.TypeKey) types.Type {
	return c.tys[k]
}

// ResolveKey implements types.Resolver.
func (c *Context) ResolveKey(k types.TypeKey) types.Type {
	return c.Type(k)
}

// InternType interns t, deduplicating structurally identical non-record
// types so that, e.g., every plain `int*` in a translation unit shares
// one TypeKey (spec.md §4.7). Struct and Union are never deduplicated —
// each call for one of those kinds allocates a fresh TypeKey, giving
// record types identity by declaration site as the spec requires.
func (c *Context) InternType(t types.Type) types.TypeKey {
	switch t.Kind.(type) {
	case types.Struct, types.Union:
		return c.pushType(t)
	}
	h, ok := hashType(t)
	if !ok {
		return c.pushType(t)
	}
	if k, ok := c.typeIndex[h]; ok {
		return k
	}
	k := c.pushType(t)
	c.typeIndex[h] = k
	return k
}

func (c *Context) pushType(t types.Type) types.TypeKey {
	c.tys = append(c.tys, t)
	return types.TypeKey(len(c.tys) - 1)
}
