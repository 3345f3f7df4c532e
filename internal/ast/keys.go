// Package ast holds the parser's output shapes: declarations,
// declarators (the untyped, parser-time form Sema lowers), expressions,
// statements, and the translation unit that strings them together. Every
// cross-reference between these is an opaque key into one of C8's four
// interning tables (package ctx) rather than a direct pointer — the same
// handle-arena shape package types uses for TypeKey, so a Struct field
// can name another Struct without the two ever forming a pointer cycle.
package ast

// A DeclKey names a Decl in a Context's declaration table.
type DeclKey int32

// InvalidDecl is returned where no declaration exists.
const InvalidDecl DeclKey = -1

// An ExprKey names an Expr in a Context's expression table.
type ExprKey int32

// InvalidExpr is returned where no expression could be built.
const InvalidExpr ExprKey = -1

// A StmtKey names a Stmt in a Context's statement table.
type StmtKey int32

// InvalidStmt is returned where no statement could be built.
const InvalidStmt StmtKey = -1
