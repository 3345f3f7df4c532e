package ast

import (
	"github.com/anishon/cfront/internal/ident"
	"github.com/anishon/cfront/internal/span"
)

// A StmtKind is one of the marked variant structs below.
type StmtKind interface {
	stmtKind()
}

// Compound is a brace-enclosed block, `{ ... }`.
type Compound struct{ Stmts []StmtKey }

func (Compound) stmtKind() {}

// ExprStmt is an expression used as a statement, `expr;`.
type ExprStmt struct{ Expr ExprKey }

func (ExprStmt) stmtKind() {}

// DeclStmt is a declaration appearing inside a block.
type DeclStmt struct{ Decls []DeclKey }

func (DeclStmt) stmtKind() {}

// If is `if (cond) then [else else_]`. Else is InvalidStmt when absent.
type If struct {
	Cond       ExprKey
	Then, Else StmtKey
}

func (If) stmtKind() {}

// Switch is `switch (cond) body`.
type Switch struct {
	Cond ExprKey
	Body StmtKey
}

func (Switch) stmtKind() {}

// While is `while (cond) body`.
type While struct {
	Cond ExprKey
	Body StmtKey
}

func (While) stmtKind() {}

// DoWhile is `do body while (cond);`.
type DoWhile struct {
	Body StmtKey
	Cond ExprKey
}

func (DoWhile) stmtKind() {}

// For is `for (init; cond; post) body`. Init is InvalidStmt, Cond/Post
// are InvalidExpr, when the corresponding clause is empty.
type For struct {
	Init       StmtKey
	Cond, Post ExprKey
	Body       StmtKey
}

func (For) stmtKind() {}

// Goto is `goto label;`.
type Goto struct{ Label ident.Ident }

func (Goto) stmtKind() {}

// Continue is `continue;`.
type Continue struct{}

func (Continue) stmtKind() {}

// Break is `break;`.
type Break struct{}

func (Break) stmtKind() {}

// Return is `return [value];`. Value is InvalidExpr for a bare `return;`.
type Return struct{ Value ExprKey }

func (Return) stmtKind() {}

// Label is `name: stmt`, binding a goto target.
type Label struct {
	Name ident.Ident
	Stmt StmtKey
}

func (Label) stmtKind() {}

// Case is `case value: stmt` inside a switch.
type Case struct {
	Value ExprKey
	Stmt  StmtKey
}

func (Case) stmtKind() {}

// Default is `default: stmt` inside a switch.
type Default struct{ Stmt StmtKey }

func (Default) stmtKind() {}

// A Stmt is one statement node: its Kind and Span.
type Stmt struct {
	Kind StmtKind
	Span span.Span
}
