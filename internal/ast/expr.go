package ast

import (
	"github.com/anishon/cfront/internal/ident"
	"github.com/anishon/cfront/internal/lex"
	"github.com/anishon/cfront/internal/span"
	"github.com/anishon/cfront/internal/types"
)

// A ValueCategory is whether an expression designates an object (an
// LValue, assignable and addressable) or merely a value (an RValue);
// governs assignability and decay (spec.md Glossary).
type ValueCategory int

const (
	RValue ValueCategory = iota
	LValue
)

func (c ValueCategory) String() string {
	if c == LValue {
		return "lvalue"
	}
	return "rvalue"
}

// An ExprKind is one of the marked variant structs below, the same
// closed-sum-type shape package types uses for TypeKind.
type ExprKind interface {
	exprKind()
}

type IntConst struct{ Value int64 }

func (IntConst) exprKind() {}

type FloatConst struct{ Value float64 }

func (FloatConst) exprKind() {}

type CharConst struct{ Value int64 }

func (CharConst) exprKind() {}

type StringConst struct{ Value string }

func (StringConst) exprKind() {}

// DeclRef names a use of a previously declared identifier.
type DeclRef struct{ Decl DeclKey }

func (DeclRef) exprKind() {}

// ArraySubscript is `array[index]`.
type ArraySubscript struct{ Array, Index ExprKey }

func (ArraySubscript) exprKind() {}

// MemberAccess is `object.member` (Arrow == false) or `object->member`
// (Arrow == true).
type MemberAccess struct {
	Object ExprKey
	Member ident.Ident
	Arrow  bool
}

func (MemberAccess) exprKind() {}

// Call is a function call.
type Call struct {
	Callee ExprKey
	Args   []ExprKey
}

func (Call) exprKind() {}

// Unary is a prefix unary operator application (`-x`, `!x`, `~x`, `*x`,
// `&x`, `++x`, `--x`) or the postfix forms (`x++`, `x--`), distinguished
// by Postfix.
type Unary struct {
	Op      lex.Op
	Operand ExprKey
	Postfix bool
}

func (Unary) exprKind() {}

// Binary is a two-operand arithmetic, relational, logical, or bitwise
// expression.
type Binary struct {
	Op          lex.Op
	Left, Right ExprKey
}

func (Binary) exprKind() {}

// Ternary is `cond ? then : else`.
type Ternary struct {
	Cond, Then, Else ExprKey
}

func (Ternary) exprKind() {}

// Assign is a simple or compound assignment; Op.IsAssign() is true for
// every Op this variant carries, or Op is the zero value for plain `=`.
type Assign struct {
	Op           lex.Op
	Target, Value ExprKey
}

func (Assign) exprKind() {}

// Cast is an explicit `(T)operand` conversion.
type Cast struct {
	Ty      types.TypeKey
	Operand ExprKey
}

func (Cast) exprKind() {}

// SizeofExpr is `sizeof expr` (no parens required by the grammar,
// though the parser always records the expression it bound to).
type SizeofExpr struct{ Operand ExprKey }

func (SizeofExpr) exprKind() {}

// SizeofType is `sizeof(T)`.
type SizeofType struct{ Ty types.TypeKey }

func (SizeofType) exprKind() {}

// Paren is a parenthesized expression, kept distinct from its Inner
// expression only because its Span differs (it includes the parens);
// Sema otherwise treats Paren as wholly transparent.
type Paren struct{ Inner ExprKey }

func (Paren) exprKind() {}

// An Expr is one expression node: its Kind, the TypeKey Sema attached to
// it, its Span, and its ValueCategory (spec.md §3).
type Expr struct {
	Kind     ExprKind
	Ty       types.TypeKey
	Category ValueCategory
	Span     span.Span
}
