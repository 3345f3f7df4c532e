package sema

import (
	"github.com/anishon/cfront/internal/ast"
	"github.com/anishon/cfront/internal/lex"
	"github.com/anishon/cfront/internal/span"
	"github.com/anishon/cfront/internal/types"
)

// categoryOf implements spec.md §4.6's "expression construction" rule:
// DeclRef, ArraySubscript, MemberAccess, Assign, and Unary{Deref} are
// LValues; everything else is an RValue.
func categoryOf(kind ast.ExprKind) ast.ValueCategory {
	switch k := kind.(type) {
	case ast.DeclRef, ast.ArraySubscript, ast.MemberAccess, ast.Assign:
		return ast.LValue
	case ast.Unary:
		// The parser records a dereference `*p` as a prefix Unary whose Op
		// is lex.OpMul — the same lexeme that is a binary multiply in an
		// expression context; only the parser's position in the grammar
		// distinguishes the two, so by the time Sema sees it, Op alone is
		// enough to tell dereference apart from every other unary form.
		if k.Op == lex.OpMul && !k.Postfix {
			return ast.LValue
		}
		return ast.RValue
	default:
		return ast.RValue
	}
}

// BuildExpr constructs and interns an Expr of the given kind and type,
// attaching its value category per categoryOf, and returns its key.
func (s *Sema) BuildExpr(kind ast.ExprKind, ty types.TypeKey, sp span.Span) ast.ExprKey {
	e := ast.Expr{Kind: kind, Ty: ty, Category: categoryOf(kind), Span: sp}
	return s.Ctx.NewExpr(e)
}

// Decay applies spec.md §4.6's lvalue/decay rule to the expression named
// by key and returns the (possibly new) key to use in its place: an
// Array-typed expression decays to an RValue Pointer to its element type;
// a Function-typed expression decays to an RValue Pointer to itself;
// anything else that is still an LValue is read through to an RValue of
// the same type. Decay is idempotent — decaying an already-decayed
// expression returns it unchanged — because none of its three branches
// apply to an RValue of Pointer type.
func (s *Sema) Decay(key ast.ExprKey) ast.ExprKey {
	e := s.Ctx.Expr(key)
	t := s.Ctx.Type(e.Ty)

	switch k := t.Kind.(type) {
	case types.Array:
		ptrTy := s.Ctx.InternType(types.Type{Kind: types.Pointer{Elem: k.Elem}})
		e.Ty = ptrTy
		e.Category = ast.RValue
	case types.Function:
		ptrTy := s.Ctx.InternType(types.Type{Kind: types.Pointer{Elem: e.Ty}})
		e.Ty = ptrTy
		e.Category = ast.RValue
	default:
		if e.Category == ast.LValue {
			e.Category = ast.RValue
		} else {
			return key // already an RValue of non-array, non-function type: no-op
		}
	}

	return s.Ctx.NewExpr(e)
}

// integerRank orders integer types for the usual arithmetic conversions
// (C99 §6.3.1.8): higher rank wins ties over signedness in the rules
// below.
func integerRank(i types.Integer) int { return int(i.Size) }

// UsualArithmeticConversions computes the common type of a binary
// arithmetic operation's two operand types per C99 §6.3.1.8: integer
// promotions (sub-int ranks promote to Int), then floating-point
// widening takes priority over any integer type, then same-rank/
// different-signedness unification, then higher rank wins.
func (s *Sema) UsualArithmeticConversions(lhs, rhs types.Type) types.Type {
	lf, lIsFloat := lhs.Kind.(types.Floating)
	rf, rIsFloat := rhs.Kind.(types.Floating)
	if lIsFloat || rIsFloat {
		switch {
		case lIsFloat && rIsFloat:
			if lf.Size >= rf.Size {
				return lhs
			}
			return rhs
		case lIsFloat:
			return lhs
		default:
			return rhs
		}
	}

	li, lok := lhs.Kind.(types.Integer)
	ri, rok := rhs.Kind.(types.Integer)
	if !lok || !rok {
		return types.Type{Kind: types.Unknown{}}
	}

	li = promote(li)
	ri = promote(ri)

	switch {
	case li.Signed == ri.Signed:
		if integerRank(li) >= integerRank(ri) {
			return types.Type{Kind: li}
		}
		return types.Type{Kind: ri}
	case !li.Signed && integerRank(li) >= integerRank(ri):
		return types.Type{Kind: li}
	case !ri.Signed && integerRank(ri) >= integerRank(li):
		return types.Type{Kind: ri}
	case li.Signed && integerRank(li) > integerRank(ri):
		return types.Type{Kind: li}
	case ri.Signed && integerRank(ri) > integerRank(li):
		return types.Type{Kind: ri}
	default:
		// Equal rank, opposite signedness: the signed type converts to
		// unsigned (C99 §6.3.1.8 rule 3).
		if li.Signed {
			li.Signed = false
			return types.Type{Kind: li}
		}
		ri.Signed = false
		return types.Type{Kind: ri}
	}
}

// promote implements integer promotion: any rank below Int promotes to a
// signed Int, matching C's rule that char/short/bit-fields always widen
// before taking part in an arithmetic operation.
func promote(i types.Integer) types.Integer {
	if i.Size < types.Int {
		return types.Integer{Signed: true, Size: types.Int}
	}
	return i
}
