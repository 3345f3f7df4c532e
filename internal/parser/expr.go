package parser

import (
	"strconv"

	"github.com/anishon/cfront/internal/ast"
	"github.com/anishon/cfront/internal/ident"
	"github.com/anishon/cfront/internal/lex"
	"github.com/anishon/cfront/internal/span"
	"github.com/anishon/cfront/internal/tokstream"
	"github.com/anishon/cfront/internal/types"
)

// binPrec gives the left-associative precedence climbing level of a
// strictly-binary operator, highest number binding tightest. Assignment
// and the ternary conditional are handled one level up by
// parseAssignment/parseConditional rather than through this table, since
// both are right-associative and assignment's left operand must be
// checked for lvalue-ness rather than simply parsed as another operand.
func binPrec(op lex.Op) (int, bool) {
	switch op {
	case lex.OpOrOr:
		return 1, true
	case lex.OpAndAnd:
		return 2, true
	case lex.OpOr:
		return 3, true
	case lex.OpXor:
		return 4, true
	case lex.OpAnd:
		return 5, true
	case lex.OpEq, lex.OpNe:
		return 6, true
	case lex.OpLt, lex.OpLe, lex.OpGt, lex.OpGe:
		return 7, true
	case lex.OpShl, lex.OpShr:
		return 8, true
	case lex.OpAdd, lex.OpSub:
		return 9, true
	case lex.OpMul, lex.OpDiv, lex.OpMod:
		return 10, true
	default:
		return 0, false
	}
}

// isRelational reports whether op yields an `int` result (spec.md §4.6)
// rather than the usual-arithmetic-conversion type of its operands.
func isRelational(op lex.Op) bool {
	switch op {
	case lex.OpEq, lex.OpNe, lex.OpLt, lex.OpLe, lex.OpGt, lex.OpGe, lex.OpAndAnd, lex.OpOrOr:
		return true
	default:
		return false
	}
}

func intType() types.Type { return types.Type{Kind: types.Integer{Signed: true, Size: types.Int}} }

// parseExpr parses a full comma-free expression: the assignment-expression
// production (spec.md §3's expression grammar tops out here; a top-level
// comma operator is not part of this repository's supported grammar
// beyond argument lists and init-declarator lists, both parsed directly by
// their own callers rather than through parseExpr).
func (p *Parser) parseExpr() (ast.ExprKey, bool) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (ast.ExprKey, bool) {
	lhs, ok := p.parseConditional()
	if !ok {
		return ast.InvalidExpr, false
	}

	tok := p.peek()
	var op lex.Op
	isAssign := false
	if tok.Kind == lex.Assign {
		isAssign = true
		op = lex.Op(0)
	} else if tok.Kind == lex.BinOp && tok.Op.IsAssign() {
		isAssign = true
		op = tok.Op
	}
	if !isAssign {
		return lhs, true
	}
	p.next()

	rhs, ok := p.parseAssignment()
	if !ok {
		return ast.InvalidExpr, false
	}

	lhsExpr := p.sema.Ctx.Expr(lhs)
	sp := lhsExpr.Span.Merge(p.sema.Ctx.Expr(rhs).Span)
	return p.sema.BuildExpr(ast.Assign{Op: op, Target: lhs, Value: rhs}, lhsExpr.Ty, sp), true
}

func (p *Parser) parseConditional() (ast.ExprKey, bool) {
	cond, ok := p.parseBinary(1)
	if !ok {
		return ast.InvalidExpr, false
	}
	if p.peek().Kind != lex.Question {
		return cond, true
	}
	p.next()

	then, ok := p.parseExpr()
	if !ok {
		return ast.InvalidExpr, false
	}
	if _, ok := p.expect(lex.Colon); !ok {
		return ast.InvalidExpr, false
	}
	elseExpr, ok := p.parseConditional()
	if !ok {
		return ast.InvalidExpr, false
	}

	thenTy := p.sema.Ctx.Expr(then).Ty
	sp := p.sema.Ctx.Expr(cond).Span.Merge(p.sema.Ctx.Expr(elseExpr).Span)
	return p.sema.BuildExpr(ast.Ternary{Cond: cond, Then: then, Else: elseExpr}, thenTy, sp), true
}

// parseBinary implements precedence climbing over binPrec, decaying both
// operands and computing the result type through Sema before building
// each Binary node (spec.md §4.6).
func (p *Parser) parseBinary(minPrec int) (ast.ExprKey, bool) {
	lhs, ok := p.parseUnaryLevel()
	if !ok {
		return ast.InvalidExpr, false
	}

	for {
		tok := p.peek()
		if tok.Kind != lex.BinOp {
			break
		}
		prec, ok := binPrec(tok.Op)
		if !ok || prec < minPrec {
			break
		}
		op := tok.Op
		p.next()

		rhs, ok := p.parseBinary(prec + 1)
		if !ok {
			return ast.InvalidExpr, false
		}

		lhs = p.sema.Decay(lhs)
		rhs = p.sema.Decay(rhs)

		var resultTy types.TypeKey
		if isRelational(op) {
			resultTy = p.sema.Ctx.InternType(intType())
		} else {
			lt := p.sema.Ctx.Type(p.sema.Ctx.Expr(lhs).Ty)
			rt := p.sema.Ctx.Type(p.sema.Ctx.Expr(rhs).Ty)
			conv := p.sema.UsualArithmeticConversions(lt, rt)
			resultTy = p.sema.Ctx.InternType(conv)
		}

		sp := p.sema.Ctx.Expr(lhs).Span.Merge(p.sema.Ctx.Expr(rhs).Span)
		lhs = p.sema.BuildExpr(ast.Binary{Op: op, Left: lhs, Right: rhs}, resultTy, sp)
	}

	return lhs, true
}

// parseUnaryLevel exists only to keep parseBinary's recursive-descent
// shape uniform with the rest of this file's parseXxxLevel helpers; the
// real work is in parseUnary.
func (p *Parser) parseUnaryLevel() (ast.ExprKey, bool) { return p.parseUnary() }

func (p *Parser) parseUnary() (ast.ExprKey, bool) {
	tok := p.peek()

	switch {
	case tok.Kind == lex.BinOp && (tok.Op == lex.OpInc || tok.Op == lex.OpDec ||
		tok.Op == lex.OpSub || tok.Op == lex.OpAdd || tok.Op == lex.OpNot ||
		tok.Op == lex.OpBitNot || tok.Op == lex.OpMul || tok.Op == lex.OpAnd):
		p.next()
		operand, ok := p.parseUnary()
		if !ok {
			return ast.InvalidExpr, false
		}
		sp := tok.Span.Merge(p.sema.Ctx.Expr(operand).Span)
		return p.buildUnary(tok.Op, operand, sp), true

	case tok.Kind == lex.Keyword && tok.Keyword == lex.KwSizeof:
		return p.parseSizeof()

	case tok.Kind == lex.LParen:
		if p.looksLikeCast() {
			return p.parseCast()
		}
	}

	return p.parsePostfix()
}

// buildUnary computes the result type of a prefix unary application and
// interns it: `*` dereferences a pointer, `&` forms a pointer to its
// (lvalue) operand, and every other operator is its operand's own
// (decayed, for arithmetic operators) type.
func (p *Parser) buildUnary(op lex.Op, operand ast.ExprKey, sp span.Span) ast.ExprKey {
	e := p.sema.Ctx.Expr(operand)

	switch op {
	case lex.OpMul:
		decayed := p.sema.Decay(operand)
		dt := p.sema.Ctx.Type(p.sema.Ctx.Expr(decayed).Ty)
		if ptr, ok := dt.Kind.(types.Pointer); ok {
			return p.sema.BuildExpr(ast.Unary{Op: op, Operand: decayed}, ptr.Elem, sp)
		}
		return p.sema.BuildExpr(ast.Unary{Op: op, Operand: decayed}, p.sema.Ctx.InternType(types.Type{Kind: types.Unknown{}}), sp)

	case lex.OpAnd:
		ptrTy := p.sema.Ctx.InternType(types.Type{Kind: types.Pointer{Elem: e.Ty}})
		return p.sema.BuildExpr(ast.Unary{Op: op, Operand: operand}, ptrTy, sp)

	case lex.OpInc, lex.OpDec:
		return p.sema.BuildExpr(ast.Unary{Op: op, Operand: operand}, e.Ty, sp)

	default:
		decayed := p.sema.Decay(operand)
		dt := p.sema.Ctx.Expr(decayed).Ty
		return p.sema.BuildExpr(ast.Unary{Op: op, Operand: decayed}, dt, sp)
	}
}

func (p *Parser) parseSizeof() (ast.ExprKey, bool) {
	start := p.next().Span // consume `sizeof`

	if p.peek().Kind == lex.LParen && p.looksLikeTypeNameInParens() {
		p.next() // `(`
		ty, ok := p.parseTypeName()
		if !ok {
			return ast.InvalidExpr, false
		}
		rp, ok := p.expect(lex.RParen)
		if !ok {
			return ast.InvalidExpr, false
		}
		sp := start.Merge(rp.Span)
		sizeTy := p.sema.Ctx.InternType(types.Type{Kind: types.Integer{Signed: false, Size: types.Long}})
		return p.sema.BuildExpr(ast.SizeofType{Ty: ty}, sizeTy, sp), true
	}

	operand, ok := p.parseUnary()
	if !ok {
		return ast.InvalidExpr, false
	}
	sp := start.Merge(p.sema.Ctx.Expr(operand).Span)
	sizeTy := p.sema.Ctx.InternType(types.Type{Kind: types.Integer{Signed: false, Size: types.Long}})
	return p.sema.BuildExpr(ast.SizeofExpr{Operand: operand}, sizeTy, sp), true
}

// looksLikeCast reports whether the parenthesized group the parser is
// sitting on (with `(` as the head token) is a cast `(T)expr` rather than
// a parenthesized expression — decided by whether the token right after
// `(` begins a type name. No C expression can start with a
// type-specifier keyword or a reclassified TypeName token (the lexer hack
// has already disambiguated that for us), so one extra token of
// lookahead settles it.
func (p *Parser) looksLikeCast() bool {
	return isTypeSpecStart(p.peek2())
}

func (p *Parser) looksLikeTypeNameInParens() bool {
	return isTypeSpecStart(p.peek2())
}

func isTypeSpecStart(tok tokstream.Token) bool {
	if tok.Kind == lex.TypeName {
		return true
	}
	if tok.Kind != lex.Keyword {
		return false
	}
	switch tok.Keyword {
	case lex.KwVoid, lex.KwChar, lex.KwShort, lex.KwInt, lex.KwLong, lex.KwFloat,
		lex.KwDouble, lex.KwSigned, lex.KwUnsigned, lex.KwStruct, lex.KwUnion,
		lex.KwEnum, lex.KwConst, lex.KwVolatile, lex.KwRestrict, lex.KwBool:
		return true
	default:
		return false
	}
}

func (p *Parser) parseCast() (ast.ExprKey, bool) {
	lp := p.next() // `(`
	ty, ok := p.parseTypeName()
	if !ok {
		return ast.InvalidExpr, false
	}
	if _, ok := p.expect(lex.RParen); !ok {
		return ast.InvalidExpr, false
	}
	operand, ok := p.parseUnary()
	if !ok {
		return ast.InvalidExpr, false
	}
	sp := lp.Span.Merge(p.sema.Ctx.Expr(operand).Span)
	return p.sema.BuildExpr(ast.Cast{Ty: ty, Operand: operand}, ty, sp), true
}

func (p *Parser) parsePostfix() (ast.ExprKey, bool) {
	e, ok := p.parsePrimary()
	if !ok {
		return ast.InvalidExpr, false
	}

	for {
		tok := p.peek()
		switch {
		case tok.Kind == lex.LBracket:
			p.next()
			idx, ok := p.parseExpr()
			if !ok {
				return ast.InvalidExpr, false
			}
			rb, ok := p.expect(lex.RBracket)
			if !ok {
				return ast.InvalidExpr, false
			}
			base := p.sema.Decay(e)
			baseTy := p.sema.Ctx.Type(p.sema.Ctx.Expr(base).Ty)
			var elemTy types.TypeKey
			if ptr, ok := baseTy.Kind.(types.Pointer); ok {
				elemTy = ptr.Elem
			} else {
				elemTy = p.sema.Ctx.InternType(types.Type{Kind: types.Unknown{}})
			}
			sp := p.sema.Ctx.Expr(e).Span.Merge(rb.Span)
			e = p.sema.BuildExpr(ast.ArraySubscript{Array: base, Index: p.sema.Decay(idx)}, elemTy, sp)

		case tok.Kind == lex.LParen:
			p.next()
			var args []ast.ExprKey
			if p.peek().Kind != lex.RParen {
				for {
					arg, ok := p.parseAssignment()
					if !ok {
						return ast.InvalidExpr, false
					}
					args = append(args, p.sema.Decay(arg))
					if p.peek().Kind != lex.Comma {
						break
					}
					p.next()
				}
			}
			rp, ok := p.expect(lex.RParen)
			if !ok {
				return ast.InvalidExpr, false
			}
			callee := p.sema.Decay(e)
			calleeTy := p.sema.Ctx.Type(p.sema.Ctx.Expr(callee).Ty)
			retTy := p.sema.Ctx.InternType(types.Type{Kind: types.Unknown{}})
			if ptr, ok := calleeTy.Kind.(types.Pointer); ok {
				if fn, ok := p.sema.Ctx.Type(ptr.Elem).Kind.(types.Function); ok {
					retTy = fn.Ret
				}
			}
			sp := p.sema.Ctx.Expr(e).Span.Merge(rp.Span)
			e = p.sema.BuildExpr(ast.Call{Callee: callee, Args: args}, retTy, sp)

		case tok.Kind == lex.Dot || tok.Kind == lex.Arrow:
			arrow := tok.Kind == lex.Arrow
			p.next()
			nameTok, ok := p.expect(lex.Ident)
			if !ok {
				return ast.InvalidExpr, false
			}
			member := ident.Ident{Sym: p.sema.Interner.Intern(nameTok.Text), Span: nameTok.Span}
			memTy := p.resolveMemberType(e, member, arrow)
			sp := p.sema.Ctx.Expr(e).Span.Merge(nameTok.Span)
			e = p.sema.BuildExpr(ast.MemberAccess{Object: e, Member: member, Arrow: arrow}, memTy, sp)

		case tok.Kind == lex.BinOp && (tok.Op == lex.OpInc || tok.Op == lex.OpDec):
			p.next()
			sp := p.sema.Ctx.Expr(e).Span.Merge(tok.Span)
			e = p.sema.BuildExpr(ast.Unary{Op: tok.Op, Operand: e, Postfix: true}, p.sema.Ctx.Expr(e).Ty, sp)

		default:
			return e, true
		}
	}
}

// resolveMemberType looks up member's field type on the struct/union
// named by object's type, decaying through one level of pointer first
// when arrow is set (`->` rather than `.`).
func (p *Parser) resolveMemberType(object ast.ExprKey, member ident.Ident, arrow bool) types.TypeKey {
	ty := p.sema.Ctx.Type(p.sema.Ctx.Expr(object).Ty)
	if arrow {
		ptr, ok := ty.Kind.(types.Pointer)
		if !ok {
			return p.sema.Ctx.InternType(types.Type{Kind: types.Unknown{}})
		}
		ty = p.sema.Ctx.Type(ptr.Elem)
	}

	var fields []types.RecordField
	switch k := ty.Kind.(type) {
	case types.Struct:
		fields = k.Fields
	case types.Union:
		fields = k.Fields
	case types.StructRef:
		if resolved, ok := p.sema.ResolveTag(k.Name); ok {
			if st, ok := resolved.Kind.(types.Struct); ok {
				fields = st.Fields
			}
		}
	case types.UnionRef:
		if resolved, ok := p.sema.ResolveTag(k.Name); ok {
			if un, ok := resolved.Kind.(types.Union); ok {
				fields = un.Fields
			}
		}
	}

	name := p.sema.Interner.Name(member.Sym)
	for _, f := range fields {
		if f.Name != nil && p.sema.Interner.Name(f.Name.Sym) == name {
			return f.Ty
		}
	}
	return p.sema.Ctx.InternType(types.Type{Kind: types.Unknown{}})
}

func (p *Parser) parsePrimary() (ast.ExprKey, bool) {
	tok := p.peek()

	switch tok.Kind {
	case lex.IntLit:
		p.next()
		v, _ := strconv.ParseInt(trimIntSuffix(tok.Text), 0, 64)
		ty := p.sema.Ctx.InternType(intType())
		return p.sema.BuildExpr(ast.IntConst{Value: v}, ty, tok.Span), true

	case lex.FloatLit:
		p.next()
		v, _ := strconv.ParseFloat(trimFloatSuffix(tok.Text), 64)
		ty := p.sema.Ctx.InternType(types.Type{Kind: types.Floating{Size: types.Double}})
		return p.sema.BuildExpr(ast.FloatConst{Value: v}, ty, tok.Span), true

	case lex.CharLit:
		p.next()
		v := charLitValue(tok.Text)
		ty := p.sema.Ctx.InternType(types.Type{Kind: types.Integer{Signed: true, Size: types.Char}})
		return p.sema.BuildExpr(ast.CharConst{Value: v}, ty, tok.Span), true

	case lex.StringLit:
		p.next()
		ty := p.sema.Ctx.InternType(types.Type{Kind: types.Array{
			Elem:     p.sema.Ctx.InternType(types.Type{Kind: types.Integer{Signed: true, Size: types.Char}}),
			SizeKind: types.SizeFixed,
			Fixed:    uint64(len(tok.Text)) + 1,
		}})
		return p.sema.BuildExpr(ast.StringConst{Value: tok.Text}, ty, tok.Span), true

	case lex.Ident:
		p.next()
		sym := p.sema.Interner.Intern(tok.Text)
		declKey, ok := p.sema.Scope.LookupChainIdent(sym)
		if !ok {
			p.diags.Errorf(tok.Span, "sema/undefined", "use of undeclared identifier %q", tok.Text)
			ty := p.sema.Ctx.InternType(types.Type{Kind: types.Unknown{}})
			return p.sema.BuildExpr(ast.DeclRef{Decl: ast.InvalidDecl}, ty, tok.Span), true
		}
		ty := p.sema.Ctx.Decl(declKey).Ty
		return p.sema.BuildExpr(ast.DeclRef{Decl: declKey}, ty, tok.Span), true

	case lex.LParen:
		lp := p.next()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.InvalidExpr, false
		}
		rp, ok := p.expect(lex.RParen)
		if !ok {
			return ast.InvalidExpr, false
		}
		sp := lp.Span.Merge(rp.Span)
		return p.sema.BuildExpr(ast.Paren{Inner: inner}, p.sema.Ctx.Expr(inner).Ty, sp), true

	default:
		p.diags.Errorf(tok.Span, "parse/expect-but-found", "expected an expression, found %s", tok.Kind)
		return ast.InvalidExpr, false
	}
}

func trimIntSuffix(text string) string {
	end := len(text)
	for end > 0 {
		c := text[end-1]
		if c == 'u' || c == 'U' || c == 'l' || c == 'L' {
			end--
			continue
		}
		break
	}
	return text[:end]
}

func trimFloatSuffix(text string) string {
	if n := len(text); n > 0 {
		switch text[n-1] {
		case 'f', 'F', 'l', 'L':
			return text[:n-1]
		}
	}
	return text
}

// charLitValue extracts the ordinal value of a character constant's text,
// a minimal subset of C's escape sequences (spec.md does not require a
// full escape grammar, only that the value be recoverable for constant
// folding elsewhere).
func charLitValue(text string) int64 {
	body := text
	if len(body) >= 2 && body[0] == '\'' && body[len(body)-1] == '\'' {
		body = body[1 : len(body)-1]
	}
	if len(body) == 0 {
		return 0
	}
	if body[0] == '\\' && len(body) > 1 {
		switch body[1] {
		case 'n':
			return '\n'
		case 't':
			return '\t'
		case '0':
			return 0
		case '\\':
			return '\\'
		case '\'':
			return '\''
		default:
			return int64(body[1])
		}
	}
	return int64(body[0])
}
