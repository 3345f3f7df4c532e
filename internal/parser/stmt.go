package parser

import (
	"github.com/anishon/cfront/internal/ast"
	"github.com/anishon/cfront/internal/ident"
	"github.com/anishon/cfront/internal/lex"
	"github.com/anishon/cfront/internal/scope"
	"github.com/anishon/cfront/internal/tokstream"
)

// parseCompoundStmt parses a brace-enclosed block, pushing a Block scope
// for its lifetime (spec.md §4.1: blocks introduce a new Block scope
// nested in whatever scope is already live).
func (p *Parser) parseCompoundStmt() (ast.StmtKey, bool) {
	lb, ok := p.expect(lex.LBrace)
	if !ok {
		return ast.InvalidStmt, false
	}

	p.sema.Scope.Enter(scope.Block)
	var stmts []ast.StmtKey
	for p.peek().Kind != lex.RBrace && p.peek().Kind != lex.Eof {
		s, ok := p.parseStatement()
		if !ok {
			p.synchronize()
			if p.stuck() {
				break
			}
			continue
		}
		p.resetRecoveries()
		stmts = append(stmts, s)
	}
	p.sema.Scope.Exit()

	rb, ok := p.expect(lex.RBrace)
	if !ok {
		return ast.InvalidStmt, false
	}

	return p.sema.Ctx.NewStmt(ast.Stmt{Kind: ast.Compound{Stmts: stmts}, Span: lb.Span.Merge(rb.Span)}), true
}

// parseStatement dispatches on the head token to one of C's statement
// forms (spec.md §3's Stmt variants), falling back to an expression
// statement or a block-scope declaration when nothing else matches.
func (p *Parser) parseStatement() (ast.StmtKey, bool) {
	tok := p.peek()

	if tok.Kind == lex.Ident && p.peek2().Kind == lex.Colon {
		return p.parseLabeledStatement()
	}

	if tok.Kind == lex.Keyword {
		switch tok.Keyword {
		case lex.KwIf:
			return p.parseIf()
		case lex.KwSwitch:
			return p.parseSwitch()
		case lex.KwWhile:
			return p.parseWhile()
		case lex.KwDo:
			return p.parseDoWhile()
		case lex.KwFor:
			return p.parseFor()
		case lex.KwGoto:
			return p.parseGoto()
		case lex.KwContinue:
			p.next()
			sp := tok.Span
			if semi, ok := p.expect(lex.Semi); ok {
				sp = sp.Merge(semi.Span)
			}
			return p.sema.Ctx.NewStmt(ast.Stmt{Kind: ast.Continue{}, Span: sp}), true
		case lex.KwBreak:
			p.next()
			sp := tok.Span
			if semi, ok := p.expect(lex.Semi); ok {
				sp = sp.Merge(semi.Span)
			}
			return p.sema.Ctx.NewStmt(ast.Stmt{Kind: ast.Break{}, Span: sp}), true
		case lex.KwReturn:
			return p.parseReturn()
		case lex.KwCase:
			return p.parseCase()
		case lex.KwDefault:
			return p.parseDefault()
		}
	}

	if tok.Kind == lex.LBrace {
		return p.parseCompoundStmt()
	}

	if p.startsDeclaration(tok) {
		return p.parseDeclStmt()
	}

	return p.parseExprStmt()
}

// startsDeclaration reports whether tok can begin a declaration-specifier
// list, distinguishing a block-scope declaration from an expression
// statement — the same type-specifier test the cast/sizeof disambiguator
// in expr.go uses, plus the storage-class and qualifier keywords that
// only ever start a declaration.
func (p *Parser) startsDeclaration(tok tokstream.Token) bool {
	if isTypeSpecStart(tok) {
		return true
	}
	if tok.Kind != lex.Keyword {
		return false
	}
	switch tok.Keyword {
	case lex.KwTypedef, lex.KwExtern, lex.KwStatic, lex.KwAuto, lex.KwRegister, lex.KwInline:
		return true
	default:
		return false
	}
}

func (p *Parser) parseDeclStmt() (ast.StmtKey, bool) {
	start := p.peek().Span
	spec, ok := p.parseDeclSpec()
	if !ok {
		return ast.InvalidStmt, false
	}

	var decls []ast.DeclKey
	if p.peek().Kind != lex.Semi {
		for {
			d, ok := p.parseDeclarator(spec)
			if !ok {
				return ast.InvalidStmt, false
			}
			ty := p.sema.LowerDeclarator(d)
			kind := ast.DeclVar
			if spec.Storage == ast.StorageTypedef {
				kind = ast.DeclTypedef
			}
			key := p.sema.InsertDecl(*d.Name, spec.Storage, kind, ty, d.Span)
			decls = append(decls, key)

			if p.peek().Kind == lex.Assign {
				p.next()
				if _, ok := p.parseInitializer(); !ok {
					return ast.InvalidStmt, false
				}
			}

			if p.peek().Kind != lex.Comma {
				break
			}
			p.next()
		}
	}

	semi, ok := p.expect(lex.Semi)
	if !ok {
		return ast.InvalidStmt, false
	}

	return p.sema.Ctx.NewStmt(ast.Stmt{Kind: ast.DeclStmt{Decls: decls}, Span: start.Merge(semi.Span)}), true
}

func (p *Parser) parseExprStmt() (ast.StmtKey, bool) {
	start := p.peek().Span
	if p.peek().Kind == lex.Semi {
		semi := p.next()
		return p.sema.Ctx.NewStmt(ast.Stmt{Kind: ast.ExprStmt{Expr: ast.InvalidExpr}, Span: semi.Span}), true
	}

	e, ok := p.parseExpr()
	if !ok {
		return ast.InvalidStmt, false
	}
	semi, ok := p.expect(lex.Semi)
	if !ok {
		return ast.InvalidStmt, false
	}
	return p.sema.Ctx.NewStmt(ast.Stmt{Kind: ast.ExprStmt{Expr: e}, Span: start.Merge(semi.Span)}), true
}

func (p *Parser) parseIf() (ast.StmtKey, bool) {
	start := p.next().Span // `if`
	if _, ok := p.expect(lex.LParen); !ok {
		return ast.InvalidStmt, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.InvalidStmt, false
	}
	if _, ok := p.expect(lex.RParen); !ok {
		return ast.InvalidStmt, false
	}
	then, ok := p.parseStatement()
	if !ok {
		return ast.InvalidStmt, false
	}

	elseStmt := ast.InvalidStmt
	end := p.sema.Ctx.Stmt(then).Span
	if p.peek().Kind == lex.Keyword && p.peek().Keyword == lex.KwElse {
		p.next()
		elseStmt, ok = p.parseStatement()
		if !ok {
			return ast.InvalidStmt, false
		}
		end = p.sema.Ctx.Stmt(elseStmt).Span
	}

	return p.sema.Ctx.NewStmt(ast.Stmt{Kind: ast.If{Cond: cond, Then: then, Else: elseStmt}, Span: start.Merge(end)}), true
}

func (p *Parser) parseSwitch() (ast.StmtKey, bool) {
	start := p.next().Span // `switch`
	if _, ok := p.expect(lex.LParen); !ok {
		return ast.InvalidStmt, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.InvalidStmt, false
	}
	if _, ok := p.expect(lex.RParen); !ok {
		return ast.InvalidStmt, false
	}
	body, ok := p.parseStatement()
	if !ok {
		return ast.InvalidStmt, false
	}
	sp := start.Merge(p.sema.Ctx.Stmt(body).Span)
	return p.sema.Ctx.NewStmt(ast.Stmt{Kind: ast.Switch{Cond: cond, Body: body}, Span: sp}), true
}

func (p *Parser) parseWhile() (ast.StmtKey, bool) {
	start := p.next().Span // `while`
	if _, ok := p.expect(lex.LParen); !ok {
		return ast.InvalidStmt, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.InvalidStmt, false
	}
	if _, ok := p.expect(lex.RParen); !ok {
		return ast.InvalidStmt, false
	}
	body, ok := p.parseStatement()
	if !ok {
		return ast.InvalidStmt, false
	}
	sp := start.Merge(p.sema.Ctx.Stmt(body).Span)
	return p.sema.Ctx.NewStmt(ast.Stmt{Kind: ast.While{Cond: cond, Body: body}, Span: sp}), true
}

func (p *Parser) parseDoWhile() (ast.StmtKey, bool) {
	start := p.next().Span // `do`
	body, ok := p.parseStatement()
	if !ok {
		return ast.InvalidStmt, false
	}
	if p.peek().Kind != lex.Keyword || p.peek().Keyword != lex.KwWhile {
		p.diags.Errorf(p.peek().Span, "parse/expect-but-found", "expected 'while' after do-statement body")
		return ast.InvalidStmt, false
	}
	p.next()
	if _, ok := p.expect(lex.LParen); !ok {
		return ast.InvalidStmt, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.InvalidStmt, false
	}
	if _, ok := p.expect(lex.RParen); !ok {
		return ast.InvalidStmt, false
	}
	semi, ok := p.expect(lex.Semi)
	if !ok {
		return ast.InvalidStmt, false
	}
	return p.sema.Ctx.NewStmt(ast.Stmt{Kind: ast.DoWhile{Body: body, Cond: cond}, Span: start.Merge(semi.Span)}), true
}

func (p *Parser) parseFor() (ast.StmtKey, bool) {
	start := p.next().Span // `for`
	if _, ok := p.expect(lex.LParen); !ok {
		return ast.InvalidStmt, false
	}

	p.sema.Scope.Enter(scope.Block) // the for-init declaration's scope extends over the whole loop

	var init ast.StmtKey = ast.InvalidStmt
	if p.peek().Kind != lex.Semi {
		if p.startsDeclaration(p.peek()) {
			var ok bool
			init, ok = p.parseDeclStmt()
			if !ok {
				p.sema.Scope.Exit()
				return ast.InvalidStmt, false
			}
		} else {
			e, ok := p.parseExpr()
			if !ok {
				p.sema.Scope.Exit()
				return ast.InvalidStmt, false
			}
			semi, ok := p.expect(lex.Semi)
			if !ok {
				p.sema.Scope.Exit()
				return ast.InvalidStmt, false
			}
			init = p.sema.Ctx.NewStmt(ast.Stmt{Kind: ast.ExprStmt{Expr: e}, Span: semi.Span})
		}
	} else {
		p.next() // bare `;`
	}

	cond := ast.InvalidExpr
	if p.peek().Kind != lex.Semi {
		var ok bool
		cond, ok = p.parseExpr()
		if !ok {
			p.sema.Scope.Exit()
			return ast.InvalidStmt, false
		}
	}
	if _, ok := p.expect(lex.Semi); !ok {
		p.sema.Scope.Exit()
		return ast.InvalidStmt, false
	}

	post := ast.InvalidExpr
	if p.peek().Kind != lex.RParen {
		var ok bool
		post, ok = p.parseExpr()
		if !ok {
			p.sema.Scope.Exit()
			return ast.InvalidStmt, false
		}
	}
	if _, ok := p.expect(lex.RParen); !ok {
		p.sema.Scope.Exit()
		return ast.InvalidStmt, false
	}

	body, ok := p.parseStatement()
	p.sema.Scope.Exit()
	if !ok {
		return ast.InvalidStmt, false
	}

	sp := start.Merge(p.sema.Ctx.Stmt(body).Span)
	return p.sema.Ctx.NewStmt(ast.Stmt{Kind: ast.For{Init: init, Cond: cond, Post: post, Body: body}, Span: sp}), true
}

func (p *Parser) parseGoto() (ast.StmtKey, bool) {
	start := p.next().Span // `goto`
	nameTok, ok := p.expect(lex.Ident)
	if !ok {
		return ast.InvalidStmt, false
	}
	semi, ok := p.expect(lex.Semi)
	if !ok {
		return ast.InvalidStmt, false
	}
	name := ident.Ident{Sym: p.sema.Interner.Intern(nameTok.Text), Span: nameTok.Span}
	p.sema.CheckGoto(name)
	return p.sema.Ctx.NewStmt(ast.Stmt{Kind: ast.Goto{Label: name}, Span: start.Merge(semi.Span)}), true
}

func (p *Parser) parseReturn() (ast.StmtKey, bool) {
	start := p.next().Span // `return`
	value := ast.InvalidExpr
	if p.peek().Kind != lex.Semi {
		var ok bool
		value, ok = p.parseExpr()
		if !ok {
			return ast.InvalidStmt, false
		}
	}
	semi, ok := p.expect(lex.Semi)
	if !ok {
		return ast.InvalidStmt, false
	}
	return p.sema.Ctx.NewStmt(ast.Stmt{Kind: ast.Return{Value: value}, Span: start.Merge(semi.Span)}), true
}

func (p *Parser) parseCase() (ast.StmtKey, bool) {
	start := p.next().Span // `case`
	value, ok := p.parseConditional()
	if !ok {
		return ast.InvalidStmt, false
	}
	if _, ok := p.expect(lex.Colon); !ok {
		return ast.InvalidStmt, false
	}
	stmt, ok := p.parseStatement()
	if !ok {
		return ast.InvalidStmt, false
	}
	sp := start.Merge(p.sema.Ctx.Stmt(stmt).Span)
	return p.sema.Ctx.NewStmt(ast.Stmt{Kind: ast.Case{Value: value, Stmt: stmt}, Span: sp}), true
}

func (p *Parser) parseDefault() (ast.StmtKey, bool) {
	start := p.next().Span // `default`
	if _, ok := p.expect(lex.Colon); !ok {
		return ast.InvalidStmt, false
	}
	stmt, ok := p.parseStatement()
	if !ok {
		return ast.InvalidStmt, false
	}
	sp := start.Merge(p.sema.Ctx.Stmt(stmt).Span)
	return p.sema.Ctx.NewStmt(ast.Stmt{Kind: ast.Default{Stmt: stmt}, Span: sp}), true
}

func (p *Parser) parseLabeledStatement() (ast.StmtKey, bool) {
	nameTok := p.next()
	p.next() // `:`
	name := ident.Ident{Sym: p.sema.Interner.Intern(nameTok.Text), Span: nameTok.Span}

	stmt, ok := p.parseStatement()
	if !ok {
		return ast.InvalidStmt, false
	}

	key := p.sema.Ctx.NewStmt(ast.Stmt{Kind: ast.Label{Name: name, Stmt: stmt}, Span: nameTok.Span.Merge(p.sema.Ctx.Stmt(stmt).Span)})
	p.sema.DeclareLabel(name, key)
	return key, true
}
