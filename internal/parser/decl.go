package parser

import (
	"github.com/anishon/cfront/internal/ast"
	"github.com/anishon/cfront/internal/ident"
	"github.com/anishon/cfront/internal/lex"
	"github.com/anishon/cfront/internal/scope"
	"github.com/anishon/cfront/internal/span"
	"github.com/anishon/cfront/internal/types"
)

// parseExternalDecl parses one top-level construct: either a complete
// function definition or a declaration group sharing one specifier list
// (spec.md §3, §4.4).
func (p *Parser) parseExternalDecl() (ast.ExternalDecl, bool) {
	start := p.peek().Span

	spec, ok := p.parseDeclSpec()
	if !ok {
		return ast.ExternalDecl{}, false
	}

	if p.peek().Kind == lex.Semi {
		// A bare `struct foo;` or `enum color { ... };` with no declarator.
		p.next()
		return ast.ExternalDecl{Kind: ast.DeclGroup{}, Span: start.Merge(start)}, true
	}

	d, ok := p.parseDeclarator(spec)
	if !ok {
		return ast.ExternalDecl{}, false
	}

	// A function body immediately following a function declarator makes
	// this a function definition rather than a declaration.
	if p.peek().Kind == lex.LBrace && isFunctionDeclarator(d) {
		return p.parseFunctionDef(spec, d, start)
	}

	var decls []ast.DeclKey
	for {
		ty := p.sema.LowerDeclarator(d)
		kind := ast.DeclVar
		if spec.Storage == ast.StorageTypedef {
			kind = ast.DeclTypedef
		} else if isFunctionDeclarator(d) {
			kind = ast.DeclFunc
		}
		key := p.sema.InsertDecl(*d.Name, spec.Storage, kind, ty, d.Span)
		decls = append(decls, key)

		if p.peek().Kind == lex.Assign {
			p.next()
			if _, ok := p.parseInitializer(); !ok {
				return ast.ExternalDecl{}, false
			}
		}

		if p.peek().Kind != lex.Comma {
			break
		}
		p.next()
		d, ok = p.parseDeclarator(spec)
		if !ok {
			return ast.ExternalDecl{}, false
		}
	}

	semi, ok := p.expect(lex.Semi)
	if !ok {
		return ast.ExternalDecl{}, false
	}

	return ast.ExternalDecl{Kind: ast.DeclGroup{Decls: decls}, Span: start.Merge(semi.Span)}, true
}

func isFunctionDeclarator(d ast.Declarator) bool {
	if len(d.Chunks) == 0 {
		return false
	}
	return d.Chunks[len(d.Chunks)-1].Kind == ast.ChunkFunction
}

// parseFunctionDef parses the compound-statement body that follows a
// function declarator, re-inserting its parameters into a fresh Function
// scope (spec.md §4.4: function bodies push a Function scope, not a
// Block, so labels and gotos see the whole function at once).
func (p *Parser) parseFunctionDef(spec ast.DeclSpec, d ast.Declarator, start span.Span) (ast.ExternalDecl, bool) {
	ty := p.sema.LowerDeclarator(d)
	declKey := p.sema.InsertDecl(*d.Name, spec.Storage, ast.DeclFunc, ty, d.Span)

	p.sema.Scope.Enter(scope.Function)
	fnChunk := d.Chunks[len(d.Chunks)-1]
	for _, param := range fnChunk.Params {
		if param.Name == nil {
			continue
		}
		paramTy := p.sema.LowerDeclarator(ast.Declarator{Spec: param.Spec, Chunks: param.Chunks, Span: param.Span})
		pd := ast.Decl{Kind: ast.DeclParam, Name: param.Name, Ty: paramTy, Span: param.Span}
		key := p.sema.Ctx.NewDecl(pd)
		p.sema.Scope.InsertIdent(param.Name.Sym, key)
	}

	body, ok := p.parseCompoundStmt()
	p.sema.Scope.Exit()
	if !ok {
		return ast.ExternalDecl{}, false
	}

	sp := start.Merge(p.sema.Ctx.Stmt(body).Span)
	return ast.ExternalDecl{Kind: ast.FuncDef{Decl: declKey, Body: body}, Span: sp}, true
}

// parseInitializer parses an init-declarator's right-hand side: either a
// single assignment-expression or a brace-enclosed initializer list,
// recursively (spec.md §3's Initializer).
func (p *Parser) parseInitializer() (ast.Initializer, bool) {
	if p.peek().Kind != lex.LBrace {
		e, ok := p.parseAssignment()
		if !ok {
			return ast.Initializer{}, false
		}
		return ast.Initializer{Expr: e, Span: p.sema.Ctx.Expr(e).Span}, true
	}

	lb := p.next()
	var list []ast.Initializer
	if p.peek().Kind != lex.RBrace {
		for {
			init, ok := p.parseInitializer()
			if !ok {
				return ast.Initializer{}, false
			}
			list = append(list, init)
			if p.peek().Kind != lex.Comma {
				break
			}
			p.next()
			if p.peek().Kind == lex.RBrace {
				break // trailing comma before the closing brace
			}
		}
	}
	rb, ok := p.expect(lex.RBrace)
	if !ok {
		return ast.Initializer{}, false
	}
	return ast.Initializer{List: list, Span: lb.Span.Merge(rb.Span)}, true
}

// parseDeclSpec parses the declaration-specifier list: storage class,
// qualifiers, and type specifiers, in any order, per C's grammar
// (spec.md §4.6 step 0).
func (p *Parser) parseDeclSpec() (ast.DeclSpec, bool) {
	var spec ast.DeclSpec
	start := p.peek().Span
	sawSpec := false

	for {
		tok := p.peek()
		if tok.Kind == lex.TypeName && !sawSpec {
			p.next()
			sym := p.sema.Interner.Intern(tok.Text)
			id := &ident.Ident{Sym: sym, Span: tok.Span}
			p.sema.CombineTypeSpec(&spec, types.SpecTypeName, tok.Span)
			spec.TypeName = id
			sawSpec = true
			continue
		}
		if tok.Kind != lex.Keyword {
			break
		}

		switch tok.Keyword {
		case lex.KwTypedef:
			p.next()
			spec.Storage = ast.StorageTypedef
		case lex.KwExtern:
			p.next()
			spec.Storage = ast.StorageExtern
		case lex.KwStatic:
			p.next()
			spec.Storage = ast.StorageStatic
		case lex.KwAuto:
			p.next()
			spec.Storage = ast.StorageAuto
		case lex.KwRegister:
			p.next()
			spec.Storage = ast.StorageRegister

		case lex.KwConst:
			p.next()
			spec.Qual.Const = true
		case lex.KwVolatile:
			p.next()
			spec.Qual.Volatile = true
		case lex.KwRestrict:
			p.next()
			spec.Qual.Restrict = true
		case lex.KwInline:
			p.next() // function-specifier: accepted, has no effect on the type model

		case lex.KwSigned:
			p.next()
			spec.Signed = true
		case lex.KwUnsigned:
			p.next()
			spec.Unsigned = true

		case lex.KwVoid:
			p.next()
			p.sema.CombineTypeSpec(&spec, types.SpecVoid, tok.Span)
			sawSpec = true
		case lex.KwChar:
			p.next()
			p.sema.CombineTypeSpec(&spec, types.SpecChar, tok.Span)
			sawSpec = true
		case lex.KwShort:
			p.next()
			p.sema.CombineTypeSpec(&spec, types.SpecShort, tok.Span)
			sawSpec = true
		case lex.KwInt:
			p.next()
			p.sema.CombineTypeSpec(&spec, types.SpecInt, tok.Span)
			sawSpec = true
		case lex.KwLong:
			p.next()
			p.sema.CombineTypeSpec(&spec, types.SpecLong, tok.Span)
			sawSpec = true
		case lex.KwFloat:
			p.next()
			p.sema.CombineTypeSpec(&spec, types.SpecFloat, tok.Span)
			sawSpec = true
		case lex.KwDouble:
			p.next()
			p.sema.CombineTypeSpec(&spec, types.SpecDouble, tok.Span)
			sawSpec = true
		case lex.KwBool:
			p.next()
			spec.Unsigned = true // _Bool is modeled as an unsigned char-ranked Integer
			p.sema.CombineTypeSpec(&spec, types.SpecChar, tok.Span)

		case lex.KwStruct, lex.KwUnion:
			p.next()
			ty, ok := p.parseRecordSpecifier(tok.Keyword == lex.KwUnion)
			if !ok {
				return ast.DeclSpec{}, false
			}
			p.sema.CombineTypeSpec(&spec, types.SpecRecord, tok.Span)
			spec.RecordType = ty
			sawSpec = true

		case lex.KwEnum:
			p.next()
			ty, ok := p.parseEnumSpecifier()
			if !ok {
				return ast.DeclSpec{}, false
			}
			p.sema.CombineTypeSpec(&spec, types.SpecEnum, tok.Span)
			spec.RecordType = ty
			sawSpec = true

		default:
			goto done
		}
	}
done:
	spec.Span = start.Merge(p.peek().Span)
	return spec, true
}

// parseRecordSpecifier parses `struct`/`union` [tag] [`{` member-list `}`]
// (spec.md §4.4's tag/member handling).
func (p *Parser) parseRecordSpecifier(isUnion bool) (types.TypeKey, bool) {
	var tagName *ident.Ident
	if p.peek().Kind == lex.Ident {
		tok := p.next()
		tagName = &ident.Ident{Sym: p.sema.Interner.Intern(tok.Text), Span: tok.Span}
	}

	if p.peek().Kind != lex.LBrace {
		// A reference to a previously declared (or forward-declared) tag.
		if tagName == nil {
			p.diags.Errorf(p.peek().Span, "parse/expect-but-found", "expected a tag name or '{' after struct/union")
			return types.InvalidType, false
		}
		declKind := ast.DeclStructTag
		if isUnion {
			declKind = ast.DeclUnionTag
		}
		key := p.sema.DeclareTag(*tagName, declKind, tagName.Span)
		d := p.sema.Ctx.Decl(key)
		if d.Ty != types.InvalidType {
			return d.Ty, true
		}
		name := p.sema.Interner.Name(tagName.Sym)
		var ref types.TypeKind
		if isUnion {
			ref = types.UnionRef{Name: name}
		} else {
			ref = types.StructRef{Name: name}
		}
		return p.sema.Ctx.InternType(types.Type{Kind: ref}), true
	}

	var tagKey ast.DeclKey = ast.InvalidDecl
	if tagName != nil {
		declKind := ast.DeclStructTag
		if isUnion {
			declKind = ast.DeclUnionTag
		}
		tagKey = p.sema.DeclareTag(*tagName, declKind, tagName.Span)
	}

	p.next() // `{`
	p.sema.Scope.Enter(scope.Record)
	var fields []types.RecordField
	for p.peek().Kind != lex.RBrace && p.peek().Kind != lex.Eof {
		fieldSpec, ok := p.parseDeclSpec()
		if !ok {
			p.sema.Scope.Exit()
			return types.InvalidType, false
		}
		for {
			fd, ok := p.parseDeclarator(fieldSpec)
			if !ok {
				p.sema.Scope.Exit()
				return types.InvalidType, false
			}
			fieldTy := p.sema.LowerDeclarator(fd)
			var bitField *uint64
			if p.peek().Kind == lex.Colon {
				p.next()
				bitExpr, ok := p.parseConditional()
				if !ok {
					p.sema.Scope.Exit()
					return types.InvalidType, false
				}
				if ic, isConst := p.sema.Ctx.Expr(bitExpr).Kind.(ast.IntConst); isConst {
					w := uint64(ic.Value)
					bitField = &w
				}
			}
			fields = append(fields, types.RecordField{Name: fd.Name, Ty: fieldTy, BitField: bitField})
			if fd.Name != nil {
				declKey := p.sema.Ctx.NewDecl(ast.Decl{Kind: ast.DeclField, Name: fd.Name, Ty: fieldTy, Span: fd.Span})
				p.sema.Scope.InsertMember(fd.Name.Sym, declKey)
			}
			if p.peek().Kind != lex.Comma {
				break
			}
			p.next()
		}
		if _, ok := p.expect(lex.Semi); !ok {
			p.sema.Scope.Exit()
			return types.InvalidType, false
		}
	}
	p.sema.Scope.Exit()

	if _, ok := p.expect(lex.RBrace); !ok {
		return types.InvalidType, false
	}

	ty := p.sema.FinalizeRecord(tagName, fields, isUnion)
	if tagKey != ast.InvalidDecl {
		p.sema.FinalizeTag(tagKey, ty)
	}
	return ty, true
}

// parseEnumSpecifier parses `enum` [tag] [`{` enumerator-list `}`]
// (spec.md §4.4: "enum specifiers collect enumerators into the enclosing
// scope ... and the tag into the tag namespace").
func (p *Parser) parseEnumSpecifier() (types.TypeKey, bool) {
	var tagName *ident.Ident
	if p.peek().Kind == lex.Ident {
		tok := p.next()
		tagName = &ident.Ident{Sym: p.sema.Interner.Intern(tok.Text), Span: tok.Span}
	}

	if p.peek().Kind != lex.LBrace {
		if tagName == nil {
			p.diags.Errorf(p.peek().Span, "parse/expect-but-found", "expected a tag name or '{' after enum")
			return types.InvalidType, false
		}
		key := p.sema.DeclareTag(*tagName, ast.DeclEnumTag, tagName.Span)
		d := p.sema.Ctx.Decl(key)
		if d.Ty != types.InvalidType {
			return d.Ty, true
		}
		return p.sema.Ctx.InternType(types.Type{Kind: types.EnumRef{Name: p.sema.Interner.Name(tagName.Sym)}}), true
	}

	var tagKey ast.DeclKey = ast.InvalidDecl
	if tagName != nil {
		tagKey = p.sema.DeclareTag(*tagName, ast.DeclEnumTag, tagName.Span)
	}

	p.next() // `{`
	var enumerators []types.EnumField
	next := int64(0)
	for p.peek().Kind != lex.RBrace && p.peek().Kind != lex.Eof {
		nameTok, ok := p.expect(lex.Ident)
		if !ok {
			return types.InvalidType, false
		}
		name := ident.Ident{Sym: p.sema.Interner.Intern(nameTok.Text), Span: nameTok.Span}
		value := next
		if p.peek().Kind == lex.Assign {
			p.next()
			e, ok := p.parseConditional()
			if !ok {
				return types.InvalidType, false
			}
			if ic, isConst := p.sema.Ctx.Expr(e).Kind.(ast.IntConst); isConst {
				value = ic.Value
			}
		}
		enumerators = append(enumerators, types.EnumField{Name: name, Value: value})
		next = value + 1
		if p.peek().Kind != lex.Comma {
			break
		}
		p.next()
	}
	if _, ok := p.expect(lex.RBrace); !ok {
		return types.InvalidType, false
	}

	ty := p.sema.FinalizeEnum(tagName, enumerators)
	if tagKey != ast.InvalidDecl {
		p.sema.FinalizeTag(tagKey, ty)
	}
	return ty, true
}

// parseTypeName parses an abstract type name — a DeclSpec with no
// storage class followed by an optional abstract declarator — as used by
// a cast or `sizeof(T)` (spec.md §3).
func (p *Parser) parseTypeName() (types.TypeKey, bool) {
	spec, ok := p.parseDeclSpec()
	if !ok {
		return types.InvalidType, false
	}
	_, chunks, ok := p.parseDirectDeclaratorChunksOnly()
	if !ok {
		return types.InvalidType, false
	}
	d := ast.Declarator{Spec: spec, Chunks: chunks, Span: spec.Span}
	return p.sema.LowerDeclarator(d), true
}

// parseDirectDeclaratorChunksOnly parses an (abstract) declarator's chunk
// sequence without requiring a name, reusing the same leading-pointer /
// direct-declarator machinery as parseDeclarator.
func (p *Parser) parseDirectDeclaratorChunksOnly() (*ident.Ident, []ast.DeclaratorChunk, bool) {
	leading, ok := p.parsePointerChunks()
	if !ok {
		return nil, nil, false
	}
	name, trailing, ok := p.parseDirectDeclarator()
	if !ok {
		return nil, nil, false
	}
	return name, append(leading, trailing...), true
}

// parseDeclarator parses one full declarator against spec: its leading
// pointer chunks, then its direct-declarator (identifier, or a
// parenthesized nested declarator, each followed by any array/function
// suffixes), producing the chunk sequence LowerDeclarator expects
// (spec.md §4.6, Glossary "Declarator chunk"). Parenthesized groups
// invert the usual precedence: what a closing paren's own trailing
// suffixes describe binds to the base type *before* whatever the
// parenthesized content itself adds — see the worked `int (*p)[10]`
// example this algorithm was derived against.
func (p *Parser) parseDeclarator(spec ast.DeclSpec) (ast.Declarator, bool) {
	start := p.peek().Span
	name, chunks, ok := p.parseDirectDeclaratorChunksOnly()
	if !ok {
		return ast.Declarator{}, false
	}
	return ast.Declarator{Name: name, Spec: spec, Chunks: chunks, Span: start.Merge(p.peek().Span)}, true
}

// parsePointerChunks consumes zero or more leading `*` [qualifiers], in
// encounter order — the order LowerDeclarator needs, since the star
// closest to the base type is the one written first (spec.md §4.6).
func (p *Parser) parsePointerChunks() ([]ast.DeclaratorChunk, bool) {
	var chunks []ast.DeclaratorChunk
	for p.peek().Kind == lex.BinOp && p.peek().Op == lex.OpMul {
		star := p.next()
		var qual types.Qualifier
		for p.peek().Kind == lex.Keyword {
			switch p.peek().Keyword {
			case lex.KwConst:
				qual.Const = true
			case lex.KwVolatile:
				qual.Volatile = true
			case lex.KwRestrict:
				qual.Restrict = true
			default:
				goto doneQuals
			}
			p.next()
		}
	doneQuals:
		chunks = append(chunks, ast.DeclaratorChunk{Kind: ast.ChunkPointer, Qual: qual, Span: star.Span})
	}
	return chunks, true
}

// parseDirectDeclarator parses the direct-declarator production: an
// identifier, or a parenthesized nested declarator, in either case
// followed by any array/function suffixes at this same syntactic level.
func (p *Parser) parseDirectDeclarator() (*ident.Ident, []ast.DeclaratorChunk, bool) {
	tok := p.peek()

	switch tok.Kind {
	case lex.Ident, lex.TypeName:
		p.next()
		name := &ident.Ident{Sym: p.sema.Interner.Intern(tok.Text), Span: tok.Span}
		suffixes, ok := p.parseSuffixChunks()
		if !ok {
			return nil, nil, false
		}
		reverseChunks(suffixes)
		return name, suffixes, true

	case lex.LParen:
		p.next()
		nestedName, nestedChunks, ok := p.parseDeclaratorNested()
		if !ok {
			return nil, nil, false
		}
		if _, ok := p.expect(lex.RParen); !ok {
			return nil, nil, false
		}
		outer, ok := p.parseSuffixChunks()
		if !ok {
			return nil, nil, false
		}
		reverseChunks(outer)
		return nestedName, append(outer, nestedChunks...), true

	default:
		// Abstract declarator: no identifier at this level, only
		// (possibly empty) suffixes.
		suffixes, ok := p.parseSuffixChunks()
		if !ok {
			return nil, nil, false
		}
		reverseChunks(suffixes)
		return nil, suffixes, true
	}
}

// parseDeclaratorNested parses the declarator nested inside a
// parenthesized group: its own leading pointers plus its own
// direct-declarator, exactly like a top-level parseDeclarator but without
// attaching a DeclSpec (the caller already has one in scope).
func (p *Parser) parseDeclaratorNested() (*ident.Ident, []ast.DeclaratorChunk, bool) {
	leading, ok := p.parsePointerChunks()
	if !ok {
		return nil, nil, false
	}
	name, trailing, ok := p.parseDirectDeclarator()
	if !ok {
		return nil, nil, false
	}
	return name, append(leading, trailing...), true
}

// parseSuffixChunks collects zero or more `[size]` / `(params)` suffixes
// in encounter order; the caller reverses the result, since the
// rightmost suffix binds to the base type before the ones to its left
// (`a[3][4]` is an array of 3 arrays of 4, not the reverse).
func (p *Parser) parseSuffixChunks() ([]ast.DeclaratorChunk, bool) {
	var chunks []ast.DeclaratorChunk
	for {
		switch p.peek().Kind {
		case lex.LBracket:
			lb := p.next()
			var qual types.Qualifier
			for p.peek().Kind == lex.Keyword {
				switch p.peek().Keyword {
				case lex.KwConst:
					qual.Const = true
				case lex.KwVolatile:
					qual.Volatile = true
				case lex.KwRestrict:
					qual.Restrict = true
				default:
					goto doneArrQuals
				}
				p.next()
			}
		doneArrQuals:
			var sizeSpec ast.ArraySizeSpec
			if p.peek().Kind != lex.RBracket {
				e, ok := p.parseAssignment()
				if !ok {
					return nil, false
				}
				if ic, isConst := p.sema.Ctx.Expr(e).Kind.(ast.IntConst); isConst {
					sizeSpec = ast.ArraySizeSpec{Kind: types.SizeFixed, Fixed: uint64(ic.Value)}
				} else {
					sizeSpec = ast.ArraySizeSpec{Kind: types.SizeVLA, VLA: e}
				}
			} else {
				sizeSpec = ast.ArraySizeSpec{Kind: types.SizeUnknown}
			}
			rb, ok := p.expect(lex.RBracket)
			if !ok {
				return nil, false
			}
			chunks = append(chunks, ast.DeclaratorChunk{Kind: ast.ChunkArray, Qual: qual, ArraySize: sizeSpec, Span: lb.Span.Merge(rb.Span)})

		case lex.LParen:
			lp := p.next()
			p.sema.Scope.Enter(scope.ParamList)
			var params []ast.Param
			variadic := false
			if p.peek().Kind != lex.RParen {
				for {
					if p.peek().Kind == lex.Ellipsis {
						p.next()
						variadic = true
						break
					}
					paramSpec, ok := p.parseDeclSpec()
					if !ok {
						p.sema.Scope.Exit()
						return nil, false
					}
					pname, pchunks, ok := p.parseDirectDeclaratorChunksOnlyForParam()
					if !ok {
						p.sema.Scope.Exit()
						return nil, false
					}
					params = append(params, ast.Param{Name: pname, Spec: paramSpec, Chunks: pchunks, Span: paramSpec.Span})
					if pname != nil {
						ty := p.sema.LowerDeclarator(ast.Declarator{Spec: paramSpec, Chunks: pchunks})
						declKey := p.sema.Ctx.NewDecl(ast.Decl{Kind: ast.DeclParam, Name: pname, Ty: ty, Span: pname.Span})
						p.sema.Scope.InsertIdent(pname.Sym, declKey)
					}
					if p.peek().Kind != lex.Comma {
						break
					}
					p.next()
					if p.peek().Kind == lex.Ellipsis {
						p.next()
						variadic = true
						break
					}
				}
			}
			p.sema.Scope.Exit()
			rp, ok := p.expect(lex.RParen)
			if !ok {
				return nil, false
			}
			chunks = append(chunks, ast.DeclaratorChunk{Kind: ast.ChunkFunction, Params: params, Variadic: variadic, Span: lp.Span.Merge(rp.Span)})

		default:
			return chunks, true
		}
	}
}

// parseDirectDeclaratorChunksOnlyForParam is parseDirectDeclaratorChunksOnly
// without requiring a scope push of its own, since parameter declarators
// are parsed with the enclosing function's ParamList scope already
// pushed by the caller.
func (p *Parser) parseDirectDeclaratorChunksOnlyForParam() (*ident.Ident, []ast.DeclaratorChunk, bool) {
	return p.parseDirectDeclaratorChunksOnly()
}

func reverseChunks(c []ast.DeclaratorChunk) {
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}
