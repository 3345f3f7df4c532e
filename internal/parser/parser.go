// Package parser implements the recursive-descent parser (component
// C5): translation-unit → external-declaration → declaration |
// function-definition → declarators → statements → expressions, driven
// through C4's peek/next/expect contract so the same parser code runs
// unchanged against either concurrency mode of spec.md §5.
package parser

import (
	"github.com/anishon/cfront/internal/ast"
	"github.com/anishon/cfront/internal/content"
	"github.com/anishon/cfront/internal/ctx"
	"github.com/anishon/cfront/internal/diag"
	"github.com/anishon/cfront/internal/lex"
	"github.com/anishon/cfront/internal/scope"
	"github.com/anishon/cfront/internal/sema"
	"github.com/anishon/cfront/internal/symbol"
	"github.com/anishon/cfront/internal/tokstream"
)

// maxRecoveries bounds how many syntax errors in a row the parser will
// swallow before giving up on the current open brace/paren group as
// truly unrecoverable (spec.md §4.4: "fatal only at unexpected EOF
// inside an open brace/paren group after N recoveries").
const maxRecoveries = 25

// A Parser holds everything C5 needs: the token stream it reads from,
// the Sema it calls at each reduction, and a running count of
// consecutive error recoveries used to detect a truly stuck parse.
type Parser struct {
	toks       *tokstream.Stream
	sema       *sema.Sema
	diags      *diag.Channel
	recoveries int

	// queue holds tokens pulled ahead of where the grammar has
	// committed, needed only for the handful of two-token lookahead
	// decisions C's grammar is ambiguous on at one token — chiefly,
	// telling a cast `(T)x` apart from a parenthesized expression `(x)`
	// by inspecting what follows `(` (spec.md §4.4).
	queue []tokstream.Token
}

// Mode selects which concurrency mode of spec.md §5 a Parse call uses.
type Mode int

const (
	// Sequential pulls tokens directly from the scanner on the calling
	// goroutine — no channel, no second goroutine.
	Sequential Mode = iota
	// Parallel runs the scanner on its own goroutine, feeding a bounded
	// channel the parser receives from.
	Parallel
)

// New builds a Parser reading buf through a scanner in the given Mode,
// reporting diagnostics to diags, and sharing interner between the token
// stream's reclassification and Sema's symbol lookups. The compiler
// Context and scope.Manager are returned alongside the Parser so a
// caller (package cfront) can read the context once parsing is done.
func New(buf *content.Buffer, diags *diag.Channel, mode Mode) (*Parser, *ctx.Context, *scope.Manager) {
	interner := symbol.NewInterner()
	scopeMgr := scope.NewManager()
	c := ctx.New()
	sm := sema.New(c, scopeMgr, interner, diags)

	sc := lex.NewScanner(buf, diags)

	var toks *tokstream.Stream
	switch mode {
	case Parallel:
		toks = tokstream.NewChannel(sc, interner, sm, tokstream.DefaultCapacity)
	default:
		toks = tokstream.NewPull(sc, interner, sm)
	}

	return &Parser{toks: toks, sema: sm, diags: diags}, c, scopeMgr
}

// fillTo ensures the lookahead queue holds at least n+1 tokens.
func (p *Parser) fillTo(n int) {
	for len(p.queue) <= n {
		p.queue = append(p.queue, p.toks.Next())
	}
}

func (p *Parser) peek() tokstream.Token {
	p.fillTo(0)
	return p.queue[0]
}

// peek2 returns the token one past the head, without consuming either.
func (p *Parser) peek2() tokstream.Token {
	p.fillTo(1)
	return p.queue[1]
}

func (p *Parser) next() tokstream.Token {
	p.fillTo(0)
	t := p.queue[0]
	p.queue = p.queue[1:]
	return t
}

// expect consumes and returns the head token if it has kind, reporting a
// ParserError and leaving it in place otherwise (spec.md §4.4:
// `Expect{what}` / `ExpectButFound{expect, found}`).
func (p *Parser) expect(kind lex.Kind) (tokstream.Token, bool) {
	tok := p.peek()
	if tok.Kind != kind {
		p.diags.Errorf(tok.Span, "parse/expect-but-found", "expected %s, found %s", kind, tok.Kind)
		return tok, false
	}
	return p.next(), true
}

// synchronize discards tokens until the next `;`, `}`, or Eof, per
// spec.md §4.4's recovery rule, then increments and checks the
// consecutive-recovery counter.
func (p *Parser) synchronize() {
	p.recoveries++
	for {
		tok := p.peek()
		switch tok.Kind {
		case lex.Semi:
			p.next()
			return
		case lex.RBrace, lex.Eof:
			return
		default:
			p.next()
		}
	}
}

// stuck reports whether the parser has exceeded its recovery budget,
// the signal Parse and parseCompoundStmt use to abort a hopelessly
// malformed file rather than loop forever re-synchronizing.
func (p *Parser) stuck() bool { return p.recoveries > maxRecoveries }

// resetRecoveries is called after any successful nonterminal so a string
// of early mistakes doesn't count against a file that goes on to parse
// cleanly.
func (p *Parser) resetRecoveries() { p.recoveries = 0 }

// Parse consumes the whole token stream and returns the translation
// unit: the ordered sequence of external declarations (spec.md §3).
func (p *Parser) Parse() ast.TranslationUnit {
	var unit ast.TranslationUnit
	for {
		tok := p.peek()
		if tok.Kind == lex.Eof {
			break
		}
		ext, ok := p.parseExternalDecl()
		if !ok {
			p.synchronize()
			if p.stuck() {
				break
			}
			continue
		}
		p.resetRecoveries()
		unit.Decls = append(unit.Decls, ext)
	}
	return unit
}
