package lex

import (
	"github.com/anishon/cfront/internal/content"
	"github.com/anishon/cfront/internal/diag"
	"github.com/anishon/cfront/internal/span"
)

// A Scanner drives the DFA of dfa.go/tables.go over a content.Buffer,
// producing one Token per call to Next (spec.md §4.2). It is the pull
// side of the lexer/parser pipeline of spec.md §5 — package tokstream
// wraps a Scanner either directly (the sequential mode) or behind a
// goroutine and channel (the parallel mode); the Scanner itself knows
// nothing about which mode its caller picked.
type Scanner struct {
	buf   *content.Buffer
	diags *diag.Channel
	pos   int

	lastBinOpState state
}

// NewScanner returns a Scanner reading from buf. Diagnostics are reported
// to diags; the Scanner never stops on a lex error, matching spec.md §7's
// recovery policy of skip-and-continue.
func NewScanner(buf *content.Buffer, diags *diag.Channel) *Scanner {
	return &Scanner{buf: buf, diags: diags}
}

// Next returns the next token, silently discarding whitespace and
// comments and recovering from any lex error by skipping the offending
// bytes (spec.md §4.2, §7). Calling Next past the end of input
// repeatedly yields Eof tokens at the same position.
func (s *Scanner) Next() Token {
	for {
		tok, ok := s.lexOne()
		if !ok {
			continue // invalid byte skipped and reported; retry
		}
		switch tok.Kind {
		case spaceKind, commentKind:
			continue
		default:
			return s.classify(tok)
		}
	}
}

// classify fills in Keyword/Op payload for tokens whose Kind alone
// doesn't carry it, applying C3's keyword post-classification to
// identifier lexemes.
func (s *Scanner) classify(tok Token) Token {
	switch tok.Kind {
	case Ident:
		if kw, ok := classifyKeyword(tok.Text); ok {
			tok.Kind = Keyword
			tok.Keyword = kw
		}
	case BinOp:
		op, ok := binOpOf(s.lastBinOpState)
		if ok {
			tok.Op = op
		}
	}
	return tok
}

// lastBinOpState records the accepting state of the most recently
// returned BinOp-kind match so classify can recover its Op; set by
// lexOne immediately before it returns a BinOp match.
//
// This is simpler than threading the state through Token itself, since
// only the scanner ever needs it and it is only read back one call
// later, synchronously, on the same goroutine.
func (s *Scanner) setLastBinOpState(st state) { s.lastBinOpState = st }

// lexOne scans one lexeme starting at s.pos using longest-match with
// priority-ordered accepts: advance while a transition exists,
// remembering the last accepting state and its end offset; on reaching a
// dead state, emit from the remembered accept and rewind the cursor
// there. A character that starts no token is reported and skipped on its
// own. An unterminated block comment is reported and skipped to the end
// of input. Otherwise, if no accept was ever seen (an unterminated
// character constant or string literal, whose body ends at a newline),
// report it and skip every byte scanned, i.e. to the end of its line.
// The bool result is false exactly when the caller should retry (input
// was skipped, no token produced).
func (s *Scanner) lexOne() (Token, bool) {
	start := s.pos
	r, w, ok := s.buf.CharAt(start)
	if !ok {
		return Token{Span: span.New(start, start), Kind: Eof}, true
	}

	cur := startTransition(r)
	if cur == stateDead {
		s.diags.Errorf(span.New(start, start+w), "lex/unknown-symbol", "unexpected character %q", r)
		s.pos = start + w
		return Token{}, false
	}

	pos := start + w
	lastState := cur
	lastPos := pos
	_, lastOK := accept[cur]

	for {
		r2, w2, ok2 := s.buf.CharAt(pos)
		if !ok2 {
			break
		}
		next := step(cur, r2)
		if next == stateDead {
			break
		}
		cur = next
		pos += w2
		if _, has := accept[cur]; has {
			lastState = cur
			lastPos = pos
			lastOK = true
		}
	}

	// Special-case the two named lex errors that need a concrete span
	// covering the whole malformed lexeme, rather than the generic
	// longest-match rewind: an exponent marker with no digits, and a hex
	// prefix with no hex digits.
	if cur == stFloatExpSign || cur == stFloatExpStart {
		s.diags.Errorf(span.New(start, pos), "lex/empty-exponent", "floating constant exponent has no digits")
		s.pos = pos
		return Token{Span: span.New(start, pos), Kind: FloatLit, Text: s.buf.Slice(span.New(start, pos))}, true
	}
	if cur == stHexPrefix {
		s.diags.Errorf(span.New(start, pos), "lex/invalid-constant", "hexadecimal constant requires at least one hex digit")
		s.pos = pos
		return Token{Span: span.New(start, pos), Kind: IntLit, Text: s.buf.Slice(span.New(start, pos))}, true
	}

	// A block comment still open at end of input: stSlash already
	// accepted, so without this check the `/` would be emitted and the
	// comment text lexed as code.
	if cur == stBlockComment || cur == stBlockCommentStar {
		s.diags.Errorf(span.New(start, pos), "lex/unterminated-comment", "comment is not terminated")
		s.pos = pos
		return Token{}, false
	}

	if !lastOK {
		switch cur {
		case stCharBody, stCharEsc:
			s.diags.Errorf(span.New(start, pos), "lex/missing-terminating", "missing terminating ' character")
		case stStringBody, stStringEsc:
			s.diags.Errorf(span.New(start, pos), "lex/missing-terminating", `missing terminating " character`)
		case stBlockComment, stBlockCommentStar:
			s.diags.Errorf(span.New(start, pos), "lex/unterminated-comment", "comment is not terminated")
		default:
			s.diags.Errorf(span.New(start, pos), "lex/unknown-symbol", "unrecognized token")
		}
		s.pos = pos
		return Token{}, false
	}

	sp := span.New(start, lastPos)
	s.pos = lastPos
	if lastState == stLineComment || lastState == stBlockCommentClose {
		return Token{Span: sp, Kind: commentKind}, true
	}
	if lastState == stSpace {
		return Token{Span: sp, Kind: spaceKind}, true
	}
	info := accept[lastState]
	tok := Token{Span: sp, Kind: info.kind, Text: s.buf.Slice(sp)}
	if info.kind == BinOp {
		s.setLastBinOpState(lastState)
	}
	return tok, true
}
