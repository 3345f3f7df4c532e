// Package tokstream implements the token stream (component C4): a
// peekable, one-token-lookahead buffer over a scanner that applies C's
// lexer-hack reclassification — an Ident lexeme becomes a TypeName
// lexeme when it names a typedef in the scope live at the moment the
// token is popped or peeked, never at the moment it was scanned
// (spec.md §4.3).
//
// Two Sources exist (pull.go, channel.go) behind the same rawSource
// contract, so Peek/Next/Expect and the reclassification logic here are
// shared verbatim between the sequential and parallel concurrency modes
// of spec.md §5 — "both must be supported by the same parser code".
package tokstream

import (
	"fmt"

	"github.com/anishon/cfront/internal/lex"
	"github.com/anishon/cfront/internal/span"
	"github.com/anishon/cfront/internal/symbol"
)

// A Token is a lex.Token enriched with its interned Symbol, valid when
// Kind is Ident or TypeName. Every other field mirrors lex.Token.
type Token struct {
	Span    span.Span
	Kind    lex.Kind
	Text    string
	Keyword lex.Keyword
	Op      lex.Op
	Sym     symbol.Symbol
}

func (t Token) String() string {
	if t.Kind == lex.Eof {
		return "EOF"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

// A Classifier answers whether sym currently names a typedef — it is the
// live query this package runs against the parser's scope manager and
// compiler context on every Ident token it yields. A tokstream.Stream
// never imports package scope or package ctx directly, accepting this
// interface instead: package scope's Kind stack and package ctx's Decl
// table are wiring the *parser* owns, not the token stream (spec.md §5:
// "the scope manager is owned by the parser thread; the lexer does not
// see it" — by the same reasoning, neither does the stream that merely
// replays the lexer's output to the parser).
type Classifier interface {
	IsTypeName(sym symbol.Symbol) bool
}

// rawSource is the contract a Stream needs from whatever actually
// produces tokens: pull.go's direct scanner call, or channel.go's
// channel receive.
type rawSource interface {
	next() lex.Token
}

// A Stream is the peekable token-stream of spec.md §4.3.
type Stream struct {
	raw        rawSource
	interner   *symbol.Interner
	classifier Classifier
	buffered   *Token
}

func newStream(raw rawSource, interner *symbol.Interner, classifier Classifier) *Stream {
	return &Stream{raw: raw, interner: interner, classifier: classifier}
}

// Peek returns the head token without consuming it.
func (s *Stream) Peek() Token {
	s.fill()
	return *s.buffered
}

// Next returns and consumes the head token.
func (s *Stream) Next() Token {
	s.fill()
	t := *s.buffered
	s.buffered = nil
	return t
}

// An ExpectError reports that Expect found a token of the wrong Kind.
type ExpectError struct {
	Want lex.Kind
	Got  Token
}

func (e *ExpectError) Error() string {
	return fmt.Sprintf("expected %s, found %s", e.Want, e.Got)
}

// Expect consumes and returns the head token if it has the given Kind,
// otherwise leaves it buffered and returns an *ExpectError — leaving the
// token in place lets the parser's recovery logic inspect or resynchronize
// on it without losing it.
func (s *Stream) Expect(kind lex.Kind) (Token, error) {
	s.fill()
	if s.buffered.Kind != kind {
		return Token{}, &ExpectError{Want: kind, Got: *s.buffered}
	}
	return s.Next(), nil
}

// fill ensures s.buffered holds the classified head token, pulling one
// raw token and applying the lexer-hack reclassification the moment it
// does — this is what makes the reclassification observe the scope as of
// pop/peek time rather than scan time: the classifier runs here, lazily,
// not when the raw token was produced.
func (s *Stream) fill() {
	if s.buffered != nil {
		return
	}
	raw := s.raw.next()
	t := Token{
		Span:    raw.Span,
		Kind:    raw.Kind,
		Text:    raw.Text,
		Keyword: raw.Keyword,
		Op:      raw.Op,
	}
	if raw.Kind == lex.Ident {
		sym := s.interner.Intern(raw.Text)
		t.Sym = sym
		if s.classifier != nil && s.classifier.IsTypeName(sym) {
			t.Kind = lex.TypeName
		}
	}
	s.buffered = &t
}
