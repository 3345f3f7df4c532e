package tokstream

import (
	"github.com/anishon/cfront/internal/lex"
	"github.com/anishon/cfront/internal/symbol"
)

// DefaultCapacity is the bound of the token channel a channelSource
// reads from, matching spec.md §5's "bound is configured, typical 256".
const DefaultCapacity = 256

// channelSource runs the scanner on its own goroutine, pushing tokens
// into a bounded channel the Stream receives from — spec.md §5's
// parallel scheduling mode. Backpressure comes for free from the
// channel's bound: a full channel blocks the scanner goroutine's send,
// exactly as spec.md §5 describes ("scanner blocks on full queue").
//
// Grounded on the teacher's own channel-producing lexer entry point,
// lang/lexer.go's `func Lex(r io.Reader) <-chan Lexeme { ch := make(chan
// Lexeme, 4); go lex(r, ch); return ch }` — the same shape, generalized
// from a fixed buffer of 4 to the spec's configurable bound, and reading
// raw scanner tokens rather than pre-interned lexemes (spec.md §5's
// "shared resources" note: the symbol interner lives behind the parser,
// so only raw lexeme text crosses the channel, never a Symbol).
type channelSource struct {
	ch chan lex.Token
}

func (c *channelSource) next() lex.Token { return <-c.ch }

// runScanner feeds ch until Eof, then keeps resending Eof on demand
// rather than returning — lex.Scanner.Next is itself idempotent at end of
// input, so a parser that peeks past Eof more than once still gets a
// well-formed token instead of blocking forever on a channel nothing
// feeds anymore.
func runScanner(sc *lex.Scanner, ch chan<- lex.Token) {
	for {
		t := sc.Next()
		ch <- t
	}
}

// NewChannel starts sc running on its own goroutine, feeding a channel of
// the given capacity (DefaultCapacity if capacity <= 0), and returns a
// Stream reading from it.
func NewChannel(sc *lex.Scanner, interner *symbol.Interner, classifier Classifier, capacity int) *Stream {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	ch := make(chan lex.Token, capacity)
	go runScanner(sc, ch)
	return newStream(&channelSource{ch: ch}, interner, classifier)
}
