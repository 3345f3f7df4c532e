package tokstream

import (
	"github.com/anishon/cfront/internal/lex"
	"github.com/anishon/cfront/internal/symbol"
)

// pullSource drives a *lex.Scanner directly on the calling goroutine —
// spec.md §5's sequential scheduling mode, where "lexer and parser
// interleave on one thread; lexer is pull-driven via next_token()".
type pullSource struct {
	sc *lex.Scanner
}

func (p *pullSource) next() lex.Token { return p.sc.Next() }

// NewPull returns a Stream that pulls tokens directly from sc on the
// calling goroutine, with no channel and no second goroutine involved.
func NewPull(sc *lex.Scanner, interner *symbol.Interner, classifier Classifier) *Stream {
	return newStream(&pullSource{sc: sc}, interner, classifier)
}
