// Package symbol interns identifier and literal text into small stable
// handles. Per the design notes in spec.md §9 ("Global interning"), the
// pool is owned by one compiler context for the lifetime of one
// translation unit — there is no process-wide symbol table.
package symbol

// A Symbol is a stable handle to interned text. Equality of Symbols implies
// equality of the underlying text; Symbols from different Interners must
// never be compared.
type Symbol int32

// Invalid is never returned by Interner.Intern, whose first Symbol is 0.
const Invalid Symbol = -1

// An Interner assigns stable Symbols to distinct strings. It is not safe
// for concurrent use; per spec.md §5 ("Shared resources"), the lexer
// passes raw lexeme text across the token channel and only the parser
// side (via the token stream, §4.3) interns identifiers, so the Interner
// is only ever touched from the parsing thread.
type Interner struct {
	ids   map[string]Symbol
	names []string
}

// NewInterner returns an empty Interner.
func NewInterner() *Interner {
	return &Interner{ids: make(map[string]Symbol)}
}

// Intern returns the Symbol for text, assigning a new one if this is the
// first occurrence.
func (in *Interner) Intern(text string) Symbol {
	if s, ok := in.ids[text]; ok {
		return s
	}
	s := Symbol(len(in.names))
	in.names = append(in.names, text)
	in.ids[text] = s
	return s
}

// Name returns the text for a Symbol previously returned by Intern.
// Name panics on an out-of-range Symbol; any Symbol returned by this
// Interner's own Intern is always in range.
func (in *Interner) Name(s Symbol) string {
	return in.names[s]
}

// Len returns the number of distinct interned strings.
func (in *Interner) Len() int {
	return len(in.names)
}
