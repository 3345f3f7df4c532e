// Package content owns the source bytes of a translation unit and converts
// byte ranges into decoded text (component C1 of spec.md).
package content

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/anishon/cfront/internal/span"
)

// Norm is the form to which source text is normalized before it is
// addressed by byte offset. The teacher normalizes Prolog source the same
// way (lang/lexer.go: const Norm = norm.NFD); C source is normalized to
// NFC instead so that precomposed identifiers compare equal to themselves
// byte-for-byte, which matters once spans are reused as map keys during
// scope lookups.
const Norm = norm.NFC

// A Buffer owns the full, normalized source text of one translation unit.
type Buffer struct {
	bytes []byte
}

// New normalizes src and wraps it in a Buffer.
func New(src []byte) *Buffer {
	return &Buffer{bytes: Norm.Bytes(src)}
}

// NewString is a convenience wrapper over New.
func NewString(src string) *Buffer {
	return New([]byte(src))
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	return len(b.bytes)
}

// Slice returns the text in s. It panics if s is out of range; callers
// only ever build Spans from offsets this Buffer itself produced.
func (b *Buffer) Slice(s span.Span) string {
	return string(b.bytes[s.Start:s.End])
}

// CharAt decodes the rune starting at byte offset off, returning the rune
// and its width in bytes. It reports ok=false at end of buffer.
//
// Decoding follows RFC 3629: overlong and otherwise malformed encodings
// decode to utf8.RuneError with width 1, which the scanner reports as a
// lex error (spec.md §4.1).
func (b *Buffer) CharAt(off int) (r rune, width int, ok bool) {
	if off >= len(b.bytes) {
		return 0, 0, false
	}
	r, width = utf8.DecodeRune(b.bytes[off:])
	return r, width, true
}

// Bytes returns the raw underlying bytes. Callers must not mutate the
// returned slice.
func (b *Buffer) Bytes() []byte {
	return b.bytes
}
