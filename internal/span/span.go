// Package span implements half-open byte intervals into a content buffer.
package span

import "fmt"

// A Span is a half-open byte interval [Start, End) into a content buffer.
// The zero Span is empty at offset zero.
type Span struct {
	Start int
	End   int
}

// New builds a Span, panicking if the interval is malformed.
func New(start, end int) Span {
	if start > end {
		panic(fmt.Sprintf("span: start %d > end %d", start, end))
	}
	return Span{Start: start, End: end}
}

// Merge returns the smallest Span covering both s and other.
func (s Span) Merge(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Len returns the number of bytes spanned.
func (s Span) Len() int {
	return s.End - s.Start
}

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
