package lex

// State names a node of the scanner's DFA. The zero value, stateDead, is
// never reachable from stateStart via step — the scanner never stores a
// dead state, a failed step simply means "no transition" and ends the
// current match (spec.md §4.2).
type state int

const stateDead state = 0

// acceptInfo mirrors the generated-table shape of spec.md §6
// (`accept: [Option<{priority, token_kind_id}>; n_states]`): a state may
// or may not be accepting, and if several fragments could accept the same
// state, the lowest priority number wins (the fragment listed first).
// Our states never actually collide (the per-category fragments below are
// prefix-disjoint once a discriminating character is seen), so priority
// only matters for documenting the contract, not for resolving ties.
type acceptInfo struct {
	ok       bool
	priority int
	kind     Kind
}

// step is the scanner's transition function: step(state, char) -> next
// state, or stateDead if no transition exists. It is implemented as an
// explicit switch per state rather than a literal matrix — the same
// choice the teacher makes for its own Prolog scanner (lang/lexer.go's
// mutually recursive lexState functions): a switch *is* the transition
// function spec.md §4.2 asks for, and it is far less error-prone to
// author by hand than a hand-filled state x equivalence-class matrix.
// The states and their accepting status are documented per-category in
// tables.go.
func step(s state, r rune) state {
	switch s {
	case stStart:
		return startTransition(r)

	case stIdent:
		if isIdentCont(r) {
			return stIdent
		}
		return stateDead

	case stZero:
		switch {
		case r == 'x' || r == 'X':
			return stHexPrefix
		case r == '.':
			return stFloatFrac
		case r == 'e' || r == 'E':
			return stFloatExpSign
		case isDigit(r):
			return stIntDigits
		case isIntSuffix(r):
			return stIntSuffix
		default:
			return stateDead
		}

	case stIntDigits:
		switch {
		case isDigit(r):
			return stIntDigits
		case r == '.':
			return stFloatFrac
		case r == 'e' || r == 'E':
			return stFloatExpSign
		case isIntSuffix(r):
			return stIntSuffix
		default:
			return stateDead
		}

	case stIntSuffix:
		if isIntSuffix(r) {
			return stIntSuffix
		}
		return stateDead

	case stHexPrefix, stHexDigits:
		switch {
		case isHexDigit(r):
			return stHexDigits
		case isIntSuffix(r):
			return stIntSuffix
		default:
			return stateDead
		}

	case stDotLeading:
		switch {
		case isDigit(r):
			return stFloatFrac
		case r == '.':
			return stDotDot
		default:
			return stateDead
		}

	case stFloatFrac:
		switch {
		case isDigit(r):
			return stFloatFrac
		case r == 'e' || r == 'E':
			return stFloatExpSign
		case isFloatSuffix(r):
			return stFloatSuffix
		default:
			return stateDead
		}

	case stFloatExpSign:
		switch {
		case r == '+' || r == '-':
			return stFloatExpStart
		case isDigit(r):
			return stFloatExpDigits
		default:
			return stateDead
		}

	case stFloatExpStart:
		if isDigit(r) {
			return stFloatExpDigits
		}
		return stateDead

	case stFloatExpDigits:
		switch {
		case isDigit(r):
			return stFloatExpDigits
		case isFloatSuffix(r):
			return stFloatSuffix
		default:
			return stateDead
		}

	case stFloatSuffix:
		return stateDead

	case stCharBody:
		switch r {
		case '\\':
			return stCharEsc
		case '\'':
			return stCharClose
		case '\n':
			return stateDead // unterminated: the constant ends at the end of its line
		default:
			return stCharBody
		}
	case stCharEsc:
		return stCharBody
	case stCharClose:
		return stateDead

	case stStringBody:
		switch r {
		case '\\':
			return stStringEsc
		case '"':
			return stStringClose
		case '\n':
			return stateDead // unterminated: the literal ends at the end of its line
		default:
			return stStringBody
		}
	case stStringEsc:
		return stStringBody
	case stStringClose:
		return stateDead

	case stLineComment:
		if r == '\n' {
			return stateDead
		}
		return stLineComment

	case stBlockComment:
		if r == '*' {
			return stBlockCommentStar
		}
		return stBlockComment
	case stBlockCommentStar:
		switch r {
		case '/':
			return stBlockCommentClose
		case '*':
			return stBlockCommentStar
		default:
			return stBlockComment
		}
	case stBlockCommentClose:
		return stateDead

	case stSpace:
		if isSpace(r) {
			return stSpace
		}
		return stateDead

	default:
		return multiCharPunctStep(s, r)
	}
}

func isDigit(r rune) bool    { return '0' <= r && r <= '9' }
func isHexDigit(r rune) bool { return isDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F') }
func isSpace(r rune) bool    { return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\v' || r == '\f' }
func isIdentStart(r rune) bool {
	// U+FFFD is what CharAt yields for malformed UTF-8; it starts no token.
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || (r > 0x7f && r != 0xFFFD)
}
func isIdentCont(r rune) bool { return isIdentStart(r) || isDigit(r) }
func isIntSuffix(r rune) bool {
	switch r {
	case 'u', 'U', 'l', 'L':
		return true
	default:
		return false
	}
}
func isFloatSuffix(r rune) bool { return r == 'f' || r == 'F' || r == 'l' || r == 'L' }
