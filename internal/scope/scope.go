// Package scope implements the scope manager (component C6): a stack of
// name-to-declaration maps covering C's four name spaces — ordinary
// identifiers, tags, labels, and struct/union members — consulted by the
// token stream (C4) to drive the lexer hack and by Sema (C7) to resolve
// and insert declarations.
//
// The map-per-scope design is grounded on lang/term/namespace.go's plain
// `map[string]Name` namespace; the treap-backed addressing scheme of
// lang/scope/namespace.go is not needed here, since C identifiers require
// only presence/lookup, never the total ordering a Prolog unifier needs
// for comparing unbound variables.
package scope

import (
	"github.com/anishon/cfront/internal/ast"
	"github.com/anishon/cfront/internal/symbol"
)

// A Kind classifies a Scope.
type Kind int

const (
	Global Kind = iota
	Function
	Block
	ParamList
	Record
)

func (k Kind) String() string {
	switch k {
	case Global:
		return "global"
	case Function:
		return "function"
	case Block:
		return "block"
	case ParamList:
		return "param-list"
	case Record:
		return "record"
	default:
		return "scope(?)"
	}
}

// ConstError is the error type returned by this package.
type ConstError string

func (e ConstError) Error() string { return string(e) }

// ErrRedefined is returned by InsertIdent/InsertTag/InsertMember when the
// name already has a binding in the same scope.
const ErrRedefined = ConstError("redefined in this scope")

// ErrWrongKind is returned when an operation is attempted against a scope
// of the wrong Kind, e.g. inserting a label outside any Function scope.
const ErrWrongKind = ConstError("operation not valid for this scope kind")

// A Scope is one level of the stack: a Kind and its three name-space maps.
// Tags and labels are separate maps from idents because C keeps tags
// (struct/union/enum names) and labels in name spaces disjoint from
// ordinary identifiers — `struct foo` and a variable `foo` never collide.
type Scope struct {
	Kind   Kind
	idents map[symbol.Symbol]ast.DeclKey
	tags   map[symbol.Symbol]ast.DeclKey
	labels map[symbol.Symbol]ast.StmtKey
	parent *Scope
}

func newScope(kind Kind, parent *Scope) *Scope {
	return &Scope{
		Kind:   kind,
		idents: make(map[symbol.Symbol]ast.DeclKey),
		tags:   make(map[symbol.Symbol]ast.DeclKey),
		labels: make(map[symbol.Symbol]ast.StmtKey),
		parent: parent,
	}
}

// A Manager owns the live scope stack for one translation unit. It is
// created once per parse and owned exclusively by the parser thread
// (spec.md §5: "The scope manager is owned by the parser thread; the
// lexer does not see it").
type Manager struct {
	top *Scope
}

// NewManager returns a Manager with a single Global scope pushed.
func NewManager() *Manager {
	return &Manager{top: newScope(Global, nil)}
}

// Enter pushes a new scope of the given kind atop the stack.
func (m *Manager) Enter(kind Kind) {
	m.top = newScope(kind, m.top)
}

// Exit pops the current scope. Its bindings remain reachable through any
// DeclKey/StmtKey already handed out (spec.md §4.1: "the popped scope's
// entries remain reachable through the declarations they named"); Exit
// only detaches the scope from the live stack.
//
// Exit panics if called with only the Global scope on the stack — that is
// a parser bug, not a recoverable condition.
func (m *Manager) Exit() {
	if m.top.parent == nil {
		panic("scope: Exit called with no scope above global")
	}
	m.top = m.top.parent
}

// Current returns the scope at the top of the stack.
func (m *Manager) Current() *Scope { return m.top }

// Depth reports how many scopes are pushed below (and including) the
// current one; Global alone has depth 1.
func (m *Manager) Depth() int {
	n := 0
	for s := m.top; s != nil; s = s.parent {
		n++
	}
	return n
}

// InsertIdent binds sym to decl in the ordinary-identifier namespace of
// the current scope. It fails ErrRedefined if sym already has a local
// binding; the caller (Sema) is responsible for deciding whether a
// collision is actually a compatible extern redeclaration, in which case
// it should call ReplaceIdent instead of treating ErrRedefined as fatal
// (spec.md §4.5).
func (m *Manager) InsertIdent(sym symbol.Symbol, decl ast.DeclKey) error {
	if _, ok := m.top.idents[sym]; ok {
		return ErrRedefined
	}
	m.top.idents[sym] = decl
	return nil
}

// ReplaceIdent rebinds sym in the current scope unconditionally, used by
// Sema once it has independently verified a redeclaration is compatible.
func (m *Manager) ReplaceIdent(sym symbol.Symbol, decl ast.DeclKey) {
	m.top.idents[sym] = decl
}

// LookupLocalIdent looks up sym in the current scope only.
func (m *Manager) LookupLocalIdent(sym symbol.Symbol) (ast.DeclKey, bool) {
	d, ok := m.top.idents[sym]
	return d, ok
}

// LookupChainIdent walks from the current scope up through its parents,
// returning the first binding of sym found. This is the lookup the token
// stream (C4) calls to decide whether an Ident lexeme should be
// reclassified as TypeName — it is the critical contract of spec.md §4.3.
func (m *Manager) LookupChainIdent(sym symbol.Symbol) (ast.DeclKey, bool) {
	for s := m.top; s != nil; s = s.parent {
		if d, ok := s.idents[sym]; ok {
			return d, true
		}
	}
	return ast.InvalidDecl, false
}

// InsertTag binds sym to decl in the tag namespace (struct/union/enum
// names) of the current scope.
func (m *Manager) InsertTag(sym symbol.Symbol, decl ast.DeclKey) error {
	if _, ok := m.top.tags[sym]; ok {
		return ErrRedefined
	}
	m.top.tags[sym] = decl
	return nil
}

// ReplaceTag rebinds sym in the tag namespace of the current scope
// unconditionally; used to finalize a forward-declared tag once its
// member list has been parsed.
func (m *Manager) ReplaceTag(sym symbol.Symbol, decl ast.DeclKey) {
	m.top.tags[sym] = decl
}

// LookupLocalTag looks up sym in the tag namespace of the current scope only.
func (m *Manager) LookupLocalTag(sym symbol.Symbol) (ast.DeclKey, bool) {
	d, ok := m.top.tags[sym]
	return d, ok
}

// LookupChainTag walks the scope chain for a tag binding of sym.
func (m *Manager) LookupChainTag(sym symbol.Symbol) (ast.DeclKey, bool) {
	for s := m.top; s != nil; s = s.parent {
		if d, ok := s.tags[sym]; ok {
			return d, true
		}
	}
	return ast.InvalidDecl, false
}

// InsertMember binds sym to decl in the member namespace of the current
// scope. It fails ErrWrongKind unless the current scope's Kind is Record
// (spec.md §4.1: "members live only in Record scopes"). Members reuse the
// ordinary-identifier map of their Record scope — a Record scope is never
// also used for ordinary identifiers, so there is no risk of collision
// with another namespace.
func (m *Manager) InsertMember(sym symbol.Symbol, decl ast.DeclKey) error {
	if m.top.Kind != Record {
		return ErrWrongKind
	}
	return m.InsertIdent(sym, decl)
}

// LookupLocalMember looks up a member by name directly on a Record scope.
func (m *Manager) LookupLocalMember(recordScope *Scope, sym symbol.Symbol) (ast.DeclKey, bool) {
	d, ok := recordScope.idents[sym]
	return d, ok
}

// nearestFunction returns the innermost Function scope at or above the
// current one, or nil if none is on the stack (file-scope goto is a
// parse error the caller must report separately).
func (m *Manager) nearestFunction() *Scope {
	for s := m.top; s != nil; s = s.parent {
		if s.Kind == Function {
			return s
		}
	}
	return nil
}

// InsertLabel binds sym to stmt in the label namespace of the nearest
// enclosing Function scope, regardless of how many Block scopes are
// nested inside it — C labels have function-wide scope. Fails
// ErrWrongKind if no Function scope is on the stack.
func (m *Manager) InsertLabel(sym symbol.Symbol, stmt ast.StmtKey) error {
	fn := m.nearestFunction()
	if fn == nil {
		return ErrWrongKind
	}
	if _, ok := fn.labels[sym]; ok {
		return ErrRedefined
	}
	fn.labels[sym] = stmt
	return nil
}

// LookupLabel finds sym in the label namespace of the nearest enclosing
// Function scope.
func (m *Manager) LookupLabel(sym symbol.Symbol) (ast.StmtKey, bool) {
	fn := m.nearestFunction()
	if fn == nil {
		return ast.InvalidStmt, false
	}
	s, ok := fn.labels[sym]
	return s, ok
}
