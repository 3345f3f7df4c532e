// Package cfront drives the whole pipeline end to end: source bytes in,
// a translation unit and its diagnostics out. It wires C1 (content) through
// C9 (diag) the way the teacher's top-level lang package wires its own
// lexer, parser, and op table together for a caller that only wants to
// hand it source text and get a parsed clause back.
package cfront

import (
	"github.com/anishon/cfront/internal/ast"
	"github.com/anishon/cfront/internal/content"
	"github.com/anishon/cfront/internal/ctx"
	"github.com/anishon/cfront/internal/diag"
	"github.com/anishon/cfront/internal/parser"
	"github.com/anishon/cfront/internal/scope"
	"github.com/anishon/cfront/internal/types"
)

// A Result is everything a caller gets back from a Compile call: the
// parsed translation unit, the context owning its interned decls,
// exprs, statements and types, and every diagnostic collected along
// the way.
type Result struct {
	Unit        ast.TranslationUnit
	Ctx         *ctx.Context
	Diagnostics []diag.Diagnostic
	HadError    bool
}

// Compile runs the full pipeline in Parallel mode: the scanner runs on
// its own goroutine, feeding the parser through a bounded channel
// (spec.md §5). This is the default — it is the configuration the
// spec's concurrency invariants are written against.
func Compile(src []byte) Result {
	return compile(src, parser.Parallel)
}

// CompileSequential runs the same pipeline with the scanner pulled
// directly on the parser's own goroutine — no channel, no second
// goroutine. Both modes must produce identical translation units for
// identical input (spec.md §5's "observably equivalent" requirement);
// this entry point exists so callers and tests can pick the simpler
// one, or compare the two against each other.
func CompileSequential(src []byte) Result {
	return compile(src, parser.Sequential)
}

func compile(src []byte, mode parser.Mode) Result {
	buf := content.New(src)
	diags := diag.NewChannel(diag.DefaultCapacity)

	p, c, _ := parser.New(buf, diags, mode)

	unit := p.Parse()

	diags.Close()
	ds := diags.Drain()

	return Result{
		Unit:        unit,
		Ctx:         c,
		Diagnostics: ds,
		HadError:    anyError(ds),
	}
}

func anyError(ds []diag.Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == diag.Error {
			return true
		}
	}
	return false
}

// SizeOf reports sizeof(ty) against r's compiler context, per spec.md
// §4.8's layout rules. It is exposed at the package root since a
// caller holding a Result has everything SizeOf needs but no direct
// import of internal/types' Resolver machinery.
func SizeOf(r *Result, ty types.TypeKey) uint64 {
	return types.SizeOf(r.Ctx.Type(ty), resolverFor(r))
}

// AlignOf reports alignof(ty), mirroring SizeOf.
func AlignOf(r *Result, ty types.TypeKey) uint64 {
	return types.AlignOf(r.Ctx.Type(ty), resolverFor(r))
}

// resolverFor adapts a Result's Context to types.Resolver. Context
// already implements ResolveKey; ResolveTag needs the live scope chain,
// which no longer exists once Compile has returned, so here every tag
// lookup by name reports not-found. A Result can still hold tag
// references (a StructRef/UnionRef/EnumRef, e.g. behind the pointer of
// a self-referential member); SizeOf/AlignOf of a StructRef or UnionRef
// reached through this resolver fall back to DefaultSize/DefaultAlign.
func resolverFor(r *Result) types.Resolver {
	return ctxResolver{r.Ctx}
}

// ctxResolver is a Context with a ResolveTag that never finds a tag.
type ctxResolver struct{ *ctx.Context }

func (ctxResolver) ResolveTag(string) (types.Type, bool) { return types.Type{}, false }

// NewScopeManager exposes scope.NewManager for callers that want to
// drive the parser package directly (e.g. an incremental/IDE-style
// caller reusing one Manager across edits) instead of going through
// Compile's one-shot pipeline.
func NewScopeManager() *scope.Manager {
	return scope.NewManager()
}
