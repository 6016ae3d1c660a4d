// Package pipeline runs N translation-unit pipelines concurrently, one
// preprocess→lex (→bind, if the caller supplies an AST) run per source file,
// matching spec section 5 ("Concurrency"): "a host may run N worker threads,
// each of which takes a translation unit through the pipeline to completion;
// translation units are independent, so no locking is needed between them."
//
// Grounded on jinterlante1206-AleutianLocal/services/trace/analysis's use of
// golang.org/x/sync/errgroup for bounded fan-out with first-error
// cancellation (errgroup.WithContext, per-item g.Go closures writing into a
// pre-sized result slice by index, g.Wait()); the worker-count cap pattern
// is the same repo's parallel.go maxParallelWorkers idiom.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roberto-raggi/cplusplus-go/internal/binder"
	"github.com/roberto-raggi/cplusplus-go/internal/config"
	"github.com/roberto-raggi/cplusplus-go/internal/control"
	"github.com/roberto-raggi/cplusplus-go/internal/cxast"
	"github.com/roberto-raggi/cplusplus-go/internal/cxlexer"
	"github.com/roberto-raggi/cplusplus-go/internal/cxtoken"
	"github.com/roberto-raggi/cplusplus-go/internal/logger"
	"github.com/roberto-raggi/cplusplus-go/internal/preprocessor"
	"github.com/roberto-raggi/cplusplus-go/internal/symbol"
	"github.com/roberto-raggi/cplusplus-go/internal/telemetry"
	"github.com/roberto-raggi/cplusplus-go/internal/translationunit"
)

// Unit is one source file to run through the pipeline. FileName and Source
// are required; everything else has a usable zero value.
type Unit struct {
	FileName string
	Source   string

	LexerFlags          config.LexerFlags
	PreprocessorOptions config.PreprocessorOptions
	SourceNeeded        preprocessor.SourceNeededFunc
	Diagnostics         logger.Client

	// AST is the already-parsed tree to bind, if any. This module carries
	// no parser (spec section 1 excludes it), so AST is nil for every
	// caller that only has raw source text; Result.Scope is nil in that
	// case too, and preprocess+lex still run so Result.TranslationUnit and
	// Result.Diagnostics are meaningful on their own.
	AST *cxast.Root
}

// Result is what one Unit produces after its pipeline stages run to
// completion. Nothing in this package sets Err; a Unit that WorkerPool.Run
// skips because ctx was canceled is left as a zero Result.
type Result struct {
	FileName        string
	TranslationUnit *translationunit.TranslationUnit
	Control         *control.Control
	Scope           *symbol.Scope
	Err             error
}

// Run drives one Unit's preprocess→lex→(bind) pipeline to completion with
// telemetry attributed to context.Background(); see RunContext for a
// version that takes a caller-supplied context (WorkerPool uses that one so
// spans nest under whatever the caller already started).
func Run(u Unit) Result {
	return RunContext(context.Background(), u)
}

// RunContext is Run with an explicit context, so telemetry spans nest
// correctly when called from WorkerPool.Run's errgroup. It never panics on
// malformed input: lexer and preprocessor errors surface as diagnostics on
// Unit.Diagnostics (spec section 6), not as a returned error. It returns
// no error of its own and leaves Result.Err nil.
func RunContext(ctx context.Context, u Unit) Result {
	diagnostics := u.Diagnostics
	if diagnostics == nil {
		diagnostics = logger.DiscardClient{}
	}
	diagnostics = &telemetryClient{wrapped: diagnostics, ctx: ctx}

	ctrl := control.New(diagnostics)
	tu := translationunit.New(u.FileName, u.Source, diagnostics)

	ppCtx, ppSpan := telemetry.StartStageSpan(ctx, "preprocess", u.FileName)
	ppStart := time.Now()
	pp := preprocessor.New(u.PreprocessorOptions, u.LexerFlags, diagnostics, u.SourceNeeded)
	pp.ProcessContext(ppCtx, tu, u.FileName, u.Source)
	telemetry.RecordStageDuration(ppCtx, "preprocess", time.Since(ppStart).Seconds())
	telemetry.SetStageSpanResult(ppSpan, tu.TokenCount(), false)
	ppSpan.End()

	result := Result{FileName: u.FileName, TranslationUnit: tu, Control: ctrl}

	if u.AST != nil {
		bindCtx, bindSpan := telemetry.StartStageSpan(ctx, "bind", u.FileName)
		bindStart := time.Now()
		b := binder.New(ctrl, tu)
		result.Scope = b.Bind(u.AST)
		telemetry.RecordStageDuration(bindCtx, "bind", time.Since(bindStart).Seconds())
		telemetry.SetStageSpanResult(bindSpan, result.Scope.Len(), false)
		bindSpan.End()
	}

	telemetry.RecordUnitProcessed(ctx)
	return result
}

// telemetryClient wraps a logger.Client so every diagnostic Run produces
// also increments telemetry's by-severity counter, without requiring every
// call site in internal/preprocessor or internal/translationunit to know
// about internal/telemetry.
type telemetryClient struct {
	wrapped logger.Client
	ctx     context.Context
}

func (c *telemetryClient) Report(d logger.Diagnostic) {
	telemetry.RecordDiagnostic(c.ctx, d.Severity)
	c.wrapped.Report(d)
}

// Tokenize runs only the lexer stage over u.Source, ignoring preprocessing
// entirely -- the shape cxfront's "tokens" subcommand needs, and useful for
// tests that want raw tokens without macro expansion in the way.
func Tokenize(u Unit) []cxtoken.Token {
	l := cxlexer.New(u.Source, u.LexerFlags)
	var out []cxtoken.Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Kind == cxtoken.EOF {
			return out
		}
	}
}

// WorkerPool runs a batch of Units concurrently, at most Concurrency
// pipelines in flight at once, and collects one Result per Unit in input
// order. A Concurrency of 0 or less means "one pipeline per Unit, no cap."
//
// WorkerPool.Run never returns early on a single Unit's diagnostics --
// diagnostics are not an error, they're Run's normal output (spec section
// 6). It returns a non-nil error only if ctx is canceled or one of the
// underlying errgroup goroutines panics-recovers into an error (it does
// not: Run has no error return of its own today, but the errgroup plumbing
// is kept so a future pipeline stage that legitimately needs to fail a TU
// -- e.g. a source_needed callback backed by a real filesystem -- has
// somewhere to report it without changing WorkerPool's shape).
type WorkerPool struct {
	Concurrency int
}

// Run drives every Unit in units through Run, respecting ctx cancellation,
// and returns one Result per Unit in the same order as units.
func (wp *WorkerPool) Run(ctx context.Context, units []Unit) ([]Result, error) {
	results := make([]Result, len(units))

	g, gCtx := errgroup.WithContext(ctx)
	if wp.Concurrency > 0 {
		g.SetLimit(wp.Concurrency)
	}

	for i, u := range units {
		i, u := i, u
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}
			results[i] = RunContext(gCtx, u)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("pipeline: worker pool: %w", err)
	}
	return results, nil
}
