// Package telemetry instruments the pipeline stages of spec section 4
// (preprocess, which also lexes, and bind) with OpenTelemetry spans and
// metrics: one span per stage per translation unit, plus counters for
// translation units processed, diagnostics emitted by severity, and a
// histogram of macro-expansion nesting depth.
//
// Grounded on
// jinterlante1206-AleutianLocal/services/trace/graph/metrics.go: a
// package-level tracer/meter pair, a sync.Once-guarded initMetrics that
// registers every instrument once and latches the first registration
// error, recordX helpers that call initMetrics defensively before
// recording, and startXSpan/setXSpanResult helper pairs for span
// lifecycle.
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/roberto-raggi/cplusplus-go/internal/logger"
)

var (
	tracer = otel.Tracer("cplusplus-go/pipeline")
	meter  = otel.Meter("cplusplus-go/pipeline")
)

var (
	unitsProcessed     metric.Int64Counter
	diagnosticsEmitted metric.Int64Counter
	macroExpansionDepth metric.Int64Histogram
	stageLatency       metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics registers every instrument exactly once; safe to call from
// every recordX helper on every call.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		unitsProcessed, err = meter.Int64Counter(
			"cxfront_translation_units_total",
			metric.WithDescription("Total translation units run through the pipeline"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		diagnosticsEmitted, err = meter.Int64Counter(
			"cxfront_diagnostics_total",
			metric.WithDescription("Total diagnostics emitted, by severity"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		macroExpansionDepth, err = meter.Int64Histogram(
			"cxfront_macro_expansion_depth",
			metric.WithDescription("Recursive macro expansion nesting depth observed per expansion"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		stageLatency, err = meter.Float64Histogram(
			"cxfront_stage_duration_seconds",
			metric.WithDescription("Duration of one pipeline stage (preprocess, lex, bind) for one translation unit"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// Init installs a real (but exporter-less) SDK TracerProvider tagged with
// serviceName as otel's global provider, so StartStageSpan produces spans
// that actually record attributes and propagate a real trace/span ID
// instead of the no-op spans otel's default global provider hands out
// before anything calls otel.SetTracerProvider. It has nowhere to export
// those spans to -- cmd/cxfront and cmd/cxserver are standalone binaries
// with no Jaeger/OTLP collector configured for them the way
// jinterlante1206-AleutianLocal/services/orchestrator's is -- so this
// stops short of that repo's otlptracegrpc exporter and batch processor;
// Init exists so attribute recording, sampling, and resource tagging are
// all real rather than so spans leave the process. Callers should defer
// the returned shutdown.
func Init(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	res, err := resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", serviceName),
	))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithResource(res))
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// RecordUnitProcessed increments the translation-unit counter. fileName is
// not attached as an attribute (it is unbounded cardinality); callers that
// need per-file breakdown should consult the span trail instead.
func RecordUnitProcessed(ctx context.Context) {
	if initMetrics() != nil {
		return
	}
	unitsProcessed.Add(ctx, 1)
}

// RecordDiagnostic increments the diagnostics counter, tagged by severity.
func RecordDiagnostic(ctx context.Context, severity logger.Severity) {
	if initMetrics() != nil {
		return
	}
	diagnosticsEmitted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("severity", severity.String()),
	))
}

// RecordMacroExpansionDepth records the deepest macro-expansion nesting
// observed in one preprocessor run.
func RecordMacroExpansionDepth(ctx context.Context, depth int) {
	if initMetrics() != nil {
		return
	}
	macroExpansionDepth.Record(ctx, int64(depth))
}

// RecordStageDuration records how long one named stage took for one
// translation unit.
func RecordStageDuration(ctx context.Context, stage string, seconds float64) {
	if initMetrics() != nil {
		return
	}
	stageLatency.Record(ctx, seconds, metric.WithAttributes(
		attribute.String("stage", stage),
	))
}

// StartStageSpan starts a span named "pipeline.<stage>" for one
// translation unit's pass through that stage.
func StartStageSpan(ctx context.Context, stage, fileName string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "pipeline."+stage, trace.WithAttributes(
		attribute.String("cxfront.file", fileName),
	))
}

// SetStageSpanResult annotates span with the stage's outcome: the number
// of tokens produced (preprocess/lex) or symbols bound (bind), and whether
// any diagnostic at Error severity or above was reported.
func SetStageSpanResult(span trace.Span, count int, hadError bool) {
	span.SetAttributes(
		attribute.Int("cxfront.count", count),
		attribute.Bool("cxfront.had_error", hadError),
	)
}
