package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roberto-raggi/cplusplus-go/internal/logger"
)

func TestRecordersDoNotPanicWithoutAConfiguredProvider(t *testing.T) {
	ctx := context.Background()

	assert.NotPanics(t, func() {
		RecordUnitProcessed(ctx)
		RecordDiagnostic(ctx, logger.Warning)
		RecordDiagnostic(ctx, logger.Error)
		RecordMacroExpansionDepth(ctx, 4)
		RecordStageDuration(ctx, "lex", 0.001)
	})
}

func TestStageSpanLifecycleDoesNotPanic(t *testing.T) {
	ctx := context.Background()

	assert.NotPanics(t, func() {
		_, span := StartStageSpan(ctx, "bind", "a.cpp")
		SetStageSpanResult(span, 3, false)
		span.End()
	})
}

func TestInitInstallsARealTracerProviderAndShutsDownCleanly(t *testing.T) {
	shutdown, err := Init(context.Background(), "telemetry-test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	_, span := StartStageSpan(context.Background(), "preprocess", "a.cpp")
	assert.True(t, span.SpanContext().IsValid(), "a span started after Init should carry a real trace/span ID")
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}
