package tracing

import (
	"context"

	"github.com/akugone/kawayC/infrastructure/logger"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const TracerName = "kawayc/kyc"

// LogExporter hands every finished span to the process logger. Spans only
// carry stage names, timings, statuses and error kinds, never document data.
type LogExporter struct{}

func (LogExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		data := map[string]interface{}{
			"name":        span.Name(),
			"duration_ms": span.EndTime().Sub(span.StartTime()).Milliseconds(),
			"status":      span.Status().Code.String(),
		}
		for _, attr := range span.Attributes() {
			data[string(attr.Key)] = attr.Value.Emit()
		}
		logger.Info("span ended", logger.LoggerOptions{Key: "span", Data: data})
	}
	return nil
}

func (LogExporter) Shutdown(context.Context) error {
	return nil
}

// InitializeTracer installs a provider that exports synchronously through
// LogExporter and registers it globally.
func InitializeTracer() *sdktrace.TracerProvider {
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSyncer(LogExporter{}),
	)
	otel.SetTracerProvider(provider)
	return provider
}

// Shutdown flushes and stops the provider.
func Shutdown(ctx context.Context, provider *sdktrace.TracerProvider) {
	if provider == nil {
		return
	}
	if err := provider.Shutdown(ctx); err != nil {
		logger.Warning("could not shut down tracer", logger.LoggerOptions{Key: "error", Data: err.Error()})
	}
}
