package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// Metrics holds all application metrics
type Metrics struct {
	PipelineRunCount    metric.Int64Counter
	PipelineRunDuration metric.Float64Histogram
	StageDuration       metric.Float64Histogram
	FallbackCount       metric.Int64Counter
	CasesProcessed      metric.Int64Counter
	AlignmentMatchRatio metric.Float64Histogram
}

// Setup initializes OpenTelemetry
func Setup(ctx context.Context, serviceName, serviceVersion, endpoint string) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	// Set up trace exporter
	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	// Set up trace provider
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	// Set up metric exporter
	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)

	// Shutdown function
	shutdown := func(ctx context.Context) error {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
		return meterProvider.Shutdown(ctx)
	}

	return shutdown, nil
}

// InitMetrics initializes application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/radyosim/backend")

	pipelineRunCount, err := meter.Int64Counter(
		"pipeline.run.count",
		metric.WithDescription("Number of pipeline runs"),
	)
	if err != nil {
		return nil, err
	}

	pipelineRunDuration, err := meter.Float64Histogram(
		"pipeline.run.duration",
		metric.WithDescription("End-to-end pipeline run duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"pipeline.stage.duration",
		metric.WithDescription("Pipeline stage duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	fallbackCount, err := meter.Int64Counter(
		"pipeline.transcription.fallback.count",
		metric.WithDescription("Number of transcription fallbacks to the baseline model"),
	)
	if err != nil {
		return nil, err
	}

	casesProcessed, err := meter.Int64Counter(
		"batch.cases.processed",
		metric.WithDescription("Number of cases processed in batch runs"),
	)
	if err != nil {
		return nil, err
	}

	alignmentMatchRatio, err := meter.Float64Histogram(
		"audit.alignment.match_ratio",
		metric.WithDescription("Per-case alignment match ratio"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		PipelineRunCount:    pipelineRunCount,
		PipelineRunDuration: pipelineRunDuration,
		StageDuration:       stageDuration,
		FallbackCount:       fallbackCount,
		CasesProcessed:      casesProcessed,
		AlignmentMatchRatio: alignmentMatchRatio,
	}, nil
}

// StartSpan starts a new trace span
func StartSpan(ctx context.Context, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer("github.com/radyosim/backend")
	return tracer.Start(ctx, spanName)
}

// RecordError records an error in the current span
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
}

// RecordPipelineRun records one pipeline run outcome
func RecordPipelineRun(ctx context.Context, metrics *Metrics, provider, model, status string, duration time.Duration) {
	if metrics == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", provider),
		attribute.String("ai.model", model),
		attribute.String("case.status", status),
	}
	metrics.PipelineRunCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.PipelineRunDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordStage records the duration of one pipeline stage
func RecordStage(ctx context.Context, metrics *Metrics, stage string, duration time.Duration) {
	if metrics == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("pipeline.stage", stage),
	}
	metrics.StageDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordFallback records a fallback from a secondary model to the baseline
func RecordFallback(ctx context.Context, metrics *Metrics, fromModel, toModel string) {
	if metrics == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("ai.model.from", fromModel),
		attribute.String("ai.model.to", toModel),
	}
	metrics.FallbackCount.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordCaseProcessed records one finished case in a batch run
func RecordCaseProcessed(ctx context.Context, metrics *Metrics, status string) {
	if metrics == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("case.status", status),
	}
	metrics.CasesProcessed.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordMatchRatio records a per-case alignment match ratio
func RecordMatchRatio(ctx context.Context, metrics *Metrics, category string, ratio float64) {
	if metrics == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("template.category", category),
	}
	metrics.AlignmentMatchRatio.Record(ctx, ratio, metric.WithAttributes(attrs...))
}
