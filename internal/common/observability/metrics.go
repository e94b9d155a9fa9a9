package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider      *metric.MeterProvider
	meter              otelmetric.Meter
	stepTransitions    otelmetric.Int64Counter
	validationFailures otelmetric.Int64Counter
	validationDuration otelmetric.Float64Histogram
	prefillRequests    otelmetric.Int64Counter
	prefillStaleDrops  otelmetric.Int64Counter
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	stepTransitions, _ := meter.Int64Counter(
		"wizard.step.transitions",
		otelmetric.WithDescription("Number of step transitions by direction and outcome"),
	)

	validationFailures, _ := meter.Int64Counter(
		"wizard.validation.failures",
		otelmetric.WithDescription("Number of step validations that produced violations"),
	)

	validationDuration, _ := meter.Float64Histogram(
		"wizard.validation.duration",
		otelmetric.WithDescription("Step validation duration"),
		otelmetric.WithUnit("ms"),
	)

	prefillRequests, _ := meter.Int64Counter(
		"wizard.prefill.requests",
		otelmetric.WithDescription("Number of document prefill batches by outcome"),
	)

	prefillStaleDrops, _ := meter.Int64Counter(
		"wizard.prefill.stale_drops",
		otelmetric.WithDescription("Number of prefill results dropped for arriving after the step visit ended"),
	)

	return &Observability{
		meterProvider:      provider,
		meter:              meter,
		stepTransitions:    stepTransitions,
		validationFailures: validationFailures,
		validationDuration: validationDuration,
		prefillRequests:    prefillRequests,
		prefillStaleDrops:  prefillStaleDrops,
	}
}

func (o *Observability) RecordStepTransition(ctx context.Context, stepID, direction, outcome string) {
	if o.stepTransitions != nil {
		o.stepTransitions.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("step", stepID),
			attribute.String("direction", direction),
			attribute.String("outcome", outcome),
		))
	}
}

func (o *Observability) RecordValidationFailure(ctx context.Context, stepID string, violations int) {
	if o.validationFailures != nil {
		o.validationFailures.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("step", stepID),
			attribute.Int("violations", violations),
		))
	}
}

func (o *Observability) RecordValidationDuration(ctx context.Context, stepID string, duration time.Duration) {
	if o.validationDuration != nil {
		o.validationDuration.Record(ctx, float64(duration.Microseconds())/1000.0, otelmetric.WithAttributes(
			attribute.String("step", stepID),
		))
	}
}

func (o *Observability) RecordPrefillRequest(ctx context.Context, outcome string) {
	if o.prefillRequests != nil {
		o.prefillRequests.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("outcome", outcome),
		))
	}
}

func (o *Observability) RecordPrefillStaleDrop(ctx context.Context, stepID string) {
	if o.prefillStaleDrops != nil {
		o.prefillStaleDrops.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("step", stepID),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
