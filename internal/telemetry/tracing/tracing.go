package tracing

import (
	"context"
	"fmt"

	"github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var GlobalTracer = otel.Tracer("prtracker-client")

// HoneycombSetup configures the OpenTelemetry SDK through the honeycomb distro.
// Endpoint and API key come from the usual OTEL_* / HONEYCOMB_* env vars.
// The returned func flushes and shuts the exporters down.
func HoneycombSetup(enabled bool, serviceName string) (func(), error) {
	if !enabled {
		log.Debugln("honeycomb tracing disabled")
		return func() {}, nil
	}

	bsp := honeycomb.NewBaggageSpanProcessor()
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
		otelconfig.WithSpanProcessor(bsp),
	)
	if err != nil {
		return nil, fmt.Errorf("configure open telemetry: %w", err)
	}

	log.Debugf("honeycomb tracing enabled for service: %s", serviceName)
	return otelShutdown, nil
}

// StorageTracer wraps credential storage operations in spans.
// A nil or disabled tracer does nothing.
type StorageTracer struct {
	tracer         trace.Tracer
	tracingEnabled bool
}

func NewStorageTracer(tracingEnabled bool, tracer trace.Tracer) *StorageTracer {
	return &StorageTracer{
		tracingEnabled: tracingEnabled,
		tracer:         tracer,
	}
}

// Start opens a "storage.<op>" span; the returned func ends it with the outcome.
func (t *StorageTracer) Start(ctx context.Context, backend, op string) (context.Context, func(err error)) {
	if t == nil || !t.tracingEnabled || t.tracer == nil {
		return ctx, func(error) {}
	}

	ctx, span := t.tracer.Start(ctx, "storage."+op, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(attribute.String("storage.backend", backend))
	return ctx, func(err error) {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}
}
