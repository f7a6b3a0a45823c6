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
	meterProvider   *metric.MeterProvider
	meter           otelmetric.Meter
	messageCounter  otelmetric.Int64Counter
	messageDuration otelmetric.Float64Histogram
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

	messageCounter, _ := meter.Int64Counter(
		"messages.processed",
		otelmetric.WithDescription("Number of user messages processed"),
	)

	messageDuration, _ := meter.Float64Histogram(
		"messages.duration",
		otelmetric.WithDescription("Message processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:   provider,
		meter:           meter,
		messageCounter:  messageCounter,
		messageDuration: messageDuration,
	}
}

func (o *Observability) RecordMessageProcessed(ctx context.Context, intent string) {
	if o.messageCounter != nil {
		o.messageCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("intent", intent),
		))
	}
}

func (o *Observability) RecordMessageDuration(ctx context.Context, duration time.Duration, intent string) {
	if o.messageDuration != nil {
		o.messageDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("intent", intent),
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
