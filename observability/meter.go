package observability

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/routekit/errors"
	"github.com/kbukum/routekit/logger"
)

// Instrument names.
const (
	MetricRequestTotal       = "routekit.request.total"
	MetricRequestDuration    = "routekit.request.duration"
	MetricRequestActive      = "routekit.request.active"
	MetricErrorTotal         = "routekit.error.total"
	MetricContractViolations = "routekit.contract.violations"
)

// MeterConfig configures the OTLP meter provider.
type MeterConfig struct {
	ExportConfig `yaml:",inline" mapstructure:",squash"`
	// Interval between exports. Zero uses the SDK default of one minute.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DefaultMeterConfig exports every 15s to a local collector.
func DefaultMeterConfig(serviceName string) *MeterConfig {
	return &MeterConfig{ExportConfig: developmentExport(serviceName), Interval: 15 * time.Second}
}

// InitMeter installs a periodic OTLP meter provider globally. Shut the
// provider down on exit to flush the last export.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	cfg := *config
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, exporterError("metric", err)
	}
	res, err := cfg.resource()
	if err != nil {
		return nil, err
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Get("observability").Info("meter initialized", logger.Fields(
		"service", cfg.ServiceName, "endpoint", cfg.Endpoint, "interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded for route calls.
type Metrics struct {
	requestTotal       metric.Int64Counter
	requestDuration    metric.Float64Histogram
	requestActive      metric.Int64UpDownCounter
	errorTotal         metric.Int64Counter
	contractViolations metric.Int64Counter
}

// NewMetrics creates the routekit instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)
	fail := func(name string, cause error) (*Metrics, error) {
		return nil, errors.Configuration("observability: unable to create instrument " + name).WithCause(cause)
	}

	if m.requestTotal, err = meter.Int64Counter(MetricRequestTotal,
		metric.WithDescription("Route calls by route, method and outcome")); err != nil {
		return fail(MetricRequestTotal, err)
	}
	if m.requestDuration, err = meter.Float64Histogram(MetricRequestDuration,
		metric.WithDescription("Route call latency"), metric.WithUnit("s")); err != nil {
		return fail(MetricRequestDuration, err)
	}
	if m.requestActive, err = meter.Int64UpDownCounter(MetricRequestActive,
		metric.WithDescription("Route calls in flight")); err != nil {
		return fail(MetricRequestActive, err)
	}
	if m.errorTotal, err = meter.Int64Counter(MetricErrorTotal,
		metric.WithDescription("Failed route calls by error code and route")); err != nil {
		return fail(MetricErrorTotal, err)
	}
	if m.contractViolations, err = meter.Int64Counter(MetricContractViolations,
		metric.WithDescription("Responses that did not match their declared schema")); err != nil {
		return fail(MetricContractViolations, err)
	}
	return &m, nil
}

// RecordRequestStart increments the in-flight count.
func (m *Metrics) RecordRequestStart(ctx context.Context) {
	m.requestActive.Add(ctx, 1)
}

// RecordRequestEnd decrements the in-flight count and records the finished
// call. status is an HTTP status code or an error code.
func (m *Metrics) RecordRequestEnd(ctx context.Context, route, method, status string, duration time.Duration) {
	m.requestActive.Add(ctx, -1)
	routeAttr, methodAttr := attribute.String("route", route), attribute.String("method", method)
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(routeAttr, methodAttr, attribute.String("status", status)))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(routeAttr, methodAttr))
}

// RecordError counts a failed call by error code.
func (m *Metrics) RecordError(ctx context.Context, code, route string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("type", code), attribute.String("route", route)))
}

// RecordContractViolation counts a response that failed its schema.
func (m *Metrics) RecordContractViolation(ctx context.Context, route string, status int) {
	m.contractViolations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	))
}
