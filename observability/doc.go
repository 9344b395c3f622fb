// Package observability provides OpenTelemetry tracing and metrics for
// routekit clients.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("billing-client"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanHTTPRequest)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("billing-client"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("billing-client"))
//	metrics.RecordRequestEnd(ctx, "invoices.get", "GET", "ok", duration)
//
// Route calls:
//
//	op := observability.NewOperation("invoices.get", "GET", requestID, metrics)
//	ctx, span := op.Start(ctx)
//	defer func() { op.End(ctx, span, status, err) }()
package observability
