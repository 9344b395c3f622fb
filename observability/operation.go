package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Operation tracks one route invocation across its span and metrics.
type Operation struct {
	Route     string
	Method    string
	RequestID string
	StartTime time.Time
	Metrics   *Metrics
}

// NewOperation creates an operation. If metrics is nil, metric recording is
// skipped.
func NewOperation(route, method, requestID string, metrics *Metrics) *Operation {
	return &Operation{
		Route:     route,
		Method:    method,
		RequestID: requestID,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

type operationKey struct{}

// WithOperation stores an Operation in the context.
func WithOperation(ctx context.Context, op *Operation) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

// OperationFromContext retrieves the Operation from context, or nil.
func OperationFromContext(ctx context.Context) *Operation {
	if op, ok := ctx.Value(operationKey{}).(*Operation); ok {
		return op
	}
	return nil
}

// Start opens the route span, stores the operation in the returned context
// and records the request start.
func (op *Operation) Start(ctx context.Context) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanRouteCall, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String(AttrRoute, op.Route),
		attribute.String(AttrHTTPMethod, op.Method),
	)
	if op.RequestID != "" {
		span.SetAttributes(attribute.String(AttrRequestID, op.RequestID))
	}

	if op.Metrics != nil {
		op.Metrics.RecordRequestStart(ctx)
	}
	return WithOperation(ctx, op), span
}

// End closes the span and records the outcome.
func (op *Operation) End(ctx context.Context, span trace.Span, status string, err error) {
	duration := time.Since(op.StartTime)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if op.Metrics != nil {
		op.Metrics.RecordRequestEnd(ctx, op.Route, op.Method, status, duration)
		if err != nil {
			op.Metrics.RecordError(ctx, status, op.Route)
		}
	}
}

// Duration returns the elapsed time since the operation started.
func (op *Operation) Duration() time.Duration {
	return time.Since(op.StartTime)
}
