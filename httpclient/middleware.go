package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/routekit/logger"
	"github.com/kbukum/routekit/observability"
)

// HeaderRequestID is the header WithRequestID sets.
const HeaderRequestID = "X-Request-Id"

// Middleware wraps a Fetch with cross-cutting behavior.
type Middleware func(Fetch) Fetch

// Chain composes middlewares. The first one is outermost: it runs first on
// the way out and last on the way back.
//
// Chain(a, b, c)(fetch) is equivalent to a(b(c(fetch))).
func Chain(middlewares ...Middleware) Middleware {
	return func(inner Fetch) Fetch {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}

// WithRequestID stamps every request with an X-Request-Id header. An id
// already present on the request or in ctx (see logger.ContextWithRequestID)
// is reused; otherwise a new UUID is generated. The id is stored in the
// context passed downstream.
func WithRequestID() Middleware {
	return func(next Fetch) Fetch {
		return func(ctx context.Context, rawURL string, req *Request) (*Response, error) {
			if req.Header == nil {
				req.Header = make(http.Header)
			}
			id := req.Header.Get(HeaderRequestID)
			if id == "" {
				id = logger.RequestIDFromContext(ctx)
			}
			if id == "" {
				id = uuid.New().String()
			}
			req.Header.Set(HeaderRequestID, id)
			return next(logger.ContextWithRequestID(ctx, id), rawURL, req)
		}
	}
}

// WithLogging logs every exchange: Debug on completion, Error on failure.
// A nil log uses the "httpclient" registered logger.
func WithLogging(log *logger.Logger) Middleware {
	if log == nil {
		log = logger.Get("httpclient")
	}
	return func(next Fetch) Fetch {
		return func(ctx context.Context, rawURL string, req *Request) (*Response, error) {
			start := time.Now()
			resp, err := next(ctx, rawURL, req)

			fields := logger.DurationFields("fetch", time.Since(start))
			fields[logger.FieldMethod] = req.Method
			fields[logger.FieldURL] = redact(rawURL)

			l := log.WithContext(ctx)
			if err != nil {
				l.Error("request failed", logger.MergeWithError(fields, err))
				return resp, err
			}
			fields[logger.FieldStatus] = resp.StatusCode
			l.Debug("request completed", fields)
			return resp, nil
		}
	}
}

// WithTracing opens a client span around every exchange and propagates the
// trace context through the request headers.
func WithTracing() Middleware {
	return func(next Fetch) Fetch {
		return func(ctx context.Context, rawURL string, req *Request) (*Response, error) {
			ctx, span := observability.StartSpan(ctx, observability.SpanHTTPRequest,
				trace.WithSpanKind(trace.SpanKindClient))
			defer span.End()

			observability.SetSpanAttribute(ctx, observability.AttrHTTPMethod, req.Method)
			observability.SetSpanAttribute(ctx, observability.AttrHTTPURL, redact(rawURL))

			if req.Header == nil {
				req.Header = make(http.Header)
			}
			observability.InjectHeaders(ctx, propagation.HeaderCarrier(req.Header))

			resp, err := next(ctx, rawURL, req)
			if err != nil {
				observability.SetSpanError(ctx, err)
				return resp, err
			}
			observability.SetSpanAttribute(ctx, observability.AttrHTTPStatus, resp.StatusCode)
			return resp, nil
		}
	}
}

// WithMetrics records request count, duration and errors. The route label
// comes from the observability.Operation in ctx when present, and from the
// URL path otherwise.
func WithMetrics(metrics *observability.Metrics) Middleware {
	return func(next Fetch) Fetch {
		return func(ctx context.Context, rawURL string, req *Request) (*Response, error) {
			route := routeLabel(ctx, rawURL)
			metrics.RecordRequestStart(ctx)
			start := time.Now()

			resp, err := next(ctx, rawURL, req)

			status := "error"
			if err == nil {
				status = strconv.Itoa(resp.StatusCode)
			} else {
				metrics.RecordError(ctx, "fetch", route)
			}
			metrics.RecordRequestEnd(ctx, route, req.Method, status, time.Since(start))
			return resp, err
		}
	}
}

func routeLabel(ctx context.Context, rawURL string) string {
	if op := observability.OperationFromContext(ctx); op != nil {
		return op.Route
	}
	if u, err := url.Parse(rawURL); err == nil {
		return u.Path
	}
	return rawURL
}

// redact strips credentials from a URL for logs and spans.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Redacted()
}
