package routeclient

import (
	"context"
	"maps"

	"github.com/kbukum/routekit/httpclient"
	"github.com/kbukum/routekit/logger"
	"github.com/kbukum/routekit/observability"
)

// HeaderSource produces instance-level headers. It is consulted on every
// call, so producers may return fresh values (rotating tokens, for example).
type HeaderSource interface {
	Headers(ctx context.Context) (map[string]string, error)
}

// StaticHeaders is a HeaderSource returning a fixed set of headers.
type StaticHeaders map[string]string

// Headers implements HeaderSource.
func (h StaticHeaders) Headers(context.Context) (map[string]string, error) {
	return maps.Clone(map[string]string(h)), nil
}

// HeaderFunc adapts a function to HeaderSource.
type HeaderFunc func(ctx context.Context) (map[string]string, error)

// Headers implements HeaderSource.
func (f HeaderFunc) Headers(ctx context.Context) (map[string]string, error) {
	return f(ctx)
}

// Config is the instance-level configuration shared by every endpoint of a
// client.
type Config struct {
	// BaseURL is prepended to every route path.
	BaseURL string
	// Headers is evaluated on every call. Its values override both the
	// headers argument and Options.Headers.
	Headers HeaderSource
	// Fetch performs the exchange. Defaults to httpclient.DefaultFetch.
	Fetch httpclient.Fetch
	// Options is merged into every call; call-level options win.
	Options httpclient.Options
	// Logger receives diagnostics. Defaults to the "routeclient" logger.
	Logger *logger.Logger
	// Metrics, when set, records per-route request metrics. Do not combine
	// with httpclient.WithMetrics on the same Fetch or requests count twice.
	Metrics *observability.Metrics
	// OnContractViolation is called for every response that fails its
	// declared schema, after the violation is logged.
	OnContractViolation func(ctx context.Context, v *ContractViolation)
}

// ApplyDefaults fills in the Fetch and Logger when unset.
func (c *Config) ApplyDefaults() {
	if c.Fetch == nil {
		c.Fetch = httpclient.DefaultFetch
	}
	if c.Logger == nil {
		c.Logger = logger.Get("routeclient")
	}
}
