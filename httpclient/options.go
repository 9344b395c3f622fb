package httpclient

import (
	"time"

	"github.com/kbukum/routekit/util"
)

// RedirectPolicy controls how the default transport handles 3xx responses.
type RedirectPolicy string

const (
	// RedirectFollow follows redirects (the default).
	RedirectFollow RedirectPolicy = "follow"
	// RedirectError fails the request with REDIRECT_REFUSED.
	RedirectError RedirectPolicy = "error"
	// RedirectManual returns the 3xx response to the caller as-is.
	RedirectManual RedirectPolicy = "manual"
)

// Options is the passthrough bag merged into every request. Zero values mean
// "not set" and never override a configured value.
type Options struct {
	// Timeout bounds a single exchange. Zero leaves it to ctx and the transport.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// Redirect selects the redirect policy.
	Redirect RedirectPolicy `yaml:"redirect" mapstructure:"redirect"`
	// Headers are extra request headers.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
	// Extra holds arbitrary values for custom Fetch implementations.
	Extra map[string]any `yaml:"extra" mapstructure:"extra"`
}

// Merge returns o overlaid with override. Scalars in override win when set;
// Headers and Extra are merged key by key, recursively for nested maps.
func (o Options) Merge(override Options) Options {
	out := Options{
		Timeout:  o.Timeout,
		Redirect: o.Redirect,
		Headers:  util.MergeStrings(o.Headers, override.Headers),
		Extra:    util.DeepMerge(o.Extra, override.Extra),
	}
	if override.Timeout > 0 {
		out.Timeout = override.Timeout
	}
	if override.Redirect != "" {
		out.Redirect = override.Redirect
	}
	return out
}

// Get returns an Extra value.
func (o Options) Get(key string) (any, bool) {
	v, ok := o.Extra[key]
	return v, ok
}
