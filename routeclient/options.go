package routeclient

import (
	"time"

	"github.com/kbukum/routekit/httpclient"
)

// Args carries the raw request inputs of one call. A nil field is treated as
// not supplied and skips validation.
//
// Params, Query and Headers may be maps or structs; structs are flattened
// using their json tags.
type Args struct {
	Params  any
	Query   any
	Body    any
	Headers any
}

// CallOption adjusts the options of a single call.
type CallOption func(*httpclient.Options)

// WithOptions overlays o onto the call options.
func WithOptions(o httpclient.Options) CallOption {
	return func(opts *httpclient.Options) { *opts = opts.Merge(o) }
}

// WithTimeout sets the call timeout.
func WithTimeout(d time.Duration) CallOption {
	return func(opts *httpclient.Options) { opts.Timeout = d }
}

// WithRedirect sets the redirect policy of the call.
func WithRedirect(p httpclient.RedirectPolicy) CallOption {
	return func(opts *httpclient.Options) { opts.Redirect = p }
}

// WithHeader adds an option header to the call.
func WithHeader(key, value string) CallOption {
	return func(opts *httpclient.Options) {
		if opts.Headers == nil {
			opts.Headers = make(map[string]string)
		}
		opts.Headers[key] = value
	}
}

// WithExtra sets a passthrough value for custom Fetch implementations.
func WithExtra(key string, value any) CallOption {
	return func(opts *httpclient.Options) {
		if opts.Extra == nil {
			opts.Extra = make(map[string]any)
		}
		opts.Extra[key] = value
	}
}

func callOptions(opts []CallOption) httpclient.Options {
	var o httpclient.Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
