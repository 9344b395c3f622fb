package httpclient

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/http2"

	"github.com/kbukum/routekit/errors"
	"github.com/kbukum/routekit/version"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxRedirects = 10
)

// TransportConfig configures the net/http backed transport.
type TransportConfig struct {
	// Timeout is the default per-exchange timeout. Defaults to 30s.
	// Options.Timeout on a request takes precedence.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// TLS configures the client TLS settings.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`
	// HTTP2 enables HTTP/2 over TLS on the transport.
	HTTP2 bool `yaml:"http2" mapstructure:"http2"`
	// MaxRedirects caps redirect chains under RedirectFollow. Defaults to 10.
	MaxRedirects int `yaml:"max_redirects" mapstructure:"max_redirects"`
	// Redirect is the policy used when a request does not set one.
	Redirect RedirectPolicy `yaml:"redirect" mapstructure:"redirect"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *TransportConfig) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = defaultMaxRedirects
	}
	if c.Redirect == "" {
		c.Redirect = RedirectFollow
	}
}

// Validate checks that the configuration is valid.
func (c *TransportConfig) Validate() error {
	if c.Timeout <= 0 {
		return errors.Configuration("httpclient: timeout must be positive")
	}
	switch c.Redirect {
	case RedirectFollow, RedirectError, RedirectManual:
	default:
		return errors.Configuration(fmt.Sprintf("httpclient: unknown redirect policy %q", c.Redirect))
	}
	return c.TLS.Validate()
}

// Transport sends requests with net/http. It is safe for concurrent use.
type Transport struct {
	client *http.Client
	config TransportConfig
}

// NewTransport builds a Transport from cfg.
func NewTransport(cfg TransportConfig) (*Transport, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rt := http.DefaultTransport.(*http.Transport).Clone()

	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		rt.TLSClientConfig = tlsCfg
	}
	if cfg.HTTP2 {
		if err := http2.ConfigureTransport(rt); err != nil {
			return nil, errors.Configuration("httpclient: unable to enable HTTP/2").WithCause(err)
		}
	}

	return &Transport{
		client: &http.Client{Transport: rt},
		config: cfg,
	}, nil
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (t *Transport) Unwrap() *http.Client {
	return t.client
}

// Fetch implements the Fetch signature.
func (t *Transport) Fetch(ctx context.Context, rawURL string, req *Request) (*Response, error) {
	timeout := t.config.Timeout
	if req.Options.Timeout > 0 {
		timeout = req.Options.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := t.buildRequest(ctx, rawURL, req)
	if err != nil {
		return nil, err
	}

	client := *t.client
	client.CheckRedirect = t.redirectPolicy(req.Options.Redirect)

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, classify(ctx, httpReq, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(ctx, httpReq, fmt.Errorf("read response body: %w", err))
	}

	out := NewResponse(resp.StatusCode, resp.Header, body)
	if resp.Request != nil && resp.Request.URL != nil {
		out.URL = resp.Request.URL.String()
	}
	return out, nil
}

func (t *Transport) buildRequest(ctx context.Context, rawURL string, req *Request) (*http.Request, error) {
	body, contentType, err := wireReader(req.Body)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, errors.Encoding("request body", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, rawURL, body)
	if err != nil {
		return nil, errors.InvalidInput("url", err.Error()).WithCause(err)
	}
	for k, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}
	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", version.UserAgent())
	}
	return httpReq, nil
}

func (t *Transport) redirectPolicy(p RedirectPolicy) func(*http.Request, []*http.Request) error {
	if p == "" {
		p = t.config.Redirect
	}
	limit := t.config.MaxRedirects
	return func(req *http.Request, via []*http.Request) error {
		switch p {
		case RedirectManual:
			return http.ErrUseLastResponse
		case RedirectError:
			return errors.RedirectRefused(req.URL.String())
		}
		if len(via) >= limit {
			return errors.RedirectRefused(req.URL.String()).
				WithDetail("reason", fmt.Sprintf("stopped after %d redirects", limit))
		}
		return nil
	}
}

// wireReader turns a wire body into a reader plus the Content-Type only the
// transport can know.
func wireReader(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case string:
		return strings.NewReader(v), "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case url.Values:
		return strings.NewReader(v.Encode()), ContentTypeForm, nil
	case *MultipartBody:
		return v.encode()
	case io.Reader:
		return v, "", nil
	}
	return nil, "", fmt.Errorf("unsupported wire body %T", body)
}

// classify maps a net/http failure onto routekit error codes.
func classify(ctx context.Context, req *http.Request, err error) error {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr
	}
	op := req.Method + " " + req.URL.Redacted()
	var netErr net.Error
	if ctx.Err() != nil || (stderrors.As(err, &netErr) && netErr.Timeout()) {
		return errors.Timeout(op, err)
	}
	return errors.ConnectionFailed(req.URL.Host, err)
}

var (
	defaultTransport     *Transport
	defaultTransportOnce sync.Once
)

// Default returns the shared Transport used by DefaultFetch.
func Default() *Transport {
	defaultTransportOnce.Do(func() {
		t, err := NewTransport(TransportConfig{})
		if err != nil {
			panic(err)
		}
		defaultTransport = t
	})
	return defaultTransport
}

// DefaultFetch sends the request with the shared default Transport.
func DefaultFetch(ctx context.Context, rawURL string, req *Request) (*Response, error) {
	return Default().Fetch(ctx, rawURL, req)
}
