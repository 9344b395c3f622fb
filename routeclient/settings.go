package routeclient

import (
	"fmt"
	"time"

	"github.com/kbukum/routekit/errors"
	"github.com/kbukum/routekit/httpclient"
	"github.com/kbukum/routekit/logger"
)

// Settings is the file and environment representation of a client
// configuration. Load it with config.Load and turn it into a Config with
// Settings.Config.
//
// Example:
//
//	base_url: https://api.example.com
//	timeout: 10s
//	redirect: error
//	headers:
//	  accept: application/json
//	tls:
//	  ca_file: /etc/ssl/internal-ca.pem
//	logging:
//	  level: debug
//	  format: json
type Settings struct {
	BaseURL      string                    `yaml:"base_url" mapstructure:"base_url"`
	Headers      map[string]string         `yaml:"headers" mapstructure:"headers"`
	Timeout      time.Duration             `yaml:"timeout" mapstructure:"timeout"`
	Redirect     httpclient.RedirectPolicy `yaml:"redirect" mapstructure:"redirect"`
	MaxRedirects int                       `yaml:"max_redirects" mapstructure:"max_redirects"`
	TLS          *httpclient.TLSConfig     `yaml:"tls" mapstructure:"tls"`
	HTTP2        bool                      `yaml:"http2" mapstructure:"http2"`
	Logging      logger.Config             `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies default values to the settings.
func (s *Settings) ApplyDefaults() {
	s.Logging.ApplyDefaults()
}

// Validate validates the settings.
func (s *Settings) Validate() error {
	if s.Timeout < 0 {
		return errors.Configuration("timeout must not be negative")
	}
	if s.MaxRedirects < 0 {
		return errors.Configuration("max_redirects must not be negative")
	}
	switch s.Redirect {
	case "", httpclient.RedirectFollow, httpclient.RedirectError, httpclient.RedirectManual:
	default:
		return errors.Configuration(fmt.Sprintf("unknown redirect policy %q", s.Redirect))
	}
	if err := s.TLS.Validate(); err != nil {
		return err
	}
	return s.Logging.Validate()
}

// Config builds a client Config backed by a dedicated httpclient.Transport.
// Defaults are applied to a copy; s is not modified.
func (s *Settings) Config() (Config, error) {
	settings := *s
	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return Config{}, err
	}
	s = &settings
	transport, err := httpclient.NewTransport(httpclient.TransportConfig{
		Timeout:      s.Timeout,
		TLS:          s.TLS,
		HTTP2:        s.HTTP2,
		MaxRedirects: s.MaxRedirects,
		Redirect:     s.Redirect,
	})
	if err != nil {
		return Config{}, err
	}

	var headers HeaderSource
	if len(s.Headers) > 0 {
		headers = StaticHeaders(s.Headers)
	}
	return Config{
		BaseURL: s.BaseURL,
		Headers: headers,
		Fetch:   transport.Fetch,
		Options: httpclient.Options{Timeout: s.Timeout, Redirect: s.Redirect},
		Logger:  logger.New(&s.Logging, "routeclient"),
	}, nil
}
