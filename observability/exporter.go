package observability

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/kbukum/routekit/errors"
	"github.com/kbukum/routekit/version"
)

const defaultOTLPEndpoint = "localhost:4318"

// ExportConfig is shared by the tracer and meter providers: who is reporting
// and where the OTLP/HTTP collector listens.
type ExportConfig struct {
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	// ServiceVersion defaults to the routekit build version.
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
	Environment    string `yaml:"environment" mapstructure:"environment"`
	// Endpoint is the collector host:port.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
}

func developmentExport(serviceName string) ExportConfig {
	return ExportConfig{
		ServiceName: serviceName,
		Environment: "development",
		Endpoint:    defaultOTLPEndpoint,
		Insecure:    true,
	}
}

// ApplyDefaults fills the version and collector endpoint.
func (c *ExportConfig) ApplyDefaults() {
	if c.ServiceVersion == "" {
		c.ServiceVersion = version.Get().Version
	}
	if c.Endpoint == "" {
		c.Endpoint = defaultOTLPEndpoint
	}
}

// Validate requires a service name, which every exported resource carries.
func (c *ExportConfig) Validate() error {
	if c.ServiceName == "" {
		return errors.Configuration("observability: service_name is required")
	}
	return nil
}

func (c *ExportConfig) resource() (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(c.ServiceName),
		semconv.ServiceVersion(c.ServiceVersion),
	}
	if c.Environment != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(c.Environment))
	}
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(semconv.SchemaURL, attrs...))
	if err != nil {
		return nil, errors.Configuration("observability: unable to build resource").WithCause(err)
	}
	return res, nil
}

func exporterError(signal string, err error) error {
	return errors.Configuration(fmt.Sprintf("observability: unable to create %s exporter", signal)).WithCause(err)
}
