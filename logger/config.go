package logger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/routekit/errors"
)

// Output targets accepted by Config.Output.
const (
	OutputStdout  = "stdout"
	OutputStderr  = "stderr"
	OutputDiscard = "discard"
)

var (
	validLevels  = []string{"trace", "debug", "info", "warn", "error", "disabled"}
	validFormats = []string{FormatJSON, FormatConsole, FormatPretty, "text"}
	validOutputs = []string{OutputStdout, OutputStderr, OutputDiscard}
)

// Config is the logging block of a routekit settings file.
//
//	logging:
//	  level: debug
//	  format: json
//	  output: stdout
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"caller"`
}

// ApplyDefaults logs at info level to stderr in console format. Enum values
// are lower-cased so settings files may use any case.
func (c *Config) ApplyDefaults() {
	c.Level = strings.ToLower(c.Level)
	c.Format = strings.ToLower(c.Format)
	c.Output = strings.ToLower(c.Output)
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
	if c.Output == "" {
		c.Output = OutputStderr
	}
	c.Timestamp = true
}

// Validate reports an unknown enum value as a configuration error naming the
// offending field. An empty output is allowed and means stderr.
func (c *Config) Validate() error {
	for _, check := range []struct {
		field, value string
		allowed      []string
	}{
		{"level", c.Level, validLevels},
		{"format", c.Format, validFormats},
		{"output", c.Output, validOutputs},
	} {
		if check.value == "" && check.field == "output" {
			continue
		}
		if !slices.Contains(check.allowed, check.value) {
			return errors.Configuration(fmt.Sprintf("logging.%s must be one of %v (got %q)", check.field, check.allowed, check.value)).
				WithDetail("field", "logging."+check.field)
		}
	}
	return nil
}
