package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

const (
	FormatPretty  = "pretty"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Logger is a zerolog logger bound to a routekit component. Derived loggers
// share the parent's writer.
type Logger struct {
	logger    zerolog.Logger
	component string
}

// New creates a logger writing to the output named in cfg.
func New(cfg *Config, component string) *Logger {
	return NewWithWriter(cfg, component, outputWriter(cfg.Output))
}

// NewWithWriter creates a logger writing to w. JSON writes raw zerolog events;
// the console formats go through a zerolog.ConsoleWriter. An unknown level
// logs at info.
func NewWithWriter(cfg *Config, component string, w io.Writer) *Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if strings.EqualFold(cfg.Format, FormatJSON) {
		zl = zerolog.New(w)
	} else {
		zl = zerolog.New(consoleWriter(w, cfg.NoColor))
	}

	zc := zl.Level(level).With()
	if cfg.Timestamp {
		zc = zc.Timestamp()
	}
	if cfg.Caller {
		zc = zc.Caller()
	}
	if component != "" {
		zc = zc.Str(FieldComponent, component)
	}
	return &Logger{logger: zc.Logger(), component: component}
}

// NewDefault creates a console logger at info level on stderr.
func NewDefault(component string) *Logger {
	var cfg Config
	cfg.ApplyDefaults()
	return New(&cfg, component)
}

// NewFromEnv reads ROUTEKIT_LOG_LEVEL, ROUTEKIT_LOG_FORMAT, ROUTEKIT_LOG_OUTPUT,
// ROUTEKIT_LOG_NO_COLOR and ROUTEKIT_LOG_TIMESTAMP, falling back to the
// defaults for anything unset.
func NewFromEnv(component string) *Logger {
	cfg := Config{
		Level:   os.Getenv("ROUTEKIT_LOG_LEVEL"),
		Format:  os.Getenv("ROUTEKIT_LOG_FORMAT"),
		Output:  os.Getenv("ROUTEKIT_LOG_OUTPUT"),
		NoColor: envBool("ROUTEKIT_LOG_NO_COLOR", false),
	}
	cfg.ApplyDefaults()
	cfg.Timestamp = envBool("ROUTEKIT_LOG_TIMESTAMP", true)
	return New(&cfg, component)
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

func (l *Logger) derive(zc zerolog.Context, component string) *Logger {
	return &Logger{logger: zc.Logger(), component: component}
}

// WithContext adds the request ID carried by ctx. Without one it returns l.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	id := RequestIDFromContext(ctx)
	if id == "" {
		return l
	}
	return l.derive(l.logger.With().Str(FieldRequestID, id), l.component)
}

// WithComponent returns a logger tagged with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return l.derive(l.logger.With().Str(FieldComponent, name), name)
}

// WithFields returns a logger carrying fields on every line.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	return l.derive(l.logger.With().Fields(fields), l.component)
}

// WithError returns a logger carrying an error field.
func (l *Logger) WithError(err error) *Logger {
	return l.derive(l.logger.With().Err(err), l.component)
}

// Component returns the component name the logger was created with.
func (l *Logger) Component() string { return l.component }

func (l *Logger) Debug(msg string, fields ...map[string]any) { l.emit(l.logger.Debug(), msg, fields) }
func (l *Logger) Info(msg string, fields ...map[string]any)  { l.emit(l.logger.Info(), msg, fields) }
func (l *Logger) Warn(msg string, fields ...map[string]any)  { l.emit(l.logger.Warn(), msg, fields) }
func (l *Logger) Error(msg string, fields ...map[string]any) { l.emit(l.logger.Error(), msg, fields) }

// emit is a no-op for a nil event, which zerolog returns for disabled levels.
func (l *Logger) emit(event *zerolog.Event, msg string, fields []map[string]any) {
	if event == nil {
		return
	}
	for _, f := range fields {
		event.Fields(f)
	}
	event.Msg(msg)
}

var global atomic.Pointer[Logger]

// SetGlobalLogger replaces the logger that Get derives component loggers from.
func SetGlobalLogger(l *Logger) { global.Store(l) }

// GetGlobalLogger returns the global logger, installing NewDefault on first use.
func GetGlobalLogger() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	global.CompareAndSwap(nil, NewDefault(""))
	return global.Load()
}

type requestIDKey struct{}

// ContextWithRequestID stores a request ID in ctx for WithContext to pick up.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request ID stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func outputWriter(output string) io.Writer {
	switch strings.ToLower(output) {
	case OutputStdout:
		return os.Stdout
	case OutputDiscard:
		return io.Discard
	default:
		return os.Stderr
	}
}

func envBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

var levelTags = map[string]struct{ tag, color string }{
	"debug": {"[DBG]", "\033[36m"},
	"info":  {"[INF]", "\033[32m"},
	"warn":  {"[WRN]", "\033[33m"},
	"error": {"[ERR]", "\033[31m"},
}

func consoleWriter(w io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
		FormatLevel: func(i any) string {
			lvl := fmt.Sprint(i)
			t, ok := levelTags[lvl]
			if !ok {
				return "[" + strings.ToUpper(lvl) + "]"
			}
			if noColor {
				return t.tag
			}
			return t.color + t.tag + "\033[0m"
		},
		FormatMessage: func(i any) string {
			if i == nil {
				return ""
			}
			return fmt.Sprint(i)
		},
		FormatFieldName: func(i any) string { return fmt.Sprint(i) + ":" },
	}
}
