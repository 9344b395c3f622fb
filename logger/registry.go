package logger

import "sync"

// overrides holds per-component loggers keyed by component name, for example
// "routeclient", "httpclient" or "config".
var overrides sync.Map

// Register routes every later Get(component) to l. A nil l removes the
// override so the component falls back to the global logger again.
func Register(component string, l *Logger) {
	if l == nil {
		overrides.Delete(component)
		return
	}
	overrides.Store(component, l)
}

// Get returns the logger registered for component. Without an override it
// derives one from the current global logger, so SetGlobalLogger is honoured
// by components created afterwards.
func Get(component string) *Logger {
	if l, ok := overrides.Load(component); ok {
		return l.(*Logger)
	}
	return GetGlobalLogger().WithComponent(component)
}
