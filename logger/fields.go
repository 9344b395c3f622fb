package logger

import "time"

// Field keys shared by routekit log lines.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldRoute     = "route"
	FieldMethod    = "method"
	FieldURL       = "url"
	FieldStatus    = "status"
	FieldSlot      = "slot"
	FieldKind      = "kind"
	FieldIssues    = "issues"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Fields builds a field map from alternating key-value pairs. Pairs whose key
// is not a string are skipped, as is a trailing key without a value.
//
//	log.Warn("response does not match its schema", logger.Fields("route", "users.get", "status", 200))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// RouteFields tags a log line with the dotted route name and its HTTP method.
// An empty method is left out.
func RouteFields(route, method string) map[string]any {
	m := map[string]any{FieldRoute: route}
	if method != "" {
		m[FieldMethod] = method
	}
	return m
}

// DurationFields tags a log line with an operation and its elapsed time in
// milliseconds.
func DurationFields(op string, d time.Duration) map[string]any {
	return map[string]any{FieldOperation: op, FieldDuration: d.Milliseconds()}
}

// MergeWithError sets the error field on fields, allocating the map when nil.
// A nil err leaves fields unchanged.
func MergeWithError(fields map[string]any, err error) map[string]any {
	if fields == nil {
		fields = make(map[string]any, 1)
	}
	if err != nil {
		fields[FieldError] = err.Error()
	}
	return fields
}
