package httpclient

import (
	"encoding"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/kbukum/routekit/errors"
	"github.com/kbukum/routekit/util"
)

// EncodeQuery serializes query into a query string without the leading '?'.
//
// Keys are emitted in sorted order. Nil values are omitted. Slices and
// arrays repeat the key once per element, keeping element order. Maps and
// structs are JSON-encoded; everything else is stringified.
func EncodeQuery(query map[string]any) (string, error) {
	var b strings.Builder
	for _, key := range util.SortedKeys(query) {
		values, err := queryValues(query[key])
		if err != nil {
			return "", errors.Encoding("query parameter "+key, err)
		}
		for _, v := range values {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(key))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String(), nil
}

// AppendQuery appends qs to rawURL, joining with '&' when rawURL already has
// a query and '?' otherwise. A fragment stays at the end.
func AppendQuery(rawURL, qs string) string {
	if qs == "" {
		return rawURL
	}
	base, fragment, hasFragment := strings.Cut(rawURL, "#")
	switch {
	case strings.HasSuffix(base, "?"), strings.HasSuffix(base, "&"):
		base += qs
	case strings.Contains(base, "?"):
		base += "&" + qs
	default:
		base += "?" + qs
	}
	if hasFragment {
		return base + "#" + fragment
	}
	return base
}

func queryValues(v any) ([]string, error) {
	rv, ok := indirect(v)
	if !ok {
		return nil, nil
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return []string{fmt.Sprintf("%s", rv.Interface())}, nil
		}
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, ok := indirect(rv.Index(i).Interface())
			if !ok {
				continue
			}
			s, err := scalarOrJSON(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		s, err := scalarOrJSON(rv)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}

func scalarOrJSON(rv reflect.Value) (string, error) {
	if tm, ok := rv.Interface().(encoding.TextMarshaler); ok {
		b, err := tm.MarshalText()
		return string(b), err
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array:
		b, err := json.Marshal(rv.Interface())
		return string(b), err
	}
	return stringify(rv.Interface()), nil
}

// FormatValue renders a single path, header or body value as text. Pointers
// are dereferenced first; composites are JSON-encoded. It reports false for
// nil and nil pointers.
func FormatValue(v any) (string, bool, error) {
	rv, ok := indirect(v)
	if !ok {
		return "", false, nil
	}
	s, err := scalarOrJSON(rv)
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

// indirect unwraps interfaces and pointers. It reports false for nil.
func indirect(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		if _, ok := rv.Interface().(encoding.TextMarshaler); ok {
			return rv, true
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Map || rv.Kind() == reflect.Slice {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
	}
	return rv, true
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}
