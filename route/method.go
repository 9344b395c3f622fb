package route

import (
	"fmt"
	"strings"

	"github.com/kbukum/routekit/errors"
)

// Method is an HTTP method a route may declare.
type Method string

const (
	GET    Method = "GET"
	POST   Method = "POST"
	PUT    Method = "PUT"
	DELETE Method = "DELETE"
	PATCH  Method = "PATCH"
)

// Methods lists the declarable methods.
var Methods = []Method{GET, POST, PUT, DELETE, PATCH}

// Valid reports whether m is a declarable method.
func (m Method) Valid() bool {
	switch m {
	case GET, POST, PUT, DELETE, PATCH:
		return true
	}
	return false
}

// String returns the method name.
func (m Method) String() string { return string(m) }

// ParseMethod converts a case-insensitive method name.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", errors.Configuration(fmt.Sprintf("unsupported method %q", s))
	}
	return m, nil
}
