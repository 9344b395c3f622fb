package httpclient

import (
	"net/url"
	"regexp"
	"strings"
)

// placeholder matches a ":name" token. The name runs until the next '/',
// '?' or '#', so ":id" never matches inside ":identity".
var placeholder = regexp.MustCompile(`:([^/?#]+)`)

// JoinURL prefixes path with base, inserting exactly one slash between them.
// An empty base, or a path that is already an absolute http(s) URL, leaves
// path untouched.
func JoinURL(base, path string) string {
	if base == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base = strings.TrimRight(base, "/")
	if path == "" {
		return base
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

// FillPath substitutes ":name" placeholders in template with the matching
// params value, percent-encoded as a single path segment. Pointer values are
// dereferenced. Tokens without a param, or whose value is nil or cannot be
// rendered, are left in place; params without a token are ignored.
func FillPath(template string, params map[string]any) string {
	if len(params) == 0 {
		return template
	}
	return RewritePath(template, func(name string) (string, bool) {
		s, ok, err := FormatValue(params[name])
		if err != nil || !ok {
			return "", false
		}
		return url.PathEscape(s), true
	})
}

// RewritePath replaces every ":name" placeholder with the value fn returns
// for it. When fn reports false the token is kept.
func RewritePath(template string, fn func(name string) (string, bool)) string {
	return placeholder.ReplaceAllStringFunc(template, func(token string) string {
		if v, ok := fn(token[1:]); ok {
			return v
		}
		return token
	})
}

// PathParams returns the placeholder names of template in order of first
// appearance.
func PathParams(template string) []string {
	matches := placeholder.FindAllStringSubmatch(template, -1)
	names := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
