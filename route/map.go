package route

import (
	"fmt"
	"strings"

	"github.com/kbukum/routekit/errors"
	"github.com/kbukum/routekit/util"
)

// Node is an element of a route tree: either a *Definition or a Map.
type Node interface {
	node()
}

// Map is an internal node of a route tree. Keys are segment names.
type Map map[string]Node

func (Map) node() {}

// Separator joins segment names into a dotted route path.
const Separator = "."

// JoinPath renders segment names as a dotted path.
func JoinPath(segments []string) string {
	return strings.Join(segments, Separator)
}

// WalkFunc is called for every leaf during Walk.
type WalkFunc func(path []string, def *Definition) error

// Walk visits every Definition depth-first in sorted key order. The path
// slice is only valid for the duration of the call. A nil node, or a node of
// an unknown type, aborts the walk with a configuration error naming it.
func (m Map) Walk(fn WalkFunc) error {
	return m.walk(nil, fn)
}

func (m Map) walk(prefix []string, fn WalkFunc) error {
	for _, name := range util.SortedKeys(m) {
		path := append(prefix[:len(prefix):len(prefix)], name)
		switch n := m[name].(type) {
		case nil:
			return nodeError(path, "nil route node")
		case *Definition:
			if n == nil {
				return nodeError(path, "nil route definition")
			}
			if err := fn(path, n); err != nil {
				return err
			}
		case Map:
			if n == nil {
				return nodeError(path, "nil route group")
			}
			if err := n.walk(path, fn); err != nil {
				return err
			}
		default:
			return nodeError(path, fmt.Sprintf("unsupported route node %T", n))
		}
	}
	return nil
}

// Validate walks the tree and checks every definition.
func (m Map) Validate() error {
	return m.Walk(func(path []string, def *Definition) error {
		if err := def.Validate(); err != nil {
			return withRoute(err, path)
		}
		return nil
	})
}

// Lookup resolves a dotted path to a node.
func (m Map) Lookup(dotted string) (Node, bool) {
	var node Node = m
	for _, seg := range strings.Split(dotted, Separator) {
		group, ok := node.(Map)
		if !ok {
			return nil, false
		}
		if node, ok = group[seg]; !ok || node == nil {
			return nil, false
		}
	}
	return node, true
}

// Count returns the number of definitions in the tree.
func (m Map) Count() int {
	n := 0
	_ = m.Walk(func([]string, *Definition) error {
		n++
		return nil
	})
	return n
}

func nodeError(path []string, msg string) error {
	return errors.Configuration(msg).WithDetail("route", JoinPath(path))
}

func withRoute(err error, path []string) error {
	if appErr, ok := errors.AsAppError(err); ok {
		appErr.Message = JoinPath(path) + ": " + appErr.Message
		return appErr.WithDetail("route", JoinPath(path))
	}
	return errors.Configuration(JoinPath(path) + ": " + err.Error()).WithCause(err)
}
