package routeclient

import (
	"context"
	"strings"

	"github.com/kbukum/routekit/errors"
	"github.com/kbukum/routekit/httpclient"
	"github.com/kbukum/routekit/route"
	"github.com/kbukum/routekit/util"
)

// Client mirrors a route.Map: every definition is an Endpoint and every
// nested map is a child Client. A Client is immutable once built.
type Client struct {
	path      []string
	groups    map[string]*Client
	endpoints map[string]*Endpoint
}

// New validates routes and builds the client tree. Every validator is
// classified here; an unusable node, definition or validator yields a
// CONFIGURATION_ERROR naming its dotted path.
func New(routes route.Map, cfg Config) (*Client, error) {
	if err := routes.Validate(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return build(routes, nil, &cfg)
}

func build(m route.Map, path []string, cfg *Config) (*Client, error) {
	c := &Client{
		path:      path,
		groups:    make(map[string]*Client),
		endpoints: make(map[string]*Endpoint),
	}
	for _, name := range util.SortedKeys(m) {
		childPath := append(path[:len(path):len(path)], name)
		switch n := m[name].(type) {
		case *route.Definition:
			e, err := newEndpoint(route.JoinPath(childPath), n, cfg)
			if err != nil {
				return nil, err
			}
			c.endpoints[name] = e
		case route.Map:
			g, err := build(n, childPath, cfg)
			if err != nil {
				return nil, err
			}
			c.groups[name] = g
		}
	}
	return c, nil
}

// Name returns the dotted path of the client within the root tree. The root
// client has an empty name.
func (c *Client) Name() string { return route.JoinPath(c.path) }

// Group returns the child client registered under name, or nil.
func (c *Client) Group(name string) *Client { return c.groups[name] }

// Endpoint returns the endpoint registered under name, or nil.
func (c *Client) Endpoint(name string) *Endpoint { return c.endpoints[name] }

// Lookup resolves a dotted path relative to c.
func (c *Client) Lookup(dotted string) (*Endpoint, error) {
	segments := strings.Split(dotted, route.Separator)
	group := c
	for _, seg := range segments[:len(segments)-1] {
		if group = group.groups[seg]; group == nil {
			return nil, errors.RouteNotFound(dotted)
		}
	}
	e := group.endpoints[segments[len(segments)-1]]
	if e == nil {
		return nil, errors.RouteNotFound(dotted)
	}
	return e, nil
}

// Call looks up the endpoint at dotted and calls it.
func (c *Client) Call(ctx context.Context, dotted string, args Args, opts ...CallOption) (*httpclient.Response, error) {
	e, err := c.Lookup(dotted)
	if err != nil {
		return nil, err
	}
	return e.Call(ctx, args, opts...)
}

// Walk visits every endpoint depth-first in sorted name order. Within a
// group, endpoints are visited before child groups.
func (c *Client) Walk(fn func(e *Endpoint) error) error {
	for _, name := range util.SortedKeys(c.endpoints) {
		if err := fn(c.endpoints[name]); err != nil {
			return err
		}
	}
	for _, name := range util.SortedKeys(c.groups) {
		if err := c.groups[name].Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the dotted names of every endpoint under c, in Walk order.
func (c *Client) Names() []string {
	var names []string
	_ = c.Walk(func(e *Endpoint) error {
		names = append(names, e.Name())
		return nil
	})
	return names
}
