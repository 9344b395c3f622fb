package routeclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-viper/mapstructure/v2"

	"github.com/kbukum/routekit/errors"
	"github.com/kbukum/routekit/httpclient"
	"github.com/kbukum/routekit/logger"
	"github.com/kbukum/routekit/observability"
	"github.com/kbukum/routekit/route"
	"github.com/kbukum/routekit/schema"
)

// Endpoint invokes one route definition. It holds no per-call state and is
// safe for concurrent use.
type Endpoint struct {
	name string
	def  *route.Definition
	cfg  *Config

	params    *schema.Compiled
	query     *schema.Compiled
	body      *schema.Compiled
	headers   *schema.Compiled
	responses map[int]*schema.Compiled
}

func newEndpoint(name string, def *route.Definition, cfg *Config) (*Endpoint, error) {
	e := &Endpoint{name: name, def: def, cfg: cfg, responses: make(map[int]*schema.Compiled)}

	slots := def.Slots()
	for _, s := range []struct {
		slot string
		v    any
		dst  **schema.Compiled
	}{
		{"params", slots.Params, &e.params},
		{"query", slots.Query, &e.query},
		{"body", slots.Body, &e.body},
		{"headers", slots.Headers, &e.headers},
	} {
		c, err := compile(name, s.slot, s.v)
		if err != nil {
			return nil, err
		}
		*s.dst = c
	}

	for status, resp := range def.Responses {
		if resp.Schema == nil || schema.IsNone(resp.Schema) {
			continue
		}
		c, err := compile(name, "response "+strconv.Itoa(status), resp.Schema)
		if err != nil {
			return nil, err
		}
		e.responses[status] = c
	}
	return e, nil
}

func compile(name, slot string, v any) (*schema.Compiled, error) {
	c, err := schema.Compile(v)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			appErr.Message = fmt.Sprintf("%s: %s validator: %s", name, slot, appErr.Message)
			return nil, appErr.WithDetails(map[string]any{"route": name, "slot": slot})
		}
		return nil, err
	}
	return c, nil
}

// Name returns the dotted route path of the endpoint.
func (e *Endpoint) Name() string { return e.name }

// Definition returns the route definition the endpoint was built from.
func (e *Endpoint) Definition() *route.Definition { return e.def }

// Call runs the request pipeline and returns the response as received.
// Validation, encoding and header source errors abort before dispatch;
// transport errors are returned unchanged. Response schema failures are
// reported as diagnostics and never returned.
func (e *Endpoint) Call(ctx context.Context, args Args, opts ...CallOption) (*httpclient.Response, error) {
	method := e.def.Method.String()
	op := observability.NewOperation(e.name, method, logger.RequestIDFromContext(ctx), e.cfg.Metrics)
	ctx, span := op.Start(ctx)

	resp, err := e.call(ctx, args, opts)

	status := strconv.Itoa(statusOf(resp))
	if err != nil {
		status = "error"
		if appErr, ok := errors.AsAppError(err); ok {
			status = string(appErr.Code)
		}
	}
	op.End(ctx, span, status, err)
	return resp, err
}

func (e *Endpoint) call(ctx context.Context, args Args, opts []CallOption) (*httpclient.Response, error) {
	method := e.def.Method.String()
	options := e.cfg.Options.Merge(callOptions(opts))

	in, err := e.validate(ctx, args)
	if err != nil {
		return nil, err
	}

	params, err := toMap("params", in.Params)
	if err != nil {
		return nil, err
	}
	rawURL := httpclient.JoinURL(e.cfg.BaseURL, httpclient.FillPath(e.def.Path, params))

	if in.Query != nil {
		query, err := toMap("query", in.Query)
		if err != nil {
			return nil, err
		}
		qs, err := httpclient.EncodeQuery(query)
		if err != nil {
			return nil, err
		}
		rawURL = httpclient.AppendQuery(rawURL, qs)
	}

	header, err := e.assembleHeaders(ctx, in.Headers, options.Headers)
	if err != nil {
		return nil, err
	}

	var body any
	if in.Body != nil && !httpclient.NoBody(method) {
		if body, err = httpclient.EncodeBody(in.Body); err != nil {
			return nil, err
		}
		if header.Get("Content-Type") == "" {
			if ct := httpclient.InferContentType(in.Body); ct != "" {
				header.Set("Content-Type", ct)
			}
		}
	}

	resp, err := e.cfg.Fetch(ctx, rawURL, &httpclient.Request{
		Method:  method,
		Header:  header,
		Body:    body,
		Options: options,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.Internal(fmt.Errorf("fetch for %s %s returned no response", method, rawURL))
	}

	e.checkResponse(ctx, rawURL, resp)
	return resp, nil
}

// validate runs each supplied slot through its validator. Unsupplied slots
// stay nil.
func (e *Endpoint) validate(ctx context.Context, args Args) (Args, error) {
	var out Args
	for _, s := range []struct {
		slot string
		in   any
		c    *schema.Compiled
		dst  *any
	}{
		{"params", args.Params, e.params, &out.Params},
		{"query", args.Query, e.query, &out.Query},
		{"body", args.Body, e.body, &out.Body},
		{"headers", args.Headers, e.headers, &out.Headers},
	} {
		if s.in == nil {
			continue
		}
		v, err := s.c.Parse(ctx, s.in)
		if err != nil {
			fields := logger.RouteFields(e.name, string(e.def.Method))
			fields[logger.FieldSlot] = s.slot
			fields[logger.FieldKind] = s.c.Kind().String()
			e.cfg.Logger.WithContext(ctx).Debug("argument rejected", logger.MergeWithError(fields, err))
			return Args{}, err
		}
		*s.dst = v
	}
	return out, nil
}

// assembleHeaders layers the headers argument, the option headers and the
// instance HeaderSource. Later layers win.
func (e *Endpoint) assembleHeaders(ctx context.Context, arg any, optHeaders map[string]string) (http.Header, error) {
	header := make(http.Header)

	argHeaders, err := toMap("headers", arg)
	if err != nil {
		return nil, err
	}
	for k, v := range argHeaders {
		if err := setHeader(header, k, v); err != nil {
			return nil, err
		}
	}
	for k, v := range optHeaders {
		header.Set(k, v)
	}

	if e.cfg.Headers != nil {
		instance, err := e.cfg.Headers.Headers(ctx)
		if err != nil {
			return nil, err
		}
		for k, v := range instance {
			header.Set(k, v)
		}
	}
	return header, nil
}

func setHeader(h http.Header, key string, v any) error {
	switch val := v.(type) {
	case nil:
	case string:
		h.Set(key, val)
	case []string:
		h.Del(key)
		for _, s := range val {
			h.Add(key, s)
		}
	default:
		s, ok, err := httpclient.FormatValue(val)
		if err != nil {
			return errors.InvalidInput("headers", fmt.Sprintf("header %s cannot be rendered", key)).WithCause(err)
		}
		if ok {
			h.Set(key, s)
		}
	}
	return nil
}

// toMap flattens a map or struct into a map keyed by json field names.
func toMap(slot string, v any) (map[string]any, error) {
	switch m := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return m, nil
	}

	out := make(map[string]any)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &out,
	})
	if err != nil {
		return nil, errors.Internal(err)
	}
	if err := dec.Decode(v); err != nil {
		return nil, errors.InvalidInput(slot, fmt.Sprintf("%s must be a map or struct, got %T", slot, v)).WithCause(err)
	}
	return out, nil
}

func statusOf(resp *httpclient.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
