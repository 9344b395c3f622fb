package routeclient

import (
	"context"
	"net/http"

	"github.com/kbukum/routekit/httpclient"
)

// TypedResponse wraps a response with a decoded body of type T.
type TypedResponse[T any] struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Header holds the response headers.
	Header http.Header
	// Data is the decoded body. It is the zero value for non-2xx responses
	// and empty bodies.
	Data T
	// Response is the raw response.
	Response *httpclient.Response
}

// OK reports whether the status code is 2xx.
func (r *TypedResponse[T]) OK() bool { return r.Response.IsSuccess() }

// Decode wraps resp, decoding its JSON body into T when the status is 2xx.
func Decode[T any](resp *httpclient.Response) (*TypedResponse[T], error) {
	out := &TypedResponse[T]{StatusCode: resp.StatusCode, Header: resp.Header, Response: resp}
	if !resp.IsSuccess() || len(resp.Bytes()) == 0 {
		return out, nil
	}
	data, err := httpclient.Decode[T](resp)
	if err != nil {
		return nil, err
	}
	out.Data = data
	return out, nil
}

// Call calls e and decodes the success body into T.
func Call[T any](ctx context.Context, e *Endpoint, args Args, opts ...CallOption) (*TypedResponse[T], error) {
	resp, err := e.Call(ctx, args, opts...)
	if err != nil {
		return nil, err
	}
	return Decode[T](resp)
}
