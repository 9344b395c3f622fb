package httpclient

import (
	"context"
	"net/http"
)

// Fetch performs one HTTP exchange. rawURL is absolute and already carries
// the query string. Implementations must honour ctx cancellation.
type Fetch func(ctx context.Context, rawURL string, req *Request) (*Response, error)

// Request is the descriptor handed to a Fetch.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Header holds the assembled request headers.
	Header http.Header
	// Body is the wire body: nil, string, []byte, io.Reader, url.Values or
	// *MultipartBody. See EncodeBody.
	Body any
	// Options carries passthrough transport settings.
	Options Options
}

// NoBody reports whether method never carries a request body.
func NoBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead:
		return true
	}
	return false
}
