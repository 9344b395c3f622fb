package httpclient

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/kbukum/routekit/errors"
)

// Response is a fully read HTTP response. The body is held in memory so it
// can be cloned and decoded more than once.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Header holds the response headers.
	Header http.Header
	// URL is the final URL after redirects, when known.
	URL string

	body []byte
}

// NewResponse builds a Response from its parts. Body is not copied.
func NewResponse(status int, header http.Header, body []byte) *Response {
	if header == nil {
		header = make(http.Header)
	}
	return &Response{StatusCode: status, Header: header, body: body}
}

// JSONResponse builds a Response with a JSON-encoded body. It is mostly
// useful for fake transports.
func JSONResponse(status int, v any) (*Response, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Encoding("response body", err)
	}
	return NewResponse(status, http.Header{"Content-Type": {"application/json"}}, data), nil
}

// Bytes returns a copy of the body.
func (r *Response) Bytes() []byte {
	return bytes.Clone(r.body)
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.body)
}

// Body returns a fresh reader over the body.
func (r *Response) Body() io.Reader {
	return bytes.NewReader(r.body)
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if len(bytes.TrimSpace(r.body)) == 0 {
		return errors.Decoding(io.ErrUnexpectedEOF)
	}
	if err := json.Unmarshal(r.body, v); err != nil {
		return errors.Decoding(err)
	}
	return nil
}

// Clone returns an independent copy of the response.
func (r *Response) Clone() *Response {
	return &Response{
		StatusCode: r.StatusCode,
		Header:     r.Header.Clone(),
		URL:        r.URL,
		body:       bytes.Clone(r.body),
	}
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// Decode decodes the JSON body of resp into a T.
func Decode[T any](resp *Response) (T, error) {
	var out T
	if err := resp.JSON(&out); err != nil {
		return out, err
	}
	return out, nil
}
