package route

import (
	"fmt"

	"github.com/kbukum/routekit/errors"
	"github.com/kbukum/routekit/util"
)

// Request holds the validators for each request slot. A nil slot, or the
// schema.None marker, means the slot passes through unvalidated.
type Request struct {
	Params  any
	Query   any
	Body    any
	Headers any
}

// Response describes one documented response.
type Response struct {
	Description string
	// Schema validates the decoded body. Nil means the body is not checked.
	Schema any
}

// Describe returns a Response carrying only a description.
func Describe(description string) Response {
	return Response{Description: description}
}

// Definition declares a single endpoint.
type Definition struct {
	Path        string
	Method      Method
	Request     *Request
	Responses   map[int]Response
	Tags        []string
	OperationID string
	Summary     string
	Description string
}

func (*Definition) node() {}

// Option configures a Definition built by New.
type Option func(*Definition)

// New builds a Definition. Responses is always non-nil on the result.
func New(method Method, path string, opts ...Option) *Definition {
	d := &Definition{Path: path, Method: method, Responses: make(map[int]Response)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Definition) request() *Request {
	if d.Request == nil {
		d.Request = &Request{}
	}
	return d.Request
}

// WithParams sets the path parameter validator.
func WithParams(v any) Option {
	return func(d *Definition) { d.request().Params = v }
}

// WithQuery sets the query validator.
func WithQuery(v any) Option {
	return func(d *Definition) { d.request().Query = v }
}

// WithBody sets the body validator.
func WithBody(v any) Option {
	return func(d *Definition) { d.request().Body = v }
}

// WithHeaders sets the header validator.
func WithHeaders(v any) Option {
	return func(d *Definition) { d.request().Headers = v }
}

// WithResponse documents a response and optionally its body schema.
func WithResponse(status int, description string, schema any) Option {
	return func(d *Definition) {
		d.Responses[status] = Response{Description: description, Schema: schema}
	}
}

// WithTags appends tags.
func WithTags(tags ...string) Option {
	return func(d *Definition) { d.Tags = append(d.Tags, tags...) }
}

// WithOperationID sets the operation id.
func WithOperationID(id string) Option {
	return func(d *Definition) { d.OperationID = id }
}

// WithSummary sets the summary.
func WithSummary(s string) Option {
	return func(d *Definition) { d.Summary = s }
}

// WithDescription sets the long description.
func WithDescription(s string) Option {
	return func(d *Definition) { d.Description = s }
}

// Slots returns the request validators. It never returns nil; a definition
// without a Request reports every slot as absent.
func (d *Definition) Slots() Request {
	if d.Request == nil {
		return Request{}
	}
	return *d.Request
}

// ResponseFor returns the response declared for status.
func (d *Definition) ResponseFor(status int) (Response, bool) {
	r, ok := d.Responses[status]
	return r, ok
}

// Statuses returns the declared status codes in ascending order.
func (d *Definition) Statuses() []int {
	return util.SortedKeys(d.Responses)
}

// Validate checks the structural requirements of a definition.
func (d *Definition) Validate() error {
	switch {
	case d.Path == "":
		return errors.Configuration("route path is empty")
	case !d.Method.Valid():
		return errors.Configuration(fmt.Sprintf("unsupported method %q", d.Method))
	case d.Responses == nil:
		return errors.Configuration("route declares no responses map")
	}
	return nil
}
