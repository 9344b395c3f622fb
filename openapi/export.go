package openapi

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/kbukum/routekit/errors"
	"github.com/kbukum/routekit/httpclient"
	"github.com/kbukum/routekit/route"
	"github.com/kbukum/routekit/schema"
)

// Version is the OpenAPI version written to exported documents.
const Version = "3.0.3"

// Info describes the exported API.
type Info struct {
	Title       string   `yaml:"title" mapstructure:"title"`
	Version     string   `yaml:"version" mapstructure:"version"`
	Description string   `yaml:"description" mapstructure:"description"`
	Servers     []string `yaml:"servers" mapstructure:"servers"`
}

// Export builds an OpenAPI document from routes. Definitions without an
// OperationID get their dotted route name. Two definitions resolving to the
// same path and method are a configuration error.
func Export(routes route.Map, info Info) (*openapi3.T, error) {
	if info.Title == "" || info.Version == "" {
		return nil, errors.Configuration("openapi: title and version are required")
	}
	if err := routes.Validate(); err != nil {
		return nil, err
	}

	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Paths: openapi3.Paths{},
	}
	for _, s := range info.Servers {
		doc.Servers = append(doc.Servers, &openapi3.Server{URL: s})
	}

	var tags []string
	err := routes.Walk(func(segments []string, def *route.Definition) error {
		name := route.JoinPath(segments)

		path := templatePath(def.Path)
		item := doc.Paths[path]
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths[path] = item
		}
		method := def.Method.String()
		if item.GetOperation(method) != nil {
			return errors.Configuration(fmt.Sprintf("openapi: duplicate operation %s %s", method, path)).
				WithDetail("route", name)
		}
		item.SetOperation(method, operation(name, def))

		for _, tag := range def.Tags {
			if !slices.Contains(tags, tag) {
				tags = append(tags, tag)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(tags)
	for _, tag := range tags {
		doc.Tags = append(doc.Tags, &openapi3.Tag{Name: tag})
	}
	return doc, nil
}

func operation(name string, def *route.Definition) *openapi3.Operation {
	op := &openapi3.Operation{
		Tags:        def.Tags,
		Summary:     def.Summary,
		Description: def.Description,
		OperationID: def.OperationID,
		Responses:   openapi3.Responses{},
	}
	if op.OperationID == "" {
		op.OperationID = name
	}

	for _, p := range httpclient.PathParams(def.Path) {
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
			Value: openapi3.NewPathParameter(p).WithSchema(openapi3.NewStringSchema()),
		})
	}

	slots := def.Slots()
	if !httpclient.NoBody(def.Method.String()) && slots.Body != nil && !schema.IsNone(slots.Body) {
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(openapi3.NewSchema()),
		}
	}

	for _, status := range def.Statuses() {
		resp := def.Responses[status]
		r := openapi3.NewResponse().WithDescription(resp.Description)
		if resp.Schema != nil && !schema.IsNone(resp.Schema) {
			r = r.WithJSONSchema(openapi3.NewSchema())
		}
		op.Responses[strconv.Itoa(status)] = &openapi3.ResponseRef{Value: r}
	}
	if len(op.Responses) == 0 {
		op.Responses = openapi3.NewResponses()
	}
	return op
}

// templatePath converts a route path into an OpenAPI path template. Absolute
// URLs keep only their path; query strings and fragments are dropped.
func templatePath(p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		if u, err := url.Parse(p); err == nil {
			p = u.Path
		}
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return httpclient.RewritePath(p, func(name string) (string, bool) {
		return "{" + name + "}", true
	})
}
