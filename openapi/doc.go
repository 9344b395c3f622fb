// Package openapi exports a route.Map as an OpenAPI 3 document.
//
// Only route metadata is consumed: path, method, tags, operation id,
// summary, description and documented responses. Path templates are
// rewritten from ":name" to "{name}" and every placeholder becomes a
// required string path parameter. Validators are opaque here, so request
// bodies and response bodies are described with an unconstrained JSON
// schema.
//
//	doc, err := openapi.Export(routes, openapi.Info{Title: "Users API", Version: "1.0.0"})
//	data, err := openapi.YAML(doc)
package openapi
