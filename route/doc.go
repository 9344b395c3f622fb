// Package route declares HTTP endpoints as data.
//
// A Definition describes one endpoint: a path template with ":name"
// placeholders, a method, optional validators for each request slot, and the
// responses it may produce keyed by status code. Definitions are grouped into
// a Map, whose values are either further Maps or Definitions, to any depth:
//
//	routes := route.Map{
//	    "users": route.Map{
//	        "get": route.New(route.GET, "/users/:id",
//	            route.WithParams(idSchema),
//	            route.WithResponse(200, "the user", userSchema),
//	        ),
//	    },
//	}
//
// Validators are opaque here; package schema decides how to call them.
// Metadata such as tags and operation ids is carried but never interpreted,
// except by the openapi exporter.
package route
