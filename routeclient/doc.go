// Package routeclient builds a callable client tree from a route.Map.
//
// Every route.Definition becomes an *Endpoint; every nested route.Map
// becomes a child *Client. Validators attached to a definition are
// classified once, when the client is built.
//
// An Endpoint call runs a fixed pipeline:
//
//  1. merge the base and call-level httpclient.Options
//  2. validate each supplied argument slot
//  3. fill the path template and prepend the base URL
//  4. serialize and append the query
//  5. assemble headers (argument, options, then the instance HeaderSource)
//  6. encode the body and infer its Content-Type (skipped for GET and HEAD)
//  7. dispatch through the configured httpclient.Fetch
//  8. check the response body against the schema declared for its status
//
// Steps 1 to 6 fail before anything is sent. Transport errors are returned
// unchanged. A response that does not match its schema is reported as a
// ContractViolation diagnostic and the response is still returned.
//
// # Usage
//
//	routes := route.Map{
//	    "users": route.Map{
//	        "get": route.New(route.GET, "/users/:id",
//	            route.WithParams(validation.Struct[UserParams]()),
//	            route.WithResponse(200, "the user", validation.Struct[User]()),
//	        ),
//	    },
//	}
//
//	client, err := routeclient.New(routes, routeclient.Config{BaseURL: "https://api.example.com"})
//	resp, err := client.Group("users").Endpoint("get").Call(ctx, routeclient.Args{
//	    Params: map[string]any{"id": "42"},
//	})
package routeclient
