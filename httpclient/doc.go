// Package httpclient is the transport boundary of routekit.
//
// Everything above this package talks to the network through a single
// function type, Fetch. The default implementation is backed by net/http
// (see Transport), but any conforming function works: a recorder in tests, a
// proxy, or a stack of middleware built with Chain.
//
//	fetch := httpclient.Chain(
//	    httpclient.WithRequestID(),
//	    httpclient.WithLogging(log),
//	    httpclient.WithTracing(),
//	)(httpclient.DefaultFetch)
//
//	resp, err := fetch(ctx, "https://api.example.com/users/7", &httpclient.Request{
//	    Method: http.MethodGet,
//	    Header: http.Header{"Accept": {"application/json"}},
//	})
//
// The package also holds the pure helpers used to build requests: JoinURL,
// FillPath, EncodeQuery, AppendQuery, EncodeBody and InferContentType.
package httpclient
