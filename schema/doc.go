// Package schema normalizes validators with different calling conventions
// into one uniform parse function.
//
// A validator is any value that exposes one of a small, fixed set of shapes:
// a plain function, a Parse/ParseContext/Validate/Create method, an Assert
// method, or the standard validation protocol (StandardSchema). Compile
// classifies a value into a Kind exactly once and keeps a single ParseFunc
// for it, so the rest of routekit only ever deals with ParseFunc.
//
// Classification follows a strict precedence order; see Kind for the list.
// Values that match no convention are rejected with a configuration error.
//
//	parse, err := schema.Adapt(userSchema)
//	if err != nil {
//	    return err // route definition is broken
//	}
//	out, err := parse(ctx, input)
package schema
