package schema

import (
	"context"
	"fmt"
	"reflect"

	"github.com/kbukum/routekit/errors"
)

// Func adapts a typed validation function into a ParseFunc. Input that is not
// a T fails with an INVALID_INPUT error before fn is called.
//
//	params := schema.Func(func(p UserParams) (UserParams, error) { ... })
func Func[T, U any](fn func(T) (U, error)) ParseFunc {
	return func(_ context.Context, input any) (any, error) {
		t, ok := input.(T)
		if !ok {
			return nil, errors.InvalidInput("", fmt.Sprintf("expected %s, got %T", reflect.TypeFor[T](), input))
		}
		return fn(t)
	}
}

// Check adapts a typed predicate that returns only an error. The input is
// returned unchanged on success.
func Check[T any](fn func(T) error) ParseFunc {
	return Func(func(t T) (T, error) {
		if err := fn(t); err != nil {
			var zero T
			return zero, err
		}
		return t, nil
	})
}
