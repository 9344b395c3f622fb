package validation

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/kbukum/routekit/errors"
)

// decodeInto converts a slot value into a T. Maps are decoded by json field
// name with weak typing, so query strings like "page": "2" fill an int.
func decodeInto[T any](input any) (T, error) {
	var out T
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return out, errors.InvalidInput("", "value is nil")
		}
		return *v, nil
	case nil:
		return out, errors.InvalidInput("", "value is nil")
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &out,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return out, errors.Internal(err)
	}
	if err := dec.Decode(input); err != nil {
		return out, errors.InvalidInput("", fmt.Sprintf("cannot decode %T into %s", input, reflect.TypeFor[T]())).
			WithCause(err)
	}
	return out, nil
}
