package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/routekit/errors"
)

var structValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their wire names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return toSnakeCase(f.Name)
		}
		return name
	})
	return v
})

// Validate checks s against its `validate:"..."` struct tags. Failures come
// back as an INVALID_INPUT error with one FieldError per rejected field.
func Validate(s any) error {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.Validation("validation failed").WithCause(err)
	}
	v := New()
	for _, fe := range fieldErrs {
		v.AddError(fe.Field(), describe(fe))
	}
	return v.Validate()
}

// Schema validates a slot value into a T using struct tags.
type Schema[T any] struct{}

// Struct returns a Schema for T.
func Struct[T any]() *Schema[T] {
	return &Schema[T]{}
}

// Parse converts input into a T and validates it.
func (s *Schema[T]) Parse(input any) (any, error) {
	out, err := decodeInto[T](input)
	if err != nil {
		return nil, err
	}
	if err := Validate(&out); err != nil {
		return nil, err
	}
	return out, nil
}

var tagMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	"url":      "must be a valid URL",
	"uuid":     "must be a valid UUID",
	"min":      "must be at least %s",
	"gte":      "must be at least %s",
	"max":      "must be at most %s",
	"lte":      "must be at most %s",
	"len":      "must have length %s",
	"oneof":    "must be one of: %s",
}

func describe(fe validator.FieldError) string {
	msg, ok := tagMessages[fe.Tag()]
	if !ok {
		return "failed " + fe.Tag() + " check"
	}
	return strings.Replace(msg, "%s", fe.Param(), 1)
}

// toSnakeCase turns a Go field name such as CreatedAt into created_at.
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
