package schema

import (
	"context"
	"fmt"
	"reflect"

	"github.com/kbukum/routekit/errors"
)

var (
	ctxFuncType   = reflect.TypeOf((func(context.Context, any) (any, error))(nil))
	plainFuncType = reflect.TypeOf((func(any) (any, error))(nil))
)

// Compiled is a validator classified into its calling convention.
type Compiled struct {
	kind  Kind
	parse ParseFunc
}

// Kind returns the convention the validator was classified into.
func (c *Compiled) Kind() Kind { return c.kind }

// Parse runs the validator.
func (c *Compiled) Parse(ctx context.Context, input any) (any, error) {
	return c.parse(ctx, input)
}

// Func returns the normalized parse function.
func (c *Compiled) Func() ParseFunc { return c.parse }

// Compile classifies v and binds its parse function. It fails with a
// CONFIGURATION_ERROR when v matches no known convention.
func Compile(v any) (*Compiled, error) {
	kind, parse := classify(v)
	if kind == KindUnknown {
		return nil, errors.Configuration("no compatible validation method found").
			WithDetail("type", fmt.Sprintf("%T", v))
	}
	if parse == nil {
		return nil, errors.Configuration("validator entry point is nil").
			WithDetail("type", fmt.Sprintf("%T", v)).
			WithDetail("kind", kind.String())
	}
	return &Compiled{kind: kind, parse: parse}, nil
}

// Adapt returns the uniform parse function for v.
func Adapt(v any) (ParseFunc, error) {
	c, err := Compile(v)
	if err != nil {
		return nil, err
	}
	return c.parse, nil
}

// MustAdapt is like Adapt but panics on an unusable validator.
func MustAdapt(v any) ParseFunc {
	parse, err := Adapt(v)
	if err != nil {
		panic(err)
	}
	return parse
}

// Classify returns the convention v would be compiled with.
func Classify(v any) Kind {
	kind, _ := classify(v)
	return kind
}

func identity(_ context.Context, input any) (any, error) {
	return input, nil
}

func classify(v any) (Kind, ParseFunc) {
	if IsNone(v) {
		return KindNone, identity
	}

	if fn, ok := asFunc(v); ok {
		if a, ok := v.(AssertReturner); ok {
			return KindCallableAssert, func(_ context.Context, input any) (any, error) {
				return a.Assert(input)
			}
		}
		if _, ok := v.(StandardSchema); !ok {
			return KindFunc, fn
		}
	}

	switch s := v.(type) {
	case ContextParser:
		return KindParseContext, s.ParseContext
	case Parser:
		return KindParse, plain(s.Parse)
	case Validator:
		return KindValidate, plain(s.Validate)
	case Creator:
		return KindCreate, plain(s.Create)
	case Asserter:
		return KindAssert, func(_ context.Context, input any) (any, error) {
			if err := s.Assert(input); err != nil {
				return nil, err
			}
			return input, nil
		}
	case AssertReturner:
		return KindAssert, func(_ context.Context, input any) (any, error) {
			return s.Assert(input)
		}
	case StandardSchema:
		props := s.StandardSchema()
		if props.Validate == nil {
			return KindStandard, nil
		}
		return KindStandard, standardParse(props)
	}

	return KindUnknown, nil
}

// asFunc reports whether v is directly callable with a supported signature
// and returns it as a ParseFunc. Named function types are accepted as long
// as their underlying type is one of the two supported signatures.
func asFunc(v any) (ParseFunc, bool) {
	switch f := v.(type) {
	case ParseFunc:
		return f, f != nil
	case func(context.Context, any) (any, error):
		return f, f != nil
	case func(any) (any, error):
		return plain(f), f != nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, false
	}
	switch t := rv.Type(); {
	case t.ConvertibleTo(ctxFuncType):
		return rv.Convert(ctxFuncType).Interface().(func(context.Context, any) (any, error)), true
	case t.ConvertibleTo(plainFuncType):
		return plain(rv.Convert(plainFuncType).Interface().(func(any) (any, error))), true
	}
	return nil, false
}

func plain(fn func(any) (any, error)) ParseFunc {
	return func(_ context.Context, input any) (any, error) {
		return fn(input)
	}
}
