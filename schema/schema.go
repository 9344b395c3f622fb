package schema

import "context"

// ParseFunc validates input and returns the validated (possibly coerced)
// value, or an error. A ParseFunc holds no state between calls and is safe
// for concurrent use as long as the underlying validator is.
type ParseFunc func(ctx context.Context, input any) (any, error)

// Kind identifies the calling convention a validator was classified into.
// The constants are listed in precedence order: when a value satisfies more
// than one convention, the earliest Kind wins.
type Kind int

const (
	// KindUnknown means no convention matched.
	KindUnknown Kind = iota
	// KindNone is nil or the None marker. Input is returned unchanged.
	KindNone
	// KindCallableAssert is a callable value that also implements AssertReturner.
	KindCallableAssert
	// KindFunc is a callable value without a StandardSchema marker.
	KindFunc
	// KindParseContext implements ContextParser.
	KindParseContext
	// KindParse implements Parser.
	KindParse
	// KindValidate implements Validator.
	KindValidate
	// KindCreate implements Creator.
	KindCreate
	// KindAssert implements only Asserter, or is a non-callable
	// AssertReturner whose result replaces the input.
	KindAssert
	// KindStandard implements StandardSchema.
	KindStandard
)

var kindNames = [...]string{
	KindUnknown:        "unknown",
	KindNone:           "none",
	KindCallableAssert: "callable-assert",
	KindFunc:           "func",
	KindParseContext:   "parse-context",
	KindParse:          "parse",
	KindValidate:       "validate",
	KindCreate:         "create",
	KindAssert:         "assert",
	KindStandard:       "standard",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

type none struct{}

// None explicitly marks a request slot as unvalidated. It behaves exactly
// like leaving the slot nil.
var None = none{}

// IsNone reports whether v is nil or the None marker.
func IsNone(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(none)
	return ok
}

// AssertReturner is implemented by callable validators whose Assert method
// returns the validated value or fails.
type AssertReturner interface {
	Assert(input any) (any, error)
}

// ContextParser is implemented by validators whose parse may block (remote
// lookups, database checks). It is preferred over Parser.
type ContextParser interface {
	ParseContext(ctx context.Context, input any) (any, error)
}

// Parser is implemented by validators with a synchronous parse.
type Parser interface {
	Parse(input any) (any, error)
}

// Validator is implemented by validators exposing Validate.
type Validator interface {
	Validate(input any) (any, error)
}

// Creator is implemented by validators that construct the output value.
type Creator interface {
	Create(input any) (any, error)
}

// Asserter is implemented by validators that only check input and return
// nothing on success.
type Asserter interface {
	Assert(input any) error
}
