package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/routekit/errors"
)

// FieldError is one rejected field of a slot value.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string { return e.Field + ": " + e.Message }

// Validator accumulates FieldErrors from chained checks. Checks on optional
// values skip the empty string.
type Validator struct {
	fields []FieldError
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a rejected field.
func (v *Validator) AddError(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

func (v *Validator) check(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool { return len(v.fields) > 0 }

// Errors returns the recorded field errors in check order.
func (v *Validator) Errors() []FieldError { return v.fields }

// Validate returns nil when every check passed. Otherwise it returns an
// INVALID_INPUT error listing the fields, with the FieldErrors under the
// "fields" detail.
func (v *Validator) Validate() error {
	if !v.HasErrors() {
		return nil
	}
	parts := make([]string, len(v.fields))
	for i, f := range v.fields {
		parts[i] = f.String()
	}
	return errors.Validation(strings.Join(parts, "; ")).WithDetail("fields", v.fields)
}

// Required rejects blank strings.
func (v *Validator) Required(field, value string) *Validator {
	return v.check(strings.TrimSpace(value) != "", field, "is required")
}

// RequiredUUID accepts only a well-formed UUID other than the nil UUID.
func (v *Validator) RequiredUUID(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v.check(false, field, "is required")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return v.check(false, field, "must be a valid UUID")
	}
	return v.check(id != uuid.Nil, field, "must not be empty")
}

// OptionalUUID rejects a malformed UUID when value is set.
func (v *Validator) OptionalUUID(field, value string) *Validator {
	if value == "" {
		return v
	}
	return v.check(uuid.Validate(value) == nil, field, "must be a valid UUID")
}

// MaxLength rejects strings longer than maxLen bytes.
func (v *Validator) MaxLength(field, value string, maxLen int) *Validator {
	return v.check(len(value) <= maxLen, field, fmt.Sprintf("must be %d characters or less", maxLen))
}

// Range rejects numbers outside [minVal, maxVal].
func (v *Validator) Range(field string, value, minVal, maxVal int) *Validator {
	return v.check(value >= minVal && value <= maxVal, field, fmt.Sprintf("must be between %d and %d", minVal, maxVal))
}

var patterns sync.Map // pattern string -> *regexp.Regexp

func compiled(pattern string) (*regexp.Regexp, error) {
	if re, ok := patterns.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patterns.Store(pattern, re)
	return re, nil
}

// Pattern rejects a set value that does not match pattern. An invalid
// pattern rejects every value.
func (v *Validator) Pattern(field, value, pattern string) *Validator {
	if value == "" {
		return v
	}
	re, err := compiled(pattern)
	return v.check(err == nil && re.MatchString(value), field, "does not match required format")
}

// OneOf rejects a set value missing from allowed.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	return v.check(slices.Contains(allowed, value), field, "must be one of: "+strings.Join(allowed, ", "))
}

// Custom records message for field when condition is false.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	return v.check(condition, field, message)
}

// RuleSchema validates a slot value with imperative checks.
type RuleSchema[T any] struct {
	check func(v *Validator, in T)
}

// Rules returns a RuleSchema running check against the decoded T.
func Rules[T any](check func(v *Validator, in T)) *RuleSchema[T] {
	return &RuleSchema[T]{check: check}
}

// Validate converts input into a T and runs the checks.
func (r *RuleSchema[T]) Validate(input any) (any, error) {
	in, err := decodeInto[T](input)
	if err != nil {
		return nil, err
	}
	v := New()
	r.check(v, in)
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}
