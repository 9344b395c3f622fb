package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/routekit/errors"
)

// StandardSchema is the cross-library validation protocol. Exposing it is a
// capability marker: the returned props carry the negotiated entry point.
type StandardSchema interface {
	StandardSchema() StandardProps
}

// StandardProps describes a StandardSchema implementation.
type StandardProps struct {
	// Version is the protocol version, currently 1.
	Version int
	// Vendor names the library providing the schema.
	Vendor string
	// Validate checks value and returns either the output value or issues.
	Validate func(ctx context.Context, value any) Result
}

// Result is the outcome of StandardProps.Validate. A result with at least one
// issue is a failure; otherwise Value holds the validated output.
type Result struct {
	Value  any
	Issues []Issue
}

// Issue is a single validation problem.
type Issue struct {
	// Message describes the problem.
	Message string `json:"message"`
	// Path locates the offending value; elements are keys or indexes.
	Path []any `json:"path,omitempty"`
}

// String renders the issue as "path.to.field: message".
func (i Issue) String() string {
	if len(i.Path) == 0 {
		return i.Message
	}
	parts := make([]string, len(i.Path))
	for n, p := range i.Path {
		parts[n] = fmt.Sprint(p)
	}
	return strings.Join(parts, ".") + ": " + i.Message
}

// IssuesError is returned when a StandardSchema reports issues. It unwraps
// to an *errors.AppError with code VALIDATION_FAILED and an "issues" detail.
type IssuesError struct {
	Vendor string
	Issues []Issue

	app *errors.AppError
}

func newIssuesError(vendor string, issues []Issue) *IssuesError {
	msgs := make([]string, len(issues))
	for i, issue := range issues {
		msgs[i] = issue.String()
	}
	app := errors.ValidationFailed(msgs...).WithDetail("issues", issues)
	if vendor != "" {
		app.WithDetail("vendor", vendor)
	}
	return &IssuesError{Vendor: vendor, Issues: issues, app: app}
}

// Error implements error.
func (e *IssuesError) Error() string {
	return "schema: " + e.app.Message
}

// Unwrap returns the AppError view of the issues.
func (e *IssuesError) Unwrap() error { return e.app }

func standardParse(props StandardProps) ParseFunc {
	return func(ctx context.Context, input any) (any, error) {
		res := props.Validate(ctx, input)
		if len(res.Issues) > 0 {
			return nil, newIssuesError(props.Vendor, res.Issues)
		}
		return res.Value, nil
	}
}
