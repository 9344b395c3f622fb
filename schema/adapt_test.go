package schema

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/kbukum/routekit/errors"
)

// --- fixtures, one per convention ---

type parseFn func(any) (any, error)

type callableAssert func(any) (any, error)

func (callableAssert) Assert(in any) (any, error) { return "assert:" + fmt.Sprint(in), nil }

type callableStandard func(any) (any, error)

func (callableStandard) StandardSchema() StandardProps {
	return StandardProps{Version: 1, Vendor: "fn", Validate: func(_ context.Context, v any) Result {
		return Result{Value: "standard:" + fmt.Sprint(v)}
	}}
}

type ctxParser struct{}

func (ctxParser) ParseContext(_ context.Context, in any) (any, error) {
	return "ctx:" + fmt.Sprint(in), nil
}
func (ctxParser) Parse(in any) (any, error) { return "parse:" + fmt.Sprint(in), nil }

type parser struct{}

func (parser) Parse(in any) (any, error)    { return "parse:" + fmt.Sprint(in), nil }
func (parser) Validate(in any) (any, error) { return "validate:" + fmt.Sprint(in), nil }

type validator struct{}

func (validator) Validate(in any) (any, error) { return "validate:" + fmt.Sprint(in), nil }
func (validator) Create(in any) (any, error)   { return "create:" + fmt.Sprint(in), nil }

type creator struct{}

func (creator) Create(in any) (any, error) { return "create:" + fmt.Sprint(in), nil }

type asserter struct{ fail bool }

func (a asserter) Assert(any) error {
	if a.fail {
		return stderrors.New("assertion failed")
	}
	return nil
}

type assertReturner struct{}

func (assertReturner) Assert(in any) (any, error) { return "returned:" + fmt.Sprint(in), nil }

type standard struct{ issues []Issue }

func (s standard) StandardSchema() StandardProps {
	return StandardProps{Version: 1, Vendor: "test", Validate: func(_ context.Context, v any) Result {
		if len(s.issues) > 0 {
			return Result{Issues: s.issues}
		}
		return Result{Value: "standard:" + fmt.Sprint(v)}
	}}
}

type standardAndParse struct{ standard }

func (standardAndParse) Parse(in any) (any, error) { return "parse:" + fmt.Sprint(in), nil }

type brokenStandard struct{}

func (brokenStandard) StandardSchema() StandardProps { return StandardProps{Version: 1} }

type noMethods struct{ Name string }

func TestClassify_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		value any
		kind  Kind
		want  any
	}{
		{"nil", nil, KindNone, "x"},
		{"none marker", None, KindNone, "x"},
		{"callable with assert", callableAssert(func(in any) (any, error) { return "call", nil }), KindCallableAssert, "assert:x"},
		{"plain func", func(in any) (any, error) { return "func:" + fmt.Sprint(in), nil }, KindFunc, "func:x"},
		{"ctx func", func(_ context.Context, in any) (any, error) { return "ctxfunc:" + fmt.Sprint(in), nil }, KindFunc, "ctxfunc:x"},
		{"named func type", parseFn(func(in any) (any, error) { return "named:" + fmt.Sprint(in), nil }), KindFunc, "named:x"},
		{"parse func", ParseFunc(func(_ context.Context, in any) (any, error) { return "pf", nil }), KindFunc, "pf"},
		{"callable standard skips call", callableStandard(func(any) (any, error) { return "call", nil }), KindStandard, "standard:x"},
		{"parse context over parse", ctxParser{}, KindParseContext, "ctx:x"},
		{"parse over validate", parser{}, KindParse, "parse:x"},
		{"validate over create", validator{}, KindValidate, "validate:x"},
		{"create", creator{}, KindCreate, "create:x"},
		{"assert only", asserter{}, KindAssert, "x"},
		{"non-callable assert returner", assertReturner{}, KindAssert, "returned:x"},
		{"standard", standard{}, KindStandard, "standard:x"},
		{"parse over standard", standardAndParse{}, KindParse, "parse:x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.value); got != tc.kind {
				t.Fatalf("expected kind %s, got %s", tc.kind, got)
			}
			c, err := Compile(tc.value)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Kind() != tc.kind {
				t.Errorf("compiled kind %s, want %s", c.Kind(), tc.kind)
			}
			out, err := c.Parse(context.Background(), "x")
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if out != tc.want {
				t.Errorf("expected %v, got %v", tc.want, out)
			}
		})
	}
}

func TestAdapt_NoneReturnsInputUnchanged(t *testing.T) {
	in := map[string]any{"id": 7}
	parse, err := Adapt(None)
	if err != nil {
		t.Fatal(err)
	}
	out, err := parse(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if m, ok := out.(map[string]any); !ok || m["id"] != 7 {
		t.Errorf("expected input back, got %v", out)
	}
}

func TestAdapt_UnknownShape(t *testing.T) {
	for _, v := range []any{noMethods{}, 42, "schema", func(string) error { return nil }} {
		t.Run(fmt.Sprintf("%T", v), func(t *testing.T) {
			if Classify(v) != KindUnknown {
				t.Fatalf("expected unknown kind for %T", v)
			}
			_, err := Adapt(v)
			if !errors.HasCode(err, errors.ErrCodeConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
			if !strings.Contains(err.Error(), "no compatible validation method found") {
				t.Errorf("unexpected message %q", err.Error())
			}
		})
	}
}

func TestAdapt_StandardWithoutEntryPoint(t *testing.T) {
	_, err := Adapt(brokenStandard{})
	if !errors.HasCode(err, errors.ErrCodeConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestMustAdapt_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown validator")
		}
	}()
	MustAdapt(noMethods{})
}

func TestAdapt_AssertFailurePropagates(t *testing.T) {
	parse := MustAdapt(asserter{fail: true})
	_, err := parse(context.Background(), "x")
	if err == nil || err.Error() != "assertion failed" {
		t.Fatalf("expected validator error unmodified, got %v", err)
	}
}

type failingCtxParser struct{ err error }

func (f failingCtxParser) ParseContext(context.Context, any) (any, error) { return nil, f.err }

type failingParser struct{ err error }

func (f failingParser) Parse(any) (any, error) { return nil, f.err }

type failingValidator struct{ err error }

func (f failingValidator) Validate(any) (any, error) { return nil, f.err }

type failingCreator struct{ err error }

func (f failingCreator) Create(any) (any, error) { return nil, f.err }

type failingAssertReturner struct{ err error }

func (f failingAssertReturner) Assert(any) (any, error) { return nil, f.err }

type failingCallableAssert func(any) (any, error)

func (f failingCallableAssert) Assert(in any) (any, error) { return f(in) }

func TestAdapt_ErrorPropagatesUnmodifiedPerConvention(t *testing.T) {
	sentinel := stderrors.New("rejected")
	tests := []struct {
		name  string
		value any
		kind  Kind
	}{
		{"callable assert", failingCallableAssert(func(any) (any, error) { return nil, sentinel }), KindCallableAssert},
		{"parse context", failingCtxParser{sentinel}, KindParseContext},
		{"parse", failingParser{sentinel}, KindParse},
		{"validate", failingValidator{sentinel}, KindValidate},
		{"create", failingCreator{sentinel}, KindCreate},
		{"assert returner", failingAssertReturner{sentinel}, KindAssert},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.value); got != tc.kind {
				t.Fatalf("expected kind %s, got %s", tc.kind, got)
			}
			out, err := MustAdapt(tc.value)(context.Background(), "x")
			if err != sentinel {
				t.Fatalf("expected the validator's own error, got %v", err)
			}
			if out != nil {
				t.Errorf("expected no value on failure, got %v", out)
			}
		})
	}
}

func TestAdapt_FuncErrorPropagatesUnmodified(t *testing.T) {
	sentinel := stderrors.New("bad id")
	parse := MustAdapt(func(any) (any, error) { return nil, sentinel })
	if _, err := parse(context.Background(), 1); err != sentinel {
		t.Fatalf("expected sentinel error, got %v", err)
	}
}

func TestAdapt_StandardIssues(t *testing.T) {
	parse := MustAdapt(standard{issues: []Issue{
		{Message: "required", Path: []any{"user", "email"}},
		{Message: "too short"},
	}})
	_, err := parse(context.Background(), map[string]any{})

	var issuesErr *IssuesError
	if !stderrors.As(err, &issuesErr) {
		t.Fatalf("expected *IssuesError, got %T", err)
	}
	if len(issuesErr.Issues) != 2 || issuesErr.Vendor != "test" {
		t.Errorf("unexpected issues error %+v", issuesErr)
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatal("expected IssuesError to unwrap to an AppError")
	}
	if appErr.Code != errors.ErrCodeValidationFailed {
		t.Errorf("expected VALIDATION_FAILED, got %s", appErr.Code)
	}
	if appErr.Message != "user.email: required; too short" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
	if _, ok := appErr.Details["issues"].([]Issue); !ok {
		t.Errorf("expected issues detail, got %v", appErr.Details["issues"])
	}
}

func TestAdapt_ParseContextReceivesContext(t *testing.T) {
	type key struct{}
	parse := MustAdapt(func(ctx context.Context, in any) (any, error) {
		return ctx.Value(key{}), nil
	})
	ctx := context.WithValue(context.Background(), key{}, "carried")
	out, _ := parse(ctx, nil)
	if out != "carried" {
		t.Errorf("expected context value, got %v", out)
	}
}

func TestAdapt_ConcurrentUse(t *testing.T) {
	parse := MustAdapt(parser{})
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := parse(context.Background(), i)
			if err != nil || out != fmt.Sprintf("parse:%d", i) {
				t.Errorf("unexpected result %v %v", out, err)
			}
		}()
	}
	wg.Wait()
}

func TestKind_String(t *testing.T) {
	if KindStandard.String() != "standard" || Kind(99).String() != "unknown" {
		t.Error("unexpected kind names")
	}
}
