package routeclient

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/kbukum/routekit/errors"
	"github.com/kbukum/routekit/httpclient"
	"github.com/kbukum/routekit/logger"
	"github.com/kbukum/routekit/schema"
)

// ContractViolation describes a response whose body did not satisfy the
// schema declared for its status code.
type ContractViolation struct {
	Route      string
	Method     string
	URL        string
	StatusCode int
	// Err is the decoding or validation error.
	Err error
}

func (v *ContractViolation) Error() string {
	return fmt.Sprintf("%s %s: response %d violates its schema: %v", v.Method, v.Route, v.StatusCode, v.Err)
}

func (v *ContractViolation) Unwrap() error {
	return errors.ContractViolation(v.Route, v.StatusCode, v.Err)
}

// checkResponse validates a clone of the response body against the schema
// declared for its status. Failures, including a panicking validator, are
// reported, never returned.
func (e *Endpoint) checkResponse(ctx context.Context, rawURL string, resp *httpclient.Response) {
	if resp == nil {
		return
	}
	c, ok := e.responses[resp.StatusCode]
	if !ok {
		return
	}

	err := parseResponse(ctx, c, resp)
	if err == nil {
		return
	}

	e.report(ctx, &ContractViolation{
		Route:      e.name,
		Method:     e.def.Method.String(),
		URL:        rawURL,
		StatusCode: resp.StatusCode,
		Err:        err,
	})
}

func parseResponse(ctx context.Context, c *schema.Compiled, resp *httpclient.Response) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("response validator panicked: %v", r)
		}
	}()

	var body any
	if err = resp.Clone().JSON(&body); err != nil {
		return err
	}
	_, err = c.Parse(ctx, body)
	return err
}

func (e *Endpoint) report(ctx context.Context, v *ContractViolation) {
	fields := logger.RouteFields(v.Route, v.Method)
	fields[logger.FieldStatus] = v.StatusCode
	var issuesErr *schema.IssuesError
	if stderrors.As(v.Err, &issuesErr) {
		issues := make([]string, len(issuesErr.Issues))
		for i, issue := range issuesErr.Issues {
			issues[i] = issue.String()
		}
		fields[logger.FieldIssues] = issues
	}
	e.cfg.Logger.WithContext(ctx).Warn("response does not match its schema", logger.MergeWithError(fields, v.Err))

	if e.cfg.Metrics != nil {
		e.cfg.Metrics.RecordContractViolation(ctx, v.Route, v.StatusCode)
	}
	if e.cfg.OnContractViolation != nil {
		e.cfg.OnContractViolation(ctx, v)
	}
}
