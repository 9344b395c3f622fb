package routeclient

import (
	"bytes"
	"context"
	"sync"

	"github.com/kbukum/routekit/httpclient"
	"github.com/kbukum/routekit/logger"
)

type fetchCall struct {
	url string
	req *httpclient.Request
}

// fakeFetch records every request and replies with resp or err.
type fakeFetch struct {
	mu    sync.Mutex
	calls []fetchCall
	resp  *httpclient.Response
	err   error
}

func (f *fakeFetch) Fetch(_ context.Context, rawURL string, req *httpclient.Request) (*httpclient.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fetchCall{url: rawURL, req: req})
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return httpclient.NewResponse(204, nil, nil), nil
}

func (f *fakeFetch) last() fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return fetchCall{}
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeFetch) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func jsonResponse(status int, v any) *httpclient.Response {
	resp, err := httpclient.JSONResponse(status, v)
	if err != nil {
		panic(err)
	}
	return resp
}

func bufferLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.NewWithWriter(&logger.Config{Level: "debug", Format: logger.FormatJSON}, "routeclient", buf)
}
