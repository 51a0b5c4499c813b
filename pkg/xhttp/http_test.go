package xhttp

import (
	"context"
	"net/http"
	"testing"

	"sqlpreview/pkg/test/assert"
	"sqlpreview/pkg/test/mock"

	"github.com/opentracing/opentracing-go"
)

type headerRecorder struct {
	header http.Header
}

func (h *headerRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	h.header = req.Header.Clone()
	return &http.Response{StatusCode: http.StatusNoContent, Body: http.NoBody, Request: req}, nil
}

func TestRoundTripInjectsTrace(t *testing.T) {
	rec := &headerRecorder{}
	c := &http.Client{Transport: Wrap(rec)}

	span, ctx := opentracing.StartSpanFromContext(context.Background(), "test")
	defer span.Finish()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://sqlpreview.local/api/42", nil)
	assert.NoError(t, err)

	resp, err := c.Do(req)
	assert.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotEmpty(t, rec.header.Get("Uber-Trace-Id"))
}

func TestWrapOnce(t *testing.T) {
	r := Wrap(http.DefaultTransport)
	assert.Equal(t, r, Wrap(r))
}

func TestDefaultTransport(t *testing.T) {
	mock.ActivateHttpMock()
	defer mock.DeactivateHttpMock()

	mock.RegisterResponder(http.MethodGet, "http://sqlpreview.local/monitor/ping",
		mock.NewStringResponder(http.StatusOK, "pong"))

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://sqlpreview.local/monitor/ping", nil)
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, mock.CallCount("GET http://sqlpreview.local/monitor/ping"))
}
