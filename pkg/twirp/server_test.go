package twirp

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sqlpreview/pkg/test/assert"
)

type echoReq struct {
	Name string `json:"name"`
}

type echoResp struct {
	Hello string `json:"hello"`
}

func newEchoServer(hooks *ServerHooks) *Server {
	s := NewServer("echo.v1", "Echo", hooks)
	s.Register("Hello", func(ctx context.Context, body io.Reader) (interface{}, error) {
		var in echoReq
		if err := DecodeJSON(body, &in); err != nil {
			return nil, err
		}
		if in.Name == "" {
			return nil, InvalidArgumentError("name", "is required")
		}
		return &echoResp{Hello: in.Name}, nil
	})
	return s
}

func TestServer(t *testing.T) {
	s := newEchoServer(nil)
	assert.Equal(t, "/api/echo.v1.Echo/", s.PathPrefix())

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		resp   string
	}{
		{
			name:   "ok",
			method: http.MethodPost,
			path:   "/api/echo.v1.Echo/Hello",
			body:   `{"name":"sql"}`,
			status: http.StatusOK,
			resp:   `{"hello":"sql"}`,
		},
		{
			name:   "invalid argument",
			method: http.MethodPost,
			path:   "/api/echo.v1.Echo/Hello",
			body:   `{}`,
			status: http.StatusBadRequest,
			resp:   `"code":"invalid_argument"`,
		},
		{
			name:   "bad json",
			method: http.MethodPost,
			path:   "/api/echo.v1.Echo/Hello",
			body:   `{`,
			status: http.StatusBadRequest,
			resp:   `"argument":"body"`,
		},
		{
			name:   "get",
			method: http.MethodGet,
			path:   "/api/echo.v1.Echo/Hello",
			status: http.StatusNotFound,
			resp:   `"code":"bad_route"`,
		},
		{
			name:   "unknown method",
			method: http.MethodPost,
			path:   "/api/echo.v1.Echo/Bye",
			body:   `{}`,
			status: http.StatusNotFound,
			resp:   `"code":"bad_route"`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(c.method, c.path, strings.NewReader(c.body))
			w := httptest.NewRecorder()

			s.ServeHTTP(w, req)

			assert.Equal(t, c.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), c.resp)
		})
	}
}

func TestRegisterTwice(t *testing.T) {
	s := newEchoServer(nil)

	defer func() {
		assert.NotNil(t, recover())
	}()

	s.Register("Hello", nil)
}

func TestChainHooks(t *testing.T) {
	var calls []string

	record := func(name string) *ServerHooks {
		return &ServerHooks{
			RequestReceived: func(ctx context.Context) (context.Context, error) {
				calls = append(calls, name+".received")
				return ctx, nil
			},
			RequestRouted: func(ctx context.Context) (context.Context, error) {
				method, _ := MethodName(ctx)
				calls = append(calls, name+".routed."+method)
				return ctx, nil
			},
			ResponsePrepared: func(ctx context.Context) context.Context {
				calls = append(calls, name+".prepared")
				return ctx
			},
			ResponseSent: func(ctx context.Context) {
				status, _ := StatusCode(ctx)
				calls = append(calls, name+".sent."+status)
			},
			Error: func(ctx context.Context, err Error) context.Context {
				calls = append(calls, name+".error."+string(err.Code()))
				return ctx
			},
		}
	}

	s := newEchoServer(ChainHooks(record("a"), nil, record("b")))

	req := httptest.NewRequest(http.MethodPost, "/api/echo.v1.Echo/Hello", strings.NewReader(`{"name":"x"}`))
	s.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []string{
		"a.received", "b.received",
		"a.routed.Hello", "b.routed.Hello",
		"a.prepared", "b.prepared",
		"a.sent.200", "b.sent.200",
	}, calls)

	calls = nil
	req = httptest.NewRequest(http.MethodPost, "/api/echo.v1.Echo/Hello", strings.NewReader(`{}`))
	s.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []string{
		"a.received", "b.received",
		"a.routed.Hello", "b.routed.Hello",
		"a.error.invalid_argument", "b.error.invalid_argument",
		"a.sent.400", "b.sent.400",
	}, calls)
}

func TestHookAbort(t *testing.T) {
	var sent bool
	hooks := &ServerHooks{
		RequestReceived: func(ctx context.Context) (context.Context, error) {
			return ctx, NewError(Unavailable, "maintenance")
		},
		ResponseSent: func(ctx context.Context) { sent = true },
	}

	s := newEchoServer(hooks)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/echo.v1.Echo/Hello", strings.NewReader(`{"name":"x"}`))
	s.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.True(t, sent)
}

func TestDoJSONRequest(t *testing.T) {
	s := newEchoServer(nil)
	ts := httptest.NewServer(s)
	defer ts.Close()

	ctx := context.Background()
	url := ts.URL + s.PathPrefix() + "Hello"

	var out echoResp
	err := DoJSONRequest(ctx, ts.Client(), url, &echoReq{Name: "db"}, &out)
	assert.NoError(t, err)
	assert.Equal(t, "db", out.Hello)

	err = DoJSONRequest(ctx, ts.Client(), url, &echoReq{}, &out)
	twerr, ok := err.(Error)
	assert.True(t, ok)
	assert.Equal(t, InvalidArgument, twerr.Code())
	assert.Equal(t, "name", twerr.Meta("argument"))
	assert.Equal(t, "name is required", twerr.Msg())
}

func TestInternalErrorWith(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	err := InternalErrorWith(cause)

	assert.Equal(t, Internal, err.Code())
	assert.Equal(t, "error", err.Meta("cause"))
	assert.Equal(t, http.StatusInternalServerError, ServerHTTPStatusFromErrorCode(err.Code()))

	u, ok := err.(interface{ Unwrap() error })
	assert.True(t, ok)
	assert.Equal(t, cause, u.Unwrap())
}
