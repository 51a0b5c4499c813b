package twirp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Method 单个 rpc 方法：解码请求体，调用业务实现，返回响应对象
type Method func(ctx context.Context, body io.Reader) (interface{}, error)

// Server 只支持 json 的 twirp 风格服务端
//
// 路由规则为 POST /api/{package}.{service}/{method}
type Server struct {
	pkg     string
	service string
	hooks   *ServerHooks
	methods map[string]Method
}

// NewServer 创建服务端，hooks 可以为 nil
func NewServer(pkg, service string, hooks *ServerHooks) *Server {
	return &Server{
		pkg:     pkg,
		service: service,
		hooks:   hooks,
		methods: map[string]Method{},
	}
}

// PathPrefix 服务路由前缀，用于注册到 http.ServeMux
func (s *Server) PathPrefix() string {
	return "/api/" + s.pkg + "." + s.service + "/"
}

// Register 注册方法，重名直接 panic
func (s *Server) Register(name string, m Method) {
	if _, ok := s.methods[name]; ok {
		panic(name + " is used")
	}
	s.methods[name] = m
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	ctx = WithPackageName(ctx, s.pkg)
	ctx = WithServiceName(ctx, s.service)
	ctx = WithHttpRequest(ctx, req)
	ctx = WithResponseWriter(ctx, resp)

	var err error
	ctx, err = s.hooks.CallRequestReceived(ctx)
	if err != nil {
		s.hooks.WriteError(ctx, resp, err)
		return
	}

	if req.Method != http.MethodPost {
		msg := "unsupported method " + req.Method + " (only POST is allowed)"
		s.hooks.WriteError(ctx, resp, badRouteError(msg, req.Method, req.URL.Path))
		return
	}

	name := strings.TrimPrefix(req.URL.Path, s.PathPrefix())
	method, ok := s.methods[name]
	if !ok || !strings.HasPrefix(req.URL.Path, s.PathPrefix()) {
		msg := "no handler for path " + req.URL.Path
		s.hooks.WriteError(ctx, resp, badRouteError(msg, req.Method, req.URL.Path))
		return
	}

	ctx = WithMethodName(ctx, name)
	ctx, err = s.hooks.CallRequestRouted(ctx)
	if err != nil {
		s.hooks.WriteError(ctx, resp, err)
		return
	}

	out, err := method(ctx, req.Body)
	if err != nil {
		s.hooks.WriteError(ctx, resp, err)
		return
	}

	ctx = WithResponse(ctx, out)
	ctx = s.hooks.CallResponsePrepared(ctx)

	buf, err := json.Marshal(out)
	if err != nil {
		s.hooks.WriteError(ctx, resp, errors.Wrap(err, "failed to marshal json response"))
		return
	}

	ctx = WithStatusCode(ctx, http.StatusOK)
	resp.Header().Set("Content-Type", "application/json")
	resp.WriteHeader(http.StatusOK)
	_, _ = resp.Write(buf)

	s.hooks.CallResponseSent(ctx)
}

// DecodeJSON 解码请求体，空请求体视为空对象
func DecodeJSON(body io.Reader, v interface{}) error {
	if err := json.NewDecoder(body).Decode(v); err != nil && err != io.EOF {
		return InvalidArgumentError("body", "is not valid json: "+err.Error())
	}
	return nil
}

// HTTPClient 发送请求的客户端，*http.Client 满足本接口
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoJSONRequest 以 json 格式调用远程方法，非 200 响应解析为 twirp.Error
func DoJSONRequest(ctx context.Context, client HTTPClient, url string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "failed to marshal json request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrorFromResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to unmarshal json response")
	}
	return nil
}
