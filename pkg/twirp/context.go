package twirp

import (
	"context"
	"net/http"
	"strconv"
)

type contextKey int

const (
	methodNameKey contextKey = 1 + iota
	serviceNameKey
	packageNameKey
	statusCodeKey
	requestKey
	responseKey
	responseWriterKey
)

// MethodName extracts the name of the method being handled in the given
// context. If it is not known, it returns ("", false).
func MethodName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(methodNameKey).(string)
	return name, ok
}

// ServiceName extracts the name of the service handling the given context.
func ServiceName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(serviceNameKey).(string)
	return name, ok
}

// PackageName extracts the fully-qualified package name of the service
// handling the given context.
func PackageName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(packageNameKey).(string)
	return name, ok
}

// StatusCode retrieves the status code of the response (as string like "200").
// It is set after the response is prepared or an error is written.
func StatusCode(ctx context.Context) (string, bool) {
	code, ok := ctx.Value(statusCodeKey).(string)
	return code, ok
}

// HttpRequest retrieves the inbound *http.Request.
func HttpRequest(ctx context.Context) (*http.Request, bool) {
	req, ok := ctx.Value(requestKey).(*http.Request)
	return req, ok
}

// Response retrieves the response message returned by the service method.
func Response(ctx context.Context) (interface{}, bool) {
	resp := ctx.Value(responseKey)
	return resp, resp != nil
}

// SetHTTPResponseHeader sets an HTTP header key-value pair on the response of
// the request in ctx. Only works inside server hooks and handlers.
func SetHTTPResponseHeader(ctx context.Context, key, value string) {
	if w, ok := ctx.Value(responseWriterKey).(http.ResponseWriter); ok {
		w.Header().Set(key, value)
	}
}

// WithMethodName 注入方法名，供路由使用
func WithMethodName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, methodNameKey, name)
}

// WithServiceName 注入服务名
func WithServiceName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, serviceNameKey, name)
}

// WithPackageName 注入包名
func WithPackageName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, packageNameKey, name)
}

// WithStatusCode 记录响应状态码
func WithStatusCode(ctx context.Context, code int) context.Context {
	return context.WithValue(ctx, statusCodeKey, strconv.Itoa(code))
}

// WithHttpRequest 记录原始请求
func WithHttpRequest(ctx context.Context, req *http.Request) context.Context {
	return context.WithValue(ctx, requestKey, req)
}

// WithResponse 记录业务响应
func WithResponse(ctx context.Context, resp interface{}) context.Context {
	return context.WithValue(ctx, responseKey, resp)
}

// WithResponseWriter 记录 ResponseWriter，供 SetHTTPResponseHeader 使用
func WithResponseWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, responseWriterKey, w)
}
