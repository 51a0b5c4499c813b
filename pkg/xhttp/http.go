// Package xhttp 提供基础 http 客户端组件
//
// 本包通过替换 http.DefaultTransport 实现以下功能：
// - 日志
// - 链路追踪
// - 指标监控
//
// 请务必使用 http.NewRequestWithContext 构造 req 对象，这样才能传递 ctx 信息。
// 远程转换客户端 preview_v1.NewConverterJSONClient 默认就走这里。
//
// 使用示例：
//   req, _ := http.NewRequestWithContext(ctx, method, url, body)
//   c := &http.Client{
//   	Timeout: 1 * time.Second,
//   }
//   resp, err := c.Do(req)
package xhttp

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"sqlpreview/pkg/log"
	"sqlpreview/pkg/trace"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

func init() {
	http.DefaultTransport = Wrap(http.DefaultTransport)
}

// Wrap 给 RoundTripper 加上日志、链路追踪和指标
func Wrap(r http.RoundTripper) http.RoundTripper {
	if _, ok := r.(*roundTripper); ok {
		return r
	}
	return &roundTripper{r: r}
}

type roundTripper struct {
	r http.RoundTripper
}

var digitsRE = regexp.MustCompile(`\b\d+\b`)

func (r *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	span, ctx := opentracing.StartSpanFromContext(ctx, "DoHTTP")
	defer span.Finish()

	trace.InjectTraceHeader(span, req)

	start := time.Now()
	resp, err := r.r.RoundTrip(req)
	duration := time.Since(start)

	url := fmt.Sprintf("%s%s", req.URL.Host, req.URL.Path)

	status := http.StatusInternalServerError
	if err == nil {
		status = resp.StatusCode
	}

	log.Get(ctx).Debugf(
		"[HTTP] method:%s url:%s status:%d cost:%v",
		req.Method,
		url,
		status,
		duration,
	)

	ext.Component.Set(span, "http")
	ext.HTTPUrl.Set(span, url)
	ext.HTTPMethod.Set(span, req.Method)
	ext.HTTPStatusCode.Set(span, uint16(status))
	if err != nil {
		ext.Error.Set(span, true)
	}

	// url 中的纯数字会产生大量指标
	// /v123/4/56/foo => /v123/%d/%d/foo
	url = digitsRE.ReplaceAllString(url, "%d")

	httpDurations.WithLabelValues(
		url,
		fmt.Sprint(status),
	).Observe(duration.Seconds())

	return resp, err
}
