package trace

import (
	"context"
	"io"
	"net/http"
	"time"

	"sqlpreview/pkg/conf"

	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go"
	"github.com/uber/jaeger-client-go/config"
	"github.com/uber/jaeger-client-go/log"
	"github.com/uber/jaeger-lib/metrics"
)

var closer io.Closer

func init() {
	host := conf.Get("JAEGER_AGENT_HOST")
	if host == "" {
		host = "127.0.0.1"
	}

	port := conf.Get("JAEGER_AGENT_PORT")
	if port == "" {
		port = "6831"
	}

	cfg := config.Configuration{
		ServiceName: conf.AppID,
		Sampler: &config.SamplerConfig{
			Type:  jaeger.SamplerTypeProbabilistic,
			Param: conf.GetFloat64("JAEGER_SAMPLER_PARAM"),
		},
		Reporter: &config.ReporterConfig{
			LocalAgentHostPort: host + ":" + port,
		},
	}

	tracer, c, err := cfg.NewTracer(
		config.Logger(log.NullLogger),
		config.Metrics(metrics.NullFactory),
	)
	if err != nil {
		panic(err)
	}

	closer = c
	opentracing.SetGlobalTracer(tracer)
}

// GetTraceID 查询 trace_id
func GetTraceID(ctx context.Context) (traceID string) {
	traceID = "no-trace-id"

	span := opentracing.SpanFromContext(ctx)
	if span == nil {
		return
	}

	jctx, ok := (span.Context()).(jaeger.SpanContext)
	if !ok {
		return
	}

	traceID = jctx.TraceID().String()

	return
}

// GetDuration 查询当前 span 耗时，span 结束之后才有值
func GetDuration(span opentracing.Span) time.Duration {
	jspan, ok := span.(*jaeger.Span)
	if !ok {
		return 0
	}

	return jspan.Duration()
}

// StartSpanFromRequest 从请求头中恢复上游 span，并开启服务端 span
func StartSpanFromRequest(req *http.Request, operation string) (opentracing.Span, context.Context) {
	tracer := opentracing.GlobalTracer()
	parent, err := tracer.Extract(
		opentracing.HTTPHeaders,
		opentracing.HTTPHeadersCarrier(req.Header),
	)

	var span opentracing.Span
	if err == nil {
		span = tracer.StartSpan(operation, opentracing.ChildOf(parent))
	} else {
		span = tracer.StartSpan(operation)
	}

	return span, opentracing.ContextWithSpan(req.Context(), span)
}

// InjectTraceHeader 将 span 信息写入请求头，传递给下游服务
func InjectTraceHeader(span opentracing.Span, req *http.Request) {
	opentracing.GlobalTracer().Inject(
		span.Context(),
		opentracing.HTTPHeaders,
		opentracing.HTTPHeadersCarrier(req.Header),
	)
}

// Stop 停止 trace 协程
func Stop() {
	closer.Close()
}
