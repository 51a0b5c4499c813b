package hooks

import (
	"context"
	"net"
	"time"

	"sqlpreview/pkg/ctxkit"
	"sqlpreview/pkg/trace"
	"sqlpreview/pkg/twirp"

	"github.com/opentracing/opentracing-go"
)

// TraceID 恢复上游 span，并通过 x-trace-id 响应头返回 trace_id
var TraceID = &twirp.ServerHooks{
	RequestReceived: func(ctx context.Context) (context.Context, error) {
		ctx = context.WithValue(ctx, ctxkit.StartTimeKey, time.Now())

		hreq, ok := twirp.HttpRequest(ctx)
		if !ok {
			return ctx, nil
		}

		span, _ := trace.StartSpanFromRequest(hreq, hreq.URL.Path)
		ctx = opentracing.ContextWithSpan(ctx, span)
		ctx = context.WithValue(ctx, spanKey, span)

		traceID := trace.GetTraceID(ctx)
		twirp.SetHTTPResponseHeader(ctx, "x-trace-id", traceID)
		ctx = ctxkit.WithTraceID(ctx, traceID)

		if ip, _, err := net.SplitHostPort(hreq.RemoteAddr); err == nil {
			ctx = ctxkit.WithUserIP(ctx, ip)
		}

		return ctx, nil
	},
	RequestRouted: func(ctx context.Context) (context.Context, error) {
		pkg, _ := twirp.PackageName(ctx)
		service, _ := twirp.ServiceName(ctx)
		method, _ := twirp.MethodName(ctx)

		if span, ok := ctx.Value(spanKey).(opentracing.Span); ok {
			span.SetOperationName("/" + pkg + "." + service + "/" + method)
		}

		return ctx, nil
	},
	ResponseSent: func(ctx context.Context) {
		if span, ok := ctx.Value(spanKey).(opentracing.Span); ok {
			span.Finish()
		}
	},
}
