package hooks

import (
	"context"
	"time"

	"sqlpreview/pkg/ctxkit"
	"sqlpreview/pkg/log"
	"sqlpreview/pkg/trace"
	"sqlpreview/pkg/twirp"

	"github.com/opentracing/opentracing-go"
)

type bizResponse interface {
	GetCode() int32
	GetMsg() string
}

// Log 记录请求日志和耗时指标，需要放在 TraceID 之后
var Log = &twirp.ServerHooks{
	ResponseSent: func(ctx context.Context) {
		var bizCode int32
		var bizMsg string
		resp, _ := twirp.Response(ctx)
		if br, ok := resp.(bizResponse); ok {
			bizCode = br.GetCode()
			bizMsg = br.GetMsg()
		}

		duration := trace.GetDuration(opentracing.SpanFromContext(ctx))
		if start, ok := ctx.Value(ctxkit.StartTimeKey).(time.Time); ok && duration == 0 {
			duration = time.Since(start)
		}

		status, _ := twirp.StatusCode(ctx)
		if _, ok := ctx.Deadline(); ok {
			if ctx.Err() != nil {
				status = "503"
			}
		}

		hreq, _ := twirp.HttpRequest(ctx)
		path := hreq.URL.Path

		// 外部扫描脚本会请求任意路径，404 不计入指标
		if status != "404" {
			rpcDurations.WithLabelValues(
				path,
				status,
			).Observe(duration.Seconds())
		}

		log.Get(ctx).WithFields(log.Fields{
			"path":     path,
			"status":   status,
			"cost":     duration.Seconds(),
			"biz_code": bizCode,
			"biz_msg":  bizMsg,
		}).Info("new rpc")
	},
	Error: func(ctx context.Context, err twirp.Error) context.Context {
		c := twirp.ServerHTTPStatusFromErrorCode(err.Code())

		if c >= 500 {
			log.Get(ctx).Errorf("%+v", err)
		} else if c >= 400 {
			log.Get(ctx).Warn(err)
		}

		return ctx
	},
}
