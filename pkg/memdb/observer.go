package memdb

import (
	"context"

	"sqlpreview/pkg/log"
	"sqlpreview/pkg/trace"

	"github.com/go-redis/redis/extra/rediscmd/v8"
	"github.com/go-redis/redis/v8"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// 观察所有 redis 命令执行情况
type observer struct {
	name string
}

func (o observer) BeforeProcess(ctx context.Context, cmd redis.Cmder) (context.Context, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, cmd.FullName())

	ext.Component.Set(span, "memdb")
	ext.DBInstance.Set(span, o.name)
	ext.DBStatement.Set(span, rediscmd.CmdString(cmd))

	return ctx, nil
}

func (o observer) AfterProcess(ctx context.Context, cmd redis.Cmder) error {
	span := opentracing.SpanFromContext(ctx)
	if span == nil {
		return nil
	}

	if err := cmd.Err(); err != nil && err != redis.Nil {
		ext.Error.Set(span, true)
		span.SetTag("error.message", err.Error())
	}
	span.Finish()

	d := trace.GetDuration(span)
	log.Get(ctx).Debugf("[memdb] name:%s, %s, cost:%v", o.name, rediscmd.CmdString(cmd), d)

	redisDurations.WithLabelValues(
		o.name,
		cmd.FullName(),
	).Observe(d.Seconds())

	return nil
}

func (o observer) BeforeProcessPipeline(ctx context.Context, cmds []redis.Cmder) (context.Context, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "pipeline")

	ext.Component.Set(span, "memdb")
	ext.DBInstance.Set(span, o.name)

	return ctx, nil
}

func (o observer) AfterProcessPipeline(ctx context.Context, cmds []redis.Cmder) error {
	span := opentracing.SpanFromContext(ctx)
	if span == nil {
		return nil
	}
	span.Finish()

	d := trace.GetDuration(span)
	log.Get(ctx).Debugf("[memdb] name:%s, pipeline of %d cmds, cost:%v", o.name, len(cmds), d)

	redisDurations.WithLabelValues(
		o.name,
		"pipeline",
	).Observe(d.Seconds())

	return nil
}
