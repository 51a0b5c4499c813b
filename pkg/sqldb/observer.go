package sqldb

import (
	"context"
	"database/sql/driver"
	"time"

	"sqlpreview/pkg/log"

	"github.com/ngrok/sqlmw"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// 观察所有 sql 执行情况
type observer struct {
	sqlmw.NullInterceptor
	name string
}

func (o observer) start(ctx context.Context, operation, query string) (opentracing.Span, context.Context) {
	span, ctx := opentracing.StartSpanFromContext(ctx, operation)

	ext.Component.Set(span, "sqldb")
	ext.DBInstance.Set(span, o.name)
	if query != "" {
		ext.DBStatement.Set(span, query)
	}

	return span, ctx
}

// observe 记录日志和耗时，cmd 为空时从 query 中提取
func (o observer) observe(ctx context.Context, span opentracing.Span, op,
	cmd, query string, args []driver.NamedValue, d time.Duration, err error) {

	if err != nil && err != driver.ErrSkip {
		ext.Error.Set(span, true)
		span.SetTag("error.message", err.Error())
	}

	log.Get(ctx).Debugf("[sqldb] name:%s, %s: %s, args: %v, cost: %v",
		o.name, op, query, values(args), d)

	table, parsed := parseSQL(query)
	if cmd == "" {
		cmd = parsed
	}

	sqlDurations.WithLabelValues(
		o.name,
		table,
		cmd,
	).Observe(d.Seconds())
}

func (o observer) ConnExecContext(ctx context.Context,
	conn driver.ExecerContext,
	query string, args []driver.NamedValue) (driver.Result, error) {

	span, ctx := o.start(ctx, "Exec", query)
	defer span.Finish()

	s := time.Now()
	result, err := conn.ExecContext(ctx, query, args)
	o.observe(ctx, span, "exec", "", query, args, time.Since(s), err)

	return result, err
}

func (o observer) ConnQueryContext(ctx context.Context,
	conn driver.QueryerContext,
	query string, args []driver.NamedValue) (driver.Rows, error) {

	span, ctx := o.start(ctx, "Query", query)
	defer span.Finish()

	s := time.Now()
	rows, err := conn.QueryContext(ctx, query, args)
	o.observe(ctx, span, "query", "", query, args, time.Since(s), err)

	return rows, err
}

func (o observer) ConnBeginTx(ctx context.Context, conn driver.ConnBeginTx,
	txOpts driver.TxOptions) (driver.Tx, error) {

	span, ctx := o.start(ctx, "Begin", "")
	defer span.Finish()

	s := time.Now()
	tx, err := conn.BeginTx(ctx, txOpts)
	o.observe(ctx, span, "begin", "begin", "", nil, time.Since(s), err)

	return tx, err
}

func (o observer) TxCommit(ctx context.Context, tx driver.Tx) error {
	span, ctx := o.start(ctx, "Commit", "")
	defer span.Finish()

	s := time.Now()
	err := tx.Commit()
	o.observe(ctx, span, "commit", "commit", "", nil, time.Since(s), err)

	return err
}

func (o observer) TxRollback(ctx context.Context, tx driver.Tx) error {
	span, ctx := o.start(ctx, "Rollback", "")
	defer span.Finish()

	s := time.Now()
	err := tx.Rollback()
	o.observe(ctx, span, "rollback", "rollback", "", nil, time.Since(s), err)

	return err
}
