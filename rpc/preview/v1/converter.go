package preview_v1

import (
	"context"
	"time"

	"sqlpreview/pkg/conf"
	"sqlpreview/pkg/errors"
	"sqlpreview/pkg/log"
	"sqlpreview/pkg/memdb"
	"sqlpreview/pkg/metrics"
	"sqlpreview/pkg/sqlconv"
	"sqlpreview/pkg/sqldb"

	"github.com/opentracing/opentracing-go"
)

// ConverterServer Converter 服务端实现
type ConverterServer struct {
	// History 为 nil 时不记录转换历史
	History *memdb.History
}

func (s *ConverterServer) Convert(ctx context.Context, req *ConvertReq) (resp *ConvertResp, err error) {
	res := s.convert(ctx, req.SQL)

	if res.Status == sqlconv.StatusSuccess && s.History != nil {
		s.addHistory(ctx, req.SQL, res)
	}

	return newConvertResp(res), nil
}

func (s *ConverterServer) Preview(ctx context.Context, req *PreviewReq) (resp *PreviewResp, err error) {
	if req.DB == "" {
		return nil, errors.InvalidArgumentError("db", "is required")
	}

	res := s.convert(ctx, req.SQL)
	if res.Status != sqlconv.StatusSuccess {
		return nil, errors.InvalidArgumentError("sql", res.Text)
	}

	if !sqldb.Configured(req.DB) {
		return nil, errors.NotFoundError("database " + req.DB + " is not configured")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = conf.GetInt("PREVIEW_LIMIT")
	}

	db := sqldb.Get(ctx, req.DB)
	pr, err := db.Preview(ctx, res.Text, limit)
	if err != nil {
		return nil, err
	}

	return &PreviewResp{
		Convert:   newConvertResp(res),
		Columns:   pr.Columns,
		Rows:      pr.Rows,
		Truncated: pr.Truncated,
	}, nil
}

func (s *ConverterServer) ListHistory(ctx context.Context, req *ListHistoryReq) (resp *ListHistoryResp, err error) {
	resp = &ListHistoryResp{Entries: []*HistoryEntry{}}
	if s.History == nil {
		return
	}

	entries, err := s.History.List(ctx, req.Limit)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		resp.Entries = append(resp.Entries, &HistoryEntry{
			ID:      e.ID,
			SQL:     e.SQL,
			Select:  e.Select,
			Table:   e.Table,
			Created: e.Created.Format(time.RFC3339),
		})
	}

	return
}

func (s *ConverterServer) ListExamples(ctx context.Context, req *ListExamplesReq) (resp *ListExamplesResp, err error) {
	resp = &ListExamplesResp{}
	for _, e := range sqlconv.Examples() {
		resp.Examples = append(resp.Examples, &Example{
			Title:  e.Title,
			SQL:    e.SQL,
			Result: newConvertResp(sqlconv.Convert(e.SQL)),
		})
	}
	return
}

func (s *ConverterServer) convert(ctx context.Context, sql string) sqlconv.Result {
	res := sqlconv.Convert(sql)

	statement := res.Statement
	if statement == "" {
		statement = "unknown"
	}
	metrics.ConvertTotal.WithLabelValues(statement, string(res.Status)).Inc()

	if span := opentracing.SpanFromContext(ctx); span != nil {
		span.SetTag("sql.statement", statement)
		span.SetTag("sql.status", string(res.Status))
	}

	log.Get(ctx).WithFields(log.Fields{
		"statement": statement,
		"status":    res.Status,
		"table":     res.Table,
	}).Debug("convert sql")

	return res
}

// 历史写入失败不影响转换结果
func (s *ConverterServer) addHistory(ctx context.Context, sql string, res sqlconv.Result) {
	err := s.History.Add(ctx, &memdb.Entry{
		SQL:    sql,
		Select: res.Text,
		Table:  res.Table,
	})
	if err != nil {
		metrics.HistoryTotal.WithLabelValues("error").Inc()
		log.Get(ctx).Warnf("add history error: %+v", err)
		return
	}
	metrics.HistoryTotal.WithLabelValues("ok").Inc()
}

func newConvertResp(res sqlconv.Result) *ConvertResp {
	return &ConvertResp{
		Text:      res.Text,
		Status:    string(res.Status),
		Code:      res.Code,
		Statement: res.Statement,
		Table:     res.Table,
		Where:     res.Where,
		Copyable:  res.Copyable(),
	}
}
