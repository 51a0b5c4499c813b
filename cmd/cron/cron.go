package cron

import (
	"context"

	"sqlpreview/pkg/errors"
	"sqlpreview/pkg/log"
	"sqlpreview/pkg/memdb"
	"sqlpreview/pkg/sqlconv"
)

func init() {
	cron("trim-history", "@every 10m", trimHistory)
	manual("verify-examples", verifyExamples)
}

// trimHistory 把转换历史裁剪到 HISTORY_SIZE，未配置 HISTORY_MEMDB 时跳过
func trimHistory(ctx context.Context) error {
	h := memdb.GetHistory()
	if h == nil {
		log.Get(ctx).Debug("history is not configured")
		return nil
	}

	if err := h.Trim(ctx); err != nil {
		return err
	}

	n, err := h.Len(ctx)
	if err != nil {
		return err
	}
	log.Get(ctx).WithField("len", n).Info("history trimmed")
	return nil
}

// verifyExamples 重新转换内置示例，以及 once 传入的语句，任何一条失败都报错
//
// sqlpreview cron once verify-examples "DELETE FROM t WHERE id=1"
func verifyExamples(ctx context.Context) error {
	sqls := append([]string{}, onceArgs...)
	for _, e := range sqlconv.Examples() {
		sqls = append(sqls, e.SQL)
	}

	var failed int
	for _, sql := range sqls {
		res := sqlconv.Convert(sql)
		if res.Status != sqlconv.StatusSuccess {
			failed++
			log.Get(ctx).WithFields(log.Fields{
				"sql":    sql,
				"status": res.Status,
				"code":   res.Code,
			}).Warn("verify failed")
		}
	}

	if failed > 0 {
		return errors.Errorf("%d of %d statements failed to convert", failed, len(sqls))
	}
	return nil
}
