package sqldb

import (
	"context"
	"fmt"
	"time"

	"sqlpreview/pkg/errors"
)

// DefaultPreviewLimit 默认最多返回的行数
const DefaultPreviewLimit = 50

// PreviewResult 预览结果，所有值都转成字符串，NULL 输出为 "NULL"
type PreviewResult struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	Truncated bool       `json:"truncated"`
}

// Preview 执行预览查询，最多返回 limit 行
//
// 查询在事务中执行，结束后总是回滚，不会留下任何修改。
func (db *DB) Preview(ctx context.Context, query string, limit int) (*PreviewResult, error) {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin preview tx")
	}
	defer tx.Rollback()

	rows, err := tx.QueryxContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "run preview query")
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "read preview columns")
	}

	result := &PreviewResult{Columns: cols, Rows: [][]string{}}
	for rows.Next() {
		if len(result.Rows) == limit {
			result.Truncated = true
			break
		}

		vals, err := rows.SliceScan()
		if err != nil {
			return nil, errors.Wrap(err, "scan preview row")
		}

		row := make([]string, 0, len(vals))
		for _, v := range vals {
			row = append(row, stringify(v))
		}
		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate preview rows")
	}

	return result, nil
}

func stringify(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
