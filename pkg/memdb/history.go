package memdb

import (
	"context"
	"encoding/json"
	"time"

	"sqlpreview/pkg/conf"
	"sqlpreview/pkg/errors"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// DefaultHistorySize 默认保留的转换历史条数
const DefaultHistorySize = 100

const historyKey = "sqlpreview:history"

// Entry 一条转换历史
type Entry struct {
	ID      string    `json:"id"`
	SQL     string    `json:"sql"`
	Select  string    `json:"select"`
	Table   string    `json:"table"`
	Created time.Time `json:"created"`
}

// History 保存最近的转换记录，新记录在前，超出 size 的旧记录会被丢弃
type History struct {
	db   *redis.Client
	key  string
	size int64
}

// NewHistory 创建转换历史，size <= 0 时使用默认值
func NewHistory(db *redis.Client, key string, size int64) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{db: db, key: key, size: size}
}

// GetHistory 按配置 HISTORY_MEMDB 获取转换历史，未配置时返回 nil
func GetHistory() *History {
	name := conf.Get("HISTORY_MEMDB")
	if name == "" {
		return nil
	}

	return NewHistory(Get(name), historyKey, conf.GetInt64("HISTORY_SIZE"))
}

// Size 最多保留的条数
func (h *History) Size() int64 {
	return h.size
}

// Add 写入一条记录，ID 和 Created 为空时自动生成
func (h *History) Add(ctx context.Context, e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Created.IsZero() {
		e.Created = time.Now()
	}

	buf, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "marshal history entry")
	}

	_, err = h.db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, h.key, buf)
		pipe.LTrim(ctx, h.key, 0, h.size-1)
		return nil
	})
	return errors.Wrap(err, "add history entry")
}

// List 返回最近 n 条记录，n <= 0 时返回全部
func (h *History) List(ctx context.Context, n int64) ([]*Entry, error) {
	if n <= 0 || n > h.size {
		n = h.size
	}

	items, err := h.db.LRange(ctx, h.key, 0, n-1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "list history")
	}

	entries := make([]*Entry, 0, len(items))
	for _, item := range items {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			// 历史数据损坏只跳过，不影响其他记录
			continue
		}
		entries = append(entries, &e)
	}

	return entries, nil
}

// Trim 丢弃超出 size 的旧记录
func (h *History) Trim(ctx context.Context) error {
	return errors.Wrap(h.db.LTrim(ctx, h.key, 0, h.size-1).Err(), "trim history")
}

// Len 当前记录条数
func (h *History) Len(ctx context.Context) (int64, error) {
	n, err := h.db.LLen(ctx, h.key).Result()
	return n, errors.Wrap(err, "history length")
}
