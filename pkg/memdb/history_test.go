package memdb

import (
	"context"
	"fmt"
	"testing"

	"sqlpreview/pkg/conf"
	"sqlpreview/pkg/test/assert"
)

// 需要本地 redis，连不上时跳过
func setupHistory(t *testing.T, size int64) *History {
	conf.Set("MEMDB_DSN_test", "redis://localhost:6379/?DB=15&DialTimeout=200ms")
	db := Get("test")

	ctx := context.Background()
	if err := db.Ping(ctx).Err(); err != nil {
		t.Skip("redis is not available:", err)
	}

	key := fmt.Sprintf("sqlpreview:test:%s", t.Name())
	db.Del(ctx, key)
	t.Cleanup(func() { db.Del(ctx, key) })

	return NewHistory(db, key, size)
}

func TestHistory(t *testing.T) {
	h := setupHistory(t, 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := h.Add(ctx, &Entry{
			SQL:    fmt.Sprintf("DELETE FROM t WHERE id=%d", i),
			Select: fmt.Sprintf("SELECT * FROM t WHERE id=%d;", i),
			Table:  "t",
		})
		assert.NoError(t, err)
	}

	entries, err := h.List(ctx, 0)
	assert.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, "SELECT * FROM t WHERE id=4;", entries[0].Select)
	assert.Equal(t, "SELECT * FROM t WHERE id=2;", entries[2].Select)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].Created.IsZero())

	entries, err = h.List(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestHistoryTrim(t *testing.T) {
	h := setupHistory(t, 2)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		h.db.LPush(ctx, h.key, fmt.Sprintf(`{"id":"%d"}`, i))
	}
	h.db.LPush(ctx, h.key, "not json")

	n, err := h.Len(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), n)

	assert.NoError(t, h.Trim(ctx))
	n, err = h.Len(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)

	entries, err := h.List(ctx, 0)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "3", entries[0].ID)
}

func TestGetHistory(t *testing.T) {
	conf.Set("HISTORY_MEMDB", "")
	assert.Nil(t, GetHistory())

	conf.Set("MEMDB_DSN_history", "redis://localhost:6379/?DB=15")
	conf.Set("HISTORY_MEMDB", "history")
	conf.Set("HISTORY_SIZE", "7")
	h := GetHistory()
	assert.NotNil(t, h)
	assert.Equal(t, int64(7), h.Size())
	conf.Set("HISTORY_MEMDB", "")
}
