package sqldb

import (
	"context"
	"testing"

	"sqlpreview/pkg/conf"
	"sqlpreview/pkg/test/assert"
)

var schema = `
CREATE TABLE IF NOT EXISTS users (
  id integer primary key,
  age integer,
  name varchar(30),
  note text
)
`

func setup(t *testing.T, name string) *DB {
	conf.Set("SQLDB_DSN_"+name, ":memory:")
	ctx := context.Background()

	db := Get(ctx, name)
	// :memory: 库每个连接都是独立的
	db.SetMaxOpenConns(1)
	db.MustExecContext(ctx, schema)
	db.MustExecContext(ctx, "DELETE FROM users")

	for _, u := range []struct {
		name string
		age  int
	}{{"a", 1}, {"b", 20}, {"c", 30}, {"d", 40}} {
		db.MustExecContext(ctx, "INSERT INTO users(name, age) VALUES (?, ?)", u.name, u.age)
	}

	return db
}

func TestGet(t *testing.T) {
	conf.Set("SQLDB_DSN_foo", ":memory:")
	ctx := context.Background()

	assert.True(t, Configured("foo"))
	assert.False(t, Configured("not-configured"))
	assert.False(t, Configured(""))

	db1 := Get(ctx, "foo")
	db2 := Get(ctx, "foo")
	assert.True(t, db1 == db2)
	assert.Equal(t, "foo", db1.Name())
}

func TestPreview(t *testing.T) {
	db := setup(t, "preview")
	ctx := context.Background()

	result, err := db.Preview(ctx, "SELECT * FROM users WHERE age >= 20;", 10)
	assert.NoError(t, err)
	assert.Equal(t, []string{"id", "age", "name", "note"}, result.Columns)
	assert.Len(t, result.Rows, 3)
	assert.False(t, result.Truncated)
	assert.Equal(t, []string{"2", "20", "b", "NULL"}, result.Rows[0])
}

func TestPreviewLimit(t *testing.T) {
	db := setup(t, "limit")
	ctx := context.Background()

	result, err := db.Preview(ctx, "SELECT * FROM users WHERE age > 0", 2)
	assert.NoError(t, err)
	assert.Len(t, result.Rows, 2)
	assert.True(t, result.Truncated)

	result, err = db.Preview(ctx, "SELECT * FROM users WHERE age > 100", 0)
	assert.NoError(t, err)
	assert.Len(t, result.Rows, 0)
	assert.False(t, result.Truncated)
}

func TestPreviewRollback(t *testing.T) {
	db := setup(t, "rollback")
	ctx := context.Background()

	_, err := db.Preview(ctx, "UPDATE users SET age = 0 RETURNING id", 10)
	if err != nil {
		t.Log("driver does not support RETURNING:", err)
	}

	var n int
	assert.NoError(t, db.GetContext(ctx, &n, "SELECT count(*) FROM users WHERE age = 0"))
	assert.Equal(t, 0, n)
}

func TestPreviewError(t *testing.T) {
	db := setup(t, "broken")
	ctx := context.Background()

	_, err := db.Preview(ctx, "SELECT * FROM no_such_table WHERE id = 1", 10)
	assert.Error(t, err)
}
