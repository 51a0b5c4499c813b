package preview_v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"sqlpreview/pkg/conf"
	"sqlpreview/pkg/sqlconv"
	"sqlpreview/pkg/sqldb"
	"sqlpreview/pkg/test/assert"
	"sqlpreview/pkg/test/mock"
	"sqlpreview/pkg/twirp"
)

func setupDB(t *testing.T, name string) {
	conf.Set("SQLDB_DSN_"+name, ":memory:")
	ctx := context.Background()

	db := sqldb.Get(ctx, name)
	db.SetMaxOpenConns(1)
	db.MustExecContext(ctx, `CREATE TABLE IF NOT EXISTS orders (id integer primary key, status text)`)
	db.MustExecContext(ctx, "DELETE FROM orders")
	for _, s := range []string{"paid", "cancelled", "cancelled", "shipped"} {
		db.MustExecContext(ctx, "INSERT INTO orders(status) VALUES (?)", s)
	}
}

func newTestClient(t *testing.T) Converter {
	ts := httptest.NewServer(NewConverterServer(&ConverterServer{}, nil))
	t.Cleanup(ts.Close)

	return NewConverterJSONClient(ts.URL+"/", ts.Client())
}

func TestConvert(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		sql      string
		text     string
		status   string
		code     int32
		copyable bool
	}{
		{
			name:     "update",
			sql:      "UPDATE users u SET name='x' WHERE u.id=1",
			text:     "SELECT * FROM users WHERE u.id=1;",
			status:   "success",
			copyable: true,
		},
		{
			name:     "delete",
			sql:      "DELETE FROM orders WHERE status='cancelled';",
			text:     "SELECT * FROM orders WHERE status='cancelled';",
			status:   "success",
			copyable: true,
		},
		{
			name:   "empty",
			sql:    "  ",
			text:   sqlconv.Placeholder,
			status: "empty",
			code:   sqlconv.CodeEmpty,
		},
		{
			name:   "no where",
			sql:    "UPDATE users SET name='x'",
			text:   sqlconv.ErrUpdate.Error(),
			status: "error",
			code:   sqlconv.CodeUpdate,
		},
		{
			name:   "insert",
			sql:    "INSERT INTO x VALUES (1)",
			text:   sqlconv.ErrUnsupported.Error(),
			status: "warning",
			code:   sqlconv.CodeUnsupported,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := c.Convert(ctx, &ConvertReq{SQL: tc.sql})
			assert.NoError(t, err)
			assert.Equal(t, tc.text, resp.Text)
			assert.Equal(t, tc.status, resp.Status)
			assert.Equal(t, tc.code, resp.Code)
			assert.Equal(t, tc.copyable, resp.Copyable)
		})
	}
}

func TestPreview(t *testing.T) {
	setupDB(t, "rpc_preview")
	c := newTestClient(t)
	ctx := context.Background()

	resp, err := c.Preview(ctx, &PreviewReq{
		SQL: "DELETE FROM orders WHERE status='cancelled';",
		DB:  "rpc_preview",
	})
	assert.NoError(t, err)
	assert.Equal(t, "orders", resp.Convert.Table)
	assert.Equal(t, []string{"id", "status"}, resp.Columns)
	assert.Equal(t, [][]string{{"2", "cancelled"}, {"3", "cancelled"}}, resp.Rows)
	assert.False(t, resp.Truncated)

	resp, err = c.Preview(ctx, &PreviewReq{
		SQL:   "UPDATE orders SET status='x' WHERE id > 0",
		DB:    "rpc_preview",
		Limit: 3,
	})
	assert.NoError(t, err)
	assert.Len(t, resp.Rows, 3)
	assert.True(t, resp.Truncated)
}

func TestPreviewErrors(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  *PreviewReq
		code twirp.ErrorCode
	}{
		{"no db", &PreviewReq{SQL: "DELETE FROM t WHERE id=1"}, twirp.InvalidArgument},
		{"bad sql", &PreviewReq{SQL: "UPDATE t SET a=1", DB: "main"}, twirp.InvalidArgument},
		{"unknown db", &PreviewReq{SQL: "DELETE FROM t WHERE id=1", DB: "nope"}, twirp.NotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Preview(ctx, tc.req)
			twerr, ok := err.(twirp.Error)
			assert.True(t, ok)
			assert.Equal(t, tc.code, twerr.Code())
		})
	}
}

func TestListExamples(t *testing.T) {
	resp, err := (&ConverterServer{}).ListExamples(context.Background(), &ListExamplesReq{})
	assert.NoError(t, err)
	assert.Len(t, resp.Examples, len(sqlconv.Examples()))

	for _, e := range resp.Examples {
		assert.Equal(t, "success", e.Result.Status, e.Title)
	}
}

func TestListHistoryDisabled(t *testing.T) {
	resp, err := (&ConverterServer{}).ListHistory(context.Background(), &ListHistoryReq{Limit: 10})
	assert.NoError(t, err)
	assert.NotNil(t, resp.Entries)
	assert.Len(t, resp.Entries, 0)
}

func TestJSONClient(t *testing.T) {
	mock.ActivateHttpMock()
	defer mock.DeactivateHttpMock()

	base := "http://sqlpreview.local"
	c := NewConverterJSONClient(base, http.DefaultClient)
	ctx := context.Background()

	responder, err := mock.NewJsonResponder(http.StatusOK, &ConvertResp{
		Text:   "SELECT * FROM users WHERE id=1;",
		Status: "success",
	})
	assert.NoError(t, err)
	mock.RegisterResponder(http.MethodPost, base+ConverterPathPrefix+"Convert", responder)

	resp, err := c.Convert(ctx, &ConvertReq{SQL: "DELETE FROM users WHERE id=1"})
	assert.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users WHERE id=1;", resp.Text)
	assert.Equal(t, 1, mock.CallCount("POST "+base+ConverterPathPrefix+"Convert"))

	responder, err = mock.NewJsonResponder(http.StatusNotFound, map[string]string{
		"code": "not_found",
		"msg":  "database x is not configured",
	})
	assert.NoError(t, err)
	mock.RegisterResponder(http.MethodPost, base+ConverterPathPrefix+"Preview", responder)

	_, err = c.Preview(ctx, &PreviewReq{SQL: "DELETE FROM users WHERE id=1", DB: "x"})
	twerr, ok := err.(twirp.Error)
	assert.True(t, ok)
	assert.Equal(t, twirp.NotFound, twerr.Code())
	assert.Equal(t, "database x is not configured", twerr.Msg())

	mock.RegisterResponder(http.MethodPost, base+ConverterPathPrefix+"ListExamples",
		mock.NewStringResponder(http.StatusBadGateway, "<html>bad gateway</html>"))

	_, err = c.ListExamples(ctx, &ListExamplesReq{})
	twerr, ok = err.(twirp.Error)
	assert.True(t, ok)
	assert.Equal(t, twirp.Internal, twerr.Code())
}
