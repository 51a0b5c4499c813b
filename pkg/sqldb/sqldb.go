// Package sqldb 提供命名数据库实例，用于执行预览查询
//
// 数据库连接串从配置 SQLDB_DSN_{name} 读取，
// file: 开头或 :memory: 使用 sqlite，其余按 mysql 处理。
package sqldb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"strings"
	"sync"

	"sqlpreview/pkg/conf"

	"github.com/dlmiddlecote/sqlstats"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/ngrok/sqlmw"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
	"modernc.org/sqlite"
)

var (
	sfg singleflight.Group
	rwl sync.RWMutex

	dbs = map[string]*DB{}
)

// DB 扩展 sqlx.DB
type DB struct {
	*sqlx.DB
	name string
}

// Tx 扩展 sqlx.Tx
type Tx struct {
	*sqlx.Tx
}

// Configured 判断是否配置了对应的数据库
func Configured(name string) bool {
	return name != "" && conf.Get("SQLDB_DSN_"+name) != ""
}

// Get 获取数据库实例
//
// db := sqldb.Get(ctx, "foo")
// db.QueryxContext(ctx, "select ...")
func Get(ctx context.Context, name string) *DB {
	rwl.RLock()
	if db, ok := dbs[name]; ok {
		rwl.RUnlock()
		return db
	}
	rwl.RUnlock()

	v, _, _ := sfg.Do(name, func() (interface{}, error) {
		dsn := conf.Get("SQLDB_DSN_" + name)
		isSqlite := strings.HasPrefix(dsn, "file:") || dsn == ":memory:"
		var driverName string
		var driver driver.Driver
		if isSqlite {
			driverName = "sqlpreview-sqlite:" + name
			driver = sqlmw.Driver(&sqlite.Driver{}, observer{name: name})
		} else {
			driverName = "sqlpreview-mysql:" + name
			driver = sqlmw.Driver(mysql.MySQLDriver{}, observer{name: name})
		}

		sql.Register(driverName, driver)
		sdb := sqlx.MustOpen(driverName, dsn)

		db := &DB{DB: sdb, name: name}

		rwl.Lock()
		defer rwl.Unlock()
		dbs[name] = db

		collector := sqlstats.NewStatsCollector(name, db)
		prometheus.MustRegister(collector)

		return db, nil
	})

	return v.(*DB)
}

// Name 配置名
func (db *DB) Name() string {
	return db.name
}

// BeginTxx 封装 sqlx.DB.BeginTxx，返回自定义的 *Tx
func (db *DB) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	tx, err := db.DB.BeginTxx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx}, nil
}
