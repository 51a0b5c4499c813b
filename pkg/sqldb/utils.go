package sqldb

import (
	"database/sql/driver"
	"regexp"
	"strings"
)

func values(args []driver.NamedValue) []driver.Value {
	values := make([]driver.Value, 0, len(args))
	for _, a := range args {
		values = append(values, a.Value)
	}
	return values
}

// 成对出现的分组依次为指令和表名，最后一个分组兜底其他指令
var sqlreg = regexp.MustCompile(`(?is)^\s*(?:` +
	`(select)\s+.+?\s+from\s+([\w.]+)|` +
	`(update)\s+([\w.]+)|` +
	`(delete)\s+from\s+([\w.]+)|` +
	`(insert)\s+into\s+([\w.]+)|` +
	`(\w+))`)

// 提取 sql 的表名和指令
//
// "select * from foo ..." => foo,select
func parseSQL(sql string) (table, cmd string) {
	m := sqlreg.FindStringSubmatch(sql)
	if m == nil {
		return
	}

	last := len(m) - 1
	for i := 1; i < last; i += 2 {
		if m[i] != "" {
			return strings.ToLower(m[i+1]), strings.ToLower(m[i])
		}
	}

	cmd = strings.ToLower(m[last])
	return
}
