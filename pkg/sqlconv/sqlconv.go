// Package sqlconv 把单条 UPDATE / DELETE 语句改写成等价的 SELECT，
// 用来在真正执行之前预览会被影响的行。
//
// 这里只做单一模式的文本匹配，不是 SQL 解析器：
// 不识别子查询、JOIN、多条语句，也不理解字符串字面量里的关键字。
//
//   UPDATE users u SET name='x' WHERE u.id=1
//   => SELECT * FROM users WHERE u.id=1;
package sqlconv

import (
	"regexp"
	"strings"

	"sqlpreview/pkg/errors"
)

// Status 转换结果状态
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusEmpty   Status = "empty"
	StatusWarning Status = "warning"
)

// 支持的语句类型
const (
	KindUpdate = "UPDATE"
	KindDelete = "DELETE"
)

// 转换失败的错误码
const (
	CodeParse int32 = 1000 + iota
	CodeUpdate
	CodeDelete
	CodeUnsupported
	CodeEmpty
)

// Placeholder 输入为空时展示的文案
const Placeholder = "Your converted SELECT query will appear here..."

var (
	// ErrParse 未预期的解析错误
	ErrParse = errors.CodeError(CodeParse, "Error parsing SQL query. Please check your syntax.")
	// ErrUpdate UPDATE 语句无法匹配
	ErrUpdate = errors.CodeError(CodeUpdate, "Could not parse UPDATE query. Please ensure it includes a WHERE clause.")
	// ErrDelete DELETE 语句无法匹配
	ErrDelete = errors.CodeError(CodeDelete, "Could not parse DELETE query. Please ensure it includes a WHERE clause.")
	// ErrUnsupported 既不是 UPDATE 也不是 DELETE
	ErrUnsupported = errors.CodeError(CodeUnsupported, "Only UPDATE and DELETE statements are supported.\n\n"+
		"Supported formats:\n"+
		"• UPDATE table SET column = value WHERE condition;\n"+
		"• DELETE FROM table WHERE condition;")
	// ErrEmpty 输入为空
	ErrEmpty = errors.CodeError(CodeEmpty, Placeholder)
)

// 表名允许 schema.table，后面可以跟一个别名
const tablePattern = `(\w+(?:\.\w+)?(?:\s+\w+)?)`

var (
	updateRE = regexp.MustCompile(`(?is)UPDATE\s+` + tablePattern + `\s+SET\s+(.+?)\s+WHERE\s+(.+?)(?:;|$)`)
	deleteRE = regexp.MustCompile(`(?is)DELETE\s+FROM\s+` + tablePattern + `\s+WHERE\s+(.+?)(?:;|$)`)
)

// Statement 匹配成功的语句
type Statement struct {
	Kind  string
	Table string
	Where string
}

// Select 渲染等价的 SELECT 语句
func (s *Statement) Select() string {
	return "SELECT * FROM " + s.Table + " WHERE " + s.Where + ";"
}

// Detect 返回语句类型，不支持的语句返回空字符串
func Detect(input string) string {
	lower := strings.ToLower(strings.TrimSpace(input))
	switch {
	case strings.HasPrefix(lower, "update"):
		return KindUpdate
	case strings.HasPrefix(lower, "delete"):
		return KindDelete
	}
	return ""
}

// Parse 提取表名和 WHERE 条件
//
// 失败时返回 ErrEmpty、ErrUpdate、ErrDelete 或 ErrUnsupported，
// 可以用 errors.Code 取出错误码。
func Parse(input string) (*Statement, error) {
	q := strings.TrimSpace(input)
	if q == "" {
		return nil, ErrEmpty
	}

	switch Detect(q) {
	case KindUpdate:
		m := updateRE.FindStringSubmatch(normalize(q))
		if m == nil {
			return nil, ErrUpdate
		}
		return newStatement(KindUpdate, m[1], m[3]), nil
	case KindDelete:
		m := deleteRE.FindStringSubmatch(normalize(q))
		if m == nil {
			return nil, ErrDelete
		}
		return newStatement(KindDelete, m[1], m[2]), nil
	}

	return nil, ErrUnsupported
}

func newStatement(kind, tableWithAlias, where string) *Statement {
	// 只取第一个单词，丢弃别名
	table := strings.Fields(tableWithAlias)[0]
	where = strings.TrimSpace(strings.TrimRight(where, ";"))

	return &Statement{Kind: kind, Table: table, Where: where}
}

// normalize 把连续空白（包括换行）压缩成一个空格
func normalize(q string) string {
	return strings.Join(strings.Fields(q), " ")
}
