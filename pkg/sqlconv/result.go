package sqlconv

import (
	"sqlpreview/pkg/errors"
)

// Result 转换结果，Text 直接用于展示
type Result struct {
	Text      string `json:"text"`
	Status    Status `json:"status"`
	Code      int32  `json:"code,omitempty"`
	Statement string `json:"statement,omitempty"`
	Table     string `json:"table,omitempty"`
	Where     string `json:"where,omitempty"`
}

// Copyable 只有转换成功的 SELECT 才允许复制
func (r Result) Copyable() bool {
	return r.Status == StatusSuccess
}

// Convert 把 UPDATE / DELETE 转换成 SELECT
//
// 纯函数，任何输入都会返回可展示的结果，不会 panic。
func Convert(input string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = failure(input, ErrParse)
		}
	}()

	stmt, err := Parse(input)
	if err != nil {
		return failure(input, err)
	}

	return Result{
		Text:      stmt.Select(),
		Status:    StatusSuccess,
		Statement: stmt.Kind,
		Table:     stmt.Table,
		Where:     stmt.Where,
	}
}

func failure(input string, err error) Result {
	code, ok := errors.Code(err)
	if !ok {
		code, err = CodeParse, ErrParse
	}

	status := StatusError
	switch code {
	case CodeEmpty:
		status = StatusEmpty
	case CodeUnsupported:
		status = StatusWarning
	}

	return Result{
		Text:      err.Error(),
		Status:    status,
		Code:      code,
		Statement: Detect(input),
	}
}
