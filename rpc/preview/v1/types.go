package preview_v1

// ConvertReq 转换请求
type ConvertReq struct {
	// 待转换的 UPDATE / DELETE 语句
	SQL string `json:"sql"`
}

// ConvertResp 转换结果
type ConvertResp struct {
	Text      string `json:"text"`
	Status    string `json:"status"`
	Code      int32  `json:"code,omitempty"`
	Statement string `json:"statement,omitempty"`
	Table     string `json:"table,omitempty"`
	Where     string `json:"where,omitempty"`
	Copyable  bool   `json:"copyable"`
}

// GetCode 业务错误码，转换成功为 0
func (r *ConvertResp) GetCode() int32 {
	if r == nil {
		return 0
	}
	return r.Code
}

// GetMsg 转换状态
func (r *ConvertResp) GetMsg() string {
	if r == nil {
		return ""
	}
	return r.Status
}

// PreviewReq 预览请求
type PreviewReq struct {
	SQL string `json:"sql"`
	// 数据库名，对应配置 SQLDB_DSN_{db}
	DB string `json:"db"`
	// 最多返回的行数，不传使用 PREVIEW_LIMIT
	Limit int `json:"limit,omitempty"`
}

// PreviewResp 预览结果
type PreviewResp struct {
	Convert   *ConvertResp `json:"convert"`
	Columns   []string     `json:"columns"`
	Rows      [][]string   `json:"rows"`
	Truncated bool         `json:"truncated"`
}

// GetCode 同 ConvertResp.GetCode
func (r *PreviewResp) GetCode() int32 {
	if r == nil {
		return 0
	}
	return r.Convert.GetCode()
}

// GetMsg 同 ConvertResp.GetMsg
func (r *PreviewResp) GetMsg() string {
	if r == nil {
		return ""
	}
	return r.Convert.GetMsg()
}

type ListHistoryReq struct {
	Limit int64 `json:"limit,omitempty"`
}

// HistoryEntry 一条转换历史
type HistoryEntry struct {
	ID      string `json:"id"`
	SQL     string `json:"sql"`
	Select  string `json:"select"`
	Table   string `json:"table"`
	Created string `json:"created"`
}

type ListHistoryResp struct {
	Entries []*HistoryEntry `json:"entries"`
}

type ListExamplesReq struct{}

// Example 内置示例及其转换结果
type Example struct {
	Title  string       `json:"title"`
	SQL    string       `json:"sql"`
	Result *ConvertResp `json:"result"`
}

type ListExamplesResp struct {
	Examples []*Example `json:"examples"`
}
