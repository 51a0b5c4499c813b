// Package hooks 提供 rpc 服务的公共 hook
package hooks

type ctxKeyType int

const (
	spanKey ctxKeyType = iota
)
