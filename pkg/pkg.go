// Package pkg 统一初始化和重置基础组件
package pkg

import (
	_ "sqlpreview/pkg/conf"  // init conf
	_ "sqlpreview/pkg/xhttp" // init http

	"sqlpreview/pkg/log"
	"sqlpreview/pkg/trace"
)

// Reset 配置变更后重置各组件
func Reset() {
	log.Reset()
}

// Stop 进程退出前调用，上报剩余的 trace
func Stop() {
	trace.Stop()
}
