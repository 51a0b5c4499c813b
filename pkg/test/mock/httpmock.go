// Package mock 封装 httpmock，拦截 http.DefaultTransport 上的请求
package mock

import (
	"net/http"

	"github.com/jarcoal/httpmock"
)

// Responder 请求处理函数
type Responder = httpmock.Responder

func ActivateHttpMock() {
	httpmock.Activate()
}

func DeactivateHttpMock() {
	httpmock.DeactivateAndReset()
}

func RegisterResponder(method, url string, responder Responder) {
	httpmock.RegisterResponder(method, url, responder)
}

func NewStringResponder(status int, body string) Responder {
	return httpmock.NewStringResponder(status, body)
}

func NewJsonResponder(status int, body interface{}) (Responder, error) {
	return httpmock.NewJsonResponder(status, body)
}

func NewJsonResponse(status int, body interface{}) (*http.Response, error) {
	return httpmock.NewJsonResponse(status, body)
}

// CallCount 查询某个路由被调用的次数，key 形如 "POST http://host/path"
func CallCount(key string) int {
	return httpmock.GetCallCountInfo()[key]
}
