package preview_v1

import (
	"context"
	"io"
	"strings"

	"sqlpreview/pkg/twirp"
)

// Converter 语句转换服务
type Converter interface {
	// Convert 把 UPDATE / DELETE 转换成 SELECT
	Convert(context.Context, *ConvertReq) (*ConvertResp, error)
	// Preview 转换后在指定数据库执行 SELECT，返回受影响的行
	Preview(context.Context, *PreviewReq) (*PreviewResp, error)
	// ListHistory 最近的转换记录，新记录在前
	ListHistory(context.Context, *ListHistoryReq) (*ListHistoryResp, error)
	// ListExamples 内置示例
	ListExamples(context.Context, *ListExamplesReq) (*ListExamplesResp, error)
}

const (
	packageName = "preview.v1"
	serviceName = "Converter"
)

// ConverterPathPrefix 服务路由前缀
const ConverterPathPrefix = "/api/" + packageName + "." + serviceName + "/"

// NewConverterServer 创建 http handler，注册到 ConverterPathPrefix
func NewConverterServer(svc Converter, hooks *twirp.ServerHooks) *twirp.Server {
	s := twirp.NewServer(packageName, serviceName, hooks)

	s.Register("Convert", func(ctx context.Context, body io.Reader) (interface{}, error) {
		req := new(ConvertReq)
		if err := twirp.DecodeJSON(body, req); err != nil {
			return nil, err
		}
		return svc.Convert(ctx, req)
	})

	s.Register("Preview", func(ctx context.Context, body io.Reader) (interface{}, error) {
		req := new(PreviewReq)
		if err := twirp.DecodeJSON(body, req); err != nil {
			return nil, err
		}
		return svc.Preview(ctx, req)
	})

	s.Register("ListHistory", func(ctx context.Context, body io.Reader) (interface{}, error) {
		req := new(ListHistoryReq)
		if err := twirp.DecodeJSON(body, req); err != nil {
			return nil, err
		}
		return svc.ListHistory(ctx, req)
	})

	s.Register("ListExamples", func(ctx context.Context, body io.Reader) (interface{}, error) {
		req := new(ListExamplesReq)
		if err := twirp.DecodeJSON(body, req); err != nil {
			return nil, err
		}
		return svc.ListExamples(ctx, req)
	})

	return s
}

type converterJSONClient struct {
	client twirp.HTTPClient
	prefix string
}

// NewConverterJSONClient 创建远程客户端
//
// baseURL 形如 http://127.0.0.1:8080，client 一般传 http.DefaultClient
func NewConverterJSONClient(baseURL string, client twirp.HTTPClient) Converter {
	return &converterJSONClient{
		client: client,
		prefix: strings.TrimSuffix(baseURL, "/") + ConverterPathPrefix,
	}
}

func (c *converterJSONClient) Convert(ctx context.Context, in *ConvertReq) (*ConvertResp, error) {
	out := new(ConvertResp)
	if err := twirp.DoJSONRequest(ctx, c.client, c.prefix+"Convert", in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *converterJSONClient) Preview(ctx context.Context, in *PreviewReq) (*PreviewResp, error) {
	out := new(PreviewResp)
	if err := twirp.DoJSONRequest(ctx, c.client, c.prefix+"Preview", in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *converterJSONClient) ListHistory(ctx context.Context, in *ListHistoryReq) (*ListHistoryResp, error) {
	out := new(ListHistoryResp)
	if err := twirp.DoJSONRequest(ctx, c.client, c.prefix+"ListHistory", in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *converterJSONClient) ListExamples(ctx context.Context, in *ListExamplesReq) (*ListExamplesResp, error) {
	out := new(ListExamplesResp)
	if err := twirp.DoJSONRequest(ctx, c.client, c.prefix+"ListExamples", in, out); err != nil {
		return nil, err
	}
	return out, nil
}
