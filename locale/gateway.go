package locale

import (
	"context"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/metadata"
)

// GatewayServeMuxOptions 返回 grpc-gateway ServeMux 选项.
//
// 查询参数经 metadata 转发给 gRPC 服务；content-language 和 set-cookie
// header metadata 以原始 HTTP 头名返回给客户端.
//
// 示例:
//
//	mux := runtime.NewServeMux(locale.GatewayServeMuxOptions(locale.WithParamsKey("lang"))...)
func GatewayServeMuxOptions(opts ...Option) []runtime.ServeMuxOption {
	o := applyOptions(opts)
	return []runtime.ServeMuxOption{
		runtime.WithMetadata(gatewayAnnotator(o.config.ParamsKey)),
		runtime.WithOutgoingHeaderMatcher(GatewayOutgoingHeaderMatcher),
	}
}

// gatewayAnnotator 将查询参数复制到 gRPC metadata.
func gatewayAnnotator(paramsKey string) func(context.Context, *http.Request) metadata.MD {
	return func(_ context.Context, r *http.Request) metadata.MD {
		if r == nil || r.URL == nil {
			return nil
		}
		v := r.URL.Query().Get(paramsKey)
		if v == "" {
			return nil
		}
		return metadata.Pairs(paramsKey, v)
	}
}

// GatewayOutgoingHeaderMatcher 将语言相关 header metadata 映射为 HTTP 响应头.
//
// 其他键保持 grpc-gateway 默认的 "Grpc-Metadata-" 前缀.
func GatewayOutgoingHeaderMatcher(key string) (string, bool) {
	switch strings.ToLower(key) {
	case MetadataKeyContentLanguage:
		return HeaderContentLanguage, true
	case MetadataKeySetCookie:
		return HeaderSetCookie, true
	}
	return runtime.MetadataHeaderPrefix + key, true
}
