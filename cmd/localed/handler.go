package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/metadata"

	"github.com/Tsukikage7/localekit/locale"
	"github.com/Tsukikage7/localekit/logger"
	"github.com/Tsukikage7/localekit/metrics"
	"github.com/Tsukikage7/localekit/recovery"
	"github.com/Tsukikage7/localekit/trace"
)

// HeaderRequestID 请求 ID 响应头.
const HeaderRequestID = "X-Request-Id"

// gatewayPrefix 经 grpc-gateway 解析语言的路由前缀.
const gatewayPrefix = "/v1/"

// rootPattern 只匹配 "/"，其他未注册路径返回 404.
const rootPattern = "/{$}"

type requestIDKey struct{}

// localeResponse 语言协商结果.
type localeResponse struct {
	Locale   string `json:"locale"`
	Explicit string `json:"explicit,omitempty"`
	Channel  string `json:"channel"`
}

// newHTTPHandler 组装 HTTP 处理链.
//
// recovery -> trace -> metrics -> request id -> 路由；
// "/"（精确匹配）经语言协商中间件，"/v1/locale" 经 grpc-gateway 元数据协商.
func newHTTPHandler(cfg *AppConfig, log logger.Logger, collector metrics.Collector) (http.Handler, error) {
	localeOpts := []locale.Option{
		locale.WithConfig(cfg.Locale),
		locale.WithLogger(log),
		locale.WithObserver(collector),
	}

	gateway, err := newGatewayMux(cfg.Locale, localeOpts)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(collector.GetPath(), collector.GetHandler())
	mux.Handle(gatewayPrefix, gateway)
	mux.Handle(rootPattern, locale.HTTPMiddleware(localeOpts...)(localeHandler(log)))

	var h http.Handler = mux
	h = requestIDMiddleware(h)
	h = metrics.HTTPMiddleware(collector)(h)
	h = trace.HTTPMiddleware(cfg.App.Name)(h)
	h = recovery.HTTPMiddleware(
		recovery.WithLogger(log),
		recovery.WithObserver(collector),
	)(h)
	return h, nil
}

// localeHandler 返回 context 中的协商结果.
func localeHandler(log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, _ := locale.FromContext(r.Context())
		log.WithContext(r.Context()).With(
			logger.String("request_id", RequestID(r.Context())),
			logger.String("locale", res.Locale),
		).Debug("[localed] locale served")
		writeJSON(w, res)
	}
}

// newGatewayMux 创建 grpc-gateway ServeMux.
//
// 请求头和查询参数先转换为 gRPC 元数据，再按元数据协商语言，
// 与 gRPC 服务端拦截器看到的输入一致.
func newGatewayMux(cfg locale.Config, opts []locale.Option) (*runtime.ServeMux, error) {
	cfg.ApplyDefaults()
	resolver := locale.NewResolver(cfg)
	mux := runtime.NewServeMux(locale.GatewayServeMuxOptions(opts...)...)

	err := mux.HandlePath(http.MethodGet, gatewayPrefix+"locale", func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		ctx, err := runtime.AnnotateIncomingContext(r.Context(), mux, r, "/localed.v1.LocaleService/GetLocale")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		md, _ := metadata.FromIncomingContext(ctx)
		res := resolver.Resolve(locale.MetadataSource(md))

		locale.Finalize(w.Header(), res.Locale, res.Explicit, cfg.CookieKey, cfg.Cookie)
		writeJSON(w, res)
	})
	if err != nil {
		return nil, err
	}
	return mux, nil
}

func writeJSON(w http.ResponseWriter, res locale.Result) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(localeResponse{
		Locale:   res.Locale,
		Explicit: res.Explicit,
		Channel:  res.Channel.String(),
	})
}

// requestIDMiddleware 透传或生成请求 ID.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// RequestID 从 context 获取请求 ID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
