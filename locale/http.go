package locale

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/Tsukikage7/localekit/logger"
)

// span 属性键.
const (
	attrLocale  = attribute.Key("locale.effective")
	attrChannel = attribute.Key("locale.channel")
)

// HTTPMiddleware 返回语言协商中间件.
//
// 下游 handler 执行前协商语言并存入 context；
// 响应头提交前写入 Content-Language 和记忆 Cookie.
//
// 示例:
//
//	handler = locale.HTTPMiddleware(
//	    locale.WithSupported("en", "ja"),
//	    locale.WithDefault("ja"),
//	    locale.WithCookie(locale.CookieConfig{Path: "/", HTTPOnly: true, Secure: true}),
//	)(mux)
func HTTPMiddleware(opts ...Option) func(http.Handler) http.Handler {
	o := applyOptions(opts)
	resolver := NewResolver(o.config)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := resolver.ResolveRequest(r)
			ctx := WithResult(r.Context(), res)
			o.observe(ctx, res)

			rw := newResponseWriter(w, func(h http.Header) {
				finalize(h, res.Locale, res.Explicit, o.config.CookieKey, o.config.Cookie, o.now())
			})
			next.ServeHTTP(rw, r.WithContext(ctx))

			// handler 未写响应时在此补齐
			rw.commit()
		})
	}
}

// observe 上报协商结果到链路、指标和日志.
func (o *options) observe(ctx context.Context, res Result) {
	oteltrace.SpanFromContext(ctx).SetAttributes(
		attrLocale.String(res.Locale),
		attrChannel.String(res.Channel.String()),
	)

	if o.observer != nil {
		o.observer.RecordLocaleResolution(res.Channel.String(), res.Locale)
	}

	if o.logger != nil {
		o.logger.WithContext(ctx).With(
			logger.String("locale", res.Locale),
			logger.String("channel", res.Channel.String()),
			logger.Bool("explicit", res.HasExplicit()),
		).Debug("[Locale] resolved")
	}
}
