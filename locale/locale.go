// Package locale 提供请求级语言协商与记忆功能.
//
// 特性：
//   - 按 查询参数 > Cookie > Accept-Language 的优先级协商语言
//   - 支持质量值排序与基础语言折叠 (en-US -> en)
//   - 显式选择的语言写入 Cookie，后续请求自动沿用
//   - 响应中声明 Content-Language（下游已设置时不覆盖）
//   - HTTP 中间件、gRPC 拦截器与 grpc-gateway 桥接
//
// 示例：
//
//	handler = locale.HTTPMiddleware(
//	    locale.WithSupported("en", "ja"),
//	    locale.WithDefault("ja"),
//	)(handler)
//
//	func handle(w http.ResponseWriter, r *http.Request) {
//	    lang := locale.GetLocale(r.Context()) // "en"
//	}
package locale

import "context"

// contextKey context 键类型.
type contextKey string

const (
	resultContextKey contextKey = "locale:result"
)

// Channel 语言来源通道.
type Channel string

// 语言来源通道常量.
const (
	ChannelQuery   Channel = "query"
	ChannelCookie  Channel = "cookie"
	ChannelHeader  Channel = "header"
	ChannelDefault Channel = "default"
)

// String 返回通道名称.
func (c Channel) String() string {
	return string(c)
}

// Result 语言协商结果.
type Result struct {
	// Locale 本次请求使用的语言，始终有值
	Locale string

	// Explicit 客户端通过查询参数显式选择的原始标签，仅查询参数命中时有值
	Explicit string

	// Channel 命中的通道
	Channel Channel
}

// HasExplicit 是否存在需要持久化的显式选择.
func (r Result) HasExplicit() bool {
	return r.Explicit != ""
}

// WithResult 将协商结果存入 context.
func WithResult(ctx context.Context, res Result) context.Context {
	return context.WithValue(ctx, resultContextKey, res)
}

// FromContext 从 context 获取协商结果.
func FromContext(ctx context.Context) (Result, bool) {
	res, ok := ctx.Value(resultContextKey).(Result)
	return res, ok
}

// GetLocale 从 context 获取当前语言.
func GetLocale(ctx context.Context) string {
	if res, ok := FromContext(ctx); ok {
		return res.Locale
	}
	return ""
}

// ExplicitFromContext 从 context 获取显式选择的语言.
func ExplicitFromContext(ctx context.Context) (string, bool) {
	res, ok := FromContext(ctx)
	if !ok || !res.HasExplicit() {
		return "", false
	}
	return res.Explicit, true
}
