package locale

import (
	"net/http"
	"slices"
)

// HeaderAcceptLanguage 请求语言偏好头.
const HeaderAcceptLanguage = "Accept-Language"

// Source 请求侧语言信号来源.
type Source interface {
	// Query 返回查询参数值
	Query(key string) string
	// Cookie 返回 Cookie 值
	Cookie(key string) string
	// AcceptLanguage 返回 Accept-Language 原始值
	AcceptLanguage() string
}

// Resolver 语言协商器.
//
// 创建后只读，可被并发请求共享.
type Resolver struct {
	paramsKey string
	cookieKey string
	supported []string
	set       set
	fallback  string
}

// NewResolver 根据配置创建协商器.
//
// 不校验配置，启动阶段应先调用 Config.Validate.
func NewResolver(cfg Config) *Resolver {
	cfg.ApplyDefaults()
	return &Resolver{
		paramsKey: cfg.ParamsKey,
		cookieKey: cfg.CookieKey,
		supported: slices.Clone(cfg.Supported),
		set:       newSet(cfg.Supported),
		fallback:  cfg.Default,
	}
}

// Supported 返回受支持的语言列表副本.
func (r *Resolver) Supported() []string {
	return slices.Clone(r.supported)
}

// Default 返回默认语言.
func (r *Resolver) Default() string {
	return r.fallback
}

// Resolve 协商本次请求的语言.
//
// 依次尝试查询参数、Cookie、Accept-Language，第一个命中的通道生效.
// 只有查询参数命中时才记录显式选择，且记录客户端提供的原始标签.
// 全部未命中时返回默认语言.
func (r *Resolver) Resolve(src Source) Result {
	if src == nil {
		return Result{Locale: r.fallback, Channel: ChannelDefault}
	}

	if member, tag, ok := r.set.match(src.Query(r.paramsKey)); ok {
		return Result{Locale: member, Explicit: tag, Channel: ChannelQuery}
	}

	// Cookie 已持久化，无需再次写入
	if member, _, ok := r.set.match(src.Cookie(r.cookieKey)); ok {
		return Result{Locale: member, Channel: ChannelCookie}
	}

	if member, _, ok := r.set.match(src.AcceptLanguage()); ok {
		return Result{Locale: member, Channel: ChannelHeader}
	}

	return Result{Locale: r.fallback, Channel: ChannelDefault}
}

// ResolveRequest 协商 HTTP 请求的语言.
func (r *Resolver) ResolveRequest(req *http.Request) Result {
	if req == nil {
		return r.Resolve(nil)
	}
	return r.Resolve(RequestSource(req))
}

// requestSource 基于 *http.Request 的 Source 实现.
type requestSource struct {
	req *http.Request
}

// RequestSource 将 *http.Request 适配为 Source.
func RequestSource(req *http.Request) Source {
	return requestSource{req: req}
}

func (s requestSource) Query(key string) string {
	if s.req.URL == nil {
		return ""
	}
	return s.req.URL.Query().Get(key)
}

func (s requestSource) Cookie(key string) string {
	c, err := s.req.Cookie(key)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s requestSource) AcceptLanguage() string {
	return s.req.Header.Get(HeaderAcceptLanguage)
}
