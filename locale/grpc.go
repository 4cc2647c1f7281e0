package locale

import (
	"context"
	"net/http"
	"slices"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/Tsukikage7/localekit/logger"
)

// gRPC metadata 键名.
const (
	MetadataKeyAcceptLanguage  = "accept-language"
	MetadataKeyCookie          = "cookie"
	MetadataKeyContentLanguage = "content-language"
	MetadataKeySetCookie       = "set-cookie"
)

// metadataSource 基于 gRPC metadata 的 Source 实现.
//
// 同时识别 grpc-gateway 转发时添加的 "grpcgateway-" 前缀.
type metadataSource struct {
	md metadata.MD
}

// MetadataSource 将 gRPC metadata 适配为 Source.
func MetadataSource(md metadata.MD) Source {
	return metadataSource{md: md}
}

func (s metadataSource) first(key string) string {
	if v := s.md.Get(key); len(v) > 0 {
		return v[0]
	}
	if v := s.md.Get(runtime.MetadataPrefix + key); len(v) > 0 {
		return v[0]
	}
	return ""
}

func (s metadataSource) Query(key string) string {
	return s.first(key)
}

func (s metadataSource) Cookie(key string) string {
	lines := slices.Concat(s.md.Get(MetadataKeyCookie), s.md.Get(runtime.MetadataPrefix+MetadataKeyCookie))
	if len(lines) == 0 {
		return ""
	}
	// 复用 net/http 的 Cookie 解析
	req := http.Request{Header: http.Header{"Cookie": lines}}
	c, err := req.Cookie(key)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s metadataSource) AcceptLanguage() string {
	return s.first(MetadataKeyAcceptLanguage)
}

// UnaryServerInterceptor 返回一元 gRPC 拦截器.
//
// 从 metadata 协商语言并存入 context，响应时通过 header metadata
// 返回 content-language（handler 未设置时）和 set-cookie（显式选择时）.
func UnaryServerInterceptor(opts ...Option) grpc.UnaryServerInterceptor {
	o := applyOptions(opts)
	resolver := NewResolver(o.config)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		res := resolveIncoming(ctx, resolver)
		ctx = WithResult(ctx, res)
		o.observe(ctx, res)

		stream := grpc.ServerTransportStreamFromContext(ctx)
		if stream == nil {
			return handler(ctx, req)
		}

		hf := &headerFinalizer{ctx: ctx, opts: o, result: res, set: stream.SetHeader}
		wrapped := &transportStream{ServerTransportStream: stream, hf: hf}
		resp, err := handler(grpc.NewContextWithServerTransportStream(ctx, wrapped), req)
		hf.commit()
		return resp, err
	}
}

// StreamServerInterceptor 返回流 gRPC 拦截器.
func StreamServerInterceptor(opts ...Option) grpc.StreamServerInterceptor {
	o := applyOptions(opts)
	resolver := NewResolver(o.config)

	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		res := resolveIncoming(ss.Context(), resolver)
		ctx := WithResult(ss.Context(), res)
		o.observe(ctx, res)

		hf := &headerFinalizer{ctx: ctx, opts: o, result: res, set: ss.SetHeader}
		wrapped := &wrappedServerStream{
			ServerStream: ss,
			ctx:          ctx,
			hf:           hf,
		}
		err := handler(srv, wrapped)
		hf.commit()
		return err
	}
}

// resolveIncoming 从 incoming metadata 协商语言.
func resolveIncoming(ctx context.Context, resolver *Resolver) Result {
	md, _ := metadata.FromIncomingContext(ctx)
	return resolver.Resolve(MetadataSource(md))
}

// headerFinalizer 记录 handler 设置的 header metadata，并在首次发送前补充语言信息.
type headerFinalizer struct {
	ctx       context.Context
	opts      *options
	result    Result
	set       func(metadata.MD) error
	header    metadata.MD
	committed bool
}

func (f *headerFinalizer) record(md metadata.MD) {
	f.header = metadata.Join(f.header, md)
}

// build 构造需要补充的 header metadata.
func (f *headerFinalizer) build() metadata.MD {
	md := metadata.MD{}
	if len(f.header.Get(MetadataKeyContentLanguage)) == 0 && f.result.Locale != "" {
		md.Set(MetadataKeyContentLanguage, f.result.Locale)
	}
	if f.result.HasExplicit() {
		cookie := f.opts.config.Cookie.Cookie(f.opts.config.CookieKey, f.result.Explicit, f.opts.now())
		if v := cookie.String(); v != "" {
			md.Set(MetadataKeySetCookie, v)
		}
	}
	return md
}

// commit 写入补充的 header，多次调用只生效一次.
func (f *headerFinalizer) commit() {
	if f.committed {
		return
	}
	f.committed = true

	md := f.build()
	if md.Len() == 0 {
		return
	}
	// header 已发送时写入失败，忽略
	if err := f.set(md); err != nil && f.opts.logger != nil {
		f.opts.logger.WithContext(f.ctx).With(logger.Err(err)).Debug("[Locale] set grpc header failed")
	}
}

// transportStream 包装 grpc.ServerTransportStream 以拦截一元调用的 header.
type transportStream struct {
	grpc.ServerTransportStream
	hf *headerFinalizer
}

func (s *transportStream) SetHeader(md metadata.MD) error {
	s.hf.record(md)
	return s.ServerTransportStream.SetHeader(md)
}

func (s *transportStream) SendHeader(md metadata.MD) error {
	s.hf.record(md)
	s.hf.commit()
	return s.ServerTransportStream.SendHeader(md)
}

// wrappedServerStream 包装 grpc.ServerStream 以提供自定义 context 并拦截 header.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
	hf  *headerFinalizer
}

// Context 返回包装后的 context.
func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}

func (w *wrappedServerStream) SetHeader(md metadata.MD) error {
	w.hf.record(md)
	return w.ServerStream.SetHeader(md)
}

func (w *wrappedServerStream) SendHeader(md metadata.MD) error {
	w.hf.record(md)
	w.hf.commit()
	return w.ServerStream.SendHeader(md)
}

func (w *wrappedServerStream) SendMsg(m any) error {
	w.hf.commit()
	return w.ServerStream.SendMsg(m)
}
