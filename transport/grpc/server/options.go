package server

import (
	"time"

	"google.golang.org/grpc"

	"github.com/Tsukikage7/localekit/logger"
	"github.com/Tsukikage7/localekit/transport"
)

// Option 配置选项函数.
type Option func(*options)

type options struct {
	name               string
	addr               string
	enableReflection   bool
	keepaliveTime      time.Duration
	keepaliveTimeout   time.Duration
	minPingInterval    time.Duration
	logger             logger.Logger
	services           []Registrar
	unaryInterceptors  []grpc.UnaryServerInterceptor
	streamInterceptors []grpc.StreamServerInterceptor
	serverOptions      []grpc.ServerOption
}

func defaultOptions() *options {
	return &options{
		name:             "gRPC",
		addr:             ":9090",
		keepaliveTime:    60 * time.Second,
		keepaliveTimeout: 20 * time.Second,
		minPingInterval:  20 * time.Second,
	}
}

// WithName 设置服务器名称.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithAddr 设置监听地址.
func WithAddr(addr string) Option {
	return func(o *options) {
		o.addr = addr
	}
}

// WithReflection 设置是否启用反射.
func WithReflection(enabled bool) Option {
	return func(o *options) {
		o.enableReflection = enabled
	}
}

// WithKeepalive 设置 Keepalive 参数，零值保持默认.
func WithKeepalive(interval, timeout time.Duration) Option {
	return func(o *options) {
		if interval > 0 {
			o.keepaliveTime = interval
		}
		if timeout > 0 {
			o.keepaliveTimeout = timeout
		}
	}
}

// WithConfig 从配置结构体设置服务器选项.
func WithConfig(cfg transport.GRPCConfig) Option {
	return func(o *options) {
		if cfg.Name != "" {
			o.name = cfg.Name
		}
		if cfg.Addr != "" {
			o.addr = cfg.Addr
		}
		o.enableReflection = cfg.EnableReflection
		WithKeepalive(cfg.KeepaliveTime, cfg.KeepaliveTimeout)(o)
	}
}

// WithLogger 设置日志记录器（必需）.
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		o.logger = log
	}
}

// WithUnaryInterceptor 添加一元拦截器，按添加顺序链式执行.
func WithUnaryInterceptor(interceptors ...grpc.UnaryServerInterceptor) Option {
	return func(o *options) {
		o.unaryInterceptors = append(o.unaryInterceptors, interceptors...)
	}
}

// WithStreamInterceptor 添加流拦截器.
func WithStreamInterceptor(interceptors ...grpc.StreamServerInterceptor) Option {
	return func(o *options) {
		o.streamInterceptors = append(o.streamInterceptors, interceptors...)
	}
}

// WithServerOption 添加自定义 gRPC 服务器选项.
func WithServerOption(opts ...grpc.ServerOption) Option {
	return func(o *options) {
		o.serverOptions = append(o.serverOptions, opts...)
	}
}
