// Package server 提供 HTTP 服务器实现.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Tsukikage7/localekit/logger"
	"github.com/Tsukikage7/localekit/transport"
)

// 内置健康检查路径.
const (
	DefaultLivenessPath  = "/healthz"
	DefaultReadinessPath = "/readyz"
)

// Server HTTP 服务器.
//
// 内置 /healthz 与 /readyz：存活检查始终返回 200，
// 就绪检查在 Stop 调用后返回 503，便于负载均衡摘除流量.
type Server struct {
	opts    *options
	handler http.Handler

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
	ready    atomic.Bool
}

// New 创建 HTTP 服务器，如果未设置 logger 会 panic.
func New(handler http.Handler, opts ...Option) *Server {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		panic("http server: 必须设置 logger")
	}

	s := &Server{opts: o}
	s.handler = s.healthMiddleware(handler)
	return s
}

// Start 启动 HTTP 服务器，阻塞直到 ctx 取消或服务出错.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.opts.addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.opts.readTimeout,
		WriteTimeout: s.opts.writeTimeout,
		IdleTimeout:  s.opts.idleTimeout,
	}

	s.mu.Lock()
	s.server = srv
	s.listener = listener
	s.mu.Unlock()
	s.ready.Store(true)

	s.opts.logger.Infof("[%s] 服务器启动 [addr:%s]", s.opts.name, listener.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}
	return nil
}

// Stop 停止 HTTP 服务器.
func (s *Server) Stop(ctx context.Context) error {
	s.ready.Store(false)

	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	s.opts.logger.Infof("[%s] 服务器停止中", s.opts.name)
	return srv.Shutdown(ctx)
}

// Name 返回服务器名称.
func (s *Server) Name() string {
	return s.opts.name
}

// Addr 返回服务器地址，启动后为实际监听地址.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.opts.addr
}

// Handler 返回包含健康检查的 HTTP Handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) healthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case DefaultLivenessPath:
			writeStatus(w, http.StatusOK)
			return
		case DefaultReadinessPath:
			if s.ready.Load() {
				writeStatus(w, http.StatusOK)
			} else {
				writeStatus(w, http.StatusServiceUnavailable)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeStatus(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(http.StatusText(code)))
}

// Option 配置选项函数.
type Option func(*options)

type options struct {
	name         string
	addr         string
	readTimeout  time.Duration
	writeTimeout time.Duration
	idleTimeout  time.Duration
	logger       logger.Logger
}

func defaultOptions() *options {
	return &options{
		name:         "HTTP",
		addr:         ":8080",
		readTimeout:  30 * time.Second,
		writeTimeout: 30 * time.Second,
		idleTimeout:  120 * time.Second,
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

// WithTimeouts 设置读、写、空闲超时，零值保持默认.
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(o *options) {
		if read > 0 {
			o.readTimeout = read
		}
		if write > 0 {
			o.writeTimeout = write
		}
		if idle > 0 {
			o.idleTimeout = idle
		}
	}
}

// WithConfig 从配置结构体设置服务器选项，零值字段保持默认值.
func WithConfig(cfg transport.HTTPConfig) Option {
	return func(o *options) {
		if cfg.Name != "" {
			o.name = cfg.Name
		}
		if cfg.Addr != "" {
			o.addr = cfg.Addr
		}
		WithTimeouts(cfg.ReadTimeout, cfg.WriteTimeout, cfg.IdleTimeout)(o)
	}
}

// WithLogger 设置日志记录器（必需）.
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		o.logger = log
	}
}

var _ transport.Server = (*Server)(nil)
