// Package app 提供应用程序生命周期管理.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/Tsukikage7/localekit/logger"
	"github.com/Tsukikage7/localekit/transport"
)

var (
	// ErrRunning 应用正在运行.
	ErrRunning = errors.New("app: 应用正在运行")
	// ErrServerFailed 服务器启动或运行失败.
	ErrServerFailed = errors.New("app: 服务器运行失败")
)

// Application 应用程序，管理多个服务器的生命周期.
//
// 任一服务器启动失败都会触发整体关闭，Run 返回该错误.
type Application struct {
	opts    *options
	servers []transport.Server
	ctx     context.Context
	cancel  context.CancelFunc
	errCh   chan error
	mu      sync.Mutex
	running bool
}

// New 创建应用程序，如果未设置 logger 会 panic.
func New(opts ...Option) *Application {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		panic("app: 必须设置 logger")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Application{
		opts:   o,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Use 注册服务器.
func (a *Application) Use(servers ...transport.Server) *Application {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.servers = append(a.servers, servers...)
	return a
}

// Run 运行应用程序，阻塞直到收到信号、调用 Stop 或服务器失败.
func (a *Application) Run() error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return ErrRunning
	}
	a.running = true
	servers := append([]transport.Server(nil), a.servers...)
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.running = false
		a.mu.Unlock()
	}()

	if err := runHooks(a.ctx, a.opts.beforeStart); err != nil {
		return err
	}

	a.opts.logger.With(
		logger.String("name", a.opts.name),
		logger.String("version", a.opts.version),
	).Info("[App] starting")

	a.start(servers)

	if err := runHooks(a.ctx, a.opts.afterStart); err != nil {
		a.opts.logger.With(logger.Err(err)).Error("[App] after start hook failed")
	}

	runErr := a.wait()
	a.shutdown(servers)
	return runErr
}

// Stop 主动停止应用程序.
func (a *Application) Stop() {
	a.cancel()
}

// Context 获取应用上下文.
func (a *Application) Context() context.Context {
	return a.ctx
}

// Name 获取应用名称.
func (a *Application) Name() string {
	return a.opts.name
}

// Version 获取应用版本.
func (a *Application) Version() string {
	return a.opts.version
}

func (a *Application) start(servers []transport.Server) {
	a.errCh = make(chan error, len(servers))
	if len(servers) == 0 {
		a.opts.logger.Warn("[App] no servers registered")
		return
	}

	for _, srv := range servers {
		go func(s transport.Server) {
			a.opts.logger.With(
				logger.String("server", s.Name()),
				logger.String("addr", s.Addr()),
			).Info("[App] starting server")
			if err := s.Start(a.ctx); err != nil {
				a.errCh <- fmt.Errorf("%w: %s: %w", ErrServerFailed, s.Name(), err)
			}
		}(srv)
	}
}

func (a *Application) wait() error {
	signals := a.opts.signals
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, signals...)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.opts.logger.With(logger.String("signal", sig.String())).Info("[App] received signal")
	case <-a.ctx.Done():
		a.opts.logger.Info("[App] context cancelled")
	case err := <-a.errCh:
		a.opts.logger.With(logger.Err(err)).Error("[App] server failed")
		return err
	}
	return nil
}

func (a *Application) shutdown(servers []transport.Server) {
	a.opts.logger.With(
		logger.Duration("timeout", a.opts.gracefulTimeout),
	).Info("[App] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.opts.gracefulTimeout)
	defer cancel()

	if err := runHooks(shutdownCtx, a.opts.beforeStop); err != nil {
		a.opts.logger.With(logger.Err(err)).Error("[App] before stop hook failed")
	}

	var wg sync.WaitGroup
	for _, srv := range servers {
		wg.Add(1)
		go func(s transport.Server) {
			defer wg.Done()
			a.opts.logger.With(logger.String("server", s.Name())).Info("[App] stopping server")
			if err := s.Stop(shutdownCtx); err != nil {
				a.opts.logger.With(
					logger.String("server", s.Name()),
					logger.Err(err),
				).Error("[App] server stop failed")
			}
		}(srv)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.opts.logger.Info("[App] all servers stopped")
	case <-shutdownCtx.Done():
		a.opts.logger.Warn("[App] shutdown timeout")
	}
	a.cancel()

	a.runCleanups(shutdownCtx)

	if err := runHooks(context.Background(), a.opts.afterStop); err != nil {
		a.opts.logger.With(logger.Err(err)).Error("[App] after stop hook failed")
	}

	a.opts.logger.Info("[App] stopped")
}

func (a *Application) runCleanups(ctx context.Context) {
	if len(a.opts.cleanups) == 0 {
		return
	}

	cleanups := make([]Cleanup, len(a.opts.cleanups))
	copy(cleanups, a.opts.cleanups)
	sort.SliceStable(cleanups, func(i, j int) bool {
		return cleanups[i].Priority < cleanups[j].Priority
	})

	for _, c := range cleanups {
		if err := c.Fn(ctx); err != nil {
			a.opts.logger.With(
				logger.String("cleanup", c.Name),
				logger.Err(err),
			).Error("[App] cleanup failed")
			continue
		}
		a.opts.logger.With(logger.String("cleanup", c.Name)).Debug("[App] cleanup done")
	}
}
