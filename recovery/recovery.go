// Package recovery 提供 HTTP panic 恢复中间件.
package recovery

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/Tsukikage7/localekit/logger"
)

// Handler 自定义 panic 响应函数，负责向客户端写入响应.
type Handler func(w http.ResponseWriter, r *http.Request, p any)

// Observer panic 观察者，通常由指标收集器实现.
type Observer interface {
	RecordPanic(method, path string)
}

// Options 配置选项.
type Options struct {
	// Logger 日志记录器，必需.
	Logger logger.Logger

	// Handler 自定义响应，为 nil 时返回 500.
	Handler Handler

	// Observer panic 计数[可选].
	Observer Observer

	// StackSize 堆栈大小，默认 64KB.
	StackSize int
}

// Option 是配置函数.
type Option func(*Options)

// WithLogger 设置日志记录器.
func WithLogger(l logger.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithHandler 设置自定义 panic 响应.
func WithHandler(h Handler) Option {
	return func(o *Options) {
		o.Handler = h
	}
}

// WithObserver 设置 panic 观察者.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		o.Observer = obs
	}
}

// WithStackSize 设置堆栈大小.
func WithStackSize(size int) Option {
	return func(o *Options) {
		o.StackSize = size
	}
}

func applyOptions(opts []Option) *Options {
	o := &Options{StackSize: 64 * 1024}
	for _, opt := range opts {
		opt(o)
	}
	if o.StackSize <= 0 {
		o.StackSize = 64 * 1024
	}
	return o
}

// captureStack 捕获当前 goroutine 的堆栈.
func captureStack(size int) []byte {
	stack := make([]byte, size)
	n := runtime.Stack(stack, false)
	return stack[:n]
}

// PanicError 表示 panic 错误.
type PanicError struct {
	Value any
	Stack []byte
}

// Error 实现 error 接口.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap 返回原始错误（如果 panic 值是 error）.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
