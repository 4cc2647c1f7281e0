package recovery

import (
	"errors"
	"net/http"

	"github.com/Tsukikage7/localekit/logger"
)

// HTTPMiddleware 返回 HTTP panic 恢复中间件.
//
// 当 handler 发生 panic 时，中间件会：
//  1. 记录 panic 值和堆栈
//  2. 通知 Observer（如果设置）
//  3. 调用自定义 Handler，否则返回 500 Internal Server Error
//
// http.ErrAbortHandler 会被重新抛出，交给 net/http 中止连接.
//
// 示例:
//
//	wrapped := recovery.HTTPMiddleware(
//	    recovery.WithLogger(log),
//	    recovery.WithObserver(collector),
//	)(mux)
func HTTPMiddleware(opts ...Option) func(http.Handler) http.Handler {
	o := applyOptions(opts)
	if o.Logger == nil {
		panic("recovery: logger is required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				p := recover()
				if p == nil {
					return
				}
				if err, ok := p.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(p)
				}

				perr := &PanicError{Value: p, Stack: captureStack(o.StackSize)}
				o.Logger.WithContext(r.Context()).With(
					logger.Err(perr),
					logger.String("method", r.Method),
					logger.String("path", r.URL.Path),
					logger.String("stack", string(perr.Stack)),
				).Error("[Recovery] http panic recovered")

				if o.Observer != nil {
					o.Observer.RecordPanic(r.Method, r.URL.Path)
				}

				if o.Handler != nil {
					o.Handler(w, r, p)
					return
				}
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
