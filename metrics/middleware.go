package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// UnmatchedPath 404 响应使用的 path 标签值，避免任意路径产生新的时间序列.
const UnmatchedPath = "unmatched"

// HTTPMiddleware 返回 HTTP 指标采集中间件.
//
// 指标路径本身不计入统计，404 响应统一记为 UnmatchedPath.
func HTTPMiddleware(collector Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == collector.GetPath() {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			path := r.URL.Path
			if rw.statusCode == http.StatusNotFound {
				path = UnmatchedPath
			}
			collector.RecordHTTPRequest(
				r.Method,
				path,
				strconv.Itoa(rw.statusCode),
				time.Since(start),
			)
		})
	}
}

// responseWriter 包装 http.ResponseWriter 以捕获状态码.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader && code >= http.StatusOK {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Flush() {
	rw.wroteHeader = true
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
