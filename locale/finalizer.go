package locale

import (
	"net/http"
	"time"
)

// 响应头常量.
const (
	HeaderContentLanguage = "Content-Language"
	HeaderSetCookie       = "Set-Cookie"
)

// Finalize 将协商结果写入响应头.
//
//   - Content-Language 仅在下游未设置时写入
//   - explicit 非空时追加一个记忆 Cookie，值与 explicit 完全一致
//   - explicit 为空时不写 Cookie，避免每次请求重复写入
func Finalize(h http.Header, effective, explicit, cookieKey string, cookie CookieConfig) {
	finalize(h, effective, explicit, cookieKey, cookie, time.Now())
}

func finalize(h http.Header, effective, explicit, cookieKey string, cookie CookieConfig, now time.Time) {
	if h == nil {
		return
	}

	if len(h.Values(HeaderContentLanguage)) == 0 && effective != "" {
		h.Set(HeaderContentLanguage, effective)
	}

	if explicit == "" {
		return
	}
	if v := cookie.Cookie(cookieKey, explicit, now).String(); v != "" {
		h.Add(HeaderSetCookie, v)
	}
}

// responseWriter 在响应头提交前执行一次 finalize.
type responseWriter struct {
	http.ResponseWriter
	finalize  func(http.Header)
	finalized bool
}

func newResponseWriter(w http.ResponseWriter, fn func(http.Header)) *responseWriter {
	return &responseWriter{ResponseWriter: w, finalize: fn}
}

// commit 执行 finalize，多次调用只生效一次.
func (rw *responseWriter) commit() {
	if rw.finalized {
		return
	}
	rw.finalized = true
	rw.finalize(rw.ResponseWriter.Header())
}

func (rw *responseWriter) WriteHeader(code int) {
	// 1xx 信息性响应之后还会有最终响应头
	if code >= http.StatusOK || code == http.StatusSwitchingProtocols {
		rw.commit()
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.commit()
	return rw.ResponseWriter.Write(b)
}

// Flush 实现 http.Flusher.
func (rw *responseWriter) Flush() {
	rw.commit()
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap 供 http.ResponseController 使用.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
