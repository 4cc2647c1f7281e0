package recovery

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tsukikage7/localekit/logger"
)

type countingObserver struct {
	calls [][2]string
}

func (o *countingObserver) RecordPanic(method, path string) {
	o.calls = append(o.calls, [2]string{method, path})
}

func panicking(v any) http.Handler {
	return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(v)
	})
}

func TestHTTPMiddleware_RequiresLogger(t *testing.T) {
	assert.PanicsWithValue(t, "recovery: logger is required", func() {
		HTTPMiddleware()
	})
}

func TestHTTPMiddleware_NoPanic(t *testing.T) {
	h := HTTPMiddleware(WithLogger(logger.NewNop()))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHTTPMiddleware_Recovers(t *testing.T) {
	obs := &countingObserver{}
	h := HTTPMiddleware(WithLogger(logger.NewNop()), WithObserver(obs))(panicking("boom"))

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, [][2]string{{http.MethodPost, "/items"}}, obs.calls)
}

func TestHTTPMiddleware_CustomHandler(t *testing.T) {
	var got any
	h := HTTPMiddleware(
		WithLogger(logger.NewNop()),
		WithHandler(func(w http.ResponseWriter, r *http.Request, p any) {
			got = p
			w.WriteHeader(http.StatusServiceUnavailable)
		}),
	)(panicking(42))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, 42, got)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHTTPMiddleware_RepanicsAbortHandler(t *testing.T) {
	h := HTTPMiddleware(WithLogger(logger.NewNop()))(panicking(http.ErrAbortHandler))

	assert.PanicsWithError(t, http.ErrAbortHandler.Error(), func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestPanicError(t *testing.T) {
	cause := errors.New("cause")

	assert.Equal(t, "panic: cause", (&PanicError{Value: cause}).Error())
	assert.ErrorIs(t, &PanicError{Value: cause}, cause)
	assert.Nil(t, (&PanicError{Value: "text"}).Unwrap())
}

func TestApplyOptions_StackSize(t *testing.T) {
	assert.Equal(t, 64*1024, applyOptions([]Option{WithStackSize(0)}).StackSize)
	assert.Equal(t, 1024, applyOptions([]Option{WithStackSize(1024)}).StackSize)
	assert.NotEmpty(t, captureStack(1024))
}
