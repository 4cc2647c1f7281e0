package locale

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestFinalize_SetsContentLanguage(t *testing.T) {
	h := http.Header{}

	finalize(h, "en", "", "locale", DefaultCookieConfig(), fixedNow)

	assert.Equal(t, "en", h.Get(HeaderContentLanguage))
	assert.Empty(t, h.Values(HeaderSetCookie))
}

func TestFinalize_DoesNotOverwriteContentLanguage(t *testing.T) {
	h := http.Header{}
	h.Set(HeaderContentLanguage, "fr")

	finalize(h, "en", "", "locale", DefaultCookieConfig(), fixedNow)

	assert.Equal(t, []string{"fr"}, h.Values(HeaderContentLanguage))
}

func TestFinalize_WritesExplicitCookie(t *testing.T) {
	h := http.Header{}

	finalize(h, "en", "en-US", "locale", DefaultCookieConfig(), fixedNow)

	require.Len(t, h.Values(HeaderSetCookie), 1)
	assert.Equal(t,
		"locale=en-US; Path=/; Expires=Sat, 02 Jan 2027 03:04:05 GMT; HttpOnly; Secure",
		h.Get(HeaderSetCookie),
	)
}

func TestFinalize_CookieAttributes(t *testing.T) {
	h := http.Header{}
	cookie := CookieConfig{
		Lifetime: time.Hour,
		Domain:   "example.com",
		Path:     "/app",
		SameSite: SameSiteLax,
	}

	finalize(h, "ja", "ja", "lang", cookie, fixedNow)

	v := h.Get(HeaderSetCookie)
	assert.Contains(t, v, "lang=ja")
	assert.Contains(t, v, "Path=/app")
	assert.Contains(t, v, "Domain=example.com")
	assert.Contains(t, v, "Expires=Fri, 02 Jan 2026 04:04:05 GMT")
	assert.Contains(t, v, "SameSite=Lax")
	assert.NotContains(t, v, "HttpOnly")
	assert.NotContains(t, v, "Secure")
}

func TestFinalize_CookieAttributeSet(t *testing.T) {
	h := http.Header{}
	cookie := CookieConfig{
		Lifetime: DefaultCookieLifetime,
		Domain:   "example.com",
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		SameSite: SameSiteStrict,
	}

	finalize(h, "en", "en-US", "locale", cookie, fixedNow)

	parts := strings.Split(h.Get(HeaderSetCookie), "; ")
	assert.Equal(t, "locale=en-US", parts[0])
	assert.ElementsMatch(t, []string{
		"Expires=Sat, 02 Jan 2027 03:04:05 GMT",
		"Path=/",
		"Domain=example.com",
		"HttpOnly",
		"Secure",
		"SameSite=Strict",
	}, parts[1:])
}

func TestFinalize_OmitsUnsetAttributes(t *testing.T) {
	h := http.Header{}

	finalize(h, "ja", "ja", "locale", CookieConfig{Path: "/"}, fixedNow)

	v := h.Get(HeaderSetCookie)
	assert.Equal(t, "locale=ja; Path=/", v)
}

func TestFinalize_Idempotent(t *testing.T) {
	h := http.Header{}

	finalize(h, "en", "", "locale", DefaultCookieConfig(), fixedNow)
	finalize(h, "ja", "", "locale", DefaultCookieConfig(), fixedNow)

	assert.Equal(t, []string{"en"}, h.Values(HeaderContentLanguage))
	assert.Empty(t, h.Values(HeaderSetCookie))

	first := http.Header{}
	finalize(first, "en", "en", "locale", DefaultCookieConfig(), fixedNow)
	second := first.Clone()
	finalize(second, "en", "en", "locale", DefaultCookieConfig(), fixedNow)

	values := second.Values(HeaderSetCookie)
	require.Len(t, values, 2)
	assert.Equal(t, values[0], values[1])
	assert.Equal(t, first.Values(HeaderContentLanguage), second.Values(HeaderContentLanguage))
}

func TestFinalize_NilHeader(t *testing.T) {
	assert.NotPanics(t, func() {
		Finalize(nil, "en", "en", "locale", DefaultCookieConfig())
	})
}

func TestResponseWriter_FinalizesOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	calls := 0
	rw := newResponseWriter(rec, func(h http.Header) {
		calls++
		h.Set(HeaderContentLanguage, "en")
	})

	rw.WriteHeader(http.StatusCreated)
	_, err := rw.Write([]byte("ok"))
	require.NoError(t, err)
	rw.commit()

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "en", rec.Header().Get(HeaderContentLanguage))
}

func TestResponseWriter_InformationalDoesNotFinalize(t *testing.T) {
	rec := httptest.NewRecorder()
	calls := 0
	rw := newResponseWriter(rec, func(http.Header) { calls++ })

	rw.WriteHeader(http.StatusEarlyHints)
	assert.Equal(t, 0, calls)

	rw.WriteHeader(http.StatusOK)
	assert.Equal(t, 1, calls)
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	calls := 0
	rw := newResponseWriter(rec, func(http.Header) { calls++ })

	rw.Flush()

	assert.Equal(t, 1, calls)
	assert.True(t, rec.Flushed)
	assert.Same(t, rec, rw.Unwrap())
}
