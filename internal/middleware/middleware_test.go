package middleware

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robofed.org/web/internal/i18n"
	"robofed.org/web/internal/theme"
)

func TestAssetsWithCacheETag(t *testing.T) {
	fsys := fstest.MapFS{"js/components.js": {Data: []byte("console.log(1)")}}
	h := AssetsWithCache(fsys)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/js/components.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	et := rec.Header().Get("ETag")
	require.NotEmpty(t, et)
	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=604800")
	assert.Equal(t, "console.log(1)", rec.Body.String())

	want, err := ETag(fsys, "/js/components.js")
	require.NoError(t, err)
	assert.Equal(t, want, et)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/js/components.js", nil)
	req.Header.Set("If-None-Match", et)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/js/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLocaleResolution(t *testing.T) {
	bundle, err := i18n.Embedded()
	require.NoError(t, err)

	var got string
	h := Locale(bundle)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Lang(r)
	}))

	tests := []struct {
		name   string
		target string
		cookie string
		accept string
		want   string
	}{
		{name: "query wins", target: "/?hl=en", cookie: "uk", accept: "uk", want: "en"},
		{name: "cookie", target: "/", cookie: "en", accept: "uk", want: "en"},
		{name: "unsupported cookie", target: "/", cookie: "ja", accept: "en-US,en;q=0.8", want: "en"},
		{name: "accept language", target: "/", accept: "en;q=0.4,uk;q=0.9", want: "uk"},
		{name: "fallback", target: "/", accept: "fr", want: "uk"},
		{name: "unsupported query", target: "/?hl=de", want: "uk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookie, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, rec.Header().Get("Content-Language"))
		})
	}
}

func TestLocaleQuerySetsCookie(t *testing.T) {
	bundle, err := i18n.Embedded()
	require.NoError(t, err)
	h := Locale(bundle)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?hl=EN", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, LangCookie, cookies[0].Name)
	assert.Equal(t, "en", cookies[0].Value)
}

func TestThemeMiddleware(t *testing.T) {
	var c *theme.Controller
	h := Theme(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c = ThemeFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(theme.ClientHintHeader, "dark")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.NotNil(t, c)
	assert.Equal(t, theme.SystemDark, c.State())
	assert.Equal(t, theme.ClientHintHeader, rec.Header().Get("Accept-CH"))
	assert.Nil(t, ThemeFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}

func TestLoggerEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prev)
		log.SetFlags(flags)
	})

	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Language", "en")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hi"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/theme/toggle", nil))

	var e logEntry
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &e))
	assert.Equal(t, http.MethodPost, e.Method)
	assert.Equal(t, "/theme/toggle", e.Path)
	assert.Equal(t, http.StatusTeapot, e.Status)
	assert.Equal(t, 2, e.Bytes)
	assert.Equal(t, "en", e.Lang)
	assert.Equal(t, "info", e.Level)
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/theme/system", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	WriteError(rec, req, http.StatusBadRequest, "bad scheme")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"bad scheme"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodPost, "/", nil), http.StatusBadRequest, "bad scheme")
	assert.Equal(t, "bad scheme\n", rec.Body.String())
}
