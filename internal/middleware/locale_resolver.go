package middleware

import (
    "context"
    "net/http"
    "strings"
    "time"

    "robofed.org/web/internal/i18n"
)

// LangCookie remembers an explicit language choice made with ?hl=.
const LangCookie = "hl"

// Locale resolves the preferred language from the `hl` query, the `hl` cookie, then
// Accept-Language, and stores it in the request context.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            // make fallback available to request context for helpers
            ctx := context.WithValue(r.Context(), ctxKeyLocaleFB, bundle.Fallback())
            lang := ""
            // query override
            if q := strings.ToLower(r.URL.Query().Get("hl")); q != "" && bundle.IsSupported(q) {
                lang = q
                http.SetCookie(w, &http.Cookie{
                    Name:     LangCookie,
                    Value:    q,
                    Path:     "/",
                    SameSite: http.SameSiteLaxMode,
                    Expires:  time.Now().Add(365 * 24 * time.Hour),
                })
            } else if c, err := r.Cookie(LangCookie); err == nil && bundle.IsSupported(strings.ToLower(c.Value)) {
                lang = strings.ToLower(c.Value)
            } else {
                lang = bundle.Resolve(r.Header.Get("Accept-Language"))
            }
            // surface Content-Language
            if lang != "" {
                ctx = WithLang(ctx, lang)
                w.Header().Set("Content-Language", lang)
            }
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// Lang returns the resolved language, the bundle fallback, or "uk".
func Lang(r *http.Request) string {
    if v, ok := r.Context().Value(ctxKeyLang).(string); ok && v != "" {
        return v
    }
    if v := r.Context().Value(ctxKeyLocaleFB); v != nil {
        if fb, ok := v.(string); ok && fb != "" {
            return fb
        }
    }
    return i18n.Default
}
