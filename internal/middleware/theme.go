package middleware

import (
	"net/http"

	"robofed.org/web/internal/theme"
)

// Theme asks browsers for the color scheme client hint and attaches a theme controller
// backed by the request cookies. Cookies are marked Secure when secure is set.
func Theme(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Accept-CH", theme.ClientHintHeader)
			w.Header().Add("Vary", theme.ClientHintHeader)
			store := theme.NewCookieStore(w, r)
			store.Secure = secure
			c := theme.New(store, theme.SystemFromRequest(r))
			next.ServeHTTP(w, r.WithContext(WithTheme(r.Context(), c)))
		})
	}
}
