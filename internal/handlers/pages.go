package handlers

import (
	"errors"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"robofed.org/web/internal/interact"
	"robofed.org/web/internal/middleware"
	"robofed.org/web/internal/site"
)

// ReducedMotionHeader is the client hint for the reduced motion preference.
const ReducedMotionHeader = "Sec-CH-Prefers-Reduced-Motion"

// Pages serves the site directory: page sources go through the composition pipeline,
// every other file is served as a cached static asset.
type Pages struct {
	site          *site.Site
	static        http.Handler
	themeEndpoint string
}

// NewPages returns the page handler. themeEndpoint is published to the client runtime
// so theme changes are persisted by the server; empty keeps theme handling client side.
func NewPages(s *site.Site, themeEndpoint string) *Pages {
	return &Pages{
		site:          s,
		static:        middleware.AssetsWithCache(s.Files()),
		themeEndpoint: themeEndpoint,
	}
}

func (h *Pages) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := strings.TrimPrefix(r.URL.Path, "/")
	switch {
	case p == "" || strings.HasSuffix(p, "/"):
		p += "index.html"
	default:
		if info, err := fs.Stat(h.site.Files(), p); err == nil && info.IsDir() {
			target := r.URL.Path + "/"
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}
	}
	if !site.IsPage(p) {
		h.static.ServeHTTP(w, r)
		return
	}

	req := site.Request{
		Lang:          middleware.Lang(r),
		Category:      strings.TrimSpace(r.URL.Query().Get("category")),
		ReducedMotion: strings.EqualFold(strings.Trim(r.Header.Get(ReducedMotionHeader), `"`), "reduce"),
		ThemeEndpoint: h.themeEndpoint,
	}
	if v, ok := interact.ParseAmount(r.URL.Query().Get("amount")); ok {
		req.Amount = v
	}
	if c := middleware.ThemeFromContext(r.Context()); c != nil {
		req.Theme = c.Appearance()
	}

	page, err := h.site.Render(r.Context(), p, req)
	if err != nil {
		if errors.Is(err, site.ErrNotFound) {
			middleware.WriteError(w, r, http.StatusNotFound, "page not found")
			return
		}
		log.Printf("render %s: %v", p, err)
		middleware.WriteError(w, r, http.StatusInternalServerError, "render error")
		return
	}
	w.Header().Add("Accept-CH", ReducedMotionHeader)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(page.HTML)
}
