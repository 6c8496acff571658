package main

import (
    "io/fs"
    "net/http"
    "strings"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"

    "robofed.org/web/internal/assets"
    "robofed.org/web/internal/handlers"
    "robofed.org/web/internal/i18n"
    mw "robofed.org/web/internal/middleware"
    "robofed.org/web/internal/site"
)

// themeEndpoint is the route prefix of the theme API published to the client runtime.
const themeEndpoint = "/theme"

// newRouter builds the HTTP surface: health check, client runtime, theme API and the
// page pipeline for everything else.
func newRouter(s *site.Site, bundle *i18n.Bundle, secure bool) http.Handler {
    r := chi.NewRouter()
    r.Use(middleware.RequestID)
    // If deployed behind a trusted reverse proxy/load balancer, RealIP will use
    // X-Forwarded-For to determine the client IP. Ensure only trusted proxies
    // can set these headers in production environments.
    r.Use(middleware.RealIP)
    r.Use(mw.Logger)
    r.Use(middleware.Recoverer)
    r.Use(middleware.Compress(5))
    r.Use(middleware.Timeout(30 * time.Second))

    // Health check
    r.Get("/healthz", handlers.Healthz)

    // Client runtime; a copy shipped in the site directory wins over the embedded one.
    embedded := mw.AssetsWithCache(assets.FS())
    siteStatic := mw.AssetsWithCache(s.Files())
    r.Get("/"+assets.Dir+"/*", func(w http.ResponseWriter, r *http.Request) {
        if _, err := fs.Stat(s.Files(), strings.TrimPrefix(r.URL.Path, "/")); err == nil {
            siteStatic.ServeHTTP(w, r)
            return
        }
        embedded.ServeHTTP(w, r)
    })

    r.Group(func(r chi.Router) {
        r.Use(mw.Locale(bundle))
        r.Use(mw.VaryLocale)
        r.Use(mw.Theme(secure))

        r.Route(themeEndpoint, func(r chi.Router) {
            r.Post("/toggle", handlers.ThemeToggle)
            r.Post("/reset", handlers.ThemeReset)
            r.Post("/system", handlers.ThemeSystem)
        })

        pages := handlers.NewPages(s, themeEndpoint)
        r.Method(http.MethodGet, "/*", pages)
        r.Method(http.MethodHead, "/*", pages)
    })
    return r
}
