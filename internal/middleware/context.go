package middleware

import (
	"context"

	"robofed.org/web/internal/theme"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
    ctxKeyLang     ctxKey = "lang"
    ctxKeyLocaleFB ctxKey = "locale_fallback"
    ctxKeyTheme    ctxKey = "theme"
)

// WithLang stores the resolved page language
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKeyLang, lang)
}

// WithTheme stores the per-request theme controller
func WithTheme(ctx context.Context, c *theme.Controller) context.Context {
	return context.WithValue(ctx, ctxKeyTheme, c)
}

// ThemeFromContext returns the theme controller if present
func ThemeFromContext(ctx context.Context) *theme.Controller {
	if v := ctx.Value(ctxKeyTheme); v != nil {
		if c, ok := v.(*theme.Controller); ok {
			return c
		}
	}
	return nil
}
