// Package components renders the markup shared by every page (header, footer, call to
// action banner, breadcrumbs) plus the content blocks of the section pages. Renders are
// pure: the output depends only on the Context, the site info and the static navigation.
package components

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"robofed.org/web/internal/basepath"
	"robofed.org/web/internal/cms"
	"robofed.org/web/internal/format"
	"robofed.org/web/internal/i18n"
	"robofed.org/web/internal/interact"
	"robofed.org/web/internal/nav"
	"robofed.org/web/internal/theme"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// SiteInfo is the organization copy that is configured rather than translated.
type SiteInfo struct {
	Email    string
	Facebook string
	Location []string
	Year     int
	Currency string
}

// Context is the per-page input of a render.
type Context struct {
	ActivePage string
	Base       *basepath.Resolver
	Lang       string
	Theme      theme.Appearance
}

// url joins rel onto the resolved base. Bases come from configuration or the page's
// root marker and may use the file: scheme.
func (c Context) url(rel string) string {
	if c.Base == nil {
		return basepath.CurrentDir + rel
	}
	return c.Base.URL(rel)
}

// Renderer executes the embedded component templates.
type Renderer struct {
	tmpl   *template.Template
	bundle *i18n.Bundle
	site   SiteInfo
}

// New parses the component templates once.
func New(bundle *i18n.Bundle, site SiteInfo) (*Renderer, error) {
	if bundle == nil {
		return nil, fmt.Errorf("components: nil i18n bundle")
	}
	if site.Year == 0 {
		site.Year = time.Now().Year()
	}
	if site.Currency == "" {
		site.Currency = "UAH"
	}
	tmpl, err := template.New("_root").Funcs(placeholderFuncs()).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("components: parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, bundle: bundle, site: site}, nil
}

// Site returns the configured organization copy.
func (r *Renderer) Site() SiteInfo { return r.site }

type headerData struct {
	Nav   []nav.RenderedItem
	Theme theme.Appearance
}

// Header renders the site header with the active entry of ctx highlighted.
func (r *Renderer) Header(ctx Context) (template.HTML, error) {
	return r.execute(ctx, "header", headerData{
		Nav:   nav.Build(ctx.ActivePage, ctx.url),
		Theme: normalizeAppearance(ctx.Theme),
	})
}

type footerData struct {
	Nav  []nav.RenderedItem
	Site SiteInfo
}

// Footer renders the site footer.
func (r *Renderer) Footer(ctx Context) (template.HTML, error) {
	return r.execute(ctx, "footer", footerData{
		Nav:  nav.Build("", ctx.url),
		Site: r.site,
	})
}

// CTABanner renders the donation call to action.
func (r *Renderer) CTABanner(ctx Context) (template.HTML, error) {
	return r.execute(ctx, "cta", nil)
}

// Breadcrumbs renders the inner markup of a breadcrumb trail. The last crumb is the
// current page and is not linked.
func (r *Renderer) Breadcrumbs(ctx Context, crumbs []nav.Crumb) (template.HTML, error) {
	if len(crumbs) == 0 {
		return "", nil
	}
	return r.execute(ctx, "breadcrumbs", struct{ Crumbs []nav.Crumb }{crumbs})
}

// ProjectList renders the filter bar and project cards. Cards outside category are
// rendered hidden so the client filter can reveal them without a reload.
func (r *Renderer) ProjectList(ctx Context, projects []cms.Project, category string) (template.HTML, error) {
	return r.execute(ctx, "projects", struct {
		Projects   []cms.Project
		Categories []string
		Category   string
	}{projects, cms.Categories(projects), category})
}

// EventList renders event cards.
func (r *Renderer) EventList(ctx Context, events []cms.Event) (template.HTML, error) {
	return r.execute(ctx, "events", struct{ Events []cms.Event }{events})
}

// DonateAmounts renders the preset amount buttons.
func (r *Renderer) DonateAmounts(ctx Context, amounts []int64, selected int64) (template.HTML, error) {
	return r.execute(ctx, "amounts", struct {
		Amounts  []int64
		Selected int64
	}{amounts, selected})
}

func (r *Renderer) execute(ctx Context, name string, data any) (template.HTML, error) {
	t, err := r.tmpl.Clone()
	if err != nil {
		return "", fmt.Errorf("components: clone templates: %w", err)
	}
	t = t.Funcs(r.funcs(ctx))
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("components: render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) funcs(ctx Context) template.FuncMap {
	lang := ctx.Lang
	if lang == "" {
		lang = r.bundle.Fallback()
	}
	t := r.bundle.Func(lang)
	return template.FuncMap{
		"t":    t,
		"url":  func(rel string) template.URL { return template.URL(ctx.url(rel)) },
		"href": func(resolved string) template.URL { return template.URL(resolved) },
		"asset": func(p string) any {
			if strings.Contains(p, "://") || strings.HasPrefix(p, "/") {
				return p
			}
			return template.URL(ctx.url(p))
		},
		"label": func(c nav.Crumb) string {
			if c.LabelKey != "" {
				return t(c.LabelKey)
			}
			return c.Label
		},
		"last": func(i int, crumbs []nav.Crumb) bool { return i == len(crumbs)-1 },
		"isAll": interact.IsAllCategory,
		"match": func(item, category string) bool {
			return interact.MatchesCategory(item, category)
		},
		"date":  func(d time.Time) string { return format.Date(d, lang) },
		"money": func(v int64) string { return format.Amount(v, r.site.Currency, lang) },
	}
}

func placeholderFuncs() template.FuncMap {
	return template.FuncMap{
		"t":     func(string) string { return "" },
		"url":   func(string) template.URL { return "" },
		"href":  func(string) template.URL { return "" },
		"asset": func(string) any { return "" },
		"label": func(nav.Crumb) string { return "" },
		"last":  func(int, []nav.Crumb) bool { return false },
		"isAll": func(string) bool { return false },
		"match": func(string, string) bool { return false },
		"date":  func(time.Time) string { return "" },
		"money": func(int64) string { return "" },
	}
}

func normalizeAppearance(a theme.Appearance) theme.Appearance {
	if a.Icon == "" {
		return theme.AppearanceFor(a.Theme, a.Overridden)
	}
	return a
}
