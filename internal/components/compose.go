package components

import (
	"html/template"

	"github.com/PuerkitoBio/goquery"

	"robofed.org/web/internal/cms"
	"robofed.org/web/internal/nav"
	"robofed.org/web/internal/theme"
)

// Placeholder element IDs a page can declare.
const (
	IDHeader        = "header"
	IDFooter        = "footer"
	IDCTABanner     = "cta-banner"
	IDBreadcrumbs   = "breadcrumbs"
	IDProjectList   = "project-list"
	IDEventList     = "event-list"
	IDDonateAmounts = "donate-amounts"
)

// Extras carries the optional, page specific inputs of Compose.
type Extras struct {
	Breadcrumbs []nav.Crumb
	Projects    []cms.Project
	Category    string
	Events      []cms.Event
	Amounts     []int64
	Selected    int64
}

// Report lists which placeholders were filled and which were absent.
type Report struct {
	Rendered []string
	Skipped  []string
}

func (r *Report) add(id string, found bool) {
	if found {
		r.Rendered = append(r.Rendered, id)
	} else {
		r.Skipped = append(r.Skipped, id)
	}
}

// Has reports whether id was rendered.
func (r Report) Has(id string) bool {
	for _, v := range r.Rendered {
		if v == id {
			return true
		}
	}
	return false
}

type slot struct {
	id     string
	inner  bool
	render func() (template.HTML, error)
}

// Compose fills the placeholders of doc. Header, footer, banner and list placeholders
// are replaced wholesale; breadcrumbs and donation amounts are filled in place. A
// missing placeholder is skipped, a failing render aborts.
func (r *Renderer) Compose(doc *goquery.Document, ctx Context, extras Extras) (Report, error) {
	slots := []slot{
		{id: IDHeader, render: func() (template.HTML, error) { return r.Header(ctx) }},
		{id: IDFooter, render: func() (template.HTML, error) { return r.Footer(ctx) }},
		{id: IDCTABanner, render: func() (template.HTML, error) { return r.CTABanner(ctx) }},
		{id: IDBreadcrumbs, inner: true, render: func() (template.HTML, error) {
			return r.Breadcrumbs(ctx, extras.Breadcrumbs)
		}},
		{id: IDProjectList, render: func() (template.HTML, error) {
			return r.ProjectList(ctx, extras.Projects, extras.Category)
		}},
		{id: IDEventList, render: func() (template.HTML, error) {
			return r.EventList(ctx, extras.Events)
		}},
		{id: IDDonateAmounts, inner: true, render: func() (template.HTML, error) {
			return r.DonateAmounts(ctx, extras.Amounts, extras.Selected)
		}},
	}

	var rep Report
	for _, s := range slots {
		target := doc.Find("#" + s.id).First()
		if target.Length() == 0 {
			rep.add(s.id, false)
			continue
		}
		markup, err := s.render()
		if err != nil {
			return rep, err
		}
		if s.inner {
			target.SetHtml(string(markup))
		} else {
			target.ReplaceWithHtml(string(markup))
		}
		rep.add(s.id, true)
	}
	ApplyTheme(doc, ctx.Theme)
	return rep, nil
}

// ApplyTheme stamps the theme on the root element, the toggle icon and the dynamic
// theme-color meta tag used to tint browser chrome.
func ApplyTheme(doc *goquery.Document, a theme.Appearance) {
	if a.Theme == "" {
		return
	}
	a = normalizeAppearance(a)
	doc.Find("html").First().SetAttr("data-theme", string(a.Theme))
	doc.Find("#theme-icon").SetText(a.Icon)

	meta := doc.Find(`meta[name="theme-color"][data-dynamic-theme]`).First()
	if meta.Length() == 0 {
		head := doc.Find("head").First()
		if head.Length() == 0 {
			return
		}
		head.AppendHtml(`<meta name="theme-color" data-dynamic-theme="1">`)
		meta = head.Find(`meta[name="theme-color"][data-dynamic-theme]`).Last()
	}
	meta.SetAttr("content", a.Color)
}
