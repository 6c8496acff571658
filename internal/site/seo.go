package site

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"robofed.org/web/internal/cms"
	"robofed.org/web/internal/nav"
	"robofed.org/web/internal/seo"
)

const defaultOGImage = "img/og.png"

// applySEO adds canonical and Open Graph tags plus linked data. The organization is
// described on the home page; breadcrumbs and events need an absolute site URL.
func (s *Site) applySEO(head *goquery.Selection, pagePath, lang, active string, events []cms.Event) {
	if head.Length() == 0 {
		return
	}
	name := s.bundle.T(lang, "site.name")
	info := s.renderer.Site()
	siteURL := strings.TrimSuffix(s.settings.SiteURL, "/")

	meta := seo.Meta{
		Title: strings.TrimSpace(head.Find("title").First().Text()),
		OG:    seo.OpenGraph{Locale: lang},
	}
	if active == nav.PageHome {
		home := ""
		if siteURL != "" {
			home = siteURL + "/"
		}
		meta.JSONLD = append(meta.JSONLD,
			seo.NGO(name, home, info.Email, info.Facebook),
			seo.WebSite(name, home, lang),
		)
	}
	if siteURL != "" {
		abs := func(rel string) string { return siteURL + "/" + strings.TrimSuffix(rel, "index.html") }
		meta.Canonical = abs(pagePath)
		crumbs := nav.Breadcrumbs(pagePath, abs)
		if len(crumbs) > 1 {
			items := make([]seo.BreadcrumbItem, 0, len(crumbs))
			for _, c := range crumbs {
				label := c.Label
				if c.LabelKey != "" {
					label = s.bundle.T(lang, c.LabelKey)
				}
				items = append(items, seo.BreadcrumbItem{Name: label, Item: c.Href})
			}
			meta.JSONLD = append(meta.JSONLD, seo.BreadcrumbList(items))
		}
		for _, e := range events {
			meta.JSONLD = append(meta.JSONLD, seo.Event(e.Title, e.Summary, e.Location, e.Date, name))
		}
		if img := head.Find(`meta[property="og:image"]`).AttrOr("content", ""); img == "" {
			if s.hasFile(defaultOGImage) {
				meta.OG.Image = siteURL + "/" + defaultOGImage
			}
		}
	}
	seo.Apply(head, meta)
}

func (s *Site) hasFile(p string) bool {
	f, err := s.pages.Open(p)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}
