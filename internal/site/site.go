// Package site turns the page sources of the site directory into finished pages: it
// resolves the base path, fills the component placeholders, precomputes the interaction
// state and adds structured data. The same pipeline backs the HTTP server and the static
// export.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"robofed.org/web/internal/assets"
	"robofed.org/web/internal/basepath"
	"robofed.org/web/internal/cms"
	"robofed.org/web/internal/components"
	"robofed.org/web/internal/i18n"
	"robofed.org/web/internal/interact"
	"robofed.org/web/internal/nav"
	"robofed.org/web/internal/theme"
)

// ErrNotFound is returned for page paths that do not exist in the site directory.
var ErrNotFound = errors.New("site: page not found")

// UpcomingAttr on the #event-list placeholder limits the list to events not yet past.
const UpcomingAttr = "data-upcoming"

// Settings are the site wide knobs of the pipeline.
type Settings struct {
	// Lang is the language of static exports and the default for requests.
	Lang string
	// Script is the component runtime file name the base path is derived from.
	Script string
	// SiteRoot, when set, is stamped on pages without their own root marker.
	SiteRoot string
	// SiteURL is the absolute public URL; it enables canonical links and linked data.
	SiteURL string
	// FontsGate hides icon ligatures until the client reports the icon font loaded.
	FontsGate bool
	Amounts   []int64
	Analytics Analytics
}

// Request carries the visitor specific inputs of one render.
type Request struct {
	Lang          string
	Theme         theme.Appearance
	Category      string
	Amount        int64
	ReducedMotion bool
	// ThemeEndpoint is published to the runtime so theme changes reach the server.
	ThemeEndpoint string
	Now           time.Time
}

// Page is a rendered page.
type Page struct {
	Path   string
	Lang   string
	Active string
	Base   string
	HTML   []byte
	Report components.Report
}

// Site renders the pages of one site directory.
type Site struct {
	pages    fs.FS
	renderer *components.Renderer
	bundle   *i18n.Bundle
	content  *cms.Store
	settings Settings
}

// New returns a Site over pages. content may be nil when the site has no markdown
// content; list placeholders then render their empty state.
func New(pages fs.FS, renderer *components.Renderer, bundle *i18n.Bundle, content *cms.Store, settings Settings) (*Site, error) {
	if pages == nil {
		return nil, errors.New("site: nil page filesystem")
	}
	if renderer == nil || bundle == nil {
		return nil, errors.New("site: renderer and bundle are required")
	}
	if settings.Script == "" {
		settings.Script = basepath.DefaultScript
	}
	if !bundle.IsSupported(settings.Lang) {
		settings.Lang = bundle.Fallback()
	}
	return &Site{pages: pages, renderer: renderer, bundle: bundle, content: content, settings: settings}, nil
}

// Files exposes the site directory.
func (s *Site) Files() fs.FS { return s.pages }

// Settings returns the effective settings.
func (s *Site) Settings() Settings { return s.settings }

// IsPage reports whether p names a page source rather than a plain file.
func IsPage(p string) bool {
	return strings.EqualFold(path.Ext(p), ".html")
}

// Pages lists the page sources of the site in lexical order.
func (s *Site) Pages() ([]string, error) {
	var out []string
	err := fs.WalkDir(s.pages, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if IsPage(p) {
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("site: list pages: %w", err)
	}
	return out, nil
}

// Render composes the page at pagePath, a slash separated path relative to the site
// root such as "projects/index.html".
func (s *Site) Render(ctx context.Context, pagePath string, req Request) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pagePath = strings.TrimPrefix(path.Clean("/"+pagePath), "/")
	data, err := fs.ReadFile(s.pages, pagePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, pagePath)
		}
		return nil, fmt.Errorf("site: read %s: %w", pagePath, err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("site: parse %s: %w", pagePath, err)
	}
	page, err := s.compose(doc, pagePath, req)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, doc.Nodes[0]); err != nil {
		return nil, fmt.Errorf("site: serialize %s: %w", pagePath, err)
	}
	page.HTML = buf.Bytes()
	return page, nil
}

func (s *Site) compose(doc *goquery.Document, pagePath string, req Request) (*Page, error) {
	root := doc.Find("html").First()
	if s.settings.SiteRoot != "" && root.AttrOr(basepath.RootAttr, "") == "" {
		root.SetAttr(basepath.RootAttr, s.settings.SiteRoot)
	}
	base := basepath.New(basepath.HTMLDocument{Doc: doc}, basepath.WithScript(s.settings.Script))

	lang := strings.ToLower(req.Lang)
	if !s.bundle.IsSupported(lang) {
		lang = s.settings.Lang
	}
	root.SetAttr("lang", lang)

	active := doc.Find("body").First().AttrOr("data-page", "")
	if active == "" {
		active = nav.PageFor(pagePath)
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	extras := components.Extras{
		Breadcrumbs: nav.Breadcrumbs(pagePath, base.URL),
		Category:    req.Category,
		Amounts:     s.settings.Amounts,
		Selected:    req.Amount,
	}
	if s.content != nil && doc.Find("#"+components.IDProjectList).Length() > 0 {
		projects, err := s.content.Projects(lang)
		if err != nil {
			return nil, fmt.Errorf("site: projects for %s: %w", pagePath, err)
		}
		extras.Projects = projects
	}
	if list := doc.Find("#" + components.IDEventList).First(); s.content != nil && list.Length() > 0 {
		events, err := s.content.Events(lang)
		if err != nil {
			return nil, fmt.Errorf("site: events for %s: %w", pagePath, err)
		}
		if _, upcoming := list.Attr(UpcomingAttr); upcoming {
			events = cms.Upcoming(events, now)
		}
		extras.Events = events
	}

	cctx := components.Context{ActivePage: active, Base: base, Lang: lang, Theme: req.Theme}
	report, err := s.renderer.Compose(doc, cctx, extras)
	if err != nil {
		return nil, fmt.Errorf("site: compose %s: %w", pagePath, err)
	}

	interact.AnnotateCounters(doc.Selection)
	interact.StaggerReveal(doc.Selection, req.ReducedMotion)
	interact.ApplyFilter(doc.Selection, req.Category)
	if req.Amount > 0 {
		interact.SelectAmount(doc.Selection, req.Amount)
	}

	if req.ThemeEndpoint != "" {
		root.SetAttr("data-theme-endpoint", req.ThemeEndpoint)
	}
	if !s.settings.FontsGate {
		root.AddClass("icons-ready")
	}
	s.ensureRuntime(doc, base)

	head := doc.Find("head").First()
	s.applySEO(head, pagePath, lang, active, extras.Events)
	s.settings.Analytics.inject(head)

	return &Page{Path: pagePath, Lang: lang, Active: active, Base: base.Base(), Report: report}, nil
}

// ensureRuntime appends the embedded scripts a page does not load itself.
func (s *Site) ensureRuntime(doc *goquery.Document, base *basepath.Resolver) {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return
	}
	sources := basepath.HTMLDocument{Doc: doc}.ScriptSources()
	for _, name := range assets.Names() {
		file := path.Base(name)
		loaded := false
		for _, src := range sources {
			if strings.Contains(src, file) {
				loaded = true
				break
			}
		}
		if loaded {
			continue
		}
		body.AppendNodes(&html.Node{
			Type:     html.ElementNode,
			Data:     "script",
			DataAtom: atom.Script,
			Attr:     []html.Attribute{{Key: "src", Val: base.URL(name)}, {Key: "defer"}},
		})
	}
}
