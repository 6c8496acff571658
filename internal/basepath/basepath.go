// Package basepath computes the link prefix that makes relative site links work
// from pages at any folder depth, whether the site is opened from disk or served.
package basepath

import (
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultScript is the file name of the component runtime every page loads.
	DefaultScript = "components.js"
	// CurrentDir is the fallback prefix when nothing better can be derived.
	CurrentDir = "./"
	// RootAttr is the attribute on <html> that declares the site root explicitly.
	RootAttr = "data-site-root"
)

// Document exposes the two page facts the resolver looks at.
type Document interface {
	RootMarker() string
	ScriptSources() []string
}

// Resolver memoizes the base path of one page.
type Resolver struct {
	doc    Document
	script string

	once sync.Once
	base string
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithScript overrides the component script file name searched for in script sources.
func WithScript(name string) Option {
	return func(r *Resolver) {
		if strings.TrimSpace(name) != "" {
			r.script = name
		}
	}
}

// New returns a resolver for doc. Nothing is computed until Base is called.
func New(doc Document, opts ...Option) *Resolver {
	r := &Resolver{doc: doc, script: DefaultScript}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fixed returns a resolver whose base is already known.
func Fixed(base string) *Resolver {
	r := &Resolver{script: DefaultScript}
	r.once.Do(func() { r.base = base })
	return r
}

// Base returns the prefix for relative links. It is computed on first use only.
func (r *Resolver) Base() string {
	r.once.Do(func() {
		if r.doc == nil {
			r.base = CurrentDir
			return
		}
		r.base = Resolve(r.doc.RootMarker(), r.doc.ScriptSources(), r.script)
	})
	return r.base
}

// URL joins the base path with a site-relative target such as "projects/index.html".
func (r *Resolver) URL(rel string) string {
	return r.Base() + rel
}

// Resolve derives the base path from an explicit root marker or, failing that, from the
// source of the first script tag that references script.
func Resolve(marker string, sources []string, script string) string {
	if marker != "" {
		return marker
	}
	if script == "" {
		script = DefaultScript
	}
	for _, src := range sources {
		if src == "" || !strings.Contains(src, script) {
			continue
		}
		parts := strings.Split(src, "/")
		if len(parts) <= 2 {
			return CurrentDir
		}
		return strings.Join(parts[:len(parts)-2], "/") + "/"
	}
	return CurrentDir
}

// DepthPrefix returns the relative prefix that climbs from pagePath back to the site root,
// e.g. "projects/index.html" gives "../" and "index.html" gives "./".
func DepthPrefix(pagePath string) string {
	pagePath = strings.TrimPrefix(pagePath, "/")
	depth := strings.Count(pagePath, "/")
	if depth == 0 {
		return CurrentDir
	}
	return strings.Repeat("../", depth)
}

// HTMLDocument adapts a parsed page to Document.
type HTMLDocument struct {
	Doc *goquery.Document
}

// RootMarker returns the data-site-root attribute of the root element.
func (d HTMLDocument) RootMarker() string {
	if d.Doc == nil {
		return ""
	}
	return d.Doc.Find("html").First().AttrOr(RootAttr, "")
}

// ScriptSources lists src attributes of script tags in document order.
func (d HTMLDocument) ScriptSources() []string {
	if d.Doc == nil {
		return nil
	}
	var out []string
	d.Doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.AttrOr("src", ""))
	})
	return out
}
