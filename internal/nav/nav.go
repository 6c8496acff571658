package nav

import (
    "path"
    "strings"
)

// Item represents a top-level navigation item.
type Item struct {
    Href     string // site-relative, e.g. "projects/index.html"
    LabelKey string // i18n key, e.g. "nav.projects"
    Page     string // active page identifier
    Icon     string // Material Symbols ligature
    IsButton bool   // primary call to action
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
    Href     string
    LabelKey string
    Icon     string
    Active   bool
    IsButton bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
    Href     string
    LabelKey string
    Label    string
    Active   bool
}

// Page identifiers.
const (
    PageHome     = "home"
    PageProjects = "projects"
    PageEvents   = "events"
    PageDonate   = "donate"
)

// Main is the primary navigation definition.
var Main = []Item{
    {Href: "index.html", LabelKey: "nav.home", Page: PageHome, Icon: "home"},
    {Href: "projects/index.html", LabelKey: "nav.projects", Page: PageProjects, Icon: "folder_open"},
    {Href: "events/index.html", LabelKey: "nav.events", Page: PageEvents, Icon: "event"},
    {Href: "donate/index.html", LabelKey: "nav.donate", Page: PageDonate, Icon: "favorite", IsButton: true},
}

// Build renders navigation items with active state for activePage. url turns a
// site-relative target into a link valid from the current page.
func Build(activePage string, url func(string) string) []RenderedItem {
    if url == nil {
        url = func(s string) string { return s }
    }
    items := make([]RenderedItem, 0, len(Main))
    for _, it := range Main {
        items = append(items, RenderedItem{
            Href:     url(it.Href),
            LabelKey: it.LabelKey,
            Icon:     it.Icon,
            Active:   activePage != "" && activePage == it.Page,
            IsButton: it.IsButton,
        })
    }
    return items
}

// Lookup returns the navigation item for a page identifier.
func Lookup(page string) (Item, bool) {
    for _, it := range Main {
        if it.Page == page {
            return it, true
        }
    }
    return Item{}, false
}

// PageFor infers the active page identifier from a site-relative page path.
// Unknown sections yield "".
func PageFor(pagePath string) string {
    clean := strings.TrimPrefix(path.Clean("/"+pagePath), "/")
    if clean == "" || clean == "index.html" {
        return PageHome
    }
    top := strings.SplitN(clean, "/", 2)[0]
    top = strings.TrimSuffix(top, ".html")
    if _, ok := Lookup(top); ok {
        return top
    }
    return ""
}

// Breadcrumbs builds breadcrumb entries from a site-relative page path.
// Rules:
// - Always start with Home
// - For known top-level sections, use nav label keys
// - For deeper segments, use a prettified segment label
// - index.html collapses into its folder
func Breadcrumbs(pagePath string, url func(string) string) []Crumb {
    if url == nil {
        url = func(s string) string { return s }
    }
    clean := strings.TrimPrefix(path.Clean("/"+pagePath), "/")
    clean = strings.TrimSuffix(strings.TrimSuffix(clean, "index.html"), "/")
    clean = strings.TrimSuffix(clean, ".html")

    crumbs := []Crumb{{Href: url("index.html"), LabelKey: "nav.home", Active: clean == ""}}
    if clean == "" {
        return crumbs
    }
    parts := strings.Split(clean, "/")

    href := ""
    for i, seg := range parts {
        href = path.Join(href, seg)
        c := Crumb{
            Href:   url(href + "/index.html"),
            Label:  titleFromSegment(seg),
            Active: i == len(parts)-1,
        }
        if i == 0 {
            if it, ok := Lookup(seg); ok {
                c.LabelKey = it.LabelKey
            }
        }
        crumbs = append(crumbs, c)
    }
    return crumbs
}

func titleFromSegment(seg string) string {
    if seg == "" {
        return seg
    }
    // replace hyphens/underscores with spaces and capitalize first letter
    s := strings.ReplaceAll(seg, "-", " ")
    s = strings.ReplaceAll(s, "_", " ")
    r := []rune(s)
    r[0] = toUpper(r[0])
    return string(r)
}

func toUpper(r rune) rune {
    // ASCII only is sufficient for slugs here
    if r >= 'a' && r <= 'z' {
        return r - ('a' - 'A')
    }
    return r
}
