package seo

import (
    "strings"

    "github.com/PuerkitoBio/goquery"
)

type OpenGraph struct {
    Title       string
    Description string
    Image       string
    Type        string
    URL         string
    Locale      string
}

type Meta struct {
    Title       string
    Description string
    Canonical   string
    OG          OpenGraph
    JSONLD      []map[string]any
}

// Apply writes m into head: canonical link, Open Graph tags and one JSON-LD script per
// schema. Existing tags a page declares itself are kept.
func Apply(head *goquery.Selection, m Meta) {
    if head.Length() == 0 {
        return
    }
    if m.Canonical != "" && head.Find(`link[rel="canonical"]`).Length() == 0 {
        head.AppendHtml(`<link rel="canonical" href="` + attr(m.Canonical) + `">`)
    }
    if m.Description != "" && head.Find(`meta[name="description"]`).Length() == 0 {
        head.AppendHtml(`<meta name="description" content="` + attr(m.Description) + `">`)
    }
    og := [][2]string{
        {"og:title", firstNonEmpty(m.OG.Title, m.Title)},
        {"og:description", firstNonEmpty(m.OG.Description, m.Description)},
        {"og:type", firstNonEmpty(m.OG.Type, "website")},
        {"og:url", firstNonEmpty(m.OG.URL, m.Canonical)},
        {"og:image", m.OG.Image},
        {"og:locale", m.OG.Locale},
    }
    for _, kv := range og {
        if kv[1] == "" || head.Find(`meta[property="`+kv[0]+`"]`).Length() > 0 {
            continue
        }
        head.AppendHtml(`<meta property="` + kv[0] + `" content="` + attr(kv[1]) + `">`)
    }
    for _, v := range m.JSONLD {
        payload := JSON(v)
        if payload == "" {
            continue
        }
        // "</" would terminate the script element early.
        payload = strings.ReplaceAll(payload, "</", `<\/`)
        head.AppendHtml(`<script type="application/ld+json">` + payload + `</script>`)
    }
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&#34;", `<`, "&lt;", `>`, "&gt;")

func attr(s string) string { return attrEscaper.Replace(s) }

func firstNonEmpty(values ...string) string {
    for _, v := range values {
        if strings.TrimSpace(v) != "" {
            return v
        }
    }
    return ""
}
