package seo

import (
    "encoding/json"
    "strings"
    "testing"
    "time"

    "github.com/PuerkitoBio/goquery"
)

func TestNGOOmitsEmpty(t *testing.T) {
    m := NGO("Robofed", "", "hi@example.org", "", "https://facebook.com/x")
    if m["@type"] != "NGO" {
        t.Fatalf("unexpected type %v", m["@type"])
    }
    if _, ok := m["url"]; ok {
        t.Fatalf("url should be omitted")
    }
    links, _ := m["sameAs"].([]string)
    if len(links) != 1 || links[0] != "https://facebook.com/x" {
        t.Fatalf("unexpected sameAs %v", m["sameAs"])
    }
}

func TestEventSchema(t *testing.T) {
    ev := Event("Hackathon", "", "Pryluky", time.Date(2024, 11, 2, 10, 0, 0, 0, time.UTC), "Robofed")
    var got map[string]any
    if err := json.Unmarshal([]byte(JSON(ev)), &got); err != nil {
        t.Fatalf("unmarshal: %v", err)
    }
    if got["startDate"] != "2024-11-02" {
        t.Fatalf("startDate = %v", got["startDate"])
    }
    loc, _ := got["location"].(map[string]any)
    if loc["name"] != "Pryluky" {
        t.Fatalf("location = %v", got["location"])
    }
    if _, ok := got["description"]; ok {
        t.Fatalf("description should be omitted")
    }
}

func TestBreadcrumbListPositions(t *testing.T) {
    bl := BreadcrumbList([]BreadcrumbItem{{"Home", "https://x/"}, {"Projects", "https://x/projects/"}})
    items := bl["itemListElement"].([]map[string]any)
    if len(items) != 2 || items[1]["position"] != 2 {
        t.Fatalf("unexpected items %v", items)
    }
}

func TestApply(t *testing.T) {
    doc, err := goquery.NewDocumentFromReader(strings.NewReader(
        `<html><head><meta property="og:title" content="Own"></head><body></body></html>`))
    if err != nil {
        t.Fatal(err)
    }
    head := doc.Find("head")
    Apply(head, Meta{
        Title:     "Проєкти",
        Canonical: "https://robofed.org/projects/",
        JSONLD:    []map[string]any{WebSite("Robofed", "https://robofed.org/", "uk"), {"name": "</script>"}},
    })

    if got := head.Find(`link[rel="canonical"]`).AttrOr("href", ""); got != "https://robofed.org/projects/" {
        t.Fatalf("canonical = %q", got)
    }
    if got := head.Find(`meta[property="og:title"]`); got.Length() != 1 || got.AttrOr("content", "") != "Own" {
        t.Fatalf("og:title should keep page value")
    }
    if got := head.Find(`meta[property="og:url"]`).AttrOr("content", ""); got != "https://robofed.org/projects/" {
        t.Fatalf("og:url = %q", got)
    }
    scripts := head.Find(`script[type="application/ld+json"]`)
    if scripts.Length() != 2 {
        t.Fatalf("expected 2 json-ld scripts, got %d", scripts.Length())
    }
    if strings.Contains(scripts.Last().Text(), "</script>") {
        t.Fatalf("script payload not escaped: %s", scripts.Last().Text())
    }
}
