package seo

import (
    "encoding/json"
    "time"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
    b, err := json.Marshal(v)
    if err != nil {
        return ""
    }
    return string(b)
}

// NGO returns a minimal NGO schema. Contact fields are optional.
func NGO(name, url, email string, sameAs ...string) map[string]any {
    m := map[string]any{
        "@context": "https://schema.org",
        "@type":    "NGO",
        "name":     name,
    }
    if url != "" { m["url"] = url }
    if email != "" { m["email"] = email }
    links := make([]string, 0, len(sameAs))
    for _, s := range sameAs {
        if s != "" {
            links = append(links, s)
        }
    }
    if len(links) > 0 { m["sameAs"] = links }
    return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url, lang string) map[string]any {
    m := map[string]any{
        "@context": "https://schema.org",
        "@type":    "WebSite",
        "name":     name,
    }
    if url != "" { m["url"] = url }
    if lang != "" { m["inLanguage"] = lang }
    return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
    Name string
    Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
    el := make([]map[string]any, 0, len(items))
    for i, it := range items {
        el = append(el, map[string]any{
            "@type":    "ListItem",
            "position": i + 1,
            "name":     it.Name,
            "item":     it.Item,
        })
    }
    return map[string]any{
        "@context":        "https://schema.org",
        "@type":           "BreadcrumbList",
        "itemListElement": el,
    }
}

// Event returns a minimal offline Event schema organized by organizer.
func Event(name, description, location string, start time.Time, organizer string) map[string]any {
    m := map[string]any{
        "@context":            "https://schema.org",
        "@type":               "Event",
        "name":                name,
        "eventAttendanceMode": "https://schema.org/OfflineEventAttendanceMode",
    }
    if description != "" { m["description"] = description }
    if !start.IsZero() { m["startDate"] = start.Format("2006-01-02") }
    if location != "" {
        m["location"] = map[string]any{"@type": "Place", "name": location}
    }
    if organizer != "" {
        m["organizer"] = map[string]any{"@type": "NGO", "name": organizer}
    }
    return m
}
