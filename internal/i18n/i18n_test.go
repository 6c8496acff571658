package i18n

import (
    "testing"
    "testing/fstest"
)

func TestResolveHonorsQValues(t *testing.T) {
    b, err := Embedded()
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    got := b.Resolve("uk;q=0.8, en;q=0.9")
    if got != "en" {
        t.Fatalf("expected en, got %s", got)
    }
    if got := b.Resolve("de-DE, fr;q=0.5"); got != Default {
        t.Fatalf("expected fallback %s, got %s", Default, got)
    }
    if got := b.Resolve("uk-UA"); got != "uk" {
        t.Fatalf("expected uk, got %s", got)
    }
}

func TestTFallsBackToDefaultThenKey(t *testing.T) {
    fsys := fstest.MapFS{
        "l/uk.json": {Data: []byte(`{"a":"А","b":"Б"}`)},
        "l/en.json": {Data: []byte(`{"a":"A"}`)},
    }
    b, err := Load(fsys, "l", "uk", []string{"uk", "en"})
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    if got := b.T("en", "a"); got != "A" {
        t.Fatalf("expected A, got %s", got)
    }
    if got := b.T("en", "b"); got != "Б" {
        t.Fatalf("expected fallback Б, got %s", got)
    }
    if got := b.Func("en")("missing"); got != "missing" {
        t.Fatalf("expected key echo, got %s", got)
    }
}

func TestLoadRequiresFallback(t *testing.T) {
    fsys := fstest.MapFS{"l/en.json": {Data: []byte(`{}`)}}
    if _, err := Load(fsys, "l", "uk", []string{"uk", "en"}); err == nil {
        t.Fatalf("expected error for missing fallback dictionary")
    }
}

func TestEmbeddedDictionariesShareKeys(t *testing.T) {
    b, err := Embedded()
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    for key := range b.dict["uk"] {
        if _, ok := b.dict["en"][key]; !ok {
            t.Errorf("en dictionary misses %s", key)
        }
    }
}
