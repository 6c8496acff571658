package main

import (
    "fmt"
    "os"
    "time"

    "robofed.org/web/internal/cms"
    "robofed.org/web/internal/components"
    "robofed.org/web/internal/config"
    "robofed.org/web/internal/i18n"
    "robofed.org/web/internal/site"
)

// newSite wires the page pipeline from configuration.
func newSite(cfg *config.Config) (*site.Site, *i18n.Bundle, error) {
    if err := cfg.Validate(); err != nil {
        return nil, nil, fmt.Errorf("invalid configuration: %w", err)
    }
    if info, err := os.Stat(cfg.SiteDir); err != nil || !info.IsDir() {
        return nil, nil, fmt.Errorf("site directory %q not found", cfg.SiteDir)
    }
    bundle, err := i18n.Embedded()
    if err != nil {
        return nil, nil, fmt.Errorf("load i18n: %w", err)
    }
    renderer, err := components.New(bundle, components.SiteInfo{
        Email:    cfg.Org.Email,
        Facebook: cfg.Org.Facebook,
        Location: cfg.Org.Location,
        Year:     cfg.Org.Year,
        Currency: cfg.Donate.Currency,
    })
    if err != nil {
        return nil, nil, err
    }

    var content *cms.Store
    if cfg.ContentDir != "" {
        if info, err := os.Stat(cfg.ContentDir); err == nil && info.IsDir() {
            ttl := 5 * time.Minute
            if !cfg.Prod() {
                // pick up edits immediately while authoring
                ttl = 0
            }
            content = cms.NewStore(os.DirFS(cfg.ContentDir), cms.WithFallbackLang(cfg.Lang), cms.WithCacheDuration(ttl))
        }
    }

    s, err := site.New(os.DirFS(cfg.SiteDir), renderer, bundle, content, site.Settings{
        Lang:      cfg.Lang,
        Script:    cfg.Script,
        SiteRoot:  cfg.SiteRoot,
        SiteURL:   cfg.SiteURL,
        FontsGate: cfg.FontsGate,
        Amounts:   cfg.Donate.Amounts,
        Analytics: site.Analytics{
            GA4MeasurementID: cfg.Analytics.GA4MeasurementID,
            Debug:            cfg.Analytics.Debug,
        },
    })
    if err != nil {
        return nil, nil, err
    }
    return s, bundle, nil
}
