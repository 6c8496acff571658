package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.Lang != "uk" {
		t.Errorf("expected default lang uk, got %q", cfg.Lang)
	}
	if cfg.Script != "components.js" {
		t.Errorf("expected default component script components.js, got %q", cfg.Script)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "robofed.yaml")
	data := []byte(`
site_dir: pages
site_url: https://robo.example
donate:
  amounts: [50, 150]
org:
  email: hello@robo.example
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ROBOFED_OUT_DIR", "public_html")
	t.Setenv("ROBOFED_ORG__FACEBOOK", "https://facebook.com/robo")
	t.Setenv("PORT", "9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SiteDir != "pages" {
		t.Errorf("site_dir: got %q", cfg.SiteDir)
	}
	if cfg.OutDir != "public_html" {
		t.Errorf("out_dir: got %q", cfg.OutDir)
	}
	if len(cfg.Donate.Amounts) != 2 || cfg.Donate.Amounts[1] != 150 {
		t.Errorf("donate.amounts: got %v", cfg.Donate.Amounts)
	}
	if cfg.Org.Email != "hello@robo.example" || cfg.Org.Facebook != "https://facebook.com/robo" {
		t.Errorf("org: got %+v", cfg.Org)
	}
	if cfg.Org.Year != 2024 {
		t.Errorf("org.year default lost: %d", cfg.Org.Year)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("addr: got %q", cfg.Addr)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SiteDir != "site" {
		t.Errorf("expected default site dir, got %q", cfg.SiteDir)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"empty site dir":   func(c *Config) { c.SiteDir = "" },
		"script with path": func(c *Config) { c.Script = "js/components.js" },
		"negative amount":  func(c *Config) { c.Donate.Amounts = []int64{100, -1} },
		"relative url":     func(c *Config) { c.SiteURL = "robo.example" },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
