package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides, e.g. ROBOFED_SITE_DIR.
const EnvPrefix = "ROBOFED_"

// Config is the runtime configuration shared by serve and build.
type Config struct {
	Addr       string `koanf:"addr"`
	SiteDir    string `koanf:"site_dir"`
	ContentDir string `koanf:"content_dir"`
	OutDir     string `koanf:"out_dir"`
	Lang       string `koanf:"lang"`
	SiteURL    string `koanf:"site_url"`
	SiteRoot   string `koanf:"site_root"`
	Script     string `koanf:"component_script"`
	FontsGate  bool   `koanf:"fonts_gate"`
	Env        string `koanf:"env"`

	Org       Org       `koanf:"org"`
	Donate    Donate    `koanf:"donate"`
	Analytics Analytics `koanf:"analytics"`
}

// Org carries the contact details printed in the footer.
type Org struct {
	Email    string   `koanf:"email"`
	Facebook string   `koanf:"facebook"`
	Location []string `koanf:"location"`
	Year     int      `koanf:"year"`
}

// Donate configures the preset donation amounts.
type Donate struct {
	Amounts  []int64 `koanf:"amounts"`
	Currency string  `koanf:"currency"`
}

// Analytics holds client instrumentation configuration surfaced to pages.
type Analytics struct {
	GA4MeasurementID string `koanf:"ga4_measurement_id"` // e.g. G-XXXXXXXXXX
	Debug            bool   `koanf:"debug"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:       ":8080",
		SiteDir:    "site",
		ContentDir: "content",
		OutDir:     "dist",
		Lang:       "uk",
		Script:     "components.js",
		FontsGate:  true,
		Env:        "dev",
		Org: Org{
			Email:    "robofederation.pryluky@gmail.com",
			Facebook: "https://facebook.com/roboinua",
			Location: []string{"м. Прилуки", "Чернігівська область", "Україна"},
			Year:     2024,
		},
		Donate: Donate{
			Amounts:  []int64{100, 250, 500, 1000},
			Currency: "UAH",
		},
	}
}

// Load reads configuration from the given YAML file when it exists, then overlays
// environment variable overrides (ROBOFED_*). Nested keys use a double underscore:
// ROBOFED_ORG__EMAIL -> org.email.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Port resolution: prefer ROBOFED_PORT, then PORT, else keep addr
	port := os.Getenv(EnvPrefix + "PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port != "" && !k.Exists("addr") {
		cfg.Addr = ":" + port
	}
	return cfg, nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SiteDir) == "" {
		return fmt.Errorf("site_dir is required")
	}
	if strings.TrimSpace(c.Script) == "" {
		return fmt.Errorf("component_script is required")
	}
	if strings.ContainsRune(c.Script, '/') {
		return fmt.Errorf("component_script must be a file name, got %q", c.Script)
	}
	for _, a := range c.Donate.Amounts {
		if a <= 0 {
			return fmt.Errorf("donate.amounts must be positive, got %d", a)
		}
	}
	if c.SiteURL != "" && !strings.HasPrefix(c.SiteURL, "http://") && !strings.HasPrefix(c.SiteURL, "https://") {
		return fmt.Errorf("site_url must be absolute, got %q", c.SiteURL)
	}
	return nil
}

// Prod reports whether the server runs in production mode.
func (c *Config) Prod() bool { return strings.EqualFold(c.Env, "prod") }
