package cms

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a content entry cannot be located.
var ErrNotFound = errors.New("cms: not found")

// Content kinds, which are also the folder names under the content root.
const (
	KindProjects = "projects"
	KindEvents   = "events"
)

// Project is a robotics program or initiative shown on the projects page.
type Project struct {
	Slug     string
	Lang     string
	Title    string
	Category string
	Summary  string
	Icon     string
	Image    string
	Link     string
	Order    int
	Body     template.HTML
}

// Event is a competition, workshop or meetup.
type Event struct {
	Slug     string
	Lang     string
	Title    string
	Summary  string
	Location string
	Date     time.Time
	Link     string
	Body     template.HTML
}

type frontMatter struct {
	Title    string `yaml:"title"`
	Summary  string `yaml:"summary"`
	Lang     string `yaml:"lang"`
	Category string `yaml:"category"`
	Icon     string `yaml:"icon"`
	Image    string `yaml:"image"`
	Link     string `yaml:"link"`
	Order    int    `yaml:"order"`
	Date     string `yaml:"date"`
	Location string `yaml:"location"`
	Draft    bool   `yaml:"draft"`
}

type entry struct {
	slug  string
	lang  string
	front frontMatter
	body  template.HTML
}

// Store reads markdown entries from <kind>/<lang>/<slug>.md below its root.
type Store struct {
	fsys     fs.FS
	fallback string
	render   func([]byte) (template.HTML, error)
	ttl      time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	items   []entry
	expires time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithCacheDuration keeps parsed listings for d. Zero disables caching.
func WithCacheDuration(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// WithFallbackLang sets the language used when a kind has no folder for the requested one.
func WithFallbackLang(lang string) Option {
	return func(s *Store) {
		if lang = normalizeLang(lang); lang != "" {
			s.fallback = lang
		}
	}
}

// NewStore returns a store over fsys. A nil fsys yields an empty store.
func NewStore(fsys fs.FS, opts ...Option) *Store {
	s := &Store{
		fsys:     fsys,
		fallback: "uk",
		render:   NewRenderer(),
		ttl:      5 * time.Minute,
		cache:    map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Projects lists projects in lang ordered by their order field, then title.
func (s *Store) Projects(lang string) ([]Project, error) {
	entries, err := s.list(KindProjects, lang)
	if err != nil {
		return nil, err
	}
	out := make([]Project, 0, len(entries))
	for _, e := range entries {
		out = append(out, Project{
			Slug:     e.slug,
			Lang:     e.lang,
			Title:    e.front.Title,
			Category: strings.TrimSpace(e.front.Category),
			Summary:  e.front.Summary,
			Icon:     firstNonEmpty(e.front.Icon, "smart_toy"),
			Image:    e.front.Image,
			Link:     e.front.Link,
			Order:    e.front.Order,
			Body:     e.body,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order == out[j].Order {
			return out[i].Title < out[j].Title
		}
		return out[i].Order < out[j].Order
	})
	return out, nil
}

// Categories returns the distinct project categories in first-seen order.
func Categories(projects []Project) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range projects {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// Events lists events in lang ordered by date, undated ones last.
func (s *Store) Events(lang string) ([]Event, error) {
	entries, err := s.list(KindEvents, lang)
	if err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(entries))
	for _, e := range entries {
		out = append(out, Event{
			Slug:     e.slug,
			Lang:     e.lang,
			Title:    e.front.Title,
			Summary:  e.front.Summary,
			Location: e.front.Location,
			Date:     parseContentDate(e.front.Date),
			Link:     e.front.Link,
			Body:     e.body,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Date, out[j].Date
		switch {
		case a.IsZero() && b.IsZero():
			return out[i].Title < out[j].Title
		case a.IsZero():
			return false
		case b.IsZero():
			return true
		}
		return a.Before(b)
	})
	return out, nil
}

// Upcoming filters events dated on or after now's calendar day. Date-only front matter
// parses to UTC midnight, so today is taken in now's location and compared in UTC.
// Undated events are kept.
func Upcoming(events []Event, now time.Time) []Event {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Date.IsZero() || !e.Date.Before(day) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) list(kind, lang string) ([]entry, error) {
	lang = normalizeLang(lang)
	if lang == "" {
		lang = s.fallback
	}
	key := kind + "|" + lang
	if items, ok := s.cached(key); ok {
		return items, nil
	}
	items, err := s.read(kind, lang)
	if errors.Is(err, ErrNotFound) && lang != s.fallback {
		items, err = s.read(kind, s.fallback)
	}
	if errors.Is(err, ErrNotFound) {
		items, err = nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.store(key, items)
	return items, nil
}

func (s *Store) read(kind, lang string) ([]entry, error) {
	if s == nil || s.fsys == nil {
		return nil, ErrNotFound
	}
	dir := path.Join(kind, lang)
	files, err := fs.ReadDir(s.fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cms: list %s: %w", dir, err)
	}
	var out []entry
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".md") {
			continue
		}
		e, err := s.readEntry(path.Join(dir, f.Name()), lang)
		if err != nil {
			return nil, err
		}
		if e.front.Draft {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *Store) readEntry(file, lang string) (entry, error) {
	data, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		return entry{}, fmt.Errorf("cms: read %s: %w", file, err)
	}
	fm, body := splitFrontMatter(string(data))
	var front frontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return entry{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	slug := strings.TrimSuffix(path.Base(file), ".md")
	front.Title = strings.TrimSpace(front.Title)
	if front.Title == "" {
		front.Title = prettifySlug(slug)
	}
	html, err := s.render([]byte(body))
	if err != nil {
		return entry{}, fmt.Errorf("cms: render %s: %w", file, err)
	}
	return entry{
		slug:  slug,
		lang:  firstNonEmpty(normalizeLang(front.Lang), lang),
		front: front,
		body:  html,
	}, nil
}

func (s *Store) cached(key string) ([]entry, bool) {
	if s.ttl <= 0 {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cache[key]
	if !ok || time.Now().After(c.expires) {
		return nil, false
	}
	return c.items, true
}

func (s *Store) store(key string, items []entry) {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cacheEntry{items: items, expires: time.Now().Add(s.ttl)}
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
		"02.01.2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i != -1 {
		lang = lang[:i]
	}
	return lang
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
