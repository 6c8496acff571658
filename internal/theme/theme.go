// Package theme tracks the dark/light preference of a visitor: either following the
// operating system or pinned by the visitor until reset.
package theme

import "fmt"

// Theme is a color scheme.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// Storage keys, shared with the client runtime.
const (
	StorageKey = "theme"
	ManualKey  = "theme_manual"
	manualOn   = "1"
)

// Browser chrome tint per theme.
const (
	DarkColor  = "#0f141c"
	LightColor = "#f8f9ff"
)

// Parse accepts "dark" or "light".
func Parse(s string) (Theme, error) {
	switch Theme(s) {
	case Dark, Light:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("theme: unknown theme %q", s)
	}
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// State is one of the four controller states.
type State string

const (
	SystemDark  State = "system-dark"
	SystemLight State = "system-light"
	UserDark    State = "user-dark"
	UserLight   State = "user-light"
)

// Appearance is everything a page needs to paint the current theme.
type Appearance struct {
	Theme      Theme  `json:"theme"`
	Icon       string `json:"icon"`
	Color      string `json:"color"`
	Overridden bool   `json:"overridden"`
}

// AppearanceFor builds the appearance of t. The toggle icon shows the theme a click
// would switch to.
func AppearanceFor(t Theme, overridden bool) Appearance {
	a := Appearance{Theme: t, Overridden: overridden}
	if t == Dark {
		a.Icon = "light_mode"
		a.Color = DarkColor
	} else {
		a.Theme = Light
		a.Icon = "dark_mode"
		a.Color = LightColor
	}
	return a
}

// Store is a small persistent key/value store, e.g. cookies or local storage.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// MemoryStore is a map-backed Store.
type MemoryStore map[string]string

func (m MemoryStore) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MemoryStore) Set(key, value string) { m[key] = value }

func (m MemoryStore) Remove(key string) { delete(m, key) }

// Controller applies theme transitions and persists overrides to a Store.
type Controller struct {
	store     Store
	system    Theme
	current   Theme
	observers []func(Appearance)
}

// New initializes a controller: a stored theme without the manual flag is dropped,
// then the stored override or the system theme is applied.
func New(store Store, system Theme) *Controller {
	if store == nil {
		store = MemoryStore{}
	}
	if system != Dark {
		system = Light
	}
	c := &Controller{store: store, system: system}
	if v, _ := store.Get(ManualKey); v != manualOn {
		store.Remove(StorageKey)
	}
	if t, ok := c.stored(); ok {
		c.apply(t, false)
	} else {
		c.apply(system, false)
	}
	return c
}

// Observe registers fn to run after every applied theme.
func (c *Controller) Observe(fn func(Appearance)) {
	if fn != nil {
		c.observers = append(c.observers, fn)
	}
}

// Toggle flips the theme and pins it as the visitor's choice.
func (c *Controller) Toggle() Appearance {
	return c.apply(c.current.Opposite(), true)
}

// Reset drops the visitor's choice and follows the system again.
func (c *Controller) Reset() Appearance {
	c.store.Remove(StorageKey)
	c.store.Remove(ManualKey)
	return c.apply(c.system, false)
}

// SystemChanged records a new operating-system preference. It only takes effect while
// no override is stored.
func (c *Controller) SystemChanged(t Theme) Appearance {
	if t != Dark {
		t = Light
	}
	c.system = t
	if _, ok := c.stored(); ok {
		return c.Appearance()
	}
	return c.apply(t, false)
}

// Theme returns the applied theme.
func (c *Controller) Theme() Theme { return c.current }

// State reports the controller state.
func (c *Controller) State() State {
	_, user := c.stored()
	switch {
	case user && c.current == Dark:
		return UserDark
	case user:
		return UserLight
	case c.current == Dark:
		return SystemDark
	default:
		return SystemLight
	}
}

// Appearance describes the applied theme.
func (c *Controller) Appearance() Appearance {
	_, user := c.stored()
	return AppearanceFor(c.current, user)
}

func (c *Controller) stored() (Theme, bool) {
	if v, _ := c.store.Get(ManualKey); v != manualOn {
		return "", false
	}
	v, _ := c.store.Get(StorageKey)
	t, err := Parse(v)
	if err != nil {
		return "", false
	}
	return t, true
}

func (c *Controller) apply(t Theme, persist bool) Appearance {
	c.current = t
	if persist {
		c.store.Set(StorageKey, string(t))
		c.store.Set(ManualKey, manualOn)
	}
	a := c.Appearance()
	for _, fn := range c.observers {
		fn(a)
	}
	return a
}
