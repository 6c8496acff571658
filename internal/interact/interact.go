// Package interact precomputes the page state behind the site's small interactive
// touches (counters, reveal stagger, project filter, donation amounts) so the client
// runtime only has to play it back.
package interact

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Counter animation constants.
const (
	CounterDuration = 800 * time.Millisecond
	counterSteps    = 30
)

// RevealStagger is the delay added per sibling index of a revealed element.
const RevealStagger = 80 * time.Millisecond

// AllCategories are the filter values that show every project.
var AllCategories = []string{"усі", "all", ""}

var leadingNumber = regexp.MustCompile(`^(\d+)`)

// Counter is a numeric stat such as "120+" split into its target and suffix.
type Counter struct {
	Target int
	Suffix string
}

// ParseCounter reads the leading integer of text. Text without one is not a counter.
func ParseCounter(text string) (Counter, bool) {
	m := leadingNumber.FindStringSubmatch(text)
	if m == nil {
		return Counter{}, false
	}
	target, err := strconv.Atoi(m[1])
	if err != nil {
		return Counter{}, false
	}
	return Counter{Target: target, Suffix: strings.Replace(text, m[1], "", 1)}, true
}

// Step is the increment per tick.
func (c Counter) Step() int {
	if s := c.Target / counterSteps; s > 1 {
		return s
	}
	return 1
}

// Interval is the time between ticks so that the animation spans CounterDuration.
func (c Counter) Interval() time.Duration {
	if c.Target <= 0 {
		return 0
	}
	ticks := float64(c.Target) / float64(c.Step())
	return time.Duration(float64(CounterDuration) / ticks)
}

// Frames lists the displayed values, always ending exactly at Target.
func (c Counter) Frames() []int {
	step := c.Step()
	var out []int
	for cur := 0; ; {
		if c.Target-cur <= step {
			out = append(out, c.Target)
			return out
		}
		cur += step
		out = append(out, cur)
	}
}

// Text renders one frame with the suffix.
func (c Counter) Text(frame int) string {
	return strconv.Itoa(frame) + c.Suffix
}

// RevealDelay is the transition delay for the element at sibling index i.
func RevealDelay(i int) time.Duration {
	if i < 0 {
		i = 0
	}
	return time.Duration(i) * RevealStagger
}

// IsAllCategory reports whether category means "no filter".
func IsAllCategory(category string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	for _, c := range AllCategories {
		if category == c {
			return true
		}
	}
	return false
}

// MatchesCategory reports whether an item in itemCategory is shown under category.
func MatchesCategory(itemCategory, category string) bool {
	return IsAllCategory(category) || itemCategory == category
}

// Filter keeps the items whose category matches.
func Filter[T any](items []T, category string, categoryOf func(T) string) []T {
	if IsAllCategory(category) {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if categoryOf(it) == category {
			out = append(out, it)
		}
	}
	return out
}

// ParseAmount reads a positive whole donation amount. Anything else is rejected.
func ParseAmount(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
