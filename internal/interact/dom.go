package interact

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors and attributes shared with the client runtime.
const (
	CounterSelector = ".stat-card h3"
	RevealSelector  = "[data-reveal]"
	RevealedClass   = "revealed"

	FilterButtonSelector = ".filter-btn"
	ProjectCardSelector  = ".project-card"
	AmountButtonSelector = ".amount-btn"
	CustomAmountSelector = "#customAmount, #custom-amount"

	AttrCountTo       = "data-count-to"
	AttrCountSuffix   = "data-count-suffix"
	AttrCountStep     = "data-count-step"
	AttrCountInterval = "data-count-interval"
)

// AnnotateCounters stores the parsed target of every stat counter on the element so the
// client can animate it. Elements without a leading number are left alone. It returns
// the number of annotated counters.
func AnnotateCounters(root *goquery.Selection) int {
	n := 0
	root.Find(CounterSelector).Each(func(_ int, s *goquery.Selection) {
		c, ok := ParseCounter(strings.TrimSpace(s.Text()))
		if !ok {
			return
		}
		s.SetAttr(AttrCountTo, strconv.Itoa(c.Target))
		s.SetAttr(AttrCountSuffix, c.Suffix)
		s.SetAttr(AttrCountStep, strconv.Itoa(c.Step()))
		s.SetAttr(AttrCountInterval, strconv.FormatInt(c.Interval().Milliseconds(), 10))
		n++
	})
	return n
}

// StaggerReveal sets the transition delay of every reveal element from its index among
// the reveal elements of its parent. With reducedMotion the elements are revealed
// immediately instead.
func StaggerReveal(root *goquery.Selection, reducedMotion bool) {
	root.Find(RevealSelector).Each(func(_ int, s *goquery.Selection) {
		if reducedMotion {
			s.AddClass(RevealedClass)
			return
		}
		node := s.Get(0)
		idx := 0
		s.Parent().Find(RevealSelector).EachWithBreak(func(i int, sib *goquery.Selection) bool {
			if sib.Get(0) == node {
				idx = i
				return false
			}
			return true
		})
		if idx == 0 {
			return
		}
		setStyle(s, "transition-delay", fmt.Sprintf("%dms", RevealDelay(idx).Milliseconds()))
	})
}

// ApplyFilter marks the filter button for category active and hides project cards of
// other categories. An empty category leaves the page untouched. It returns the number
// of visible cards.
func ApplyFilter(root *goquery.Selection, category string) int {
	cards := root.Find(ProjectCardSelector)
	if strings.TrimSpace(category) == "" {
		return cards.Length()
	}
	root.Find(FilterButtonSelector).Each(func(_ int, b *goquery.Selection) {
		b.RemoveClass("active")
		f := b.AttrOr("data-filter", "")
		if f == category || (IsAllCategory(f) && IsAllCategory(category)) {
			b.AddClass("active")
		}
	})
	visible := 0
	cards.Each(func(_ int, c *goquery.Selection) {
		if MatchesCategory(c.AttrOr("data-category", ""), category) {
			c.RemoveAttr("hidden")
			visible++
			return
		}
		c.SetAttr("hidden", "")
	})
	return visible
}

// SelectAmount marks the preset button for amount selected and pre-fills the custom
// amount input. It reports whether a preset button matched.
func SelectAmount(root *goquery.Selection, amount int64) bool {
	want := strconv.FormatInt(amount, 10)
	matched := false
	root.Find(AmountButtonSelector).Each(func(_ int, b *goquery.Selection) {
		b.RemoveClass("selected")
		if b.AttrOr("data-amount", "") == want {
			b.AddClass("selected")
			matched = true
		}
	})
	root.Find(CustomAmountSelector).First().SetAttr("value", want)
	return matched
}

func setStyle(s *goquery.Selection, prop, value string) {
	style := strings.TrimSpace(s.AttrOr("style", ""))
	if style != "" && !strings.HasSuffix(style, ";") {
		style += ";"
	}
	if style != "" {
		style += " "
	}
	s.SetAttr("style", style+prop+": "+value)
}
