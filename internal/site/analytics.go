package site

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// Analytics holds client instrumentation configuration surfaced to pages.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	Debug            bool
}

var ga4ID = regexp.MustCompile(`^G-[A-Z0-9]{4,20}$`)

// Enabled reports whether a well-formed measurement id is configured.
func (a Analytics) Enabled() bool { return ga4ID.MatchString(a.GA4MeasurementID) }

// inject appends the gtag loader to head. Pages that already load gtag are left alone.
func (a Analytics) inject(head *goquery.Selection) {
	if !a.Enabled() || head.Find(`script[src*="googletagmanager.com/gtag/js"]`).Length() > 0 {
		return
	}
	cfg := "{}"
	if a.Debug {
		cfg = "{debug_mode:true}"
	}
	head.AppendHtml(`<script async src="https://www.googletagmanager.com/gtag/js?id=` + a.GA4MeasurementID + `"></script>` +
		`<script>window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}` +
		`gtag('js',new Date());gtag('config','` + a.GA4MeasurementID + `',` + cfg + `);</script>`)
}
