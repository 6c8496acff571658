package basepath

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDoc struct {
	marker  string
	sources []string
	calls   int
}

func (d *stubDoc) RootMarker() string {
	d.calls++
	return d.marker
}

func (d *stubDoc) ScriptSources() []string { return d.sources }

func TestResolveRootMarkerVerbatim(t *testing.T) {
	t.Parallel()
	for _, marker := range []string{"/", "./", "../../", "/site/", "https://example.org/robo/", "weird"} {
		got := Resolve(marker, []string{"/other/js/components.js"}, DefaultScript)
		assert.Equal(t, marker, got)
	}
}

func TestResolveFromScriptSource(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		sources []string
		want    string
	}{
		{name: "absolute prefix", sources: []string{"/site/js/components.js"}, want: "/site/"},
		{name: "root absolute", sources: []string{"/js/components.js"}, want: "/"},
		{name: "top level page", sources: []string{"js/components.js"}, want: "./"},
		{name: "bare file", sources: []string{"components.js"}, want: "./"},
		{name: "one level deep", sources: []string{"../js/components.js"}, want: "../"},
		{name: "two levels deep", sources: []string{"../../js/components.js"}, want: "../../"},
		{name: "first match wins", sources: []string{"js/script.js", "../js/components.js", "/x/js/components.js"}, want: "../"},
		{name: "no match", sources: []string{"js/script.js"}, want: "./"},
		{name: "no scripts", want: "./"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Resolve("", tt.sources, DefaultScript))
		})
	}
}

func TestResolverScenarioNestedPage(t *testing.T) {
	t.Parallel()
	r := New(&stubDoc{sources: []string{"/site/js/components.js"}})
	assert.Equal(t, "/site/", r.Base())
	assert.Equal(t, "/site/index.html", r.URL("index.html"))
}

func TestResolverMemoizes(t *testing.T) {
	t.Parallel()
	doc := &stubDoc{marker: "/root/"}
	r := New(doc)
	for i := 0; i < 3; i++ {
		assert.Equal(t, "/root/", r.Base())
	}
	assert.Equal(t, 1, doc.calls)

	doc.marker = "/changed/"
	assert.Equal(t, "/root/", r.Base())
}

func TestResolverCustomScript(t *testing.T) {
	t.Parallel()
	r := New(&stubDoc{sources: []string{"../assets/app/site.js"}}, WithScript("site.js"))
	assert.Equal(t, "../", r.Base())
}

func TestResolverNilDocument(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "./", New(nil).Base())
	assert.Equal(t, "/fixed/", Fixed("/fixed/").Base())
}

// Links built from any page depth must point at the same absolute target.
func TestPathDepthIndependence(t *testing.T) {
	t.Parallel()
	roots := []string{"https://robo.example/site/", "file:///home/user/site/"}
	pages := []string{
		"index.html",
		"projects/index.html",
		"projects/robotics/index.html",
		"events/2024/spring/index.html",
	}
	targets := []string{"index.html", "projects/index.html", "donate/index.html"}

	for _, root := range roots {
		rootURL, err := url.Parse(root)
		require.NoError(t, err)
		for _, page := range pages {
			pageURL, err := rootURL.Parse(page)
			require.NoError(t, err)
			src := DepthPrefix(page) + "js/components.js"
			if strings.HasPrefix(src, "./") {
				src = strings.TrimPrefix(src, "./")
			}
			r := New(&stubDoc{sources: []string{src}})
			for _, target := range targets {
				want, err := rootURL.Parse(target)
				require.NoError(t, err)
				got, err := pageURL.Parse(r.URL(target))
				require.NoError(t, err)
				assert.Equal(t, want.String(), got.String(), "page=%s target=%s", page, target)
			}
		}
	}
}

func TestDepthPrefix(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "./", DepthPrefix("index.html"))
	assert.Equal(t, "../", DepthPrefix("/projects/index.html"))
	assert.Equal(t, "../../", DepthPrefix("events/2024/index.html"))
}

func TestHTMLDocument(t *testing.T) {
	t.Parallel()
	page := `<!doctype html><html data-site-root="/robo/"><head>
<script src="../js/components.js"></script></head><body>
<script>inline()</script><script src="../js/script.js"></script></body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	hd := HTMLDocument{Doc: doc}
	assert.Equal(t, "/robo/", hd.RootMarker())
	assert.Equal(t, []string{"../js/components.js", "../js/script.js"}, hd.ScriptSources())
	assert.Equal(t, "/robo/", New(hd).Base())
}
