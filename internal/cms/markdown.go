package cms

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// NewRenderer returns a markdown to safe HTML converter. Raw HTML inside markdown is
// allowed through goldmark and then cleaned by a UGC sanitizer policy.
func NewRenderer() func([]byte) (template.HTML, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Linkify,
			extension.Table,
			extension.Strikethrough,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	policy := bluemonday.UGCPolicy()
	policy.RequireNoReferrerOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return func(input []byte) (template.HTML, error) {
		var buf bytes.Buffer
		if err := md.Convert(input, &buf); err != nil {
			return "", err
		}
		return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
	}
}
