// Package markdown converts Markdown documents to HTML with goldmark.
//
// The dialect is chosen by extension name, using the names of Python-Markdown
// (fenced_code, codehilite, extra, ...) so existing content renders the same.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

const extensionPrefix = "markdown.extensions."

// Renderer converts Markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md         goldmark.Markdown
	extensions []string
}

type config struct {
	highlightStyle string
}

// Option configures a Renderer.
type Option func(*config)

// WithHighlightStyle sets the chroma style used by codehilite (default "monokai").
func WithHighlightStyle(style string) Option {
	return func(c *config) {
		if style != "" {
			c.highlightStyle = style
		}
	}
}

// New builds a Renderer with the named extensions enabled.
// Unknown names are an error.
func New(extensions []string, opts ...Option) (*Renderer, error) {
	cfg := config{highlightStyle: "monokai"}
	for _, opt := range opts {
		opt(&cfg)
	}

	enabled := make(map[string]goldmark.Extender)
	for _, name := range extensions {
		name = strings.TrimPrefix(strings.TrimSpace(name), extensionPrefix)
		switch name {
		case "fenced_code", "sane_lists", "":
			// CommonMark already parses fenced code and strict lists.
		case "codehilite":
			enabled["highlight"] = highlighting.NewHighlighting(highlighting.WithStyle(cfg.highlightStyle))
		case "extra":
			enabled["table"] = extension.Table
			enabled["footnote"] = extension.Footnote
			enabled["deflist"] = extension.DefinitionList
		case "tables":
			enabled["table"] = extension.Table
		case "footnotes":
			enabled["footnote"] = extension.Footnote
		case "def_list":
			enabled["deflist"] = extension.DefinitionList
		case "gfm":
			enabled["table"] = extension.Table
			enabled["strikethrough"] = extension.Strikethrough
			enabled["tasklist"] = extension.TaskList
			enabled["linkify"] = extension.Linkify
		case "strikethrough":
			enabled["strikethrough"] = extension.Strikethrough
		case "tasklist":
			enabled["tasklist"] = extension.TaskList
		case "linkify":
			enabled["linkify"] = extension.Linkify
		case "typographer":
			enabled["typographer"] = extension.Typographer
		default:
			return nil, fmt.Errorf("markdown: unknown extension %q", name)
		}
	}

	names := make([]string, 0, len(enabled))
	for n := range enabled {
		names = append(names, n)
	}
	sort.Strings(names)
	extenders := make([]goldmark.Extender, 0, len(names))
	for _, n := range names {
		extenders = append(extenders, enabled[n])
	}

	md := goldmark.New(
		goldmark.WithExtensions(extenders...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			// Posts are authored locally; raw HTML passes through as Python-Markdown does.
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md, extensions: names}, nil
}

// Extensions returns the goldmark extensions in use, sorted.
func (r *Renderer) Extensions() []string {
	return append([]string(nil), r.extensions...)
}

// Render converts src to HTML.
func (r *Renderer) Render(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

var plain = goldmark.New(goldmark.WithParserOptions(parser.WithAutoHeadingID()))

// Markdown returns a templ.Component that renders content as CommonMark
// without extensions, for short author text such as summaries. Raw HTML in
// content is omitted.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return plain.Convert([]byte(content), w)
	})
}
