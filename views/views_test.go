package views_test

import (
	"bytes"
	"context"
	"testing"
	"testing/fstest"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/flatblog"
	"github.com/eringen/flatblog/views"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

var testDocs = []flatblog.Document{
	{
		Path: "2024/hello world",
		HTML: "<p>Hello <em>there</em></p>",
		Meta: flatblog.Metadata{"Title": "Hello", "Date": "2024-03-01", "Category": "Tech", "Summary": "A greeting"},
	},
	{
		Path: "untitled-note",
		HTML: "<p>note</p>",
		Meta: flatblog.Metadata{},
	},
}

func newViews(t *testing.T) *views.Views {
	t.Helper()
	v, err := views.New(flatblog.SiteConfig{Name: "Test Blog", URL: "https://example.com", Author: "Ada"})
	require.NoError(t, err)
	return v
}

func TestIndex(t *testing.T) {
	t.Parallel()

	got := renderString(t, newViews(t).Index(testDocs, []string{"Tech", "uncategorized"}))

	assert.Contains(t, got, "<title>Test Blog</title>")
	assert.Contains(t, got, `href="/post/2024/hello%20world/"`)
	assert.Contains(t, got, ">Hello</a>")
	assert.Contains(t, got, ">Untitled Note</a>")
	assert.Contains(t, got, `href="/category/Tech/"`)
	assert.Contains(t, got, `href="/category/uncategorized/"`)
	assert.Contains(t, got, "A greeting")
	assert.Contains(t, got, `"@type":"WebSite"`)
}

func TestIndexEmpty(t *testing.T) {
	t.Parallel()

	got := renderString(t, newViews(t).Index(nil, nil))
	assert.Contains(t, got, "No posts yet.")
	assert.NotContains(t, got, `class="categories"`)
}

func TestCategory(t *testing.T) {
	t.Parallel()

	got := renderString(t, newViews(t).Category(testDocs[:1], []string{"Tech", "uncategorized"}, "Tech"))

	assert.Contains(t, got, "<h2>Tech</h2>")
	assert.Contains(t, got, `<a href="/category/Tech/" class="active">Tech</a>`)
	assert.Contains(t, got, "Tech · Test Blog")
	assert.NotContains(t, got, "Untitled Note")
}

func TestPost(t *testing.T) {
	t.Parallel()

	got := renderString(t, newViews(t).Post(testDocs[0], []string{"Tech"}))

	assert.Contains(t, got, "<p>Hello <em>there</em></p>")
	assert.Contains(t, got, `<time datetime="2024-03-01">2024-03-01</time>`)
	assert.Contains(t, got, `"@type":"BlogPosting"`)
	assert.Contains(t, got, `"headline":"Hello"`)
	assert.Contains(t, got, `<meta property="og:type" content="article">`)
}

func TestPostUsesDefaultCategory(t *testing.T) {
	t.Parallel()

	v, err := views.New(flatblog.SiteConfig{DefaultCategory: "misc"})
	require.NoError(t, err)

	got := renderString(t, v.Post(testDocs[1], []string{"misc"}))
	assert.Contains(t, got, `<a href="/category/misc/">misc</a>`)
}

func TestErrorPages(t *testing.T) {
	t.Parallel()

	v := newViews(t)
	assert.Contains(t, renderString(t, v.NotFound()), "Not found")
	assert.Contains(t, renderString(t, v.ServerError()), "Something went wrong")
}

func TestFuncs(t *testing.T) {
	t.Parallel()

	f := newViews(t).Funcs()
	require.NotNil(t, f.Index)
	require.NotNil(t, f.Category)
	require.NotNil(t, f.Post)
	require.NotNil(t, f.NotFound)
	require.NotNil(t, f.ServerError)
}

func TestWithFSOverride(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"base.html":     {Data: []byte(`{{define "base"}}[{{template "content" .}}]{{end}}`)},
		"index.html":    {Data: []byte(`{{define "content"}}{{len .Posts}} posts{{end}}`)},
		"category.html": {Data: []byte(`{{define "content"}}{{.Current}}{{end}}`)},
		"post.html":     {Data: []byte(`{{define "content"}}{{.Post.Title}}{{end}}`)},
		"404.html":      {Data: []byte(`{{define "content"}}gone{{end}}`)},
		"500.html":      {Data: []byte(`{{define "content"}}broken{{end}}`)},
	}
	v, err := views.New(flatblog.SiteConfig{}, views.WithFS(fsys))
	require.NoError(t, err)

	assert.Equal(t, "[2 posts]", renderString(t, v.Index(testDocs, nil)))
	assert.Equal(t, "[Hello]", renderString(t, v.Post(testDocs[0], nil)))
	assert.Equal(t, "[gone]", renderString(t, v.NotFound()))
}

func TestWithFSMissingPage(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"base.html": {Data: []byte(`{{define "base"}}{{end}}`)},
	}
	_, err := views.New(flatblog.SiteConfig{}, views.WithFS(fsys))
	require.Error(t, err)
}

func TestSummaryRendersMarkdown(t *testing.T) {
	t.Parallel()

	post := flatblog.Document{
		Path: "notes",
		Meta: flatblog.Metadata{"Summary": "A *short* note <script>alert(1)</script>"},
	}
	got := renderString(t, newViews(t).Index([]flatblog.Document{post}, nil))
	assert.Contains(t, got, `<div class="summary"><p>A <em>short</em> note`)
	assert.NotContains(t, got, "<script>alert(1)</script>")
}

func TestCanonicalURLsAreEscaped(t *testing.T) {
	t.Parallel()

	v := newViews(t)
	got := renderString(t, v.Category(testDocs[:1], []string{"C/C++"}, "C/C++"))
	assert.Contains(t, got, `https://example.com/category/C%2FC&#43;&#43;/`)

	got = renderString(t, v.Post(testDocs[0], nil))
	assert.Contains(t, got, `"url":"https://example.com/post/2024/hello%20world/"`)
}
