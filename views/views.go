// Package views is the default view layer: html/template pages embedded in the
// binary and exposed as templ components through flatblog.ViewFuncs.
package views

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"

	"github.com/a-h/templ"

	"github.com/eringen/flatblog"
	"github.com/eringen/flatblog/markdown"
)

//go:embed templates/*.html
var embedded embed.FS

// Pages lists the templates each override directory must provide, next to
// base.html which holds the shared layout.
var Pages = []string{"index", "category", "post", "404", "500"}

// Views renders the site's pages.
type Views struct {
	cfg   flatblog.SiteConfig
	fsys  fs.FS
	pages map[string]*template.Template
}

// Option configures Views.
type Option func(*Views)

// WithDir loads templates from dir instead of the embedded set.
func WithDir(dir string) Option {
	return func(v *Views) {
		v.fsys = os.DirFS(dir)
	}
}

// WithFS loads templates from fsys instead of the embedded set.
func WithFS(fsys fs.FS) Option {
	return func(v *Views) {
		v.fsys = fsys
	}
}

// New parses the page templates. Each page is parsed together with
// base.html and executed through its "base" template.
func New(cfg flatblog.SiteConfig, opts ...Option) (*Views, error) {
	cfg.SetDefaults()
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, err
	}
	v := &Views{cfg: cfg, fsys: sub, pages: make(map[string]*template.Template)}
	for _, opt := range opts {
		opt(v)
	}

	funcs := template.FuncMap{
		"postURL":     flatblog.PostURL,
		"categoryURL": flatblog.CategoryURL,
		"category": func(d flatblog.Document) string {
			return flatblog.CategoryLabel(d, v.cfg.DefaultCategory)
		},
		"postJSONLD": func(d flatblog.Document) template.JS {
			return template.JS(flatblog.BlogPostingJsonLD(d, v.cfg))
		},
		"siteJSONLD": func() template.JS {
			return template.JS(flatblog.WebsiteJsonLD(v.cfg))
		},
		"summary": summaryHTML,
	}
	for _, name := range Pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(v.fsys, "base.html", name+".html")
		if err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// summaryHTML renders the Summary of d as Markdown.
func summaryHTML(d flatblog.Document) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Markdown(d.Summary()).Render(context.Background(), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

type pageData struct {
	Site       flatblog.SiteConfig
	Meta       flatblog.PageMeta
	Posts      []flatblog.Document
	Post       flatblog.Document
	Categories []string
	Current    string
}

func (v *Views) page(name string, data pageData) templ.Component {
	data.Site = v.cfg
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := v.pages[name].ExecuteTemplate(&buf, "base", data); err != nil {
			return fmt.Errorf("views: render %s: %w", name, err)
		}
		_, err := buf.WriteTo(w)
		return err
	})
}

// Index renders the listing of all posts.
func (v *Views) Index(posts []flatblog.Document, categories []string) templ.Component {
	return v.page("index", pageData{
		Meta: flatblog.PageMeta{
			Title:       v.cfg.Name,
			Description: v.cfg.Description,
			URL:         flatblog.BuildURL(v.cfg.URL),
			OGType:      "website",
		},
		Posts:      posts,
		Categories: categories,
	})
}

// Category renders the posts of one category.
func (v *Views) Category(posts []flatblog.Document, categories []string, current string) templ.Component {
	return v.page("category", pageData{
		Meta: flatblog.PageMeta{
			Title:       current + " · " + v.cfg.Name,
			Description: v.cfg.Description,
			URL:         flatblog.AbsoluteURL(v.cfg.URL, flatblog.CategoryURL(current)),
			OGType:      "website",
		},
		Posts:      posts,
		Categories: categories,
		Current:    current,
	})
}

// Post renders a single post.
func (v *Views) Post(post flatblog.Document, categories []string) templ.Component {
	return v.page("post", pageData{
		Meta: flatblog.PageMeta{
			Title:       post.Title() + " · " + v.cfg.Name,
			Description: post.Summary(),
			URL:         flatblog.AbsoluteURL(v.cfg.URL, flatblog.PostURL(post.Path)),
			OGType:      "article",
		},
		Post:       post,
		Categories: categories,
		Current:    flatblog.CategoryLabel(post, v.cfg.DefaultCategory),
	})
}

// NotFound renders the 404 page.
func (v *Views) NotFound() templ.Component {
	return v.page("404", pageData{Meta: flatblog.PageMeta{Title: "Not found · " + v.cfg.Name}})
}

// ServerError renders the 500 page.
func (v *Views) ServerError() templ.Component {
	return v.page("500", pageData{Meta: flatblog.PageMeta{Title: "Error · " + v.cfg.Name}})
}

// Funcs returns the views as flatblog.ViewFuncs.
func (v *Views) Funcs() flatblog.ViewFuncs {
	return flatblog.ViewFuncs{
		Index:       v.Index,
		Category:    v.Category,
		Post:        v.Post,
		NotFound:    v.NotFound,
		ServerError: v.ServerError,
	}
}
