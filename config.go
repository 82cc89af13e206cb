package flatblog

import "log/slog"

// SiteConfig holds all configuration for a flatblog site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "Blog")
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Site description for RSS and meta tags
	Author      string `mapstructure:"author"`      // Author name for JSON-LD

	Addr string `mapstructure:"addr"` // Listen address (default ":3000")

	ContentDir         string   `mapstructure:"content_dir"`         // Markdown root (default "content/posts")
	Extension          string   `mapstructure:"extension"`           // Document file extension (default ".md")
	AutoReload         bool     `mapstructure:"auto_reload"`         // Re-read changed files on access
	Watch              bool     `mapstructure:"watch"`               // Use fsnotify instead of rescanning on every read
	MarkdownExtensions []string `mapstructure:"markdown_extensions"` // default fenced_code, codehilite, extra, sane_lists
	HighlightStyle     string   `mapstructure:"highlight_style"`     // chroma style for codehilite (default "monokai")

	DefaultCategory string `mapstructure:"default_category"` // Label for posts without Category (default "uncategorized")
	StaticDir       string `mapstructure:"static_dir"`       // Served under /static (default "static")
	TemplateDir     string `mapstructure:"template_dir"`     // Overrides the embedded templates when set

	RateLimit int `mapstructure:"rate_limit"` // Requests per minute per client IP; 0 disables
}

// DefaultMarkdownExtensions mirrors the dialect the content is written for.
var DefaultMarkdownExtensions = []string{"fenced_code", "codehilite", "extra", "sane_lists"}

// SetDefaults fills every empty field with its default value.
// AutoReload and Watch are left as given.
func (c *SiteConfig) SetDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/posts"
	}
	if c.Extension == "" {
		c.Extension = ".md"
	}
	if c.MarkdownExtensions == nil {
		c.MarkdownExtensions = append([]string(nil), DefaultMarkdownExtensions...)
	}
	if c.HighlightStyle == "" {
		c.HighlightStyle = "monokai"
	}
	if c.DefaultCategory == "" {
		c.DefaultCategory = DefaultCategory
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir overrides SiteConfig.StaticDir.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger sets the logger used for request and error logs.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}
