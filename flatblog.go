// Package flatblog is a flat-file blog server built with Go, Echo, and templ.
// It serves Markdown documents with front-matter metadata from a directory as
// an index, per-category listings, and single posts, plus RSS and a sitemap.
//
// Users provide their own templ components via the ViewFuncs struct and a
// DocumentStore holding the documents; flatblog owns the routing, the
// catalog views and the middleware.
package flatblog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds the templ components the framework calls when rendering
// pages. The catalog results are handed over as-is; categories is always the
// full, sorted label set.
type ViewFuncs struct {
	Index       func(posts []Document, categories []string) templ.Component
	Category    func(posts []Document, categories []string, current string) templ.Component
	Post        func(post Document, categories []string) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App is the central flatblog application. It wires together the catalog,
// handlers, middleware, and user-provided templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Catalog *Catalog
	Views   ViewFuncs
	Logger  *slog.Logger

	customRoutes []func(*App)
	staticDir    string
	limiter      *RequestLimiter
}

// New creates an App serving the documents of store. Middleware and routes
// are registered immediately so a.Echo can be used as an http.Handler.
func New(cfg SiteConfig, store DocumentStore, views ViewFuncs, opts ...Option) *App {
	cfg.SetDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Catalog:   NewCatalog(store, cfg.DefaultCategory),
		Views:     views,
		Logger:    slog.Default(),
		staticDir: cfg.StaticDir,
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a
}

// Start listens on Config.Addr until the server is shut down.
func (a *App) Start() error {
	a.Logger.Info("listening", "addr", a.Config.Addr, "content", a.Config.ContentDir)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("flatblog: %w", err)
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx is done.
func (a *App) Shutdown(ctx context.Context) error {
	if a.limiter != nil {
		a.limiter.Close()
	}
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/static", a.staticDir)
	e.GET("/favicon.ico", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleIndex)
	e.GET("/category/:name/", a.handleCategory)
	e.GET("/post/*", a.handlePost)
}
