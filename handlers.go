package flatblog

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

func (a *App) handleIndex(c echo.Context) error {
	snap, err := a.Catalog.Snapshot()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Index(snap.Recent(), snap.Categories()))
}

func (a *App) handleCategory(c echo.Context) error {
	snap, err := a.Catalog.Snapshot()
	if err != nil {
		return err
	}
	name := pathParam(c, "name")
	posts, err := snap.InCategory(name)
	if err != nil {
		return notFound(err)
	}
	return Render(c, a.Views.Category(posts, snap.Categories(), name))
}

func (a *App) handlePost(c echo.Context) error {
	path := strings.TrimSuffix(pathParam(c, "*"), "/")
	if path == "" {
		return echo.ErrNotFound
	}
	snap, err := a.Catalog.Snapshot()
	if err != nil {
		return err
	}
	post, err := snap.Document(path)
	if err != nil {
		return notFound(err)
	}
	return Render(c, a.Views.Post(post, snap.Categories()))
}

func (a *App) handleSitemap(c echo.Context) error {
	snap, err := a.Catalog.Snapshot()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, snap.Recent(), snap.Categories())
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Catalog.Recent()
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(filepath.Join(a.staticDir, "favicon.ico"))
}

// handleRobots generates robots.txt pointing at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", strings.TrimRight(a.Config.URL, "/"))
	return c.String(http.StatusOK, body)
}

// notFound turns ErrNotFound into echo's 404 so both lookups share one error path.
func notFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return echo.ErrNotFound
	}
	return err
}

// pathParam returns the decoded route parameter name. Echo routes on
// URL.RawPath when it is set (escapes such as %2F), leaving parameters
// escaped; otherwise they are cut from the already decoded URL.Path.
func pathParam(c echo.Context, name string) string {
	raw := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return raw
	}
	if s, err := url.PathUnescape(raw); err == nil {
		return s
	}
	return raw
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error", "method", c.Request().Method, "uri", c.Request().RequestURI, "err", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
